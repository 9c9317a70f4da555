package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nmdsi/sponsor-cli/internal/ops"
	"github.com/nmdsi/sponsor-cli/internal/report"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("39")).Underline(true)
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Padding(0, 1)
)

// View renders the application's UI based on the current state of the model.
func (m *model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + dimStyle.Render("\n\n(any key to continue, ctrl+c to quit)")
	}

	var b strings.Builder

	switch m.state {
	case viewLogin:
		m.viewLogin(&b)
	case viewPredict:
		m.viewHeader(&b, "Predict")
		m.viewPredictBody(&b)
	case viewFoundry:
		m.viewHeader(&b, "Model Foundry")
		m.viewFoundryBody(&b)
	case viewTraining:
		m.viewHeader(&b, "Training Data")
		m.viewTrainingBody(&b)
	}

	if m.isLoading {
		b.WriteString("\n" + m.spinner.View() + " working...\n")
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	return b.String()
}

func (m *model) viewLogin(b *strings.Builder) {
	b.WriteString(titleStyle.Render("NMDSI Sponsor Prediction") + "\n\n")
	b.WriteString("  " + m.emailInput.View() + "\n")
	b.WriteString("  " + m.passwordInput.View() + "\n\n")
	b.WriteString(dimStyle.Render("  enter to continue, ctrl+c to quit") + "\n")
}

func (m *model) viewHeader(b *strings.Builder, active string) {
	b.WriteString(titleStyle.Render("NMDSI Sponsor Prediction"))
	if m.session != nil {
		b.WriteString(dimStyle.Render("  " + m.session.User.Name))
	}
	b.WriteString("\n")

	for _, name := range []string{"Predict", "Model Foundry", "Training Data"} {
		if name == active {
			b.WriteString(activeTabStyle.Render(name))
		} else {
			b.WriteString(tabStyle.Render(name))
		}
	}
	b.WriteString(dimStyle.Render("  (tab to switch)") + "\n\n")
}

func (m *model) viewVariantTabs(b *strings.Builder) {
	for _, v := range variantTabs() {
		if v.slug == string(m.variant) {
			b.WriteString(activeTabStyle.Render(v.label))
		} else {
			b.WriteString(tabStyle.Render(v.label))
		}
	}
	b.WriteString(dimStyle.Render("  (left/right to switch)") + "\n")
}

func (m *model) viewPredictBody(b *strings.Builder) {
	m.viewVariantTabs(b)
	b.WriteString("\n" + m.searchInput.View() + "\n\n")

	for i, company := range m.results {
		line := fmt.Sprintf("%s  %s", company.Name(), dimStyle.Render(company.City()))
		if m.deps.Search.Selected(company.Name()) {
			line = selectedStyle.Render("[x] ") + line
		} else {
			line = "[ ] " + line
		}
		if i == m.resultIdx {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	if len(m.results) == 0 {
		b.WriteString(dimStyle.Render("  no matches") + "\n")
	}

	if sel := m.deps.Search.Selection(); len(sel) > 0 {
		names := make([]string, len(sel))
		for i, c := range sel {
			names[i] = c.Name()
		}
		b.WriteString("\nSelected: " + selectedStyle.Render(strings.Join(names, ", ")) + "\n")
	}

	if len(m.predictions) > 0 {
		b.WriteString("\n" + titleStyle.Render("Sponsorship Likelihood") + "\n")
		for _, p := range m.predictions {
			b.WriteString(fmt.Sprintf("  %-40s %s\n", p.Company, report.FormatProbability(p.Probability)))
		}
	}

	b.WriteString(dimStyle.Render("\nenter toggle select · ctrl+p predict · esc clear search") + "\n")
}

func (m *model) viewFoundryBody(b *strings.Builder) {
	m.viewVariantTabs(b)
	b.WriteString("\n")

	if picker := m.openPicker(); picker != nil {
		label := "Choose a dataset to train on"
		if picker == m.modelPicker {
			label = "Choose a model to deploy"
		}
		m.viewPicker(b, picker, label)
		return
	}

	b.WriteString(titleStyle.Render("Recently Trained") + "\n")
	m.viewModelTable(b)
	b.WriteString("\n" + titleStyle.Render("Recently Deployed") + "\n")
	m.viewModelTable(b)

	b.WriteString(dimStyle.Render("\nt train · d deploy · left/right switch model") + "\n")
}

func (m *model) viewModelTable(b *strings.Builder) {
	recent := ops.RecentModels(m.models)
	if len(recent) == 0 {
		b.WriteString(dimStyle.Render("  nothing yet") + "\n")
		return
	}
	for _, rec := range recent {
		marker := " "
		if rec.IsCurrent() {
			marker = selectedStyle.Render("*")
		}
		b.WriteString(fmt.Sprintf("  %s %-30s %-10s %s\n", marker, rec.BlobName, rec.Status, dimStyle.Render(rec.CreatedAt)))
	}
}

func (m *model) viewPicker(b *strings.Builder, picker *ops.Picker, label string) {
	b.WriteString(titleStyle.Render(label) + "\n")
	b.WriteString("  filter: " + picker.Filter() + "\n\n")

	highlighted, _ := picker.Highlighted()
	for _, item := range picker.Visible() {
		if item.ID == highlighted.ID {
			b.WriteString(cursorStyle.Render("> "+item.Label) + "\n")
		} else {
			b.WriteString("  " + item.Label + "\n")
		}
	}
	b.WriteString(dimStyle.Render("\ntype to filter · enter confirm · esc cancel") + "\n")
}

func (m *model) viewTrainingBody(b *strings.Builder) {
	if len(m.datasets) == 0 {
		b.WriteString(dimStyle.Render("  no training data uploaded") + "\n")
		return
	}

	start := m.datasetPage * datasetPageSize
	end := start + datasetPageSize
	if end > len(m.datasets) {
		end = len(m.datasets)
	}

	b.WriteString(fmt.Sprintf("  %-30s %8s  %-20s %s\n", "Filename", "Rows", "Uploaded", "By"))
	for _, d := range m.datasets[start:end] {
		b.WriteString(fmt.Sprintf("  %-30s %8d  %-20s %s\n", d.Filename, d.NumRows, d.UploadedAt, d.DoneBy))
	}

	totalPages := (len(m.datasets) + datasetPageSize - 1) / datasetPageSize
	b.WriteString(dimStyle.Render(fmt.Sprintf("\npage %d/%d · left/right to page", m.datasetPage+1, totalPages)) + "\n")
}

type variantTab struct {
	slug  string
	label string
}

func variantTabs() []variantTab {
	return []variantTab{
		{slug: "logistic", label: "Logistic Regression"},
		{slug: "random_forest", label: "Random Forest"},
		{slug: "xgboost", label: "XGBoost"},
	}
}
