// Package cli provides the interactive terminal UI: an auth gate
// followed by the predict, model foundry, and training data views.
package cli

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rotisserie/eris"

	domain "github.com/nmdsi/sponsor-cli/internal/model"
	"github.com/nmdsi/sponsor-cli/internal/ops"
	"github.com/nmdsi/sponsor-cli/internal/search"
	"github.com/nmdsi/sponsor-cli/internal/session"
	"github.com/nmdsi/sponsor-cli/pkg/predictapi"
)

// Deps bundles the controllers the UI drives.
type Deps struct {
	Client   predictapi.Client
	Sessions *session.Manager
	Search   *search.Controller
	Ops      *ops.Controller
}

// viewState represents the current view or screen of the application.
type viewState int

const (
	// viewLogin is the auth gate shown until a session exists.
	viewLogin viewState = iota
	// viewPredict is the company search / selection / prediction view.
	viewPredict
	// viewFoundry is the train-and-deploy view.
	viewFoundry
	// viewTraining is the uploaded-datasets view.
	viewTraining
)

// datasetPageSize is how many dataset rows show per page.
const datasetPageSize = 5

// model is the main application model for the Bubble Tea UI.
type model struct {
	ctx  context.Context
	deps Deps

	state     viewState
	isLoading bool
	err       error
	status    string

	// auth
	emailInput    textinput.Model
	passwordInput textinput.Model
	authFocus     int
	session       *domain.Session

	// predict
	searchInput textinput.Model
	results     []domain.Company
	resultIdx   int
	variant     domain.Variant
	predictions []domain.RankedPrediction

	// foundry
	models        []domain.ModelRecord
	datasets      []domain.DatasetRecord
	datasetPicker *ops.Picker
	modelPicker   *ops.Picker

	// training data
	datasetPage int

	spinner       spinner.Model
	width, height int
}

// initialModel creates and initializes a new model with default values.
func initialModel(ctx context.Context, deps Deps) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	searchIn := textinput.New()
	searchIn.Placeholder = "Search companies..."

	return &model{
		ctx:           ctx,
		deps:          deps,
		state:         viewLogin,
		variant:       domain.VariantLogistic,
		emailInput:    email,
		passwordInput: password,
		searchInput:   searchIn,
		spinner:       s,
	}
}

// messages

type sessionMsg struct{ session *domain.Session }

type searchResultsMsg struct {
	results []domain.Company
	applied bool
}

type predictionsMsg struct{ ranked []domain.RankedPrediction }

type foundryLoadedMsg struct {
	models   []domain.ModelRecord
	datasets []domain.DatasetRecord
}

type datasetsMsg struct{ datasets []domain.DatasetRecord }

type opDoneMsg struct{ message string }

type errMsg struct{ error }

// commands

func (m *model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		sess, err := m.deps.Sessions.Login(m.ctx, email, password)
		if err != nil {
			return errMsg{err}
		}
		return sessionMsg{sess}
	}
}

func (m *model) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		results, applied, err := m.deps.Search.Search(m.ctx, query)
		if err != nil {
			return errMsg{err}
		}
		return searchResultsMsg{results: results, applied: applied}
	}
}

func (m *model) predictCmd() tea.Cmd {
	variant := m.variant
	selection := m.deps.Search.Selection()
	return func() tea.Msg {
		if len(selection) == 0 {
			return errMsg{eris.New("cli: no companies selected")}
		}
		ranked, err := m.deps.Client.Predict(m.ctx, variant, selection)
		if err != nil {
			return errMsg{err}
		}
		return predictionsMsg{ranked}
	}
}

func (m *model) loadFoundryCmd() tea.Cmd {
	variant := m.variant
	return func() tea.Msg {
		models, err := m.deps.Client.ListModels(m.ctx, variant.APIName())
		if err != nil {
			return errMsg{err}
		}
		datasets, err := m.deps.Client.ListDatasets(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return foundryLoadedMsg{models: models, datasets: datasets}
	}
}

func (m *model) trainCmd(datasetID string) tea.Cmd {
	variant, user := m.variant, m.userEmail()
	return func() tea.Msg {
		result, err := m.deps.Ops.Train(m.ctx, variant, datasetID, user)
		if err != nil {
			return errMsg{err}
		}
		return opDoneMsg{result.Message}
	}
}

func (m *model) deployCmd(modelID string) tea.Cmd {
	variant, user := m.variant, m.userEmail()
	return func() tea.Msg {
		result, err := m.deps.Ops.Deploy(m.ctx, variant, modelID, user)
		if err != nil {
			return errMsg{err}
		}
		return opDoneMsg{result.Message}
	}
}

func (m *model) loadDatasetsCmd() tea.Cmd {
	return func() tea.Msg {
		datasets, err := m.deps.Client.ListDatasets(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return datasetsMsg{datasets}
	}
}

func (m *model) userEmail() string {
	if m.session == nil {
		return ""
	}
	return m.session.User.Email
}

// cycleVariant moves the model tab left or right and clears the
// prediction result. The selection set is kept.
func (m *model) cycleVariant(delta int) {
	for i, v := range domain.Variants {
		if v == m.variant {
			next := (i + delta + len(domain.Variants)) % len(domain.Variants)
			m.variant = domain.Variants[next]
			break
		}
	}
	m.predictions = nil
}

// Init initializes the Bubble Tea model.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.err != nil && msg.String() != "ctrl+c" {
			m.err = nil
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.state != viewLogin && !m.pickerOpen() {
				return m, m.nextView()
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case sessionMsg:
		m.isLoading = false
		m.err = nil
		m.session = msg.session
		m.state = viewPredict
		m.searchInput.Focus()
		m.isLoading = true
		return m, tea.Batch(m.spinner.Tick, m.searchCmd(""))

	case searchResultsMsg:
		m.isLoading = false
		if msg.applied {
			m.results = msg.results
			m.resultIdx = 0
		}
		return m, nil

	case predictionsMsg:
		m.isLoading = false
		m.predictions = msg.ranked
		return m, nil

	case foundryLoadedMsg:
		m.isLoading = false
		m.models = msg.models
		m.datasets = msg.datasets
		m.datasetPicker = ops.DatasetPicker(msg.datasets)
		m.modelPicker = ops.ModelPicker(msg.models)
		return m, nil

	case datasetsMsg:
		m.isLoading = false
		m.datasets = msg.datasets
		m.datasetPage = 0
		return m, nil

	case opDoneMsg:
		m.isLoading = false
		m.status = msg.message
		return m, m.loadFoundryCmd()

	case errMsg:
		m.isLoading = false
		m.err = msg.error
		return m, nil
	}

	switch m.state {
	case viewLogin:
		cmds = append(cmds, m.updateLogin(msg))
	case viewPredict:
		cmds = append(cmds, m.updatePredict(msg))
	case viewFoundry:
		cmds = append(cmds, m.updateFoundry(msg))
	case viewTraining:
		cmds = append(cmds, m.updateTraining(msg))
	}

	if m.isLoading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) nextView() tea.Cmd {
	switch m.state {
	case viewPredict:
		m.state = viewFoundry
		m.isLoading = true
		return tea.Batch(m.spinner.Tick, m.loadFoundryCmd())
	case viewFoundry:
		m.state = viewTraining
		m.isLoading = true
		return tea.Batch(m.spinner.Tick, m.loadDatasetsCmd())
	default:
		m.state = viewPredict
		m.searchInput.Focus()
		return nil
	}
}

func (m *model) pickerOpen() bool {
	return (m.datasetPicker != nil && m.datasetPicker.IsOpen()) ||
		(m.modelPicker != nil && m.modelPicker.IsOpen())
}

func (m *model) updateLogin(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if m.authFocus == 0 {
				m.authFocus = 1
				m.emailInput.Blur()
				cmds = append(cmds, m.passwordInput.Focus())
			} else if m.emailInput.Value() != "" && m.passwordInput.Value() != "" {
				m.isLoading = true
				m.err = nil
				cmds = append(cmds, m.spinner.Tick, m.loginCmd(m.emailInput.Value(), m.passwordInput.Value()))
			}
		case "up", "shift+tab":
			m.authFocus = 0
			m.passwordInput.Blur()
			cmds = append(cmds, m.emailInput.Focus())
		}
	}

	var cmd tea.Cmd
	if m.authFocus == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (m *model) updatePredict(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up":
			if m.resultIdx > 0 {
				m.resultIdx--
			}
			return nil
		case "down":
			if m.resultIdx < len(m.results)-1 {
				m.resultIdx++
			}
			return nil
		case "left":
			m.cycleVariant(-1)
			return nil
		case "right":
			m.cycleVariant(1)
			return nil
		case "enter":
			if m.resultIdx < len(m.results) {
				company := m.results[m.resultIdx]
				if !m.deps.Search.Select(company) {
					m.deps.Search.Deselect(company.Name())
				}
			}
			return nil
		case "esc":
			m.searchInput.SetValue("")
			m.isLoading = true
			return tea.Batch(m.spinner.Tick, m.searchCmd(""))
		case "ctrl+p":
			m.isLoading = true
			m.err = nil
			return tea.Batch(m.spinner.Tick, m.predictCmd())
		}
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	cmds = append(cmds, cmd)
	if after := m.searchInput.Value(); after != before {
		cmds = append(cmds, m.searchCmd(after))
	}
	return tea.Batch(cmds...)
}

func (m *model) updateFoundry(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if picker := m.openPicker(); picker != nil {
		return m.updatePicker(picker, key)
	}

	switch key.String() {
	case "left":
		m.cycleVariant(-1)
		m.isLoading = true
		return tea.Batch(m.spinner.Tick, m.loadFoundryCmd())
	case "right":
		m.cycleVariant(1)
		m.isLoading = true
		return tea.Batch(m.spinner.Tick, m.loadFoundryCmd())
	case "t":
		if m.datasetPicker != nil {
			m.datasetPicker.Open()
		}
	case "d":
		if m.modelPicker != nil {
			m.modelPicker.Open()
		}
	}
	return nil
}

func (m *model) openPicker() *ops.Picker {
	if m.datasetPicker != nil && m.datasetPicker.IsOpen() {
		return m.datasetPicker
	}
	if m.modelPicker != nil && m.modelPicker.IsOpen() {
		return m.modelPicker
	}
	return nil
}

func (m *model) updatePicker(picker *ops.Picker, key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "up":
		picker.MoveUp()
	case "down":
		picker.MoveDown()
	case "esc":
		picker.Escape()
	case "enter":
		item, ok := picker.Commit()
		if !ok {
			return nil
		}
		m.isLoading = true
		m.err = nil
		if picker == m.datasetPicker {
			return tea.Batch(m.spinner.Tick, m.trainCmd(item.ID))
		}
		return tea.Batch(m.spinner.Tick, m.deployCmd(item.ID))
	case "backspace":
		if f := picker.Filter(); f != "" {
			picker.SetFilter(f[:len(f)-1])
		}
	default:
		if len(key.Runes) > 0 {
			picker.SetFilter(picker.Filter() + string(key.Runes))
		}
	}
	return nil
}

func (m *model) updateTraining(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	lastPage := 0
	if len(m.datasets) > 0 {
		lastPage = (len(m.datasets) - 1) / datasetPageSize
	}

	switch key.String() {
	case "left":
		if m.datasetPage > 0 {
			m.datasetPage--
		}
	case "right":
		if m.datasetPage < lastPage {
			m.datasetPage++
		}
	}
	return nil
}

// Run starts the interactive UI and blocks until it exits.
func Run(ctx context.Context, deps Deps) error {
	m := initialModel(ctx, deps)

	if sess, err := deps.Sessions.Current(ctx); err == nil && sess != nil {
		m.session = sess
		m.state = viewPredict
		m.searchInput.Focus()
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return eris.Wrap(err, "cli: run program")
	}
	return nil
}
