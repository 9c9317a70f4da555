package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rotisserie/eris"

	"github.com/nmdsi/sponsor-cli/internal/model"
)

// Page layout constants, in millimeters on A4 portrait.
const (
	marginLeft     = 20
	marginRight    = 190
	pageBottomSafe = 250

	focusLineHeight = 8
	focusBuffer     = 20

	pieRadius      = 25
	pieLabelOffset = 15
)

var (
	colorAccent = [3]int{74, 144, 226}
	colorBody   = [3]int{64, 64, 64}
	colorMuted  = [3]int{128, 128, 128}
)

// focusAreas is the early-stage focus list rendered on page one (or a
// continuation page when it would overflow).
var focusAreas = []string{
	"01 Culture of Creating Partnerships",
	"02 Increased Talent Ecosystem - Limited open roles",
	"03 Broader Community Impact",
	"04 Capstone Project Alignment (experiential learning and upskilling)",
	"05 Mutual interests In sponsored research",
}

// sharedValueDetails pairs each pie segment with its description row.
var sharedValueDetails = [][2]string{
	{"Advancing Manufacturing", "Leverage AI/Data Science to advance sustainable and optimized manufacturing practices."},
	{"Ethical and Responsible AI", "At every stage of the data journey, both organizations seek responsible data-driven-decision-making."},
	{"Broader Social Impact", "Approaches to ensure underserved populations have clean water."},
	{"Collaboration & Innovation", "Track record of engagement across sectors to push the boundaries for what is possible."},
}

const ideationText = "Develop projects aligned towards AI-based and data science for optimizing manufacturing, " +
	"product performance analysis and water purification. How might we partner to accelerate their ESG work " +
	"and connection with other local non-profits?"

// Generator renders prospect summary PDFs.
type Generator struct {
	OutputDir string
	Tagline   string
	Product   string
	Now       func() time.Time
}

// NewGenerator creates a Generator writing into outputDir.
func NewGenerator(outputDir string) *Generator {
	return &Generator{
		OutputDir: outputDir,
		Tagline:   "Energy Efficient Products underpinned by honesty, integrity, and ethics",
		Product:   "NMDSI Prospect Summary System",
		Now:       time.Now,
	}
}

// needsPageBreak decides whether the focus list starting at startY would
// overflow the page's safe bottom margin.
func needsPageBreak(startY float64, itemCount int) bool {
	estimated := float64(itemCount)*focusLineHeight + focusBuffer
	return startY+estimated > pageBottomSafe
}

// overviewRows builds the ordered (label, formatted value) rows of the
// company overview table.
func overviewRows(c model.Company) [][2]string {
	floatOrNaN := func(field string) float64 {
		v, ok := c.Float(field)
		if !ok {
			return 0
		}
		return v
	}

	ranking := "N/A"
	if v := c.Str(model.FieldIndustryRanking); v != "" {
		ranking = "#" + v
	}
	distance := "N/A"
	if v := c.Str(model.FieldDistance); v != "" {
		distance = v + " miles"
	}

	return [][2]string{
		{"Revenue", FormatMagnitude(floatOrNaN(model.FieldAnnualRevenue))},
		{"Market Valuation", FormatMagnitude(floatOrNaN(model.FieldMarketValuation))},
		{"Profit Margins", FormatPercent(floatOrNaN(model.FieldProfitMargins))},
		{"Market Share", FormatPercent(floatOrNaN(model.FieldMarketShare))},
		{"Industry Ranking", ranking},
		{"Distance from UWM", distance},
	}
}

// Generate renders the multi-page summary for one company and writes it
// to the output directory, returning the file path. A nil or nameless
// company is a no-op, not an error.
func (g *Generator) Generate(company model.Company, user model.User) (string, error) {
	if company == nil || company.Name() == "" {
		return "", nil
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", 10)
	pdf.AddPage()

	g.drawHeader(pdf, company.Name())
	tableBottom := g.drawOverviewTable(pdf, overviewRows(company))
	valuesBottom := g.drawSharedValues(pdf, tableBottom)
	g.drawFocusAreas(pdf, valuesBottom)
	g.drawTrailingPage(pdf)
	g.drawFooter(pdf, user)

	path := filepath.Join(g.OutputDir, Filename(company.Name()))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", eris.Wrapf(err, "report: write %s", path)
	}
	return path, nil
}

func (g *Generator) drawHeader(pdf *fpdf.Fpdf, companyName string) {
	pdf.SetFontSize(18)
	pdf.SetTextColor(colorAccent[0], colorAccent[1], colorAccent[2])
	pdf.Text(marginLeft, 25, fmt.Sprintf("%s Prospect Summary", companyName))

	pdf.SetFontSize(10)
	pdf.SetTextColor(colorMuted[0], colorMuted[1], colorMuted[2])
	pdf.Text(marginLeft, 32, g.Tagline)
}

func (g *Generator) sectionHeader(pdf *fpdf.Fpdf, y float64, title string) {
	pdf.SetFontSize(14)
	pdf.SetTextColor(colorAccent[0], colorAccent[1], colorAccent[2])
	pdf.Text(marginLeft, y, title)
}

// drawOverviewTable renders the metric grid starting at a fixed offset
// under the header and returns its bottom Y.
func (g *Generator) drawOverviewTable(pdf *fpdf.Fpdf, rows [][2]string) float64 {
	g.sectionHeader(pdf, 45, "Company Overview")

	const rowHeight = 8
	pdf.SetXY(marginLeft, 50)

	pdf.SetFontSize(10)
	pdf.SetFillColor(colorAccent[0], colorAccent[1], colorAccent[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(60, rowHeight, "Metric", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, rowHeight, "Value", "1", 0, "L", true, 0, "")
	pdf.Ln(rowHeight)

	pdf.SetTextColor(colorBody[0], colorBody[1], colorBody[2])
	for _, row := range rows {
		pdf.SetX(marginLeft)
		pdf.CellFormat(60, rowHeight, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, rowHeight, row[1], "1", 0, "L", false, 0, "")
		pdf.Ln(rowHeight)
	}

	return pdf.GetY()
}

// drawSharedValues renders the section header, the manually drawn pie,
// and the description rows. Returns the bottom Y of the section.
func (g *Generator) drawSharedValues(pdf *fpdf.Fpdf, tableBottom float64) float64 {
	g.sectionHeader(pdf, tableBottom+15, "Predicted Shared Values")

	pieTop := tableBottom + 25
	centerX := float64(marginLeft + pieRadius)
	centerY := pieTop + pieRadius

	for _, w := range Wedges(SharedValueSegments) {
		pdf.SetFillColor(w.Color[0], w.Color[1], w.Color[2])
		pdf.MoveTo(centerX, centerY)
		// Path angles run counter-clockwise from 3 o'clock; wedge angles
		// run clockwise from 12 o'clock.
		pdf.ArcTo(centerX, centerY, pieRadius, pieRadius, 0, 90-w.End, 90-w.Start)
		pdf.ClosePath()
		pdf.DrawPath("F")

		labelX, labelY := LabelPosition(centerX, centerY, w.Bisector, pieRadius+pieLabelOffset)
		pdf.SetFontSize(8)
		pdf.SetTextColor(colorBody[0], colorBody[1], colorBody[2])
		pdf.Text(labelX, labelY, w.Label)
	}

	descTop := pieTop + pieRadius*2 + 15
	pdf.SetXY(marginLeft, descTop)
	pdf.SetFontSize(10)
	for _, detail := range sharedValueDetails {
		pdf.SetX(marginLeft)
		pdf.CellFormat(55, 6, detail[0], "", 0, "L", false, 0, "")
		pdf.MultiCell(115, 6, detail[1], "", "L", false)
		pdf.Ln(2)
	}

	return pdf.GetY()
}

// drawFocusAreas renders the focus list, starting a new page first when
// the estimated height would overflow the safe bottom margin.
func (g *Generator) drawFocusAreas(pdf *fpdf.Fpdf, valuesBottom float64) {
	g.sectionHeader(pdf, valuesBottom+12, "Early-Stage Areas of Focus")

	startY := valuesBottom + 25
	if needsPageBreak(startY, len(focusAreas)) {
		pdf.AddPage()
		g.sectionHeader(pdf, 25, "Early-Stage Areas of Focus")
		startY = 40
	}

	pdf.SetFontSize(10)
	pdf.SetTextColor(colorBody[0], colorBody[1], colorBody[2])
	for i, area := range focusAreas {
		pdf.Text(marginLeft, startY+float64(i)*focusLineHeight, area)
	}
}

// drawTrailingPage renders the assumptions, ideation, and key focus
// sections. These always begin on a fresh page.
func (g *Generator) drawTrailingPage(pdf *fpdf.Fpdf) {
	pdf.AddPage()

	g.sectionHeader(pdf, 25, "Assumptions & Dependencies")

	pdf.SetFontSize(10)
	pdf.SetTextColor(colorBody[0], colorBody[1], colorBody[2])
	pdf.Text(marginLeft, 35, "Assumptions:")
	pdf.Text(25, 45, "- Past Higher Education (HE) investments")
	pdf.Text(25, 55, "- Financial Capacity")

	pdf.Text(marginLeft, 75, "Dependencies:")
	pdf.Text(25, 85, "- Funding Priorities")
	pdf.Text(25, 95, "- Engagement Level Interest")
	pdf.Text(25, 105, "- Increased capacity in AI (etc) via partnership")

	g.sectionHeader(pdf, 135, "Project Ideation")
	pdf.SetFontSize(10)
	pdf.SetTextColor(colorBody[0], colorBody[1], colorBody[2])
	pdf.SetXY(marginLeft, 140)
	pdf.MultiCell(170, 5, ideationText, "", "L", false)

	g.sectionHeader(pdf, 180, "Key Focus Areas")
	pdf.SetFontSize(10)
	pdf.SetTextColor(colorBody[0], colorBody[1], colorBody[2])
	pdf.Text(marginLeft, 195, "- Sustainable manufacturing")
	pdf.Text(marginLeft, 205, "- Water purification and technology")
	pdf.Text(marginLeft, 215, "- Sustainability")
}

// drawFooter renders the generation stamp at the bottom of the final
// page.
func (g *Generator) drawFooter(pdf *fpdf.Fpdf, user model.User) {
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(marginLeft, pageBottomSafe, marginRight, pageBottomSafe)

	userName := user.Name
	if userName == "" {
		userName = "Unknown User"
	}

	pdf.SetFontSize(8)
	pdf.SetTextColor(colorMuted[0], colorMuted[1], colorMuted[2])
	pdf.Text(marginLeft, 255, "Generated on: "+g.Now().Format("January 2, 2006, 3:04 PM"))
	pdf.Text(marginLeft, 260, "Downloaded by: "+userName)
	pdf.Text(marginLeft, 265, g.Product)
}
