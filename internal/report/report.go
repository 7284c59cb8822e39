// ABOUTME: PDF rendering of saved nutrition plans.
// ABOUTME: Lays out metrics, macro and meal tables, hydration and shopping focus with gofpdf.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/nutriplan/internal/models"
	"github.com/jung-kurt/gofpdf"
)

const fontName = "Arial"

// writer carries the document and the UTF-8 to cp1252 translator used by the core fonts.
type writer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// RenderPDF renders a one-plan report and returns the PDF bytes.
func RenderPDF(plan *models.Plan) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("render pdf: nil plan")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Nutrition Plan "+plan.ShortID(), true)
	pdf.SetCreator("nutriplan", true)
	w := &writer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.AddPage()
	w.header(plan)
	w.metrics(plan)
	w.macros(plan)
	w.meals(plan)
	w.hydration(plan)
	w.shopping(plan)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *writer) heading(text string) {
	w.pdf.SetFont(fontName, "B", 13)
	w.pdf.Cell(0, 8, w.tr(text))
	w.pdf.Ln(9)
	w.pdf.SetFont(fontName, "", 10)
}

func (w *writer) line(text string) {
	w.pdf.Cell(0, 6, w.tr(text))
	w.pdf.Ln(5)
}

// row draws one bordered table row; the last cell ends the line.
func (w *writer) row(widths []float64, cells []string, align string) {
	for i, c := range cells {
		ln := 0
		if i == len(cells)-1 {
			ln = 1
		}
		w.pdf.CellFormat(widths[i], 6, w.tr(c), "1", ln, align, false, 0, "")
	}
}

func (w *writer) header(p *models.Plan) {
	w.pdf.SetFont(fontName, "B", 16)
	w.pdf.Cell(0, 10, w.tr("Nutrition Plan: "+p.DisplayName()))
	w.pdf.Ln(9)

	w.pdf.SetFont(fontName, "", 10)
	w.line(fmt.Sprintf("ID %s, created %s", p.ShortID(), p.CreatedAt.Format("2006-01-02 15:04")))
	w.line(fmt.Sprintf("Goal: %s. Activity: %s. Meals per day: %d. Awake %s-%s.",
		p.Profile.FitnessGoal, p.Profile.ActivityLevel, p.Profile.MealsPerDay,
		p.Profile.WakeTime, p.Profile.SleepTime))
	if p.Notes != nil && *p.Notes != "" {
		w.pdf.MultiCell(0, 5, w.tr(*p.Notes), "", "L", false)
	}
	w.pdf.Ln(4)
}

func (w *writer) metrics(p *models.Plan) {
	m := p.Metrics
	w.heading("Health Metrics")
	w.line(fmt.Sprintf("BMI %.1f (%s). Ideal weight %.1f-%.1f kg.", m.BMI, m.BMICategory, m.IdealWeight.Min, m.IdealWeight.Max))
	w.line(fmt.Sprintf("BMR %.0f kcal. TDEE %.0f kcal. Water %.1f L. Health score %d/100.", m.BMR, m.TDEE, m.WaterNeed, m.HealthScore))
	for _, r := range m.Recommendations {
		w.line("- " + r)
	}
	w.pdf.Ln(4)
}

func (w *writer) macros(p *models.Plan) {
	t := p.Targets
	w.heading(fmt.Sprintf("Daily Targets: %d kcal", t.TotalCalories))

	widths := []float64{40, 30, 30, 30}
	w.row(widths, []string{"Macro", "Grams", "Calories", "%"}, "C")
	for _, r := range []struct {
		name string
		m    models.MacroTarget
	}{
		{"Protein", t.Protein},
		{"Carbs", t.Carbs},
		{"Fat", t.Fat},
	} {
		w.row(widths, []string{r.name, strconv.Itoa(r.m.Grams), strconv.Itoa(r.m.Calories), strconv.Itoa(r.m.Percentage)}, "C")
	}
	w.line("")
	w.line(fmt.Sprintf("Fiber %d g. Water %.1f L.", t.Fiber, t.Water))
	w.pdf.Ln(4)
}

func (w *writer) meals(p *models.Plan) {
	if len(p.MealTimings) == 0 {
		return
	}
	w.heading("Meals")

	widths := []float64{35, 18, 28, 20, 89}
	w.row(widths, []string{"Meal", "Time", "Window", "kcal", "Focus"}, "C")
	for _, m := range p.MealTimings {
		w.row(widths, []string{
			mealLabel(m.MealType),
			m.RecommendedTime.String(),
			m.TimeWindow.String(),
			strconv.Itoa(m.Calories),
			strings.Join(m.MacroFocus, ", "),
		}, "L")
	}
	w.pdf.Ln(4)
}

func (w *writer) hydration(p *models.Plan) {
	if len(p.Schedule.HydrationSchedule) == 0 {
		return
	}
	w.heading("Hydration")

	widths := []float64{20, 40, 130}
	for _, h := range p.Schedule.HydrationSchedule {
		w.row(widths, []string{h.Time.String(), h.Amount, h.Note}, "L")
	}
	w.pdf.Ln(4)
}

func (w *writer) shopping(p *models.Plan) {
	s := p.Shopping
	if len(s.FocusAreas) == 0 && len(s.PriorityItems) == 0 {
		return
	}
	w.heading("Shopping Focus")

	for _, f := range s.FocusAreas {
		w.line(fmt.Sprintf("%s %d%%: %s", f.Category, f.Percentage, f.Reasoning))
	}
	for _, item := range s.PriorityItems {
		w.line("- " + item)
	}
}

// mealLabel turns "afternoon_snack" into "Afternoon snack".
func mealLabel(t models.MealType) string {
	s := strings.ReplaceAll(string(t), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
