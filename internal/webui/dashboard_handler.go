package webui

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"studentinsight.dev/dashboard/internal/dataset"
	"studentinsight.dev/dashboard/internal/students"
	"studentinsight.dev/dashboard/internal/summary"
	"studentinsight.dev/dashboard/internal/utils"
)

const emptySelectionWarning = "Please select at least one student."

var sliceColors = [...]string{"#4e79a7", "#f28e2b", "#59a14f"}

type dashboardData struct {
	Policy   string
	UserIDs  []string
	Selected map[string]bool
	Warning  string
	Error    string
	Summary  *summary.Result
	Charts   []chartView
}

type chartView struct {
	Title    string
	Gradient template.CSS
	Slices   []sliceView
}

type sliceView struct {
	Label   string
	Value   float64
	Percent float64
	Color   template.CSS
}

func newChartView(chart students.PieChart) chartView {
	view := chartView{Title: chart.Title}

	var stops []string
	start := 0.0
	for i, slice := range chart.Slices {
		color := sliceColors[i%len(sliceColors)]
		view.Slices = append(view.Slices, sliceView{
			Label:   slice.Label,
			Value:   slice.Value,
			Percent: slice.Percent,
			Color:   template.CSS(color),
		})
		end := start + slice.Percent
		stops = append(stops, fmt.Sprintf("%s %.2f%% %.2f%%", color, start, end))
		start = end
	}

	if chart.Total <= 0 {
		view.Gradient = "conic-gradient(#dddddd 0% 100%)"
		return view
	}
	view.Gradient = template.CSS("conic-gradient(" + strings.Join(stops, ", ") + ")")
	return view
}

// newDashboardData fills the parts of the page every handler needs.
func (webUI *WebUI) newDashboardData(r *http.Request, selected []string) (dashboardData, error) {
	ids, err := webUI.DatasetManager.UserIDs(r.Context())
	if err != nil {
		return dashboardData{}, err
	}

	data := dashboardData{
		Policy:   string(webUI.DatasetManager.ScorePolicy()),
		UserIDs:  ids,
		Selected: make(map[string]bool, len(selected)),
	}
	for _, id := range selected {
		data.Selected[id] = true
	}
	return data, nil
}

func (webUI *WebUI) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	data, err := webUI.newDashboardData(r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	webUI.render(w, r, http.StatusOK, dashboardTemplate, data)
}

// analyzeHandler summarizes the students selected in the dashboard form.
func (webUI *WebUI) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	selection := formSelection(r.PostForm, "ids")

	data, err := webUI.newDashboardData(r, selection)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if fieldErrors := utils.ValidateSelection(selection, webUI.Config.MaxSelection); len(fieldErrors) > 0 {
		data.Warning = strings.Join(fieldErrors["userIds"], "; ")
		webUI.render(w, r, http.StatusBadRequest, dashboardTemplate, data)
		return
	}

	if len(summary.NormalizeSelection(selection)) == 0 {
		data.Warning = emptySelectionWarning
		webUI.render(w, r, http.StatusOK, dashboardTemplate, data)
		return
	}

	aggregated, err := webUI.DatasetManager.Aggregated(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	result, err := webUI.Analyzer.Analyze(r.Context(), aggregated, selection)
	switch {
	case errors.Is(err, summary.ErrEmptySelection):
		data.Warning = emptySelectionWarning
		webUI.render(w, r, http.StatusOK, dashboardTemplate, data)
		return
	case err != nil:
		data.Error = err.Error()
		webUI.render(w, r, http.StatusBadGateway, dashboardTemplate, data)
		return
	}

	data.Summary = &result
	webUI.render(w, r, http.StatusOK, dashboardTemplate, data)
}

// formSelection reads the ids of a form or query parameter with any markup stripped.
func formSelection(values url.Values, key string) []string {
	ids := utils.ParseIDList(values, key)
	for i, id := range ids {
		ids[i] = utils.SanitizeInput(id)
	}
	return ids
}

// chartHandler renders one pie per selected student.
func (webUI *WebUI) chartHandler(w http.ResponseWriter, r *http.Request) {
	selection := summary.NormalizeSelection(formSelection(r.URL.Query(), "ids"))

	data, err := webUI.newDashboardData(r, selection)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(selection) == 0 {
		data.Warning = emptySelectionWarning
		webUI.render(w, r, http.StatusOK, dashboardTemplate, data)
		return
	}

	var missing []string
	for _, id := range selection {
		rec, err := webUI.DatasetManager.Student(r.Context(), id)
		if errors.Is(err, dataset.ErrStudentNotFound) {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data.Charts = append(data.Charts, newChartView(students.ChartTotals(rec)))
	}

	if len(missing) > 0 {
		data.Warning = fmt.Sprintf("No data found for student ID: %s", strings.Join(missing, ", "))
	}
	webUI.render(w, r, http.StatusOK, dashboardTemplate, data)
}
