package webui

import (
	"net/http"

	"github.com/davecgh/go-spew/spew"
)

type debugData struct {
	Title string
	Pre   string
}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, r *http.Request, title string, data interface{}) {
	webUI.render(w, r, http.StatusOK, debugTemplate, debugData{
		Title: title,
		Pre:   spew.Sdump(data),
	})
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string
	var err error

	switch dataType {
	case "raw":
		data, err = webUI.DatasetManager.Records(r.Context())
		title = "Dataset - Raw rows"
	case "aggregated":
		data, err = webUI.DatasetManager.Aggregated(r.Context())
		title = "Dataset - Aggregated students"
	case "stats":
		data = webUI.DatasetManager.Statistics()
		title = "Dataset - Statistics"
	default:
		data = map[string]string{
			"error": "Please use one of the following: raw, aggregated, stats.",
		}
		title = "Choose a data type"
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	webUI.writeDebugData(w, r, title, data)
}
