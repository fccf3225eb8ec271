package restapi

import (
	"fmt"
	"net/http"

	"studentinsight.dev/dashboard/internal/models"
)

func (api *RestAPI) datasetStatsHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewEntryResponse(api.DatasetManager.Statistics()))
}

// datasetClearHandler drops the cached dataset and loads it again.
func (api *RestAPI) datasetClearHandler(w http.ResponseWriter, r *http.Request) {
	if err := api.DatasetManager.Reload(r.Context()); err != nil {
		api.upstreamErrorResponse(w, r, fmt.Errorf("dataset reload failed: %w", err))
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(api.DatasetManager.Statistics()))
}
