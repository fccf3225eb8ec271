package restapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"studentinsight.dev/dashboard/internal/models"
	"studentinsight.dev/dashboard/internal/summary"
	"studentinsight.dev/dashboard/internal/utils"
)

const (
	maxAnalyzeBodyBytes = 1 << 20
	emptySelectionText  = "Please select at least one student."
)

type analyzeRequest struct {
	UserIDs []string `json:"userIds"`
}

// analyzeHandler summarizes the students named in the request body.
func (api *RestAPI) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAnalyzeBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"body": {"request body must be a JSON object with a userIds array"},
		})
		return
	}

	if fieldErrors := utils.ValidateSelection(req.UserIDs, api.Config.MaxSelection); len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if len(summary.NormalizeSelection(req.UserIDs)) == 0 {
		api.errorResponse(w, r, http.StatusBadRequest, emptySelectionText)
		return
	}

	ctx := r.Context()
	aggregated, err := api.DatasetManager.Aggregated(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	result, err := api.Analyzer.Analyze(ctx, aggregated, req.UserIDs)
	switch {
	case errors.Is(err, summary.ErrEmptySelection):
		api.errorResponse(w, r, http.StatusBadRequest, emptySelectionText)
		return
	case errors.Is(err, summary.ErrNoSummarizer):
		api.errorResponse(w, r, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		api.upstreamErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(result))
}
