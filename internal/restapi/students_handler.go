package restapi

import (
	"errors"
	"net/http"

	"studentinsight.dev/dashboard/internal/dataset"
	"studentinsight.dev/dashboard/internal/models"
	"studentinsight.dev/dashboard/internal/students"
	"studentinsight.dev/dashboard/internal/utils"
)

// studentsHandler lists the distinct user ids of the dataset.
func (api *RestAPI) studentsHandler(w http.ResponseWriter, r *http.Request) {
	ids, err := api.DatasetManager.UserIDs(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}

	api.sendResponse(w, r, models.NewListResponse(ids, false))
}

func (api *RestAPI) studentHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := api.lookupStudent(w, r)
	if !ok {
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewStudentEntry(rec)))
}

func (api *RestAPI) chartHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := api.lookupStudent(w, r)
	if !ok {
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(students.ChartTotals(rec)))
}

// lookupStudent resolves the :id route parameter. It writes the error
// response itself and reports false when the handler should stop.
func (api *RestAPI) lookupStudent(w http.ResponseWriter, r *http.Request) (students.AggregatedRecord, bool) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {err.Error()},
		})
		return students.AggregatedRecord{}, false
	}

	rec, err := api.DatasetManager.Student(r.Context(), id)
	if errors.Is(err, dataset.ErrStudentNotFound) {
		api.sendNotFound(w, r)
		return students.AggregatedRecord{}, false
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return students.AggregatedRecord{}, false
	}

	return rec, true
}
