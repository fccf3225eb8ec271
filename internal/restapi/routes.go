package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func validateAPIKey(api *RestAPI, finalHandler http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// protect applies the per-route middleware of every JSON endpoint.
func (api *RestAPI) protect(finalHandler http.HandlerFunc) http.Handler {
	handler := securityHeaders(validateAPIKey(api, finalHandler))
	if api.rateLimiter != nil {
		handler = api.rateLimiter.Handler(handler)
	}
	return handler
}

// SetRoutes registers the JSON API on router.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/students.json", api.protect(api.studentsHandler))
	router.Handler(http.MethodGet, "/api/students/:id", api.protect(api.studentHandler))
	router.Handler(http.MethodGet, "/api/chart/:id", api.protect(api.chartHandler))
	router.Handler(http.MethodPost, "/api/analyze.json", api.protect(api.analyzeHandler))
	router.Handler(http.MethodGet, "/api/dataset/stats.json", api.protect(api.datasetStatsHandler))
	router.Handler(http.MethodPost, "/api/dataset/clear.json", api.protect(api.datasetClearHandler))
}

// WithMiddleware wraps the whole server handler with request logging and compression.
func (api *RestAPI) WithMiddleware(handler http.Handler) http.Handler {
	return NewRequestLoggingMiddleware(api.Logger)(CompressionMiddleware(handler))
}

// Routes returns a handler serving only the JSON API.
func (api *RestAPI) Routes() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)
	return api.WithMiddleware(router)
}
