package handlers

import "net/http"

type HealthCheck func(r *http.Request) error

// HealthStats reports resource usage, such as connection pools, under "stats" in /health.
type HealthStats func() map[string]interface{}

func NewRouter(api *HTTPHandler, redirect *RedirectHandler, checks map[string]HealthCheck, stats map[string]HealthStats) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/encode", api.Encode)
	mux.HandleFunc("GET /api/decode/{hash}", api.Decode)
	mux.HandleFunc("POST /api/encode-hex", api.EncodeHex)
	mux.HandleFunc("GET /api/decode-hex/{hash}", api.DecodeHex)
	mux.HandleFunc("POST /api/links", api.CreateLink)
	mux.HandleFunc("GET /api/links", api.ListLinks)
	mux.HandleFunc("GET /api/links/{code}/stats", api.LinkStats)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		status := map[string]interface{}{}
		code := http.StatusOK
		for name, check := range checks {
			if err := check(r); err != nil {
				status[name] = err.Error()
				code = http.StatusServiceUnavailable
			} else {
				status[name] = "ok"
			}
		}
		if len(stats) > 0 {
			details := make(map[string]interface{}, len(stats))
			for name, report := range stats {
				details[name] = report()
			}
			status["stats"] = details
		}
		respondJSON(w, code, status)
	})
	mux.HandleFunc("GET /{code}", redirect.HandleRedirect)

	return mux
}
