package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/chazu/enclose/pkg/metrics"
	"github.com/spf13/cobra"
)

// maxSourceBytes caps the size of a POST /evaluate body.
const maxSourceBytes = 1 << 20

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve scene evaluation over HTTP",
	Long: `serve accepts scene source on POST /evaluate and answers with the JSON
classification result. Prometheus metrics are exposed on GET /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           newMux(NewApp(cfg, log)),
			ReadHeaderTimeout: 10 * time.Second,
		}
		log.WithField("addr", cfg.Addr).Info("listening")
		return srv.ListenAndServe()
	},
}

func newMux(app *App) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/evaluate", evaluateHandler(app))
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

// evaluateHandler serialises requests: the engine supersedes an evaluation
// whenever a newer one starts, so concurrent requests would cancel each
// other.
func evaluateHandler(app *App) http.Handler {
	var mu sync.Mutex
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		source, err := io.ReadAll(io.LimitReader(r.Body, maxSourceBytes+1))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if len(source) > maxSourceBytes {
			http.Error(w, fmt.Sprintf("scene larger than %d bytes", maxSourceBytes), http.StatusRequestEntityTooLarge)
			return
		}

		mu.Lock()
		result := app.Evaluate(r.Context(), string(source))
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if !result.OK() {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}
		if err := json.NewEncoder(w).Encode(result); err != nil {
			app.log.WithError(err).Warn("writing response")
		}
	})
}
