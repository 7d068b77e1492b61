// Package profiling serves the pprof handlers on a localhost-only listener.
package profiling

import (
	"log/slog"
	"net/http"
	"time"
)

const listenAddress = "localhost:9091"

// Enable starts the profiling listener in the background. The pprof handlers
// themselves register on the default mux through their package import.
func Enable() {
	go func() {
		server := &http.Server{
			Addr:              listenAddress,
			ReadHeaderTimeout: 2 * time.Second,
		}

		if err := server.ListenAndServe(); err != nil {
			slog.Error("profiling server exited", "error", err)
		}
	}()

	slog.Info("profiling enabled", "endpoint", "http://"+listenAddress+"/debug/pprof")
}
