package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"nonet/internal/adapters/core"
	httpadapter "nonet/internal/adapters/http"
	"nonet/internal/analyzer"
	"nonet/internal/counters"
	"nonet/internal/memo"
	"nonet/internal/transport/ws"
	"nonet/internal/usecase"
)

// statusWriter captures the HTTP status and byte count written, for
// request logging.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Int("bytes", sw.bytes).
			Dur("dur", time.Since(start)).
			Msg("http")
	})
}

func newServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve analysis over HTTP and WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func runServe(addr string) error {
	uc := usecase.NewService(
		core.Solver{},
		core.Analyzer{Core: analyzer.New(memo.NewReal(), counters.New(), analyzer.Options{
			ParityReduction:            true,
			MaximizeSolutionsRemaining: true,
			Logger:                     logger,
		})},
		core.Validator{},
	)

	mux := http.NewServeMux()
	httpadapter.New(uc).Register(mux)
	mux.Handle("/ws", ws.New(uc, logger))

	srv := &http.Server{
		Addr:              addr,
		Handler:           requestLogger(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().Str("addr", addr).Msg("listening")
	return srv.ListenAndServe()
}
