package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type HTTPServer struct {
	httpServer *http.Server
	log        *logrus.Logger
}

func NewHTTPServer(addr string, handler http.Handler, log *logrus.Logger) HTTPServer {
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return HTTPServer{httpServer: s, log: log}
}

// Run blocks until the server stops and then calls stopFn so the caller can
// unwind even when the listener fails on its own.
func (s HTTPServer) Run(stopFn context.CancelFunc) {
	defer stopFn()

	s.log.WithField("addr", s.httpServer.Addr).Info("http server listening")
	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.WithError(err).Error("unexpected server shutdown")
	}
}

func (s HTTPServer) Close(ctx context.Context) {
	s.log.Info("closing http server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.log.WithError(err).Error("failed to shutdown gracefully")
		return
	}
	s.log.Info("http server is closed")
}
