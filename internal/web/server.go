package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hyunwoolee/wonfolio/internal/domain"
)

type reportFeed interface {
	Latest() *domain.Report
	Subscribe() chan domain.Report
	Unsubscribe(chan domain.Report)
}

// Server exposes the latest consolidated report over HTTP: an HTML page, a
// JSON snapshot endpoint and an SSE stream that pushes each new run.
type Server struct {
	Addr string
	Feed reportFeed
}

func NewServer(addr string, feed reportFeed) *Server {
	return &Server{Addr: addr, Feed: feed}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/report", s.handleReport)
	mux.HandleFunc("/report/stream", s.handleReportStream)

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	latest := s.Feed.Latest()
	if latest == nil {
		http.Error(w, "no report produced yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(latest)
}

func (s *Server) handleReportStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := s.Feed.Subscribe()
	defer s.Feed.Unsubscribe(sub)

	if latest := s.Feed.Latest(); latest != nil {
		writeSSE(w, flusher, *latest)
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case report, ok := <-sub:
			if !ok {
				return
			}
			writeSSE(w, flusher, report)
		}
	}
}

func writeSSE(w http.ResponseWriter, flusher http.Flusher, report domain.Report) {
	payload, err := json.Marshal(report)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", payload)
	flusher.Flush()
}
