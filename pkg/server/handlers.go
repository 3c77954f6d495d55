package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"gitlab.com/tinyland/lab/browserhome/pkg/app"
	"gitlab.com/tinyland/lab/browserhome/pkg/collectors"
)

// StatusResponse is the body of GET /api/status.
type StatusResponse struct {
	Version    string                       `json:"version,omitempty"`
	Greeted    bool                         `json:"greeted"`
	Generated  time.Time                    `json:"generated"`
	Widgets    []app.WidgetStatus           `json:"widgets"`
	Collectors []collectors.CollectorStatus `json:"collectors"`
}

// HandleIndex serves the latest rendered page.
func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.Snapshot()
	if snap == nil {
		http.Error(w, "page not ready", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Last-Modified", snap.Generated.UTC().Format(http.TimeFormat))
	if _, err := io.WriteString(w, snap.HTML); err != nil {
		s.logger.Debug("write page", "error", err)
	}
}

// HandleStatus reports widget states and collector health as JSON.
func (s *Server) HandleStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Version:    s.opts.Version,
		Widgets:    []app.WidgetStatus{},
		Collectors: []collectors.CollectorStatus{},
	}
	if snap := s.Snapshot(); snap != nil {
		resp.Greeted = snap.Greeted
		resp.Generated = snap.Generated
		resp.Widgets = snap.Widgets
	}
	if s.statuses != nil {
		resp.Collectors = s.statuses.AllStatus()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// HandleRefresh asks the page to reload one widget.
func (s *Server) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "widget")
	if s.opts.Refresh == nil {
		http.Error(w, "refresh not supported", http.StatusNotImplemented)
		return
	}
	if !s.hasWidget(id) {
		http.Error(w, "unknown widget", http.StatusNotFound)
		return
	}
	s.opts.Refresh(id)
	s.writeJSON(w, http.StatusAccepted, map[string]string{"widget": id, "status": "refreshing"})
}

func (s *Server) hasWidget(id string) bool {
	snap := s.Snapshot()
	if snap == nil {
		return false
	}
	for _, st := range snap.Widgets {
		if st.ID == id {
			return true
		}
	}
	return false
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.logger.Debug("write json", "error", err)
	}
}
