// Package gateway exposes the coordinator over HTTP: the decoded snapshot,
// a register write endpoint, and Prometheus metrics.
package gateway

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oskari/Hassio-Parmair/internal/codec"
	"github.com/oskari/Hassio-Parmair/internal/coordinator"
	"github.com/oskari/Hassio-Parmair/internal/registers"
)

// Server wires the HTTP surface for one coordinator.
type Server struct {
	coord *coordinator.Coordinator
}

// New returns a Server for coord.
func New(coord *coordinator.Coordinator) *Server {
	return &Server{coord: coord}
}

// Handler builds the HTTP mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/snapshot", s.handleSnapshot)
	mux.HandleFunc("/api/write", s.handleWrite)

	return mux
}

// readingJSON is the wire form of one snapshot entry.
type readingJSON struct {
	Value  *float64 `json:"value,omitempty"`
	Absent bool     `json:"absent,omitempty"`
	Failed bool     `json:"failed,omitempty"`
}

type snapshotJSON struct {
	At         time.Time              `json:"at"`
	Generation registers.Generation   `json:"generation"`
	Values     map[string]readingJSON `json:"values"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sum := s.coord.DeviceSummary()
	writeJSON(w, map[string]any{
		"generation":       sum.Generation,
		"software_version": sum.SoftwareVersion,
		"heater":           sum.Heater,
		"model":            sum.Model,
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap := s.coord.Snapshot()
	if snap == nil {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	out := snapshotJSON{
		At:         snap.At,
		Generation: snap.Generation,
		Values:     make(map[string]readingJSON, len(snap.Values)),
	}
	for key, reading := range snap.Values {
		rj := readingJSON{Absent: reading.Value.Absent, Failed: reading.Failed}
		if !reading.Failed && !reading.Value.Absent {
			v := reading.Value.Number
			rj.Value = &v
		}
		out.Values[key] = rj
	}
	writeJSON(w, out)
}

type writeRequest struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req writeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Key == "" {
		http.Error(w, "key is required", http.StatusBadRequest)
		return
	}
	err := s.coord.Write(req.Key, req.Value)
	switch {
	case err == nil:
		writeJSON(w, map[string]string{"status": "ok"})
	case errors.Is(err, registers.ErrUnknownKey):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, codec.ErrNotWritable), errors.Is(err, codec.ErrOutOfRange):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("gateway: encode response: %v", err)
	}
}
