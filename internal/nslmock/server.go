// Package nslmock is an in-memory stand-in for the vendor telemetry
// endpoint, used for local development and integration tests. It speaks
// the same single-URL protocol as the real service: a GET with `email`,
// `apiKey`, `method`, and a JSON `params` query argument, answered with
// a `{success, return, errorCode?, description?}` envelope. Protocol
// errors still come back as HTTP 200, the way the real endpoint
// behaves.
package nslmock

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var startTime = time.Now()

const (
	errCodeUnknownMethod = 101
	errCodeBadCredential = 102
	errCodeBadParams     = 103
)

type Server struct {
	Email  string
	APIKey string

	mu      sync.Mutex
	details map[string]any
	packets []map[string]any
	uplinks []map[string]any
}

func New(email, apiKey string) *Server {
	return &Server{
		Email:   email,
		APIKey:  apiKey,
		details: DefaultMissionDetails(),
		packets: DefaultPackets(),
	}
}

// SetMissionDetails replaces the mission-details fixture.
func (s *Server) SetMissionDetails(details map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details = details
}

// AddPacket appends a packet to the recent-packets fixture.
func (s *Server) AddPacket(packet map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packets = append(s.packets, packet)
}

// Uplinks returns the uplink commands received so far.
func (s *Server) Uplinks() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, len(s.uplinks))
	copy(out, s.uplinks)
	return out
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/health", s.handleHealth)
	r.Get("/webAPI.php", s.handleAPI)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"uptime": time.Since(startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("email") != s.Email || q.Get("apiKey") != s.APIKey {
		writeFailure(w, errCodeBadCredential, "invalid email or API key")
		return
	}

	switch method := q.Get("method"); method {
	case "getMissionDetails":
		s.mu.Lock()
		details := s.details
		s.mu.Unlock()
		writeSuccess(w, details)
	case "getRecentPackets":
		s.mu.Lock()
		packets := make([]map[string]any, len(s.packets))
		copy(packets, s.packets)
		s.mu.Unlock()
		writeSuccess(w, packets)
	case "sendUplinkCommand":
		s.handleSendUplink(w, q.Get("params"))
	default:
		writeFailure(w, errCodeUnknownMethod, "unknown method "+method)
	}
}

func (s *Server) handleSendUplink(w http.ResponseWriter, params string) {
	var cmd map[string]any
	if err := json.Unmarshal([]byte(params), &cmd); err != nil {
		writeFailure(w, errCodeBadParams, "params must be a JSON object")
		return
	}

	s.mu.Lock()
	s.uplinks = append(s.uplinks, cmd)
	commandID := len(s.uplinks)
	s.mu.Unlock()

	writeSuccess(w, map[string]any{
		"queued":    true,
		"commandID": commandID,
	})
}

func writeSuccess(w http.ResponseWriter, ret any) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"return":  ret,
	})
}

func writeFailure(w http.ResponseWriter, code int, description string) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":     false,
		"errorCode":   code,
		"description": description,
		"return":      nil,
	})
}
