// Package api pkg/api/server.go exposes the fleet state, history, alerts
// and remediation controls over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/fdot3/camwatch/pkg/db"
	"github.com/fdot3/camwatch/pkg/health"
	"github.com/fdot3/camwatch/pkg/metrics"
	"github.com/fdot3/camwatch/pkg/remediation"
)

const (
	defaultHistoryHours = 24
	defaultHistoryLimit = 1000
	readHeaderTimeout   = 10 * time.Second
)

// SummarySender triggers an on-demand fleet health digest.
type SummarySender interface {
	SendSummary(ctx context.Context) error
}

// Server is the HTTP API for camwatch.
type Server struct {
	router      *mux.Router
	httpServer  *http.Server
	listenAddr  string
	store       db.Service
	tracker     *health.Tracker
	monitor     *health.Monitor
	collector   metrics.MetricCollector
	remediation *remediation.Controller
	summary     SummarySender
	hub         *Hub
}

func NewServer(
	listenAddr string,
	store db.Service,
	tracker *health.Tracker,
	monitor *health.Monitor,
	collector metrics.MetricCollector,
	remediationCtrl *remediation.Controller,
	summary SummarySender,
) *Server {
	s := &Server{
		router:      mux.NewRouter(),
		listenAddr:  listenAddr,
		store:       store,
		tracker:     tracker,
		monitor:     monitor,
		collector:   collector,
		remediation: remediationCtrl,
		summary:     summary,
		hub:         NewHub(),
	}

	s.setupRoutes()

	return s
}

// Hub returns the websocket hub, for wiring into the monitor as an outcome
// handler.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) setupRoutes() {
	// Add CORS middleware
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Fleet and device state
	s.router.HandleFunc("/api/devices", s.getDevices).Methods("GET")
	s.router.HandleFunc("/api/devices/{name}", s.getDevice).Methods("GET")
	s.router.HandleFunc("/api/devices/{name}/check", s.checkDevice).Methods("POST")
	s.router.HandleFunc("/api/devices/{name}/history", s.getDeviceHistory).Methods("GET")
	s.router.HandleFunc("/api/devices/{name}/metrics", s.getDeviceMetrics).Methods("GET")
	s.router.HandleFunc("/api/devices/{name}/uptime", s.getDeviceUptime).Methods("GET")

	// Fleet summary and history
	s.router.HandleFunc("/api/status", s.getStatus).Methods("GET")
	s.router.HandleFunc("/api/history", s.getSystemHistory).Methods("GET")
	s.router.HandleFunc("/api/summary", s.sendSummary).Methods("POST")

	// Alerts
	s.router.HandleFunc("/api/alerts", s.getAlerts).Methods("GET")
	s.router.HandleFunc("/api/alerts/{id}/acknowledge", s.acknowledgeAlert).Methods("POST")
	s.router.HandleFunc("/api/alerts/{id}/resolve", s.resolveAlert).Methods("POST")

	// Remediation
	s.router.HandleFunc("/api/remediation", s.getRemediationStates).Methods("GET")
	s.router.HandleFunc("/api/remediation/{name}/clear", s.clearRemediation).Methods("POST")

	// Live transition stream
	s.router.HandleFunc("/api/live", s.hub.ServeWS)
}

// Start begins serving the API. It blocks until the listener fails or the
// server is stopped.
func (s *Server) Start(_ context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.listenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.Printf("Starting API server on %s", s.listenAddr)

	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("API server failed: %w", err)
	}

	return nil
}

// Stop shuts the API down gracefully, closing websocket clients first.
func (s *Server) Stop(ctx context.Context) error {
	s.hub.Close()

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) getDevices(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.GetAllStatuses())
}

func (s *Server) getDevice(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	record, ok := s.tracker.GetStatus(name)
	if !ok {
		writeError(w, http.StatusNotFound, "device not found")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (s *Server) checkDevice(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	outcome, err := s.monitor.CheckNow(r.Context(), name)
	if errors.Is(err, health.ErrUnknownDevice) {
		writeError(w, http.StatusNotFound, "device not found")
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) getDeviceHistory(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	hours := queryInt(r, "hours", defaultHistoryHours)
	limit := queryInt(r, "limit", defaultHistoryLimit)

	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	events, err := s.store.GetDeviceHistory(name, since, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, events)
}

func (s *Server) getDeviceMetrics(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	points := s.collector.GetSamples(name)
	if points == nil {
		writeError(w, http.StatusNotFound, "no metrics for device")
		return
	}

	writeJSON(w, http.StatusOK, points)
}

func (s *Server) getDeviceUptime(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	hours := queryInt(r, "hours", defaultHistoryHours)

	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	uptime, total, err := s.store.ComputeUptime(name, since)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"device_name":       name,
		"window_hours":      hours,
		"uptime_percentage": uptime,
		"total_checks":      total,
	})
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Statistics())
}

func (s *Server) getSystemHistory(w http.ResponseWriter, r *http.Request) {
	hours := queryInt(r, "hours", defaultHistoryHours)
	bucketMinutes := queryInt(r, "bucket", 60)

	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	points, err := s.store.GetSystemHistory(since, time.Duration(bucketMinutes)*time.Minute)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, points)
}

func (s *Server) getAlerts(w http.ResponseWriter, r *http.Request) {
	status := db.AlertStatus(r.URL.Query().Get("status"))
	limit := queryInt(r, "limit", 100)

	alerts, err := s.store.ListAlerts(status, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, alerts)
}

func (s *Server) acknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid alert id")
		return
	}

	var body struct {
		AcknowledgedBy string `json:"acknowledged_by"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.AcknowledgedBy == "" {
		writeError(w, http.StatusBadRequest, "acknowledged_by is required")
		return
	}

	err = s.store.AcknowledgeAlert(id, body.AcknowledgedBy)
	if errors.Is(err, db.ErrAlertNotFound) {
		writeError(w, http.StatusNotFound, "alert not found or not in triggered state")
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "acknowledged"})
}

func (s *Server) resolveAlert(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid alert id")
		return
	}

	err = s.store.ResolveAlert(id)
	if errors.Is(err, db.ErrAlertNotFound) {
		writeError(w, http.StatusNotFound, "alert not found or already resolved")
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "resolved"})
}

func (s *Server) sendSummary(w http.ResponseWriter, r *http.Request) {
	if err := s.summary.SendSummary(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (s *Server) getRemediationStates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.remediation.ListStates())
}

func (s *Server) clearRemediation(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	// The body is optional; without it only the in-flight guard is released
	// and the reboot cooldown stays in place.
	var body struct {
		ResetCooldown bool `json:"reset_cooldown"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.remediation.Clear(name, body.ResetCooldown)
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}

	return value
}
