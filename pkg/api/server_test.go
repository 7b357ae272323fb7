package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fdot3/camwatch/pkg/config"
	"github.com/fdot3/camwatch/pkg/db"
	"github.com/fdot3/camwatch/pkg/health"
	"github.com/fdot3/camwatch/pkg/metrics"
	"github.com/fdot3/camwatch/pkg/models"
	"github.com/fdot3/camwatch/pkg/probe"
	"github.com/fdot3/camwatch/pkg/remediation"
)

var testDevice = models.Device{Name: "lobby-cam", IP: "10.0.0.11"}

type stubSummary struct {
	calls int
	err   error
}

func (s *stubSummary) SendSummary(context.Context) error {
	s.calls++
	return s.err
}

type fixture struct {
	store     *db.MockService
	prober    *probe.MockProber
	tracker   *health.Tracker
	monitor   *health.Monitor
	collector *metrics.Manager
	summary   *stubSummary
	server    *Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	store := db.NewMockService(ctrl)
	prober := probe.NewMockProber(ctrl)
	tracker := health.NewTracker(store)
	monitor := health.NewMonitor([]models.Device{testDevice}, prober, tracker, time.Minute, 1)
	collector := metrics.NewManager(16)

	remediationCtrl := remediation.NewController(store, remediation.NewMockAction(ctrl), config.RemediationConfig{})

	summary := &stubSummary{}
	server := NewServer("127.0.0.1:0", store, tracker, monitor, collector, remediationCtrl, summary)

	return &fixture{
		store:     store,
		prober:    prober,
		tracker:   tracker,
		monitor:   monitor,
		collector: collector,
		summary:   summary,
		server:    server,
	}
}

func (f *fixture) seedOnline(t *testing.T) {
	t.Helper()

	f.store.EXPECT().RecordHealthCheck(gomock.Any(), gomock.Any()).Return(nil)

	f.tracker.RecordCheck(testDevice, models.ProbeResult{
		ConnectivityOK: true,
		ConnectivityMs: 12,
		MediaOK:        true,
		MediaMs:        80,
	}, models.OriginScheduled, time.Now())
}

func doRequest(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestGetDevices(t *testing.T) {
	f := newFixture(t)
	f.seedOnline(t)

	rec := doRequest(f.server.Router(), http.MethodGet, "/api/devices", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var devices []db.DeviceHealth

	require.NoError(t, json.NewDecoder(rec.Body).Decode(&devices))
	require.Len(t, devices, 1)
	assert.Equal(t, "lobby-cam", devices[0].DeviceName)
	assert.Equal(t, models.StatusOnline, devices[0].Status)
}

func TestGetDeviceNotFound(t *testing.T) {
	f := newFixture(t)

	rec := doRequest(f.server.Router(), http.MethodGet, "/api/devices/no-such-cam", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestManualCheck(t *testing.T) {
	f := newFixture(t)

	f.prober.EXPECT().Probe(gomock.Any(), testDevice).Return(models.ProbeResult{
		ConnectivityOK: true,
		MediaOK:        true,
	})
	f.store.EXPECT().RecordHealthCheck(gomock.Any(), gomock.Any()).Return(nil)

	rec := doRequest(f.server.Router(), http.MethodPost, "/api/devices/lobby-cam/check", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var outcome health.CheckOutcome

	require.NoError(t, json.NewDecoder(rec.Body).Decode(&outcome))
	assert.Equal(t, models.StatusOnline, outcome.Current)
	assert.Equal(t, models.OriginManual, outcome.Origin)
}

func TestManualCheckUnknownDevice(t *testing.T) {
	f := newFixture(t)

	rec := doRequest(f.server.Router(), http.MethodPost, "/api/devices/ghost/check", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetStatus(t *testing.T) {
	f := newFixture(t)
	f.seedOnline(t)

	rec := doRequest(f.server.Router(), http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats health.Statistics

	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Online)
}

func TestGetDeviceHistory(t *testing.T) {
	f := newFixture(t)

	f.store.EXPECT().GetDeviceHistory("lobby-cam", gomock.Any(), 10).Return([]db.HealthCheckEvent{
		{DeviceName: "lobby-cam", Status: models.StatusOnline},
	}, nil)

	rec := doRequest(f.server.Router(), http.MethodGet, "/api/devices/lobby-cam/history?limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var events []db.HealthCheckEvent

	require.NoError(t, json.NewDecoder(rec.Body).Decode(&events))
	require.Len(t, events, 1)
}

func TestGetDeviceMetrics(t *testing.T) {
	f := newFixture(t)

	f.collector.AddSample("lobby-cam", time.Now(), 12, 80, models.StatusOnline)

	rec := doRequest(f.server.Router(), http.MethodGet, "/api/devices/lobby-cam/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(f.server.Router(), http.MethodGet, "/api/devices/ghost/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDeviceUptime(t *testing.T) {
	f := newFixture(t)

	f.store.EXPECT().ComputeUptime("lobby-cam", gomock.Any()).Return(98.5, 200, nil)

	rec := doRequest(f.server.Router(), http.MethodGet, "/api/devices/lobby-cam/uptime?hours=48", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}

	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.InDelta(t, 98.5, body["uptime_percentage"], 0.001)
	assert.InDelta(t, 48, body["window_hours"], 0.001)
}

func TestAlertLifecycleEndpoints(t *testing.T) {
	f := newFixture(t)

	f.store.EXPECT().ListAlerts(db.AlertTriggered, 100).Return([]db.Alert{
		{ID: 5, DeviceName: "lobby-cam", Type: db.AlertTypeOffline, Status: db.AlertTriggered},
	}, nil)

	rec := doRequest(f.server.Router(), http.MethodGet, "/api/alerts?status=triggered", "")
	require.Equal(t, http.StatusOK, rec.Code)

	f.store.EXPECT().AcknowledgeAlert(int64(5), "jordan").Return(nil)

	rec = doRequest(f.server.Router(), http.MethodPost, "/api/alerts/5/acknowledge",
		`{"acknowledged_by":"jordan"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(f.server.Router(), http.MethodPost, "/api/alerts/5/acknowledge", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.store.EXPECT().ResolveAlert(int64(5)).Return(db.ErrAlertNotFound)

	rec = doRequest(f.server.Router(), http.MethodPost, "/api/alerts/5/resolve", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemediationEndpoints(t *testing.T) {
	f := newFixture(t)

	rec := doRequest(f.server.Router(), http.MethodGet, "/api/remediation", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(f.server.Router(), http.MethodPost, "/api/remediation/lobby-cam/clear", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(f.server.Router(), http.MethodPost, "/api/remediation/lobby-cam/clear",
		`{"reset_cooldown":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(f.server.Router(), http.MethodPost, "/api/remediation/lobby-cam/clear", `{bad`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendSummary(t *testing.T) {
	f := newFixture(t)

	rec := doRequest(f.server.Router(), http.MethodPost, "/api/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.summary.calls)

	f.summary.err = fmt.Errorf("smtp down")

	rec = doRequest(f.server.Router(), http.MethodPost, "/api/summary", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWebsocketStream(t *testing.T) {
	f := newFixture(t)

	server := httptest.NewServer(f.server.Router())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/live"

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
		_ = conn.Close()
	}()

	require.Eventually(t, func() bool {
		return f.server.Hub().ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	outcome := &health.CheckOutcome{
		Device:    testDevice,
		Previous:  models.StatusOnline,
		Current:   models.StatusOffline,
		Changed:   true,
		Timestamp: time.Now(),
	}

	f.server.Hub().HandleOutcome(outcome)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))

	var received health.CheckOutcome

	require.NoError(t, conn.ReadJSON(&received))
	assert.Equal(t, "lobby-cam", received.Device.Name)
	assert.Equal(t, models.StatusOffline, received.Current)

	f.server.Hub().Close()
	assert.Zero(t, f.server.Hub().ClientCount())
}
