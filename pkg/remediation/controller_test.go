package remediation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fdot3/camwatch/pkg/config"
	"github.com/fdot3/camwatch/pkg/db"
	"github.com/fdot3/camwatch/pkg/health"
	"github.com/fdot3/camwatch/pkg/models"
)

var testDevice = models.Device{Name: "lobby-cam", IP: "10.0.0.11"}

func testConfig() config.RemediationConfig {
	return config.RemediationConfig{
		Enabled:         true,
		RebootThreshold: 6,
		CooldownHours:   24,
		Operator:        "camwatch",
	}
}

func failingOutcome(failures int, at time.Time) *health.CheckOutcome {
	return &health.CheckOutcome{
		Device:              testDevice,
		Current:             models.StatusOffline,
		Previous:            models.StatusOffline,
		ConsecutiveFailures: failures,
		Timestamp:           at,
	}
}

// expectReboot arms the action and store mocks for one auto-reboot and
// returns a channel that closes once the audit record lands.
func expectReboot(store *db.MockService, action *MockAction, rebootErr error, ticketID int64) chan struct{} {
	recorded := make(chan struct{})

	action.EXPECT().Reboot(gomock.Any(), testDevice, "camwatch", gomock.Any()).Return(nil, rebootErr)

	store.EXPECT().InsertReboot(gomock.Any()).DoAndReturn(func(record *db.RebootRecord) (int64, error) {
		record.ID = ticketID
		return ticketID, nil
	})
	store.EXPECT().GetOpenDowntime(testDevice.Name, time.Time{}).Return(&db.DowntimeInterval{ID: 3}, nil)
	store.EXPECT().SetDowntimeTicket(int64(3), ticketID).DoAndReturn(func(int64, int64) error {
		close(recorded)
		return nil
	})

	return recorded
}

func waitRecorded(t *testing.T, recorded chan struct{}) {
	t.Helper()

	select {
	case <-recorded:
	case <-time.After(time.Second):
		t.Fatal("reboot was not recorded")
	}
}

func TestRebootFiresAtThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	action := NewMockAction(ctrl)

	recorded := expectReboot(store, action, nil, 41)

	controller := NewController(store, action, testConfig())

	now := time.Now()

	// Below threshold: nothing happens.
	controller.HandleOutcome(failingOutcome(5, now))

	// At threshold: the reboot fires and is ticketed.
	controller.HandleOutcome(failingOutcome(6, now.Add(time.Minute)))
	waitRecorded(t, recorded)

	// The guard holds while the reboot is unconfirmed.
	controller.HandleOutcome(failingOutcome(7, now.Add(2*time.Minute)))

	states := controller.ListStates()
	require.Len(t, states, 1)
	assert.True(t, states[0].UnderRemediation)
	assert.NotNil(t, states[0].CooldownUntil)
}

func TestFailedRebootIsAudited(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	action := NewMockAction(ctrl)

	recorded := make(chan struct{})

	action.EXPECT().Reboot(gomock.Any(), testDevice, "camwatch", "auto: 6 consecutive failed checks").
		Return(nil, errors.New("unreachable"))
	store.EXPECT().InsertReboot(gomock.Any()).DoAndReturn(func(record *db.RebootRecord) (int64, error) {
		assert.Equal(t, "failure", record.Outcome)
		assert.Equal(t, "auto", record.RebootType)
		assert.Equal(t, "camwatch", record.Operator)
		assert.Equal(t, "auto: 6 consecutive failed checks", record.Reason)

		close(recorded)

		return 42, nil
	})
	store.EXPECT().GetOpenDowntime(testDevice.Name, time.Time{}).Return(nil, db.ErrNoOpenDowntime).AnyTimes()

	controller := NewController(store, action, testConfig())
	controller.HandleOutcome(failingOutcome(6, time.Now()))

	waitRecorded(t, recorded)
}

func TestRecoveryClearsGuardButNotCooldown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	action := NewMockAction(ctrl)

	recorded := expectReboot(store, action, nil, 41)

	controller := NewController(store, action, testConfig())

	now := time.Now()

	controller.HandleOutcome(failingOutcome(6, now))
	waitRecorded(t, recorded)

	// Device comes back: the in-flight guard clears but the cooldown stays,
	// so a fresh failure streak within the cooldown does not reboot again.
	controller.HandleOutcome(&health.CheckOutcome{
		Device:    testDevice,
		Current:   models.StatusOnline,
		Previous:  models.StatusOffline,
		Timestamp: now.Add(5 * time.Minute),
	})

	states := controller.ListStates()
	require.Len(t, states, 1)
	assert.False(t, states[0].UnderRemediation)
	require.NotNil(t, states[0].CooldownUntil)

	controller.HandleOutcome(failingOutcome(8, now.Add(time.Hour)))

	// Past the cooldown the device is eligible again.
	recorded = expectReboot(store, action, nil, 43)
	controller.HandleOutcome(failingOutcome(9, now.Add(25*time.Hour)))
	waitRecorded(t, recorded)
}

func TestDisabledControllerDoesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	action := NewMockAction(ctrl)

	cfg := testConfig()
	cfg.Enabled = false

	controller := NewController(store, action, cfg)
	controller.HandleOutcome(failingOutcome(100, time.Now()))
}

func TestRehydrateRestoresCooldown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	action := NewMockAction(ctrl)

	store.EXPECT().LastAutoReboot(testDevice.Name).Return(&db.RebootRecord{
		DeviceName: testDevice.Name,
		Timestamp:  time.Now().Add(-time.Hour),
		RebootType: "auto",
	}, nil)

	controller := NewController(store, action, testConfig())
	controller.Rehydrate([]models.Device{testDevice})

	// One hour into a 24 hour cooldown: no reboot.
	controller.HandleOutcome(failingOutcome(10, time.Now()))

	states := controller.ListStates()
	require.Len(t, states, 1)
	require.NotNil(t, states[0].CooldownUntil)
}

func TestClearWithCooldownResetReArmsDevice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	action := NewMockAction(ctrl)

	recorded := expectReboot(store, action, nil, 41)

	controller := NewController(store, action, testConfig())

	now := time.Now()

	controller.HandleOutcome(failingOutcome(6, now))
	waitRecorded(t, recorded)

	controller.Clear(testDevice.Name, true)
	assert.Empty(t, controller.ListStates())

	recorded = expectReboot(store, action, nil, 42)
	controller.HandleOutcome(failingOutcome(7, now.Add(time.Minute)))
	waitRecorded(t, recorded)
}

func TestClearWithoutCooldownResetKeepsCooldown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	action := NewMockAction(ctrl)

	recorded := expectReboot(store, action, nil, 41)

	controller := NewController(store, action, testConfig())

	now := time.Now()

	controller.HandleOutcome(failingOutcome(6, now))
	waitRecorded(t, recorded)

	controller.Clear(testDevice.Name, false)

	// The in-flight guard is released but the cooldown still blocks another
	// reboot within its window.
	states := controller.ListStates()
	require.Len(t, states, 1)
	assert.False(t, states[0].UnderRemediation)
	require.NotNil(t, states[0].CooldownUntil)

	controller.HandleOutcome(failingOutcome(7, now.Add(time.Minute)))
}

func TestActionTicketStampedOnDowntime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	action := NewMockAction(ctrl)

	recorded := make(chan struct{})
	external := int64(9001)

	action.EXPECT().Reboot(gomock.Any(), testDevice, "camwatch", gomock.Any()).Return(&external, nil)

	store.EXPECT().InsertReboot(gomock.Any()).Return(int64(41), nil)
	store.EXPECT().GetOpenDowntime(testDevice.Name, time.Time{}).Return(&db.DowntimeInterval{ID: 3}, nil)

	// The downtime interval carries the action's own ticket id, not the
	// local reboot record id.
	store.EXPECT().SetDowntimeTicket(int64(3), external).DoAndReturn(func(int64, int64) error {
		close(recorded)
		return nil
	})

	controller := NewController(store, action, testConfig())
	controller.HandleOutcome(failingOutcome(6, time.Now()))
	waitRecorded(t, recorded)
}

func TestHTTPRebootAction(t *testing.T) {
	var paths []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		assert.Equal(t, http.MethodPost, r.Method)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "secret", pass)

		if r.URL.Path == "/axis-cgi/restart.cgi" {
			w.WriteHeader(http.StatusOK)
			return
		}

		http.NotFound(w, r)
	}))
	defer server.Close()

	action := NewHTTPRebootAction("admin", "secret", 2*time.Second)

	hostPort := strings.TrimPrefix(server.URL, "http://")
	host, port, err := splitHostPort(hostPort)
	require.NoError(t, err)

	action.port = port

	ticket, err := action.Reboot(context.Background(), models.Device{Name: "cam", IP: host}, "ops", "manual check")
	require.NoError(t, err)
	assert.Nil(t, ticket)
	assert.Equal(t, []string{"/reboot.cgi", "/axis-cgi/restart.cgi"}, paths)
}

func splitHostPort(hostPort string) (host, port string, err error) {
	idx := strings.LastIndex(hostPort, ":")
	if idx < 0 {
		return "", "", errors.New("no port in address")
	}

	return hostPort[:idx], hostPort[idx+1:], nil
}
