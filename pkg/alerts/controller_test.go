package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fdot3/camwatch/pkg/config"
	"github.com/fdot3/camwatch/pkg/db"
	"github.com/fdot3/camwatch/pkg/health"
	"github.com/fdot3/camwatch/pkg/models"
	"github.com/fdot3/camwatch/pkg/notify"
)

var testDevice = models.Device{Name: "lobby-cam", IP: "10.0.0.11"}

func testConfig() config.AlertingConfig {
	return config.AlertingConfig{
		Threshold:      3,
		Cooldown:       config.Duration(30 * time.Minute),
		MaxDailyAlerts: 3,
	}
}

func outcomeAt(current, previous models.Status, failures int, at time.Time) *health.CheckOutcome {
	return &health.CheckOutcome{
		Device:              testDevice,
		Previous:            previous,
		Current:             current,
		ConsecutiveFailures: failures,
		Changed:             current != previous,
		Origin:              models.OriginScheduled,
		Timestamp:           at,
	}
}

// expectDelivery arms the notifier mock and returns a channel that closes
// once the async delivery lands.
func expectDelivery(store *db.MockService, notifier *notify.MockNotifier) chan struct{} {
	delivered := make(chan struct{})

	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, _ *notify.Notification) error {
			return nil
		})
	store.EXPECT().SetAlertNotification(gomock.Any(), true, "").DoAndReturn(
		func(int64, bool, string) error {
			close(delivered)
			return nil
		})

	return delivered
}

func waitDelivered(t *testing.T, delivered chan struct{}) {
	t.Helper()

	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("notification was not delivered")
	}
}

func TestNoAlertBelowThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	notifier := notify.NewMockNotifier(ctrl)

	// No InsertAlert, no Notify: failures below threshold never consult the
	// suppression checks.
	controller := NewController(store, notifier, testConfig())

	now := time.Now()
	controller.HandleOutcome(outcomeAt(models.StatusOffline, models.StatusOnline, 1, now))
	controller.HandleOutcome(outcomeAt(models.StatusOffline, models.StatusOffline, 2, now.Add(time.Minute)))
}

func TestAlertFiresOnceAtThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	notifier := notify.NewMockNotifier(ctrl)

	now := time.Now()

	store.EXPECT().IsUnderMaintenance(testDevice, gomock.Any()).Return(false, nil)
	store.EXPECT().LastTransitionAlert(testDevice.Name, badAlertTypes).Return(time.Time{}, nil)
	store.EXPECT().CountAlertsSince(testDevice.Name, badAlertTypes, gomock.Any()).Return(0, nil)

	var inserted *db.Alert

	store.EXPECT().InsertAlert(gomock.Any()).DoAndReturn(func(alert *db.Alert) (int64, error) {
		inserted = alert
		alert.ID = 1
		return 1, nil
	})

	delivered := expectDelivery(store, notifier)

	controller := NewController(store, notifier, testConfig())

	controller.HandleOutcome(outcomeAt(models.StatusOffline, models.StatusOnline, 1, now))
	controller.HandleOutcome(outcomeAt(models.StatusOffline, models.StatusOffline, 2, now.Add(time.Minute)))
	controller.HandleOutcome(outcomeAt(models.StatusOffline, models.StatusOffline, 3, now.Add(2*time.Minute)))

	waitDelivered(t, delivered)

	require.NotNil(t, inserted)
	assert.Equal(t, db.AlertTypeOffline, inserted.Type)
	assert.Equal(t, "critical", inserted.Severity)

	// Checks 4 and 5 of the same incident stay quiet.
	controller.HandleOutcome(outcomeAt(models.StatusOffline, models.StatusOffline, 4, now.Add(3*time.Minute)))
	controller.HandleOutcome(outcomeAt(models.StatusOffline, models.StatusOffline, 5, now.Add(4*time.Minute)))
}

func TestDegradedAlertSeverity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	notifier := notify.NewMockNotifier(ctrl)

	now := time.Now()

	store.EXPECT().IsUnderMaintenance(testDevice, gomock.Any()).Return(false, nil)
	store.EXPECT().LastTransitionAlert(testDevice.Name, badAlertTypes).Return(time.Time{}, nil)
	store.EXPECT().CountAlertsSince(testDevice.Name, badAlertTypes, gomock.Any()).Return(0, nil)

	var inserted *db.Alert

	store.EXPECT().InsertAlert(gomock.Any()).DoAndReturn(func(alert *db.Alert) (int64, error) {
		inserted = alert
		alert.ID = 2
		return 2, nil
	})

	delivered := expectDelivery(store, notifier)

	controller := NewController(store, notifier, config.AlertingConfig{
		Threshold:      1,
		Cooldown:       config.Duration(time.Minute),
		MaxDailyAlerts: 10,
	})

	controller.HandleOutcome(outcomeAt(models.StatusDegraded, models.StatusOnline, 1, now))
	waitDelivered(t, delivered)

	require.NotNil(t, inserted)
	assert.Equal(t, db.AlertTypeDegraded, inserted.Type)
	assert.Equal(t, "warning", inserted.Severity)
}

func TestRecoveryAlertFollowsOutage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	notifier := notify.NewMockNotifier(ctrl)

	now := time.Now()

	store.EXPECT().IsUnderMaintenance(testDevice, gomock.Any()).Return(false, nil)
	store.EXPECT().LastTransitionAlert(testDevice.Name, badAlertTypes).Return(time.Time{}, nil)
	store.EXPECT().CountAlertsSince(testDevice.Name, badAlertTypes, gomock.Any()).Return(0, nil)

	var alertTypes []string

	store.EXPECT().InsertAlert(gomock.Any()).DoAndReturn(func(alert *db.Alert) (int64, error) {
		alertTypes = append(alertTypes, alert.Type)
		alert.ID = int64(len(alertTypes))
		return alert.ID, nil
	}).Times(2)

	ended := now.Add(4 * time.Minute)
	store.EXPECT().GetLastClosedDowntime(testDevice.Name).Return(&db.DowntimeInterval{
		DeviceName: testDevice.Name,
		StartedAt:  now,
		EndedAt:    &ended,
	}, nil)

	delivered := make(chan struct{}, 2)

	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	store.EXPECT().SetAlertNotification(gomock.Any(), true, "").DoAndReturn(
		func(int64, bool, string) error {
			delivered <- struct{}{}
			return nil
		}).Times(2)

	controller := NewController(store, notifier, config.AlertingConfig{
		Threshold:      1,
		Cooldown:       config.Duration(time.Minute),
		MaxDailyAlerts: 10,
	})

	// With threshold 1 the offline alert fires on the first failed check,
	// and the later recovery produces exactly one recovery alert.
	controller.HandleOutcome(outcomeAt(models.StatusOffline, models.StatusOnline, 1, now))
	controller.HandleOutcome(outcomeAt(models.StatusOffline, models.StatusOffline, 2, now.Add(time.Minute)))
	controller.HandleOutcome(outcomeAt(models.StatusOnline, models.StatusOffline, 0, ended))
	controller.HandleOutcome(outcomeAt(models.StatusOnline, models.StatusOnline, 0, ended.Add(time.Minute)))

	for i := 0; i < 2; i++ {
		select {
		case <-delivered:
		case <-time.After(time.Second):
			t.Fatal("expected two deliveries")
		}
	}

	assert.Equal(t, []string{db.AlertTypeOffline, db.AlertTypeRecovery}, alertTypes)
}

func TestRecoveryAlertForQuietOutage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	notifier := notify.NewMockNotifier(ctrl)

	now := time.Now()
	ended := now.Add(time.Minute)

	store.EXPECT().GetLastClosedDowntime(testDevice.Name).Return(&db.DowntimeInterval{
		DeviceName: testDevice.Name,
		StartedAt:  now,
		EndedAt:    &ended,
	}, nil)

	var inserted *db.Alert

	store.EXPECT().InsertAlert(gomock.Any()).DoAndReturn(func(alert *db.Alert) (int64, error) {
		inserted = alert
		alert.ID = 1
		return 1, nil
	})

	delivered := expectDelivery(store, notifier)

	controller := NewController(store, notifier, testConfig())

	// The outage never reached the threshold so no offline alert fired, but
	// the transition back online still announces the recovery.
	controller.HandleOutcome(outcomeAt(models.StatusOffline, models.StatusOnline, 1, now))
	controller.HandleOutcome(outcomeAt(models.StatusOnline, models.StatusOffline, 0, ended))

	waitDelivered(t, delivered)

	require.NotNil(t, inserted)
	assert.Equal(t, db.AlertTypeRecovery, inserted.Type)
	assert.Equal(t, "info", inserted.Severity)
}

func TestCooldownSuppressesAlert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	notifier := notify.NewMockNotifier(ctrl)

	now := time.Now()

	store.EXPECT().IsUnderMaintenance(testDevice, gomock.Any()).Return(false, nil)
	store.EXPECT().LastTransitionAlert(testDevice.Name, badAlertTypes).
		Return(now.Add(-10*time.Minute), nil)

	// Within the 30 minute cooldown: no insert, no notify.
	controller := NewController(store, notifier, testConfig())
	controller.HandleOutcome(outcomeAt(models.StatusOffline, models.StatusOffline, 3, now))
}

func TestDailyCapSuppressesAlert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	notifier := notify.NewMockNotifier(ctrl)

	now := time.Now()

	store.EXPECT().IsUnderMaintenance(testDevice, gomock.Any()).Return(false, nil)
	store.EXPECT().LastTransitionAlert(testDevice.Name, badAlertTypes).Return(time.Time{}, nil)
	store.EXPECT().CountAlertsSince(testDevice.Name, badAlertTypes, gomock.Any()).Return(3, nil)

	controller := NewController(store, notifier, testConfig())
	controller.HandleOutcome(outcomeAt(models.StatusOffline, models.StatusOffline, 3, now))
}

func TestMaintenanceSuppressesAlert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	notifier := notify.NewMockNotifier(ctrl)

	store.EXPECT().IsUnderMaintenance(testDevice, gomock.Any()).Return(true, nil)

	controller := NewController(store, notifier, testConfig())
	controller.HandleOutcome(outcomeAt(models.StatusOffline, models.StatusOffline, 3, time.Now()))
}

func TestRehydrateMarksAnnouncedIncidents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	notifier := notify.NewMockNotifier(ctrl)

	started := time.Now().Add(-time.Hour)

	store.EXPECT().GetOpenDowntime(testDevice.Name, time.Time{}).Return(&db.DowntimeInterval{
		DeviceName: testDevice.Name,
		StartedAt:  started,
	}, nil)
	store.EXPECT().LastTransitionAlert(testDevice.Name, badAlertTypes).
		Return(started.Add(5*time.Minute), nil)

	controller := NewController(store, notifier, testConfig())
	controller.Rehydrate([]models.Device{testDevice})

	// The ongoing incident already alerted before the restart: further failed
	// checks stay quiet.
	controller.HandleOutcome(outcomeAt(models.StatusOffline, models.StatusOffline, 7, time.Now()))
}
