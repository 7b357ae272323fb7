package health

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fdot3/camwatch/pkg/db"
	"github.com/fdot3/camwatch/pkg/models"
)

var testDevice = models.Device{Name: "lobby-cam", IP: "10.0.0.11"}

func okResult(connMs, mediaMs int64) models.ProbeResult {
	return models.ProbeResult{
		ConnectivityOK: true,
		ConnectivityMs: connMs,
		MediaOK:        true,
		MediaMs:        mediaMs,
	}
}

func degradedResult(connMs int64) models.ProbeResult {
	return models.ProbeResult{
		ConnectivityOK: true,
		ConnectivityMs: connMs,
		Error:          "no snapshot",
	}
}

func offlineResult() models.ProbeResult {
	return models.ProbeResult{Error: "connection refused"}
}

func TestRecordCheckStatusDerivation(t *testing.T) {
	tests := []struct {
		name   string
		result models.ProbeResult
		want   models.Status
	}{
		{name: "both probes pass", result: okResult(10, 50), want: models.StatusOnline},
		{name: "connectivity only", result: degradedResult(10), want: models.StatusDegraded},
		{name: "nothing reachable", result: offlineResult(), want: models.StatusOffline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := db.NewMockService(ctrl)
			store.EXPECT().RecordHealthCheck(gomock.Any(), gomock.Any()).Return(nil)
			store.EXPECT().OpenDowntime(gomock.Any()).Return(int64(1), nil).AnyTimes()

			tracker := NewTracker(store)

			outcome := tracker.RecordCheck(testDevice, tt.result, models.OriginScheduled, time.Now())

			assert.Equal(t, tt.want, outcome.Current)
			assert.Equal(t, models.StatusUnknown, outcome.Previous)
			assert.True(t, outcome.Changed)
		})
	}
}

func TestRecordCheckLatencySmoothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	store.EXPECT().RecordHealthCheck(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tracker := NewTracker(store)
	now := time.Now()

	tracker.RecordCheck(testDevice, okResult(100, 200), models.OriginScheduled, now)

	record, ok := tracker.GetStatus(testDevice.Name)
	require.True(t, ok)
	require.NotNil(t, record.AvgConnectMs)
	assert.InDelta(t, 100.0, *record.AvgConnectMs, 0.001)

	tracker.RecordCheck(testDevice, okResult(200, 100), models.OriginScheduled, now.Add(time.Minute))

	record, ok = tracker.GetStatus(testDevice.Name)
	require.True(t, ok)
	assert.InDelta(t, 0.7*100+0.3*200, *record.AvgConnectMs, 0.001)
	assert.InDelta(t, 0.7*200+0.3*100, *record.AvgMediaMs, 0.001)
}

func TestRecordCheckFailedSubProbeLeavesAverageAlone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	store.EXPECT().RecordHealthCheck(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	store.EXPECT().OpenDowntime(gomock.Any()).Return(int64(1), nil)

	tracker := NewTracker(store)
	now := time.Now()

	tracker.RecordCheck(testDevice, okResult(100, 200), models.OriginScheduled, now)
	tracker.RecordCheck(testDevice, degradedResult(150), models.OriginScheduled, now.Add(time.Minute))

	record, ok := tracker.GetStatus(testDevice.Name)
	require.True(t, ok)

	// The snapshot probe failed, so the media average is untouched while the
	// connectivity average keeps smoothing.
	assert.InDelta(t, 200.0, *record.AvgMediaMs, 0.001)
	assert.InDelta(t, 0.7*100+0.3*150, *record.AvgConnectMs, 0.001)
}

func TestRecordCheckFailureCountersAndUptime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	store.EXPECT().RecordHealthCheck(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	store.EXPECT().OpenDowntime(gomock.Any()).Return(int64(1), nil)
	store.EXPECT().CloseDowntime(testDevice.Name, gomock.Any(), "auto").Return(nil)

	tracker := NewTracker(store)
	now := time.Now()

	tracker.RecordCheck(testDevice, okResult(10, 20), models.OriginScheduled, now)
	tracker.RecordCheck(testDevice, offlineResult(), models.OriginScheduled, now.Add(time.Minute))

	outcome := tracker.RecordCheck(testDevice, offlineResult(), models.OriginScheduled, now.Add(2*time.Minute))
	assert.Equal(t, 2, outcome.ConsecutiveFailures)
	assert.False(t, outcome.Changed)
	assert.InDelta(t, 100.0/3.0, outcome.UptimePercentage, 0.001)

	// Recovery resets the failure streak.
	outcome = tracker.RecordCheck(testDevice, okResult(10, 20), models.OriginScheduled, now.Add(3*time.Minute))
	assert.Equal(t, 0, outcome.ConsecutiveFailures)
	assert.True(t, outcome.Changed)
	assert.InDelta(t, 50.0, outcome.UptimePercentage, 0.001)
}

func TestRecordCheckDowntimeLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	store.EXPECT().RecordHealthCheck(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	var opened *db.DowntimeInterval

	store.EXPECT().OpenDowntime(gomock.Any()).DoAndReturn(func(interval *db.DowntimeInterval) (int64, error) {
		opened = interval
		return 7, nil
	})
	store.EXPECT().CloseDowntime(testDevice.Name, gomock.Any(), "manual").Return(nil)

	tracker := NewTracker(store)
	now := time.Now()

	tracker.RecordCheck(testDevice, okResult(10, 20), models.OriginScheduled, now)
	tracker.RecordCheck(testDevice, offlineResult(), models.OriginScheduled, now.Add(time.Minute))

	require.NotNil(t, opened)
	assert.Equal(t, models.StatusOnline, opened.StatusBefore)
	assert.Equal(t, models.StatusOffline, opened.StatusDuring)

	// Still down: no second interval is opened.
	tracker.RecordCheck(testDevice, offlineResult(), models.OriginScheduled, now.Add(2*time.Minute))

	// A manual check observing recovery records a manual recovery method.
	tracker.RecordCheck(testDevice, okResult(10, 20), models.OriginManual, now.Add(3*time.Minute))
}

func TestRecordCheckSurvivesStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	store.EXPECT().RecordHealthCheck(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).AnyTimes()
	store.EXPECT().OpenDowntime(gomock.Any()).Return(int64(0), errors.New("disk full")).AnyTimes()

	tracker := NewTracker(store)

	outcome := tracker.RecordCheck(testDevice, offlineResult(), models.OriginScheduled, time.Now())
	assert.Equal(t, models.StatusOffline, outcome.Current)

	record, ok := tracker.GetStatus(testDevice.Name)
	require.True(t, ok)
	assert.Equal(t, 1, record.ConsecutiveFailures)
}

func TestRehydrate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lastCheck := time.Now().Add(-time.Minute)

	store := db.NewMockService(ctrl)
	store.EXPECT().ListDeviceHealth().Return([]db.DeviceHealth{
		{
			DeviceName:          "lobby-cam",
			DeviceIP:            "10.0.0.11",
			Status:              models.StatusOffline,
			LastCheck:           lastCheck,
			ConsecutiveFailures: 4,
			TotalChecks:         100,
			SuccessfulChecks:    90,
			UptimePercentage:    90,
		},
	}, nil)

	tracker := NewTracker(store)
	require.NoError(t, tracker.Rehydrate())

	record, ok := tracker.GetStatus("lobby-cam")
	require.True(t, ok)
	assert.Equal(t, models.StatusOffline, record.Status)
	assert.Equal(t, 4, record.ConsecutiveFailures)

	stats := tracker.Statistics()
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Offline)
}

func TestGetStatusReturnsCopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	store.EXPECT().RecordHealthCheck(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tracker := NewTracker(store)
	tracker.RecordCheck(testDevice, okResult(10, 20), models.OriginScheduled, time.Now())

	record, ok := tracker.GetStatus(testDevice.Name)
	require.True(t, ok)

	record.ConsecutiveFailures = 99

	fresh, ok := tracker.GetStatus(testDevice.Name)
	require.True(t, ok)
	assert.Equal(t, 0, fresh.ConsecutiveFailures)
}
