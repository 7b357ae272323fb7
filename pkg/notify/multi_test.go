package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMultiNotifyFansOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	webhook := NewMockNotifier(ctrl)
	email := NewMockNotifier(ctrl)

	notification := &Notification{Title: "Camera Offline"}

	webhook.EXPECT().IsEnabled().Return(true)
	webhook.EXPECT().Notify(gomock.Any(), notification).Return(nil)
	email.EXPECT().IsEnabled().Return(true)
	email.EXPECT().Notify(gomock.Any(), notification).Return(nil)

	multi := NewMulti(webhook, email)
	require.NoError(t, multi.Notify(context.Background(), notification))
}

func TestMultiNotifySkipsDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	disabled := NewMockNotifier(ctrl)
	disabled.EXPECT().IsEnabled().Return(false)

	multi := NewMulti(disabled)
	require.NoError(t, multi.Notify(context.Background(), &Notification{Title: "x"}))
}

func TestMultiNotifyCooldownIsNotAFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cooled := NewMockNotifier(ctrl)
	cooled.EXPECT().IsEnabled().Return(true)
	cooled.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(ErrNotifyCooldown)
	cooled.EXPECT().Name().Return("webhook")

	multi := NewMulti(cooled)
	require.NoError(t, multi.Notify(context.Background(), &Notification{Title: "x"}))
}

func TestMultiNotifyCollectsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	errSend := errors.New("send failed")

	failing := NewMockNotifier(ctrl)
	failing.EXPECT().IsEnabled().Return(true)
	failing.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errSend)

	healthy := NewMockNotifier(ctrl)
	healthy.EXPECT().IsEnabled().Return(true)
	healthy.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil)

	multi := NewMulti(failing, healthy)

	err := multi.Notify(context.Background(), &Notification{Title: "x"})
	assert.ErrorIs(t, err, errSend)
}

func TestMultiChannels(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	webhook := NewMockNotifier(ctrl)
	webhook.EXPECT().Name().Return("webhook").AnyTimes()

	email := NewMockNotifier(ctrl)
	email.EXPECT().Name().Return("email").AnyTimes()

	multi := NewMulti(webhook, email)

	assert.Len(t, multi.Channels(nil), 2)
	assert.Len(t, multi.Channels([]string{"email"}), 1)
	assert.Empty(t, multi.Channels([]string{"pager"}))
}
