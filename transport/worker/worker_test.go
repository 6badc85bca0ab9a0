package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"bookly/config"
	"bookly/internal/domains/notification/mocks"
	"bookly/internal/domains/notification/model/dto"
	outboxService "bookly/internal/domains/outbox/service"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type stubRelay struct {
	runs atomic.Int32
}

func (s *stubRelay) RunOnce(context.Context) (outboxService.Result, error) {
	return outboxService.Result{}, nil
}

func (s *stubRelay) Run(ctx context.Context) {
	s.runs.Add(1)
	<-ctx.Done()
}

func TestWorker_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Notification.Transport = outboxService.TransportInline
	cfg.Notification.ReminderIntervalSeconds = 1

	relay := &stubRelay{}
	notification := mocks.NewMockNotificationService(ctrl)
	notification.EXPECT().RunReminders(gomock.Any()).Return(dto.ReminderRunResponse{}, nil).MinTimes(1)

	w := New(cfg, relay, nil, notification)

	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()

	err := w.Run(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int32(1), relay.runs.Load())
}
