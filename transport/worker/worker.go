// Package worker runs the background loops of the service: the outbox relay, the Kafka
// consumer and the reminder sweep.
package worker

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"bookly/config"
	notificationService "bookly/internal/domains/notification/service"
	outboxService "bookly/internal/domains/outbox/service"
	"bookly/transport/event"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const defaultReminderInterval = 5 * time.Minute

type Worker struct {
	Config       *config.Config
	Relay        outboxService.Relay
	Consumer     *event.Consumer
	Notification notificationService.Notification
}

func New(cfg *config.Config, relay outboxService.Relay, consumer *event.Consumer, notification notificationService.Notification) *Worker {
	return &Worker{
		Config:       cfg,
		Relay:        relay,
		Consumer:     consumer,
		Notification: notification,
	}
}

// Serve runs every loop until SIGINT or SIGTERM.
func (w *Worker) Serve() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("worker stopped with error")
	}

	log.Info().Msg("worker stopped")
}

// Run blocks until ctx is done or a loop fails. The consumer only runs when events travel
// through Kafka; with the inline transport the relay delivers them itself.
func (w *Worker) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		w.Relay.Run(ctx)

		return nil
	})

	if w.Config.Notification.Transport == outboxService.TransportKafka {
		group.Go(func() error {
			return w.Consumer.Run(ctx)
		})
	}

	group.Go(func() error {
		w.runReminders(ctx)

		return nil
	})

	return group.Wait()
}

func (w *Worker) runReminders(ctx context.Context) {
	interval := time.Duration(w.Config.Notification.ReminderIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = defaultReminderInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("reminder sweep started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("reminder sweep stopped")

			return
		case <-ticker.C:
			res, err := w.Notification.RunReminders(ctx)
			if err != nil {
				log.Error().Err(err).Msg("failed to run reminders")

				continue
			}

			log.Info().Interface("result", res).Msg("reminder sweep finished")
		}
	}
}
