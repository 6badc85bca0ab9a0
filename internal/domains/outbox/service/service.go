package service

import (
	"context"
	"fmt"
	"time"

	"bookly/config"
	"bookly/infras/metrics"
	"bookly/infras/otel"
	"bookly/internal/domains/outbox/model"
	"bookly/internal/domains/outbox/repository"
	"bookly/shared"
	"bookly/shared/constant"
	gDto "bookly/shared/dto"
	gRepo "bookly/shared/repository"
	"bookly/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Result struct {
	Published int `json:"published"`
	Failed    int `json:"failed"`
}

type Relay interface {
	RunOnce(ctx context.Context) (Result, error)
	Run(ctx context.Context)
}

type relayImpl struct {
	repo      repository.Outbox
	publisher Publisher
	metrics   *metrics.Metrics
	cfg       *config.Config
	otel      otel.Otel
}

func New(repo repository.Outbox, publisher Publisher, metrics *metrics.Metrics, cfg *config.Config, otel otel.Otel) Relay {
	return &relayImpl{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		cfg:       cfg,
		otel:      otel,
	}
}

// RunOnce publishes one batch of pending events in creation order. Rows are locked with
// SKIP LOCKED so several relays can poll the same table.
func (r *relayImpl) RunOnce(ctx context.Context) (res Result, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".RelayOutbox")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{
		Limit:   r.cfg.Notification.OutboxBatchSize,
		SortBy:  model.TableName + "." + model.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	err = r.repo.Transaction(ctx, func(tx *sqlx.Tx) error {
		events, err := r.repo.GetAllTx(ctx, tx, params, repository.PendingFilter(r.cfg.Notification.MaxAttempts), gRepo.LockForUpdateSkipped)
		if err != nil {
			return fmt.Errorf("failed to get pending events: %w", err)
		}

		for _, event := range events {
			published, err := r.relay(ctx, tx, event)
			if err != nil {
				return err
			}

			if published {
				res.Published++
			} else {
				res.Failed++
			}
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to relay outbox events")

		return res, fmt.Errorf("failed to relay outbox events: %w", err)
	}

	return res, nil
}

// relay publishes event and records the outcome. Only storage failures are returned; a
// failed publish is counted on the row and retried on a later poll.
func (r *relayImpl) relay(ctx context.Context, tx *sqlx.Tx, event model.Event) (bool, error) {
	filter := shared.FilterByID(event.ID, model.FieldID, model.TableName)

	var fields map[string]any

	published := true

	if err := r.publisher.Publish(ctx, event); err != nil {
		published = false

		log.Error().Err(err).Str("event_id", event.ID).Int("attempts", event.Attempts+1).Msg("failed to publish outbox event")
		r.metrics.OutboxPublished(metrics.ResultError)

		fields = map[string]any{
			model.FieldAttempts:  event.Attempts + 1,
			model.FieldLastError: err.Error(),
		}
	} else {
		r.metrics.OutboxPublished(metrics.ResultSuccess)

		fields = map[string]any{
			model.FieldPublishedAt: timezone.Now(),
		}
	}

	if err := r.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
		return published, fmt.Errorf("failed to update outbox event %s: %w", event.ID, err)
	}

	return published, nil
}

// Run polls until ctx is done.
func (r *relayImpl) Run(ctx context.Context) {
	interval := time.Duration(r.cfg.Notification.OutboxPollSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("outbox relay started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("outbox relay stopped")

			return
		case <-ticker.C:
			res, err := r.RunOnce(ctx)
			if err != nil {
				continue
			}

			if res.Published+res.Failed > 0 {
				log.Info().Int("published", res.Published).Int("failed", res.Failed).Msg("relayed outbox events")
			}
		}
	}
}
