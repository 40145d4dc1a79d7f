package cron

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"corpay/config"
	"corpay/services/booking"

	"github.com/hibiken/asynq"
)

const TypeRefundSettle = "refund:settle"

type refundTaskPayload struct {
	BookingID string `json:"booking_id"`
}

// AsynqRefundScheduler queues refund settlement tasks. Settlement is
// eventually consistent: a failed attempt returns ErrRefundPending and
// asynq retries with backoff, so a booking is never force-advanced out
// of Refund processing.
type AsynqRefundScheduler struct {
	client *asynq.Client
}

// NewRefundScheduler creates the asynq client on the queue DB.
func NewRefundScheduler() *AsynqRefundScheduler {
	return &AsynqRefundScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

func (s *AsynqRefundScheduler) ScheduleRefund(ctx context.Context, bookingID string) error {
	payload, err := json.Marshal(refundTaskPayload{BookingID: bookingID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeRefundSettle, payload, asynq.MaxRetry(10))
	_, err = s.client.EnqueueContext(ctx, task)
	return err
}

// InitSettlementWorker runs the async settlement worker in background.
func InitSettlementWorker(svc booking.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRefundSettle, handleRefundTask(svc))

	go func() {
		log.Println("[SettlementWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[SettlementWorker] worker stopped: %v", err)
		}
	}()
}

func handleRefundTask(svc booking.Service) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload refundTaskPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return err
		}
		err := svc.SettleRefund(ctx, payload.BookingID, time.Now())
		if errors.Is(err, booking.ErrRefundPending) {
			// Retryable: asynq re-delivers with backoff.
			return err
		}
		return err
	}
}

// InitSLAPoller starts the pull-based SLA check loop. The engine never
// reads the clock; this poller supplies `now` at the configured cadence.
func InitSLAPoller(svc booking.Service) {
	interval := time.Duration(config.AppConfig.SLAPollSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for now := range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if _, err := svc.EnforceAllSLAs(ctx, now); err != nil {
				log.Printf("[SLAPoller] enforcement pass failed: %v", err)
			}
			cancel()
		}
	}()
}
