package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"grambazaar/config"
	"grambazaar/models"
	"grambazaar/services/booking"
	"grambazaar/services/tasks"
	"grambazaar/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// PaymentConfirmer is the booking service surface the reconcile worker needs.
type PaymentConfirmer interface {
	ConfirmPayment(ctx context.Context, identity models.Identity, sessionID, bookingID string) (*booking.ConfirmResult, error)
}

// InitReconcileWorker runs the payment reconcile worker in the background
// and returns the server so the caller can shut it down.
func InitReconcileWorker(confirmer PaymentConfirmer) *asynq.Server {
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
			Logger: newAsynqLogger(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePaymentReconcile, handleReconcileTask(confirmer))

	go func() {
		logger := utils.GetLogger()
		logger.Info("Starting payment reconcile worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("Reconcile worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Reconcile worker giving up; payments will only settle on client confirmation")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

// terminalStatuses are processor states that will never turn into paid.
var terminalStatuses = map[string]bool{
	"canceled": true,
	"expired":  true,
}

func handleReconcileTask(confirmer PaymentConfirmer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReconcilePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Reconcile: invalid payload", zap.Error(err))
			return fmt.Errorf("invalid reconcile payload: %v: %w", err, asynq.SkipRetry)
		}

		res, err := confirmer.ConfirmPayment(ctx, models.SystemIdentity, p.PaymentID, p.BookingID)
		if err != nil {
			if kind := utils.KindOf(err); kind == utils.KindNotFound || kind == utils.KindInvalid {
				logger.Warn("Reconcile: dropping task", zap.String("bookingId", p.BookingID), zap.Error(err))
				return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
			}
			return err
		}

		if res.Success {
			logger.Info("Reconcile: payment settled", zap.String("bookingId", p.BookingID))
			return nil
		}
		if terminalStatuses[res.PaymentStatus] {
			logger.Info("Reconcile: payment abandoned",
				zap.String("bookingId", p.BookingID), zap.String("status", res.PaymentStatus))
			return nil
		}
		return fmt.Errorf("payment %s for booking %s not settled yet (%s)", p.PaymentID, p.BookingID, res.PaymentStatus)
	}
}
