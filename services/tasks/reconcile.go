package tasks

import (
	"context"
	"encoding/json"
	"time"

	"grambazaar/models"

	"github.com/hibiken/asynq"
)

const TypePaymentReconcile = "payment:reconcile"

// reconcileRetries bounds how long an unpaid session keeps being polled.
const reconcileRetries = 5

func NewReconcileTask(payload models.ReconcilePayload, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePaymentReconcile, b)
	opts := []asynq.Option{
		asynq.ProcessIn(delay),
		asynq.MaxRetry(reconcileRetries),
	}
	return task, opts, nil
}

// Enqueuer is the subset of *asynq.Client the scheduler needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqScheduler queues payment reconcile tasks.
type AsynqScheduler struct {
	Client Enqueuer
	Delay  time.Duration
}

func NewAsynqScheduler(client Enqueuer, delay time.Duration) *AsynqScheduler {
	return &AsynqScheduler{Client: client, Delay: delay}
}

func (s *AsynqScheduler) ScheduleReconcile(ctx context.Context, bookingID, paymentID string) error {
	task, opts, err := NewReconcileTask(models.ReconcilePayload{BookingID: bookingID, PaymentID: paymentID}, s.Delay)
	if err != nil {
		return err
	}
	_, err = s.Client.EnqueueContext(ctx, task, opts...)
	return err
}
