package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
)

// Processor handles the business side of dequeued tasks. Implemented in the
// consumers package so this one stays free of service imports.
type Processor interface {
	ProcessDisbursement(ctx context.Context, payoutId int) error
	ProcessBalanceRefresh(ctx context.Context, userId int) error
}

type Worker struct {
	Processor Processor
}

func NewWorker(p Processor) *Worker {
	return &Worker{Processor: p}
}

func (w *Worker) HandlePayoutDisburse(ctx context.Context, t *asynq.Task) error {
	var payload PayoutDisbursePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid payout disburse payload: %v: %w", err, asynq.SkipRetry)
	}
	log.Printf("Processing payout disbursement for request %d", payload.PayoutId)
	return w.Processor.ProcessDisbursement(ctx, payload.PayoutId)
}

func (w *Worker) HandleBalanceRefresh(ctx context.Context, t *asynq.Task) error {
	var payload BalanceRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid balance refresh payload: %v: %w", err, asynq.SkipRetry)
	}
	return w.Processor.ProcessBalanceRefresh(ctx, payload.UserId)
}

// StartWorker runs the asynq server until it is stopped. Blocks.
func StartWorker(redisAddr string, p Processor) error {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	w := NewWorker(p)
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePayoutDisburse, w.HandlePayoutDisburse)
	mux.HandleFunc(TypeBalanceRefresh, w.HandleBalanceRefresh)

	log.Println("Worker started, waiting for tasks...")
	return srv.Run(mux)
}
