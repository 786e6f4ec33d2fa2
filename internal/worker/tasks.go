package worker

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypePayoutDisburse = "payout-disburse"
	TypeBalanceRefresh = "balance-refresh"
)

type PayoutDisbursePayload struct {
	PayoutId int `json:"payoutId"`
}

type BalanceRefreshPayload struct {
	UserId int `json:"userId"`
}

// NewPayoutDisburseTask builds the disbursement task for an approved payout.
// The task id pins one task per payout so a double approval cannot enqueue
// two transfers.
func NewPayoutDisburseTask(payoutId int, taskId string) (*asynq.Task, error) {
	payload, err := json.Marshal(PayoutDisbursePayload{PayoutId: payoutId})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePayoutDisburse, payload, asynq.TaskID(taskId), asynq.Queue("critical")), nil
}

// NewBalanceRefreshTask builds a balance cache refresh task for one user.
func NewBalanceRefreshTask(userId int) (*asynq.Task, error) {
	payload, err := json.Marshal(BalanceRefreshPayload{UserId: userId})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBalanceRefresh, payload, asynq.Queue("low")), nil
}
