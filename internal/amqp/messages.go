package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AccountSyncMessage asks a worker to pull provider transactions for one
// account over a date range. It carries ids only; the worker resolves
// the account and credentials from the ledger.
type AccountSyncMessage struct {
	JobID     string    `json:"job_id"`
	UserID    int64     `json:"user_id"`
	AccountID int64     `json:"account_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Timestamp time.Time `json:"timestamp"`
}

func NewAccountSyncMessage(userID, accountID int64, start, end time.Time) *AccountSyncMessage {
	return &AccountSyncMessage{
		JobID:     uuid.NewString(),
		UserID:    userID,
		AccountID: accountID,
		StartDate: start,
		EndDate:   end,
		Timestamp: time.Now(),
	}
}

func (m *AccountSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func AccountSyncMessageFromJSON(data []byte) (*AccountSyncMessage, error) {
	var msg AccountSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
