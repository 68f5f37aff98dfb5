package amqp

import (
	"encoding/json"
	"time"
)

// ContributionSyncMessage asks the export worker to push one contribution to
// the spreadsheet. It carries only the ID; the worker fetches the record
// from the database so the queue never holds stale copies.
type ContributionSyncMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewContributionSyncMessage(id int64) *ContributionSyncMessage {
	return &ContributionSyncMessage{ID: id, Timestamp: time.Now()}
}

func (m *ContributionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ContributionSyncMessageFromJSON(data []byte) (*ContributionSyncMessage, error) {
	var msg ContributionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
