package alerts

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeDisruptionCheck = "disruption:check"

// DisruptionCheckPayload identifies the itinerary a scheduled check covers.
type DisruptionCheckPayload struct {
	UserID      string `json:"userId"`
	ItineraryID string `json:"itineraryId"`
}

// NewDisruptionCheckTask builds the asynq task that checks an itinerary's
// forecast at fireAt (normally the evening before the trip starts).
func NewDisruptionCheckTask(payload DisruptionCheckPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeDisruptionCheck, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
