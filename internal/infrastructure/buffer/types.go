package buffer

import (
	"time"

	"github.com/google/uuid"
)

// Delta is a daily-totals adjustment that could not reach Redis and is held
// locally until the connection recovers.
type Delta struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"`
	Amount    int64     `json:"amount"`
	Retries   int       `json:"retries"`
	Timestamp time.Time `json:"timestamp"`

	bucketKey []byte
}

func (d *Delta) normalize() {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Timestamp.IsZero() {
		d.Timestamp = time.Now()
	}
}
