package postgres

import (
	"encoding/json"
	"time"
)

func marshalLedger(ledger map[string]int) []byte {
	if len(ledger) == 0 {
		return []byte("{}")
	}
	b, err := json.Marshal(ledger)
	if err != nil {
		return []byte("{}")
	}
	return b
}

func nullTime(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return *t
}

func nullTimestamp(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
