package store

import (
	"encoding/json"
	"time"
)

type Item struct {
	Key       string
	Value     json.RawMessage // JSON encoded
	UpdatedAt time.Time
}

type Pref struct {
	Name      string
	Value     string
	UpdatedAt time.Time
}
