package domain

import "time"

// IdempotencyRecord maps a caller-supplied key and operation name to the
// resource produced by the first execution. Records are written once and
// never updated.
type IdempotencyRecord struct {
	Key        string
	Operation  string
	ResourceID string
	CreatedAt  time.Time
}
