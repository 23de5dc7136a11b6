package storage

import "context"

// Logical keys of the persisted collections.
const (
	MoodKey = "mood-tracker-data"
	TodoKey = "mood-tracker-todos"
)

// KV is the durable key-value collaborator behind both stores. Set must
// either replace the value completely or leave the previous one intact.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
