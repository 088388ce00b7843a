package interfaces

import "context"

// KeyValueStorage provides basic key-value operations. Implementations can be
// swapped (BadgerDB now, centralised DB later).
type KeyValueStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	GetAll(ctx context.Context) (map[string]string, error)
}
