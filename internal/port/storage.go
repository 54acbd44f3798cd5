package port

import (
	"context"
	"io"
	"time"
)

// PutInput encapsulates the parameters needed to store a report object.
type PutInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// PutOutput contains the result of a successful store.
type PutOutput struct {
	Bucket   string
	Key      string
	Location string
	ETag     string
}

// ObjectStorage abstracts the bucket that archived reports are written to.
type ObjectStorage interface {
	Put(ctx context.Context, input PutInput) (*PutOutput, error)
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
