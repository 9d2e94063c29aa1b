package repositories

import (
	"context"

	"crm-admin.backend/internal/domain/entities"
)

// BlobStore keeps binary content per category and hands back opaque ids
type BlobStore interface {
	Put(ctx context.Context, category entities.BlobCategory, filename, contentType string, content []byte) (string, error)
	Get(ctx context.Context, category entities.BlobCategory, id string) (*entities.Blob, error)
	Exists(ctx context.Context, category entities.BlobCategory, id string) (bool, error)
	Delete(ctx context.Context, category entities.BlobCategory, id string) error
}

// Mailer dispatches outbound email
type Mailer interface {
	Send(ctx context.Context, msg *entities.MailMessage) error
}
