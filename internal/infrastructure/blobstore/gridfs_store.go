package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"crm-admin.backend/internal/config"
	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
)

const contentTypeKey = "content_type"

// fileDoc is the subset of a GridFS files document we read back
type fileDoc struct {
	ID       primitive.ObjectID `bson:"_id"`
	Filename string             `bson:"filename"`
	Length   int64              `bson:"length"`
	Metadata bson.M             `bson:"metadata"`
}

// GridFSStore keeps one GridFS bucket per blob category
type GridFSStore struct {
	db *mongo.Database
}

// NewGridFSStore creates a blob store on db
func NewGridFSStore(db *mongo.Database) *GridFSStore {
	return &GridFSStore{db: db}
}

// Connect dials MongoDB and verifies the primary is reachable
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// Put uploads content and returns the hex ObjectID
func (s *GridFSStore) Put(ctx context.Context, category entities.BlobCategory, filename, contentType string, content []byte) (string, error) {
	bucket, err := s.bucket(category)
	if err != nil {
		return "", err
	}
	if dl, ok := ctx.Deadline(); ok {
		if err := bucket.SetWriteDeadline(dl); err != nil {
			return "", err
		}
	}

	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: contentTypeKey, Value: contentType}})
	id, err := bucket.UploadFromStream(filename, bytes.NewReader(content), opts)
	if err != nil {
		return "", fmt.Errorf("failed to upload blob: %w", err)
	}
	return id.Hex(), nil
}

// Get downloads a blob with its metadata
func (s *GridFSStore) Get(ctx context.Context, category entities.BlobCategory, id string) (*entities.Blob, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	bucket, err := s.bucket(category)
	if err != nil {
		return nil, err
	}

	doc, err := s.find(ctx, bucket, oid)
	if err != nil {
		return nil, err
	}

	if dl, ok := ctx.Deadline(); ok {
		if err := bucket.SetReadDeadline(dl); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if _, err := bucket.DownloadToStream(oid, &buf); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to download blob: %w", err)
	}

	contentType, _ := doc.Metadata[contentTypeKey].(string)
	return &entities.Blob{
		ID:          doc.ID.Hex(),
		Filename:    doc.Filename,
		ContentType: contentType,
		Length:      doc.Length,
		Content:     buf.Bytes(),
	}, nil
}

// Exists reports whether a blob is stored
func (s *GridFSStore) Exists(ctx context.Context, category entities.BlobCategory, id string) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, nil
	}
	bucket, err := s.bucket(category)
	if err != nil {
		return false, err
	}
	if _, err := s.find(ctx, bucket, oid); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes the file and its chunks
func (s *GridFSStore) Delete(ctx context.Context, category entities.BlobCategory, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	bucket, err := s.bucket(category)
	if err != nil {
		return err
	}
	if err := bucket.DeleteContext(ctx, oid); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return domainerrors.ErrNotFound
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

func (s *GridFSStore) find(ctx context.Context, bucket *gridfs.Bucket, oid primitive.ObjectID) (*fileDoc, error) {
	cursor, err := bucket.FindContext(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("failed to look up blob: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("failed to look up blob: %w", err)
		}
		return nil, domainerrors.ErrNotFound
	}
	var doc fileDoc
	if err := cursor.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode blob metadata: %w", err)
	}
	return &doc, nil
}

func (s *GridFSStore) bucket(category entities.BlobCategory) (*gridfs.Bucket, error) {
	if !category.IsValid() {
		return nil, domainerrors.ErrInvalidInput
	}
	if s.db == nil {
		return nil, errors.New("blob store is not connected")
	}
	return gridfs.NewBucket(s.db, options.GridFSBucket().SetName(string(category)))
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domainerrors.ErrNotFound
	}
	return oid, nil
}

// PingTimeout bounds the readiness check
const PingTimeout = 2 * time.Second

// Ping checks the connection behind the store
func (s *GridFSStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return errors.New("blob store is not connected")
	}
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	return s.db.Client().Ping(ctx, readpref.Primary())
}
