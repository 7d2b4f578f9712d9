package jobmodel

import (
	"context"
	"errors"
	"log/slog"

	"github.com/proofdeck/proofdeck-api/internal/bulk"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "batch_jobs"

// Store persists batch job snapshots in MongoDB so any instance can
// answer status polls.
type Store struct {
	collection *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection(collectionName)}
}

func (s *Store) Save(ctx context.Context, status *bulk.JobStatus) error {
	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": status.ID},
		status,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		slog.Error("Job Save", "error", err, "job_id", status.ID)
	}
	return err
}

func (s *Store) Get(ctx context.Context, jobId string) (*bulk.JobStatus, error) {
	status := new(bulk.JobStatus)
	err := s.collection.FindOne(ctx, bson.M{"_id": jobId}).Decode(status)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		slog.Error("Job Get", "error", err, "job_id", jobId)
		return nil, err
	}

	return status, nil
}
