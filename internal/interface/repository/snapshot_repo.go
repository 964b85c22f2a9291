package repository

import (
	"context"
	"errors"
	"time"

	"surety-service/internal/domain/repository"
	"surety-service/internal/ledger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// latestSnapshotID keys the single rolling snapshot document.
const latestSnapshotID = "latest"

// MongoSnapshotRepository implements SnapshotRepository
type MongoSnapshotRepository struct {
	collection *mongo.Collection
}

type snapshotDocument struct {
	ID      string         `bson:"_id"`
	Seq     uint64         `bson:"seq"`
	SavedAt time.Time      `bson:"savedAt"`
	State   *ledger.Ledger `bson:"state"`
}

// NewMongoSnapshotRepository creates a new ledger snapshot repository
func NewMongoSnapshotRepository(db *mongo.Database) repository.SnapshotRepository {
	return &MongoSnapshotRepository{
		collection: db.Collection("ledger_snapshots"),
	}
}

// Save replaces the rolling snapshot with the current ledger state.
func (r *MongoSnapshotRepository) Save(ctx context.Context, st *ledger.Ledger) error {
	doc := snapshotDocument{
		ID:      latestSnapshotID,
		Seq:     st.Seq,
		SavedAt: time.Now().UTC(),
		State:   st,
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": latestSnapshotID}, doc, opts)
	return err
}

// Load returns the latest snapshot, or (nil, nil) when none exists.
func (r *MongoSnapshotRepository) Load(ctx context.Context) (*ledger.Ledger, error) {
	var doc snapshotDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": latestSnapshotID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	if doc.State != nil {
		doc.State.Normalize()
	}
	return doc.State, nil
}
