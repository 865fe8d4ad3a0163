package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-mazesolver/domain"
	"github.com/beka-birhanu/vinom-mazesolver/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.SolutionRepo = (*SolutionRepo)(nil)

// SolutionRepo handles the persistence of maze solutions.
type SolutionRepo struct {
	collection *mongo.Collection
}

// NewSolutionRepo creates a new SolutionRepo with the given MongoDB client, database name, and collection name.
func NewSolutionRepo(client *mongo.Client, dbName, collectionName string) *SolutionRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &SolutionRepo{
		collection: collection,
	}
}

// EnsureIndexes creates the unique fingerprint index.
func (s *SolutionRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "fingerprint", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Save inserts or updates a solution in the repository.
// A solution for an already stored fingerprint fails with dmn.ErrSolutionConflict.
func (s *SolutionRepo) Save(ctx context.Context, sol *dmn.Solution) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	filter := bson.M{"_id": sol.ID}
	update := bson.M{
		"$set": bson.M{
			"fingerprint": sol.Fingerprint,
			"height":      sol.Height,
			"width":       sol.Width,
			"found":       sol.Found,
			"path":        sol.Path,
			"expanded":    sol.Expanded,
			"createdAt":   sol.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.collection.UpdateOne(ctx, filter, update, opts)
	return saveError(err)
}

// saveError classifies a write error, keeping the driver error in the chain.
func saveError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %w", dmn.ErrSolutionConflict, err)
	}
	return fmt.Errorf("unexpected error: %w", err)
}

// ByID retrieves a solution by its ID.
func (s *SolutionRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.Solution, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// ByFingerprint retrieves the solution of the maze with the given fingerprint.
func (s *SolutionRepo) ByFingerprint(ctx context.Context, fingerprint string) (*dmn.Solution, error) {
	return s.findOne(ctx, bson.M{"fingerprint": fingerprint})
}

func (s *SolutionRepo) findOne(ctx context.Context, filter bson.M) (*dmn.Solution, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var sol dmn.Solution
	if err := s.collection.FindOne(ctx, filter).Decode(&sol); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrSolutionNotFound
		}
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return &sol, nil
}
