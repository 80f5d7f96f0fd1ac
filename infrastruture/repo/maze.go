package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.MazeRepo = &MazeRepo{}

// MazeRepo handles the persistence of maze records.
type MazeRepo struct {
	collection *mongo.Collection
	timeout    time.Duration
}

// NewMazeRepo creates a new MazeRepo with the given MongoDB client, database name, and collection name.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MazeRepo{
		collection: collection,
		timeout:    2 * time.Second,
	}
}

type posDocument struct {
	X int `bson:"x"`
	Y int `bson:"y"`
}

type ellersDocument struct {
	MergeProbability    float64 `bson:"mergeProbability"`
	VerticalProbability float64 `bson:"verticalProbability"`
}

type growingTreeDocument struct {
	Policy      string  `bson:"policy"`
	NewestRatio float64 `bson:"newestRatio"`
}

type mazeDocument struct {
	ID          string               `bson:"_id"`
	Algorithm   string               `bson:"algorithm"`
	Seed        string               `bson:"seed"`
	Ellers      *ellersDocument      `bson:"ellers,omitempty"`
	GrowingTree *growingTreeDocument `bson:"growingTree,omitempty"`
	Width       int                  `bson:"width"`
	Height      int                  `bson:"height"`
	Start       posDocument          `bson:"start"`
	Goal        posDocument          `bson:"goal"`
	Cells       []byte               `bson:"cells"`
	CreatedAt   time.Time            `bson:"createdAt"`
}

// Save inserts or updates a maze record.
// If the record already exists, it replaces the stored one.
func (r *MazeRepo) Save(ctx context.Context, record *dmn.MazeRecord) error {
	if record == nil || record.Maze == nil {
		return errors.New("save maze: empty record")
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := toDocument(record)
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByID retrieves a maze record by its ID.
// Returns dmn.ErrMazeNotFound if no record is stored under id.
func (r *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc mazeDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrMazeNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return fromDocument(doc)
}

// Delete removes a maze record by its ID.
func (r *MazeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	if res.DeletedCount == 0 {
		return dmn.ErrMazeNotFound
	}
	return nil
}

func toDocument(record *dmn.MazeRecord) mazeDocument {
	m := record.Maze
	doc := mazeDocument{
		ID:        record.ID.String(),
		Algorithm: string(record.Algorithm),
		Seed:      record.Seed.String(),
		Width:     m.Width(),
		Height:    m.Height(),
		Start:     posDocument{X: m.Start().X, Y: m.Start().Y},
		Goal:      posDocument{X: m.Goal().X, Y: m.Goal().Y},
		Cells:     m.Cells(),
		CreatedAt: record.CreatedAt,
	}
	if o := record.Options.Ellers; o != nil {
		doc.Ellers = &ellersDocument{
			MergeProbability:    o.MergeProbability,
			VerticalProbability: o.VerticalProbability,
		}
	}
	if o := record.Options.GrowingTree; o != nil {
		doc.GrowingTree = &growingTreeDocument{
			Policy:      o.Policy.String(),
			NewestRatio: o.NewestRatio,
		}
	}
	return doc
}

func fromDocument(doc mazeDocument) (*dmn.MazeRecord, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("stored maze id %q: %w", doc.ID, err)
	}
	seed, err := maze.ParseSeed(doc.Seed)
	if err != nil {
		return nil, fmt.Errorf("stored maze %s: %w", doc.ID, err)
	}
	m, err := maze.FromCells(
		doc.Width, doc.Height,
		maze.Coordinates{X: doc.Start.X, Y: doc.Start.Y},
		maze.Coordinates{X: doc.Goal.X, Y: doc.Goal.Y},
		doc.Cells,
	)
	if err != nil {
		return nil, fmt.Errorf("stored maze %s: %w", doc.ID, err)
	}

	record := &dmn.MazeRecord{
		ID:        id,
		Algorithm: maze.Algorithm(doc.Algorithm),
		Seed:      seed,
		Maze:      m,
		CreatedAt: doc.CreatedAt,
	}
	if doc.Ellers != nil {
		record.Options.Ellers = &maze.EllersOptions{
			MergeProbability:    doc.Ellers.MergeProbability,
			VerticalProbability: doc.Ellers.VerticalProbability,
		}
	}
	if doc.GrowingTree != nil {
		policy, err := maze.ParsePolicy(doc.GrowingTree.Policy)
		if err != nil {
			return nil, fmt.Errorf("stored maze %s: %w", doc.ID, err)
		}
		record.Options.GrowingTree = &maze.GrowingTreeOptions{
			Policy:      policy,
			NewestRatio: doc.GrowingTree.NewestRatio,
		}
	}
	return record, nil
}
