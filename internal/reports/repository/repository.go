// Package repository provides MongoDB access to the stored report documents.
// Each report family lives in its own collection; documents are loosely
// structured and served to the renderer as raw BSON.
package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound    = errors.New("report not found")
	ErrUnknownType = errors.New("unknown report type")
)

const listLimit = 200

// collections maps a report type to its MongoDB collection.
var collections = map[string]string{
	"charger": "pm_charger",
	"mdb":     "pm_mdb",
	"ccb":     "pm_ccb",
	"cbbox":   "pm_cbbox",
	"station": "pm_station",
	"cm":      "cm_reports",
	"dctest":  "test_dc",
	"actest":  "test_ac",
}

// Summary is the list view of one stored report.
type Summary struct {
	ID        string    `bson:"-"`
	Type      string    `bson:"-"`
	IssueID   string    `bson:"issue_id"`
	StationID string    `bson:"station_id"`
	CreatedAt time.Time `bson:"created_at"`
}

type Repository struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Repository {
	return &Repository{db: db}
}

// EnsureIndexes creates the station/type listing indexes on every report
// collection.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys: bson.D{
			{Key: "station_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	}
	for _, coll := range collections {
		if _, err := r.db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return err
		}
	}
	return nil
}

// Get fetches one raw report document by its hex object id.
func (r *Repository) Get(ctx context.Context, reportType, id string) (bson.M, error) {
	coll, ok := collections[reportType]
	if !ok {
		return nil, ErrUnknownType
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc bson.M
	err = r.db.Collection(coll).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// List returns report summaries newest first. An empty reportType spans every
// report family; a non-nil stations slice restricts to those station ids
// (an empty non-nil slice matches nothing).
func (r *Repository) List(ctx context.Context, reportType string, stations []string) ([]Summary, error) {
	types := make([]string, 0, len(collections))
	if reportType != "" {
		if _, ok := collections[reportType]; !ok {
			return nil, ErrUnknownType
		}
		types = append(types, reportType)
	} else {
		for t := range collections {
			types = append(types, t)
		}
	}

	filter := bson.M{}
	if stations != nil {
		filter["station_id"] = bson.M{"$in": stations}
	}

	var out []Summary
	for _, t := range types {
		summaries, err := r.listOne(ctx, t, filter)
		if err != nil {
			return nil, err
		}
		out = append(out, summaries...)
	}
	return out, nil
}

func (r *Repository) listOne(ctx context.Context, reportType string, filter bson.M) ([]Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(listLimit).
		SetProjection(bson.M{"issue_id": 1, "station_id": 1, "created_at": 1})

	cursor, err := r.db.Collection(collections[reportType]).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []Summary
	for cursor.Next(ctx) {
		var raw struct {
			ID        primitive.ObjectID `bson:"_id"`
			IssueID   string             `bson:"issue_id"`
			StationID string             `bson:"station_id"`
			CreatedAt time.Time          `bson:"created_at"`
		}
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}
		out = append(out, Summary{
			ID:        raw.ID.Hex(),
			Type:      reportType,
			IssueID:   raw.IssueID,
			StationID: raw.StationID,
			CreatedAt: raw.CreatedAt,
		})
	}
	return out, cursor.Err()
}
