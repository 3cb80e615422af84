// Package repository provides MongoDB persistence for charging stations.
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
	ErrNotFound      = errors.New("station not found")
	ErrDuplicateCode = errors.New("station code already exists")
)

// Station is a charging station document.
type Station struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Code      string             `bson:"code"`
	Name      string             `bson:"name"`
	NameTH    string             `bson:"name_th,omitempty"`
	Address   string             `bson:"address,omitempty"`
	Province  string             `bson:"province,omitempty"`
	Latitude  float64            `bson:"latitude,omitempty"`
	Longitude float64            `bson:"longitude,omitempty"`
	Brand     string             `bson:"brand,omitempty"`
	Chargers  int                `bson:"chargers,omitempty"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// Repository persists stations in the stations collection.
type Repository struct {
	col *mongo.Collection
}

func New(db *mongo.Database) *Repository {
	return &Repository{col: db.Collection("stations")}
}

// EnsureIndexes creates the unique index on the station code.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *Repository) Create(ctx context.Context, station *Station) error {
	now := time.Now().UTC()
	station.CreatedAt = now
	station.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, station)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateCode
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		station.ID = oid
	}
	return nil
}

// GetByCode fetches a station by its human-readable code.
func (r *Repository) GetByCode(ctx context.Context, code string) (Station, error) {
	var station Station
	err := r.col.FindOne(ctx, bson.M{"code": code}).Decode(&station)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Station{}, ErrNotFound
		}
		return Station{}, err
	}
	return station, nil
}

// List returns stations sorted by code. When codes is non-nil the result is
// restricted to that set; an empty non-nil set yields no stations.
func (r *Repository) List(ctx context.Context, codes []string) ([]Station, error) {
	filter := bson.M{}
	if codes != nil {
		filter["code"] = bson.M{"$in": codes}
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stations := make([]Station, 0)
	if err := cursor.All(ctx, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

// Update applies the given fields to the station with the code and returns the
// updated document.
func (r *Repository) Update(ctx context.Context, code string, fields bson.M) (Station, error) {
	fields["updated_at"] = time.Now().UTC()

	var station Station
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"code": code},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&station)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Station{}, ErrNotFound
		}
		return Station{}, err
	}
	return station, nil
}

func (r *Repository) Delete(ctx context.Context, code string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"code": code})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
