// Package repository provides read access to the telemetry collection.
// Telemetry documents are written by the ingestion pipeline; this backend
// only reads them.
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

var ErrNotFound = errors.New("no telemetry for station")

// Sample is one telemetry reading for a charger at a station.
type Sample struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	StationID    string             `bson:"station_id" json:"stationId"`
	ChargerID    string             `bson:"charger_id,omitempty" json:"chargerId,omitempty"`
	Status       string             `bson:"status,omitempty" json:"status,omitempty"`
	PowerKW      float64            `bson:"power_kw,omitempty" json:"powerKw,omitempty"`
	EnergyKWH    float64            `bson:"energy_kwh,omitempty" json:"energyKwh,omitempty"`
	VoltageV     float64            `bson:"voltage_v,omitempty" json:"voltageV,omitempty"`
	CurrentA     float64            `bson:"current_a,omitempty" json:"currentA,omitempty"`
	TemperatureC float64            `bson:"temperature_c,omitempty" json:"temperatureC,omitempty"`
	SOC          float64            `bson:"soc,omitempty" json:"soc,omitempty"`
	TS           time.Time          `bson:"ts" json:"ts"`
}

// Repository reads telemetry samples from MongoDB.
type Repository struct {
	col *mongo.Collection
}

func New(db *mongo.Database) *Repository {
	return &Repository{col: db.Collection("telemetry")}
}

// EnsureIndexes creates the station/timestamp index the pollers query on.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "station_id", Value: 1}, {Key: "ts", Value: -1}},
	})
	return err
}

// Latest returns the most recent sample for the station.
func (r *Repository) Latest(ctx context.Context, stationID string) (Sample, error) {
	var sample Sample
	err := r.col.FindOne(ctx,
		bson.M{"station_id": stationID},
		options.FindOne().SetSort(bson.D{{Key: "ts", Value: -1}}),
	).Decode(&sample)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Sample{}, ErrNotFound
		}
		return Sample{}, err
	}
	return sample, nil
}

// Since returns all samples for the station strictly newer than after,
// oldest first, capped at limit.
func (r *Repository) Since(ctx context.Context, stationID string, after time.Time, limit int64) ([]Sample, error) {
	cursor, err := r.col.Find(ctx,
		bson.M{"station_id": stationID, "ts": bson.M{"$gt": after}},
		options.Find().SetSort(bson.D{{Key: "ts", Value: 1}}).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	samples := make([]Sample, 0)
	if err := cursor.All(ctx, &samples); err != nil {
		return nil, err
	}
	return samples, nil
}
