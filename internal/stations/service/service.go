// Package service implements station management business logic.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"evmaint_backend/internal/stations/repository"
	"evmaint_backend/platform/apperr"
	"evmaint_backend/platform/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Station statuses.
const (
	StatusActive      = "active"
	StatusMaintenance = "maintenance"
	StatusInactive    = "inactive"
)

// Station is the domain view of a charging station.
type Station struct {
	Code      string
	Name      string
	NameTH    string
	Address   string
	Province  string
	Latitude  float64
	Longitude float64
	Brand     string
	Chargers  int
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateInput carries the fields for provisioning a station.
type CreateInput struct {
	Code      string
	Name      string
	NameTH    string
	Address   string
	Province  string
	Latitude  float64
	Longitude float64
	Brand     string
	Chargers  int
	Status    string
}

// UpdateInput carries optional station updates; nil fields are left unchanged.
type UpdateInput struct {
	Name      *string
	NameTH    *string
	Address   *string
	Province  *string
	Latitude  *float64
	Longitude *float64
	Brand     *string
	Chargers  *int
	Status    *string
}

type Service struct {
	repo *repository.Repository
	log  *logger.Logger
}

func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List returns the stations visible to the caller. Admins see every station;
// other users see only the codes they have been granted.
func (s *Service) List(ctx context.Context, admin bool, grantedCodes []string) ([]Station, error) {
	codes := grantedCodes
	if admin {
		codes = nil
	} else if codes == nil {
		codes = []string{}
	}

	records, err := s.repo.List(ctx, codes)
	if err != nil {
		s.log.DatabaseError("stations.list", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list stations", err)
	}

	stations := make([]Station, 0, len(records))
	for _, rec := range records {
		stations = append(stations, toStation(rec))
	}
	return stations, nil
}

func (s *Service) Get(ctx context.Context, code string) (Station, error) {
	rec, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Station{}, apperr.NotFound("station not found")
		}
		s.log.DatabaseError("stations.get", err)
		return Station{}, apperr.Wrap(apperr.KindInternal, "failed to load station", err)
	}
	return toStation(rec), nil
}

// Create provisions a station. An empty code gets a generated one.
func (s *Service) Create(ctx context.Context, in CreateInput) (Station, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		code = "ST-" + strings.ToUpper(uuid.NewString()[:8])
	}
	status := in.Status
	if status == "" {
		status = StatusActive
	}
	if !validStatus(status) {
		return Station{}, apperr.Validation("unknown station status")
	}

	rec := repository.Station{
		Code:      code,
		Name:      in.Name,
		NameTH:    in.NameTH,
		Address:   in.Address,
		Province:  in.Province,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Brand:     in.Brand,
		Chargers:  in.Chargers,
		Status:    status,
	}
	if err := s.repo.Create(ctx, &rec); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			return Station{}, apperr.Conflict("station code already exists")
		}
		s.log.DatabaseError("stations.insert", err)
		return Station{}, apperr.Wrap(apperr.KindInternal, "failed to create station", err)
	}
	return toStation(rec), nil
}

func (s *Service) Update(ctx context.Context, code string, in UpdateInput) (Station, error) {
	fields := bson.M{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.NameTH != nil {
		fields["name_th"] = *in.NameTH
	}
	if in.Address != nil {
		fields["address"] = *in.Address
	}
	if in.Province != nil {
		fields["province"] = *in.Province
	}
	if in.Latitude != nil {
		fields["latitude"] = *in.Latitude
	}
	if in.Longitude != nil {
		fields["longitude"] = *in.Longitude
	}
	if in.Brand != nil {
		fields["brand"] = *in.Brand
	}
	if in.Chargers != nil {
		fields["chargers"] = *in.Chargers
	}
	if in.Status != nil {
		if !validStatus(*in.Status) {
			return Station{}, apperr.Validation("unknown station status")
		}
		fields["status"] = *in.Status
	}
	if len(fields) == 0 {
		return s.Get(ctx, code)
	}

	rec, err := s.repo.Update(ctx, code, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Station{}, apperr.NotFound("station not found")
		}
		s.log.DatabaseError("stations.update", err)
		return Station{}, apperr.Wrap(apperr.KindInternal, "failed to update station", err)
	}
	return toStation(rec), nil
}

func (s *Service) Delete(ctx context.Context, code string) error {
	if err := s.repo.Delete(ctx, code); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("station not found")
		}
		s.log.DatabaseError("stations.delete", err)
		return apperr.Wrap(apperr.KindInternal, "failed to delete station", err)
	}
	return nil
}

func validStatus(status string) bool {
	switch status {
	case StatusActive, StatusMaintenance, StatusInactive:
		return true
	}
	return false
}

func toStation(rec repository.Station) Station {
	return Station{
		Code:      rec.Code,
		Name:      rec.Name,
		NameTH:    rec.NameTH,
		Address:   rec.Address,
		Province:  rec.Province,
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,
		Brand:     rec.Brand,
		Chargers:  rec.Chargers,
		Status:    rec.Status,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
