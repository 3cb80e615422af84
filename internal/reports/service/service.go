// Package service implements report listing, retrieval, and PDF generation
// with station-grant authorization.
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"evmaint_backend/internal/events"
	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/photos"
	"evmaint_backend/internal/pdf/templates"
	"evmaint_backend/internal/reports/repository"
	"evmaint_backend/platform/apperr"
	"evmaint_backend/platform/config"
	"evmaint_backend/platform/logger"

	"go.mongodb.org/mongo-driver/bson"
)

// Rendered is one generated report PDF.
type Rendered struct {
	Bytes   []byte
	Pages   int
	IssueID string
}

type Service struct {
	repo      *repository.Repository
	renderCfg config.RenderConfig
	bus       events.Bus
	log       *logger.Logger
}

func New(repo *repository.Repository, renderCfg config.RenderConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		renderCfg: renderCfg,
		bus:       bus,
		log:       log.WithComponent("reports"),
	}
}

// List returns report summaries visible to the caller, newest first. A
// station filter outside the caller's grants yields an empty list rather
// than leaking which stations exist.
func (s *Service) List(ctx context.Context, reportType, station string, admin bool, granted []string) ([]repository.Summary, error) {
	var stations []string
	switch {
	case station != "":
		if !admin && !contains(granted, station) {
			return []repository.Summary{}, nil
		}
		stations = []string{station}
	case !admin:
		stations = granted
		if stations == nil {
			stations = []string{}
		}
	}

	summaries, err := s.repo.List(ctx, reportType, stations)
	if err != nil {
		return nil, s.mapError("reports.list", err)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

// Get returns one raw report document.
func (s *Service) Get(ctx context.Context, reportType, id string, admin bool, granted []string) (bson.M, error) {
	doc, err := s.repo.Get(ctx, reportType, id)
	if err != nil {
		return nil, s.mapError("reports.get", err)
	}
	if err := s.authorize(doc, admin, granted); err != nil {
		return nil, err
	}
	return doc, nil
}

// Render generates the PDF for one report document. Each render gets a fresh
// photo cache so file lookups cannot leak between requests.
func (s *Service) Render(ctx context.Context, reportType, id string, admin bool, granted []string) (Rendered, error) {
	doc, err := s.repo.Get(ctx, reportType, id)
	if err != nil {
		return Rendered{}, s.mapError("reports.render", err)
	}
	if err := s.authorize(doc, admin, granted); err != nil {
		return Rendered{}, err
	}

	rep := document.FromBSON(doc)
	deps := templates.Deps{
		RenderCfg: s.renderCfg,
		Cache:     photos.NewCache(photos.NewResolver(s.renderCfg, s.log)),
		Log:       s.log,
	}

	start := time.Now()
	out, pages, err := templates.Render(ctx, reportType, rep, deps)
	if err != nil {
		s.log.Error("report render failed", "type", reportType, "id", id, "error", err)
		return Rendered{}, apperr.Wrap(apperr.KindInternal, "failed to generate report", err)
	}

	s.log.ReportGenerated(reportType, rep.IssueID, pages, len(out), float64(time.Since(start).Milliseconds()))
	s.bus.Publish(ctx, events.ReportGenerated{
		BaseEvent:  events.NewBaseEvent(),
		ReportType: reportType,
		ReportID:   id,
		IssueID:    rep.IssueID,
		StationID:  rep.StationID,
		Pages:      pages,
	})

	return Rendered{Bytes: out, Pages: pages, IssueID: rep.IssueID}, nil
}

// authorize rejects access to a report whose station is outside the caller's
// grants.
func (s *Service) authorize(doc bson.M, admin bool, granted []string) error {
	if admin {
		return nil
	}
	station, _ := doc["station_id"].(string)
	if station == "" || contains(granted, station) {
		return nil
	}
	return apperr.Forbidden("no access to this station")
}

func (s *Service) mapError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("report not found")
	case errors.Is(err, repository.ErrUnknownType):
		return apperr.NotFound("unknown report type")
	default:
		s.log.DatabaseError(op, err)
		return apperr.Wrap(apperr.KindInternal, "failed to access reports", err)
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
