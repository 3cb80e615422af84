// Package templates holds one entry point per report template: the six
// preventive/corrective maintenance forms and the DC/AC charger test reports.
// Each template parameterizes the shared engine in internal/pdf/report with
// its own titles, row tables, and column geometry; the test reports add their
// specialized sections on top.
package templates

import (
	"context"
	"fmt"
	"sort"

	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/photos"
	"evmaint_backend/platform/config"
	"evmaint_backend/platform/logger"
)

// Deps carries the render-scoped dependencies passed explicitly into every
// template (no ambient globals).
type Deps struct {
	RenderCfg config.RenderConfig
	Cache     *photos.Cache
	Log       *logger.Logger
}

// RenderFunc renders one report document into PDF bytes, returning the page
// count of the produced document.
type RenderFunc func(ctx context.Context, rep document.Report, deps Deps) ([]byte, int, error)

var registry = map[string]RenderFunc{
	"charger": renderCharger,
	"mdb":     renderMDB,
	"ccb":     renderCCB,
	"cbbox":   renderCBBox,
	"station": renderStation,
	"cm":      renderCM,
	"dctest":  renderDCTest,
	"actest":  renderACTest,
}

// Render dispatches to the template registered for reportType.
func Render(ctx context.Context, reportType string, rep document.Report, deps Deps) ([]byte, int, error) {
	fn, ok := registry[reportType]
	if !ok {
		return nil, 0, fmt.Errorf("unknown report template %q", reportType)
	}
	return fn(ctx, rep, deps)
}

// Supported reports whether a template exists for reportType.
func Supported(reportType string) bool {
	_, ok := registry[reportType]
	return ok
}

// Types lists the registered template names, sorted.
func Types() []string {
	types := make([]string, 0, len(registry))
	for name := range registry {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
