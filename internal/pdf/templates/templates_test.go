package templates

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/merge"
	"evmaint_backend/internal/pdf/photos"
	"evmaint_backend/platform/logger"
)

type renderCfg struct {
	uploads string
}

func (c renderCfg) GetUploadsDir() string               { return c.uploads }
func (c renderCfg) GetPublicDir() string                { return "" }
func (c renderCfg) GetFontsDir() string                 { return "" }
func (c renderCfg) GetPhotosBaseURL() string            { return "" }
func (c renderCfg) GetPhotosHeaders() map[string]string { return nil }
func (c renderCfg) IsPDFDebug() bool                    { return false }

func testDeps(uploads string) Deps {
	log := logger.New("development", false)
	cfg := renderCfg{uploads: uploads}
	return Deps{
		RenderCfg: cfg,
		Cache:     photos.NewCache(photos.NewResolver(cfg, log)),
		Log:       log,
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := Render(context.Background(), "fax", document.Report{}, testDeps(""))
	if err == nil {
		t.Fatal("expected an error for an unknown template")
	}
}

func TestSupportedAndTypes(t *testing.T) {
	for _, name := range []string{"charger", "mdb", "ccb", "cbbox", "station", "cm", "dctest", "actest"} {
		if !Supported(name) {
			t.Fatalf("template %q not registered", name)
		}
	}
	types := Types()
	if len(types) != 8 {
		t.Fatalf("expected 8 registered templates, got %d", len(types))
	}
	for i := 1; i < len(types); i++ {
		if types[i-1] >= types[i] {
			t.Fatalf("types not sorted: %v", types)
		}
	}
}

// A charger inspection with a failing final row and a Thai remark must render
// without clipping or error, with the verdict carried through.
func TestRenderChargerFullChecklist(t *testing.T) {
	rows := map[string]document.RowResult{}
	for i := 1; i <= 17; i++ {
		rows["r"+strconv.Itoa(i)] = document.RowResult{PF: "pass"}
	}
	rows["r18"] = document.RowResult{PF: "fail", Remark: "ทำความสะอาด"}

	rep := document.Report{
		IssueID: "EV-2024-0007",
		Head: map[string]string{
			"station_name": "Central Plaza",
			"station_code": "ST-AB12CD34",
		},
		Rows:         rows,
		SummaryCheck: "FAIL",
	}

	out, pages, err := Render(context.Background(), "charger", rep, testDeps(""))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(out) == 0 || pages < 1 {
		t.Fatalf("empty output: %d bytes, %d pages", len(out), pages)
	}
}

// Photos pointing at files that do not exist must degrade to placeholder
// slots, never fail the render.
func TestRenderStationWithMissingPhotos(t *testing.T) {
	pics := make([]document.Photo, 5)
	for i := range pics {
		pics[i] = document.Photo{URL: "uploads/photos/missing-" + strconv.Itoa(i) + ".jpg"}
	}

	rep := document.Report{
		IssueID: "EV-2024-0008",
		Rows:    map[string]document.RowResult{"r1": {PF: "pass"}},
		Photos:  map[string][]document.Photo{"r1": pics},
	}

	out, pages, err := Render(context.Background(), "station", rep, testDeps(t.TempDir()))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(out) == 0 || pages < 2 {
		t.Fatalf("expected a photo page after the checklist, got %d pages", pages)
	}
}

func TestRenderCMWithNarrativeSections(t *testing.T) {
	rep := document.Report{
		IssueID: "EV-2024-0009",
		Head: map[string]string{
			"station_name": "Central Plaza",
			"problem":      "Charger offline after storm.",
			"cause":        "Tripped main breaker.",
			"action":       "Reset breaker, verified charging session.",
		},
		Rows:         map[string]document.RowResult{"r1": {PF: "pass"}},
		SummaryCheck: "pass",
	}

	out, _, err := Render(context.Background(), "cm", rep, testDeps(""))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty output")
	}
}

// A DC test whose attachments cannot be resolved still produces the report
// with the index page listing every file and "N/A" page references.
func TestRenderDCTestWithUnresolvableAttachments(t *testing.T) {
	rep := document.Report{
		IssueID: "EV-2024-0010",
		Measures: map[string]map[string]string{
			"electrical_h1": {
				"ins_lpe": "12.4", "ins_lpe_pf": "pass",
				"earth_cont": "0.06", "earth_cont_pf": "pass",
				"rcd_1x": "28", "rcd_1x_pf": "pass",
			},
			"charger_h1": {
				"cp_state_a": "12.1", "cp_state_a_pf": "pass",
				"estop_pf": "pass",
			},
		},
		SummaryCheck: "pass",
		TestFiles: document.TestFiles{
			"charger": {
				"0": {"0": {"h1": {Filename: "trace.pdf", URL: "uploads/tests/trace.pdf", Ext: "pdf"}}},
			},
		},
	}

	out, pages, err := Render(context.Background(), "dctest", rep, testDeps(t.TempDir()))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(out) == 0 || pages < 2 {
		t.Fatalf("expected main page plus index page, got %d pages", pages)
	}
}

// A DC test referencing a real multi-page PDF and a non-PDF file merges the
// PDF after the main body and leaves the non-PDF listed only.
func TestRenderDCTestMergesAttachedPDF(t *testing.T) {
	uploads := t.TempDir()
	dir := filepath.Join(uploads, "tests")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	fixture := buildPDF(t)
	attPages, err := merge.CountPages(fixture)
	if err != nil {
		t.Fatalf("counting fixture pages: %v", err)
	}
	if attPages < 2 {
		t.Fatalf("fixture must span multiple pages, got %d", attPages)
	}
	if err := os.WriteFile(filepath.Join(dir, "trace.pdf"), fixture, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "photo.jpg"), []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	rep := document.Report{
		IssueID: "EV-2024-0011",
		TestFiles: document.TestFiles{
			"charger": {
				"0": {"0": {"h1": {Filename: "trace.pdf", URL: "uploads/tests/trace.pdf", Ext: "pdf"}}},
				"1": {"0": {"h1": {Filename: "photo.jpg", URL: "uploads/tests/photo.jpg", Ext: "jpg"}}},
			},
		},
	}

	out, pages, err := Render(context.Background(), "dctest", rep, testDeps(uploads))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	plain, plainPages, err := Render(context.Background(), "dctest", document.Report{
		IssueID: rep.IssueID,
		TestFiles: document.TestFiles{
			"charger": {
				"1": {"0": {"h1": {Filename: "photo.jpg", URL: "uploads/tests/photo.jpg", Ext: "jpg"}}},
			},
		},
	}, testDeps(uploads))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if pages != plainPages+attPages {
		t.Fatalf("merged page count = %d, want main %d + attachment %d", pages, plainPages, attPages)
	}
	if len(out) <= len(plain) {
		t.Fatalf("merged output (%d bytes) not larger than unmerged (%d bytes)", len(out), len(plain))
	}
}

func TestRenderACTestIgnoresTestFiles(t *testing.T) {
	rep := document.Report{
		IssueID: "EV-2024-0012",
		TestFiles: document.TestFiles{
			"charger": {
				"0": {"0": {"h1": {Filename: "trace.pdf", URL: "uploads/tests/trace.pdf", Ext: "pdf"}}},
			},
		},
	}

	_, pages, err := Render(context.Background(), "actest", rep, testDeps(""))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if pages != 1 {
		t.Fatalf("AC test must not render an attachment index, got %d pages", pages)
	}
}

func TestItemTitleResolvesSectionRows(t *testing.T) {
	if got := testItemTitle("electrical", "3"); got != "Protective Earth Continuity" {
		t.Fatalf("electrical item 3 = %q", got)
	}
	if got := testItemTitle("charger", "i6"); got != "Emergency Stop Cuts Output" {
		t.Fatalf("charger item i6 = %q", got)
	}
	if got := testItemTitle("electrical", "99"); got != "" {
		t.Fatalf("out-of-range item resolved to %q", got)
	}
	if got := testItemTitle("plumbing", "1"); got != "" {
		t.Fatalf("unknown section resolved to %q", got)
	}
	if got := testItemTitle("charger", "none"); got != "" {
		t.Fatalf("non-numeric item resolved to %q", got)
	}
}

func TestSplitOnOhmIsolatesGlyph(t *testing.T) {
	got := splitOnOhm("≤ 0.1 Ω max")
	want := []string{"≤ 0.1 ", "Ω", " max"}
	if len(got) != len(want) {
		t.Fatalf("segments = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segments = %q, want %q", got, want)
		}
	}

	if got := splitOnOhm("no symbol"); len(got) != 1 || got[0] != "no symbol" {
		t.Fatalf("plain text split = %q", got)
	}
}

// buildPDF renders a multi-page document to use as an attachment fixture.
func buildPDF(t *testing.T) []byte {
	t.Helper()
	rows := map[string]document.RowResult{}
	for i := 1; i <= 120; i++ {
		rows["r"+strconv.Itoa(i)] = document.RowResult{PF: "pass", Remark: "generated filler row for page counting"}
	}

	out, _, err := Render(context.Background(), "cbbox", document.Report{IssueID: "attachment", Rows: rows}, testDeps(""))
	if err != nil {
		t.Fatalf("building fixture PDF: %v", err)
	}
	return out
}
