package merge

import (
	"context"
	"math"
	"testing"

	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/photos"
	"evmaint_backend/platform/logger"
)

type renderCfg struct{}

func (renderCfg) GetUploadsDir() string               { return "" }
func (renderCfg) GetPublicDir() string                { return "" }
func (renderCfg) GetFontsDir() string                 { return "" }
func (renderCfg) GetPhotosBaseURL() string            { return "" }
func (renderCfg) GetPhotosHeaders() map[string]string { return nil }
func (renderCfg) IsPDFDebug() bool                    { return false }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestMMRectToPDFPointsFlipsYAxis(t *testing.T) {
	// A 10x5mm box 20mm from the top of an A4 page.
	r := MMRect{X: 12, Y: 20, W: 10, H: 5}
	pr := MMRectToPDFPoints(297, r)

	k := 72.0 / 25.4
	if !almostEqual(pr.LLX, 12*k) {
		t.Fatalf("LLX = %f, want %f", pr.LLX, 12*k)
	}
	if !almostEqual(pr.URX, 22*k) {
		t.Fatalf("URX = %f, want %f", pr.URX, 22*k)
	}
	// Top of the box is 20mm from the page top, so 277mm from the bottom.
	if !almostEqual(pr.URY, 277*k) {
		t.Fatalf("URY = %f, want %f", pr.URY, 277*k)
	}
	if !almostEqual(pr.LLY, 272*k) {
		t.Fatalf("LLY = %f, want %f", pr.LLY, 272*k)
	}
}

func TestMMRectToPDFPointsOrdersCorners(t *testing.T) {
	pr := MMRectToPDFPoints(297, MMRect{X: 50, Y: 100, W: 80, H: 40})
	if pr.LLX >= pr.URX {
		t.Fatalf("LLX %f not left of URX %f", pr.LLX, pr.URX)
	}
	if pr.LLY >= pr.URY {
		t.Fatalf("LLY %f not below URY %f", pr.LLY, pr.URY)
	}
}

func TestPlanAccumulatesTargetPages(t *testing.T) {
	atts := []*Attachment{
		{Bookmark: "R1_1_LEFT", IsPDF: true, Pages: 1},
		{Bookmark: "R1_1_RIGHT", IsPDF: true, Pages: 3},
		{Bookmark: "R1_2_LEFT", IsPDF: false},
		{Bookmark: "R2_1_LEFT", IsPDF: true, Pages: 2},
	}

	total := Plan(5, atts)
	if total != 11 {
		t.Fatalf("total pages = %d, want 11", total)
	}
	if atts[0].TargetPage != 6 {
		t.Fatalf("first attachment target = %d, want 6", atts[0].TargetPage)
	}
	if atts[1].TargetPage != 7 {
		t.Fatalf("second attachment target = %d, want 7", atts[1].TargetPage)
	}
	if atts[2].TargetPage != 0 {
		t.Fatalf("non-PDF attachment got target %d", atts[2].TargetPage)
	}
	if atts[3].TargetPage != 10 {
		t.Fatalf("last attachment target = %d, want 10", atts[3].TargetPage)
	}
}

func TestPlanWithoutAttachments(t *testing.T) {
	if total := Plan(4, nil); total != 4 {
		t.Fatalf("total pages = %d, want 4", total)
	}
}

func TestOrderedKeysNumericAware(t *testing.T) {
	m := map[string]struct{}{
		"r10": {}, "r2": {}, "r1": {}, "other": {},
	}
	got := orderedKeys(m)
	want := []string{"r1", "r2", "r10", "other"}
	if len(got) != len(want) {
		t.Fatalf("got %d keys, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v", got, want)
		}
	}
}

func TestCollectUsesResolvedItemTitles(t *testing.T) {
	// Non-PDF extensions keep Collect offline: no fetch is attempted.
	files := document.TestFiles{
		"electrical": {
			"1": {"r1": {"h1": document.Attachment{Filename: "scan.png", Ext: "png"}}},
			"9": {"r2": {"h2": document.Attachment{Filename: "notes.txt", Ext: "txt"}}},
		},
	}
	titles := map[string]string{"1": "Protective Earth Continuity"}
	resolve := func(section, item string) string { return titles[item] }

	log := logger.New("development", false)
	cache := photos.NewCache(photos.NewResolver(renderCfg{}, log))

	entries := Collect(context.Background(), files, cache, log, resolve)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Label != "R1_Protective Earth Continuity_h1" {
		t.Fatalf("resolved label = %q", entries[0].Label)
	}
	if entries[1].Label != "R2_9_h2" {
		t.Fatalf("fallback label = %q, want raw item key", entries[1].Label)
	}
}

func TestKeyNumber(t *testing.T) {
	cases := map[string]string{
		"r12":   "12",
		"12":    "12",
		"round": "round",
		"g3":    "3",
	}
	for in, want := range cases {
		if got := keyNumber(in); got != want {
			t.Fatalf("keyNumber(%q) = %q, want %q", in, got, want)
		}
	}
}
