package document

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFromBSONMergesHeadAndJob(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := bson.M{
		"_id":        oid,
		"issue_id":   "EV-2024-0001",
		"station_id": "ST-1",
		"head":       bson.M{"station_name": "Central"},
		"job":        bson.M{"inspector": "Somchai"},
		"rows": bson.M{
			"r1": bson.M{"pf": "pass", "remark": "ok"},
		},
		"summaryCheck": "PASS",
	}

	r := FromBSON(doc)
	if r.ID != oid.Hex() {
		t.Fatalf("ID = %q", r.ID)
	}
	if r.Head["station_name"] != "Central" || r.Head["inspector"] != "Somchai" {
		t.Fatalf("head/job not merged: %v", r.Head)
	}
	row, ok := r.Row("r1")
	if !ok || row.PF != "pass" || row.Remark != "ok" {
		t.Fatalf("row r1 = %+v, ok=%v", row, ok)
	}
	if r.SummaryCheck != "PASS" {
		t.Fatalf("summaryCheck = %q", r.SummaryCheck)
	}
}

func TestFromBSONAcceptsBareStringPhotos(t *testing.T) {
	doc := bson.M{
		"photos": bson.M{
			"g1": bson.A{
				bson.M{"url": "uploads/a.jpg", "filename": "a.jpg"},
				"uploads/b.jpg",
				bson.M{"filename": "widowed.jpg"},
			},
		},
	}

	r := FromBSON(doc)
	photos := r.Photos["g1"]
	if len(photos) != 2 {
		t.Fatalf("expected 2 usable photos, got %d", len(photos))
	}
	if photos[0].URL != "uploads/a.jpg" || photos[1].URL != "uploads/b.jpg" {
		t.Fatalf("photos = %+v", photos)
	}
}

func TestFromBSONDerivesAttachmentExt(t *testing.T) {
	doc := bson.M{
		"test_files": bson.M{
			"charger": bson.M{
				"0": bson.M{
					"0": bson.M{
						"h1": bson.M{"filename": "Trace.PDF", "url": "uploads/t.pdf"},
						"h2": bson.M{"filename": "shot.jpg", "url": "uploads/s.jpg", "ext": "JPG"},
					},
				},
			},
		},
	}

	r := FromBSON(doc)
	guns := r.TestFiles["charger"]["0"]["0"]
	if guns["h1"].Ext != "pdf" {
		t.Fatalf("h1 ext = %q, want pdf (derived from filename)", guns["h1"].Ext)
	}
	if guns["h2"].Ext != "jpg" {
		t.Fatalf("h2 ext = %q, want lowercased jpg", guns["h2"].Ext)
	}
}

func TestFromBSONToleratesMalformedValues(t *testing.T) {
	doc := bson.M{
		"issue_id": int32(42),
		"rows":     "not a map",
		"photos":   bson.A{"not", "a", "map"},
	}

	r := FromBSON(doc)
	if r.IssueID != "42" {
		t.Fatalf("issue_id = %q", r.IssueID)
	}
	if len(r.Rows) != 0 || len(r.Photos) != 0 {
		t.Fatalf("malformed containers must decode empty: %+v", r)
	}
}

func TestRowIndex(t *testing.T) {
	cases := []struct {
		key string
		idx int
		ok  bool
	}{
		{"r1", 1, true},
		{"r12", 12, true},
		{"r", 0, false},
		{"x3", 0, false},
		{"r1a", 0, false},
	}
	for _, tc := range cases {
		idx, ok := RowIndex(tc.key)
		if idx != tc.idx || ok != tc.ok {
			t.Fatalf("RowIndex(%q) = (%d, %v), want (%d, %v)", tc.key, idx, ok, tc.idx, tc.ok)
		}
	}
}

func TestSubRowKey(t *testing.T) {
	cases := []struct {
		key         string
		parent, sub int
		ok          bool
	}{
		{"r1_sub2", 1, 2, true},
		{"r6_1", 6, 1, true},
		{"r1", 0, 0, false},
		{"x1_sub2", 0, 0, false},
		{"r1_subx", 0, 0, false},
	}
	for _, tc := range cases {
		parent, sub, ok := SubRowKey(tc.key)
		if parent != tc.parent || sub != tc.sub || ok != tc.ok {
			t.Fatalf("SubRowKey(%q) = (%d, %d, %v), want (%d, %d, %v)",
				tc.key, parent, sub, ok, tc.parent, tc.sub, tc.ok)
		}
	}
}
