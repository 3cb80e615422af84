// Package document defines the typed, read-only view of a stored report that
// the renderer consumes. Stored reports are loosely structured BSON; this
// package decodes them defensively so a missing or oddly typed field never
// aborts a render.
package document

import (
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RowResult is one checklist row's stored result.
type RowResult struct {
	PF     string
	Remark string
}

// Photo is one stored photo reference.
type Photo struct {
	URL      string
	Filename string
}

// Attachment is one stored test-file reference (DC test reports).
type Attachment struct {
	Filename string
	URL      string
	Ext      string
}

// TestFiles maps section -> item index -> round index -> handgun -> attachment.
type TestFiles map[string]map[string]map[string]map[string]Attachment

// Report is the decoded form of one stored PM/CM/test report.
type Report struct {
	ID           string
	IssueID      string
	StationID    string
	Head         map[string]string
	Rows         map[string]RowResult
	Measures     map[string]map[string]string
	MeasuresPre  map[string]map[string]string
	Photos       map[string][]Photo
	PhotosPre    map[string][]Photo
	Summary      string
	SummaryCheck string
	TestFiles    TestFiles
}

// HeadValue returns the head/job metadata value for key, or "" when absent.
func (r Report) HeadValue(key string) string {
	return r.Head[key]
}

// Row returns the stored result for a row key and whether it exists.
func (r Report) Row(key string) (RowResult, bool) {
	row, ok := r.Rows[key]
	return row, ok
}

// Measure returns one value from a measurement set, or "" when absent.
func (r Report) Measure(set, key string) string {
	if m, ok := r.Measures[set]; ok {
		return m[key]
	}
	return ""
}

// FromBSON decodes a stored report document. Unknown fields are ignored and
// malformed values degrade to zero values.
func FromBSON(doc bson.M) Report {
	r := Report{
		Head:        map[string]string{},
		Rows:        map[string]RowResult{},
		Measures:    map[string]map[string]string{},
		MeasuresPre: map[string]map[string]string{},
		Photos:      map[string][]Photo{},
		PhotosPre:   map[string][]Photo{},
		TestFiles:   TestFiles{},
	}

	if oid, ok := doc["_id"].(primitive.ObjectID); ok {
		r.ID = oid.Hex()
	}
	r.IssueID = asString(doc["issue_id"])
	r.StationID = asString(doc["station_id"])
	r.Summary = asString(doc["summary"])
	r.SummaryCheck = asString(doc["summaryCheck"])

	for _, key := range []string{"head", "job"} {
		for k, v := range asMap(doc[key]) {
			r.Head[k] = asString(v)
		}
	}
	for k, v := range asMap(doc["rows"]) {
		row := asMap(v)
		r.Rows[k] = RowResult{
			PF:     asString(row["pf"]),
			Remark: asString(row["remark"]),
		}
	}
	r.Measures = decodeMeasures(doc["measures"])
	r.MeasuresPre = decodeMeasures(doc["measures_pre"])
	r.Photos = decodePhotos(doc["photos"])
	r.PhotosPre = decodePhotos(doc["photos_pre"])
	r.TestFiles = decodeTestFiles(doc["test_files"])

	return r
}

func decodeMeasures(v interface{}) map[string]map[string]string {
	out := map[string]map[string]string{}
	for set, raw := range asMap(v) {
		values := map[string]string{}
		for k, vv := range asMap(raw) {
			values[k] = asString(vv)
		}
		out[set] = values
	}
	return out
}

func decodePhotos(v interface{}) map[string][]Photo {
	out := map[string][]Photo{}
	for group, raw := range asMap(v) {
		var photos []Photo
		for _, item := range asSlice(raw) {
			p := asMap(item)
			photo := Photo{URL: asString(p["url"]), Filename: asString(p["filename"])}
			if photo.URL == "" {
				// A bare string entry is treated as the URL itself.
				photo.URL = asString(item)
			}
			if photo.URL != "" {
				photos = append(photos, photo)
			}
		}
		out[group] = photos
	}
	return out
}

func decodeTestFiles(v interface{}) TestFiles {
	out := TestFiles{}
	for section, rawItems := range asMap(v) {
		items := map[string]map[string]map[string]Attachment{}
		for item, rawRounds := range asMap(rawItems) {
			rounds := map[string]map[string]Attachment{}
			for round, rawGuns := range asMap(rawRounds) {
				guns := map[string]Attachment{}
				for gun, rawFile := range asMap(rawGuns) {
					f := asMap(rawFile)
					att := Attachment{
						Filename: asString(f["filename"]),
						URL:      asString(f["url"]),
						Ext:      strings.ToLower(asString(f["ext"])),
					}
					if att.Ext == "" && att.Filename != "" {
						if i := strings.LastIndexByte(att.Filename, '.'); i >= 0 {
							att.Ext = strings.ToLower(att.Filename[i+1:])
						}
					}
					if att.Filename != "" || att.URL != "" {
						guns[gun] = att
					}
				}
				if len(guns) > 0 {
					rounds[round] = guns
				}
			}
			if len(rounds) > 0 {
				items[item] = rounds
			}
		}
		if len(items) > 0 {
			out[section] = items
		}
	}
	return out
}

// RowIndex parses the numeric index out of a row key like "r12". It returns
// false for malformed keys (missing or non-numeric suffix).
func RowIndex(key string) (int, bool) {
	if !strings.HasPrefix(key, "r") {
		return 0, false
	}
	n, err := strconv.Atoi(key[1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// SubRowKey splits a sub-row key of the form "r<N>_sub<M>" or "r<N>_<M>" into
// its parent index and sub index.
func SubRowKey(key string) (parent, sub int, ok bool) {
	base, rest, found := strings.Cut(key, "_")
	if !found {
		return 0, 0, false
	}
	parent, pok := RowIndex(base)
	if !pok {
		return 0, 0, false
	}
	rest = strings.TrimPrefix(rest, "sub")
	sub, err := strconv.Atoi(rest)
	if err != nil || sub < 0 {
		return 0, 0, false
	}
	return parent, sub, true
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case int32:
		return strconv.Itoa(int(t))
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func asMap(v interface{}) bson.M {
	switch t := v.(type) {
	case bson.M:
		return t
	case bson.D:
		return t.Map()
	case map[string]interface{}:
		return t
	default:
		return bson.M{}
	}
}

func asSlice(v interface{}) []interface{} {
	switch t := v.(type) {
	case bson.A:
		return t
	case []interface{}:
		return t
	default:
		return nil
	}
}
