package draw

import "strings"

// Result is the normalized tri-state of a checklist row.
type Result string

const (
	ResultPass Result = "pass"
	ResultFail Result = "fail"
	ResultNA   Result = "na"
)

// NormalizeResult maps the many textual result synonyms found in stored
// documents onto the tri-state used by result cells. Anything unrecognized,
// including the empty string, is N/A.
func NormalizeResult(raw string) Result {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pass", "p", "true", "ok", "1", "✔", "✓":
		return ResultPass
	case "fail", "f", "false", "0", "x", "✗", "✕":
		return ResultFail
	default:
		return ResultNA
	}
}
