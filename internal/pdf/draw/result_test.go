package draw

import "testing"

func TestNormalizeResultPassSynonyms(t *testing.T) {
	for _, in := range []string{"pass", "p", "true", "ok", "1", "✔", "✓", "PASS", " Pass "} {
		if got := NormalizeResult(in); got != ResultPass {
			t.Fatalf("NormalizeResult(%q) = %q, expected pass", in, got)
		}
	}
}

func TestNormalizeResultFailSynonyms(t *testing.T) {
	for _, in := range []string{"fail", "f", "false", "0", "x", "✗", "✕", "FAIL", "X"} {
		if got := NormalizeResult(in); got != ResultFail {
			t.Fatalf("NormalizeResult(%q) = %q, expected fail", in, got)
		}
	}
}

func TestNormalizeResultEverythingElseIsNA(t *testing.T) {
	for _, in := range []string{"", "maybe", "na", "n/a", "2", "yes", "✘?"} {
		if got := NormalizeResult(in); got != ResultNA {
			t.Fatalf("NormalizeResult(%q) = %q, expected na", in, got)
		}
	}
}
