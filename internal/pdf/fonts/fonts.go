// Package fonts registers the report faces with an fpdf document: a Thai
// UTF-8 face for body text and a symbol face for glyphs the Thai face lacks
// (checkmarks, crosses, Ω). Candidate font files are tried in order; when
// nothing resolves the built-in core font is used so rendering still
// proceeds, minus Thai glyphs.
package fonts

import (
	"os"
	"path/filepath"

	"evmaint_backend/platform/logger"

	"github.com/go-pdf/fpdf"
)

const (
	// FamilyThai is the registered family name for body text.
	FamilyThai = "Sarabun"
	// FamilySymbol is the registered family name for symbol glyphs.
	FamilySymbol = "Symbols"
	// familyFallback is fpdf's built-in core font used when no TTF resolves.
	familyFallback = "Helvetica"
)

var thaiFiles = map[string]string{
	"":  "Sarabun-Regular.ttf",
	"B": "Sarabun-Bold.ttf",
}

var symbolFiles = []string{"DejaVuSans.ttf", "NotoSansSymbols-Regular.ttf"}

// Fonts describes the faces available on a document.
type Fonts struct {
	Body      string
	Symbol    string
	HasThai   bool
	HasSymbol bool
	BoldStyle string
}

// Load registers fonts on the document, searching the configured directory
// first and then a set of conventional locations.
func Load(pdf *fpdf.Fpdf, fontsDir string, log *logger.Logger) Fonts {
	dirs := candidateDirs(fontsDir)
	f := Fonts{Body: familyFallback, Symbol: familyFallback, BoldStyle: "B"}

	loadedThai := true
	for style, file := range thaiFiles {
		data, path, ok := resolve(dirs, file)
		if !ok {
			if style == "" {
				loadedThai = false
			}
			continue
		}
		pdf.AddUTF8FontFromBytes(FamilyThai, style, data)
		log.Debug("font registered", "family", FamilyThai, "style", style, "path", path)
	}
	if loadedThai {
		f.Body = FamilyThai
		f.HasThai = true
	} else {
		log.Warn("thai font not found, falling back to core font", "searched", dirs)
	}

	for _, file := range symbolFiles {
		data, path, ok := resolve(dirs, file)
		if !ok {
			continue
		}
		pdf.AddUTF8FontFromBytes(FamilySymbol, "", data)
		f.Symbol = FamilySymbol
		f.HasSymbol = true
		log.Debug("font registered", "family", FamilySymbol, "path", path)
		break
	}
	if !f.HasSymbol {
		log.Warn("symbol font not found, result glyphs degrade to letters")
	}

	return f
}

// candidateDirs lists font directories in resolution order.
func candidateDirs(configured string) []string {
	dirs := make([]string, 0, 6)
	if configured != "" {
		dirs = append(dirs, configured)
	}
	dirs = append(dirs,
		"fonts",
		filepath.Join("..", "fonts"),
		"/usr/share/fonts/truetype/sarabun",
		"/usr/share/fonts/truetype/dejavu",
		"/usr/local/share/fonts",
	)
	return dirs
}

func resolve(dirs []string, file string) ([]byte, string, bool) {
	for _, dir := range dirs {
		path := filepath.Join(dir, file)
		data, err := os.ReadFile(path)
		if err == nil && len(data) > 0 {
			return data, path, true
		}
	}
	return nil, "", false
}
