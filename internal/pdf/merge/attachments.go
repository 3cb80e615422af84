package merge

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/photos"
	"evmaint_backend/platform/logger"
)

// sectionOrder fixes the section walk order; unknown sections follow,
// sorted by name.
var sectionOrder = []string{"electrical", "charger"}

// IndexEntry is one row of the attachment index rendered into the report:
// either a PDF we will merge and link, or a non-PDF noted as not attachable.
type IndexEntry struct {
	Label      string
	Filename   string
	Attachment *Attachment
}

// ItemTitle resolves a test-file item key within a section to its printed
// test-item name. A nil resolver or an empty result keeps the raw key.
type ItemTitle func(section, item string) string

// Collect resolves every test-file reference in a report into merge-ready
// attachments, in a stable section/item/round/handgun order. Files that
// cannot be fetched or parsed are returned with IsPDF=false so the index can
// still list them.
func Collect(ctx context.Context, files document.TestFiles, cache *photos.Cache, log *logger.Logger, itemTitle ItemTitle) []IndexEntry {
	log = log.WithComponent("merge")

	var entries []IndexEntry
	for _, section := range orderedSections(files) {
		items := files[section]
		for _, item := range orderedKeys(items) {
			rounds := items[item]
			for _, round := range orderedKeys(rounds) {
				guns := rounds[round]
				for _, gun := range orderedKeys(guns) {
					entries = append(entries, buildEntry(ctx, section, item, round, gun, guns[gun], cache, log, itemTitle))
				}
			}
		}
	}
	return entries
}

func buildEntry(ctx context.Context, section, item, round, gun string, file document.Attachment, cache *photos.Cache, log *logger.Logger, itemTitle ItemTitle) IndexEntry {
	name := item
	if itemTitle != nil {
		if t := itemTitle(section, item); t != "" {
			name = t
		}
	}
	label := fmt.Sprintf("R%s_%s_%s", keyNumber(round), name, gun)
	entry := IndexEntry{Label: label, Filename: file.Filename}

	if file.Ext != "pdf" {
		return entry
	}

	url := file.URL
	if url == "" {
		url = file.Filename
	}
	data, ok := cache.Get(ctx, url)
	if !ok {
		log.Warn("test file unavailable", "section", section, "label", label, "url", url)
		return entry
	}

	pages, err := CountPages(data)
	if err != nil || pages == 0 {
		log.Warn("test file is not a readable PDF", "section", section, "label", label, "error", err)
		return entry
	}

	entry.Attachment = &Attachment{
		Bookmark: label,
		Data:     data,
		IsPDF:    true,
		Pages:    pages,
	}
	return entry
}

// PlanEntries assigns destination pages across the PDF entries and returns
// the attachments in merge order.
func PlanEntries(entries []IndexEntry, mainPages int) []*Attachment {
	atts := make([]*Attachment, 0, len(entries))
	for _, e := range entries {
		if e.Attachment != nil {
			atts = append(atts, e.Attachment)
		}
	}
	Plan(mainPages, atts)
	return atts
}

func orderedSections(files document.TestFiles) []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range sectionOrder {
		if _, ok := files[s]; ok {
			out = append(out, s)
			seen[s] = true
		}
	}
	var rest []string
	for s := range files {
		if !seen[s] {
			rest = append(rest, s)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// orderedKeys sorts map keys numerically when both carry a numeric core
// ("r2" before "r10"), falling back to lexical order.
func orderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, errI := strconv.Atoi(keyNumber(keys[i]))
		nj, errJ := strconv.Atoi(keyNumber(keys[j]))
		switch {
		case errI == nil && errJ == nil && ni != nj:
			return ni < nj
		case errI == nil && errJ != nil:
			return true
		case errI != nil && errJ == nil:
			return false
		}
		return keys[i] < keys[j]
	})
	return keys
}

// keyNumber strips any non-digit prefix ("r12" -> "12"); keys without digits
// come back unchanged.
func keyNumber(key string) string {
	i := strings.IndexFunc(key, func(r rune) bool { return r >= '0' && r <= '9' })
	if i < 0 {
		return key
	}
	return key[i:]
}
