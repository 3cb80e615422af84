package report

import (
	"fmt"
	"sort"
	"strings"

	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/draw"
)

// SubItem is one grouped sub-row under a checklist item.
type SubItem struct {
	Index  int
	Text   string
	Result draw.Result
	Remark string
}

// Item is the transient display form of one checklist row, built from the
// stored rows map and consumed immediately by the checklist drawer.
type Item struct {
	Index  int
	Key    string
	Text   string
	Result draw.Result
	Remark string
	Subs   []SubItem
}

// BuildItems transforms the stored rows into ordered display items: parents
// sorted by numeric index, sub-items nested under their parent ascending.
// Row keys missing from the template's titles get a generic "Item N" label;
// keys with malformed indices are skipped. Measurement-carrying rows get
// their formatted measurement appended to the display text.
func (c *Context) BuildItems() []Item {
	parents := map[int]*Item{}
	subs := map[int][]SubItem{}

	for key, row := range c.Report.Rows {
		if parent, subIdx, ok := document.SubRowKey(key); ok {
			subs[parent] = append(subs[parent], SubItem{
				Index:  subIdx,
				Text:   c.rowTitle(key, parent),
				Result: draw.NormalizeResult(row.PF),
				Remark: row.Remark,
			})
			continue
		}

		idx, ok := document.RowIndex(key)
		if !ok {
			c.Log.Debug("skipping malformed row key", "key", key)
			continue
		}
		parents[idx] = &Item{
			Index:  idx,
			Key:    key,
			Text:   c.itemText(key, idx),
			Result: draw.NormalizeResult(row.PF),
			Remark: row.Remark,
		}
	}

	// Sub-items whose parent row was not stored still need a visible parent.
	for parent := range subs {
		if _, ok := parents[parent]; !ok {
			key := fmt.Sprintf("r%d", parent)
			parents[parent] = &Item{
				Index:  parent,
				Key:    key,
				Text:   c.itemText(key, parent),
				Result: draw.ResultNA,
			}
		}
	}

	items := make([]Item, 0, len(parents))
	for idx, item := range parents {
		if subItems := subs[idx]; len(subItems) > 0 {
			sort.Slice(subItems, func(i, j int) bool { return subItems[i].Index < subItems[j].Index })
			item.Subs = subItems
		}
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Index < items[j].Index })
	return items
}

// itemText is the row title plus any derived measurement lines.
func (c *Context) itemText(key string, idx int) string {
	text := c.rowTitle(key, idx)
	if rule, ok := c.Config.MeasureRules[idx]; ok {
		if formatted := c.formatMeasures(rule); formatted != "" {
			text += "\n" + formatted
		}
	}
	return text
}

func (c *Context) rowTitle(key string, idx int) string {
	if title, ok := c.Config.RowTitles[key]; ok {
		return title
	}
	return fmt.Sprintf("Item %d", idx)
}

// formatMeasures renders a measurement rule's values, one "<label>: <value>
// <unit>" per line. Missing values print a dash so the reserved lines stay
// visible on paper.
func (c *Context) formatMeasures(rule MeasureRule) string {
	set := c.Report.Measures[rule.Set]
	if set == nil && len(c.Report.MeasuresPre) > 0 {
		set = c.Report.MeasuresPre[rule.Set]
	}

	lines := make([]string, 0, len(rule.Keys))
	for i, key := range rule.Keys {
		label := key
		if i < len(rule.Labels) {
			label = rule.Labels[i]
		}
		value := "-"
		if set != nil && strings.TrimSpace(set[key]) != "" {
			value = strings.TrimSpace(set[key])
		}
		if rule.Unit != "" {
			lines = append(lines, fmt.Sprintf("%s: %s %s", label, value, rule.Unit))
		} else {
			lines = append(lines, fmt.Sprintf("%s: %s", label, value))
		}
	}
	return strings.Join(lines, "\n")
}
