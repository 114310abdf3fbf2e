package pantry

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var amountPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*%?\s*(.*)$`)

// ParseAmount reads pantry amounts such as "500%ml", "1.5 kg" or "12".
func ParseAmount(s string) (float64, string, bool) {
	m := amountPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, "", false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	return n, strings.TrimSpace(m[2]), true
}

// IsLow reports whether the item is running out. A low threshold in the
// quantity's own unit decides on its own. Otherwise, a threshold in another
// unit included, a per-unit heuristic applies: up to 100 g or ml, under
// 0.5 kg or l, or a single item or other unit.
func (i Item) IsLow() bool {
	amount, unit, ok := ParseAmount(i.Quantity)
	if !ok {
		return false
	}
	if low, lowUnit, ok := ParseAmount(i.Low); ok && strings.EqualFold(unit, lowUnit) {
		return amount <= low
	}
	return lowByHeuristic(amount, unit)
}

func lowByHeuristic(amount float64, unit string) bool {
	switch strings.ToLower(unit) {
	case "g", "ml":
		return amount <= 100
	case "kg", "l":
		return amount < 0.5
	default:
		return amount <= 1
	}
}

type DepletedItem struct {
	Name         string `json:"name" yaml:"name"`
	Section      string `json:"section" yaml:"section"`
	Quantity     string `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	LowThreshold string `json:"low_threshold,omitempty" yaml:"low_threshold,omitempty"`
	IsLow        bool   `json:"is_low" yaml:"is_low"`
}

// Depleted lists low items, or every item when all is set.
func (p *Pantry) Depleted(all bool) []DepletedItem {
	var out []DepletedItem
	for _, item := range p.Items() {
		low := item.IsLow()
		if low || all {
			out = append(out, DepletedItem{
				Name:         item.Name,
				Section:      item.Section,
				Quantity:     item.Quantity,
				LowThreshold: item.Low,
				IsLow:        low,
			})
		}
	}
	return out
}

var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
	"01/02/2006",
	"2006.01.02",
	"02-01-2006",
}

// ParseDate accepts the date layouts pantry files use in the wild. Ambiguous
// slash dates read day first.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type ExpiringItem struct {
	Name       string `json:"name" yaml:"name"`
	Section    string `json:"section" yaml:"section"`
	ExpireDate string `json:"expire_date,omitempty" yaml:"expire_date,omitempty"`
	DaysLeft   *int   `json:"days_until_expiry,omitempty" yaml:"days_until_expiry,omitempty"`
	Status     string `json:"status" yaml:"status"`
}

// Expiring lists items expiring within days of today, soonest first. Items
// without a readable expiry date are appended when includeUnknown is set.
func (p *Pantry) Expiring(today time.Time, days int, includeUnknown bool) []ExpiringItem {
	day := truncateDay(today)
	limit := day.AddDate(0, 0, days)

	var dated, unknown []ExpiringItem
	for _, item := range p.Items() {
		date, ok := ParseDate(item.Expire)
		if !ok {
			if includeUnknown {
				unknown = append(unknown, ExpiringItem{Name: item.Name, Section: item.Section, Status: "No expiry date"})
			}
			continue
		}
		date = truncateDay(date)
		if date.After(limit) {
			continue
		}
		left := daysBetween(day, date)
		dated = append(dated, ExpiringItem{
			Name:       item.Name,
			Section:    item.Section,
			ExpireDate: date.Format("2006-01-02"),
			DaysLeft:   &left,
			Status:     expiryStatus(left),
		})
	}
	sort.SliceStable(dated, func(i, j int) bool { return *dated[i].DaysLeft < *dated[j].DaysLeft })
	return append(dated, unknown...)
}

func expiryStatus(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("EXPIRED %d days ago", -days)
	case days == 0:
		return "EXPIRES TODAY"
	case days == 1:
		return "expires tomorrow"
	default:
		return fmt.Sprintf("expires in %d days", days)
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// daysBetween counts calendar days, immune to DST-length days.
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 12, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 12, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
