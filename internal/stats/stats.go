// Package stats aggregates catalog entries into the summary served by the
// inventory endpoints.
package stats

import (
	"sort"

	"tipdex/server/internal/catalog"
)

// TypeCount pairs a tip type with how many entries carry it.
type TypeCount struct {
	TipType string `json:"tipType"`
	Count   int    `json:"count"`
}

// Summary is a point-in-time aggregate over the catalog.
type Summary struct {
	TotalEntries  int         `json:"totalEntries"`
	FilteredCount int         `json:"filteredCount"`
	TotalVolumeUL float64     `json:"totalVolumeUl"`
	RacksInUse    int         `json:"racksInUse"`
	ByTipType     []TypeCount `json:"byTipType"`
}

// Summarize folds the entries into a Summary. Tip type counts come back
// sorted by count descending, ties broken alphabetically.
func Summarize(entries []catalog.Entry) Summary {
	summary := Summary{TotalEntries: len(entries)}
	racks := make(map[string]struct{})
	byType := make(map[string]int)

	for _, entry := range entries {
		if entry.Filtered {
			summary.FilteredCount++
		}
		summary.TotalVolumeUL += entry.VolumeUL
		racks[entry.Rack] = struct{}{}
		byType[entry.TipType]++
	}

	summary.RacksInUse = len(racks)
	summary.ByTipType = make([]TypeCount, 0, len(byType))
	for tipType, count := range byType {
		summary.ByTipType = append(summary.ByTipType, TypeCount{TipType: tipType, Count: count})
	}
	sort.Slice(summary.ByTipType, func(i, j int) bool {
		if summary.ByTipType[i].Count != summary.ByTipType[j].Count {
			return summary.ByTipType[i].Count > summary.ByTipType[j].Count
		}
		return summary.ByTipType[i].TipType < summary.ByTipType[j].TipType
	})
	return summary
}
