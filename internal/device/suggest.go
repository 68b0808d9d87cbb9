package device

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// Suggest returns up to max display names from items that are close to the
// misspelled name, nearest first. Used for "did you mean" hints at the CLI
// boundary when FindIDByName comes up empty.
func Suggest(items []Record, name string, nameKeys []string, max int) []string {
	target := normalize(name)
	if target == "" || max <= 0 {
		return nil
	}
	if nameKeys == nil {
		nameKeys = DefaultNameKeys
	}

	// Edits beyond this are noise, not typos.
	threshold := 1 + len(target)/3

	type candidate struct {
		name string
		dist int
	}
	var candidates []candidate
	seen := make(map[string]bool)

	for _, item := range items {
		for _, key := range nameKeys {
			stored, ok := stringValue(item[key])
			if !ok || stored == "" {
				continue
			}
			norm := normalize(stored)
			if seen[norm] {
				continue
			}
			seen[norm] = true
			if d := levenshtein.ComputeDistance(target, norm); d <= threshold {
				candidates = append(candidates, candidate{name: stored, dist: d})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].name < candidates[j].name
	})

	if len(candidates) > max {
		candidates = candidates[:max]
	}
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names
}
