// Package selection manages the set of admin-checked product IDs. Bulk
// operations need a stable, duplicate-free list no matter how often a
// checkbox was toggled or how the list was re-sorted underneath the user.
package selection

import "strings"

// NormalizeIDs trims entries, drops empty ones and deduplicates while
// preserving first-seen order.
func NormalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// AllSelected reports whether every ID in allIDs is selected. An empty
// allIDs set is never "all selected"; this drives the select-all checkbox.
func AllSelected(allIDs, selectedIDs []string) bool {
	all := NormalizeIDs(allIDs)
	if len(all) == 0 {
		return false
	}
	selected := make(map[string]struct{}, len(selectedIDs))
	for _, id := range NormalizeIDs(selectedIDs) {
		selected[id] = struct{}{}
	}
	for _, id := range all {
		if _, ok := selected[id]; !ok {
			return false
		}
	}
	return true
}

// Toggle returns a new normalized set with id added (checked) or removed
// (unchecked). An empty id is a no-op apart from normalization; toggling an
// already-selected ID on is idempotent.
func Toggle(selectedIDs []string, id string, checked bool) []string {
	out := NormalizeIDs(selectedIDs)
	id = strings.TrimSpace(id)
	if id == "" {
		return out
	}
	if checked {
		for _, existing := range out {
			if existing == id {
				return out
			}
		}
		return append(out, id)
	}
	filtered := make([]string, 0, len(out))
	for _, existing := range out {
		if existing != id {
			filtered = append(filtered, existing)
		}
	}
	return filtered
}
