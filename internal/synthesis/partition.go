package synthesis

import (
	"fmt"

	"coursegen/internal/analysis"
	"coursegen/internal/playlist"
)

// group is one partition of the item sequence before module synthesis.
type group struct {
	Title       string
	Description string
	Items       []playlist.Item
}

// partition groups items into modules. The analysis-suggested path is used
// when it is internally consistent: every referenced id exists and none is
// referenced twice. Items the path omits are appended as a trailing group so
// no item is ever dropped. An absent or inconsistent path falls back to
// deterministic even chunking in source order.
func partition(items []playlist.Item, path []analysis.PathModule, minModules, maxModules int) []group {
	if groups, ok := partitionByPath(items, path); ok {
		return groups
	}
	return evenChunks(items, minModules, maxModules)
}

func partitionByPath(items []playlist.Item, path []analysis.PathModule) ([]group, bool) {
	if len(path) == 0 {
		return nil, false
	}
	byID := make(map[string]playlist.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	seen := make(map[string]bool, len(items))
	groups := make([]group, 0, len(path)+1)
	for i, module := range path {
		if len(module.ItemIDs) == 0 {
			return nil, false
		}
		g := group{
			Title:       module.Title,
			Description: module.Description,
		}
		if g.Title == "" {
			g.Title = fmt.Sprintf("Module %d", i+1)
		}
		for _, id := range module.ItemIDs {
			item, exists := byID[id]
			if !exists || seen[id] {
				return nil, false
			}
			seen[id] = true
			g.Items = append(g.Items, item)
		}
		groups = append(groups, g)
	}

	var leftover []playlist.Item
	for _, item := range items {
		if !seen[item.ID] {
			leftover = append(leftover, item)
		}
	}
	if len(leftover) > 0 {
		groups = append(groups, group{
			Title:       "Additional Topics",
			Description: "Remaining videos not covered by the suggested path",
			Items:       leftover,
		})
	}
	return groups, true
}

// evenChunks splits items in source order into a bounded module count. The
// target count is one module per three items, clamped to [minModules,
// maxModules] and never above the item count.
func evenChunks(items []playlist.Item, minModules, maxModules int) []group {
	count := targetModuleCount(len(items), minModules, maxModules)
	groups := make([]group, 0, count)
	base := len(items) / count
	extra := len(items) % count

	offset := 0
	for i := 0; i < count; i++ {
		size := base
		if i < extra {
			size++
		}
		chunk := items[offset : offset+size]
		offset += size
		groups = append(groups, group{
			Title:       fmt.Sprintf("Module %d", i+1),
			Description: fmt.Sprintf("Videos %d to %d", chunk[0].Position+1, chunk[len(chunk)-1].Position+1),
			Items:       chunk,
		})
	}
	return groups
}

func targetModuleCount(itemCount, minModules, maxModules int) int {
	if minModules <= 0 {
		minModules = 3
	}
	if maxModules < minModules {
		maxModules = minModules
	}
	count := itemCount / 3
	if count < minModules {
		count = minModules
	}
	if count > maxModules {
		count = maxModules
	}
	if count > itemCount {
		count = itemCount
	}
	if count < 1 {
		count = 1
	}
	return count
}
