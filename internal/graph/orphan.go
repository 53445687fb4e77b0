package graph

import (
	"slices"

	"github.com/barafael/page-graph/internal/model"
)

// Orphans returns the nodes not reachable from root via directed edges,
// sorted lexically.
//
// The walk is a depth-first traversal with an explicit stack: every node
// starts as an orphan candidate and is cleared on first discovery. If root
// is absent from the graph the walk visits nothing and every node is an
// orphan candidate; that is a valid outcome, not an error.
func (g *PageGraph) Orphans(root model.PageID) []model.PageID {
	candidates := make(map[model.PageID]struct{}, len(g.nodes))
	for id := range g.nodes {
		candidates[id] = struct{}{}
	}

	if g.HasNode(root) {
		visited := make(map[model.PageID]bool, len(g.nodes))
		stack := []model.PageID{root}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[id] {
				continue
			}
			visited[id] = true
			delete(candidates, id)

			// Push in reverse so the first-seen target is explored first.
			targets := g.adj[id]
			for i := len(targets) - 1; i >= 0; i-- {
				if !visited[targets[i]] {
					stack = append(stack, targets[i])
				}
			}
		}
	}

	orphans := make([]model.PageID, 0, len(candidates))
	for id := range candidates {
		orphans = append(orphans, id)
	}
	slices.Sort(orphans)
	return orphans
}

// Reachable reports whether target can be reached from root.
func (g *PageGraph) Reachable(root, target model.PageID) bool {
	if !g.HasNode(root) || !g.HasNode(target) {
		return false
	}
	for _, orphan := range g.Orphans(root) {
		if orphan == target {
			return false
		}
	}
	return true
}
