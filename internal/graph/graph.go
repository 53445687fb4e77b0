package graph

import (
	"slices"

	"github.com/barafael/page-graph/internal/model"
)

// PageGraph is a directed graph of inter-page linkage. Nodes are page
// identifiers; an edge source → target means "source links to target".
//
// Design decision: Nodes and edges are deduplicated at insertion because
// the linkage map legitimately contains duplicate references (a page can
// link to the same target twice) but reachability must treat repeated
// edges as one. Adjacency preserves first-seen order so per-node traversal
// follows extraction order.
type PageGraph struct {
	// nodes is the set of all page identifiers.
	nodes map[model.PageID]struct{}

	// adj maps each node to its distinct outgoing targets in first-seen
	// order. Nodes without outgoing edges have no entry.
	adj map[model.PageID][]model.PageID

	// edges tracks which (from, to) pairs already exist.
	edges map[edgeKey]struct{}

	// edgeCount caches the number of distinct edges.
	edgeCount int
}

// edgeKey identifies a directed edge for deduplication.
type edgeKey struct {
	from, to model.PageID
}

// Edge is a directed link between two pages.
type Edge struct {
	From model.PageID `json:"from"`
	To   model.PageID `json:"to"`
}

// New creates an empty PageGraph.
func New() *PageGraph {
	return &PageGraph{
		nodes: make(map[model.PageID]struct{}),
		adj:   make(map[model.PageID][]model.PageID),
		edges: make(map[edgeKey]struct{}),
	}
}

// FromLinkage builds the graph for a completed linkage map. Every key and
// every referenced target becomes a node; dangling targets (no matching
// key) end up as nodes with zero outgoing edges. The operation cannot fail.
func FromLinkage(linkage model.LinkageMap) *PageGraph {
	g := New()
	for page, targets := range linkage {
		g.AddNode(page)
		for _, target := range targets {
			g.AddNode(target)
			g.AddEdge(page, target)
		}
	}
	return g
}

// AddNode inserts a node if absent. Re-adding an existing node is a no-op.
func (g *PageGraph) AddNode(id model.PageID) {
	g.nodes[id] = struct{}{}
}

// AddEdge inserts a directed edge from → to, creating missing endpoint
// nodes. Adding the same edge twice is a no-op.
func (g *PageGraph) AddEdge(from, to model.PageID) {
	g.AddNode(from)
	g.AddNode(to)

	key := edgeKey{from: from, to: to}
	if _, ok := g.edges[key]; ok {
		return
	}
	g.edges[key] = struct{}{}
	g.adj[from] = append(g.adj[from], to)
	g.edgeCount++
}

// HasNode reports whether the identifier is a node of the graph.
func (g *PageGraph) HasNode(id model.PageID) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether the directed edge from → to exists.
func (g *PageGraph) HasEdge(from, to model.PageID) bool {
	_, ok := g.edges[edgeKey{from: from, to: to}]
	return ok
}

// NodeCount returns the number of distinct nodes.
func (g *PageGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct directed edges.
func (g *PageGraph) EdgeCount() int {
	return g.edgeCount
}

// Nodes returns all node identifiers sorted lexically.
// Sorting makes serializer output deterministic across runs despite map
// iteration order.
func (g *PageGraph) Nodes() []model.PageID {
	nodes := make([]model.PageID, 0, len(g.nodes))
	for id := range g.nodes {
		nodes = append(nodes, id)
	}
	slices.Sort(nodes)
	return nodes
}

// Edges returns all edges sorted by (from, to).
func (g *PageGraph) Edges() []Edge {
	edges := make([]Edge, 0, g.edgeCount)
	for key := range g.edges {
		edges = append(edges, Edge{From: key.from, To: key.to})
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		if a.From != b.From {
			if a.From < b.From {
				return -1
			}
			return 1
		}
		switch {
		case a.To < b.To:
			return -1
		case a.To > b.To:
			return 1
		default:
			return 0
		}
	})
	return edges
}

// Outgoing returns the distinct targets of a node in first-seen order.
// The returned slice is a copy; mutating it does not affect the graph.
func (g *PageGraph) Outgoing(id model.PageID) []model.PageID {
	targets := g.adj[id]
	if len(targets) == 0 {
		return nil
	}
	return slices.Clone(targets)
}
