// Package graph builds the directed page-linkage graph and analyzes
// reachability on it.
//
// The graph is derived once, from a completed linkage map, and is not
// mutated afterwards. Edge direction is source → target ("page links to
// target"), so reachability from the entry page follows the direction a
// visitor would browse in.
//
// Orphan detection is a depth-first walk from a root identifier: nodes
// never discovered by the walk are orphan candidates. A missing root is
// not an error; it simply means every page is unreachable.
package graph
