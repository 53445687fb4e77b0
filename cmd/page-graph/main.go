// Package main provides the entry point for the page-graph CLI.
//
// page-graph audits the link structure of a static site. It reads a
// directory of page files, extracts and normalizes their links, builds a
// directed page graph, and reports pages unreachable from the root page.
//
// Usage:
//
//	page-graph audit <directory>
//	page-graph audit --site example.com --dot site.dot <directory>
//
// See --help for all available options.
package main

// main is the entry point for page-graph.
func main() {
	Execute()
}
