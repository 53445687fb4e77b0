// Package render serializes the page graph to visual formats.
//
// The DOT serializer consumes the finished graph only: it enumerates nodes
// and edges in sorted order and never feeds anything back into the
// analysis. SVG rendering goes through the embedded Graphviz engine from
// goccy/go-graphviz, so no system graphviz installation is needed.
package render
