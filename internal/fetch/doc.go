// Package fetch downloads a fixed set of pages from a live site into a
// local corpus directory so the audit pipeline can run against them
// offline.
package fetch
