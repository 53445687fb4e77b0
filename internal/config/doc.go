// Package config provides configuration structures and utilities for the
// site auditor. It defines the main configuration options for corpus
// location, link normalization patterns, report generation, and fetching.
package config
