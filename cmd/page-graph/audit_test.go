package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/barafael/page-graph/internal/database"
)

// writeTestCorpus lays out a small site in a temp directory.
// File names are the page identifiers: "index" links to "about", which
// links back, and "drafts" is unreachable.
func writeTestCorpus(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"index": `<html><head><title>Home</title></head><body>
<a href="https://example.com/about">About</a>
</body></html>`,
		"about": `<html><head><title>About</title></head><body>
<a href="https://example.com/index">Home</a>
</body></html>`,
		"drafts": `<html><head><title>Drafts</title></head><body>
<p>Nothing links here.</p>
</body></html>`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatalf("failed to write corpus file %s: %v", name, err)
		}
	}
	return dir
}

// TestNewAuditCmd tests the audit command creation.
func TestNewAuditCmd(t *testing.T) {
	t.Parallel()

	cmd := NewAuditCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "audit <directory>" {
			t.Errorf("expected use 'audit <directory>', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()

		flagsWithShort := map[string]string{
			"site":     "s",
			"root":     "r",
			"config":   "c",
			"json":     "j",
			"markdown": "m",
			"output":   "o",
		}
		for flag, shorthand := range flagsWithShort {
			f := cmd.Flags().Lookup(flag)
			if f == nil {
				t.Errorf("expected flag %q to exist", flag)
				continue
			}
			if f.Shorthand != shorthand {
				t.Errorf("flag %q: expected shorthand %q, got %q", flag, shorthand, f.Shorthand)
			}
		}

		for _, flag := range []string{"filter", "prefix", "jobs", "dot", "svg", "no-save", "db-dir"} {
			if cmd.Flags().Lookup(flag) == nil {
				t.Errorf("expected flag %q to exist", flag)
			}
		}
	})
}

// TestBuildAuditConfig tests configuration assembly from flags and files.
func TestBuildAuditConfig(t *testing.T) {
	t.Parallel()

	t.Run("site defaults to directory name", func(t *testing.T) {
		t.Parallel()

		cmd := NewAuditCmd()
		if err := cmd.ParseFlags([]string{}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildAuditConfig(cmd, []string{"/tmp/example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Directory != "/tmp/example.com" {
			t.Errorf("expected directory '/tmp/example.com', got %q", cfg.Directory)
		}
		if cfg.Site != "example.com" {
			t.Errorf("expected site 'example.com', got %q", cfg.Site)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewAuditCmd()
		args := []string{
			"--site", "mysite",
			"--filter", `mysite\.org`,
			"--prefix", `^https://mysite\.org/`,
			"--root", "home",
			"--jobs", "2",
			"--no-save",
		}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildAuditConfig(cmd, []string{"./pages"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Site != "mysite" {
			t.Errorf("expected site 'mysite', got %q", cfg.Site)
		}
		if cfg.FilterPattern != `mysite\.org` {
			t.Errorf("unexpected filter pattern: %q", cfg.FilterPattern)
		}
		if cfg.PrefixPattern != `^https://mysite\.org/` {
			t.Errorf("unexpected prefix pattern: %q", cfg.PrefixPattern)
		}
		if cfg.RootID != "home" {
			t.Errorf("expected root 'home', got %q", cfg.RootID)
		}
		if cfg.Jobs != 2 {
			t.Errorf("expected 2 jobs, got %d", cfg.Jobs)
		}
		if cfg.SaveHistory {
			t.Error("expected SaveHistory to be false with --no-save")
		}
	})

	t.Run("config file values apply and flags win", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, ".pagegraph")
		configContent := `sites:
  mysite:
    filter: mysite\.org
    root: home
    directory: ./stored-pages
`
		if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cmd := NewAuditCmd()
		args := []string{
			"--config", configPath,
			"--site", "mysite",
			"--root", "start",
		}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildAuditConfig(cmd, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// filter comes from the config file
		if cfg.FilterPattern != `mysite\.org` {
			t.Errorf("expected filter from config file, got %q", cfg.FilterPattern)
		}
		// root was explicitly set on the command line and wins
		if cfg.RootID != "start" {
			t.Errorf("expected root 'start' from flag, got %q", cfg.RootID)
		}
		// directory comes from the config file when no argument is given
		if cfg.Directory != "./stored-pages" {
			t.Errorf("expected directory from config file, got %q", cfg.Directory)
		}
	})

	t.Run("missing explicit config file errors", func(t *testing.T) {
		t.Parallel()

		cmd := NewAuditCmd()
		if err := cmd.ParseFlags([]string{"--config", "/nonexistent/.pagegraph"}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		_, err := buildAuditConfig(cmd, []string{"./pages"})
		if err == nil {
			t.Error("expected error for missing config file")
		}
	})
}

// TestRunAuditCmd tests the audit command end to end on a temp corpus.
func TestRunAuditCmd(t *testing.T) {
	t.Parallel()

	t.Run("text report to file with DOT output", func(t *testing.T) {
		t.Parallel()

		corpusDir := writeTestCorpus(t)
		outDir := t.TempDir()
		reportPath := filepath.Join(outDir, "report.txt")
		dotPath := filepath.Join(outDir, "graph.dot")

		cmd := NewRootCmd()
		var stdout, stderr bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{
			"audit", corpusDir,
			"--no-save",
			"--output", reportPath,
			"--dot", dotPath,
		})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		text := string(content)
		if !strings.Contains(text, "PAGE GRAPH AUDIT REPORT") {
			t.Error("expected report banner in output")
		}
		if !strings.Contains(text, "drafts") {
			t.Error("expected orphan 'drafts' in report")
		}
		if strings.Contains(text, "about") && strings.Contains(text, "ORPHANED PAGES") {
			section := text[strings.Index(text, "ORPHANED PAGES"):]
			if strings.Contains(section, "* about") {
				t.Error("did not expect 'about' to be reported as orphan")
			}
		}

		dot, err := os.ReadFile(dotPath)
		if err != nil {
			t.Fatalf("failed to read DOT file: %v", err)
		}
		dotText := string(dot)
		if !strings.Contains(dotText, "digraph") {
			t.Error("expected DOT output to contain 'digraph'")
		}
		if !strings.Contains(dotText, "index") {
			t.Error("expected DOT output to contain the index node")
		}
	})

	t.Run("json report to stdout", func(t *testing.T) {
		t.Parallel()

		corpusDir := writeTestCorpus(t)

		cmd := NewRootCmd()
		var stdout, stderr bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{"audit", corpusDir, "--no-save", "--json"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var parsed struct {
			Version string `json:"version"`
			Report  struct {
				Site      string   `json:"site"`
				NodeCount int      `json:"node_count"`
				Orphans   []string `json:"orphans"`
			} `json:"report"`
		}
		if err := json.Unmarshal(stdout.Bytes(), &parsed); err != nil {
			t.Fatalf("failed to parse JSON output: %v", err)
		}
		if parsed.Version == "" {
			t.Error("expected version in JSON output")
		}
		if parsed.Report.NodeCount != 3 {
			t.Errorf("expected 3 nodes, got %d", parsed.Report.NodeCount)
		}
		if len(parsed.Report.Orphans) != 1 || parsed.Report.Orphans[0] != "drafts" {
			t.Errorf("expected orphans [drafts], got %v", parsed.Report.Orphans)
		}
	})

	t.Run("saves run summary to database", func(t *testing.T) {
		t.Parallel()

		corpusDir := writeTestCorpus(t)
		dbDir := t.TempDir()

		cmd := NewRootCmd()
		var stdout, stderr bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{
			"audit", corpusDir,
			"--site", "test.example",
			"--db-dir", dbDir,
		})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		db, err := database.Open(dbDir, database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		runs, err := db.ListRuns(context.Background(), "test.example")
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 1 {
			t.Fatalf("expected 1 stored run, got %d", len(runs))
		}
		if runs[0].PageCount != 3 {
			t.Errorf("expected page count 3, got %d", runs[0].PageCount)
		}
		if len(runs[0].Orphans) != 1 || runs[0].Orphans[0] != "drafts" {
			t.Errorf("expected orphans [drafts], got %v", runs[0].Orphans)
		}
	})

	t.Run("missing directory fails", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		var stdout, stderr bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{"audit", "/nonexistent/corpus", "--no-save"})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for missing corpus directory")
		}
	})

	t.Run("conflicting report formats fail", func(t *testing.T) {
		t.Parallel()

		corpusDir := writeTestCorpus(t)

		cmd := NewRootCmd()
		var stdout, stderr bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{"audit", corpusDir, "--no-save", "--json", "--markdown"})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error for conflicting formats")
		}
		if !strings.Contains(err.Error(), "configuration error") {
			t.Errorf("expected configuration error, got %v", err)
		}
	})
}
