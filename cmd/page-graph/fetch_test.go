package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestNewFetchCmd tests the fetch command creation.
func TestNewFetchCmd(t *testing.T) {
	t.Parallel()

	cmd := NewFetchCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "fetch <page>..." {
			t.Errorf("expected use 'fetch <page>...', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()

		flagsWithShort := map[string]string{
			"base-url": "u",
			"dir":      "d",
			"site":     "s",
			"config":   "c",
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

		for _, flag := range []string{"delay", "user-agent", "max-body-size", "timeout"} {
			if cmd.Flags().Lookup(flag) == nil {
				t.Errorf("expected flag %q to exist", flag)
			}
		}
	})
}

// TestRunFetchCmd tests the fetch command against a local test server.
func TestRunFetchCmd(t *testing.T) {
	t.Parallel()

	t.Run("downloads pages to directory", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/index":
				_, _ = w.Write([]byte("<html><title>Home</title></html>"))
			case "/about":
				_, _ = w.Write([]byte("<html><title>About</title></html>"))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		dir := t.TempDir()

		cmd := NewRootCmd()
		var stdout, stderr bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{
			"fetch",
			"--base-url", server.URL,
			"--dir", dir,
			"--delay", "0s",
			"index", "about",
		})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := stdout.String()
		if !strings.Contains(output, "[+] index") {
			t.Errorf("expected index success line, got %q", output)
		}
		if !strings.Contains(output, "Fetched 2/2 pages") {
			t.Errorf("expected summary line, got %q", output)
		}

		content, err := os.ReadFile(filepath.Join(dir, "index"))
		if err != nil {
			t.Fatalf("failed to read downloaded page: %v", err)
		}
		if !strings.Contains(string(content), "Home") {
			t.Error("expected downloaded content")
		}
	})

	t.Run("reports failed pages", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/index" {
				_, _ = w.Write([]byte("ok"))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		cmd := NewRootCmd()
		var stdout, stderr bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{
			"fetch",
			"--base-url", server.URL,
			"--dir", t.TempDir(),
			"--delay", "0s",
			"index", "missing",
		})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error when a page fails")
		}
		if !strings.Contains(err.Error(), "1 page(s) failed") {
			t.Errorf("expected failure count in error, got %v", err)
		}

		output := stdout.String()
		if !strings.Contains(output, "[!] missing") {
			t.Errorf("expected failure line for 'missing', got %q", output)
		}
		if !strings.Contains(output, "Fetched 1/2 pages") {
			t.Errorf("expected summary line, got %q", output)
		}
	})

	t.Run("requires base URL", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		var stdout, stderr bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{"fetch", "--dir", t.TempDir(), "index"})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error without base URL")
		}
		if !strings.Contains(err.Error(), "no base URL") {
			t.Errorf("expected 'no base URL' error, got %v", err)
		}
	})

	t.Run("requires directory", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		var stdout, stderr bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{"fetch", "--base-url", "https://example.com", "index"})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error without directory")
		}
		if !strings.Contains(err.Error(), "no directory") {
			t.Errorf("expected 'no directory' error, got %v", err)
		}
	})
}
