package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validConfig returns a config that passes Validate.
func validConfig() *Config {
	c := NewConfig()
	c.Directory = "/tmp/corpus"
	c.Site = "example.com"
	return c
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	if c.RootID != DefaultRootID {
		t.Errorf("expected root %q, got %q", DefaultRootID, c.RootID)
	}
	if c.FilterPattern != DefaultFilterPattern {
		t.Errorf("unexpected filter pattern: %q", c.FilterPattern)
	}
	if c.PrefixPattern != DefaultPrefixPattern {
		t.Errorf("unexpected prefix pattern: %q", c.PrefixPattern)
	}
	if c.Jobs <= 0 {
		t.Errorf("expected positive default jobs, got %d", c.Jobs)
	}
	if c.Timeout != DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultTimeout, c.Timeout)
	}
	if c.DBDir == "" {
		t.Error("expected a default database directory")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "missing directory",
			mutate:  func(c *Config) { c.Directory = "" },
			wantErr: ErrNoDirectory,
		},
		{
			name:    "missing root",
			mutate:  func(c *Config) { c.RootID = "" },
			wantErr: ErrNoRoot,
		},
		{
			name:    "bad filter pattern",
			mutate:  func(c *Config) { c.FilterPattern = "(" },
			wantErr: ErrInvalidFilterPattern,
		},
		{
			name:    "bad prefix pattern",
			mutate:  func(c *Config) { c.PrefixPattern = "[" },
			wantErr: ErrInvalidPrefixPattern,
		},
		{
			name:    "zero jobs",
			mutate:  func(c *Config) { c.Jobs = 0 },
			wantErr: ErrInvalidJobs,
		},
		{
			name: "conflicting report formats",
			mutate: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingReportFormats,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative fetch delay",
			mutate:  func(c *Config) { c.FetchDelay = -time.Second },
			wantErr: ErrInvalidFetchDelay,
		},
		{
			name:    "negative max body size",
			mutate:  func(c *Config) { c.MaxBodySize = -1 },
			wantErr: ErrInvalidMaxBodySize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestXDGDirs(t *testing.T) {
	t.Parallel()

	for name, dir := range map[string]string{
		"data":   XDGDataDir(),
		"config": XDGConfigDir(),
		"cache":  XDGCacheDir(),
	} {
		if dir == "" {
			t.Errorf("%s directory must not be empty", name)
		}
		if filepath.Base(dir) != AppName {
			t.Errorf("%s directory must end in %q, got %q", name, AppName, dir)
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads sites and defaults", func(t *testing.T) {
		t.Parallel()

		content := `
defaults:
  root: index
sites:
  example.com:
    filter: example\.com
    prefix: ^https?://(www\.)?example\.com/
    directory: ./pages
    baseUrl: https://example.com
  docs.example.org:
    filter: docs\.example\.org
    root: home
`
		path := filepath.Join(t.TempDir(), ".pagegraph")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cf.Sites) != 2 {
			t.Fatalf("expected 2 sites, got %d", len(cf.Sites))
		}

		sc := cf.GetSiteConfig("example.com")
		if sc.Filter != `example\.com` {
			t.Errorf("unexpected filter: %q", sc.Filter)
		}
		if sc.Root != "index" {
			t.Errorf("expected root from defaults, got %q", sc.Root)
		}
		if sc.BaseURL != "https://example.com" {
			t.Errorf("unexpected base URL: %q", sc.BaseURL)
		}

		sc = cf.GetSiteConfig("docs.example.org")
		if sc.Root != "home" {
			t.Errorf("expected site root to win over defaults, got %q", sc.Root)
		}

		sc = cf.GetSiteConfig("unknown.example")
		if sc.Root != "index" {
			t.Errorf("expected defaults for unknown site, got %q", sc.Root)
		}
	})

	t.Run("missing file returns sentinel", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".pagegraph")
		if err := os.WriteFile(path, []byte("sites: ["), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	// Not parallel: mutates the working directory.

	t.Run("explicit path wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "conf.yaml")
		if err := os.WriteFile(path, []byte("sites:\n"), 0600); err != nil {
			t.Fatal(err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("missing explicit path returns empty", func(t *testing.T) {
		if got := FindConfigFile("/nonexistent/conf"); got != "" {
			t.Errorf("expected empty path, got %q", got)
		}
	})

	t.Run("found in current directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte("sites:\n"), 0600); err != nil {
			t.Fatal(err)
		}
		t.Chdir(dir)

		got := FindConfigFile("")
		if filepath.Base(got) != DefaultConfigFile {
			t.Errorf("expected %s in cwd, got %q", DefaultConfigFile, got)
		}
	})
}

func TestConfigApply(t *testing.T) {
	t.Parallel()

	c := validConfig()
	c.Apply(SiteConfig{
		Filter:    `mysite\.net`,
		Root:      "home",
		Directory: "/srv/pages",
		BaseURL:   "https://mysite.net",
	})

	if c.FilterPattern != `mysite\.net` {
		t.Errorf("expected filter applied, got %q", c.FilterPattern)
	}
	if c.PrefixPattern != DefaultPrefixPattern {
		t.Errorf("empty site field must not clobber config, got %q", c.PrefixPattern)
	}
	if c.RootID != "home" || c.Directory != "/srv/pages" || c.FetchBaseURL != "https://mysite.net" {
		t.Errorf("unexpected applied config: root=%q dir=%q base=%q", c.RootID, c.Directory, c.FetchBaseURL)
	}
}
