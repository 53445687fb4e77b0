package normalize

import (
	"slices"
	"testing"
)

// newTestPipeline builds a pipeline with the default example.com patterns.
func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := New(Config{})
	if err != nil {
		t.Fatalf("failed to build pipeline: %v", err)
	}
	return p
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid filter pattern", func(t *testing.T) {
		t.Parallel()
		if _, err := New(Config{FilterPattern: "("}); err == nil {
			t.Error("expected error for invalid filter pattern")
		}
	})

	t.Run("rejects invalid prefix pattern", func(t *testing.T) {
		t.Parallel()
		if _, err := New(Config{PrefixPattern: "["}); err == nil {
			t.Error("expected error for invalid prefix pattern")
		}
	})
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	t.Run("strips prefix from site references", func(t *testing.T) {
		t.Parallel()

		cases := map[string]string{
			"https://www.example.com/hello":      "hello",
			"http://www.example.com/thing":       "thing",
			"http://www.example.com/tag/this":    "tag/this",
			"https://example.com/author/who":     "author/who",
			"https://www.example.com/en/pricing": "pricing",
		}
		for ref, want := range cases {
			got := p.Normalize([]string{ref})
			if len(got) != 1 || got[0] != want {
				t.Errorf("Normalize(%q) = %v, want [%s]", ref, got, want)
			}
		}
	})

	t.Run("discards references to other sites", func(t *testing.T) {
		t.Parallel()

		got := p.Normalize([]string{
			"https://www.chip.de/news",
			"https://example.org/not-quite",
		})
		if len(got) != 0 {
			t.Errorf("expected all foreign references dropped, got %v", got)
		}
	})

	t.Run("discards mailto leftovers via colon check", func(t *testing.T) {
		t.Parallel()

		got := p.Normalize([]string{"mailto:someone@example.com"})
		if len(got) != 0 {
			t.Errorf("expected mailto reference dropped, got %v", got)
		}
	})

	t.Run("trims exactly one trailing slash", func(t *testing.T) {
		t.Parallel()

		got := p.Normalize([]string{
			"https://www.example.com/test/",
			"https://www.example.com/t/e/s/t/",
		})
		want := []string{"test", "t/e/s/t"}
		if !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("discards bare site root", func(t *testing.T) {
		t.Parallel()

		got := p.Normalize([]string{"https://www.example.com/"})
		if len(got) != 0 {
			t.Errorf("expected root reference to normalize to nothing, got %v", got)
		}
	})

	t.Run("preserves input order with duplicates", func(t *testing.T) {
		t.Parallel()

		got := p.Normalize([]string{
			"https://example.com/a",
			"https://example.com/b",
			"https://example.com/a",
		})
		want := []string{"a", "b", "a"}
		if !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("is idempotent on its own output", func(t *testing.T) {
		t.Parallel()

		// A pipeline whose filter also matches bare identifiers: re-running
		// it must never reintroduce a prefix or drop a valid identifier.
		p, err := New(Config{FilterPattern: `.*`, PrefixPattern: `^https?://example\.com/`})
		if err != nil {
			t.Fatalf("failed to build pipeline: %v", err)
		}

		once := p.Normalize([]string{"https://example.com/tag/this", "https://example.com/about"})
		twice := p.Normalize(once)
		if !slices.Equal(once, twice) {
			t.Errorf("normalization not idempotent: %v != %v", once, twice)
		}
	})

	t.Run("prefix mid-string is not stripped", func(t *testing.T) {
		t.Parallel()

		p, err := New(Config{FilterPattern: `example\.com`, PrefixPattern: `www\.example\.com/`})
		if err != nil {
			t.Fatalf("failed to build pipeline: %v", err)
		}

		// The unanchored pattern occurs mid-string; only a match at the
		// start may be removed.
		got := p.Normalize([]string{"sub/www.example.com/page"})
		want := []string{"sub/www.example.com/page"}
		if !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}
