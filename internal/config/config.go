package config

import (
	"path/filepath"
	"regexp"
	"runtime"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultRootID is the page every audit starts reachability from.
	// Static sites conventionally name their entry page "index".
	DefaultRootID = "index"

	// DefaultFilterPattern keeps only links that mention the audited site.
	// Sites override this via the config file or --filter.
	DefaultFilterPattern = `example\.com`

	// DefaultPrefixPattern is stripped from the front of matching links to
	// reduce them to bare page identifiers. The optional language segments
	// cover the common bilingual site layout.
	DefaultPrefixPattern = `^https?://(www\.)?example\.com/(en/|nl/)?`

	// DefaultTimeout is the connection timeout for each HTTP request when
	// fetching pages. Static pages are small; 30 seconds is generous.
	DefaultTimeout = 30 * time.Second

	// DefaultFetchDelay is the delay between requests when downloading a
	// corpus. This is a politeness setting to avoid overwhelming servers.
	DefaultFetchDelay = 500 * time.Millisecond

	// DefaultUserAgent identifies the auditor in HTTP requests.
	// A descriptive User-Agent lets operators identify audit traffic.
	DefaultUserAgent = "page-graph/1.0 (+https://github.com/barafael/page-graph)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 10MB is sufficient for any sane HTML page while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// AppName is the application name used for XDG directory paths.
	AppName = "page-graph"
)

// Config holds all configuration options for an audit run.
// This struct is designed to be populated from CLI flags and the config
// file and passed through the application via dependency injection rather
// than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., AuditConfig, FetchConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// Directory is the corpus directory holding one file per page.
	// This is the primary input of every audit.
	Directory string

	// Site names the audited site. It keys run history in the database
	// and selects a site section from the config file.
	Site string

	// FilterPattern is the regular expression a raw link must match to be
	// considered internal to the site. Non-matching links are discarded.
	FilterPattern string

	// PrefixPattern is the regular expression stripped from the front of a
	// link to reduce it to a page identifier. Only a match anchored at the
	// start of the link is stripped.
	PrefixPattern string

	// RootID is the page identifier reachability starts from.
	RootID string

	// Jobs is the number of pages whose links are extracted concurrently.
	// Zero means one worker per CPU.
	Jobs int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .pagegraph in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds site-specific configurations loaded from the config file.
	// This is populated by LoadConfigFile and consulted before each audit.
	SiteConfigs *File

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of human-readable
	// format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// DOTFile is the output file path for the graph in DOT form.
	// When empty, the DOT text is written to stdout.
	DOTFile string

	// SVGFile is the output file path for a rendered SVG of the graph.
	// When empty, no SVG is rendered.
	SVGFile string

	// DBDir is the directory path for storing the SQLite database.
	// Defaults to the XDG data directory (~/.local/share/page-graph on Linux).
	DBDir string

	// SaveHistory indicates whether to save the run summary to the database
	// for later comparison. Only counts and the orphan list are stored.
	SaveHistory bool

	// FetchBaseURL is the site URL downloaded pages are fetched under.
	// Used by the fetch command only.
	FetchBaseURL string

	// FetchDelay is the delay between HTTP requests when downloading a
	// corpus. Lower values may cause rate limiting.
	FetchDelay time.Duration

	// Timeout is the connection timeout for each HTTP request.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated. Set to 0 for the default.
	MaxBodySize int64
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., patterns, timeout).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		FilterPattern: DefaultFilterPattern,
		PrefixPattern: DefaultPrefixPattern,
		RootID:        DefaultRootID,
		Jobs:          runtime.NumCPU(),
		Timeout:       DefaultTimeout,
		FetchDelay:    DefaultFetchDelay,
		UserAgent:     DefaultUserAgent,
		MaxBodySize:   DefaultMaxBodySize,
		DBDir:         XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for the auditor.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/page-graph
// On macOS: ~/Library/Application Support/page-graph
// On Windows: %LOCALAPPDATA%\page-graph
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the auditor.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/page-graph
// On macOS: ~/Library/Application Support/page-graph
// On Windows: %APPDATA%\page-graph
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for the auditor.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.cache/page-graph
// On macOS: ~/Library/Caches/page-graph
// On Windows: %LOCALAPPDATA%\page-graph\cache
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any audit begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// Every audit needs a corpus directory
	if c.Directory == "" {
		return ErrNoDirectory
	}

	// The root identifier must not be empty; reachability needs a start
	if c.RootID == "" {
		return ErrNoRoot
	}

	// Both patterns must be valid regular expressions
	if _, err := regexp.Compile(c.FilterPattern); err != nil {
		return ErrInvalidFilterPattern
	}
	if _, err := regexp.Compile(c.PrefixPattern); err != nil {
		return ErrInvalidPrefixPattern
	}

	// Jobs must be positive; zero workers would mean no extraction
	if c.Jobs <= 0 {
		return ErrInvalidJobs
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// FetchDelay must be non-negative
	if c.FetchDelay < 0 {
		return ErrInvalidFetchDelay
	}

	// MaxBodySize must be non-negative; 0 selects the default
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
