package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoDirectory is returned when no corpus directory is specified.
	ErrNoDirectory = errors.New("no corpus directory specified: provide a directory argument or use --dir")

	// ErrNoRoot is returned when the root page identifier is empty.
	// Reachability analysis needs a page to start from.
	ErrNoRoot = errors.New("no root page specified: use --root or set root in the config file")

	// ErrInvalidFilterPattern is returned when the filter pattern does not
	// compile as a regular expression.
	ErrInvalidFilterPattern = errors.New("invalid filter pattern: must be a valid regular expression")

	// ErrInvalidPrefixPattern is returned when the prefix pattern does not
	// compile as a regular expression.
	ErrInvalidPrefixPattern = errors.New("invalid prefix pattern: must be a valid regular expression")

	// ErrInvalidJobs is returned when the extraction worker count is not
	// positive. Zero workers would mean no extraction at all.
	ErrInvalidJobs = errors.New("invalid jobs: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate connection failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidFetchDelay is returned when the fetch delay is negative.
	// A negative delay is invalid; use 0 for no delay between requests.
	ErrInvalidFetchDelay = errors.New("invalid fetch delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// A negative body size is invalid; use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
