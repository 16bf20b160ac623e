package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances in Validate(). This allows callers to use errors.Is()
// for programmatic error handling while still providing human-readable
// messages.
var (
	// ErrNoInput is returned when no input file, demo mode, or feed source
	// is specified.
	ErrNoInput = errors.New("no input specified: provide one or more data files")

	// ErrInvalidGridScale is returned when the grid scale is not positive.
	// A zero or negative scale would collapse every observation into a
	// single bucket.
	ErrInvalidGridScale = errors.New("invalid grid scale: must be positive")

	// ErrInvalidClusterSize is returned when the minimum cluster size is
	// less than 2. A cluster of one cannot indicate density.
	ErrInvalidClusterSize = errors.New("invalid cluster size: must be at least 2")

	// ErrInvalidClusterFlagLimit is returned when the per-bucket flag limit
	// is not positive.
	ErrInvalidClusterFlagLimit = errors.New("invalid cluster flag limit: must be positive")

	// ErrInvalidBatchSize is returned when the batch concurrency is not
	// positive. A batch size of zero would mean no files get processed.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when more than one of --json,
	// --markdown, and --html is specified. Only one output format can be
	// used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json, --markdown, and --html are mutually exclusive")
)
