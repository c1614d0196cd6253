package readerview

import (
	"github.com/mrjoshuak/readerview/internal/readability"
	"github.com/mrjoshuak/readerview/types"
)

// ExtractionOptions configures the article extraction process.
type ExtractionOptions = types.ExtractionOptions

// DefaultOptions returns the default extraction options: a 500 character
// threshold, five top candidates, no element ceiling and a 30 second timeout.
func DefaultOptions() ExtractionOptions {
	return types.DefaultOptions()
}

// Result is the outcome of Parse: an Article or the reason there is none.
type Result = types.Result

// FailureReason tells why a document yielded no article.
type FailureReason = types.FailureReason

// Failure reasons reported in Result.Failure.
const (
	FailureNone      = types.FailureNone
	FailureNoBody    = types.FailureNoBody
	FailureNoContent = types.FailureNoContent
)

// Errors returned by the extractor. They are wrapped; use errors.Is.
var (
	ErrNoDocument    = readability.ErrNoDocument
	ErrDocumentLarge = readability.ErrDocumentLarge
	ErrNoBody        = readability.ErrNoBody
	ErrNoContent     = readability.ErrNoContent
	ErrTimeout       = readability.ErrTimeout
)

// IsTimeoutError reports whether err came from an extraction that ran out of time.
func IsTimeoutError(err error) bool {
	return readability.IsTimeoutError(err)
}

// IsValidationError reports whether err rejected the input document, such as
// a nil document or one over the element ceiling.
func IsValidationError(err error) bool {
	return readability.IsValidationError(err)
}

// BuildInfo contains version and build information for the readerview library.
type BuildInfo = types.BuildInfo

// GetBuildInfo returns the current version information for the readerview library.
func GetBuildInfo() BuildInfo {
	return types.GetBuildInfo()
}

// Version is the current version of the readerview library.
var Version = types.Version

// Name is the name of the readerview library.
var Name = types.Name
