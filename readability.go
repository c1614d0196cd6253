package readerview

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/mrjoshuak/readerview/internal/readability"
)

// Extractor defines the interface for article extraction.
// Every method takes optional per-call options; nil means the options the
// extractor was created with.
type Extractor interface {
	// ExtractFromHTML extracts article content from an HTML string
	ExtractFromHTML(source string, options *ExtractionOptions) (*Article, error)

	// ExtractFromReader extracts article content from an io.Reader,
	// decoding it to UTF-8 first
	ExtractFromReader(r io.Reader, options *ExtractionOptions) (*Article, error)

	// ExtractFromNode extracts article content from a parsed document.
	// The document is modified in place.
	ExtractFromNode(doc *html.Node, options *ExtractionOptions) (*Article, error)

	// Parse is ExtractFromNode without turning a failure reason into an error
	Parse(doc *html.Node, options *ExtractionOptions) (Result, error)
}

// Option represents a function that modifies ExtractionOptions.
// This follows the functional options pattern for configuring the extractor.
type Option func(*ExtractionOptions)

// WithCharThreshold sets the number of characters an extraction pass must
// yield before it is accepted without relaxing the heuristics further.
func WithCharThreshold(n int) Option {
	return func(o *ExtractionOptions) {
		o.CharThreshold = n
	}
}

// WithMaxElemsToParse rejects documents with more elements than n.
// Zero disables the check.
func WithMaxElemsToParse(n int) Option {
	return func(o *ExtractionOptions) {
		o.MaxElemsToParse = n
	}
}

// WithNbTopCandidates sets how many top candidates are compared when looking
// for a shared ancestor.
func WithNbTopCandidates(n int) Option {
	return func(o *ExtractionOptions) {
		o.NbTopCandidates = n
	}
}

// WithKeepClasses keeps every class attribute in the extracted content.
func WithKeepClasses(keep bool) Option {
	return func(o *ExtractionOptions) {
		o.KeepClasses = keep
	}
}

// WithClassesToPreserve names classes kept in the extracted content in
// addition to "page".
func WithClassesToPreserve(classes ...string) Option {
	return func(o *ExtractionOptions) {
		o.ClassesToPreserve = append(o.ClassesToPreserve, classes...)
	}
}

// WithDisableJSONLD skips JSON-LD metadata.
func WithDisableJSONLD(disable bool) Option {
	return func(o *ExtractionOptions) {
		o.DisableJSONLD = disable
	}
}

// WithAllowedVideoRegex keeps embeds whose attributes match re.
func WithAllowedVideoRegex(re *regexp.Regexp) Option {
	return func(o *ExtractionOptions) {
		o.AllowedVideoRegex = re
	}
}

// WithSerializer replaces the default inner-HTML rendering of the article.
func WithSerializer(serialize func(*html.Node) string) Option {
	return func(o *ExtractionOptions) {
		o.Serializer = serialize
	}
}

// WithSanitizer runs the serialized content through policy.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(o *ExtractionOptions) {
		o.Sanitizer = policy
	}
}

// WithPageURL sets the URL the document was loaded from. Relative links and
// image sources in the article are resolved against it.
func WithPageURL(pageURL string) Option {
	return func(o *ExtractionOptions) {
		o.PageURL = pageURL
	}
}

// WithLogger sets the logger extraction events are written to.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *ExtractionOptions) {
		o.Logger = &logger
	}
}

// WithDebug logs extraction events to stderr when no logger is set.
func WithDebug(enable bool) Option {
	return func(o *ExtractionOptions) {
		o.Debug = enable
	}
}

// WithTimeout sets the timeout duration for extraction.
// This prevents extraction from hanging indefinitely on problematic documents.
// Zero or negative disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(o *ExtractionOptions) {
		o.Timeout = timeout
	}
}

// articleExtractor is the concrete implementation of the Extractor interface.
type articleExtractor struct {
	options ExtractionOptions
}

// ExtractFromHTML extracts article content from an HTML string.
// It returns an Article containing the extracted content and metadata.
func (e *articleExtractor) ExtractFromHTML(source string, options *ExtractionOptions) (*Article, error) {
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return nil, readability.WrapParseError(err, "ExtractFromHTML", "failed to parse HTML document")
	}
	return e.ExtractFromNode(doc, options)
}

// ExtractFromReader extracts article content from an io.Reader.
// The encoding is sniffed from a BOM or <meta charset> and the content decoded
// to UTF-8 before parsing.
func (e *articleExtractor) ExtractFromReader(r io.Reader, options *ExtractionOptions) (*Article, error) {
	utf8Reader, err := charset.NewReader(r, "")
	if err != nil {
		return nil, readability.WrapParseError(err, "ExtractFromReader", "failed to detect encoding")
	}

	doc, err := html.Parse(utf8Reader)
	if err != nil {
		return nil, readability.WrapParseError(err, "ExtractFromReader", "failed to parse HTML document")
	}
	return e.ExtractFromNode(doc, options)
}

// ExtractFromNode extracts article content from doc. A document without a
// body or without extractable text is reported as ErrNoBody or ErrNoContent.
func (e *articleExtractor) ExtractFromNode(doc *html.Node, options *ExtractionOptions) (*Article, error) {
	result, err := e.Parse(doc, options)
	if err != nil {
		return nil, err
	}

	switch result.Failure {
	case FailureNoBody:
		return nil, readability.WrapExtractionError(ErrNoBody, "ExtractFromNode", "no article")
	case FailureNoContent:
		return nil, readability.WrapExtractionError(ErrNoContent, "ExtractFromNode", "no article")
	}
	return result.Article, nil
}

// Parse runs the extraction over doc within the configured timeout.
// On timeout the extraction keeps running in the background and may still
// modify doc.
func (e *articleExtractor) Parse(doc *html.Node, options *ExtractionOptions) (Result, error) {
	if options == nil {
		options = &e.options
	}
	opts := *options

	if opts.Timeout <= 0 {
		return readability.ExtractFromNode(doc, opts)
	}

	// Buffered so the worker can finish after a timeout
	resultCh := make(chan struct {
		result Result
		err    error
	}, 1)

	// Start the extraction in a goroutine
	go func() {
		result, err := readability.ExtractFromNode(doc, opts)
		resultCh <- struct {
			result Result
			err    error
		}{result, err}
	}()

	// Wait for the result or timeout
	select {
	case r := <-resultCh:
		return r.result, r.err
	case <-time.After(opts.Timeout):
		return Result{}, readability.WrapTimeoutError(ErrTimeout, "Parse",
			fmt.Sprintf("extraction timed out after %v", opts.Timeout))
	}
}

// New creates a new Extractor instance with the provided options.
// It returns an implementation of the Extractor interface that can be used
// to extract article content from HTML.
//
// Example:
//
//	extractor := readerview.New(
//	    readerview.WithCharThreshold(300),
//	    readerview.WithTimeout(time.Second*60),
//	)
func New(opts ...Option) Extractor {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &articleExtractor{
		options: options,
	}
}
