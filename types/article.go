// Package types provides the core data structures for the readerview library.
package types

import (
	"regexp"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// Article represents the extracted content and metadata from a webpage.
// Content is the serialized article container; TextContent is its plain text
// and Length the number of characters in it.
type Article struct {
	Title         string    `json:"title"`
	Byline        string    `json:"byline"`
	Dir           string    `json:"dir,omitempty"`
	Lang          string    `json:"lang,omitempty"`
	Content       string    `json:"content"`
	TextContent   string    `json:"text_content"`
	Length        int       `json:"length"`
	Excerpt       string    `json:"excerpt"`
	SiteName      string    `json:"site_name"`
	PublishedTime string    `json:"published_time,omitempty"`
	Date          time.Time `json:"date,omitzero"`
}

// Metadata is what the document says about itself, before content extraction.
type Metadata struct {
	Title         string `json:"title"`
	Byline        string `json:"byline"`
	Excerpt       string `json:"excerpt"`
	SiteName      string `json:"site_name"`
	PublishedTime string `json:"published_time"`
}

// FailureReason tells why a document yielded no article.
type FailureReason int

const (
	FailureNone      FailureReason = iota // An article was produced
	FailureNoBody                         // The document has no <body>
	FailureNoContent                      // Every pass came up empty
)

func (f FailureReason) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureNoBody:
		return "no body"
	case FailureNoContent:
		return "no content"
	default:
		return "unknown"
	}
}

// Result is the outcome of one extraction: an Article, or the reason there is none.
type Result struct {
	Article *Article
	Failure FailureReason
}

// OK reports whether the result carries an article.
func (r Result) OK() bool {
	return r.Article != nil && r.Failure == FailureNone
}

// ExtractionOptions configures the article extraction process.
type ExtractionOptions struct {
	CharThreshold     int                     // Minimum characters an accepted pass must yield, negative for the default
	MaxElemsToParse   int                     // Element ceiling, 0 for none
	NbTopCandidates   int                     // Number of top candidates compared for a common ancestor
	KeepClasses       bool                    // Keep class attributes in the output
	ClassesToPreserve []string                // Classes kept in addition to "page"
	DisableJSONLD     bool                    // Skip JSON-LD metadata
	AllowedVideoRegex *regexp.Regexp          // Embeds kept by cleaning, nil for the built-in list
	Serializer        func(*html.Node) string // Renders the article container, inner HTML by default
	Sanitizer         *bluemonday.Policy      // Applied to the serialized content when set
	PageURL           string                  // URL the document was loaded from
	Logger            *zerolog.Logger         // Nil disables logging
	Debug             bool                    // Log at debug level when no Logger is given
	Timeout           time.Duration           // Timeout for extraction process
}

// DefaultOptions returns the default extraction options.
// By default 500 characters are required, five candidates are compared,
// there is no element ceiling and extraction times out after 30 seconds.
func DefaultOptions() ExtractionOptions {
	return ExtractionOptions{
		CharThreshold:   500,
		MaxElemsToParse: 0,
		NbTopCandidates: 5,
		Timeout:         time.Second * 30,
	}
}
