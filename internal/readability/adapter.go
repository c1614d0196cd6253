package readability

import (
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/readerview/types"
)

// OptionsFrom maps public extraction options onto parser options. A negative
// CharThreshold and a non-positive NbTopCandidates fall back to the defaults;
// a zero CharThreshold accepts the first pass.
func OptionsFrom(options types.ExtractionOptions) Options {
	opts := DefaultOptions()
	if options.CharThreshold >= 0 {
		opts.CharThreshold = options.CharThreshold
	}
	if options.MaxElemsToParse > 0 {
		opts.MaxElemsToParse = options.MaxElemsToParse
	}
	if options.NbTopCandidates > 0 {
		opts.NbTopCandidates = options.NbTopCandidates
	}
	opts.KeepClasses = options.KeepClasses
	opts.ClassesToPreserve = options.ClassesToPreserve
	opts.DisableJSONLD = options.DisableJSONLD
	opts.AllowedVideoRegex = options.AllowedVideoRegex
	if options.Serializer != nil {
		opts.Serializer = options.Serializer
	}
	opts.PageURL = options.PageURL

	switch {
	case options.Logger != nil:
		opts.Logger = options.Logger
	case options.Debug:
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Str("component", "readability").Logger()
		opts.Logger = &logger
	}
	return opts
}

// ExtractFromNode runs the parser over doc and applies the sanitizer, if any,
// to the serialized content.
func ExtractFromNode(doc *html.Node, options types.ExtractionOptions) (types.Result, error) {
	opts := OptionsFrom(options)
	result, err := NewFromNode(doc, &opts).Parse()
	if err != nil {
		return result, WrapExtractionError(err, "ExtractFromNode", "failed to extract article")
	}
	if result.Article != nil && options.Sanitizer != nil {
		result.Article.Content = options.Sanitizer.Sanitize(result.Article.Content)
	}
	return result, nil
}
