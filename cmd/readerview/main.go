// Package main provides the command-line interface for readerview.
// It extracts readable content from HTML files or standard input
// and writes the results as JSON, HTML, or plain text.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mrjoshuak/readerview"
	"github.com/mrjoshuak/readerview/internal/config"
)

// OutputFormat represents the supported output formats for the extracted content.
// The available formats are JSON, HTML, and plain text.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatHTML OutputFormat = "html"
	FormatText OutputFormat = "text"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run parses args, processes every input and returns the exit code.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet("readerview", flag.ContinueOnError)

	// Define command-line flags
	configPath := fs.String("config", "", "Configuration file (YAML or JSON)")
	outputDir := fs.String("output-dir", "", "Output directory for batch processing (default: stdout)")
	outputFile := fs.String("output", "", "Output file path for a single input (default: stdout)")
	formatStr := fs.String("format", "json", "Output format: json, html, or text")
	pageURL := fs.String("url", "", "URL the input was loaded from, used to resolve relative links")
	workers := fs.Int("workers", 4, "Number of inputs processed concurrently")
	sanitize := fs.Bool("sanitize", false, "Sanitize the article HTML with a user-content policy")
	compact := fs.Bool("compact", false, "Output compact JSON without indentation")
	charThreshold := fs.Int("char-threshold", 500, "Characters an extraction pass must yield to be accepted")
	maxElems := fs.Int("max-elems", 0, "Reject documents with more elements than this (0 = no limit)")
	keepClasses := fs.Bool("keep-classes", false, "Keep class attributes in the article HTML")
	classes := fs.String("classes", "", "Comma-separated classes to keep in the article HTML")
	disableJSONLD := fs.Bool("disable-jsonld", false, "Ignore JSON-LD metadata")
	videoRegex := fs.String("video-regex", "", "Regular expression for extra video embeds to keep")
	timeout := fs.Duration("timeout", 30*time.Second, "Timeout for extraction")
	verbose := fs.Bool("verbose", false, "Log extraction details")
	showVersion := fs.Bool("version", false, "Show version information")

	// Customize usage output
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "readerview - Extract readable content from HTML\n\n")
		fmt.Fprintf(out, "Usage: readerview [options] [file ...]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  readerview -output article.json article.html\n")
		fmt.Fprintf(out, "  readerview -format html -url https://example.com/post article.html\n")
		fmt.Fprintf(out, "  readerview -output-dir ./extracted -workers 8 *.html\n")
		fmt.Fprintf(out, "  cat article.html | readerview -format text\n")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	// Show version information if requested
	if *showVersion {
		info := readerview.GetBuildInfo()
		fmt.Fprintf(stdout, "%s version %s (%s)\n", info.Name, info.Version, info.GoVersion)
		return 0
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Error().Err(err).Str("path", *configPath).Msg("loading configuration")
			return 1
		}
		cfg = loaded
	}

	// Flags given on the command line win over the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Output.Format = *formatStr
		case "output-dir":
			cfg.Output.Dir = *outputDir
		case "compact":
			cfg.Output.Compact = *compact
		case "sanitize":
			cfg.Output.Sanitize = *sanitize
		case "url":
			cfg.Extraction.PageURL = *pageURL
		case "workers":
			cfg.Workers = *workers
		case "char-threshold":
			cfg.Extraction.CharThreshold = *charThreshold
		case "max-elems":
			cfg.Extraction.MaxElemsToParse = *maxElems
		case "keep-classes":
			cfg.Extraction.KeepClasses = *keepClasses
		case "classes":
			cfg.Extraction.ClassesToPreserve = splitList(*classes)
		case "disable-jsonld":
			cfg.Extraction.DisableJSONLD = *disableJSONLD
		case "video-regex":
			cfg.Extraction.VideoRegex = *videoRegex
		case "timeout":
			cfg.Extraction.Timeout = *timeout
		case "verbose":
			cfg.Verbose = *verbose
		}
	})

	if err := config.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid options")
		return 2
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	if *outputFile != "" && len(inputs) > 1 && cfg.Output.Dir == "" {
		log.Warn().Msg("multiple inputs with a single output file, writing to stdout")
		*outputFile = ""
	}

	p := &processor{
		extractor:  readerview.New(extractorOptions(cfg)...),
		format:     OutputFormat(cfg.Output.Format),
		compact:    cfg.Output.Compact,
		outputDir:  cfg.Output.Dir,
		outputFile: *outputFile,
		workers:    cfg.Workers,
		stdin:      stdin,
		stdout:     stdout,
	}

	failed := p.processAll(inputs)
	if failed > 0 {
		log.Error().Int("failed", failed).Int("total", len(inputs)).Msg("some inputs could not be processed")
		return 1
	}
	return 0
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
