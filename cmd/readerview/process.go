package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mrjoshuak/readerview"
	"github.com/mrjoshuak/readerview/internal/config"
)

// extractorOptions turns a validated configuration into extractor options.
func extractorOptions(cfg *config.Config) []readerview.Option {
	opts := []readerview.Option{
		readerview.WithCharThreshold(cfg.Extraction.CharThreshold),
		readerview.WithMaxElemsToParse(cfg.Extraction.MaxElemsToParse),
		readerview.WithNbTopCandidates(cfg.Extraction.NbTopCandidates),
		readerview.WithKeepClasses(cfg.Extraction.KeepClasses),
		readerview.WithClassesToPreserve(cfg.Extraction.ClassesToPreserve...),
		readerview.WithDisableJSONLD(cfg.Extraction.DisableJSONLD),
		readerview.WithPageURL(cfg.Extraction.PageURL),
		readerview.WithTimeout(cfg.Extraction.Timeout),
		readerview.WithLogger(log.Logger),
	}
	if cfg.Extraction.VideoRegex != "" {
		// Already compiled once by ValidateConfig
		opts = append(opts, readerview.WithAllowedVideoRegex(regexp.MustCompile(cfg.Extraction.VideoRegex)))
	}
	if cfg.Output.Sanitize {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		opts = append(opts, readerview.WithSanitizer(policy))
	}
	return opts
}

// processor extracts a batch of inputs with a bounded number of workers and
// writes the results in input order.
type processor struct {
	extractor  readerview.Extractor
	format     OutputFormat
	compact    bool
	outputDir  string
	outputFile string
	workers    int
	stdin      io.Reader
	stdout     io.Writer
}

type outcome struct {
	data []byte
	err  error
}

// processAll returns the number of inputs that failed.
func (p *processor) processAll(inputs []string) int {
	outcomes := make([]outcome, len(inputs))

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			data, err := p.extract(input)
			outcomes[i] = outcome{data: data, err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, input := range inputs {
		o := outcomes[i]
		if o.err == nil {
			o.err = p.write(input, o.data)
		}
		if o.err != nil {
			log.Error().Err(o.err).Str("input", input).Msg("processing failed")
			failed++
		}
	}
	return failed
}

// extract reads one input and renders its article.
func (p *processor) extract(input string) ([]byte, error) {
	var r io.Reader = p.stdin
	if input != "-" {
		file, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer file.Close()
		r = file
	}

	article, err := p.extractor.ExtractFromReader(r, nil)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("input", input).Str("title", article.Title).Int("length", article.Length).Msg("extracted")

	return render(article, p.format, p.compact)
}

func render(article *readerview.Article, format OutputFormat, compact bool) ([]byte, error) {
	switch format {
	case FormatHTML:
		return []byte(article.Content), nil
	case FormatText:
		return []byte(strings.TrimSpace(article.TextContent)), nil
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if !compact {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(article); err != nil {
			return nil, fmt.Errorf("converting article to JSON: %w", err)
		}
		return bytes.TrimRight(buf.Bytes(), "\n"), nil
	}
}

// write sends data to the output directory, the output file, or stdout.
func (p *processor) write(input string, data []byte) error {
	outputPath := p.outputFile
	if p.outputDir != "" && input != "-" {
		if err := os.MkdirAll(p.outputDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		outputPath = filepath.Join(p.outputDir, outputName(input, p.format))
	}

	if outputPath == "" {
		_, err := fmt.Fprintf(p.stdout, "%s\n", data)
		return err
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	log.Info().Str("input", input).Str("output", outputPath).Msg("processed")
	return nil
}

// outputName swaps the input's extension for the format's.
func outputName(input string, format OutputFormat) string {
	baseName := filepath.Base(input)
	nameWithoutExt := strings.TrimSuffix(baseName, filepath.Ext(baseName))

	switch format {
	case FormatHTML:
		return nameWithoutExt + ".html"
	case FormatText:
		return nameWithoutExt + ".txt"
	default:
		return nameWithoutExt + ".json"
	}
}
