package readability

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/text/language"

	"github.com/mrjoshuak/readerview/types"
)

// Options defines configuration options for the Readability parser
type Options struct {
	MaxElemsToParse   int                      // Maximum elements to parse (0 = no limit)
	NbTopCandidates   int                      // Number of top candidates to consider
	CharThreshold     int                      // Minimum characters an accepted pass must yield
	ClassesToPreserve []string                 // Classes kept by class cleaning besides "page"
	KeepClasses       bool                     // Whether to keep classes
	DisableJSONLD     bool                     // Whether to skip JSON-LD metadata
	AllowedVideoRegex *regexp.Regexp           // Extra embeds to keep, nil for none
	Serializer        func(*html.Node) string  // Renders the article container, inner HTML by default
	PageURL           string                   // URL the document was loaded from, used to absolutize links
	Logger            *zerolog.Logger          // Nil disables logging
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		MaxElemsToParse: DefaultMaxElemsToParse,
		NbTopCandidates: DefaultNTopCandidates,
		CharThreshold:   DefaultCharThreshold,
		Serializer:      innerHTML,
	}
}

// attempt is a pass that produced too little text, kept as a fallback.
type attempt struct {
	content      *html.Node
	topCandidate *html.Node
	parent       *html.Node
	textLength   int
}

// Readability holds the state of one extraction run over one document.
// It mutates the document and must not be shared between goroutines.
type Readability struct {
	doc     *html.Node
	options Options
	log     zerolog.Logger

	scores     map[*html.Node]*nodeScore
	dataTables map[*html.Node]bool

	documentURI *url.URL
	baseURI     *url.URL

	articleTitle  string
	articleByline string
	articleDir    string
	articleLang   string
	attempts      []attempt
	passes        int
}

// NewFromNode creates a parser over an already parsed document
func NewFromNode(doc *html.Node, opts *Options) *Readability {
	options := DefaultOptions()
	if opts != nil {
		options = *opts
	}
	if options.NbTopCandidates <= 0 {
		options.NbTopCandidates = DefaultNTopCandidates
	}
	if options.Serializer == nil {
		options.Serializer = innerHTML
	}
	options.ClassesToPreserve = append(append([]string{}, ClassesToPreserve...), options.ClassesToPreserve...)

	logger := zerolog.Nop()
	if options.Logger != nil {
		logger = *options.Logger
	}

	r := &Readability{
		doc:     doc,
		options: options,
		log:     logger.With().Str("run", uuid.NewString()).Logger(),
	}
	r.resetPassState()
	return r
}

// Parse runs the Readability algorithm. A document over the element ceiling is
// an error and a document without a body is a failure; both are left untouched.
// A document without extractable text yields a Result carrying the failure reason.
func (r *Readability) Parse() (types.Result, error) {
	if r.doc == nil {
		return types.Result{}, WrapValidationError(ErrNoDocument, "Parse", "")
	}

	if r.options.MaxElemsToParse > 0 {
		numNodes := goquery.NewDocumentFromNode(r.doc).Find("*").Length()
		if numNodes > r.options.MaxElemsToParse {
			err := WrapValidationError(ErrDocumentLarge, "Parse", "")
			return types.Result{}, fmt.Errorf("%w: %d elements (exceeds limit of %d)",
				err, numNodes, r.options.MaxElemsToParse)
		}
	}

	body := htmlquery.FindOne(r.doc, "//body")
	if body == nil {
		r.log.Debug().Msg("no body found in document")
		return types.Result{Failure: types.FailureNoBody}, nil
	}

	r.resolveURIs()
	r.articleLang = r.getArticleLang()

	r.unwrapNoscriptImages()

	var jsonLd jsonLDMetadata
	if !r.options.DisableJSONLD {
		jsonLd = r.getJSONLD()
	}

	r.removeScripts()
	r.prepDocument()

	metadata := r.getArticleMetadata(jsonLd)
	r.articleTitle = metadata.Title

	content := r.grabArticle(body)
	if content == nil {
		return types.Result{Failure: types.FailureNoContent}, nil
	}

	r.postProcessContent(content)

	byline := metadata.Byline
	if byline == "" {
		byline = r.articleByline
	}

	text := textContent(content)
	article := &types.Article{
		Title:         r.articleTitle,
		Byline:        byline,
		Dir:           r.articleDir,
		Lang:          r.articleLang,
		Content:       r.options.Serializer(content),
		TextContent:   text,
		Length:        charLength(text),
		Excerpt:       metadata.Excerpt,
		SiteName:      metadata.SiteName,
		PublishedTime: metadata.PublishedTime,
	}
	if metadata.PublishedTime != "" {
		if date, err := dateparse.ParseAny(metadata.PublishedTime); err == nil {
			article.Date = date
		} else {
			r.log.Debug().Err(err).Str("published", metadata.PublishedTime).Msg("unparsable published time")
		}
	}

	return types.Result{Article: article}, nil
}

// Passes reports how many scoring passes the last Parse ran.
func (r *Readability) Passes() int {
	return r.passes
}

// removeScripts removes all script and noscript elements from the document
func (r *Readability) removeScripts() {
	removeNodes(htmlquery.Find(r.doc, "//script | //noscript"), nil)
}

// resolveURIs records the page URL and the base URL links resolve against.
// A <base href> is resolved against the page URL.
func (r *Readability) resolveURIs() {
	if r.options.PageURL != "" {
		if u, err := url.Parse(r.options.PageURL); err == nil {
			r.documentURI = u
		} else {
			r.log.Warn().Err(err).Str("url", r.options.PageURL).Msg("invalid page URL")
		}
	}
	r.baseURI = r.documentURI

	base := htmlquery.FindOne(r.doc, "//base[@href]")
	if base == nil {
		return
	}
	href, err := url.Parse(strings.TrimSpace(htmlquery.SelectAttr(base, "href")))
	if err != nil {
		r.log.Warn().Err(err).Msg("invalid base href")
		return
	}
	if r.documentURI != nil {
		r.baseURI = r.documentURI.ResolveReference(href)
	} else if href.IsAbs() {
		r.baseURI = href
	}
}

// getArticleLang reads the lang attribute of the root element in canonical form.
func (r *Readability) getArticleLang() string {
	root := htmlquery.FindOne(r.doc, "/html")
	if root == nil {
		return ""
	}
	lang := strings.TrimSpace(htmlquery.SelectAttr(root, "lang"))
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	return tag.String()
}
