package readerview_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/readerview"
)

const testArticle = `<html><head><title>Test Title</title></head><body><header><nav><ul><li><a href="#">Home</a></li><li><a href="#">About</a></li></ul></nav></header><main><article><h1>Test Title</h1><p>This is a test paragraph with enough text to be considered relevant content by the Readability algorithm. We need to ensure that this paragraph has sufficient length to be scored highly by the content extraction algorithm. The algorithm looks for blocks of text that appear to be the main content of the page, as opposed to navigation, headers, footers, or other ancillary content.</p><p>Adding another paragraph increases the content score for this article element, making it more likely to be identified as the main content of the page. The Readability algorithm is designed to extract the primary content from a webpage, ignoring elements that are likely to be navigation, ads, or other non-content features.</p></article></main><footer><p>Copyright 2025</p></footer></body></html>`

func TestExtractor(t *testing.T) {
	// Create a new extractor
	ext := readerview.New()

	// Extract article
	article, err := ext.ExtractFromHTML(testArticle, nil)
	if err != nil {
		t.Fatalf("Failed to extract article: %v", err)
	}

	// Check title
	if article.Title != "Test Title" {
		t.Errorf("Expected title 'Test Title', got '%s'", article.Title)
	}

	// Check if content is extracted
	if len(article.Content) == 0 {
		t.Error("Expected non-empty content")
	}

	if !strings.Contains(article.TextContent, "Adding another paragraph") {
		t.Error("Expected the second paragraph in the text content")
	}
	if strings.Contains(article.TextContent, "Copyright 2025") {
		t.Error("Expected the footer to be removed")
	}
	if article.Length != len([]rune(article.TextContent)) {
		t.Errorf("Expected length %d, got %d", len([]rune(article.TextContent)), article.Length)
	}
}

func TestOptions(t *testing.T) {
	source := strings.Replace(testArticle, "<article>", `<article class="story lead">`, 1)

	article, err := readerview.New(readerview.WithClassesToPreserve("lead")).ExtractFromHTML(source, nil)
	if err != nil {
		t.Fatalf("Failed to extract article: %v", err)
	}
	if strings.Contains(article.Content, "story") {
		t.Error("Expected class 'story' to be removed")
	}
	if !strings.Contains(article.Content, "lead") {
		t.Error("Expected class 'lead' to be preserved")
	}

	article, err = readerview.New(readerview.WithKeepClasses(true)).ExtractFromHTML(source, nil)
	if err != nil {
		t.Fatalf("Failed to extract article: %v", err)
	}
	if !strings.Contains(article.Content, "story lead") {
		t.Error("Expected all classes to be kept")
	}
}

func TestPerCallOptionsOverrideExtractor(t *testing.T) {
	ext := readerview.New(readerview.WithMaxElemsToParse(3))

	if _, err := ext.ExtractFromHTML(testArticle, nil); !errors.Is(err, readerview.ErrDocumentLarge) {
		t.Fatalf("Expected ErrDocumentLarge, got %v", err)
	}

	opts := readerview.DefaultOptions()
	if _, err := ext.ExtractFromHTML(testArticle, &opts); err != nil {
		t.Fatalf("Expected per-call options to lift the ceiling, got %v", err)
	}
}

func TestElementCeiling(t *testing.T) {
	_, err := readerview.New(readerview.WithMaxElemsToParse(3)).ExtractFromHTML(testArticle, nil)
	if err == nil {
		t.Fatal("Expected an error for a document over the element ceiling")
	}
	if !errors.Is(err, readerview.ErrDocumentLarge) {
		t.Errorf("Expected ErrDocumentLarge, got %v", err)
	}
	if !readerview.IsValidationError(err) {
		t.Errorf("Expected a validation error, got %v", err)
	}
}

func TestNoContent(t *testing.T) {
	ext := readerview.New()

	_, err := ext.ExtractFromHTML(`<html><body><div> </div></body></html>`, nil)
	if !errors.Is(err, readerview.ErrNoContent) {
		t.Fatalf("Expected ErrNoContent, got %v", err)
	}

	doc := mustParseDocument(t, `<html><body><div> </div></body></html>`)
	result, err := ext.Parse(doc, nil)
	if err != nil {
		t.Fatalf("Parse returned an error: %v", err)
	}
	if result.OK() || result.Failure != readerview.FailureNoContent {
		t.Errorf("Expected FailureNoContent, got %v", result.Failure)
	}
}

func TestNilDocument(t *testing.T) {
	_, err := readerview.New().ExtractFromNode(nil, nil)
	if !errors.Is(err, readerview.ErrNoDocument) {
		t.Fatalf("Expected ErrNoDocument, got %v", err)
	}
}

func TestExtractFromReaderDecodesCharset(t *testing.T) {
	source := "<html><head><meta charset=\"windows-1252\"><title>Caf\xe9 review</title></head><body><article>" +
		"<p>The caf\xe9 on the corner serves coffee, pastries and a quiet place to read the paper.</p>" +
		"</article></body></html>"

	ext := readerview.New(readerview.WithCharThreshold(20))
	article, err := ext.ExtractFromReader(strings.NewReader(source), nil)
	if err != nil {
		t.Fatalf("Failed to extract article: %v", err)
	}

	if article.Title != "Café review" {
		t.Errorf("Expected title 'Café review', got '%s'", article.Title)
	}
	if !strings.Contains(article.TextContent, "The café on the corner") {
		t.Errorf("Expected decoded text, got %q", article.TextContent)
	}
}

func TestExtractFromHTMLKeepsUTF8Text(t *testing.T) {
	// The string is already UTF-8; the declared charset must not decode it again.
	source := `<html><head><meta charset="windows-1252"><title>Café review</title></head><body><article>` +
		`<p>The café on the corner serves crème brûlée and a quiet place to read the paper.</p>` +
		`</article></body></html>`

	ext := readerview.New(readerview.WithCharThreshold(20))
	article, err := ext.ExtractFromHTML(source, nil)
	if err != nil {
		t.Fatalf("Failed to extract article: %v", err)
	}

	if article.Title != "Café review" {
		t.Errorf("Expected title 'Café review', got '%s'", article.Title)
	}
	if !strings.Contains(article.TextContent, "crème brûlée") {
		t.Errorf("Expected text to survive unchanged, got %q", article.TextContent)
	}
}

func TestExtractFromReaderUTF8(t *testing.T) {
	source := `<html><head><meta charset="utf-8"><title>Über den Wolken</title></head><body><article>` +
		`<p>Die Straße zum Flughafen war am Morgen völlig frei, und der Flug startete pünktlich.</p>` +
		`</article></body></html>`

	ext := readerview.New(readerview.WithCharThreshold(20))
	article, err := ext.ExtractFromReader(strings.NewReader(source), nil)
	if err != nil {
		t.Fatalf("Failed to extract article: %v", err)
	}

	if article.Title != "Über den Wolken" {
		t.Errorf("Expected title 'Über den Wolken', got '%s'", article.Title)
	}
	if !strings.Contains(article.TextContent, "Die Straße zum Flughafen") {
		t.Errorf("Expected decoded text, got %q", article.TextContent)
	}
}

func TestZeroCharThreshold(t *testing.T) {
	source := `<html><body>` +
		`<div class="sidebar"><p>Sidebar text that only shows up once weights are relaxed.</p></div>` +
		`<div><p>Main text that is far too short to pass the threshold alone.</p></div>` +
		`</body></html>`

	article, err := readerview.New().ExtractFromHTML(source, nil)
	if err != nil {
		t.Fatalf("Failed to extract article: %v", err)
	}
	if !strings.Contains(article.TextContent, "Sidebar text") {
		t.Errorf("Expected the relaxed attempt to win with the default threshold, got %q", article.TextContent)
	}

	article, err = readerview.New(readerview.WithCharThreshold(0)).ExtractFromHTML(source, nil)
	if err != nil {
		t.Fatalf("Failed to extract article: %v", err)
	}
	if strings.Contains(article.TextContent, "Sidebar text") {
		t.Errorf("Expected the first pass to be accepted, got %q", article.TextContent)
	}
}

func TestPageURL(t *testing.T) {
	source := strings.Replace(testArticle, "as opposed to navigation", `as opposed to <a href="/about">navigation</a>`, 1)

	ext := readerview.New(readerview.WithPageURL("https://example.com/news/story.html"))
	article, err := ext.ExtractFromHTML(source, nil)
	if err != nil {
		t.Fatalf("Failed to extract article: %v", err)
	}
	if !strings.Contains(article.Content, `href="https://example.com/about"`) {
		t.Errorf("Expected an absolute link, got %s", article.Content)
	}
}

func TestSanitizer(t *testing.T) {
	ext := readerview.New(readerview.WithSanitizer(bluemonday.StrictPolicy()))
	article, err := ext.ExtractFromHTML(testArticle, nil)
	if err != nil {
		t.Fatalf("Failed to extract article: %v", err)
	}
	if strings.Contains(article.Content, "<") {
		t.Errorf("Expected all markup to be stripped, got %s", article.Content)
	}
	if !strings.Contains(article.Content, "Adding another paragraph") {
		t.Error("Expected the text to survive sanitizing")
	}
}

func TestTimeout(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 2000; i++ {
		b.WriteString("<div><p>Paragraph text that is long enough to be scored, with a comma.</p></div>")
	}
	b.WriteString("</body></html>")

	ext := readerview.New(readerview.WithTimeout(time.Nanosecond))
	_, err := ext.ExtractFromHTML(b.String(), nil)
	if err == nil {
		t.Fatal("Expected a timeout error")
	}
	if !errors.Is(err, readerview.ErrTimeout) || !readerview.IsTimeoutError(err) {
		t.Errorf("Expected a timeout error, got %v", err)
	}
}

func TestGetBuildInfo(t *testing.T) {
	info := readerview.GetBuildInfo()
	if info.Name != readerview.Name || info.Version != readerview.Version {
		t.Errorf("Unexpected build info %+v", info)
	}
	if !strings.HasPrefix(info.GoVersion, "go") && !strings.HasPrefix(info.GoVersion, "devel") {
		t.Errorf("Unexpected Go version %q", info.GoVersion)
	}
}

func mustParseDocument(t *testing.T, source string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		t.Fatalf("Failed to parse HTML: %v", err)
	}
	return doc
}
