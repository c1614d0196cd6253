package readability

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-shiori/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/mrjoshuak/readerview/types"
)

var articleParagraphs = []string{
	"The committee met on Tuesday to review the proposal for the new harbour bridge. Members spent most of the morning on the budget and the long term maintenance plan for the structure.",
	"Engineers presented three designs that differ mainly in the height of the central span. The tallest option would let cargo ships pass at any tide but costs almost twice as much as the others.",
	"Residents who attended the public session asked about noise during construction. The chair promised a written answer before the next meeting and thanked everyone for their patience with the process.",
}

func endToEndPage() string {
	var b strings.Builder
	b.WriteString(`<html><head></head><body>`)
	b.WriteString(`<nav><a href="/">Home</a> <a href="/news">News</a> <a href="/about">About us</a></nav>`)
	b.WriteString(`<header><h1>Title</h1></header>`)
	b.WriteString(`<article>`)
	for _, p := range articleParagraphs {
		b.WriteString("<p>" + p + "</p>")
	}
	b.WriteString(`</article></body></html>`)
	return b.String()
}

func TestParseEndToEnd(t *testing.T) {
	r := newTestReadability(t, endToEndPage())

	result, err := r.Parse()
	require.NoError(t, err)
	require.True(t, result.OK())

	article := result.Article
	assert.Equal(t, "Title", article.Title)
	for _, p := range articleParagraphs {
		assert.Contains(t, article.TextContent, p)
	}
	assert.NotContains(t, article.TextContent, "About us")
	assert.Equal(t, charLength(article.TextContent), article.Length)
	assert.Contains(t, article.Content, `id="readability-page-1"`)
	assert.Contains(t, article.Content, `class="page"`)
	assert.Equal(t, 1, r.Passes())
}

func TestParseRoundTrip(t *testing.T) {
	r := newTestReadability(t, endToEndPage())
	result, err := r.Parse()
	require.NoError(t, err)
	require.True(t, result.OK())

	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(result.Article.Content), context)
	require.NoError(t, err)

	for _, n := range nodes {
		context.AppendChild(n)
	}
	assert.Equal(t, result.Article.Content, innerHTML(context))
}

func TestParseRetriesUntilFlagsAreExhausted(t *testing.T) {
	const sidebar = "Sidebar text that only shows up once weights are relaxed."
	const main = "Main text that is far too short to pass the threshold alone."
	r := newTestReadability(t, `<html><body>`+
		`<div class="sidebar"><p>`+sidebar+`</p></div>`+
		`<div><p>`+main+`</p></div>`+
		`</body></html>`)

	result, err := r.Parse()
	require.NoError(t, err)
	require.True(t, result.OK())

	assert.Equal(t, 4, r.Passes())
	assert.Contains(t, result.Article.TextContent, main)
	assert.Contains(t, result.Article.TextContent, sidebar, "the longest attempt wins")
}

func TestParseShortDocumentStillYieldsArticle(t *testing.T) {
	r := newTestReadability(t, `<html><body><div><p>Short text that is long enough to be scored.</p></div></body></html>`)

	result, err := r.Parse()
	require.NoError(t, err)
	require.True(t, result.OK())
	assert.Equal(t, 4, r.Passes())
	assert.Contains(t, result.Article.TextContent, "Short text that is long enough to be scored.")
}

func TestParseNoContent(t *testing.T) {
	r := newTestReadability(t, `<html><body><div> </div></body></html>`)

	result, err := r.Parse()
	require.NoError(t, err)
	assert.Nil(t, result.Article)
	assert.Equal(t, types.FailureNoContent, result.Failure)
	assert.Equal(t, 4, r.Passes())
}

func TestParseNoBody(t *testing.T) {
	doc := &html.Node{Type: html.DocumentNode}
	root := createElement("html")
	head := createElement("head")
	head.AppendChild(createElement("script"))
	head.AppendChild(createElement("style"))
	root.AppendChild(head)
	doc.AppendChild(root)

	result, err := NewFromNode(doc, nil).Parse()
	require.NoError(t, err)
	assert.Nil(t, result.Article)
	assert.Equal(t, types.FailureNoBody, result.Failure)

	// Nothing was touched.
	assert.Len(t, getElementsByTagName(doc, atom.Script), 1)
	assert.Len(t, getElementsByTagName(doc, atom.Style), 1)
}

func TestParseElementCeiling(t *testing.T) {
	source := endToEndPage()
	opts := DefaultOptions()
	opts.MaxElemsToParse = 5
	r := NewFromNode(mustParse(t, source), &opts)

	_, err := r.Parse()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDocumentLarge))
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "exceeds limit of 5")

	// Nothing was touched.
	assert.Len(t, getElementsByTagName(r.doc, atom.Nav), 1)
	assert.Len(t, getElementsByTagName(r.doc, atom.Header), 1)
}

func TestParseCapturesByline(t *testing.T) {
	r := newTestReadability(t, `<html><body><article>`+
		`<p class="byline">By Jane Doe</p>`+
		`<p>`+articleParagraphs[0]+`</p><p>`+articleParagraphs[1]+`</p><p>`+articleParagraphs[2]+`</p>`+
		`</article></body></html>`)

	result, err := r.Parse()
	require.NoError(t, err)
	require.True(t, result.OK())
	assert.Equal(t, "By Jane Doe", result.Article.Byline)
	assert.NotContains(t, result.Article.TextContent, "Jane Doe")
}

func TestParseMetadataBylineWins(t *testing.T) {
	r := newTestReadability(t, `<html><head><meta name="author" content="Meta Author"></head><body><article>`+
		`<p>`+articleParagraphs[0]+`</p><p>`+articleParagraphs[1]+`</p><p>`+articleParagraphs[2]+`</p>`+
		`</article></body></html>`)

	result, err := r.Parse()
	require.NoError(t, err)
	require.True(t, result.OK())
	assert.Equal(t, "Meta Author", result.Article.Byline)
}

func TestParseLangAndDir(t *testing.T) {
	r := newTestReadability(t, `<html lang="en-us"><body><div dir="rtl"><article>`+
		`<p>`+articleParagraphs[0]+`</p><p>`+articleParagraphs[1]+`</p><p>`+articleParagraphs[2]+`</p>`+
		`</article><aside>x</aside></div></body></html>`)

	result, err := r.Parse()
	require.NoError(t, err)
	require.True(t, result.OK())
	assert.Equal(t, "en-US", result.Article.Lang)
	assert.Equal(t, "rtl", result.Article.Dir)
}

func TestParsePublishedDate(t *testing.T) {
	r := newTestReadability(t, `<html><head><meta property="article:published_time" content="2024-05-01T10:00:00Z"></head><body><article>`+
		`<p>`+articleParagraphs[0]+`</p><p>`+articleParagraphs[1]+`</p><p>`+articleParagraphs[2]+`</p>`+
		`</article></body></html>`)

	result, err := r.Parse()
	require.NoError(t, err)
	require.True(t, result.OK())
	assert.Equal(t, "2024-05-01T10:00:00Z", result.Article.PublishedTime)
	assert.Equal(t, 2024, result.Article.Date.Year())
}

func TestParseKeepClasses(t *testing.T) {
	source := `<html><body><article class="story">` +
		`<p class="lead">` + articleParagraphs[0] + `</p><p>` + articleParagraphs[1] + `</p><p>` + articleParagraphs[2] + `</p>` +
		`</article></body></html>`

	r := newTestReadability(t, source)
	result, err := r.Parse()
	require.NoError(t, err)
	assert.NotContains(t, result.Article.Content, `class="lead"`)

	opts := DefaultOptions()
	opts.KeepClasses = true
	r = NewFromNode(mustParse(t, source), &opts)
	result, err = r.Parse()
	require.NoError(t, err)
	assert.Contains(t, result.Article.Content, `class="lead"`)
}

func TestParseCustomSerializer(t *testing.T) {
	opts := DefaultOptions()
	opts.Serializer = dom.OuterHTML
	r := NewFromNode(mustParse(t, endToEndPage()), &opts)

	result, err := r.Parse()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Article.Content, "<div>"))
}

func TestParseIsRepeatableOnFreshTrees(t *testing.T) {
	first, err := newTestReadability(t, endToEndPage()).Parse()
	require.NoError(t, err)
	second, err := newTestReadability(t, endToEndPage()).Parse()
	require.NoError(t, err)
	assert.Equal(t, first.Article.Content, second.Article.Content)
}

func TestRelaxingFlagsNeverShortensTheArticle(t *testing.T) {
	var states []Flags
	for flags, ok := FlagsAll, true; ok; flags, ok = flags.relax() {
		states = append(states, flags)
	}
	require.Len(t, states, 4)

	pages := []struct {
		name   string
		source string
	}{
		{
			name: "sidebar next to the story",
			source: `<html><body>` +
				`<div><p>` + articleParagraphs[0] + `</p></div>` +
				`<div class="sidebar"><p>` + articleParagraphs[1] + `</p></div>` +
				`</body></html>`,
		},
		{name: "plain article", source: endToEndPage()},
	}

	for _, tt := range pages {
		t.Run(tt.name, func(t *testing.T) {
			var lengths []int
			for _, flags := range states {
				r := newTestReadability(t, tt.source)
				result := r.runPass(mustFirst(t, r.doc, atom.Body), flags)
				lengths = append(lengths, charLength(getInnerText(result.content, true)))
			}

			for i := 1; i < len(lengths); i++ {
				assert.GreaterOrEqual(t, lengths[i], lengths[i-1], "%v after %v: %v", states[i], states[i-1], lengths)
			}
		})
	}
}

func TestStrippedSidebarComesBackWhenRelaxed(t *testing.T) {
	source := `<html><body>` +
		`<div><p>` + articleParagraphs[0] + `</p></div>` +
		`<div class="sidebar"><p>` + articleParagraphs[1] + `</p></div>` +
		`</body></html>`

	strict := newTestReadability(t, source)
	text := getInnerText(strict.runPass(mustFirst(t, strict.doc, atom.Body), FlagsAll).content, true)
	assert.Contains(t, text, articleParagraphs[0])
	assert.NotContains(t, text, articleParagraphs[1])

	relaxed := newTestReadability(t, source)
	text = getInnerText(relaxed.runPass(mustFirst(t, relaxed.doc, atom.Body), FlagsAll&^FlagStripUnlikelys).content, true)
	assert.Contains(t, text, articleParagraphs[0])
	assert.Contains(t, text, articleParagraphs[1])
}
