package readability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func mustParse(tb testing.TB, source string) *html.Node {
	tb.Helper()
	doc, err := html.Parse(strings.NewReader(source))
	require.NoError(tb, err)
	return doc
}

// mustFirst returns the first element with the given tag, failing the test if there is none.
func mustFirst(tb testing.TB, root *html.Node, tag atom.Atom) *html.Node {
	tb.Helper()
	n := findFirst(root, tag)
	require.NotNil(tb, n, "no <%s> in document", tag)
	return n
}

func newTestReadability(tb testing.TB, source string) *Readability {
	tb.Helper()
	return NewFromNode(mustParse(tb, source), nil)
}

func paragraph(words int) string {
	return strings.TrimSpace(strings.Repeat("lorem ipsum dolor sit amet ", words/5+1))
}
