package readability

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tagCategory is a bit set of the roles a tag plays in the algorithm. Categories
// are keyed on the atom the parser resolved for the element, so membership tests
// never compare tag-name strings.
type tagCategory uint16

const (
	catPhrasing tagCategory = 1 << iota
	catDivToP
	catScorable
	catHeading
	catAlterExempt
	catDeprecatedSize
	catEmbed
	catMedia
)

var tagCategories = map[atom.Atom]tagCategory{
	atom.Abbr:     catPhrasing,
	atom.Audio:    catPhrasing | catMedia,
	atom.B:        catPhrasing,
	atom.Bdo:      catPhrasing,
	atom.Br:       catPhrasing,
	atom.Button:   catPhrasing,
	atom.Cite:     catPhrasing,
	atom.Code:     catPhrasing,
	atom.Data:     catPhrasing,
	atom.Datalist: catPhrasing,
	atom.Dfn:      catPhrasing,
	atom.Em:       catPhrasing,
	atom.Embed:    catPhrasing | catEmbed,
	atom.I:        catPhrasing,
	atom.Img:      catPhrasing | catDivToP | catMedia,
	atom.Input:    catPhrasing,
	atom.Kbd:      catPhrasing,
	atom.Label:    catPhrasing,
	atom.Mark:     catPhrasing,
	atom.Math:     catPhrasing,
	atom.Meter:    catPhrasing,
	atom.Noscript: catPhrasing,
	atom.Object:   catPhrasing | catEmbed,
	atom.Output:   catPhrasing,
	atom.Progress: catPhrasing,
	atom.Q:        catPhrasing,
	atom.Ruby:     catPhrasing,
	atom.Samp:     catPhrasing,
	atom.Script:   catPhrasing,
	atom.Select:   catPhrasing,
	atom.Small:    catPhrasing,
	atom.Span:     catPhrasing,
	atom.Strong:   catPhrasing,
	atom.Sub:      catPhrasing,
	atom.Sup:      catPhrasing,
	atom.Textarea: catPhrasing,
	atom.Time:     catPhrasing,
	atom.Var:      catPhrasing,
	atom.Wbr:      catPhrasing,

	atom.Blockquote: catDivToP,
	atom.Dl:         catDivToP,
	atom.Div:        catDivToP | catAlterExempt,
	atom.Ol:         catDivToP,
	atom.P:          catDivToP | catScorable | catAlterExempt,
	atom.Pre:        catDivToP | catScorable | catDeprecatedSize,
	atom.Table:      catDivToP | catDeprecatedSize,
	atom.Ul:         catDivToP,

	atom.Section: catScorable | catAlterExempt,
	atom.Article: catAlterExempt,
	atom.Td:      catScorable | catDeprecatedSize,
	atom.Th:      catDeprecatedSize,
	atom.Hr:      catDeprecatedSize,

	atom.H1: catHeading,
	atom.H2: catHeading | catScorable,
	atom.H3: catHeading | catScorable,
	atom.H4: catHeading | catScorable,
	atom.H5: catHeading | catScorable,
	atom.H6: catHeading | catScorable,

	atom.Iframe:  catEmbed,
	atom.Picture: catMedia,
	atom.Figure:  catMedia,
	atom.Video:   catMedia,
	atom.Source:  catMedia,
}

// categoryOf returns the categories of an element; non-elements have none.
func categoryOf(n *html.Node) tagCategory {
	if n == nil || n.Type != html.ElementNode {
		return 0
	}
	return tagCategories[n.DataAtom]
}

func (c tagCategory) has(cat tagCategory) bool {
	return c&cat != 0
}

// isTag reports whether n is an element with one of the given atoms.
func isTag(n *html.Node, tags ...atom.Atom) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, t := range tags {
		if n.DataAtom == t {
			return true
		}
	}
	return false
}

// tagSeed is the initial content score a candidate gets from its tag alone.
func tagSeed(n *html.Node) float64 {
	switch n.DataAtom {
	case atom.Div:
		return 5
	case atom.Pre, atom.Td, atom.Blockquote:
		return 3
	case atom.Address, atom.Ol, atom.Ul, atom.Dl, atom.Dd, atom.Dt, atom.Li, atom.Form:
		return -3
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Th:
		return -5
	default:
		return 0
	}
}

var headingTags = []atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}
