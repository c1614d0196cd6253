package readability

import (
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// sectioningSelector matches the elements a share widget is usually built from.
const sectioningSelector = "article, aside, footer, header, hgroup, main, nav, section"

// cleanPage strips form controls, boilerplate containers and share widgets from
// the page before a scoring pass walks it.
func (r *Readability) cleanPage(page *html.Node, flags Flags) {
	removeNodes(getElementsByTagName(page, atom.Input, atom.Textarea, atom.Select, atom.Button), nil)
	removeNodes(getElementsByTagName(page, atom.Header), nil)

	r.cleanConditionally(page, atom.Form, flags)
	r.cleanConditionally(page, atom.Fieldset, flags)

	removeNodes(getElementsByTagName(page, atom.Object, atom.Embed, atom.Footer, atom.Link, atom.Aside), nil)

	goquery.NewDocumentFromNode(page).Find(sectioningSelector).Each(func(_ int, s *goquery.Selection) {
		element := s.Get(0)
		if element.Parent == nil {
			return
		}
		if RegexpShareElements.MatchString(matchString(element)) &&
			charLength(textContent(element)) < shareElementThreshold {
			detach(element)
		}
	})

	removeNodes(getElementsByTagName(page, atom.H1, atom.H2), func(n *html.Node) bool {
		return RegexpShareElements.MatchString(matchString(n))
	})

	r.cleanTail(page, flags)
}

// prepArticle cleans the assembled article container of everything that is
// not content.
func (r *Readability) prepArticle(articleContent *html.Node, flags Flags) {
	cleanStyles(articleContent)

	r.markDataTables(articleContent)

	r.fixLazyImages(articleContent)

	r.cleanConditionally(articleContent, atom.Form, flags)
	r.cleanConditionally(articleContent, atom.Fieldset, flags)
	r.clean(articleContent, atom.Object)
	r.clean(articleContent, atom.Embed)
	r.clean(articleContent, atom.Footer)
	r.clean(articleContent, atom.Link)
	r.clean(articleContent, atom.Aside)

	for _, topCandidate := range children(articleContent) {
		r.cleanMatchedNodes(topCandidate, func(n *html.Node, matchString string) bool {
			return RegexpShareElements.MatchString(matchString) &&
				charLength(textContent(n)) < shareElementThreshold
		})
	}

	r.cleanTail(articleContent, flags)
}

// cleanTail is the cleanup shared by the page pre-walk and article preparation.
func (r *Readability) cleanTail(root *html.Node, flags Flags) {
	r.clean(root, atom.Iframe)
	r.clean(root, atom.Input)
	r.clean(root, atom.Textarea)
	r.clean(root, atom.Select)
	r.clean(root, atom.Button)
	r.cleanHeaders(root, flags)

	r.cleanConditionally(root, atom.Table, flags)
	r.cleanConditionally(root, atom.Ul, flags)
	r.cleanConditionally(root, atom.Div, flags)

	// Paragraphs with neither text nor media.
	removeNodes(getElementsByTagName(root, atom.P), func(p *html.Node) bool {
		media := getElementsByTagName(p, atom.Img, atom.Embed, atom.Object, atom.Iframe)
		return len(media) == 0 && getInnerText(p, false) == ""
	})

	for _, br := range getElementsByTagName(root, atom.Br) {
		if next := nextNonWhitespace(br.NextSibling); isTag(next, atom.P) {
			detach(br)
		}
	}

	// Single-cell tables become the cell's content.
	for _, table := range getElementsByTagName(root, atom.Table) {
		if table.Parent == nil {
			continue
		}
		tbody := table
		if hasSingleTagInsideElement(table, atom.Tbody) {
			tbody = firstElementChild(table)
		}
		if !hasSingleTagInsideElement(tbody, atom.Tr) {
			continue
		}
		row := firstElementChild(tbody)
		if !hasSingleTagInsideElement(row, atom.Td) {
			continue
		}
		cell := firstElementChild(row)
		tag := "div"
		if everyChild(cell, isPhrasingContent) {
			tag = "p"
		}
		cell = r.setNodeTag(cell, tag)
		replaceNode(table, cell)
	}
}

func everyChild(n *html.Node, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !fn(c) {
			return false
		}
	}
	return true
}

// clean removes every tag element under root. Embeds pointing at a known
// video host are kept.
func (r *Readability) clean(root *html.Node, tag atom.Atom) {
	isEmbed := tagCategories[tag].has(catEmbed)

	removeNodes(getElementsByTagName(root, tag), func(element *html.Node) bool {
		if !isEmbed {
			return true
		}
		for _, attr := range element.Attr {
			if r.isAllowedVideo(attr.Val) {
				return false
			}
		}
		if isTag(element, atom.Object) && r.isAllowedVideo(innerHTML(element)) {
			return false
		}
		return true
	})
}

func (r *Readability) isAllowedVideo(value string) bool {
	if r.options.AllowedVideoRegex != nil && r.options.AllowedVideoRegex.MatchString(value) {
		return true
	}
	return RegexpVideos.MatchString(value)
}

// cleanConditionally removes tag elements under root whose shape looks like
// boilerplate: link farms, image galleries without text, form-heavy blocks.
// It does nothing unless FlagCleanConditionally is active.
func (r *Readability) cleanConditionally(root *html.Node, tag atom.Atom, flags Flags) {
	if !flags.Has(FlagCleanConditionally) {
		return
	}

	removeNodes(getElementsByTagName(root, tag), func(node *html.Node) bool {
		isList := tag == atom.Ul || tag == atom.Ol
		if !isList {
			var listLength int
			for _, list := range getElementsByTagName(node, atom.Ul, atom.Ol) {
				listLength += charLength(getInnerText(list, true))
			}
			if nodeLength := charLength(getInnerText(node, true)); nodeLength > 0 {
				isList = float64(listLength)/float64(nodeLength) > 0.9
			}
		}

		if tag == atom.Table && r.isDataTable(node) {
			return false
		}
		if hasAncestorTag(node, atom.Table, -1, r.isDataTable) {
			return false
		}
		if hasAncestorTag(node, atom.Code, 3, nil) {
			return false
		}

		weight := getClassWeight(node, flags)
		if weight < 0 {
			return true
		}

		if getCharCount(node, ",") >= 10 {
			return false
		}

		p := len(getElementsByTagName(node, atom.P))
		img := len(getElementsByTagName(node, atom.Img))
		li := len(getElementsByTagName(node, atom.Li)) - 100
		input := len(getElementsByTagName(node, atom.Input))
		headingDensity := getTextDensity(node, headingTags...)

		embedCount := 0
		for _, embed := range getElementsByCategory(node, catEmbed) {
			for _, attr := range embed.Attr {
				if r.options.AllowedVideoRegex != nil && r.options.AllowedVideoRegex.MatchString(attr.Val) {
					return false
				}
				if RegexpVideos.MatchString(attr.Val) {
					embedCount++
				}
			}
			if isTag(embed, atom.Object) && RegexpVideos.MatchString(innerHTML(embed)) {
				embedCount++
			}
		}

		linkDensity := getLinkDensity(node)
		contentLength := charLength(getInnerText(node, true))
		inFigure := hasAncestorTag(node, atom.Figure, 3, nil)

		haveToRemove := (img > 1 && float64(p)/float64(img) < 0.5 && !inFigure) ||
			(!isList && li > p) ||
			(float64(input) > math.Floor(float64(p)/3)) ||
			(!isList && headingDensity < 0.9 && contentLength < 25 && (img == 0 || img > 2) && !inFigure) ||
			(!isList && weight < 25 && linkDensity > 0.2) ||
			(weight >= 25 && linkDensity > 0.5) ||
			((embedCount == 1 && contentLength < 75) || embedCount > 1)

		// Keep lists whose items are all single images.
		if isList && haveToRemove {
			for _, child := range children(node) {
				if len(children(child)) > 1 {
					return true
				}
			}
			if img == len(getElementsByTagName(node, atom.Li)) {
				return false
			}
		}

		if haveToRemove {
			r.log.Debug().Str("tag", tag.String()).Str("match", matchString(node)).Msg("cleaning conditionally")
		}
		return haveToRemove
	})
}

// cleanMatchedNodes removes the descendants of e the filter accepts.
func (r *Readability) cleanMatchedNodes(e *html.Node, filter func(*html.Node, string) bool) {
	endOfSearchMarker := getNextNode(e, true)
	next := getNextNode(e, false)
	for next != nil && next != endOfSearchMarker {
		if filter(next, matchString(next)) {
			next = removeAndGetNext(next)
		} else {
			next = getNextNode(next, false)
		}
	}
}

// cleanHeaders removes <h1> and <h2> with a negative class weight.
func (r *Readability) cleanHeaders(root *html.Node, flags Flags) {
	removeNodes(getElementsByTagName(root, atom.H1, atom.H2), func(n *html.Node) bool {
		return getClassWeight(n, flags) < 0
	})
}

// markDataTables decides for each table under root whether it holds data or
// only lays out the page.
func (r *Readability) markDataTables(root *html.Node) {
	for _, table := range getElementsByTagName(root, atom.Table) {
		r.dataTables[table] = isDataTableShape(table)
	}
}

func isDataTableShape(table *html.Node) bool {
	if getAttr(table, "role") == "presentation" {
		return false
	}
	if getAttr(table, "datatable") == "0" {
		return false
	}
	if getAttr(table, "summary") != "" {
		return true
	}
	if captions := getElementsByTagName(table, atom.Caption); len(captions) > 0 && captions[0].FirstChild != nil {
		return true
	}
	if len(getElementsByTagName(table, atom.Col, atom.Colgroup, atom.Tfoot, atom.Thead, atom.Th)) > 0 {
		return true
	}
	if len(getElementsByTagName(table, atom.Table)) > 0 {
		return false
	}

	rows, columns := getRowAndCellCount(table)
	if rows >= 10 || columns > 4 {
		return true
	}
	return rows*columns > 10
}

// getRowAndCellCount counts rows, honoring rowspan, and the widest row's
// cells, honoring colspan.
func getRowAndCellCount(table *html.Node) (rows, columns int) {
	for _, tr := range getElementsByTagName(table, atom.Tr) {
		rows += spanOrOne(getAttr(tr, "rowspan"))

		columnsInThisRow := 0
		for _, td := range getElementsByTagName(tr, atom.Td) {
			columnsInThisRow += spanOrOne(getAttr(td, "colspan"))
		}
		columns = max(columns, columnsInThisRow)
	}
	return rows, columns
}

// spanOrOne reads the leading integer of a span attribute, defaulting to 1
// when there is none or it is zero.
func spanOrOne(value string) int {
	value = strings.TrimSpace(value)
	n := 0
	digits := 0
	for _, c := range value {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		digits++
	}
	if digits == 0 || n == 0 {
		return 1
	}
	return n
}
