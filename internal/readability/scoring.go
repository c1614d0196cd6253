package readability

import (
	"math"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// collectElementsToScore walks the page once, removing hidden, byline and
// unlikely nodes, normalizing <div>s into paragraphs where they hold only
// phrasing content, and queueing the nodes whose text gets scored.
func (r *Readability) collectElementsToScore(page *html.Node, flags Flags) []*html.Node {
	var elementsToScore []*html.Node

	node := page
	for node != nil {
		if node != page {
			if remove, reason := r.shouldRemoveDuringWalk(node, flags); remove {
				r.log.Debug().Str("reason", reason).Str("match", matchString(node)).Msg("removing node")
				node = removeAndGetNext(node)
				continue
			}
		}

		if categoryOf(node).has(catScorable) {
			elementsToScore = append(elementsToScore, node)
		}

		if isTag(node, atom.Div) {
			wrapPhrasingRuns(node)

			if hasSingleTagInsideElement(node, atom.P) && getLinkDensity(node) < 0.25 && node.Parent != nil {
				newNode := children(node)[0]
				replaceNode(node, newNode)
				node = newNode
				elementsToScore = append(elementsToScore, node)
			} else if !hasChildBlockElement(node) && node != page {
				node = r.setNodeTag(node, "p")
				elementsToScore = append(elementsToScore, node)
			}
		}

		node = getNextNode(node, false)
	}

	return elementsToScore
}

// shouldRemoveDuringWalk applies the walk's removal rules in order and names
// the rule that fired.
func (r *Readability) shouldRemoveDuringWalk(node *html.Node, flags Flags) (bool, string) {
	match := matchString(node)

	if !isProbablyVisible(node) {
		return true, "hidden"
	}

	if getAttr(node, "aria-modal") == "true" && getAttr(node, "role") == "dialog" {
		return true, "modal dialog"
	}

	if r.checkByline(node, match) {
		return true, "byline"
	}

	if flags.Has(FlagStripUnlikelys) {
		if RegexpUnlikelyCandidates.MatchString(match) &&
			!RegexpMaybeCandidate.MatchString(match) &&
			!hasAncestorTag(node, atom.Table, 3, nil) &&
			!hasAncestorTag(node, atom.Code, 3, nil) &&
			!isTag(node, atom.Body, atom.A) {
			return true, "unlikely candidate"
		}

		if role := getAttr(node, "role"); role != "" && containsString(unlikelyRoles, role) {
			return true, "role=" + role
		}
	}

	if isTag(node, atom.Div, atom.Section, atom.Header) || categoryOf(node).has(catHeading) {
		if isElementWithoutContent(node) {
			return true, "empty container"
		}
	}

	return false, ""
}

// wrapPhrasingRuns puts each run of phrasing children of div into a <p>.
// Runs of only whitespace are left alone and trailing whitespace is trimmed.
func wrapPhrasingRuns(div *html.Node) {
	var p *html.Node
	child := div.FirstChild
	for child != nil {
		next := child.NextSibling
		if isPhrasingContent(child) {
			if p != nil {
				appendChild(p, child)
			} else if !isWhitespace(child) {
				p = createElement("p")
				replaceNode(child, p)
				p.AppendChild(child)
			}
		} else if p != nil {
			trimTrailingWhitespace(p)
			p = nil
		}
		child = next
	}
}

func trimTrailingWhitespace(p *html.Node) {
	for p.LastChild != nil && isWhitespace(p.LastChild) {
		p.RemoveChild(p.LastChild)
	}
}

// scoreElements scores each queued node's text and spreads the score over up
// to five ancestors. It returns the ancestors that became candidates, in the
// order they were first seen.
func (r *Readability) scoreElements(elementsToScore []*html.Node, flags Flags) []*html.Node {
	var candidates []*html.Node

	for _, element := range elementsToScore {
		if element.Parent == nil || element.Parent.Type != html.ElementNode {
			continue
		}

		innerText := getInnerText(element, true)
		if charLength(innerText) < 25 {
			continue
		}

		ancestors := getNodeAncestors(element, 5)
		if len(ancestors) == 0 {
			continue
		}

		contentScore := 1.0
		contentScore += float64(len(strings.Split(innerText, ",")))
		contentScore += math.Min(math.Floor(float64(charLength(innerText))/100), 3)

		for level, ancestor := range ancestors {
			if ancestor.Type != html.ElementNode || ancestor.Parent == nil || ancestor.Parent.Type != html.ElementNode {
				continue
			}

			score, ok := r.scores[ancestor]
			if !ok {
				score = r.initializeNode(ancestor, flags)
				candidates = append(candidates, ancestor)
			}

			score.contentScore += contentScore / scoreDivider(level)
		}
	}

	return candidates
}

func scoreDivider(level int) float64 {
	switch level {
	case 0:
		return 1
	case 1:
		return 2
	default:
		return float64(level * 3)
	}
}
