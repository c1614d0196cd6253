package readability

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rankCandidates scales every candidate's score by its non-link share and
// returns the best NbTopCandidates of them, highest first.
func (r *Readability) rankCandidates(candidates []*html.Node) []*html.Node {
	var topCandidates []*html.Node

	for _, candidate := range candidates {
		score := r.scores[candidate]
		score.contentScore *= 1 - getLinkDensity(candidate)

		for t := 0; t < r.options.NbTopCandidates; t++ {
			if t < len(topCandidates) && score.contentScore <= r.scoreOf(topCandidates[t]) {
				continue
			}
			topCandidates = append(topCandidates, nil)
			copy(topCandidates[t+1:], topCandidates[t:])
			topCandidates[t] = candidate
			if len(topCandidates) > r.options.NbTopCandidates {
				topCandidates = topCandidates[:r.options.NbTopCandidates]
			}
			break
		}
	}

	return topCandidates
}

// selectTopCandidate picks the node whose subtree is the article. When
// nothing scored, or the best node is the page itself, every child of the page
// is moved into a new <div> that becomes the candidate; created reports that.
func (r *Readability) selectTopCandidate(page *html.Node, topCandidates []*html.Node, flags Flags) (topCandidate *html.Node, created bool) {
	if len(topCandidates) > 0 {
		topCandidate = topCandidates[0]
	}

	if topCandidate == nil || isTag(topCandidate, atom.Body) || topCandidate == page {
		topCandidate = createElement("div")
		for page.FirstChild != nil {
			appendChild(topCandidate, page.FirstChild)
		}
		page.AppendChild(topCandidate)
		r.initializeNode(topCandidate, flags)
		return topCandidate, true
	}

	topCandidate = r.promoteCommonAncestor(topCandidate, topCandidates, flags)

	// Climb while the parent's score does not collapse; a parent that beats
	// the running score takes over.
	parent := topCandidate.Parent
	lastScore := r.scoreOf(topCandidate)
	scoreThreshold := lastScore / 3
	for parent != nil && !isTag(parent, atom.Body) && parent != page {
		if !r.isCandidate(parent) {
			parent = parent.Parent
			continue
		}
		parentScore := r.scoreOf(parent)
		if parentScore < scoreThreshold {
			break
		}
		if parentScore > lastScore {
			topCandidate = parent
			break
		}
		lastScore = parentScore
		parent = parent.Parent
	}

	// A lone child says nothing its parent does not.
	parent = topCandidate.Parent
	for parent != nil && parent.Type == html.ElementNode && !isTag(parent, atom.Body) &&
		parent != page && len(children(parent)) == 1 {
		topCandidate = parent
		parent = topCandidate.Parent
	}
	if !r.isCandidate(topCandidate) {
		r.initializeNode(topCandidate, flags)
	}

	return topCandidate, false
}

// promoteCommonAncestor replaces the top candidate with the nearest ancestor
// shared by at least three other strong candidates (score ratio >= 0.75).
func (r *Readability) promoteCommonAncestor(topCandidate *html.Node, topCandidates []*html.Node, flags Flags) *html.Node {
	topScore := r.scoreOf(topCandidate)
	var alternativeAncestors [][]*html.Node
	for _, candidate := range topCandidates[1:] {
		if topScore != 0 && r.scoreOf(candidate)/topScore >= 0.75 {
			alternativeAncestors = append(alternativeAncestors, getNodeAncestors(candidate, 0))
		}
	}
	if len(alternativeAncestors) < minimumTopCandidates {
		if !r.isCandidate(topCandidate) {
			r.initializeNode(topCandidate, flags)
		}
		return topCandidate
	}

	for parent := topCandidate.Parent; parent != nil && parent.Type == html.ElementNode && !isTag(parent, atom.Body); parent = parent.Parent {
		lists := 0
		for _, ancestors := range alternativeAncestors {
			if containsNode(ancestors, parent) {
				lists++
			}
			if lists >= minimumTopCandidates {
				break
			}
		}
		if lists >= minimumTopCandidates {
			topCandidate = parent
			break
		}
	}

	if !r.isCandidate(topCandidate) {
		r.initializeNode(topCandidate, flags)
	}
	return topCandidate
}
