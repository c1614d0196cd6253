package readability

import (
	"math"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// appendSiblings moves the top candidate and the siblings that look like part
// of the same article into a new container. Siblings without an alter-exempt
// tag are retagged <div>.
func (r *Readability) appendSiblings(topCandidate *html.Node) *html.Node {
	articleContent := createElement("div")

	topScore := r.scoreOf(topCandidate)
	siblingScoreThreshold := math.Max(10, topScore*0.2)
	topClass := getAttr(topCandidate, "class")

	parent := topCandidate.Parent
	if parent == nil {
		appendChild(articleContent, topCandidate)
		return articleContent
	}

	for _, sibling := range children(parent) {
		if !r.shouldAppendSibling(sibling, topCandidate, topClass, topScore, siblingScoreThreshold) {
			continue
		}

		r.log.Debug().Str("tag", sibling.Data).Float64("score", r.scoreOf(sibling)).Msg("appending sibling")
		if !categoryOf(sibling).has(catAlterExempt) {
			sibling = r.setNodeTag(sibling, "div")
		}
		appendChild(articleContent, sibling)
	}

	return articleContent
}

func (r *Readability) shouldAppendSibling(sibling, topCandidate *html.Node, topClass string, topScore, threshold float64) bool {
	if sibling == topCandidate {
		return true
	}

	var contentBonus float64
	if topClass != "" && getAttr(sibling, "class") == topClass {
		contentBonus += topScore * 0.2
	}

	if r.isCandidate(sibling) && r.scoreOf(sibling)+contentBonus >= threshold {
		return true
	}

	if !isTag(sibling, atom.P) {
		return false
	}

	linkDensity := getLinkDensity(sibling)
	nodeContent := getInnerText(sibling, true)
	nodeLength := charLength(nodeContent)

	switch {
	case nodeLength > 80 && linkDensity < 0.25:
		return true
	case nodeLength < 80 && nodeLength > 0 && linkDensity == 0 &&
		regexpSentenceEnd.MatchString(nodeContent):
		return true
	}
	return false
}
