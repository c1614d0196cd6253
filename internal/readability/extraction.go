package readability

import (
	"sort"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// grabArticle runs scoring passes over page until one yields at least
// CharThreshold characters. Each failed pass restores the page from a
// snapshot and relaxes the next strictness flag; when none is left, the
// longest attempt wins. It returns nil when every attempt came up empty.
func (r *Readability) grabArticle(page *html.Node) *html.Node {
	pageDoc := goquery.NewDocumentFromNode(page)
	pageCache, err := pageDoc.Html()
	if err != nil {
		r.log.Warn().Err(WrapExtractionError(err, "grabArticle", "failed to snapshot page")).Msg("retries disabled")
	}

	r.attempts = r.attempts[:0]
	r.passes = 0
	flags := FlagsAll

	for {
		r.passes++
		r.resetPassState()
		r.log.Debug().Int("pass", r.passes).Stringer("flags", flags).Msg("starting pass")

		result := r.runPass(page, flags)
		result.textLength = charLength(getInnerText(result.content, true))

		if result.textLength >= r.options.CharThreshold {
			r.articleDir = getArticleDir(result)
			return result.content
		}

		r.log.Debug().Int("pass", r.passes).Int("length", result.textLength).Msg("pass yielded too little text")
		r.attempts = append(r.attempts, result)

		next, ok := flags.relax()
		if ok && err == nil {
			pageDoc.SetHtml(pageCache)
			flags = next
			continue
		}

		if err == nil {
			pageDoc.SetHtml(pageCache)
		}

		sort.SliceStable(r.attempts, func(i, j int) bool {
			return r.attempts[i].textLength > r.attempts[j].textLength
		})
		best := r.attempts[0]
		if best.textLength == 0 {
			r.log.Debug().Int("passes", r.passes).Msg("no content found")
			return nil
		}
		r.articleDir = getArticleDir(best)
		return best.content
	}
}

// runPass cleans the page, scores it, picks the top candidate and assembles
// the article container.
func (r *Readability) runPass(page *html.Node, flags Flags) attempt {
	r.cleanPage(page, flags)

	elementsToScore := r.collectElementsToScore(page, flags)
	candidates := r.scoreElements(elementsToScore, flags)
	topCandidates := r.rankCandidates(candidates)

	topCandidate, created := r.selectTopCandidate(page, topCandidates, flags)
	parent := topCandidate.Parent

	articleContent := r.appendSiblings(topCandidate)
	r.prepArticle(articleContent, flags)
	wrapPage(articleContent, topCandidate, created)

	return attempt{
		content:      articleContent,
		topCandidate: topCandidate,
		parent:       parent,
	}
}

// wrapPage gives the article a single page element. A synthesized top
// candidate already is one.
func wrapPage(articleContent, topCandidate *html.Node, created bool) {
	if created {
		setAttr(topCandidate, "id", "readability-page-1")
		setAttr(topCandidate, "class", "page")
		return
	}

	div := createElement("div")
	setAttr(div, "id", "readability-page-1")
	setAttr(div, "class", "page")
	for articleContent.FirstChild != nil {
		appendChild(div, articleContent.FirstChild)
	}
	articleContent.AppendChild(div)
}

// getArticleDir returns the first dir attribute found on the top candidate's
// parent, the candidate itself or the parent's ancestors.
func getArticleDir(a attempt) string {
	nodes := []*html.Node{a.parent, a.topCandidate}
	if a.parent != nil {
		nodes = append(nodes, getNodeAncestors(a.parent, 0)...)
	}
	for _, n := range nodes {
		if n == nil || n.Type != html.ElementNode {
			continue
		}
		if dir := getAttr(n, "dir"); dir != "" {
			return dir
		}
	}
	return ""
}
