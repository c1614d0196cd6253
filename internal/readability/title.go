package readability

import (
	"slices"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html/atom"
)

// getArticleTitle derives a title from <title>, trimming site names and
// section paths, and falling back to a lone <h1> for odd-length titles.
func (r *Readability) getArticleTitle() string {
	var origTitle string
	if titleNode := htmlquery.FindOne(r.doc, "//title"); titleNode != nil {
		origTitle = strings.Join(strings.Fields(textContent(titleNode)), " ")
	}
	curTitle := origTitle

	hadSeparator := false
	switch {
	case regexpTitleSeparator.MatchString(curTitle):
		hadSeparator = true
		curTitle = regexpTitleKeepHead.ReplaceAllString(origTitle, "$1")
		if wordCount(curTitle) < 3 {
			curTitle = regexpTitleKeepTail.ReplaceAllString(origTitle, "$1")
		}

	case strings.Contains(curTitle, ": "):
		if !r.headingMatches(curTitle) {
			curTitle = origTitle[strings.LastIndex(origTitle, ":")+1:]
			if wordCount(curTitle) < 3 {
				curTitle = origTitle[strings.Index(origTitle, ":")+1:]
			} else if wordCount(origTitle[:strings.Index(origTitle, ":")]) > 5 {
				curTitle = origTitle
			}
		}

	case charLength(curTitle) > 150 || charLength(curTitle) < 15:
		if hOnes := getElementsByTagName(r.doc, atom.H1); len(hOnes) == 1 {
			curTitle = getInnerText(hOnes[0], false)
		}
	}

	curTitle = strings.Join(strings.Fields(curTitle), " ")

	// Short results are suspicious unless they are the title with one
	// separator-delimited segment removed.
	if origTitle != "" && len(strings.Fields(curTitle)) <= 4 &&
		!(hadSeparator && isTitleMinusOneSegment(origTitle, curTitle)) {
		curTitle = origTitle
	}

	return curTitle
}

// headingMatches reports whether an <h1> or <h2> has exactly the given text.
func (r *Readability) headingMatches(title string) bool {
	title = strings.TrimSpace(title)
	for _, heading := range getElementsByTagName(r.doc, atom.H1, atom.H2) {
		if strings.TrimSpace(textContent(heading)) == title {
			return true
		}
	}
	return false
}

// isTitleMinusOneSegment reports whether candidate is title with exactly one
// of its separator-delimited segments dropped.
func isTitleMinusOneSegment(title, candidate string) bool {
	segments := regexpTitleSeparator.Split(title, -1)
	if len(segments) < 2 {
		return false
	}
	want := strings.Fields(candidate)
	for i := range segments {
		var words []string
		for j, segment := range segments {
			if j != i {
				words = append(words, strings.Fields(segment)...)
			}
		}
		if slices.Equal(words, want) {
			return true
		}
	}
	return false
}
