package readability

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// getInnerText gets the trimmed text content of a node with optional whitespace normalization
func getInnerText(n *html.Node, normalizeSpaces bool) string {
	text := strings.TrimSpace(textContent(n))
	if normalizeSpaces {
		text = RegexpNormalize.ReplaceAllString(text, " ")
	}
	return text
}

// charLength counts characters, not bytes.
func charLength(s string) int {
	return utf8.RuneCountInString(s)
}

// getCharCount counts occurrences of a delimiter in the normalized text
func getCharCount(n *html.Node, delimiter string) int {
	if delimiter == "" {
		delimiter = ","
	}
	return strings.Count(getInnerText(n, true), delimiter)
}

// getLinkDensity is the share of n's text inside anchors. Same-page fragment
// links count for 0.3 of their length.
func getLinkDensity(n *html.Node) float64 {
	textLength := charLength(getInnerText(n, true))
	if textLength == 0 {
		return 0
	}

	var linkLength float64
	for _, link := range getElementsByTagName(n, atom.A) {
		coefficient := 1.0
		if href := getAttr(link, "href"); href != "" && RegexpHashURL.MatchString(href) {
			coefficient = 0.3
		}
		linkLength += float64(charLength(getInnerText(link, true))) * coefficient
	}

	return linkLength / float64(textLength)
}

// getTextDensity is the share of n's text inside elements with the given tags.
func getTextDensity(n *html.Node, tags ...atom.Atom) float64 {
	textLength := charLength(getInnerText(n, true))
	if textLength == 0 {
		return 0
	}
	var childrenLength int
	for _, child := range getElementsByTagName(n, tags...) {
		childrenLength += charLength(getInnerText(child, true))
	}
	return float64(childrenLength) / float64(textLength)
}

// getClassWeight scores class and id against the positive and negative
// keyword lists. It is zero unless FlagWeightClasses is active.
func getClassWeight(n *html.Node, flags Flags) int {
	if !flags.Has(FlagWeightClasses) {
		return 0
	}

	weight := 0
	if class := getAttr(n, "class"); class != "" {
		if RegexpNegative.MatchString(class) {
			weight -= classWeight
		}
		if RegexpPositive.MatchString(class) {
			weight += classWeight
		}
	}
	if id := getAttr(n, "id"); id != "" {
		if RegexpNegative.MatchString(id) {
			weight -= classWeight
		}
		if RegexpPositive.MatchString(id) {
			weight += classWeight
		}
	}
	return weight
}

// wordCount counts the pieces of s split on whitespace runs. Leading or
// trailing whitespace yields an empty piece, which is counted.
func wordCount(s string) int {
	return len(regexpWords.Split(s, -1))
}

// textSimilarity is 1 minus the share of b's tokens (by length) missing from a.
func textSimilarity(a, b string) float64 {
	tokensA := tokenize(a)
	tokensB := tokenize(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(tokensA))
	for _, t := range tokensA {
		seen[t] = struct{}{}
	}
	var uniqB []string
	for _, t := range tokensB {
		if _, ok := seen[t]; !ok {
			uniqB = append(uniqB, t)
		}
	}
	distance := float64(len(strings.Join(uniqB, " "))) / float64(len(strings.Join(tokensB, " ")))
	return 1 - distance
}

func tokenize(s string) []string {
	var tokens []string
	for _, t := range RegexpTokenize.Split(strings.ToLower(s), -1) {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// isValidByline accepts trimmed text of 1 to 99 characters.
func isValidByline(text string) bool {
	length := charLength(strings.TrimSpace(text))
	return length > 0 && length < 100
}
