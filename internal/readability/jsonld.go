package readability

import (
	"encoding/json"
	"strings"

	"github.com/antchfx/htmlquery"
)

// jsonLDMetadata holds the article fields found in a schema.org JSON-LD block.
type jsonLDMetadata struct {
	Title         string
	Byline        string
	Excerpt       string
	SiteName      string
	DatePublished string
}

// getJSONLD reads the first schema.org article object from the document's
// application/ld+json scripts. Blocks that fail to decode are skipped.
func (r *Readability) getJSONLD() jsonLDMetadata {
	var metadata jsonLDMetadata

	for _, script := range htmlquery.Find(r.doc, `//script[@type="application/ld+json"]`) {
		content := regexpCDATA.ReplaceAllString(htmlquery.InnerText(script), "")

		var parsed any
		if err := json.Unmarshal([]byte(content), &parsed); err != nil {
			r.log.Debug().Err(WrapError(err, MetadataError, "getJSONLD", "")).Msg("skipping malformed JSON-LD block")
			continue
		}

		article := findJSONLDArticle(parsed)
		if article == nil {
			continue
		}

		name := jsonString(article["name"])
		headline := jsonString(article["headline"])
		switch {
		case name != "" && headline != "" && name != headline:
			// Prefer whichever matches the HTML title better.
			title := r.getArticleTitle()
			nameMatches := textSimilarity(name, title) > 0.75
			headlineMatches := textSimilarity(headline, title) > 0.75
			if headlineMatches && !nameMatches {
				metadata.Title = headline
			} else {
				metadata.Title = name
			}
		case name != "":
			metadata.Title = name
		case headline != "":
			metadata.Title = headline
		}

		metadata.Byline = jsonLDAuthor(article["author"])
		metadata.Excerpt = jsonString(article["description"])
		if publisher, ok := article["publisher"].(map[string]any); ok {
			metadata.SiteName = jsonString(publisher["name"])
		}
		metadata.DatePublished = jsonString(article["datePublished"])
		return metadata
	}

	return metadata
}

// findJSONLDArticle picks the article object out of a decoded JSON-LD value,
// looking inside top-level arrays and @graph.
func findJSONLDArticle(parsed any) map[string]any {
	if list, ok := parsed.([]any); ok {
		for _, item := range list {
			if obj, ok := item.(map[string]any); ok && isJSONLDArticleType(obj) {
				parsed = obj
				break
			}
		}
	}

	obj, ok := parsed.(map[string]any)
	if !ok || !isSchemaOrgContext(obj) {
		return nil
	}

	if _, hasType := obj["@type"]; !hasType {
		if graph, ok := obj["@graph"].([]any); ok {
			for _, item := range graph {
				if candidate, ok := item.(map[string]any); ok && isJSONLDArticleType(candidate) {
					obj = candidate
					break
				}
			}
		}
	}

	if !isJSONLDArticleType(obj) {
		return nil
	}
	return obj
}

func isSchemaOrgContext(obj map[string]any) bool {
	switch context := obj["@context"].(type) {
	case string:
		return regexpSchemaOrg.MatchString(context)
	case map[string]any:
		vocab, _ := context["@vocab"].(string)
		return regexpSchemaOrg.MatchString(vocab)
	}
	return false
}

func isJSONLDArticleType(obj map[string]any) bool {
	switch t := obj["@type"].(type) {
	case string:
		return RegexpJSONLdArticleTypes.MatchString(t)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && RegexpJSONLdArticleTypes.MatchString(s) {
				return true
			}
		}
	}
	return false
}

// jsonLDAuthor accepts a single author object or a list of them.
func jsonLDAuthor(v any) string {
	switch author := v.(type) {
	case map[string]any:
		return jsonString(author["name"])
	case []any:
		var names []string
		for _, item := range author {
			if obj, ok := item.(map[string]any); ok {
				if name := jsonString(obj["name"]); name != "" {
					names = append(names, name)
				}
			}
		}
		return strings.Join(names, ", ")
	case string:
		return strings.TrimSpace(author)
	}
	return ""
}

func jsonString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
