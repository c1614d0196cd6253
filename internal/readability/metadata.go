package readability

import (
	"html"
	"strings"

	"github.com/antchfx/htmlquery"
	nethtml "golang.org/x/net/html"

	"github.com/mrjoshuak/readerview/types"
)

// getArticleMetadata reads title, byline, excerpt, site name and publish time
// from <meta> tags, letting JSON-LD values take precedence.
func (r *Readability) getArticleMetadata(jsonLd jsonLDMetadata) types.Metadata {
	values := make(map[string]string)

	for _, meta := range htmlquery.Find(r.doc, "//meta") {
		content := strings.TrimSpace(htmlquery.SelectAttr(meta, "content"))
		if content == "" {
			continue
		}

		matched := false
		if property := htmlquery.SelectAttr(meta, "property"); property != "" {
			matches := regexpMetaProperty.FindAllString(property, -1)
			// Walk backwards so the first match in the attribute wins.
			for i := len(matches) - 1; i >= 0; i-- {
				values[normalizeMetaKey(matches[i])] = content
				matched = true
			}
		}

		if name := htmlquery.SelectAttr(meta, "name"); !matched && name != "" && regexpMetaName.MatchString(name) {
			key := strings.ReplaceAll(normalizeMetaKey(name), ".", ":")
			values[key] = content
		}
	}

	var metadata types.Metadata

	metadata.Title = firstNonEmpty(jsonLd.Title,
		values["dc:title"],
		values["dcterm:title"],
		values["og:title"],
		values["weibo:article:title"],
		values["weibo:webpage:title"],
		values["title"],
		values["twitter:title"])
	if metadata.Title == "" {
		metadata.Title = r.getArticleTitle()
	}

	metadata.Byline = firstNonEmpty(jsonLd.Byline,
		values["dc:creator"],
		values["dcterm:creator"],
		values["author"])

	metadata.Excerpt = firstNonEmpty(jsonLd.Excerpt,
		values["dc:description"],
		values["dcterm:description"],
		values["og:description"],
		values["weibo:article:description"],
		values["weibo:webpage:description"],
		values["description"],
		values["twitter:description"])

	metadata.SiteName = firstNonEmpty(jsonLd.SiteName, values["og:site_name"])
	metadata.PublishedTime = firstNonEmpty(jsonLd.DatePublished, values["article:published_time"])

	metadata.Title = html.UnescapeString(metadata.Title)
	metadata.Byline = html.UnescapeString(metadata.Byline)
	metadata.Excerpt = html.UnescapeString(metadata.Excerpt)
	metadata.SiteName = html.UnescapeString(metadata.SiteName)
	metadata.PublishedTime = html.UnescapeString(metadata.PublishedTime)

	return metadata
}

func normalizeMetaKey(key string) string {
	return strings.Join(strings.Fields(strings.ToLower(key)), "")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// checkByline records the text of the first byline-looking node and reports
// whether the node should be dropped from the content.
func (r *Readability) checkByline(n *nethtml.Node, matchString string) bool {
	if r.articleByline != "" {
		return false
	}

	rel := getAttr(n, "rel")
	itemprop := getAttr(n, "itemprop")
	if rel != "author" && !strings.Contains(itemprop, "author") && !RegexpByline.MatchString(matchString) {
		return false
	}

	text := textContent(n)
	if !isValidByline(text) {
		return false
	}
	r.articleByline = strings.TrimSpace(text)
	return true
}
