/*
Package readerview finds the main article of an HTML page and returns it as
clean HTML with its metadata. It is designed to remove navigation,
advertisements, and other distractions, leaving only the article content.

Basic Usage:

    import "github.com/mrjoshuak/readerview"

    // Create a new extractor
    ext := readerview.New()

    // Extract from HTML string
    article, err := ext.ExtractFromHTML(htmlString, nil)
    if err != nil {
        // errors.Is(err, readerview.ErrNoContent) when nothing looked like an article
    }

    // Access article data
    fmt.Printf("Title: %s\n", article.Title)
    fmt.Printf("Byline: %s\n", article.Byline)
    fmt.Printf("Excerpt: %s\n", article.Excerpt)
    fmt.Printf("Content: %s\n", article.Content)
    fmt.Printf("Text: %s\n", article.TextContent)

Advanced Usage with Options:

    // Create a new extractor with custom options
    ext := readerview.New(
        readerview.WithPageURL("https://example.com/news/story.html"),
        readerview.WithSanitizer(bluemonday.UGCPolicy()),
        readerview.WithTimeout(time.Second*60),
    )

    // Extract from a reader (like a file or HTTP response)
    article, err := ext.ExtractFromReader(resp.Body, nil)

Extraction runs several passes over the document. When a pass yields fewer
characters than the threshold, the document is restored and the next pass runs
with one heuristic switched off: first stripping of unlikely candidates, then
class and id weighting, then conditional cleaning. If no pass reaches the
threshold the longest attempt is returned.

Features:

- Article content, title, byline, excerpt, site name and publication date
- Metadata from <meta> tags and JSON-LD
- Relative links and image sources resolved against the page URL
- Optional bluemonday sanitizing of the output
- Configurable timeout for extraction process
*/
package readerview
