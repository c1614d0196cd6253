package readerview

import (
	"github.com/mrjoshuak/readerview/types"
)

// Article represents the extracted content and metadata from a webpage.
// It contains the title, byline, text direction and language, the article
// HTML and its plain text, the excerpt, site name and publication time.
type Article = types.Article

// Metadata is what a document says about itself in <meta> tags and JSON-LD.
type Metadata = types.Metadata
