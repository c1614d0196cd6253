// Package readability implements the Readability content extraction algorithm
// over golang.org/x/net/html trees.
package readability

import (
	"regexp"
	"strings"
)

// Flags selects which heuristics a scoring pass applies.
type Flags uint8

// Strictness flags, relaxed in this order when a pass yields too little text.
const (
	FlagStripUnlikelys Flags = 1 << iota
	FlagWeightClasses
	FlagCleanConditionally

	FlagsAll = FlagStripUnlikelys | FlagWeightClasses | FlagCleanConditionally
)

var relaxOrder = []Flags{FlagStripUnlikelys, FlagWeightClasses, FlagCleanConditionally}

// Has reports whether flag is active.
func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}

// relax turns off the first still-active flag. ok is false when every flag is already off.
func (f Flags) relax() (next Flags, ok bool) {
	for _, flag := range relaxOrder {
		if f.Has(flag) {
			return f &^ flag, true
		}
	}
	return f, false
}

func (f Flags) String() string {
	var names []string
	if f.Has(FlagStripUnlikelys) {
		names = append(names, "strip-unlikelys")
	}
	if f.Has(FlagWeightClasses) {
		names = append(names, "weight-classes")
	}
	if f.Has(FlagCleanConditionally) {
		names = append(names, "clean-conditionally")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Default settings
const (
	// DefaultMaxElemsToParse is the maximum number of elements to parse (0 = no limit)
	DefaultMaxElemsToParse = 0

	// DefaultNTopCandidates is the number of top candidates to consider
	DefaultNTopCandidates = 5

	// DefaultCharThreshold is the minimum number of characters an accepted pass must yield
	DefaultCharThreshold = 500

	classWeight           = 25
	shareElementThreshold = 500
	minimumTopCandidates  = 3
)

// ClassesToPreserve are always kept by class cleaning; user classes are appended.
var ClassesToPreserve = []string{"page"}

// unlikelyRoles are ARIA roles removed while stripping unlikely candidates.
var unlikelyRoles = []string{"complementary", "list", "menu", "navigation", "alert", "status", "form"}

// presentationalAttributes are removed from every element of the article.
var presentationalAttributes = []string{"align", "background", "bgcolor", "border", "cellpadding", "cellspacing", "frame", "hspace", "rules", "style", "valign", "vspace"}

// Regular expressions used in the Readability algorithm
var (
	RegexpUnlikelyCandidates = regexp.MustCompile(`(?i)-ad-|ai2html|banner|breadcrumbs|combx|comment|community|cover-wrap|disqus|extra|footer|gdpr|header|legends|menu|related|remark|replies|rss|shoutbox|sidebar|skyscraper|social|sponsor|supplemental|ad-break|agegate|pagination|pager|popup|yom-hierarchical-nav|yom-hierarchical-nav-wrap|pager-wrap|pager-div|pager-inner|nav-|navigation|nav_|masthead|media-credit|meta|outbrain|promo|related|scroll|share|shoutbox|sidebar|skyscraper|social|share-bar|sponsor|subscription|taboola|taxonomy|terms-|terms_|-terms|_terms|ad-wrap`)
	RegexpMaybeCandidate     = regexp.MustCompile(`(?i)and|article|body|column|content|main|shadow`)
	RegexpPositive           = regexp.MustCompile(`(?i)article|body|content|entry|hentry|h-entry|main|page|pagination|post|text|blog|story`)
	RegexpNegative           = regexp.MustCompile(`(?i)hidden|^hid$| hid$| hid |^hid |banner|combx|comment|com-|contact|foot|footer|footnote|gdpr|masthead|media|meta|outbrain|promo|related|scroll|share|shoutbox|sidebar|skyscraper|sponsor|shopping|tags|tool|widget`)
	RegexpByline             = regexp.MustCompile(`(?i)byline|author|dateline|writtenby|p-author`)
	RegexpNormalize          = regexp.MustCompile(`\s{2,}`)
	RegexpVideos             = regexp.MustCompile(`(?i)//(www\.)?((dailymotion|youtube|youtube-nocookie|player\.vimeo|v\.qq)\.com|(archive|upload\.wikimedia)\.org|player\.twitch\.tv)`)
	RegexpShareElements      = regexp.MustCompile(`(?i)(\b|_)(share|sharedaddy)(\b|_)`)
	RegexpTokenize           = regexp.MustCompile(`\W+`)
	RegexpWhitespace         = regexp.MustCompile(`^\s*$`)
	RegexpHasContent         = regexp.MustCompile(`\S$`)
	RegexpHashURL            = regexp.MustCompile(`^#.+`)
	RegexpSrcsetURL          = regexp.MustCompile(`(\S+)(\s+[\d.]+[xw])?(\s*(?:,|$))`)
	RegexpB64DataURL         = regexp.MustCompile(`(?i)^data:\s*([^\s;,]+)\s*;\s*base64\s*,`)
	RegexpJSONLdArticleTypes = regexp.MustCompile(`^Article|AdvertiserContentArticle|NewsArticle|AnalysisNewsArticle|AskPublicNewsArticle|BackgroundNewsArticle|OpinionNewsArticle|ReportageNewsArticle|ReviewNewsArticle|Report|SatiricalArticle|ScholarlyArticle|MedicalScholarlyArticle|SocialMediaPosting|BlogPosting|LiveBlogPosting|DiscussionForumPosting|TechArticle|APIReference$`)

	regexpDisplayNone    = regexp.MustCompile(`(?i)display\s*:\s*none`)
	regexpImageExtension = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp)`)
	regexpLazySrcset     = regexp.MustCompile(`\.(jpg|jpeg|png|webp)\s+\d`)
	regexpLazySrc        = regexp.MustCompile(`^\s*\S+\.(jpg|jpeg|png|webp)\S*\s*$`)
	regexpBase64Marker   = regexp.MustCompile(`(?i)base64\s*`)
	regexpSentenceEnd    = regexp.MustCompile(`\.( |$)`)
	regexpWords          = regexp.MustCompile(`\s+`)

	regexpTitleSeparator = regexp.MustCompile(` [\|\-\\/>»] `)
	regexpTitleKeepHead  = regexp.MustCompile(`(.*)[\|\-\\/>»] .*`)
	regexpTitleKeepTail  = regexp.MustCompile(`[^\|\-\\/>»]*[\|\-\\/>»](.*)`)

	regexpMetaProperty = regexp.MustCompile(`(?i)\s*(article|dc|dcterm|og|twitter)\s*:\s*(author|creator|description|published_time|title|site_name)\s*`)
	regexpMetaName     = regexp.MustCompile(`(?i)^\s*(?:(dc|dcterm|og|twitter|weibo:(article|webpage))\s*[\.:]\s*)?(author|creator|description|title|site_name)\s*$`)
	regexpSchemaOrg    = regexp.MustCompile(`^https?://schema\.org/?$`)
	regexpCDATA        = regexp.MustCompile(`^\s*<!\[CDATA\[|\]\]>\s*$`)
)
