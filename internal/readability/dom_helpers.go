package readability

import (
	"strings"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func getAttr(n *html.Node, key string) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return dom.GetAttribute(n, key)
}

func hasAttr(n *html.Node, key string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	return dom.HasAttribute(n, key)
}

func setAttr(n *html.Node, key, val string) {
	dom.SetAttribute(n, key, val)
}

func removeAttr(n *html.Node, key string) {
	dom.RemoveAttribute(n, key)
}

// matchString is the class and id of n joined by a space, the string the
// keyword regexes are tested against.
func matchString(n *html.Node) string {
	return getAttr(n, "class") + " " + getAttr(n, "id")
}

// textContent concatenates every descendant text node.
func textContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode || n.Type == html.CommentNode {
		return n.Data
	}
	return dom.TextContent(n)
}

func innerHTML(n *html.Node) string {
	return dom.InnerHTML(n)
}

// children returns the element children of n.
func children(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	return dom.Children(n)
}

func firstElementChild(n *html.Node) *html.Node {
	return dom.FirstElementChild(n)
}

func nextElementSibling(n *html.Node) *html.Node {
	return dom.NextElementSibling(n)
}

func previousElementSibling(n *html.Node) *html.Node {
	return dom.PreviousElementSibling(n)
}

// getElementsByTagName returns the element descendants of root matching any
// of tags, in document order. root itself is never included.
func getElementsByTagName(root *html.Node, tags ...atom.Atom) []*html.Node {
	return collectElements(root, func(n *html.Node) bool { return isTag(n, tags...) })
}

// getElementsByCategory is getElementsByTagName for a tag category.
func getElementsByCategory(root *html.Node, cat tagCategory) []*html.Node {
	return collectElements(root, func(n *html.Node) bool { return categoryOf(n).has(cat) })
}

func collectElements(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var nodes []*html.Node
	if root == nil {
		return nodes
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if match(c) {
				nodes = append(nodes, c)
			}
			walk(c)
		}
	}
	walk(root)
	return nodes
}

// createElement is a helper function that creates a detached element with the given tag name
func createElement(tagName string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tagName,
		DataAtom: atom.Lookup([]byte(tagName)),
	}
}

func createTextNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// detach removes n from its parent, if it has one.
func detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// appendChild moves child to the end of parent's children.
func appendChild(parent, child *html.Node) {
	detach(child)
	parent.AppendChild(child)
}

// replaceNode puts replacement where old is and detaches old.
func replaceNode(old, replacement *html.Node) {
	parent := old.Parent
	if parent == nil {
		return
	}
	detach(replacement)
	parent.InsertBefore(replacement, old)
	parent.RemoveChild(old)
}

// setNodeTag replaces n with an element of another tag carrying the same
// attributes, children and score record. It returns the replacement.
func (r *Readability) setNodeTag(n *html.Node, tagName string) *html.Node {
	replacement := createElement(tagName)
	for n.FirstChild != nil {
		appendChild(replacement, n.FirstChild)
	}
	replaceNode(n, replacement)
	if score, ok := r.scores[n]; ok {
		r.scores[replacement] = score
	}
	replacement.Attr = append(replacement.Attr, n.Attr...)
	return replacement
}

// replaceNodeTags retags every node in the list
func (r *Readability) replaceNodeTags(nodes []*html.Node, tagName string) {
	for _, n := range nodes {
		r.setNodeTag(n, tagName)
	}
}

// removeNodes removes nodes in reverse order, skipping detached ones and
// ones the filter rejects.
func removeNodes(nodes []*html.Node, filter func(*html.Node) bool) {
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.Parent == nil {
			continue
		}
		if filter == nil || filter(n) {
			n.Parent.RemoveChild(n)
		}
	}
}

// hasAncestorTag checks if the node has an ancestor with the given tag.
// A non-positive maxDepth walks all the way up.
func hasAncestorTag(n *html.Node, tag atom.Atom, maxDepth int, filter func(*html.Node) bool) bool {
	depth := 0
	for n.Parent != nil {
		if maxDepth > 0 && depth > maxDepth {
			return false
		}
		if isTag(n.Parent, tag) && (filter == nil || filter(n.Parent)) {
			return true
		}
		n = n.Parent
		depth++
	}
	return false
}

// getNodeAncestors gets a list of ancestors for a node, optionally limited by depth
func getNodeAncestors(n *html.Node, maxDepth int) []*html.Node {
	var ancestors []*html.Node
	for i := 0; n.Parent != nil; {
		ancestors = append(ancestors, n.Parent)
		i++
		if maxDepth > 0 && i == maxDepth {
			break
		}
		n = n.Parent
	}
	return ancestors
}

func containsNode(nodes []*html.Node, n *html.Node) bool {
	for _, candidate := range nodes {
		if candidate == n {
			return true
		}
	}
	return false
}

// isElementWithoutContent reports whether n has no text and no children
// besides <br> and <hr>.
func isElementWithoutContent(n *html.Node) bool {
	if n.Type != html.ElementNode || strings.TrimSpace(textContent(n)) != "" {
		return false
	}
	kids := children(n)
	if len(kids) == 0 {
		return true
	}
	return len(kids) == len(getElementsByTagName(n, atom.Br, atom.Hr))
}

// hasSingleTagInsideElement reports whether n's only element child has the
// given tag and n has no text of its own.
func hasSingleTagInsideElement(n *html.Node, tag atom.Atom) bool {
	kids := children(n)
	if len(kids) != 1 || !isTag(kids[0], tag) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && RegexpHasContent.MatchString(c.Data) {
			return false
		}
	}
	return true
}

func hasChildBlockElement(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if categoryOf(c).has(catDivToP) || hasChildBlockElement(c) {
			return true
		}
	}
	return false
}

// isPhrasingContent reports whether n is inline content: text, a phrasing
// element, or an <a>/<del>/<ins> holding only phrasing content.
func isPhrasingContent(n *html.Node) bool {
	if n.Type == html.TextNode || categoryOf(n).has(catPhrasing) {
		return true
	}
	if !isTag(n, atom.A, atom.Del, atom.Ins) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !isPhrasingContent(c) {
			return false
		}
	}
	return true
}

func isWhitespace(n *html.Node) bool {
	return (n.Type == html.TextNode && strings.TrimSpace(n.Data) == "") || isTag(n, atom.Br)
}

// isProbablyVisible rejects display:none, the hidden attribute and
// aria-hidden="true" unless the node is a fallback image.
func isProbablyVisible(n *html.Node) bool {
	if regexpDisplayNone.MatchString(getAttr(n, "style")) {
		return false
	}
	if hasAttr(n, "hidden") {
		return false
	}
	if getAttr(n, "aria-hidden") == "true" && !strings.Contains(getAttr(n, "class"), "fallback-image") {
		return false
	}
	return true
}

// isSingleImage reports whether n is an <img> or wraps exactly one through a
// chain of single, text-free children.
func isSingleImage(n *html.Node) bool {
	if isTag(n, atom.Img) {
		return true
	}
	kids := children(n)
	if len(kids) != 1 || strings.TrimSpace(textContent(n)) != "" {
		return false
	}
	return isSingleImage(kids[0])
}
