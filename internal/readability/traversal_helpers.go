package readability

import (
	"golang.org/x/net/html"
)

// getNextNode returns the element after n in depth-first order. The result is
// computed from the tree as it is now, so callers may mutate between steps.
func getNextNode(n *html.Node, ignoreSelfAndKids bool) *html.Node {
	if n == nil {
		return nil
	}
	if !ignoreSelfAndKids {
		if child := firstElementChild(n); child != nil {
			return child
		}
	}
	if next := nextElementSibling(n); next != nil {
		return next
	}
	for parent := n.Parent; parent != nil; parent = parent.Parent {
		if next := nextElementSibling(parent); next != nil {
			return next
		}
	}
	return nil
}

// removeAndGetNext removes n and returns the node that would have followed its subtree.
func removeAndGetNext(n *html.Node) *html.Node {
	next := getNextNode(n, true)
	detach(n)
	return next
}

// nextNonWhitespace skips text and comment siblings holding only whitespace,
// starting at n itself.
func nextNonWhitespace(n *html.Node) *html.Node {
	for n != nil && n.Type != html.ElementNode && RegexpWhitespace.MatchString(n.Data) {
		n = n.NextSibling
	}
	return n
}
