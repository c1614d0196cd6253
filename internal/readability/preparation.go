package readability

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// prepDocument removes styles, turns <br> runs into paragraphs and replaces
// <font> with <span>.
func (r *Readability) prepDocument() {
	removeNodes(getElementsByTagName(r.doc, atom.Style), nil)

	if body := findFirst(r.doc, atom.Body); body != nil {
		r.replaceBrs(body)
	}

	r.replaceNodeTags(getElementsByTagName(r.doc, atom.Font), "span")
}

// findFirst returns the first element descendant of root with the given tag.
func findFirst(root *html.Node, tag atom.Atom) *html.Node {
	if nodes := getElementsByTagName(root, tag); len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

// replaceBrs replaces two or more successive <br> with a single <p> that
// absorbs the phrasing content following them.
//
//	<div>foo<br>bar<br> <br><br>abc</div>
//
// becomes
//
//	<div>foo<br>bar<p> abc</p></div>
func (r *Readability) replaceBrs(elem *html.Node) {
	for _, br := range getElementsByTagName(elem, atom.Br) {
		if br.Parent == nil {
			continue
		}
		next := br.NextSibling

		replaced := false
		for {
			next = nextNonWhitespace(next)
			if next == nil || !isTag(next, atom.Br) {
				break
			}
			replaced = true
			brSibling := next.NextSibling
			detach(next)
			next = brSibling
		}
		if !replaced {
			continue
		}

		p := createElement("p")
		replaceNode(br, p)

		next = p.NextSibling
		for next != nil {
			if isTag(next, atom.Br) {
				if nextElem := nextNonWhitespace(next.NextSibling); isTag(nextElem, atom.Br) {
					break
				}
			}
			if !isPhrasingContent(next) {
				break
			}
			sibling := next.NextSibling
			appendChild(p, next)
			next = sibling
		}

		for p.LastChild != nil && isWhitespace(p.LastChild) {
			p.RemoveChild(p.LastChild)
		}

		if isTag(p.Parent, atom.P) {
			r.setNodeTag(p.Parent, "div")
		}
	}
}

// unwrapNoscriptImages drops placeholder images without any source and lets a
// <noscript> single-image fallback replace the lazy image in front of it.
func (r *Readability) unwrapNoscriptImages() {
	for _, img := range getElementsByTagName(r.doc, atom.Img) {
		if hasImageSource(img) {
			continue
		}
		detach(img)
	}

	for _, noscript := range getElementsByTagName(r.doc, atom.Noscript) {
		if noscript.Parent == nil {
			continue
		}
		tmp := createElement("div")
		nodes, err := html.ParseFragment(strings.NewReader(textContent(noscript)), tmp)
		if err != nil {
			continue
		}
		for _, n := range nodes {
			tmp.AppendChild(n)
		}
		if !isSingleImage(tmp) {
			continue
		}

		prevElement := previousElementSibling(noscript)
		if prevElement == nil || !isSingleImage(prevElement) {
			continue
		}
		prevImg := prevElement
		if !isTag(prevImg, atom.Img) {
			prevImg = findFirst(prevElement, atom.Img)
		}
		newImg := findFirst(tmp, atom.Img)

		for _, attr := range prevImg.Attr {
			if attr.Val == "" {
				continue
			}
			if attr.Key != "src" && attr.Key != "srcset" && !regexpImageExtension.MatchString(attr.Val) {
				continue
			}
			if getAttr(newImg, attr.Key) == attr.Val {
				continue
			}
			name := attr.Key
			if hasAttr(newImg, name) {
				name = "data-old-" + name
			}
			setAttr(newImg, name, attr.Val)
		}

		replaceNode(prevElement, firstElementChild(tmp))
		detach(noscript)
	}
}

func hasImageSource(img *html.Node) bool {
	for _, attr := range img.Attr {
		switch attr.Key {
		case "src", "srcset", "data-src", "data-srcset":
			return true
		}
	}
	return false
}

// fixLazyImages drops tiny inlined placeholder sources and copies lazy-load
// attributes that look like image URLs into src or srcset.
func (r *Readability) fixLazyImages(root *html.Node) {
	for _, elem := range getElementsByTagName(root, atom.Img, atom.Picture, atom.Figure) {
		var src, srcset string
		if isTag(elem, atom.Img) {
			src = getAttr(elem, "src")
			srcset = getAttr(elem, "srcset")
		}

		if parts := RegexpB64DataURL.FindStringSubmatch(src); parts != nil {
			if parts[1] == "image/svg+xml" {
				continue
			}

			srcCouldBeRemoved := false
			for _, attr := range elem.Attr {
				if attr.Key == "src" {
					continue
				}
				if regexpImageExtension.MatchString(attr.Val) {
					srcCouldBeRemoved = true
					break
				}
			}

			if srcCouldBeRemoved {
				b64Starts := regexpBase64Marker.FindStringIndex(src)[0] + 7
				if len(src)-b64Starts < 133 {
					removeAttr(elem, "src")
					src = ""
				}
			}
		}

		if (src != "" || (srcset != "" && srcset != "null")) &&
			!strings.Contains(strings.ToLower(getAttr(elem, "class")), "lazy") {
			continue
		}

		attrs := append([]html.Attribute(nil), elem.Attr...)
		for _, attr := range attrs {
			if attr.Key == "src" || attr.Key == "srcset" || attr.Key == "alt" {
				continue
			}
			var copyTo string
			if regexpLazySrcset.MatchString(attr.Val) {
				copyTo = "srcset"
			} else if regexpLazySrc.MatchString(attr.Val) {
				copyTo = "src"
			}
			if copyTo == "" {
				continue
			}
			switch elem.DataAtom {
			case atom.Img, atom.Picture:
				setAttr(elem, copyTo, attr.Val)
			case atom.Figure:
				if len(getElementsByTagName(elem, atom.Img, atom.Picture)) == 0 {
					img := createElement("img")
					setAttr(img, copyTo, attr.Val)
					elem.AppendChild(img)
				}
			}
		}
	}
}

// cleanStyles strips presentational attributes from e and its descendants,
// leaving <svg> subtrees alone.
func cleanStyles(e *html.Node) {
	if e == nil || isTag(e, atom.Svg) {
		return
	}
	for _, attr := range presentationalAttributes {
		removeAttr(e, attr)
	}
	if categoryOf(e).has(catDeprecatedSize) {
		removeAttr(e, "width")
		removeAttr(e, "height")
	}
	for cur := firstElementChild(e); cur != nil; cur = nextElementSibling(cur) {
		cleanStyles(cur)
	}
}

// postProcessContent runs the final passes over the accepted article.
func (r *Readability) postProcessContent(content *html.Node) {
	r.fixRelativeURIs(content)
	r.simplifyNestedElements(content)
	if !r.options.KeepClasses {
		r.cleanClasses(content)
	}
}

// toAbsoluteURI resolves uri against the base URI. Fragment links stay as they
// are when the document has no separate base; malformed values are kept verbatim.
func (r *Readability) toAbsoluteURI(uri string) string {
	if strings.HasPrefix(uri, "#") && sameURL(r.baseURI, r.documentURI) {
		return uri
	}
	ref, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		r.log.Warn().Err(err).Str("uri", uri).Msg("keeping malformed URI")
		return uri
	}
	if r.baseURI == nil {
		if ref.IsAbs() {
			return ref.String()
		}
		return uri
	}
	return r.baseURI.ResolveReference(ref).String()
}

func sameURL(a, b *url.URL) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}

func (r *Readability) fixRelativeURIs(content *html.Node) {
	for _, link := range getElementsByTagName(content, atom.A) {
		href := getAttr(link, "href")
		if href == "" {
			continue
		}
		if strings.HasPrefix(href, "javascript:") {
			replaceNode(link, createTextNode(textContent(link)))
			continue
		}
		setAttr(link, "href", r.toAbsoluteURI(href))
	}

	for _, media := range getElementsByCategory(content, catMedia) {
		if src := getAttr(media, "src"); src != "" {
			setAttr(media, "src", r.toAbsoluteURI(src))
		}
		if poster := getAttr(media, "poster"); poster != "" {
			setAttr(media, "poster", r.toAbsoluteURI(poster))
		}
		if srcset := getAttr(media, "srcset"); srcset != "" {
			setAttr(media, "srcset", r.absolutizeSrcset(srcset))
		}
	}
}

// absolutizeSrcset resolves the URL of each candidate, keeping descriptors and separators.
func (r *Readability) absolutizeSrcset(srcset string) string {
	var b strings.Builder
	last := 0
	for _, m := range RegexpSrcsetURL.FindAllStringSubmatchIndex(srcset, -1) {
		b.WriteString(srcset[last:m[0]])
		b.WriteString(r.toAbsoluteURI(srcset[m[2]:m[3]]))
		if m[4] >= 0 {
			b.WriteString(srcset[m[4]:m[5]])
		}
		b.WriteString(srcset[m[6]:m[7]])
		last = m[1]
	}
	b.WriteString(srcset[last:])
	return b.String()
}

// simplifyNestedElements removes empty <div>/<section> wrappers and folds a
// wrapper holding a single <div>/<section> into that child.
func (r *Readability) simplifyNestedElements(content *html.Node) {
	node := content
	for node != nil {
		if node.Parent != nil && isTag(node, atom.Div, atom.Section) &&
			!strings.HasPrefix(getAttr(node, "id"), "readability") {
			if isElementWithoutContent(node) {
				node = removeAndGetNext(node)
				continue
			}
			if hasSingleTagInsideElement(node, atom.Div) || hasSingleTagInsideElement(node, atom.Section) {
				child := children(node)[0]
				for _, attr := range node.Attr {
					setAttr(child, attr.Key, attr.Val)
				}
				replaceNode(node, child)
				node = child
				continue
			}
		}
		node = getNextNode(node, false)
	}
}

// cleanClasses removes every class not in the preserve list, recursively.
func (r *Readability) cleanClasses(n *html.Node) {
	var kept []string
	for _, class := range strings.Fields(getAttr(n, "class")) {
		if containsString(r.options.ClassesToPreserve, class) {
			kept = append(kept, class)
		}
	}
	if len(kept) > 0 {
		setAttr(n, "class", strings.Join(kept, " "))
	} else {
		removeAttr(n, "class")
	}

	for child := firstElementChild(n); child != nil; child = nextElementSibling(child) {
		r.cleanClasses(child)
	}
}

func containsString(slice []string, s string) bool {
	for _, item := range slice {
		if item == s {
			return true
		}
	}
	return false
}
