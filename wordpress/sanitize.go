package wordpress

import (
	"strings"

	"golang.org/x/net/html"
)

// droppedElements are removed together with their subtrees before the
// article body is submitted.
var droppedElements = map[string]bool{
	"script": true,
	"style":  true,
	"iframe": true,
}

// SanitizeHTML strips script/style/iframe subtrees and inline event-handler
// attributes from body markup by walking the parsed node tree.
//
// This is a minimal denylist sanitizer, not a full HTML sanitizer: encoded
// or obfuscated payloads outside these patterns pass through. The backend
// is trusted to apply its own filtering on top.
func SanitizeHTML(input string) (string, error) {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return "", err
	}

	body := findBody(doc)
	if body == nil {
		return "", nil
	}
	sanitizeNode(body)

	var sb strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

func sanitizeNode(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type == html.ElementNode && droppedElements[c.Data] {
			n.RemoveChild(c)
			continue
		}
		sanitizeNode(c)
	}

	if n.Type == html.ElementNode {
		attrs := n.Attr[:0]
		for _, a := range n.Attr {
			if strings.HasPrefix(strings.ToLower(a.Key), "on") {
				continue
			}
			attrs = append(attrs, a)
		}
		n.Attr = attrs
	}
}
