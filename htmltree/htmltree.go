// Package htmltree builds reflow tree snapshots from parsed HTML.
//
// It is a thin stand-in for a real tree source: element nodes map onto
// reflow kinds, inline styles map onto the property table (unrecognized
// declarations keep their raw name and classify conservatively), and
// data-/aria- attributes land in the metadata fields. Whitespace-only text
// nodes and comments are dropped.
package htmltree

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/weftui/reflow"
)

// Parse reads an HTML document and returns the snapshot rooted at <body>,
// or at the document root if there is no body.
func Parse(r io.Reader) (*reflow.Tree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmltree: parse: %w", err)
	}
	root := findRoot(doc)
	if root == nil {
		return nil, fmt.Errorf("htmltree: document has no element content")
	}
	n := convert(root)
	if n == nil {
		return nil, fmt.Errorf("htmltree: document root is empty")
	}
	return reflow.Build(n), nil
}

// ParseFragment reads a snippet without document structure and wraps it in
// a box root, so two fragments can be diffed directly.
func ParseFragment(r io.Reader) (*reflow.Tree, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(r, ctx)
	if err != nil {
		return nil, fmt.Errorf("htmltree: parse fragment: %w", err)
	}
	root := reflow.NewNode(reflow.KindBox)
	for _, hn := range nodes {
		if c := convert(hn); c != nil {
			root.Append(c)
		}
	}
	return reflow.Build(root), nil
}

func findRoot(doc *html.Node) *html.Node {
	var body, first *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if n.DataAtom == atom.Body {
				body = n
				return
			}
			if first == nil {
				first = n
			}
		}
		for c := n.FirstChild; c != nil && body == nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if body != nil {
		return body
	}
	return first
}

func convert(hn *html.Node) *reflow.Node {
	switch hn.Type {
	case html.TextNode:
		text := strings.TrimSpace(hn.Data)
		if text == "" {
			return nil
		}
		return reflow.NewNode(reflow.KindText, reflow.WithText(text))
	case html.ElementNode:
		n := reflow.NewNode(kindOf(hn), attrOptions(hn)...)
		for c := hn.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				n.Append(child)
			}
		}
		return n
	default:
		// Comments, doctypes, and raw documents carry no visual content.
		return nil
	}
}

func kindOf(hn *html.Node) reflow.Kind {
	switch hn.DataAtom {
	case atom.Img:
		return reflow.KindImage
	case atom.Video, atom.Canvas, atom.Iframe, atom.Embed, atom.Object, atom.Audio:
		return reflow.KindEmbed
	default:
		return reflow.KindBox
	}
}

func attrOptions(hn *html.Node) []reflow.NodeOption {
	var opts []reflow.NodeOption
	var src string
	var natW, natH int

	for _, a := range hn.Attr {
		switch {
		case a.Key == "id":
			opts = append(opts, reflow.WithID(a.Val))
		case a.Key == "class":
			opts = append(opts, reflow.WithClasses(strings.Fields(a.Val)...))
		case a.Key == "style":
			opts = append(opts, styleOptions(a.Val)...)
		case a.Key == "data-key":
			opts = append(opts, reflow.WithKey(xxhash.Sum64String(a.Val)))
		case strings.HasPrefix(a.Key, "data-"):
			opts = append(opts, reflow.WithDataset(strings.TrimPrefix(a.Key, "data-"), a.Val))
		case a.Key == "aria-label":
			opts = append(opts, reflow.WithLabel(a.Val))
		case a.Key == "tabindex":
			if idx, err := strconv.Atoi(a.Val); err == nil {
				opts = append(opts, reflow.WithTabIndex(idx))
			}
		case a.Key == "src":
			src = a.Val
		case a.Key == "width":
			natW, _ = strconv.Atoi(a.Val)
		case a.Key == "height":
			natH, _ = strconv.Atoi(a.Val)
		case strings.HasPrefix(a.Key, "on"):
			// The handler body is opaque; its hash is its identity.
			opts = append(opts, reflow.WithBehavior(strings.TrimPrefix(a.Key, "on"), xxhash.Sum64String(a.Val)))
		}
	}

	if src != "" {
		opts = append(opts, reflow.WithResource(src, natW, natH))
	}
	return opts
}

// styleOptions maps an inline style attribute onto the property table.
// Unrecognized declarations are kept under their raw name; they compare by
// identity and classify as full-subtree, never silently dropped.
func styleOptions(style string) []reflow.NodeOption {
	var opts []reflow.NodeOption
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		if prop, known := reflow.ParseProperty(name); known {
			opts = append(opts, reflow.WithStyle(prop, value))
		} else {
			opts = append(opts, reflow.WithRawStyle(name, value))
		}
	}
	return opts
}
