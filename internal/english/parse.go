package english

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParseError reports a document that is not well formed.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid HTML at byte %d: %s", e.Offset, e.Msg)
}

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {}, "img": {},
	"input": {}, "link": {}, "meta": {}, "param": {}, "source": {}, "track": {}, "wbr": {},
}

// parseFragment builds the node tree of a document exactly as written,
// without the implied html/head/body elements html.Parse would add.
// Every non-void element must be closed by a matching end tag.
// The returned nodes are the top-level nodes in document order.
func parseFragment(r io.Reader) ([]*html.Node, error) {
	root := &html.Node{Type: html.DocumentNode}
	current := root
	offset := 0

	z := html.NewTokenizer(r)
	for {
		tokenType := z.Next()
		if tokenType == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("tokenizer > %w", err)
			}
			break
		}
		raw := len(z.Raw())
		token := z.Token()

		switch tokenType {
		case html.TextToken:
			current.AppendChild(&html.Node{Type: html.TextNode, Data: token.Data})
		case html.CommentToken:
			current.AppendChild(&html.Node{Type: html.CommentNode, Data: token.Data})
		case html.DoctypeToken:
			if current != root {
				return nil, &ParseError{Offset: offset, Msg: "doctype inside <" + current.Data + ">"}
			}
			current.AppendChild(&html.Node{Type: html.DoctypeNode, Data: token.Data})
		case html.SelfClosingTagToken:
			current.AppendChild(newElement(token))
		case html.StartTagToken:
			node := newElement(token)
			current.AppendChild(node)
			if _, ok := voidElements[node.Data]; !ok {
				current = node
			}
		case html.EndTagToken:
			if _, ok := voidElements[token.Data]; ok {
				// </br> and friends carry no structure
				break
			}
			if current == root {
				return nil, &ParseError{Offset: offset, Msg: "unexpected </" + token.Data + ">"}
			}
			if current.Data != token.Data {
				return nil, &ParseError{Offset: offset, Msg: "</" + token.Data + "> closes <" + current.Data + ">"}
			}
			current = current.Parent
		}
		offset += raw
	}
	if current != root {
		return nil, &ParseError{Offset: offset, Msg: "unclosed <" + current.Data + ">"}
	}

	var nodes []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		nodes = append(nodes, c)
	}
	return nodes, nil
}

func newElement(token html.Token) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: token.DataAtom,
		Data:     token.Data,
		Attr:     token.Attr,
	}
}

// findByID returns the first element in document order whose id attribute
// equals id, looking no deeper than maxDepth. Top-level nodes have depth 0.
func findByID(nodes []*html.Node, id string, maxDepth int) *html.Node {
	for _, n := range nodes {
		if found := findByIDAt(n, id, 0, maxDepth); found != nil {
			return found
		}
	}
	return nil
}

func findByIDAt(n *html.Node, id string, depth, maxDepth int) *html.Node {
	if depth > maxDepth {
		return nil
	}
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByIDAt(c, id, depth+1, maxDepth); found != nil {
			return found
		}
	}
	return nil
}

func render(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", fmt.Errorf("html.Render > %w", err)
	}
	return b.String(), nil
}
