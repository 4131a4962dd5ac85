package crawler

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parser extracts the title, cleaned text, and anchor hrefs from HTML.
//
// Design decision: We use golang.org/x/net/html rather than regex because:
//  1. It correctly handles malformed HTML common on the web
//  2. Script and style subtrees can be skipped precisely
//  3. More maintainable than complex regex patterns
type Parser struct{}

// ParseResult contains the information extracted from an HTML page.
type ParseResult struct {
	// Title is the page title from the <title> tag.
	Title string

	// Text is the visible page text with script and style content removed
	// and whitespace runs collapsed to single spaces.
	Text string

	// Links contains the raw href values of all anchors in document order.
	// Empty hrefs are dropped; no resolution or filtering happens here.
	Links []string
}

// NewParser creates a new HTML parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses HTML content and extracts title, text, and links.
func (p *Parser) Parse(content io.Reader) (*ParseResult, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Links: make([]string, 0),
	}

	var text strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				// Skip the whole subtree so inline code never leaks
				// into the cleaned text.
				return
			case "title":
				if result.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					result.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "a":
				if href := strings.TrimSpace(getAttr(n, "href")); href != "" {
					result.Links = append(result.Links, href)
				}
			}
		case html.TextNode:
			text.WriteString(n.Data)
			text.WriteString(" ")
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	// Collapse all whitespace runs, matching how pattern confidence
	// scoring expects the content to look.
	result.Text = strings.Join(strings.Fields(text.String()), " ")

	return result, nil
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
