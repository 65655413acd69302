package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docmap"
	"golang.org/x/net/html"
)

var _ docmap.SectionExtractor = (*SectionExtractor)(nil)

// chromeSelector matches page chrome that never carries documentation content.
const chromeSelector = "nav, header, footer, script, style, aside"

// blockSelector matches the elements fed to the section builder.
const blockSelector = "h1, h2, h3, p, ul, ol"

// SectionExtractor turns a page's heading structure into sections.
type SectionExtractor struct{}

// NewSectionExtractor creates a new SectionExtractor.
func NewSectionExtractor() *SectionExtractor {
	return &SectionExtractor{}
}

// Extract walks headings, paragraphs and lists in document order.
// H1 headings become modules, H2 headings submodules; H3 headings either
// annotate the current submodule or open a new one. Content before the
// first H1 is dropped.
func (e *SectionExtractor) Extract(page string) ([]docmap.Section, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, docmap.Errorf(docmap.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(chromeSelector).Remove()

	b := docmap.NewSectionBuilder()
	doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		switch goquery.NodeName(sel) {
		case "h1":
			b.Heading(1, collapse(sel.Text()))
		case "h2":
			b.Heading(2, collapse(sel.Text()))
		case "h3":
			b.Heading(3, collapse(sel.Text()))
		case "p":
			if insideList(sel) {
				return
			}
			b.Content(spacedText(sel))
		case "ul", "ol":
			if insideList(sel) {
				return
			}
			b.Content(renderList(sel))
		}
	})

	return b.Sections(), nil
}

// renderList renders one "- item" line per direct li child.
func renderList(sel *goquery.Selection) string {
	var lines []string
	sel.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		if text := spacedText(li); text != "" {
			lines = append(lines, "- "+text)
		}
	})
	return strings.Join(lines, "\n")
}

// insideList reports whether sel is nested in a list that renders it.
func insideList(sel *goquery.Selection) bool {
	return sel.ParentsFiltered("ul, ol").Length() > 0
}

// spacedText joins the trimmed text nodes under sel with single spaces, so
// inline elements such as <br>, <code> and <a> stay separate words.
func spacedText(sel *goquery.Selection) string {
	var words []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			words = append(words, strings.Fields(n.Data)...)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(words, " ")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
