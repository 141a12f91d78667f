package parser

import (
	"bufio"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// contentSelector lists the tags whose text becomes corpus text.
const contentSelector = "h1,h2,h3,h4,p,li,td,th,blockquote"

type Parser struct{}

// Document is the readable text of one HTML page.
type Document struct {
	Title string
	Text  string // one block per line
}

// Words returns the number of whitespace-separated words in the text.
func (d *Document) Words() int {
	return len(strings.Fields(d.Text))
}

// ExtractText uses go-readability to find the main content and goquery to
// flatten it into lines of text. Pages readability cannot handle fall back to
// the text of the whole body. rawURL may be empty for local files.
func (p *Parser) ExtractText(rawURL, html string) (*Document, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}

	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(strings.NewReader(html), parsedURL)
	if err == nil {
		text, extractErr := blocksText(article.Content)
		if extractErr == nil && text != "" {
			return &Document{Title: normalizeText(article.Title), Text: text}, nil
		}
	}

	return fallbackText(html)
}

// blocksText flattens the content-bearing tags of fragment, one per line.
func blocksText(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	doc.Find(contentSelector).Each(func(i int, s *goquery.Selection) {
		// Nested matches (p inside li) would be written twice.
		if s.ParentsFiltered(contentSelector).Length() > 0 {
			return
		}
		if text := normalizeText(s.Text()); text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	})
	return sb.String(), nil
}

func fallbackText(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	doc.Find("script,style,noscript").Remove()

	text := normalizeText(doc.Find("body").Text())
	if text != "" {
		text += "\n"
	}
	return &Document{
		Title: normalizeText(doc.Find("title").First().Text()),
		Text:  text,
	}, nil
}

// normalizeText cleans up a string by trimming space and removing excess newlines.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			// Write the line and a single space for separation
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	// Return the result, trimming the final space
	return strings.TrimSpace(b.String())
}
