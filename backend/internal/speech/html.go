package speech

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	apperrors "campaign-speeches/backend/pkg/errors"
)

// DefaultTranscriptSelector matches the paragraph layout of saved
// transcript pages
const DefaultTranscriptSelector = "#transcription p, .fl-callout-text p"

// PageMeta carries the row fields a transcript page does not contain
type PageMeta struct {
	Source   string // file name or URL, used in errors
	Speaker  string
	Date     time.Time
	Location string
	Type     string
	Selector string // empty means DefaultTranscriptSelector
}

// ImportHTML turns a saved transcript page into a Speech. Each matched
// paragraph holds "Name: (mm:ss)<br>text"; <br> becomes a line break and
// paragraphs are joined with one, which is the CSV text layout.
func ImportHTML(r io.Reader, meta PageMeta) (Speech, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Speech{}, fmt.Errorf("failed to parse %s: %w", meta.Source, err)
	}

	selector := meta.Selector
	if selector == "" {
		selector = DefaultTranscriptSelector
	}

	var paragraphs []string
	doc.Find(selector).Each(func(_ int, p *goquery.Selection) {
		if text := paragraphText(p); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) == 0 {
		return Speech{}, apperrors.NewDatasetEmptyTranscript(meta.Source)
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	return Speech{
		Speaker:  meta.Speaker,
		Title:    title,
		Text:     strings.Join(paragraphs, "\n"),
		Date:     meta.Date,
		Location: meta.Location,
		Type:     meta.Type,
	}, nil
}

func paragraphText(p *goquery.Selection) string {
	var b strings.Builder
	p.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "br" {
			b.WriteString("\n")
			return
		}
		if len(c.Nodes) > 0 && c.Nodes[0].Type == html.CommentNode {
			return
		}
		b.WriteString(c.Text())
	})

	lines := strings.Split(b.String(), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
