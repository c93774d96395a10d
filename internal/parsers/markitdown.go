package parsers

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/simbadocs/docparse/internal/domain/model"
)

// markitdownResult is the wire form of a markitdown parse.
type markitdownResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Markdown    string `json:"markdown"`
}

var (
	htmlTagRE    = regexp.MustCompile(`(?s)<[^>]*>`)
	htmlHeaderRE = regexp.MustCompile(`(?is)<h([1-6])[^>]*>(.*?)</h[1-6]>`)
	blankRunRE   = regexp.MustCompile(`\n{3,}`)
)

// Markitdown converts text-bearing documents to markdown. HTML headings are
// rewritten as markdown headings before tag stripping; everything else is
// treated as already-renderable text.
type Markitdown struct{}

// NewMarkitdown returns the markdown conversion backend.
func NewMarkitdown() *Markitdown { return &Markitdown{} }

func (m *Markitdown) Name() model.ParserName { return model.ParserMarkitdown }

func (m *Markitdown) Description() string {
	return "converts text and HTML documents to markdown"
}

// Parse converts the document body to markdown.
func (m *Markitdown) Parse(ctx context.Context, doc *model.Document) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("document %s has no content", doc.ID)
	}

	text := string(doc.Content)
	switch baseContentType(doc.ContentType) {
	case "text/html", "application/xhtml+xml":
		text = htmlToMarkdown(text)
	case "", "text/plain", "text/markdown", "application/json":
		// already renderable as-is
	default:
		return nil, fmt.Errorf("markitdown cannot convert content type %q", doc.ContentType)
	}

	out := markitdownResult{
		Filename:    doc.Filename,
		ContentType: doc.ContentType,
		Markdown:    strings.TrimSpace(text),
	}
	return json.Marshal(out)
}

func htmlToMarkdown(src string) string {
	src = htmlHeaderRE.ReplaceAllStringFunc(src, func(match string) string {
		groups := htmlHeaderRE.FindStringSubmatch(match)
		level := int(groups[1][0] - '0')
		title := strings.TrimSpace(htmlTagRE.ReplaceAllString(groups[2], ""))
		return "\n" + strings.Repeat("#", level) + " " + title + "\n"
	})
	src = htmlTagRE.ReplaceAllString(src, "")
	return blankRunRE.ReplaceAllString(src, "\n\n")
}

func baseContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
