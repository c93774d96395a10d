package parsers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/simbadocs/docparse/internal/domain/model"
)

// doclingBlock is one structural unit extracted from a document.
type doclingBlock struct {
	Type  string `json:"type"`
	Level int    `json:"level,omitempty"`
	Text  string `json:"text"`
}

// doclingResult is the wire form of a docling parse.
type doclingResult struct {
	Schema   string         `json:"schema"`
	Filename string         `json:"filename"`
	Blocks   []doclingBlock `json:"blocks"`
}

const doclingSchema = "docling.blocks.v1"

// Docling extracts document structure as a flat block list: headings keep
// their level, everything else becomes paragraph blocks split on blank lines.
type Docling struct{}

// NewDocling returns the structured layout extraction backend.
func NewDocling() *Docling { return &Docling{} }

func (d *Docling) Name() model.ParserName { return model.ParserDocling }

func (d *Docling) Description() string {
	return "extracts structured layout blocks from text documents"
}

// Parse extracts layout blocks from the document body.
func (d *Docling) Parse(ctx context.Context, doc *model.Document) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("document %s has no content", doc.ID)
	}

	switch baseContentType(doc.ContentType) {
	case "", "text/plain", "text/markdown":
	default:
		return nil, fmt.Errorf("docling cannot extract content type %q", doc.ContentType)
	}

	out := doclingResult{
		Schema:   doclingSchema,
		Filename: doc.Filename,
		Blocks:   extractBlocks(string(doc.Content)),
	}
	return json.Marshal(out)
}

func extractBlocks(text string) []doclingBlock {
	var blocks []doclingBlock
	for _, chunk := range strings.Split(text, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if level, title, ok := splitHeading(chunk); ok {
			blocks = append(blocks, doclingBlock{Type: "heading", Level: level, Text: title})
			continue
		}
		blocks = append(blocks, doclingBlock{Type: "paragraph", Text: chunk})
	}
	return blocks
}

func splitHeading(chunk string) (int, string, bool) {
	if !strings.HasPrefix(chunk, "#") || strings.ContainsRune(chunk, '\n') {
		return 0, "", false
	}
	level := 0
	for level < len(chunk) && chunk[level] == '#' {
		level++
	}
	if level > 6 || level == len(chunk) || chunk[level] != ' ' {
		return 0, "", false
	}
	return level, strings.TrimSpace(chunk[level:]), true
}
