package model

import (
	"fmt"
	"strings"
)

// ParserName identifies one of the compiled-in parsing backends.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type ParserName string

const (
	// ParserMarkitdown is the markdown-oriented text extraction backend.
	ParserMarkitdown ParserName = "markitdown"
	// ParserDocling is the structured layout extraction backend.
	ParserDocling ParserName = "docling"
)

// Valid returns true if the ParserName is one of the compiled-in backends.
func (p ParserName) Valid() bool {
	return p == ParserMarkitdown || p == ParserDocling
}

// UnmarshalText implements encoding.TextUnmarshaler for ParserName to allow
// env and JSON parsing of the closed set.
func (p *ParserName) UnmarshalText(text []byte) error {
	v := ParserName(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid ParserName: %q", v)
	}
	*p = v
	return nil
}

// Capability describes a registered parsing backend.
type Capability struct {
	Name        ParserName `json:"name"`
	Description string     `json:"description"`
}
