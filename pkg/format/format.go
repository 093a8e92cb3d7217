// Package format implements the export and import codecs of the notes store:
// JSON, YAML, Markdown, plain text and HTML.
package format

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/notes/pkg/core"
)

// Format names a codec.
type Format string

const (
	JSON     Format = "json"
	YAML     Format = "yaml"
	Markdown Format = "markdown"
	Text     Format = "text"
	HTML     Format = "html"
)

var aliases = map[string]Format{
	"json":     JSON,
	"yaml":     YAML,
	"yml":      YAML,
	"markdown": Markdown,
	"md":       Markdown,
	"text":     Text,
	"txt":      Text,
	"html":     HTML,
	"htm":      HTML,
}

// Parse resolves a format name or alias (case-insensitive).
func Parse(name string) (Format, error) {
	f, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", core.InvalidInput("unknown format %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// FromExtension infers the format from a file name.
func FromExtension(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", core.InvalidInput("cannot infer format of %q: no file extension", path)
	}
	return Parse(ext)
}

// Names lists the canonical format names.
func Names() []string {
	names := []string{string(JSON), string(YAML), string(Markdown), string(Text), string(HTML)}
	sort.Strings(names)
	return names
}

// Extension returns the conventional file extension for f.
func (f Format) Extension() string {
	switch f {
	case Markdown:
		return ".md"
	case Text:
		return ".txt"
	default:
		return "." + string(f)
	}
}

// DefaultEncoders returns the standard set of export encoders.
func DefaultEncoders() map[Format]core.Encoder {
	return map[Format]core.Encoder{
		JSON:     NewJSONCodec(),
		YAML:     NewYAMLCodec(),
		Markdown: NewMarkdownCodec(),
		Text:     NewTextEncoder(),
		HTML:     NewHTMLEncoder(),
	}
}

// DefaultDecoders returns the standard set of import decoders.
func DefaultDecoders() map[Format]core.Decoder {
	return map[Format]core.Decoder{
		JSON:     NewJSONCodec(),
		YAML:     NewYAMLCodec(),
		Markdown: NewMarkdownCodec(),
	}
}

// EncoderFor returns the encoder of f.
func EncoderFor(f Format) (core.Encoder, error) {
	enc, ok := DefaultEncoders()[f]
	if !ok {
		return nil, core.InvalidInput("format %q cannot be exported", f)
	}
	return enc, nil
}

// DecoderFor returns the decoder of f.
func DecoderFor(f Format) (core.Decoder, error) {
	dec, ok := DefaultDecoders()[f]
	if !ok {
		return nil, core.InvalidInput("format %q cannot be imported", f)
	}
	return dec, nil
}
