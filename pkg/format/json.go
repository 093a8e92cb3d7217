package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/notes/pkg/core"
)

// --- JSON Codec ---

// JSONCodec writes notes as a JSON array of full records and reads back an
// array (or a single object) of note-like records.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

func (c *JSONCodec) Encode(w io.Writer, notes []core.Note) error {
	if notes == nil {
		notes = []core.Note{}
	}
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return core.SerializationError("", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func (c *JSONCodec) Decode(r io.Reader) ([]core.Draft, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, core.IOError("read", "", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '{' {
		var d core.Draft
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, core.SerializationError("", fmt.Errorf("invalid json: %w", err))
		}
		return []core.Draft{d}, nil
	}

	var drafts []core.Draft
	if err := json.Unmarshal(data, &drafts); err != nil {
		return nil, core.SerializationError("", fmt.Errorf("invalid json: %w", err))
	}
	return drafts, nil
}

// --- YAML Codec ---

// YAMLCodec is the YAML counterpart of JSONCodec.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

func (c *YAMLCodec) Encode(w io.Writer, notes []core.Note) error {
	if notes == nil {
		notes = []core.Note{}
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(notes); err != nil {
		return err
	}
	return encoder.Close()
}

func (c *YAMLCodec) Decode(r io.Reader) ([]core.Draft, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, core.IOError("read", "", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var drafts []core.Draft
	if err := yaml.Unmarshal(data, &drafts); err != nil {
		var d core.Draft
		if err2 := yaml.Unmarshal(data, &d); err2 != nil {
			return nil, core.SerializationError("", fmt.Errorf("invalid yaml: %w", err))
		}
		return []core.Draft{d}, nil
	}
	return drafts, nil
}
