package diagram

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the serialized form of a pane.
type Document struct {
	Name        string       `yaml:"name"`
	Blocks      []BlockDef   `yaml:"blocks"`
	Connections []Connection `yaml:"connections,omitempty"`
}

// BlockDef declares one block. Kind selects which of the remaining
// fields apply.
type BlockDef struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`

	// function blocks; Signature overrides the catalog when set.
	Func      string `yaml:"func,omitempty"`
	Signature string `yaml:"signature,omitempty"`

	// literal blocks
	Text string `yaml:"text,omitempty"`
	Type string `yaml:"type,omitempty"`

	// lambda blocks
	Binders []string `yaml:"binders,omitempty"`

	// Container names the enclosing lambda block; empty means top level.
	Container string `yaml:"container,omitempty"`

	X float64 `yaml:"x,omitempty"`
	Y float64 `yaml:"y,omitempty"`
}

// Connection declares one wire by its anchor references.
type Connection struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Parse decodes and validates a document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing diagram: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Read decodes a document from a reader.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading diagram: %w", err)
	}
	return Parse(data)
}

// LoadFile decodes a document from a file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading diagram file: %w", err)
	}
	return Parse(data)
}

// Marshal encodes the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// Validate checks document-level consistency: unique block ids, known
// kinds, and the per-kind required fields. Signature resolution against
// the catalog happens at build time, not here.
func (d *Document) Validate() error {
	seen := make(map[string]bool)
	for i, b := range d.Blocks {
		if b.ID == "" {
			return fmt.Errorf("block %d: missing id", i)
		}
		if seen[b.ID] {
			return fmt.Errorf("duplicate block id %q", b.ID)
		}
		seen[b.ID] = true

		switch b.Kind {
		case "function":
			if b.Func == "" {
				return fmt.Errorf("block %q: function blocks need func", b.ID)
			}
		case "literal":
			if b.Text == "" {
				return fmt.Errorf("block %q: literal blocks need text", b.ID)
			}
		case "lambda":
			if len(b.Binders) == 0 {
				return fmt.Errorf("block %q: lambda blocks need binders", b.ID)
			}
		default:
			return fmt.Errorf("block %q: unknown kind %q", b.ID, b.Kind)
		}
	}
	for i, c := range d.Connections {
		if c.From == "" || c.To == "" {
			return fmt.Errorf("connection %d: both from and to are required", i)
		}
	}
	return nil
}
