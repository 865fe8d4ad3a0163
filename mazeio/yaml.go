package mazeio

import (
	"fmt"
	"io"

	"github.com/beka-birhanu/vinom-mazesolver/maze"
	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a maze.
//
//	name: corridor
//	rows:
//	  - "S...E"
type Document struct {
	Name string   `yaml:"name,omitempty"`
	Rows []string `yaml:"rows"`
}

// Maze builds the maze described by the document.
func (d *Document) Maze() (*maze.Maze, error) {
	return ParseRows(d.Rows)
}

// DecodeYAML reads a YAML maze document.
func DecodeYAML(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(doc.Rows) == 0 {
		return nil, fmt.Errorf("%w: document has no rows", ErrMalformed)
	}
	return &doc, nil
}

// EncodeYAML writes m as a YAML maze document.
func EncodeYAML(w io.Writer, name string, m *maze.Maze) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&Document{Name: name, Rows: m.Rows()}); err != nil {
		return err
	}
	return enc.Close()
}
