package mazeio

import (
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beka-birhanu/vinom-mazesolver/maze"
)

// Format identifies a maze encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatYAML     Format = "yaml"
	FormatImage    Format = "image"
	FormatProtobuf Format = "protobuf"
)

// FormatOf guesses the format of a maze file from its extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".gif", ".jpg", ".jpeg":
		return FormatImage
	case ".yaml", ".yml":
		return FormatYAML
	case ".pb", ".bin":
		return FormatProtobuf
	default:
		return FormatText
	}
}

// Decode reads a maze in the given format. The source image is only returned
// for FormatImage.
func Decode(r io.Reader, f Format) (*maze.Maze, image.Image, error) {
	switch f {
	case FormatImage:
		return DecodeImage(r)
	case FormatYAML:
		doc, err := DecodeYAML(r)
		if err != nil {
			return nil, nil, err
		}
		m, err := doc.Maze()
		return m, nil, err
	case FormatProtobuf:
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, nil, err
		}
		m, err := UnmarshalMaze(b)
		return m, nil, err
	default:
		m, err := ParseText(r)
		return m, nil, err
	}
}

// Load opens path and decodes it according to its extension.
func Load(path string) (*maze.Maze, image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return Decode(f, FormatOf(path))
}

// Encode writes m in the given format. Images are written as PNG.
func Encode(w io.Writer, m *maze.Maze, f Format) error {
	switch f {
	case FormatImage:
		return EncodeImage(w, m)
	case FormatYAML:
		return EncodeYAML(w, "", m)
	case FormatProtobuf:
		_, err := w.Write(MarshalMaze(m))
		return err
	default:
		_, err := io.WriteString(w, m.String())
		return err
	}
}
