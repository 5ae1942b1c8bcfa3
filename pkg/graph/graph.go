package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	errs "github.com/matzehuels/certpaths/pkg/errors"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a graph to indented JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes a graph as JSON to an io.Writer.
// Use MarshalGraph for in-memory serialization or WriteGraphFile for files.
func WriteGraph(g *Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraphFile reads a JSON file and returns the decoded graph.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
// Edges whose endpoints are missing yield an IntegrityFault.
func ReadGraph(r io.Reader) (*Graph, error) {
	return readGraphFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	g.reindex()
	if len(g.index) != len(g.Nodes) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "graph has duplicate node ids")
	}
	for _, e := range g.Edges {
		if _, ok := g.index[e.Source]; !ok {
			return nil, errs.Integrity(ErrDanglingEdge, "edge %q: source %q", e.ID, e.Source)
		}
		if _, ok := g.index[e.Target]; !ok {
			return nil, errs.Integrity(ErrDanglingEdge, "edge %q: target %q", e.ID, e.Target)
		}
	}
	return &g, nil
}
