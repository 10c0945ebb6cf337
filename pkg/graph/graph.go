package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/topolayout/pkg/errors"
	"github.com/matzehuels/topolayout/pkg/layout"
)

// Topology is the serialized input of a layout run.
type Topology struct {
	Nodes []layout.Node `json:"nodes"`
	Edges []layout.Edge `json:"edges"`
}

// =============================================================================
// Topology API
// =============================================================================

// ReadTopology decodes a topology and validates its nodes.
func ReadTopology(r io.Reader) (Topology, error) {
	var t Topology
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return Topology{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode topology")
	}
	if err := layout.ValidateNodes(t.Nodes); err != nil {
		return Topology{}, err
	}
	return t, nil
}

// ReadTopologyFile reads a topology from a JSON file.
func ReadTopologyFile(path string) (Topology, error) {
	f, err := openFile(path)
	if err != nil {
		return Topology{}, err
	}
	defer f.Close()
	return ReadTopology(f)
}

// UnmarshalTopology decodes a topology from bytes.
func UnmarshalTopology(data []byte) (Topology, error) {
	return ReadTopology(bytes.NewReader(data))
}

// WriteTopology encodes t as indented JSON.
func WriteTopology(t Topology, w io.Writer) error {
	return encode(t, w)
}

// =============================================================================
// Result API
// =============================================================================

// ReadResult decodes a layout result.
func ReadResult(r io.Reader) (layout.Result, error) {
	var res layout.Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return layout.Result{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode result")
	}
	for _, p := range res.EdgePaths {
		if !p.Path.Valid() {
			return layout.Result{}, errors.New(errors.ErrCodeInvalidFormat,
				"edge %q: path needs at least two finite points", p.ID)
		}
	}
	return res, nil
}

// WriteResult encodes res as indented JSON.
func WriteResult(res layout.Result, w io.Writer) error {
	return encode(res, w)
}

// MarshalResult encodes res to bytes.
func MarshalResult(res layout.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(res, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteResultFile writes res to a JSON file, created with 0644 permissions.
func WriteResultFile(res layout.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return encode(res, f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func encode(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
