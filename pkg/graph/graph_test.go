package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/topolayout/pkg/errors"
	"github.com/matzehuels/topolayout/pkg/geom"
	"github.com/matzehuels/topolayout/pkg/layout"
)

const sampleTopology = `{
  "nodes": [
    {"id": "ctrl", "type": "controller", "width": 100, "height": 50},
    {"id": "gw", "type": "gateway", "x": 10, "y": 20, "width": 80, "height": 40, "placed": true, "group": "core"}
  ],
  "edges": [
    {"id": "e1", "source": "ctrl", "target": "gw", "protocol": "can"}
  ]
}`

func TestReadTopology(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errors.Code
		check    func(t *testing.T, top Topology)
	}{
		{
			name:  "Sample",
			input: sampleTopology,
			check: func(t *testing.T, top Topology) {
				if len(top.Nodes) != 2 || len(top.Edges) != 1 {
					t.Fatalf("got %d nodes, %d edges", len(top.Nodes), len(top.Edges))
				}
				gw := top.Nodes[1]
				if !gw.Placed || gw.X != 10 || gw.Group != "core" {
					t.Errorf("gw = %+v", gw)
				}
				if top.Nodes[0].Placed {
					t.Error("ctrl should be unplaced")
				}
				e := top.Edges[0]
				if e.SourceID != "ctrl" || e.TargetID != "gw" || e.Protocol != "can" {
					t.Errorf("edge = %+v", e)
				}
			},
		},
		{
			name:  "Empty",
			input: `{"nodes": [], "edges": []}`,
			check: func(t *testing.T, top Topology) {
				if len(top.Nodes) != 0 {
					t.Errorf("nodes = %d, want 0", len(top.Nodes))
				}
			},
		},
		{name: "Malformed", input: `{"nodes": [`, wantCode: errors.ErrCodeInvalidFormat},
		{name: "WrongType", input: `{"nodes": 3}`, wantCode: errors.ErrCodeInvalidFormat},
		{
			name:     "DuplicateID",
			input:    `{"nodes": [{"id": "a", "width": 1, "height": 1}, {"id": "a", "width": 1, "height": 1}]}`,
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "ZeroSize",
			input:    `{"nodes": [{"id": "a", "width": 0, "height": 1}]}`,
			wantCode: errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, err := UnmarshalTopology([]byte(tt.input))
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("err = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalTopology: %v", err)
			}
			if tt.check != nil {
				tt.check(t, top)
			}
		})
	}
}

func TestTopologyRoundTrip(t *testing.T) {
	top, err := UnmarshalTopology([]byte(sampleTopology))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteTopology(top, &buf); err != nil {
		t.Fatal(err)
	}
	again, err := ReadTopology(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Nodes) != len(top.Nodes) || again.Nodes[1] != top.Nodes[1] || again.Edges[0] != top.Edges[0] {
		t.Errorf("round trip changed topology: %+v", again)
	}
}

func TestReadTopologyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topology.json")
	if err := os.WriteFile(path, []byte(sampleTopology), 0o644); err != nil {
		t.Fatal(err)
	}

	top, err := ReadTopologyFile(path)
	if err != nil {
		t.Fatalf("ReadTopologyFile: %v", err)
	}
	if len(top.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(top.Nodes))
	}

	_, err = ReadTopologyFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestReadTopologyFileExample(t *testing.T) {
	top, err := ReadTopologyFile(filepath.Join("..", "..", "examples", "vehicle.json"))
	if err != nil {
		t.Fatalf("ReadTopologyFile: %v", err)
	}
	if len(top.Nodes) != 10 || len(top.Edges) != 9 {
		t.Errorf("got %d nodes, %d edges, want 10, 9", len(top.Nodes), len(top.Edges))
	}
}

func TestResultFormat(t *testing.T) {
	res := layout.Result{
		NodePositions: []layout.NodePosition{{ID: "a", X: 1, Y: 2}},
		EdgePaths: []layout.EdgePath{{
			ID:   "e",
			Path: geom.Path{{X: 1, Y: 2}, {X: 3, Y: 4}},
		}},
	}

	data, err := MarshalResult(res)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"nodes"`, `"edges"`, `"path"`, `"id": "a"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("result JSON missing %s:\n%s", want, data)
		}
	}

	got, err := ReadResult(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadResult: %v", err)
	}
	if p, ok := got.Path("e"); !ok || len(p) != 2 || p.Target() != (geom.Position{X: 3, Y: 4}) {
		t.Errorf("path = %v", p)
	}
}

func TestReadResultRejectsShortPath(t *testing.T) {
	input := `{"nodes": [], "edges": [{"id": "e", "path": [{"x": 1, "y": 1}]}]}`
	_, err := ReadResult(strings.NewReader(input))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestWriteResultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	res := layout.Result{NodePositions: []layout.NodePosition{{ID: "a", X: 5, Y: 6}}}
	if err := WriteResultFile(res, path); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := ReadResult(f)
	if err != nil {
		t.Fatal(err)
	}
	if p, ok := got.Position("a"); !ok || p.X != 5 || p.Y != 6 {
		t.Errorf("position = %+v", p)
	}
}
