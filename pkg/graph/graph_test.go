package graph

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/certpaths/pkg/catalog"
	errs "github.com/matzehuels/certpaths/pkg/errors"
	"github.com/matzehuels/certpaths/pkg/layout"
)

func testCerts() []catalog.Cert {
	mk := func(id string, l catalog.Level) catalog.Cert {
		return catalog.Cert{ID: id, Vendor: catalog.VendorAWS, Level: l, Title: id, Roles: []catalog.RoleTrack{catalog.RoleArchitect}}
	}
	return []catalog.Cert{
		mk("a1", catalog.LevelFundamentals),
		mk("a2", catalog.LevelAssociate),
		mk("a3", catalog.LevelProfessional),
	}
}

func testLinks() []catalog.Link {
	return []catalog.Link{
		{ID: "l1", SourceID: "a1", TargetID: "a2", Type: catalog.LinkRequired},
		{ID: "l2", SourceID: "a2", TargetID: "a3", Type: catalog.LinkRecommended, TrainingTitle: "Course"},
	}
}

func TestAssemble(t *testing.T) {
	g, err := Assemble(catalog.VendorAWS, testCerts(), testLinks(), layout.DefaultParams())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Fatalf("got %d nodes, %d edges; want 3, 2", g.NodeCount(), g.EdgeCount())
	}

	for i, id := range []string{"a1", "a2", "a3"} {
		if g.Nodes[i].ID != id {
			t.Errorf("node %d = %q, want %q", i, g.Nodes[i].ID, id)
		}
	}
	if pos := g.Nodes[1].Position; pos.X != 440 || pos.Y != 40 {
		t.Errorf("a2 position = %+v, want (440, 40)", pos)
	}

	tests := []struct {
		edge     int
		weight   Weight
		stroke   string
		width    float64
		dashed   bool
		training bool
	}{
		{0, WeightHeavy, ColorRequired, WidthRequired, false, false},
		{1, WeightLight, ColorRecommended, WidthRecommended, true, true},
	}
	for _, tt := range tests {
		e := g.Edges[tt.edge]
		if e.Weight != tt.weight {
			t.Errorf("%s weight = %q, want %q", e.ID, e.Weight, tt.weight)
		}
		if e.Style.Stroke != tt.stroke || e.Style.StrokeWidth != tt.width {
			t.Errorf("%s style = %+v", e.ID, e.Style)
		}
		if e.Style.Dashed() != tt.dashed {
			t.Errorf("%s dashed = %v, want %v", e.ID, e.Style.Dashed(), tt.dashed)
		}
		if e.Marker.Kind != MarkerArrowClosed || e.Marker.Color != tt.stroke {
			t.Errorf("%s marker = %+v", e.ID, e.Marker)
		}
		if (e.Training != nil) != tt.training {
			t.Errorf("%s training = %v, want present=%v", e.ID, e.Training, tt.training)
		}
	}
}

func TestAssembleEmpty(t *testing.T) {
	g, err := Assemble(catalog.VendorGCP, nil, nil, layout.DefaultParams())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("expected empty graph")
	}
}

func TestAssembleDanglingEdge(t *testing.T) {
	links := append(testLinks(), catalog.Link{ID: "bad", SourceID: "a1", TargetID: "gcp-ace", Type: catalog.LinkRequired})

	_, err := Assemble(catalog.VendorAWS, testCerts(), links, layout.DefaultParams())
	if !errs.IsIntegrityFault(err) {
		t.Fatalf("Assemble() error = %v, want IntegrityFault", err)
	}
	if !errors.Is(err, ErrDanglingEdge) {
		t.Errorf("error does not wrap ErrDanglingEdge")
	}
	if !strings.Contains(err.Error(), "gcp-ace") {
		t.Errorf("error %q does not name the missing endpoint", err)
	}
}

func TestAssembleUnrankedLevel(t *testing.T) {
	certs := testCerts()
	certs[0].Level = "Expert"
	_, err := Assemble(catalog.VendorAWS, certs, nil, layout.DefaultParams())
	if !errors.Is(err, layout.ErrUnrankedLevel) {
		t.Errorf("Assemble() error = %v, want ErrUnrankedLevel", err)
	}
}

func TestNodeLookup(t *testing.T) {
	g, _ := Assemble(catalog.VendorAWS, testCerts(), testLinks(), layout.DefaultParams())
	if n, ok := g.Node("a3"); !ok || n.Cert.Level != catalog.LevelProfessional {
		t.Errorf("Node(a3) = %v, %v", n, ok)
	}
	if _, ok := g.Node("zz"); ok {
		t.Error("Node(zz) found")
	}

	// Graphs built by literal still support lookup.
	lit := &Graph{Nodes: []Node{{ID: "x"}}}
	if _, ok := lit.Node("x"); !ok {
		t.Error("literal graph lookup failed")
	}
}

func TestGraphRoundTrip(t *testing.T) {
	g, err := Assemble(catalog.VendorAWS, testCerts(), testLinks(), layout.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}

	if got.Vendor != catalog.VendorAWS {
		t.Errorf("Vendor = %q", got.Vendor)
	}
	if got.NodeCount() != g.NodeCount() || got.EdgeCount() != g.EdgeCount() {
		t.Errorf("round trip changed counts")
	}
	if got.Edges[1].Training == nil || got.Edges[1].Training.Title != "Course" {
		t.Errorf("training lost: %+v", got.Edges[1].Training)
	}
	if _, ok := got.Node("a2"); !ok {
		t.Error("decoded graph lookup failed")
	}
}

func TestMarshalGraphFieldNames(t *testing.T) {
	g, _ := Assemble(catalog.VendorAWS, testCerts(), testLinks(), layout.DefaultParams())
	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"markerEnd"`, `"strokeDasharray": "6 6"`, `"position"`, `"data"`} {
		if !bytes.Contains(data, []byte(key)) {
			t.Errorf("JSON missing %s", key)
		}
	}
}

func TestReadGraphErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		integrity bool
	}{
		{"malformed", `{"nodes": [`, false},
		{"duplicate nodes", `{"nodes": [{"id": "a"}, {"id": "a"}], "edges": []}`, false},
		{"dangling edge", `{"nodes": [{"id": "a"}], "edges": [{"id": "e", "source": "a", "target": "b"}]}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadGraph() succeeded, want error")
			}
			if errs.IsIntegrityFault(err) != tt.integrity {
				t.Errorf("IsIntegrityFault = %v, want %v (%v)", !tt.integrity, tt.integrity, err)
			}
		})
	}
}

func TestWriteGraphFileBadPath(t *testing.T) {
	g := New(catalog.VendorAWS, nil, nil)
	err := WriteGraphFile(g, filepath.Join(t.TempDir(), "missing", "graph.json"))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("WriteGraphFile() error = %v, want not-exist", err)
	}
}
