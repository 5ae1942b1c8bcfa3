package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/certpaths/pkg/catalog"
	"github.com/matzehuels/certpaths/pkg/graph"
	"github.com/matzehuels/certpaths/pkg/layout"
)

func testGraph(t *testing.T, linkType catalog.LinkType) *graph.Graph {
	t.Helper()
	certs := []catalog.Cert{
		{
			ID: "a1", Vendor: catalog.VendorAWS, Level: catalog.LevelFundamentals,
			Title: "Cloud Practitioner", Exam: "CLF-C02", Roles: []catalog.RoleTrack{catalog.RoleGeneral},
			Domain: "Cloud", URL: "javascript:alert(1)", Description: "Entry level",
		},
		{
			ID: "a2", Vendor: catalog.VendorAWS, Level: catalog.LevelAssociate,
			Title: "Solutions Architect", Roles: []catalog.RoleTrack{catalog.RoleArchitect, catalog.RoleDevOps},
			URL: "https://aws.amazon.com/certification/",
		},
	}
	links := []catalog.Link{{
		ID: "l1", SourceID: "a1", TargetID: "a2", Type: linkType,
		TrainingTitle: "Course", TrainingURL: "https://x",
	}}
	g, err := graph.Assemble(catalog.VendorAWS, certs, links, layout.DefaultParams())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return g
}

// line returns the DOT statement starting with prefix.
func line(t *testing.T, dot, prefix string) string {
	t.Helper()
	for _, l := range strings.Split(dot, "\n") {
		if l = strings.TrimSpace(l); strings.HasPrefix(l, prefix) {
			return l
		}
	}
	t.Fatalf("no statement starting with %s in:\n%s", prefix, dot)
	return ""
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(testGraph(t, catalog.LinkRequired), Options{})

	for _, want := range []string{"digraph G", "layout=neato;", "inputscale=72;", `"a1" -> "a2"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q", want)
		}
	}
}

func TestToDOT_Positions(t *testing.T) {
	dot := ToDOT(testGraph(t, catalog.LinkRequired), Options{})

	tests := []struct {
		node string
		pos  string
	}{
		{`"a1" [`, `pos="180,-88!"`},
		{`"a2" [`, `pos="580,-88!"`},
	}
	for _, tt := range tests {
		t.Run(tt.node, func(t *testing.T) {
			if l := line(t, dot, tt.node); !strings.Contains(l, tt.pos) {
				t.Errorf("node statement %q missing %s", l, tt.pos)
			}
		})
	}
}

func TestToDOT_EdgeStyles(t *testing.T) {
	tests := []struct {
		name     string
		linkType catalog.LinkType
		want     []string
	}{
		{
			name:     "required",
			linkType: catalog.LinkRequired,
			want:     []string{`id="l1"`, "style=solid", `color="#0f172a"`, "penwidth=2.6", `fillcolor="#0f172a"`},
		},
		{
			name:     "recommended",
			linkType: catalog.LinkRecommended,
			want:     []string{"style=dashed", `color="#64748b"`, "penwidth=1.6", `fillcolor="#64748b"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge := line(t, ToDOT(testGraph(t, tt.linkType), Options{}), `"a1" -> "a2"`)
			for _, w := range tt.want {
				if !strings.Contains(edge, w) {
					t.Errorf("edge %q missing %s", edge, w)
				}
			}
		})
	}
}

func TestToDOT_Training(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want bool
	}{
		{"shown", Options{}, true},
		{"hidden", Options{HideTraining: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge := line(t, ToDOT(testGraph(t, catalog.LinkRecommended), tt.opts), `"a1" -> "a2"`)
			for _, attr := range []string{`label="Course"`, `URL="https://x"`} {
				if got := strings.Contains(edge, attr); got != tt.want {
					t.Errorf("edge %q contains %s = %v, want %v", edge, attr, got, tt.want)
				}
			}
		})
	}
}

func TestToDOT_URLs(t *testing.T) {
	dot := ToDOT(testGraph(t, catalog.LinkRequired), Options{})

	if l := line(t, dot, `"a1" [`); strings.Contains(l, "URL=") || strings.Contains(l, "javascript") {
		t.Errorf("non-http URL should be dropped: %q", l)
	}
	if l := line(t, dot, `"a2" [`); !strings.Contains(l, `URL="https://aws.amazon.com/certification/"`) {
		t.Errorf("https URL should be kept: %q", l)
	}
	if l := line(t, dot, `"a1" [`); !strings.Contains(l, `tooltip="Entry level"`) {
		t.Errorf("description should become the tooltip: %q", l)
	}
}

func TestNodeLabel(t *testing.T) {
	g := testGraph(t, catalog.LinkRequired)
	a1, _ := g.Node("a1")
	a2, _ := g.Node("a2")

	tests := []struct {
		name     string
		node     *graph.Node
		detailed bool
		want     string
	}{
		{"simple with exam", a1, false, "Cloud Practitioner (CLF-C02)"},
		{"simple without exam", a2, false, "Solutions Architect"},
		{"detailed", a1, true, "Cloud Practitioner (CLF-C02)\nFundamentals\nCloud\nGeneral"},
		{"detailed without domain", a2, true, "Solutions Architect\nAssociate\nArchitect, DevOps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nodeLabel(tt.node, tt.detailed); got != tt.want {
				t.Errorf("nodeLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`a\b`, `"a\\b"`},
		{"two\r\nlines", `"two\nlines"`},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testGraph(t, catalog.LinkRequired), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, "<svg") || !strings.Contains(s, `viewBox="0 0 `) {
		t.Errorf("unexpected SVG root: %.200s", s)
	}
	if !strings.Contains(s, "Cloud Practitioner") {
		t.Error("SVG should contain node labels")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.Contains(got, `viewBox="0 0 10.00 20.00" width="10" height="20"`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}
	if plain := []byte("<svg><g/></svg>"); string(normalizeViewBox(plain)) != string(plain) {
		t.Error("SVG without viewBox should be unchanged")
	}
}
