package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/certpaths/pkg/errors"
	"github.com/matzehuels/certpaths/pkg/filter"
	"github.com/matzehuels/certpaths/pkg/graph"
)

// runCLI executes the root command with args in an empty working directory
// and a private cache, returning everything printed to out.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"validate", "layout", "render", "filters", "search", "paths", "browse", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestValidateBundled(t *testing.T) {
	got, err := runCLI(t, "validate")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	for _, want := range []string{"Catalog is valid", "bundled", "Azure", "Kubernetes"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestValidateFile(t *testing.T) {
	got, err := runCLI(t, "validate", testdataPath(t, "small.yaml"))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(got, "2 certifications") {
		t.Errorf("output should count 2 certifications:\n%s", got)
	}
}

func TestValidateDangling(t *testing.T) {
	got, err := runCLI(t, "validate", testdataPath(t, "dangling.json"))
	if !errs.IsSchemaError(err) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if !strings.Contains(got, `targetId "missing" does not exist`) {
		t.Errorf("output should explain the violation:\n%s", got)
	}
}

func TestValidateDroppedFields(t *testing.T) {
	got, err := runCLI(t, "validate", testdataPath(t, "loose.yaml"))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	for _, want := range []string{"Catalog is valid", "certs[0].officialResources[0]: needs string title and url; dropped"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "scoreToPass") {
		t.Errorf("numeric string score should be accepted:\n%s", got)
	}
}

func TestLayoutCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "azure.json")
	if _, err := runCLI(t, "layout", "--vendor", "azure", "-o", path); err != nil {
		t.Fatalf("layout: %v", err)
	}

	g, err := graph.ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if g.Vendor != "Azure" || g.NodeCount() == 0 {
		t.Errorf("unexpected graph: vendor %q, %d nodes", g.Vendor, g.NodeCount())
	}
	n, ok := g.Node("az-305")
	if !ok || n.Position.X != 40+2*400 {
		t.Errorf("az-305 should sit in the third column, got %+v", n)
	}
}

func TestLayoutCommandGap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "azure.json")
	if _, err := runCLI(t, "layout", "--vendor", "Azure", "--xgap", "300", "-o", path); err != nil {
		t.Fatalf("layout: %v", err)
	}
	g, err := graph.ReadGraphFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := g.Node("az-104"); n.Position.X != 40+300 {
		t.Errorf("az-104 X = %v, want 340", n.Position.X)
	}
}

func TestRenderCommand(t *testing.T) {
	base := filepath.Join(t.TempDir(), "k8s")
	got, err := runCLI(t, "render", "--vendor", "Kubernetes", "-f", "dot,json", "-o", base)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatalf("read dot: %v", err)
	}
	if !strings.Contains(string(dot), `"k8s-cka" -> "k8s-cks"`) {
		t.Errorf("DOT should contain the required edge:\n%s", dot)
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("json artifact missing: %v", err)
	}
	if !strings.Contains(got, "Rendered Kubernetes") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestRenderCommandFiltered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	_, err := runCLI(t, "render", "--vendor", "Kubernetes", "--level", "Associate", "--hide-recommended", "-f", "json", "-o", path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	g, err := graph.ReadGraphFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range g.Nodes {
		if n.Cert.DisplayLevel() != "Associate" {
			t.Errorf("node %s has level %s", n.ID, n.Cert.DisplayLevel())
		}
	}
	for _, e := range g.Edges {
		if !e.Required() {
			t.Errorf("recommended edge %s should be hidden", e.ID)
		}
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"render", "-f", "gif"}},
		{"unknown vendor", []string{"render", "--vendor", "Oracle"}},
		{"watch without file", []string{"render", "--watch"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestFiltersCommandJSON(t *testing.T) {
	got, err := runCLI(t, "filters", "--vendor", "Azure", "--json")
	if err != nil {
		t.Fatalf("filters: %v", err)
	}
	var ch filter.Choices
	if err := json.Unmarshal([]byte(got), &ch); err != nil {
		t.Fatalf("decode: %v\n%s", err, got)
	}
	if len(ch.Levels) < 2 || ch.Levels[0] != filter.All {
		t.Errorf("Levels = %v", ch.Levels)
	}
	if ch.Domains[0] != filter.All {
		t.Errorf("Domains = %v", ch.Domains)
	}
}

func TestSearchCommand(t *testing.T) {
	got, err := runCLI(t, "search", "--vendor", "Kubernetes", "administrator")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(got, "k8s-cka") {
		t.Errorf("search should suggest k8s-cka:\n%s", got)
	}

	got, err = runCLI(t, "search", "--vendor", "Kubernetes", "zzz-nothing")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(got, "No certifications match") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestPathsCommand(t *testing.T) {
	got, err := runCLI(t, "paths", "k8s-cks")
	if err != nil {
		t.Fatalf("paths: %v", err)
	}
	if !strings.Contains(got, "k8s-cka") {
		t.Errorf("k8s-cka should be a prerequisite of k8s-cks:\n%s", got)
	}

	got, err = runCLI(t, "paths", "az-104", "--unlocks")
	if err != nil {
		t.Fatalf("paths --unlocks: %v", err)
	}
	if !strings.Contains(got, "az-305") {
		t.Errorf("az-104 should unlock az-305:\n%s", got)
	}

	if _, err := runCLI(t, "paths", "nope"); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("unknown id error = %v, want NOT_FOUND", err)
	}
}

func TestPathsStudyOrder(t *testing.T) {
	got, err := runCLI(t, "paths", "--vendor", "Azure")
	if err != nil {
		t.Fatalf("paths: %v", err)
	}
	i104, i305 := strings.Index(got, "az-104"), strings.Index(got, "az-305")
	if i104 < 0 || i305 < 0 || i104 > i305 {
		t.Errorf("az-104 should come before az-305:\n%s", got)
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	got, err := runCLI(t, "cache", "path", "--cache-dir", dir)
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(got) != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}

	got, err = runCLI(t, "cache", "clear", "--cache-dir", dir)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(got, "Cleared file cache") {
		t.Errorf("unexpected output:\n%s", got)
	}

	got, _ = runCLI(t, "cache", "path", "--cache-backend", "none")
	if strings.TrimSpace(got) != "disabled" {
		t.Errorf("cache path with none = %q", got)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "certpaths.toml")
	if err := os.WriteFile(cfgPath, []byte("vendor = \"Kubernetes\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := runCLI(t, "--config", cfgPath, "filters")
	if err != nil {
		t.Fatalf("filters: %v", err)
	}
	if !strings.Contains(got, "Kubernetes") {
		t.Errorf("config vendor should be used:\n%s", got)
	}
}
