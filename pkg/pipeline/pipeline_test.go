package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/certpaths/pkg/cache"
	"github.com/matzehuels/certpaths/pkg/catalog"
	errs "github.com/matzehuels/certpaths/pkg/errors"
	"github.com/matzehuels/certpaths/pkg/layout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"dot", false},
		{"json", false},
		{"pdf", false},
		{"png", false},
		{"", true},
		{"html", true},
		{"SVG", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if err != nil && !errs.Is(err, errs.ErrCodeInvalidFormat) {
				t.Errorf("ValidateFormat(%q) code = %v", tt.format, errs.GetCode(err))
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "gif"}); err == nil {
		t.Error("gif should fail")
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("empty options should validate: %v", err)
	}

	if opts.Vendor != DefaultVendor {
		t.Errorf("Vendor should be %s, got %s", DefaultVendor, opts.Vendor)
	}
	if opts.Layout != layout.DefaultParams() {
		t.Errorf("Layout should be defaults, got %+v", opts.Layout)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestOptionsValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"unknown vendor", Options{Vendor: "Oracle"}},
		{"bad format", Options{Formats: []string{"bmp"}}},
		{"negative gap", Options{Layout: layout.Params{XGap: -1, YGap: 160}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Vendor: catalog.VendorAzure}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	before := opts.Layout

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.Layout != before || opts.Vendor != catalog.VendorAzure {
		t.Error("options changed on second call")
	}
}

func TestFilterState(t *testing.T) {
	opts := Options{Vendor: catalog.VendorGCP}
	s := opts.FilterState()
	if !s.IsDefault() {
		t.Errorf("empty filter options should give the default state, got %+v", s)
	}

	opts = Options{
		Vendor:          catalog.VendorGCP,
		Level:           "Associate",
		Domain:          "Cloud",
		Query:           "engineer",
		HideRecommended: true,
	}
	s = opts.FilterState()
	if s.Vendor != catalog.VendorGCP || s.Level != "Associate" || s.Domain != "Cloud" || s.Query != "engineer" {
		t.Errorf("unexpected state %+v", s)
	}
	if s.ShowRecommended {
		t.Error("HideRecommended should clear ShowRecommended")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Detailed: true, HideTraining: true}
	got := opts.ArtifactKeyOpts(FormatDOT)
	want := cache.ArtifactKeyOpts{Format: FormatDOT, Detailed: true, HideTraining: true}
	if got != want {
		t.Errorf("ArtifactKeyOpts() = %+v, want %+v", got, want)
	}
}

func TestLoadBundled(t *testing.T) {
	cat, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cat.Certs) == 0 {
		t.Error("bundled catalog should not be empty")
	}
	if sourceName("") != SourceBundled {
		t.Errorf("sourceName(\"\") = %q", sourceName(""))
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, ""); err == nil {
		t.Error("cancelled context should fail")
	}
}

const remoteCatalog = `{
  "certs": [
    {"id": "gh-foundations", "vendor": "GitHub", "level": "Fundamentals", "title": "GitHub Foundations", "roles": ["General"]},
    {"id": "gh-actions", "vendor": "GitHub", "level": "Associate", "title": "GitHub Actions", "roles": ["DevOps"]}
  ],
  "links": [
    {"id": "l1", "sourceId": "gh-foundations", "targetId": "gh-actions", "type": "recommended"}
  ]
}`

func TestLoadRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/catalog.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(remoteCatalog))
	}))
	defer server.Close()

	if !IsRemote(server.URL) || IsRemote("catalog.json") {
		t.Fatal("IsRemote misclassifies sources")
	}

	cat, err := Load(context.Background(), server.URL+"/catalog.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cat.Certs) != 2 || len(cat.Links) != 1 {
		t.Errorf("got %d certs, %d links", len(cat.Certs), len(cat.Links))
	}

	tests := []struct {
		name string
		path string
		code errs.Code
	}{
		{"missing", "/other.json", errs.ErrCodeNotFound},
		{"unknown extension", "/catalog.xml", errs.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), server.URL+tt.path)
			if !errs.Is(err, tt.code) {
				t.Errorf("Load(%s) = %v, want %s", tt.path, err, tt.code)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Vendor:  catalog.VendorAzure,
		Formats: []string{FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.NodeCount == 0 {
		t.Fatal("Azure graph should have nodes")
	}
	if result.Stats.VisibleNodes != result.Stats.NodeCount {
		t.Errorf("default filters should show all nodes: %d of %d", result.Stats.VisibleNodes, result.Stats.NodeCount)
	}
	if result.GraphHash == "" {
		t.Error("GraphHash should be set")
	}
	if len(result.Choices.Levels) == 0 || result.Choices.Levels[0] != "All" {
		t.Errorf("Choices.Levels = %v", result.Choices.Levels)
	}

	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, `"az-104"`) {
		t.Errorf("DOT output should contain az-104:\n%s", dot)
	}

	var decoded map[string]any
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &decoded); err != nil {
		t.Errorf("JSON artifact is invalid: %v", err)
	}
}

func TestExecuteFiltered(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Execute(context.Background(), Options{
		Vendor:  catalog.VendorAzure,
		Query:   "az-104",
		Formats: []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.VisibleNodes >= result.Stats.NodeCount {
		t.Errorf("query should narrow the graph: %d of %d", result.Stats.VisibleNodes, result.Stats.NodeCount)
	}
	if _, ok := result.Visible.Node("az-104"); !ok {
		t.Error("az-104 should stay visible")
	}
}

func TestExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{Vendor: catalog.VendorKubernetes, Formats: []string{FormatDOT}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.BuildHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", first.CacheInfo)
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.BuildHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if string(first.Artifacts[FormatDOT]) != string(second.Artifacts[FormatDOT]) {
		t.Error("cached artifact differs from rendered one")
	}

	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.BuildHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh should bypass the cache: %+v", third.CacheInfo)
	}
}

func TestExecuteInvalidSource(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{Source: "testdata/missing.json"})
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}
