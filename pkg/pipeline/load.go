package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/matzehuels/certpaths/pkg/catalog"
	errs "github.com/matzehuels/certpaths/pkg/errors"
	"github.com/matzehuels/certpaths/pkg/httputil"
)

// SourceBundled names the bundled catalog in logs and hooks.
const SourceBundled = "bundled"

// Fetcher retrieves a remote catalog body. *httputil.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// DefaultFetcher is used by Load for http(s) sources.
var DefaultFetcher Fetcher = httputil.NewClient()

// IsRemote reports whether source is an http or https URL.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load returns the catalog named by source: a .json, .yaml, .yml or .toml
// file or http(s) URL, or the bundled catalog when source is empty. The
// import is fully validated; any violation is a SchemaError and nothing
// is returned.
func Load(ctx context.Context, source string) (*catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case source == "":
		return catalog.Default()
	case IsRemote(source):
		return loadRemote(ctx, DefaultFetcher, source)
	}
	return catalog.ReadFile(source)
}

func loadRemote(ctx context.Context, f Fetcher, source string) (*catalog.Catalog, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "catalog url")
	}
	format, err := catalog.FormatFromPath(u.Path)
	if err != nil {
		return nil, err
	}
	body, err := f.Fetch(ctx, source)
	if err != nil {
		if errors.Is(err, httputil.ErrNotFound) {
			return nil, errs.Wrap(errs.ErrCodeNotFound, err, "catalog %s", source)
		}
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return catalog.Read(bytes.NewReader(body), format)
}

func sourceName(source string) string {
	if source == "" {
		return SourceBundled
	}
	return source
}
