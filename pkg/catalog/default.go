package catalog

import (
	"bytes"
	_ "embed"
	"sync"
)

//go:embed data/default.json
var defaultData []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog bundled with the binary. It is parsed once
// and shared; callers must not modify it.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Read(bytes.NewReader(defaultData), FormatJSON)
	})
	return defaultCatalog, defaultErr
}
