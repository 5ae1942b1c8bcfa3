package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/certpaths/pkg/errors"
)

// Format identifies the serialization of a catalog import.
type Format string

// Supported import formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the import format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported catalog extension %q (want .json, .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// Read decodes a catalog in the given format and validates it with Parse.
func Read(r io.Reader, format Format) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	raw, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// ReadFile opens path, infers its format from the extension and returns
// the validated catalog.
func ReadFile(path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "catalog %s", path)
		}
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Read(f, format)
}

func decode(data []byte, format Format) (any, error) {
	var raw any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode json catalog")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode yaml catalog")
		}
	case FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode toml catalog")
		}
		raw = doc
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown catalog format %q", format)
	}
	return raw, nil
}
