package catalog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	errs "github.com/matzehuels/certpaths/pkg/errors"
)

// Sentinel causes wrapped by every SchemaError returned from Parse.
// Use errors.Is to branch on the kind of violation and
// errs.IsSchemaError to recognise the category.
var (
	// ErrNotObject is returned when the root, a cert or a link is not an object.
	ErrNotObject = errors.New("not an object")

	// ErrMissingField is returned when a required key is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrWrongType is returned when a field holds a value of the wrong shape.
	ErrWrongType = errors.New("wrong field type")

	// ErrEmptyID is returned when an id is not a non-empty string.
	ErrEmptyID = errors.New("id must be a non-empty string")

	// ErrDuplicateID is returned when a cert or link id repeats.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrDanglingReference is returned when a link endpoint names no cert.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrUnknownValue is returned when an enumerated field holds an unknown value.
	ErrUnknownValue = errors.New("unknown enumerated value")
)

var (
	certRequired = []string{"id", "vendor", "level", "title", "roles"}
	linkRequired = []string{"id", "sourceId", "targetId", "type"}
)

// Parse validates an untrusted, generically decoded import of the shape
// {certs: [...], links: [...]} and returns the typed catalog.
//
// All certification ids are collected before any link is checked, so a
// link may reference a cert defined anywhere in the certs sequence. The
// first violation aborts the parse with a SchemaError; no partially valid
// catalog is ever returned. Output order matches input order.
//
// Optional presentation fields are carried, not checked: a malformed one
// (a non-numeric scoreToPass, a resource without url, ...) is dropped and
// described in Catalog.Warnings instead of rejecting the import.
func Parse(raw any) (*Catalog, error) {
	root, ok := asObject(raw)
	if !ok {
		return nil, errs.Schema(ErrNotObject, "root must be an object { certs: [], links: [] }")
	}

	rawCerts, err := requireSeq(root, "certs", "root")
	if err != nil {
		return nil, err
	}
	rawLinks, err := requireSeq(root, "links", "root")
	if err != nil {
		return nil, err
	}

	var warnings []string
	certs := make([]Cert, 0, len(rawCerts))
	certIDs := make(map[string]struct{}, len(rawCerts))
	for i, rc := range rawCerts {
		c, err := parseCert(rc, fmt.Sprintf("certs[%d]", i), &warnings)
		if err != nil {
			return nil, err
		}
		if _, dup := certIDs[c.ID]; dup {
			return nil, errs.Schema(ErrDuplicateID, "certs[%d]: cert id %q", i, c.ID)
		}
		certIDs[c.ID] = struct{}{}
		certs = append(certs, c)
	}

	links := make([]Link, 0, len(rawLinks))
	linkIDs := make(map[string]struct{}, len(rawLinks))
	for i, rl := range rawLinks {
		path := fmt.Sprintf("links[%d]", i)
		l, err := parseLink(rl, path, &warnings)
		if err != nil {
			return nil, err
		}
		if _, dup := linkIDs[l.ID]; dup {
			return nil, errs.Schema(ErrDuplicateID, "%s: link id %q", path, l.ID)
		}
		linkIDs[l.ID] = struct{}{}
		if _, ok := certIDs[l.SourceID]; !ok {
			return nil, errs.Schema(ErrDanglingReference, "%s: sourceId %q does not exist", path, l.SourceID)
		}
		if _, ok := certIDs[l.TargetID]; !ok {
			return nil, errs.Schema(ErrDanglingReference, "%s: targetId %q does not exist", path, l.TargetID)
		}
		links = append(links, l)
	}

	return &Catalog{Certs: certs, Links: links, Warnings: warnings}, nil
}

func parseCert(raw any, path string, warnings *[]string) (Cert, error) {
	obj, ok := asObject(raw)
	if !ok {
		return Cert{}, errs.Schema(ErrNotObject, "%s is not an object", path)
	}
	if err := requireKeys(obj, certRequired, path); err != nil {
		return Cert{}, err
	}

	f := fields{obj: obj, path: path, warnings: warnings}
	c := Cert{ID: f.id("id")}

	if v := f.str("vendor", true); f.err == nil {
		c.Vendor = Vendor(v)
		if !c.Vendor.Valid() {
			f.fail(ErrUnknownValue, "vendor %q", v)
		}
	}
	if v := f.str("level", true); f.err == nil {
		c.Level = Level(v)
		if !c.Level.Valid() {
			f.fail(ErrUnknownValue, "level %q", v)
		}
	}
	c.Title = f.str("title", true)

	if roles := f.strs("roles", true); f.err == nil {
		if len(roles) == 0 {
			f.fail(ErrWrongType, "roles must be a non-empty sequence")
		}
		for _, r := range roles {
			rt := RoleTrack(r)
			if !rt.Valid() {
				f.fail(ErrUnknownValue, "role %q", r)
				break
			}
			c.Roles = append(c.Roles, rt)
		}
	}

	c.LevelDisplay = f.str("levelDisplay", false)
	c.Exam = f.str("exam", false)
	c.RolesDisplay = f.strs("rolesDisplay", false)
	c.Domain = f.str("domain", false)
	c.URL = f.str("url", false)
	c.Description = f.str("description", false)
	c.Price = f.str("price", false)
	c.LastUpdate = f.str("lastUpdate", false)
	c.ScoreToPass = f.integer("scoreToPass")
	c.Prerequisites = f.str("prerequisites", false)
	c.ValidityPeriod = f.str("validityPeriod", false)
	c.ExamLength = f.str("examLength", false)
	c.ExamFormat = f.str("examFormat", false)
	c.ExamLanguages = f.strs("examLanguages", false)
	c.RenewalAvailable = f.boolean("renewalAvailable")
	c.RenewalPrice = f.str("renewalPrice", false)
	c.OfficialResources = f.resources("officialResources")

	return c, f.err
}

func parseLink(raw any, path string, warnings *[]string) (Link, error) {
	obj, ok := asObject(raw)
	if !ok {
		return Link{}, errs.Schema(ErrNotObject, "%s is not an object", path)
	}
	if err := requireKeys(obj, linkRequired, path); err != nil {
		return Link{}, err
	}

	f := fields{obj: obj, path: path, warnings: warnings}
	l := Link{
		ID:       f.id("id"),
		SourceID: f.str("sourceId", true),
		TargetID: f.str("targetId", true),
	}
	if v := f.str("type", true); f.err == nil {
		l.Type = LinkType(v)
		if !l.Type.Valid() {
			f.fail(ErrUnknownValue, "link type %q", v)
		}
	}
	l.TrainingTitle = f.str("trainingTitle", false)
	l.TrainingURL = f.str("trainingUrl", false)

	return l, f.err
}

// fields reads typed values out of one raw object, remembering the first
// failure so parse functions can read linearly. Malformed optional values
// are dropped into warnings.
type fields struct {
	obj      map[string]any
	path     string
	err      error
	warnings *[]string
}

func (f *fields) fail(cause error, format string, args ...any) {
	if f.err == nil {
		f.err = errs.Schema(cause, "%s: %s", f.path, fmt.Sprintf(format, args...))
	}
}

// drop records an optional value that was skipped.
func (f *fields) drop(key, format string, args ...any) {
	if f.warnings != nil {
		*f.warnings = append(*f.warnings, fmt.Sprintf("%s.%s: %s; dropped", f.path, key, fmt.Sprintf(format, args...)))
	}
}

// get returns the value for key. Optional keys holding null count as absent.
func (f *fields) get(key string) (any, bool) {
	if f.err != nil {
		return nil, false
	}
	v, ok := f.obj[key]
	return v, ok
}

func (f *fields) id(key string) string {
	v, _ := f.get(key)
	if f.err != nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		f.fail(ErrEmptyID, "%s", key)
		return ""
	}
	if err := errs.ValidateID(s); err != nil {
		f.fail(ErrEmptyID, "%s: %s", key, errs.UserMessage(err))
		return ""
	}
	return s
}

func (f *fields) str(key string, required bool) string {
	v, ok := f.get(key)
	if !ok || (v == nil && !required) {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		if required {
			f.fail(ErrWrongType, "%s must be a string", key)
		} else {
			f.drop(key, "not a string")
		}
		return ""
	}
	return s
}

func (f *fields) strs(key string, required bool) []string {
	v, ok := f.get(key)
	if !ok || (v == nil && !required) {
		return nil
	}
	seq, ok := asSeq(v)
	if !ok {
		if required {
			f.fail(ErrWrongType, "%s must be a sequence", key)
		} else {
			f.drop(key, "not a sequence")
		}
		return nil
	}
	out := make([]string, 0, len(seq))
	for i, item := range seq {
		s, ok := item.(string)
		if !ok {
			if required {
				f.fail(ErrWrongType, "%s[%d] must be a string", key, i)
			} else {
				f.drop(key, "item %d is not a string", i)
			}
			return nil
		}
		out = append(out, s)
	}
	return out
}

func (f *fields) integer(key string) int {
	v, ok := f.get(key)
	if !ok || v == nil {
		return 0
	}
	n, ok := asInt(v)
	if !ok {
		f.drop(key, "not an integer")
		return 0
	}
	return n
}

func (f *fields) boolean(key string) bool {
	v, ok := f.get(key)
	if !ok || v == nil {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		f.drop(key, "not a boolean")
	}
	return b
}

func (f *fields) resources(key string) []Resource {
	v, ok := f.get(key)
	if !ok || v == nil {
		return nil
	}
	seq, ok := asSeq(v)
	if !ok {
		f.drop(key, "not a sequence")
		return nil
	}
	out := make([]Resource, 0, len(seq))
	for i, item := range seq {
		obj, ok := asObject(item)
		if !ok {
			f.drop(fmt.Sprintf("%s[%d]", key, i), "not an object")
			continue
		}
		title, _ := obj["title"].(string)
		url, _ := obj["url"].(string)
		if title == "" || url == "" {
			f.drop(fmt.Sprintf("%s[%d]", key, i), "needs string title and url")
			continue
		}
		out = append(out, Resource{Title: title, URL: url})
	}
	return out
}

func requireKeys(obj map[string]any, keys []string, path string) error {
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			return errs.Schema(ErrMissingField, "%s: field %q", path, k)
		}
	}
	return nil
}

func requireSeq(obj map[string]any, key, path string) ([]any, error) {
	v, ok := obj[key]
	if !ok {
		return nil, errs.Schema(ErrMissingField, "%s: field %q", path, key)
	}
	seq, ok := asSeq(v)
	if !ok {
		return nil, errs.Schema(ErrWrongType, "%s: %q must be a sequence", path, key)
	}
	return seq, nil
}

// asObject accepts the map shapes produced by encoding/json, yaml.v3 and
// BurntSushi/toml.
func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

// asSeq accepts []any and the []map[string]any that TOML arrays of tables
// decode into.
func asSeq(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []map[string]any:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true
	}
	return nil, false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}
