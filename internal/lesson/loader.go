package lesson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jask/skillbuilder/internal/logger"
)

// maxDescriptorBytes caps what a loader reads from any locator.
const maxDescriptorBytes = 4 << 20

// LoadError reports a descriptor that could not be fetched, parsed or
// validated. It is fatal to the lesson instance.
type LoadError struct {
	Locator string
	Op      string // fetch, parse or validate
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load lesson %s: %s: %v", e.Locator, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*$`)

// Loader fetches descriptors from http(s) URLs, file:// URLs or paths.
type Loader struct {
	Client *http.Client
	Log    *logger.Logger
}

func NewLoader(timeout time.Duration, log *logger.Logger) *Loader {
	return &Loader{Client: &http.Client{Timeout: timeout}, Log: logger.OrNop(log)}
}

// Load fetches, parses and validates the descriptor at locator.
func (l *Loader) Load(ctx context.Context, locator string) (*Descriptor, error) {
	raw, format, err := l.fetch(ctx, locator)
	if err != nil {
		return nil, &LoadError{Locator: locator, Op: "fetch", Err: err}
	}
	d, hints, err := Parse(raw, format)
	if err != nil {
		return nil, &LoadError{Locator: locator, Op: "parse", Err: err}
	}
	log := logger.OrNop(l.Log).With("locator", locator)
	for _, h := range hints {
		log.Warn("unknown descriptor field", "field", h.Field, "suggestion", h.Suggestion)
	}
	dropped, err := d.validate()
	if err != nil {
		return nil, &LoadError{Locator: locator, Op: "validate", Err: err}
	}
	if dropped > 0 {
		log.Warn("dropped reactions without id", "count", dropped)
	}
	log.Debug("lesson loaded", "lesson", d.ID, "steps", len(d.Steps))
	return d, nil
}

// Format is the serialization of a descriptor.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (l *Loader) fetch(ctx context.Context, locator string) ([]byte, Format, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return nil, FormatJSON, errors.New("empty locator")
	}
	u, err := url.Parse(locator)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return l.fetchHTTP(ctx, locator, u)
	}
	path := locator
	if err == nil && u.Scheme == "file" {
		path = u.Path
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, FormatJSON, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxDescriptorBytes))
	if err != nil {
		return nil, FormatJSON, err
	}
	return data, formatFromExt(path), nil
}

func (l *Loader) fetchHTTP(ctx context.Context, locator string, u *url.URL) ([]byte, Format, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, FormatJSON, err
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, FormatJSON, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, FormatJSON, fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDescriptorBytes))
	if err != nil {
		return nil, FormatJSON, err
	}
	format := formatFromExt(u.Path)
	if strings.Contains(resp.Header.Get("Content-Type"), "yaml") {
		format = FormatYAML
	}
	return data, format, nil
}

func formatFromExt(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes raw into a descriptor and reports unknown keys with the
// closest known key. It does not validate.
func Parse(raw []byte, format Format) (*Descriptor, []FieldHint, error) {
	var (
		d    Descriptor
		tree map[string]any
	)
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, nil, err
		}
		if err := yaml.Unmarshal(raw, &d); err != nil {
			return nil, nil, err
		}
	default:
		if err := json.Unmarshal(raw, &tree); err != nil {
			return nil, nil, err
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, nil, err
		}
	}
	if tree == nil {
		return nil, nil, errors.New("descriptor is empty")
	}
	return &d, unknownFields(tree), nil
}

// validate fixes defaults in place and rejects descriptors whose keys could
// collide. It returns how many reactions were dropped for lacking an id.
func (d *Descriptor) validate() (int, error) {
	d.ID = strings.TrimSpace(d.ID)
	if d.ID == "" {
		return 0, errors.New("id is required")
	}
	if !idPattern.MatchString(d.ID) {
		return 0, fmt.Errorf("id %q must contain only letters, digits and '-'", d.ID)
	}
	for i := range d.Steps {
		d.Steps[i].Media = normalizeMedia(d.Steps[i].MediaFile, d.Steps[i].MediaType)
	}
	seen := make(map[string]struct{}, len(d.Reactions))
	kept := d.Reactions[:0]
	dropped := 0
	for _, r := range d.Reactions {
		r.ID = strings.TrimSpace(r.ID)
		if r.ID == "" {
			dropped++
			continue
		}
		if !idPattern.MatchString(r.ID) {
			return 0, fmt.Errorf("reaction id %q must contain only letters, digits and '-'", r.ID)
		}
		if _, dup := seen[r.ID]; dup {
			return 0, fmt.Errorf("duplicate reaction id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
		kept = append(kept, r)
	}
	d.Reactions = kept
	return dropped, nil
}
