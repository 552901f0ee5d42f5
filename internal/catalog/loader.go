// Package catalog loads the service/plan catalog and keeps the mutable
// collections of user-defined services next to it.
package catalog

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
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/cotizador/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnavailable indicates the catalog could not be loaded. Callers treat it
// as fatal: nothing works without a catalog.
var ErrUnavailable = errors.New("catalog unavailable")

// document is the wire shape of a catalog file.
type document struct {
	AllServices  map[string]domain.Category `json:"allServices"`
	MonthlyPlans []domain.Plan              `json:"monthlyPlans"`
}

// Loader fetches catalog documents from files or HTTP endpoints.
type Loader struct {
	http *http.Client
	now  func() time.Time
}

// NewLoader returns a Loader. A nil client uses a client with a 10s timeout.
func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Loader{http: client, now: time.Now}
}

// Load reads, validates and decodes the catalog at source, which is either a
// file path or an http(s) URL. YAML is accepted for .yaml/.yml sources.
func (l *Loader) Load(ctx context.Context, source string) (*domain.Catalog, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: no catalog source configured", ErrUnavailable)
	}

	var (
		data []byte
		err  error
	)
	if isURL(source) {
		data, err = l.fetch(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if isYAML(source) {
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return cat, nil
}

// Parse validates a JSON catalog document and decodes it.
func Parse(data []byte) (*domain.Catalog, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return domain.NewCatalog(doc.AllServices, doc.MonthlyPlans), nil
}

// fetch downloads the document with a cache-busting query parameter so
// intermediate caches never serve a stale catalog.
func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog url: %w", err)
	}
	q := u.Query()
	q.Set("v", strconv.FormatInt(l.now().UnixNano(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog endpoint returned status %d", resp.StatusCode)
	}
	return body, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing yaml catalog: %w", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("converting yaml catalog: %w", err)
	}
	return out, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func isYAML(source string) bool {
	if isURL(source) {
		if u, err := url.Parse(source); err == nil {
			source = u.Path
		}
	}
	ext := strings.ToLower(filepath.Ext(source))
	return ext == ".yaml" || ext == ".yml"
}
