package renderer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/projectflow-dev/projectflow/internal/metrics"
	"github.com/projectflow-dev/projectflow/pkg/schema"
)

// ErrStale is returned when a fetch completed after its field's data source
// changed and no fresher result is available yet.
var ErrStale = errors.New("option fetch superseded")

// Resolver fetches option lists from configured data source endpoints. Each
// field id carries a generation counter; Invalidate bumps it, and a fetch
// that finishes against an old generation is discarded so the most recent
// configuration always wins.
type Resolver struct {
	http *resty.Client

	mu    sync.Mutex
	gen   map[string]uint64
	cache map[string]cachedOptions
}

type cachedOptions struct {
	gen  uint64
	opts []schema.Option
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithHTTPClient replaces the default resty client.
func WithHTTPClient(c *resty.Client) ResolverOption {
	return func(r *Resolver) {
		if c != nil {
			r.http = c
		}
	}
}

// NewResolver returns a resolver with its own HTTP client.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		http:  resty.New(),
		gen:   make(map[string]uint64),
		cache: make(map[string]cachedOptions),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Invalidate marks any in-flight fetch for the field as stale and drops its
// cached options. Call it whenever a field's data source configuration
// changes.
func (r *Resolver) Invalidate(fieldID string) {
	r.mu.Lock()
	r.gen[fieldID]++
	delete(r.cache, fieldID)
	r.mu.Unlock()
}

// Load resolves the option list for a field with a data source. The result
// is cached per field until invalidated. When the fetch lands on a stale
// generation the current cache is returned instead; ErrStale only surfaces
// when nothing fresher exists.
func (r *Resolver) Load(ctx context.Context, f schema.Field) ([]schema.Option, error) {
	if f.DataSource == nil || f.DataSource.URL == "" {
		return nil, fmt.Errorf("field %s has no data source", f.ID)
	}

	r.mu.Lock()
	g := r.gen[f.ID]
	if c, ok := r.cache[f.ID]; ok && c.gen == g {
		r.mu.Unlock()
		return c.opts, nil
	}
	r.mu.Unlock()

	opts, err := r.fetch(ctx, *f.DataSource)
	if err != nil {
		metrics.OptionFetches.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.OptionFetches.WithLabelValues("ok").Inc()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen[f.ID] != g {
		if c, ok := r.cache[f.ID]; ok && c.gen == r.gen[f.ID] {
			return c.opts, nil
		}
		return nil, ErrStale
	}
	r.cache[f.ID] = cachedOptions{gen: g, opts: opts}
	return opts, nil
}

func (r *Resolver) fetch(ctx context.Context, ds schema.DataSource) ([]schema.Option, error) {
	req := r.http.R().SetContext(ctx).SetHeader("Content-Type", "application/json")
	var (
		resp *resty.Response
		err  error
	)
	if ds.Method == http.MethodPost {
		resp, err = req.Post(ds.URL)
	} else {
		resp, err = req.Get(ds.URL)
	}
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("option endpoint returned %s", resp.Status())
	}

	var body any
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode option response: %w", err)
	}
	items, ok := body.([]any)
	if !ok {
		// A bare object counts as a single-element array.
		items = []any{body}
	}

	labelPath := ds.LabelPath
	if labelPath == "" {
		labelPath = "label"
	}
	valuePath := ds.ValuePath
	if valuePath == "" {
		valuePath = "value"
	}

	opts := make([]schema.Option, 0, len(items))
	for _, item := range items {
		opts = append(opts, schema.Option{
			Label: stringify(lookupPath(item, labelPath)),
			Value: stringify(lookupPath(item, valuePath)),
		})
	}
	return opts, nil
}

// lookupPath walks a dotted path ("data.title") through nested JSON objects.
func lookupPath(v any, path string) any {
	cur := v
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
