package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/projectflow-dev/projectflow/pkg/schema"
)

// FormClient is the subset of the client contract the service facade needs.
// It is satisfied by both the HTTP and the local client.
type FormClient interface {
	ListForms(ctx context.Context) ([]FormSummary, error)
	GetSchema(ctx context.Context, id string) (*FormDetails, error)
	ReplaceSchema(ctx context.Context, id string, s schema.Schema) (*FormDetails, error)
}

// Config configures the service facade.
type Config struct {
	Client FormClient
	Logger *zap.SugaredLogger
}

// Service bundles schema import/export conveniences on top of a client.
type Service struct {
	client FormClient
	logger *zap.SugaredLogger
}

// New returns a Service. A nil logger defaults to a no-op.
func New(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{client: cfg.Client, logger: logger}
}

// Format names a schema document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ExportSchema writes the form's schema document to w in the given format.
func (s *Service) ExportSchema(ctx context.Context, id string, w io.Writer, format Format) error {
	details, err := s.client.GetSchema(ctx, id)
	if err != nil {
		return err
	}
	doc := details.Schema()
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(doc)
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// ApplySchema reads a schema document from r and replaces the form's schema
// with it, returning the stored representation.
func (s *Service) ApplySchema(ctx context.Context, id string, r io.Reader, format Format) (*FormDetails, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc schema.Schema
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("parse schema: %w", err)
		}
	case FormatJSON, "":
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("parse schema: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	for _, f := range doc.Fields {
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}
	s.logger.Infow("applying schema", "form", id, "fields", len(doc.Fields))
	return s.client.ReplaceSchema(ctx, id, doc)
}
