package handler

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/projectflow-dev/projectflow/pkg/schema"
)

// CatalogHandler serves the component palette.
type CatalogHandler struct{}

type catalogOutput struct {
	Body []schema.ComponentType
}

func RegisterCatalog(api huma.API, h *CatalogHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "listComponents",
		Method:      http.MethodGet,
		Path:        "/v1/components",
		Summary:     "List form component types",
		Tags:        []string{"Catalog"},
	}, h.list)
}

func (h *CatalogHandler) list(ctx context.Context, _ *struct{}) (*catalogOutput, error) {
	return &catalogOutput{Body: schema.Catalog()}, nil
}
