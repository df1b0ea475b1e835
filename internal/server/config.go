package server

import (
	"github.com/projectflow-dev/projectflow/internal/formstore"
	"github.com/projectflow-dev/projectflow/internal/projectstore"
	"github.com/projectflow-dev/projectflow/internal/userstore"
	"github.com/projectflow-dev/projectflow/pkg/renderer"
)

// Config holds the stores and services the API server wires together.
type Config struct {
	Forms    *formstore.Store
	Projects *projectstore.Store
	Users    *userstore.Store
	Renderer *renderer.Renderer
}
