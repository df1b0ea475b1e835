package handler

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	apischema "github.com/projectflow-dev/projectflow/internal/api/schema"
	"github.com/projectflow-dev/projectflow/internal/userstore"
)

// UserHandler serves the user directory consumed by assignment pickers and
// dynamic select options.
type UserHandler struct {
	Store *userstore.Store
}

type listUsersOutput struct {
	Body []userstore.User
}

type createUserInput struct {
	Body apischema.CreateUser
}

type userOutput struct {
	Body userstore.User
}

func RegisterUsers(api huma.API, h *UserHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/v1/users",
		Summary:     "List users",
		Tags:        []string{"User"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID:   "createUser",
		Method:        http.MethodPost,
		Path:          "/v1/users",
		Summary:       "Create user",
		Tags:          []string{"User"},
		DefaultStatus: http.StatusCreated,
	}, h.create)
}

func (h *UserHandler) list(ctx context.Context, _ *struct{}) (*listUsersOutput, error) {
	return &listUsersOutput{Body: h.Store.List()}, nil
}

func (h *UserHandler) create(ctx context.Context, in *createUserInput) (*userOutput, error) {
	u := h.Store.Create(in.Body.Name, in.Body.Email)
	return &userOutput{Body: u}, nil
}
