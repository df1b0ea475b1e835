package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	apischema "github.com/projectflow-dev/projectflow/internal/api/schema"
	"github.com/projectflow-dev/projectflow/internal/projectstore"
)

// ProjectHandler serves the project records captured by rendered forms.
type ProjectHandler struct {
	Store *projectstore.Store
}

type listProjectsOutput struct {
	Body []projectstore.Project
}

type createProjectInput struct {
	Body apischema.CreateProject
}

type projectOutput struct {
	Body projectstore.Project
}

type projectIDInput struct {
	ID string `path:"id"`
}

type updateProjectInput struct {
	ID   string `path:"id"`
	Body apischema.UpdateProject
}

func RegisterProjects(api huma.API, h *ProjectHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "listProjects",
		Method:      http.MethodGet,
		Path:        "/v1/projects",
		Summary:     "List projects",
		Tags:        []string{"Project"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID:   "createProject",
		Method:        http.MethodPost,
		Path:          "/v1/projects",
		Summary:       "Create project",
		Tags:          []string{"Project"},
		DefaultStatus: http.StatusCreated,
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "getProject",
		Method:      http.MethodGet,
		Path:        "/v1/projects/{id}",
		Summary:     "Get project",
		Tags:        []string{"Project"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "updateProject",
		Method:      http.MethodPatch,
		Path:        "/v1/projects/{id}",
		Summary:     "Update project",
		Tags:        []string{"Project"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID:   "deleteProject",
		Method:        http.MethodDelete,
		Path:          "/v1/projects/{id}",
		Summary:       "Delete project",
		Tags:          []string{"Project"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

func (h *ProjectHandler) list(ctx context.Context, _ *struct{}) (*listProjectsOutput, error) {
	return &listProjectsOutput{Body: h.Store.List()}, nil
}

func (h *ProjectHandler) create(ctx context.Context, in *createProjectInput) (*projectOutput, error) {
	if in.Body.Name == "" {
		return nil, huma.NewError(http.StatusBadRequest, "name required", &huma.ErrorDetail{Location: "body.name", Message: "required"})
	}
	p := h.Store.Create(in.Body.Name, in.Body.Code, in.Body.Description, in.Body.Attributes)
	return &projectOutput{Body: p}, nil
}

func (h *ProjectHandler) get(ctx context.Context, in *projectIDInput) (*projectOutput, error) {
	p, err := h.Store.Get(in.ID)
	if err != nil {
		return nil, projectError(err)
	}
	return &projectOutput{Body: p}, nil
}

func (h *ProjectHandler) update(ctx context.Context, in *updateProjectInput) (*projectOutput, error) {
	p, err := h.Store.Update(in.ID, in.Body.Name, in.Body.Code, in.Body.Description, in.Body.Attributes)
	if err != nil {
		return nil, projectError(err)
	}
	return &projectOutput{Body: p}, nil
}

func (h *ProjectHandler) delete(ctx context.Context, in *projectIDInput) (*struct{}, error) {
	if err := h.Store.Delete(in.ID); err != nil {
		return nil, projectError(err)
	}
	return &struct{}{}, nil
}

func projectError(err error) error {
	if errors.Is(err, projectstore.ErrNotFound) {
		return huma.Error404NotFound(err.Error())
	}
	return huma.Error400BadRequest(err.Error())
}
