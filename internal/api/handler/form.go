package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	apischema "github.com/projectflow-dev/projectflow/internal/api/schema"
	"github.com/projectflow-dev/projectflow/internal/formstore"
	"github.com/projectflow-dev/projectflow/pkg/schema"
)

// FormHandler serves form CRUD and per-field schema operations.
type FormHandler struct {
	Store *formstore.Store
}

type listFormsOutput struct {
	Body []formstore.Form
}

type createFormInput struct {
	Body apischema.CreateForm
}

type formOutput struct {
	Body formstore.Form
}

type formIDInput struct {
	ID string `path:"id"`
}

type updateFormInput struct {
	ID   string `path:"id"`
	Body apischema.UpdateForm
}

type putSchemaInput struct {
	ID   string `path:"id"`
	Body apischema.SchemaPut
}

type schemaOutput struct {
	Body schema.Schema
}

type listFieldsOutput struct {
	Body []schema.Field
}

type addFieldInput struct {
	ID   string `path:"id"`
	Body schema.Field
}

type fieldOutput struct {
	Body schema.Field
}

type updateFieldInput struct {
	ID      string `path:"id"`
	FieldID string `path:"fieldId"`
	Body    schema.FieldPatch
}

type fieldIDInput struct {
	ID      string `path:"id"`
	FieldID string `path:"fieldId"`
}

type reorderInput struct {
	ID   string `path:"id"`
	Body apischema.Reorder
}

func RegisterForms(api huma.API, h *FormHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "listForms",
		Method:      http.MethodGet,
		Path:        "/v1/forms",
		Summary:     "List forms",
		Tags:        []string{"Form"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID:   "createForm",
		Method:        http.MethodPost,
		Path:          "/v1/forms",
		Summary:       "Create form",
		Tags:          []string{"Form"},
		DefaultStatus: http.StatusCreated,
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "getForm",
		Method:      http.MethodGet,
		Path:        "/v1/forms/{id}",
		Summary:     "Get form",
		Tags:        []string{"Form"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "updateForm",
		Method:      http.MethodPatch,
		Path:        "/v1/forms/{id}",
		Summary:     "Update form metadata",
		Tags:        []string{"Form"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID:   "deleteForm",
		Method:        http.MethodDelete,
		Path:          "/v1/forms/{id}",
		Summary:       "Delete form",
		Tags:          []string{"Form"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
	huma.Register(api, huma.Operation{
		OperationID: "getFormSchema",
		Method:      http.MethodGet,
		Path:        "/v1/forms/{id}/schema",
		Summary:     "Get form schema",
		Tags:        []string{"Schema"},
	}, h.getSchema)
	huma.Register(api, huma.Operation{
		OperationID: "putFormSchema",
		Method:      http.MethodPut,
		Path:        "/v1/forms/{id}/schema",
		Summary:     "Replace form schema",
		Tags:        []string{"Schema"},
	}, h.putSchema)
	huma.Register(api, huma.Operation{
		OperationID: "listFormFields",
		Method:      http.MethodGet,
		Path:        "/v1/forms/{id}/fields",
		Summary:     "List form fields",
		Tags:        []string{"Field"},
	}, h.listFields)
	huma.Register(api, huma.Operation{
		OperationID:   "addFormField",
		Method:        http.MethodPost,
		Path:          "/v1/forms/{id}/fields",
		Summary:       "Append a field",
		Tags:          []string{"Field"},
		DefaultStatus: http.StatusCreated,
	}, h.addField)
	huma.Register(api, huma.Operation{
		OperationID: "updateFormField",
		Method:      http.MethodPut,
		Path:        "/v1/forms/{id}/fields/{fieldId}",
		Summary:     "Update a field",
		Tags:        []string{"Field"},
	}, h.updateField)
	huma.Register(api, huma.Operation{
		OperationID:   "removeFormField",
		Method:        http.MethodDelete,
		Path:          "/v1/forms/{id}/fields/{fieldId}",
		Summary:       "Remove a field",
		Tags:          []string{"Field"},
		DefaultStatus: http.StatusNoContent,
	}, h.removeField)
	huma.Register(api, huma.Operation{
		OperationID: "reorderFormFields",
		Method:      http.MethodPatch,
		Path:        "/v1/forms/{id}/fields/reorder",
		Summary:     "Reorder form fields",
		Tags:        []string{"Field"},
		Errors:      []int{http.StatusBadRequest},
	}, h.reorder)
}

func (h *FormHandler) list(ctx context.Context, _ *struct{}) (*listFormsOutput, error) {
	return &listFormsOutput{Body: h.Store.List()}, nil
}

func (h *FormHandler) create(ctx context.Context, in *createFormInput) (*formOutput, error) {
	f := h.Store.Create(in.Body.Title, in.Body.Description)
	return &formOutput{Body: f}, nil
}

func (h *FormHandler) get(ctx context.Context, in *formIDInput) (*formOutput, error) {
	f, err := h.Store.Get(in.ID)
	if err != nil {
		return nil, storeError(err)
	}
	return &formOutput{Body: f}, nil
}

func (h *FormHandler) update(ctx context.Context, in *updateFormInput) (*formOutput, error) {
	f, err := h.Store.UpdateMeta(in.ID, in.Body.Title, in.Body.Description)
	if err != nil {
		return nil, storeError(err)
	}
	return &formOutput{Body: f}, nil
}

func (h *FormHandler) delete(ctx context.Context, in *formIDInput) (*struct{}, error) {
	if err := h.Store.Delete(in.ID); err != nil {
		return nil, storeError(err)
	}
	return &struct{}{}, nil
}

func (h *FormHandler) getSchema(ctx context.Context, in *formIDInput) (*schemaOutput, error) {
	f, err := h.Store.Get(in.ID)
	if err != nil {
		return nil, storeError(err)
	}
	return &schemaOutput{Body: f.Schema()}, nil
}

func (h *FormHandler) putSchema(ctx context.Context, in *putSchemaInput) (*formOutput, error) {
	doc := schema.Schema{Title: in.Body.Title, Description: in.Body.Description, Fields: in.Body.Fields}
	for i := range doc.Fields {
		if err := doc.Fields[i].Validate(); err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
	}
	f, err := h.Store.ReplaceSchema(in.ID, doc)
	if err != nil {
		return nil, storeError(err)
	}
	return &formOutput{Body: f}, nil
}

func (h *FormHandler) listFields(ctx context.Context, in *formIDInput) (*listFieldsOutput, error) {
	fields, err := h.Store.Fields(in.ID)
	if err != nil {
		return nil, storeError(err)
	}
	return &listFieldsOutput{Body: fields}, nil
}

func (h *FormHandler) addField(ctx context.Context, in *addFieldInput) (*fieldOutput, error) {
	if !in.Body.Type.Valid() {
		return nil, huma.NewError(http.StatusBadRequest, "unknown field type", &huma.ErrorDetail{Location: "body.type", Message: "unknown field type"})
	}
	// the store assigns the id; clients may send a full field or just a type
	fld, err := h.Store.AddField(in.ID, in.Body)
	if err != nil {
		return nil, storeError(err)
	}
	return &fieldOutput{Body: fld}, nil
}

func (h *FormHandler) updateField(ctx context.Context, in *updateFieldInput) (*fieldOutput, error) {
	fld, err := h.Store.UpdateField(in.ID, in.FieldID, in.Body)
	if err != nil {
		return nil, storeError(err)
	}
	return &fieldOutput{Body: fld}, nil
}

func (h *FormHandler) removeField(ctx context.Context, in *fieldIDInput) (*struct{}, error) {
	if err := h.Store.RemoveField(in.ID, in.FieldID); err != nil {
		return nil, storeError(err)
	}
	return &struct{}{}, nil
}

func (h *FormHandler) reorder(ctx context.Context, in *reorderInput) (*listFieldsOutput, error) {
	fields, err := h.Store.Reorder(in.ID, in.Body.Order)
	if err != nil {
		return nil, storeError(err)
	}
	return &listFieldsOutput{Body: fields}, nil
}

// storeError maps store sentinels onto HTTP status codes.
func storeError(err error) error {
	switch {
	case errors.Is(err, formstore.ErrNotFound), errors.Is(err, formstore.ErrFieldNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, formstore.ErrOrderMismatch):
		return huma.Error400BadRequest(err.Error())
	default:
		return huma.Error400BadRequest(err.Error())
	}
}
