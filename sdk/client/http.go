package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/projectflow-dev/projectflow/pkg/schema"
	sdk "github.com/projectflow-dev/projectflow/sdk"
)

type httpClient struct {
	base string
	http *resty.Client
}

// Option configures the HTTP client.
type Option func(*httpClient)

// WithToken sets the Authorization token.
func WithToken(tok string) Option {
	return func(c *httpClient) {
		c.http.SetAuthToken(tok)
	}
}

// WithRestyClient replaces the underlying resty client.
func WithRestyClient(rc *resty.Client) Option {
	return func(c *httpClient) {
		if rc != nil {
			c.http = rc
		}
	}
}

// NewHTTP returns a Client for the given base URL.
func NewHTTP(base string, opts ...Option) Client {
	c := &httpClient{base: base, http: resty.New()}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) ListForms(ctx context.Context) ([]sdk.FormSummary, error) {
	var out []sdk.FormSummary
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get(c.base + "/v1/forms")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, restyErr(resp)
	}
	return out, nil
}

func (c *httpClient) CreateForm(ctx context.Context, title, description string) (*sdk.FormSummary, error) {
	var out sdk.FormSummary
	body := map[string]any{"title": title, "description": description}
	resp, err := c.http.R().SetContext(ctx).SetBody(body).SetResult(&out).Post(c.base + "/v1/forms")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, restyErr(resp)
	}
	return &out, nil
}

func (c *httpClient) DeleteForm(ctx context.Context, id string) error {
	resp, err := c.http.R().SetContext(ctx).Delete(c.base + "/v1/forms/" + id)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return restyErr(resp)
	}
	return nil
}

func (c *httpClient) GetSchema(ctx context.Context, id string) (*sdk.FormDetails, error) {
	var out sdk.FormDetails
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get(c.base + "/v1/forms/" + id + "/schema")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, restyErr(resp)
	}
	return &out, nil
}

func (c *httpClient) ReplaceSchema(ctx context.Context, id string, s schema.Schema) (*sdk.FormDetails, error) {
	var out sdk.FormDetails
	resp, err := c.http.R().SetContext(ctx).SetBody(s).SetResult(&out).Put(c.base + "/v1/forms/" + id + "/schema")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, restyErr(resp)
	}
	return &out, nil
}

func (c *httpClient) ListFields(ctx context.Context, formID string) ([]schema.Field, error) {
	var out []schema.Field
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get(c.base + "/v1/forms/" + formID + "/fields")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, restyErr(resp)
	}
	return out, nil
}

func (c *httpClient) AddField(ctx context.Context, formID string, f schema.Field) (*schema.Field, error) {
	var out schema.Field
	resp, err := c.http.R().SetContext(ctx).SetBody(f).SetResult(&out).Post(c.base + "/v1/forms/" + formID + "/fields")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, restyErr(resp)
	}
	return &out, nil
}

func (c *httpClient) UpdateField(ctx context.Context, formID, fieldID string, patch schema.FieldPatch) (*schema.Field, error) {
	var out schema.Field
	resp, err := c.http.R().SetContext(ctx).SetBody(patch).SetResult(&out).
		Put(c.base + "/v1/forms/" + formID + "/fields/" + fieldID)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, restyErr(resp)
	}
	return &out, nil
}

func (c *httpClient) RemoveField(ctx context.Context, formID, fieldID string) error {
	resp, err := c.http.R().SetContext(ctx).Delete(c.base + "/v1/forms/" + formID + "/fields/" + fieldID)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return restyErr(resp)
	}
	return nil
}

func (c *httpClient) ReorderFields(ctx context.Context, formID string, order []string) ([]schema.Field, error) {
	var out []schema.Field
	body := map[string]any{"order": order}
	resp, err := c.http.R().SetContext(ctx).SetBody(body).SetResult(&out).
		Patch(c.base + "/v1/forms/" + formID + "/fields/reorder")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, restyErr(resp)
	}
	return out, nil
}

func (c *httpClient) Mode() string { return "http" }

func restyErr(resp *resty.Response) error {
	if resp.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, resp.Request.URL)
	}
	var body struct {
		Detail string `json:"detail"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		if body.Detail != "" {
			return fmt.Errorf("%s: %s", resp.Status(), body.Detail)
		}
		if body.Title != "" {
			return fmt.Errorf("%s: %s", resp.Status(), body.Title)
		}
	}
	return fmt.Errorf("%s", resp.Status())
}
