package builder

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/projectflow-dev/projectflow/pkg/schema"
	"github.com/projectflow-dev/projectflow/sdk"
	"github.com/projectflow-dev/projectflow/sdk/client"
)

// fakeClient serves canned forms and records schema replacements.
type fakeClient struct {
	forms       map[string]*sdk.FormDetails
	replaced    int
	fail        error
	failReplace error
}

func newFakeClient(forms ...*sdk.FormDetails) *fakeClient {
	m := make(map[string]*sdk.FormDetails)
	for _, f := range forms {
		m[f.ID] = f
	}
	return &fakeClient{forms: m}
}

func (c *fakeClient) ListForms(context.Context) ([]sdk.FormSummary, error) {
	var out []sdk.FormSummary
	for _, f := range c.forms {
		out = append(out, sdk.FormSummary{ID: f.ID, Title: f.Title, Description: f.Description, UpdatedAt: f.UpdatedAt})
	}
	return out, nil
}

func (c *fakeClient) CreateForm(_ context.Context, title, _ string) (*sdk.FormSummary, error) {
	return &sdk.FormSummary{ID: "f-new", Title: title}, nil
}

func (c *fakeClient) DeleteForm(_ context.Context, id string) error {
	delete(c.forms, id)
	return nil
}

func (c *fakeClient) GetSchema(_ context.Context, id string) (*sdk.FormDetails, error) {
	if c.fail != nil {
		return nil, c.fail
	}
	f, ok := c.forms[id]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", id, client.ErrNotFound)
	}
	cp := f.Clone()
	return &cp, nil
}

func (c *fakeClient) ReplaceSchema(_ context.Context, id string, s schema.Schema) (*sdk.FormDetails, error) {
	if c.failReplace != nil {
		return nil, c.failReplace
	}
	f, ok := c.forms[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	c.replaced++
	f.Title = s.Title
	f.Fields = schema.CloneFields(s.Fields)
	cp := f.Clone()
	return &cp, nil
}

func (c *fakeClient) ListFields(_ context.Context, id string) ([]schema.Field, error) {
	f, ok := c.forms[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return schema.CloneFields(f.Fields), nil
}

func (c *fakeClient) AddField(_ context.Context, id string, fld schema.Field) (*schema.Field, error) {
	f, ok := c.forms[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	f.Fields = append(f.Fields, fld)
	return &fld, nil
}

func (c *fakeClient) UpdateField(_ context.Context, id, fieldID string, p schema.FieldPatch) (*schema.Field, error) {
	f, ok := c.forms[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	for i := range f.Fields {
		if f.Fields[i].ID == fieldID {
			p.Apply(&f.Fields[i])
			cp := f.Fields[i].Clone()
			return &cp, nil
		}
	}
	return nil, client.ErrNotFound
}

func (c *fakeClient) RemoveField(_ context.Context, id, fieldID string) error {
	f, ok := c.forms[id]
	if !ok {
		return client.ErrNotFound
	}
	for i := range f.Fields {
		if f.Fields[i].ID == fieldID {
			f.Fields = append(f.Fields[:i], f.Fields[i+1:]...)
			return nil
		}
	}
	return client.ErrNotFound
}

func (c *fakeClient) ReorderFields(_ context.Context, id string, order []string) ([]schema.Field, error) {
	f, ok := c.forms[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return schema.CloneFields(f.Fields), nil
}

func (c *fakeClient) Mode() string { return "fake" }

func testForm(id string, fieldIDs ...string) *sdk.FormDetails {
	f := &sdk.FormDetails{ID: id, Title: "Form " + id}
	for _, fid := range fieldIDs {
		f.Fields = append(f.Fields, schema.Field{ID: fid, Type: schema.TypeText, Label: fid, Name: fid})
	}
	return f
}

func TestSessionLoadForm(t *testing.T) {
	s := NewSession(newFakeClient(testForm("f-1", "a", "b")))
	if err := s.LoadForm(context.Background(), "f-1"); err != nil {
		t.Fatalf("load: %v", err)
	}
	cur := s.Current()
	if cur == nil || cur.ID != "f-1" || len(cur.Fields) != 2 {
		t.Fatalf("current = %+v", cur)
	}
	if s.Loading() || s.Dirty() || s.NotFound() || s.Err() != "" {
		t.Fatalf("state: loading=%v dirty=%v notfound=%v err=%q", s.Loading(), s.Dirty(), s.NotFound(), s.Err())
	}
}

func TestSessionLoadNotFound(t *testing.T) {
	s := NewSession(newFakeClient())
	err := s.LoadForm(context.Background(), "ghost")
	if !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	if !s.NotFound() {
		t.Fatal("not-found state not set")
	}
	if s.Current() != nil {
		t.Fatal("current survived failed load")
	}
}

func TestSessionLoadError(t *testing.T) {
	c := newFakeClient(testForm("f-1"))
	c.fail = errors.New("boom")
	s := NewSession(c)
	if err := s.LoadForm(context.Background(), "f-1"); err == nil {
		t.Fatal("error swallowed")
	}
	if s.Err() != "boom" {
		t.Fatalf("err message = %q", s.Err())
	}
	if s.NotFound() {
		t.Fatal("transport error flagged as not found")
	}
}

func TestSessionLoadErrorKeepsCurrentForm(t *testing.T) {
	c := newFakeClient(testForm("f-1", "a"))
	s := NewSession(c)
	if err := s.LoadForm(context.Background(), "f-1"); err != nil {
		t.Fatalf("load: %v", err)
	}

	c.fail = errors.New("boom")
	if err := s.LoadForm(context.Background(), "f-1"); err == nil {
		t.Fatal("error swallowed")
	}
	cur := s.Current()
	if cur == nil || cur.ID != "f-1" || len(cur.Fields) != 1 {
		t.Fatalf("transient load failure discarded the loaded form: %+v", cur)
	}
	if s.Err() != "boom" {
		t.Fatalf("err message = %q", s.Err())
	}
}

func TestSessionSwitchDiscardsLocalEdits(t *testing.T) {
	s := NewSession(newFakeClient(testForm("f-1", "a"), testForm("f-2", "x")))
	if err := s.LoadForm(context.Background(), "f-1"); err != nil {
		t.Fatalf("load f-1: %v", err)
	}
	if err := s.SetLocalFields([]schema.Field{{ID: "local", Type: schema.TypeText}}); err != nil {
		t.Fatalf("set local: %v", err)
	}
	if !s.Dirty() {
		t.Fatal("local edit not marked dirty")
	}
	if err := s.LoadForm(context.Background(), "f-2"); err != nil {
		t.Fatalf("load f-2: %v", err)
	}
	if s.Dirty() {
		t.Fatal("dirty survived form switch")
	}
	if cur := s.Current(); cur.Fields[0].ID != "x" {
		t.Fatalf("fields = %+v", cur.Fields)
	}
}

func TestSessionApplyFieldSave(t *testing.T) {
	s := NewSession(newFakeClient(testForm("f-1", "a", "b")))
	if err := s.LoadForm(context.Background(), "f-1"); err != nil {
		t.Fatalf("load: %v", err)
	}

	s.ApplyFieldSave(schema.Field{ID: "a", Type: schema.TypeText, Label: "Edited"})
	if got := s.Current().Fields[0].Label; got != "Edited" {
		t.Fatalf("label = %q", got)
	}
	if !s.Dirty() {
		t.Fatal("save not marked dirty")
	}

	// a save for a field removed meanwhile is dropped
	before := s.Current()
	s.ApplyFieldSave(schema.Field{ID: "ghost", Type: schema.TypeText, Label: "Stale"})
	after := s.Current()
	if len(after.Fields) != len(before.Fields) {
		t.Fatalf("stale save changed fields: %d -> %d", len(before.Fields), len(after.Fields))
	}
}

func TestSessionSave(t *testing.T) {
	c := newFakeClient(testForm("f-1", "a"))
	s := NewSession(c)
	if err := s.LoadForm(context.Background(), "f-1"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := s.SetLocalFields([]schema.Field{{ID: "a", Type: schema.TypeText, Label: "New"}}); err != nil {
		t.Fatalf("set local: %v", err)
	}
	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if c.replaced != 1 {
		t.Fatalf("replaced = %d", c.replaced)
	}
	if s.Dirty() {
		t.Fatal("dirty after save")
	}
	if got := c.forms["f-1"].Fields[0].Label; got != "New" {
		t.Fatalf("server label = %q", got)
	}
}

func TestSessionSaveFailure(t *testing.T) {
	c := newFakeClient(testForm("f-1", "a"))
	s := NewSession(c)
	if err := s.LoadForm(context.Background(), "f-1"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := s.SetLocalFields([]schema.Field{{ID: "a", Type: schema.TypeText, Label: "New"}}); err != nil {
		t.Fatalf("set local: %v", err)
	}

	c.failReplace = errors.New("save failed")
	if err := s.Save(context.Background()); err == nil {
		t.Fatal("error swallowed")
	}
	if s.Err() != "save failed" {
		t.Fatalf("err message = %q", s.Err())
	}
	if !s.Dirty() {
		t.Fatal("failed save cleared dirty")
	}
	if got := s.Current().Fields[0].Label; got != "New" {
		t.Fatalf("failed save discarded local edit: %q", got)
	}

	c.failReplace = nil
	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("retry save: %v", err)
	}
	if s.Err() != "" || s.Dirty() {
		t.Fatalf("state after retry: err=%q dirty=%v", s.Err(), s.Dirty())
	}
}
