package formstore

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/projectflow-dev/projectflow/pkg/schema"
)

func strPtr(s string) *string { return &s }

func TestCreateAndGet(t *testing.T) {
	s := New()
	f := s.Create("Onboarding", "New hire intake")
	if !strings.HasPrefix(f.ID, "f-") {
		t.Fatalf("id = %q", f.ID)
	}
	if f.UpdatedAt.IsZero() {
		t.Fatal("timestamp not set")
	}
	got, err := s.Get(f.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Onboarding" || got.Description != "New hire intake" {
		t.Fatalf("got %+v", got)
	}

	blank := s.Create("   ", "")
	if blank.Title != "Untitled" {
		t.Fatalf("blank title = %q", blank.Title)
	}

	if _, err := s.Get("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestUpdateMeta(t *testing.T) {
	s := New()
	f := s.Create("Original", "desc")

	got, err := s.UpdateMeta(f.ID, strPtr("Renamed"), nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "Renamed" || got.Description != "desc" {
		t.Fatalf("got %+v", got)
	}

	// blank title keeps the previous one
	got, err = s.UpdateMeta(f.ID, strPtr("  "), strPtr("new desc"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "Renamed" || got.Description != "new desc" {
		t.Fatalf("got %+v", got)
	}
}

func TestDelete(t *testing.T) {
	s := New()
	f := s.Create("Doomed", "")
	if err := s.Delete(f.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(f.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}

func TestAddFieldAssignsID(t *testing.T) {
	s := New()
	f := s.Create("Form", "")

	in := schema.NewField(schema.TypeSelect)
	in.ID = "client-chosen"
	in.ColSpan = 0
	out, err := s.AddField(f.ID, in)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.HasPrefix(out.ID, "fld-") || out.ID == "client-chosen" {
		t.Fatalf("id = %q", out.ID)
	}
	if out.ColSpan != schema.DefaultColSpan {
		t.Fatalf("colSpan = %d", out.ColSpan)
	}

	bad := schema.Field{Type: "slider"}
	if _, err := s.AddField(f.ID, bad); err == nil {
		t.Fatal("invalid field accepted")
	}
	if _, err := s.AddField("ghost", schema.NewField(schema.TypeText)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestUpdateField(t *testing.T) {
	s := New()
	f := s.Create("Form", "")
	fld, err := s.AddField(f.ID, schema.NewField(schema.TypeText))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err := s.UpdateField(f.ID, fld.ID, schema.FieldPatch{Label: strPtr("Updated")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.Label != "Updated" {
		t.Fatalf("label = %q", out.Label)
	}
	if out.ID != fld.ID || out.Type != schema.TypeText {
		t.Fatalf("identity changed: %+v", out)
	}

	if _, err := s.UpdateField(f.ID, "ghost", schema.FieldPatch{}); !errors.Is(err, ErrFieldNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestUpdateFieldRejectedPatchLeavesStoreUnchanged(t *testing.T) {
	s := New()
	f := s.Create("Form", "")
	fld, err := s.AddField(f.ID, schema.NewField(schema.TypeButton))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	bad := schema.FieldPatch{Label: strPtr("Hacked"), ButtonAction: strPtr("explode")}
	if _, err := s.UpdateField(f.ID, fld.ID, bad); err == nil {
		t.Fatal("invalid patch accepted")
	}

	fields, _ := s.Fields(f.ID)
	if fields[0].Label != fld.Label || fields[0].ButtonAction != fld.ButtonAction {
		t.Fatalf("rejected patch committed: %+v", fields[0])
	}
}

func TestRemoveField(t *testing.T) {
	s := New()
	f := s.Create("Form", "")
	a, _ := s.AddField(f.ID, schema.NewField(schema.TypeText))
	b, _ := s.AddField(f.ID, schema.NewField(schema.TypeEmail))

	if err := s.RemoveField(f.ID, a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	fields, _ := s.Fields(f.ID)
	if len(fields) != 1 || fields[0].ID != b.ID {
		t.Fatalf("fields = %+v", fields)
	}
	if err := s.RemoveField(f.ID, a.ID); !errors.Is(err, ErrFieldNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestReorder(t *testing.T) {
	s := New()
	f := s.Create("Form", "")
	a, _ := s.AddField(f.ID, schema.NewField(schema.TypeText))
	b, _ := s.AddField(f.ID, schema.NewField(schema.TypeEmail))
	c, _ := s.AddField(f.ID, schema.NewField(schema.TypeDate))

	out, err := s.Reorder(f.ID, []string{c.ID, a.ID, b.ID})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	got := []string{out[0].ID, out[1].ID, out[2].ID}
	want := []string{c.ID, a.ID, b.ID}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order (-want +got)\n%s", diff)
	}

	// the new order is what Fields returns afterwards
	fields, _ := s.Fields(f.ID)
	if fields[0].ID != c.ID {
		t.Fatalf("persisted order starts with %q", fields[0].ID)
	}
}

func TestReorderMismatch(t *testing.T) {
	s := New()
	f := s.Create("Form", "")
	a, _ := s.AddField(f.ID, schema.NewField(schema.TypeText))
	b, _ := s.AddField(f.ID, schema.NewField(schema.TypeEmail))

	cases := [][]string{
		{a.ID},                  // too short
		{a.ID, b.ID, "extra"},   // too long
		{a.ID, "ghost"},         // unknown id
		{a.ID, a.ID},            // duplicate id hides a missing one
	}
	for _, order := range cases {
		if _, err := s.Reorder(f.ID, order); !errors.Is(err, ErrOrderMismatch) {
			t.Errorf("order %v: err = %v", order, err)
		}
	}

	// failed reorders leave the sequence untouched
	fields, _ := s.Fields(f.ID)
	if fields[0].ID != a.ID || fields[1].ID != b.ID {
		t.Fatalf("sequence changed: %+v", fields)
	}
}

func TestReplaceSchema(t *testing.T) {
	s := New()
	f := s.Create("Old Title", "old desc")

	doc := schema.Schema{
		Title:  "New Title",
		Fields: []schema.Field{{ID: "x", Type: schema.TypeText, Label: "X"}},
	}
	got, err := s.ReplaceSchema(f.ID, doc)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got.Title != "New Title" {
		t.Fatalf("title = %q", got.Title)
	}
	// blank description keeps the previous one
	if got.Description != "old desc" {
		t.Fatalf("description = %q", got.Description)
	}
	if len(got.Fields) != 1 || got.Fields[0].ID != "x" {
		t.Fatalf("fields = %+v", got.Fields)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := New()
	f := s.Create("Form", "")
	if _, err := s.AddField(f.ID, schema.NewField(schema.TypeSelect)); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, _ := s.Get(f.ID)
	got.Fields[0].Label = "mutated"

	again, _ := s.Get(f.ID)
	if again.Fields[0].Label == "mutated" {
		t.Fatal("store state shared with caller")
	}
}

func TestListSorted(t *testing.T) {
	s := New()
	s.Put(Form{ID: "f-b", Title: "B"})
	s.Put(Form{ID: "f-a", Title: "A"})
	s.Put(Form{ID: "f-c", Title: "C"})

	forms := s.List()
	ids := make([]string, len(forms))
	for i, f := range forms {
		ids[i] = f.ID
	}
	if diff := cmp.Diff([]string{"f-a", "f-b", "f-c"}, ids); diff != "" {
		t.Fatalf("order (-want +got)\n%s", diff)
	}
}

func TestCountFields(t *testing.T) {
	s := New()
	f := s.Create("Survey", "")
	s.AddField(f.ID, schema.NewField(schema.TypeText))
	s.AddField(f.ID, schema.NewField(schema.TypeText))

	counts := s.CountFields()
	if counts["Survey"] != 2 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	s := New()
	Seed(s)
	if len(s.List()) == 0 {
		t.Fatal("seed installed nothing")
	}
	n := len(s.List())
	Seed(s)
	if len(s.List()) != n {
		t.Fatalf("second seed changed count: %d -> %d", n, len(s.List()))
	}
}
