package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

func TestPatchApplyMergesOnlySetMembers(t *testing.T) {
	f := NewField(TypeSelect)
	f.Name = "role"
	f.Placeholder = "pick one"

	p := FieldPatch{
		Label:    strPtr("Role"),
		Required: boolPtr(true),
	}
	p.Apply(&f)

	if f.Label != "Role" || !f.Required {
		t.Fatalf("patched members not applied: %+v", f)
	}
	if f.Name != "role" || f.Placeholder != "pick one" {
		t.Fatalf("untouched members changed: %+v", f)
	}
	want := []Option{{Label: "Option 1", Value: "option1"}, {Label: "Option 2", Value: "option2"}}
	if diff := cmp.Diff(want, f.Options); diff != "" {
		t.Fatalf("options changed (-want +got)\n%s", diff)
	}
}

func TestPatchApplyClampsColSpan(t *testing.T) {
	f := NewField(TypeText)
	FieldPatch{ColSpan: intPtr(40)}.Apply(&f)
	if f.ColSpan != DefaultColSpan {
		t.Fatalf("colSpan = %d", f.ColSpan)
	}
	FieldPatch{ColSpan: intPtr(4)}.Apply(&f)
	if f.ColSpan != 4 {
		t.Fatalf("colSpan = %d", f.ColSpan)
	}
}

func TestPatchApplyCopiesOptions(t *testing.T) {
	f := NewField(TypeSelect)
	opts := []Option{{Label: "A", Value: "a"}}
	FieldPatch{Options: &opts}.Apply(&f)
	opts[0].Value = "mutated"
	if f.Options[0].Value != "a" {
		t.Fatal("options aliased to patch slice")
	}
}

func TestPatchApplyDataSource(t *testing.T) {
	f := NewField(TypeSelect)
	ds := DataSource{URL: "http://api/items", Method: "POST", LabelPath: "name", ValuePath: "id"}
	FieldPatch{DataSource: &ds}.Apply(&f)
	if f.DataSource == nil || f.DataSource.URL != "http://api/items" {
		t.Fatalf("data source = %+v", f.DataSource)
	}
	ds.URL = "mutated"
	if f.DataSource.URL != "http://api/items" {
		t.Fatal("data source aliased to patch value")
	}
}
