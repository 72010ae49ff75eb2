package diag

import "testing"

func TestNewFormatsMessage(t *testing.T) {
	d := New(SeverityRuntime, CategoryBoundsViolation, "index %d out of range [0,%d)", 5, 3)
	want := "runtime-error: bounds violation: index 5 out of range [0,3)"
	if got := d.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFatalfIsAlwaysFatal(t *testing.T) {
	d := Fatalf("unreachable dispatch for node %d", 7)
	if !d.Fatal {
		t.Error("Fatalf diagnostics must carry Fatal=true")
	}
	if d.Severity != SeverityForceQuit || d.Category != CategoryInternalConsistency {
		t.Errorf("unexpected severity/category: %v/%v", d.Severity, d.Category)
	}
}

func TestUnknownCategoryRendersPlaceholder(t *testing.T) {
	var c Category = 9999
	if got := c.String(); got != "unknown-category" {
		t.Errorf("got %q, want unknown-category", got)
	}
}
