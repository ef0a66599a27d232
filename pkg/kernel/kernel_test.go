package kernel

import "testing"

func TestLocalizedTextScanAndValue(t *testing.T) {
	t.Parallel()

	in := LocalizedText{Fr: "Professeur", En: "Professor", Ar: "أستاذ"}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out LocalizedText
	if err := out.Scan(v); err != nil {
		t.Fatalf("unexpected scan error: %v", err)
	}
	if out != in {
		t.Fatalf("expected %+v, got %+v", in, out)
	}

	if err := out.Scan(nil); err != nil || !out.IsZero() {
		t.Fatalf("expected zero value from NULL, got %+v (%v)", out, err)
	}
	if err := out.Scan(42); err == nil {
		t.Fatal("expected error for unsupported source")
	}
}

func TestOptionalLocalizedText(t *testing.T) {
	t.Parallel()

	var o OptionalLocalizedText
	if err := o.Scan(nil); err != nil {
		t.Fatal(err)
	}
	if o.Ptr() != nil {
		t.Fatal("expected nil pointer for NULL column")
	}
	if v, _ := o.Value(); v != nil {
		t.Fatalf("expected NULL value, got %v", v)
	}

	if err := o.Scan([]byte(`{"fr":"Rabat","en":"Rabat","ar":"الرباط"}`)); err != nil {
		t.Fatal(err)
	}
	if p := o.Ptr(); p == nil || p.Ar != "الرباط" {
		t.Fatalf("unexpected value %+v", p)
	}
}

func TestLocalizedTextIn(t *testing.T) {
	t.Parallel()

	text := LocalizedText{Fr: "Ingénieur", En: ""}
	if got := text.In(LocaleEn); got != "Ingénieur" {
		t.Fatalf("expected French fallback, got %q", got)
	}
	if got := text.In(LocaleFr); got != "Ingénieur" {
		t.Fatalf("expected French, got %q", got)
	}
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{10, 10, 1},
		{11, 10, 2},
		{5, 0, 0},
	}
	for _, tt := range tests {
		got := NewPage(PaginationOptions{Page: 1, PageSize: tt.size}, tt.total)
		if got.Pages != tt.want {
			t.Errorf("total=%d size=%d: expected %d pages, got %d", tt.total, tt.size, tt.want, got.Pages)
		}
	}

	if off := (PaginationOptions{Page: 3, PageSize: 10}).Offset(); off != 20 {
		t.Fatalf("expected offset 20, got %d", off)
	}
}

func TestIsValidID(t *testing.T) {
	t.Parallel()

	if !IsValidID("7f6c5f2e-8a41-4a7e-9d38-0d5c2f7b9e11") {
		t.Fatal("expected uuid to be valid")
	}
	if IsValidID("not-an-id") {
		t.Fatal("expected garbage to be invalid")
	}
}
