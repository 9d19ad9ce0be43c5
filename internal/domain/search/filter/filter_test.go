package filter

import "testing"

func f(v float64) *float64 { return &v }

func TestNew_Empty(t *testing.T) {
	s, err := New("", "", nil, nil, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsEmpty() {
		t.Error("expected empty set")
	}
}

func TestNew_Populated(t *testing.T) {
	s, err := New("Footwear", "Acme", f(10), f(100), f(4), "in_stock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.IsEmpty() {
		t.Error("populated set must not report empty")
	}
	if s.Category() != "Footwear" || s.Brand() != "Acme" {
		t.Errorf("accessor mismatch: %q %q", s.Category(), s.Brand())
	}
	if *s.PriceMin() != 10 || *s.PriceMax() != 100 {
		t.Errorf("price bounds mismatch: %v %v", *s.PriceMin(), *s.PriceMax())
	}
}

func TestNew_RejectsNegativePrice(t *testing.T) {
	if _, err := New("", "", f(-1), nil, nil, ""); err == nil {
		t.Fatal("expected error for negative price_min")
	}
	if _, err := New("", "", nil, f(-1), nil, ""); err == nil {
		t.Fatal("expected error for negative price_max")
	}
}

func TestNew_RejectsInvertedPriceRange(t *testing.T) {
	if _, err := New("", "", f(100), f(10), nil, ""); err == nil {
		t.Fatal("expected error when price_min > price_max")
	}
}

func TestNew_RejectsRatingOutOfRange(t *testing.T) {
	if _, err := New("", "", nil, nil, f(5.5), ""); err == nil {
		t.Fatal("expected error for rating_floor above 5")
	}
	if _, err := New("", "", nil, nil, f(-0.1), ""); err == nil {
		t.Fatal("expected error for negative rating_floor")
	}
}
