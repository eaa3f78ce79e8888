package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSheetUpdateRejectsNonNumeric(t *testing.T) {
	s := NewSheet(3, 4)
	err := s.Update(Location{Row: 1, Col: 1}, "snake")
	var typeErr *TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected TypeError, got %v", err)
	}
	if typeErr.Value != "snake" {
		t.Fatalf("TypeError value = %q", typeErr.Value)
	}
	if got := s.ContentAt(Location{Row: 1, Col: 1}); got != "" {
		t.Fatalf("rejected write must not change the cell, got %q", got)
	}
}

func TestSheetUpdateOutOfRange(t *testing.T) {
	s := NewSheet(3, 4)
	for _, loc := range []Location{{-1, 0}, {0, -1}, {3, 0}, {0, 4}} {
		if err := s.Update(loc, "1"); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("update %v: expected ErrOutOfRange, got %v", loc, err)
		}
		if s.Contains(loc) {
			t.Fatalf("%v should be outside the sheet", loc)
		}
	}
}

func TestWriteWrapsInvariant(t *testing.T) {
	s := NewSheet(2, 2)
	err := Write(s, Location{Row: 0, Col: 0}, "x")
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected ErrInvariant, got %v", err)
	}
	var typeErr *TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected wrapped TypeError, got %v", err)
	}
}

func TestSheetCodes(t *testing.T) {
	s := NewSheet(2, 3)
	mustWrite := func(r, c int, v string) {
		if err := s.Update(Location{Row: r, Col: c}, v); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	mustWrite(0, 0, "1")
	mustWrite(0, 2, "7")
	mustWrite(1, 1, "300")
	mustWrite(1, 2, "-4")

	want := []uint8{1, 0, 7, 0, 255, 0}
	if diff := cmp.Diff(want, s.Codes()); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}

	if err := ClearAll(s); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if diff := cmp.Diff(make([]uint8, 6), s.Codes()); diff != "" {
		t.Fatalf("codes after clear (-want +got):\n%s", diff)
	}
}

func TestIntSetting(t *testing.T) {
	cfg := map[string]string{"a": "3", "b": "x", "c": "-2"}
	if got := IntSetting(cfg, "a", 1, nil); got != 3 {
		t.Fatalf("a = %d", got)
	}
	if got := IntSetting(cfg, "b", 1, nil); got != 1 {
		t.Fatalf("malformed value should fall back, got %d", got)
	}
	if got := IntSetting(cfg, "c", 5, NonNegative); got != 5 {
		t.Fatalf("invalid value should fall back, got %d", got)
	}
	if got := IntSetting(nil, "a", 9, nil); got != 9 {
		t.Fatalf("nil map should fall back, got %d", got)
	}
}
