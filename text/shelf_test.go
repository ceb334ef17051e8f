package text

import (
	"image"
	"testing"
)

func TestShelfAllocator_SingleShelf(t *testing.T) {
	a := newShelfAllocator(100, 100, 1)

	r, ok := a.allocate(10, 20)
	if !ok || r != image.Rect(0, 0, 10, 20) {
		t.Fatalf("first allocate = %v, %v; want (0,0)-(10,20)", r, ok)
	}

	r, ok = a.allocate(10, 15)
	if !ok || r != image.Rect(11, 0, 21, 15) {
		t.Errorf("second allocate = %v, %v; want (11,0)-(21,15)", r, ok)
	}
}

func TestShelfAllocator_StacksUpward(t *testing.T) {
	a := newShelfAllocator(30, 100, 0)

	a.allocate(20, 10)
	r, ok := a.allocate(20, 10)
	if !ok || r != image.Rect(0, 10, 20, 20) {
		t.Errorf("allocate = %v, %v; want the shelf above at (0,10)-(20,20)", r, ok)
	}
}

func TestShelfAllocator_BestFitShelf(t *testing.T) {
	a := newShelfAllocator(100, 100, 0)

	a.allocate(50, 30) // tall shelf at y=0
	a.allocate(60, 10) // short shelf at y=30

	r, ok := a.allocate(5, 8)
	if !ok || r.Min.Y != 30 {
		t.Errorf("allocate(5, 8) = %v, %v; want the 10-high shelf at y=30", r, ok)
	}
	r, ok = a.allocate(5, 28)
	if !ok || r.Min.Y != 0 {
		t.Errorf("allocate(5, 28) = %v, %v; want the 30-high shelf at y=0", r, ok)
	}
}

func TestShelfAllocator_TopShelfGrows(t *testing.T) {
	a := newShelfAllocator(100, 100, 0)

	a.allocate(10, 10)
	a.allocate(10, 30)
	if len(a.shelves) != 1 || a.shelves[0].height != 30 {
		t.Errorf("shelves = %+v, want one shelf grown to 30", a.shelves)
	}
}

func TestShelfAllocator_Full(t *testing.T) {
	a := newShelfAllocator(16, 16, 0)

	if _, ok := a.allocate(17, 1); ok {
		t.Error("allocation wider than the page should fail")
	}
	if _, ok := a.allocate(16, 16); !ok {
		t.Fatal("allocation of the whole page should succeed")
	}
	if _, ok := a.allocate(1, 1); ok {
		t.Error("allocation on a full page should fail")
	}
}

func TestShelfAllocator_Reset(t *testing.T) {
	a := newShelfAllocator(16, 16, 0)
	a.allocate(16, 16)

	if u := a.utilization(); u != 1 {
		t.Errorf("utilization = %v, want 1", u)
	}

	a.reset()
	if u := a.utilization(); u != 0 {
		t.Errorf("utilization after reset = %v, want 0", u)
	}
	if _, ok := a.allocate(16, 16); !ok {
		t.Error("allocation after reset should succeed")
	}
}
