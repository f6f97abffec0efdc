package atlas

import "testing"

func TestPackerAllocate(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		padding int
		sizes   [][2]int
		wantOK  []bool
	}{
		{
			name:    "single shelf",
			w:       32,
			h:       32,
			padding: 1,
			sizes:   [][2]int{{10, 10}, {10, 10}},
			wantOK:  []bool{true, true},
		},
		{
			name:    "too wide",
			w:       16,
			h:       16,
			padding: 1,
			sizes:   [][2]int{{16, 4}},
			wantOK:  []bool{false},
		},
		{
			name:    "too tall",
			w:       16,
			h:       16,
			padding: 0,
			sizes:   [][2]int{{4, 17}},
			wantOK:  []bool{false},
		},
		{
			name:    "fills then fails",
			w:       16,
			h:       16,
			padding: 0,
			sizes:   [][2]int{{8, 8}, {8, 8}, {8, 8}, {8, 8}, {1, 1}},
			wantOK:  []bool{true, true, true, true, false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPacker(tt.w, tt.h, tt.padding)
			for i, s := range tt.sizes {
				r, ok := p.allocate(s[0], s[1])
				if ok != tt.wantOK[i] {
					t.Fatalf("allocate #%d ok = %v, want %v", i, ok, tt.wantOK[i])
				}
				if ok && (r.Dx() != s[0] || r.Dy() != s[1]) {
					t.Errorf("allocate #%d = %v, want %dx%d", i, r, s[0], s[1])
				}
			}
		})
	}
}

func TestPackerLastShelfGrows(t *testing.T) {
	p := newPacker(64, 64, 1)
	if _, ok := p.allocate(10, 5); !ok {
		t.Fatal("first allocation failed")
	}
	r, ok := p.allocate(10, 9)
	if !ok {
		t.Fatal("taller allocation failed")
	}
	if r.Min.Y != 0 {
		t.Errorf("taller item placed at y=%d, want 0 on the grown shelf", r.Min.Y)
	}
	r, ok = p.allocate(60, 2)
	if !ok {
		t.Fatal("new shelf allocation failed")
	}
	if r.Min.Y != 10 {
		t.Errorf("new shelf at y=%d, want 10", r.Min.Y)
	}
}

func TestPackerCloneIsIndependent(t *testing.T) {
	p := newPacker(32, 32, 0)
	p.allocate(16, 16)

	c := p.clone()
	c.allocate(16, 16)
	c.allocate(16, 16)

	if len(p.shelves) != 1 || p.shelves[0].x != 16 {
		t.Errorf("original changed by clone: %+v", p.shelves)
	}
	if p.usedArea != 256 {
		t.Errorf("original usedArea = %d, want 256", p.usedArea)
	}
}

func TestPackerReset(t *testing.T) {
	p := newPacker(16, 16, 0)
	p.allocate(16, 16)
	if _, ok := p.allocate(1, 1); ok {
		t.Fatal("packer should be full")
	}
	p.reset(32, 32)
	if p.utilization() != 0 {
		t.Errorf("utilization() = %v after reset, want 0", p.utilization())
	}
	if _, ok := p.allocate(32, 32); !ok {
		t.Error("allocation at the new size failed")
	}
}
