package game

import (
	"testing"
	"time"
)

func TestShrunkBoundsStartsFull(t *testing.T) {
	b := ShrunkBounds(5000, 5000, 0, 5*time.Minute, 0.9, 0.2)
	if b != FullBounds(5000, 5000) {
		t.Fatalf("bounds at t=0 are %+v, want full map", b)
	}
}

func TestShrunkBoundsNeverGrows(t *testing.T) {
	prev := ShrunkBounds(5000, 5000, 0, 5*time.Minute, 0.9, 0.2)
	for s := 1; s <= 300; s++ {
		b := ShrunkBounds(5000, 5000, time.Duration(s)*time.Second, 5*time.Minute, 0.9, 0.2)
		if b.Width() > prev.Width()+1e-9 || b.Height() > prev.Height()+1e-9 {
			t.Fatalf("bounds grew at %ds: %+v -> %+v", s, prev, b)
		}
		prev = b
	}
}

func TestShrunkBoundsStabilizesAtMinimum(t *testing.T) {
	atEnd := ShrunkBounds(5000, 5000, 270*time.Second, 5*time.Minute, 0.9, 0.2)
	past := ShrunkBounds(5000, 5000, 299*time.Second, 5*time.Minute, 0.9, 0.2)
	way := ShrunkBounds(5000, 5000, time.Hour, 5*time.Minute, 0.9, 0.2)
	if atEnd != past || past != way {
		t.Fatalf("bounds kept moving after the shrink window: %+v %+v %+v", atEnd, past, way)
	}
	if w := atEnd.Width(); w < 5000*0.2-1e-6 || w > 5000*0.2+1e-6 {
		t.Fatalf("final width = %f, want %f", w, 5000*0.2)
	}
	// Still centered on the map.
	if cx := (atEnd.MinX + atEnd.MaxX) / 2; cx != 2500 {
		t.Fatalf("final zone off center: %f", cx)
	}
}

func TestShrunkBoundsDisabledByZeroDuration(t *testing.T) {
	b := ShrunkBounds(5000, 5000, time.Minute, 0, 0.9, 0.2)
	if b != FullBounds(5000, 5000) {
		t.Fatalf("zero max duration should disable shrinking, got %+v", b)
	}
}

func TestEdgeProximity(t *testing.T) {
	b := Bounds{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100}
	cases := []struct {
		p    Vec2
		want float64
	}{
		{Vec2{50, 50}, 50},
		{Vec2{10, 50}, 10},
		{Vec2{50, 95}, 5},
		{Vec2{-5, 50}, -5},
		{Vec2{50, 110}, -10},
	}
	for _, c := range cases {
		if got := b.EdgeProximity(c.p); got != c.want {
			t.Fatalf("EdgeProximity(%v) = %f, want %f", c.p, got, c.want)
		}
	}
	if !b.Contains(Vec2{50, 50}) || b.Contains(Vec2{-5, 50}) {
		t.Fatal("Contains disagrees with proximity sign")
	}
}
