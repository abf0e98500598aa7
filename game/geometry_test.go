package game

import (
	"math"
	"testing"
)

func TestRotateTowardTakesShorterArcAcrossPi(t *testing.T) {
	// 3.0 → -3.0 is a short hop across the ±π seam, not a near-full turn.
	got := RotateToward(3.0, -3.0, 0.1)
	want := 3.1
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("RotateToward(3.0, -3.0, 0.1) = %f, want %f", got, want)
	}
}

func TestRotateTowardSnapsWithinOneStep(t *testing.T) {
	got := RotateToward(1.0, 1.05, 0.1)
	if math.Abs(got-1.05) > 1e-9 {
		t.Fatalf("expected snap onto target, got %f", got)
	}
}

func TestRotateTowardClampsToMaxStep(t *testing.T) {
	got := RotateToward(0, 2.0, 0.25)
	if math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("expected clamped step 0.25, got %f", got)
	}
	got = RotateToward(0, -2.0, 0.25)
	if math.Abs(got+0.25) > 1e-9 {
		t.Fatalf("expected clamped step -0.25, got %f", got)
	}
}

func TestNormalizeAngleRange(t *testing.T) {
	for _, a := range []float64{-10, -math.Pi, 0, math.Pi, 10, 100} {
		n := NormalizeAngle(a)
		if n <= -math.Pi || n > math.Pi {
			t.Fatalf("NormalizeAngle(%f) = %f outside (-π, π]", a, n)
		}
	}
}

func TestPointSegmentDistanceInterior(t *testing.T) {
	d := PointSegmentDistance(Vec2{5, 5}, Vec2{0, 0}, Vec2{10, 0})
	if math.Abs(d-5) > 1e-9 {
		t.Fatalf("interior projection distance = %f, want 5", d)
	}
}

func TestPointSegmentDistanceClampsToEndpoints(t *testing.T) {
	d := PointSegmentDistance(Vec2{-5, 5}, Vec2{0, 0}, Vec2{10, 0})
	want := math.Sqrt(50)
	if math.Abs(d-want) > 1e-9 {
		t.Fatalf("clamped distance = %f, want %f", d, want)
	}
}

func TestPointSegmentDistanceDegenerateSegment(t *testing.T) {
	d := PointSegmentDistance(Vec2{3, 4}, Vec2{0, 0}, Vec2{0, 0})
	if math.Abs(d-5) > 1e-9 {
		t.Fatalf("degenerate segment distance = %f, want 5", d)
	}
}
