package mathutil

import (
	"math"
	"testing"
)

func TestIntHelpers(t *testing.T) {
	if IntMin(3, 7) != 3 || IntMax(3, 7) != 7 {
		t.Error("IntMin/IntMax returned wrong values")
	}
	if IntClamp(12, 0, 10) != 10 || IntClamp(-1, 0, 10) != 0 || IntClamp(5, 0, 10) != 5 {
		t.Error("IntClamp out of range")
	}
}

func TestFrac(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{2.25, 0.25},
		{-0.25, 0.75},
		{3, 0},
	}
	for _, tt := range tests {
		if got := Frac(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Frac(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	got := NormalizeAngle(-math.Pi / 2)
	if math.Abs(got-3*math.Pi/2) > 1e-12 {
		t.Errorf("NormalizeAngle(-π/2) = %v", got)
	}
	if got := NormalizeAngle(5 * math.Pi); math.Abs(got-math.Pi) > 1e-9 {
		t.Errorf("NormalizeAngle(5π) = %v", got)
	}
}

func TestDegRadRoundTrip(t *testing.T) {
	if math.Abs(RadToDeg(DegToRad(60))-60) > 1e-9 {
		t.Error("degree conversion is not reversible")
	}
}

func TestScaleByte(t *testing.T) {
	if ScaleByte(200, 0.5) != 100 {
		t.Errorf("ScaleByte(200, 0.5) = %d", ScaleByte(200, 0.5))
	}
	if ScaleByte(200, 2) != 255 {
		t.Error("ScaleByte should saturate at 255")
	}
	if ScaleByte(200, -1) != 0 {
		t.Error("ScaleByte should floor at 0")
	}
}
