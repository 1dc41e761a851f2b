package engine

import (
	"errors"
	"math"
	"testing"
)

func TestLookupTablesRebuild(t *testing.T) {
	tables := readyTables(t, math.Pi/3)

	wantFocal := 160 / math.Tan(math.Pi/6)
	if !approx(tables.Focal(), wantFocal, 1e-9) {
		t.Errorf("focal = %v, want %v", tables.Focal(), wantFocal)
	}
	if tables.Offset(160) != 0 || tables.Secant(160) != 1 || tables.Angle(160) != 0 {
		t.Errorf("centre column not on the axis: offset %v secant %v", tables.Offset(160), tables.Secant(160))
	}
	if !approx(tables.Offset(0), -math.Tan(math.Pi/6), 1e-9) {
		t.Errorf("left offset = %v", tables.Offset(0))
	}
	if !approx(tables.Angle(0), -math.Pi/6, 1e-9) {
		t.Errorf("left angle = %v", tables.Angle(0))
	}
	if tables.Scale(0) != 0 || !approx(tables.Scale(1), wantFocal, 1e-9) || tables.Scale(-4) != tables.Scale(4) {
		t.Error("row scale table is wrong")
	}
	if tables.Scale(10*testHeight) <= 0 {
		t.Error("scale beyond the table should still be computed")
	}
	if tables.VerticalFOV() <= 0 || tables.VerticalFOV() >= math.Pi/3 {
		t.Errorf("vertical fov = %v, want below the horizontal fov for a wide screen", tables.VerticalFOV())
	}

	for c := 1; c < testWidth; c++ {
		if tables.Offset(c) <= tables.Offset(c-1) {
			t.Fatalf("offsets not increasing at column %d", c)
		}
	}

	if !tables.Matches(testWidth, testHeight, math.Pi/3) {
		t.Error("tables should match their own parameters")
	}
	if tables.Matches(testWidth, testHeight, math.Pi/2) || tables.Matches(640, testHeight, math.Pi/3) {
		t.Error("tables should not match other parameters")
	}
}

func TestLookupTablesValidation(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		fov           float64
		field         string
	}{
		{"zero width", 0, 200, 1, "resolution"},
		{"negative height", 320, -1, 1, "resolution"},
		{"zero fov", 320, 200, 0, "fov"},
		{"straight angle", 320, 200, math.Pi, "fov"},
		{"nan fov", 320, 200, math.NaN(), "fov"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewLookupTables().Rebuild(tt.width, tt.height, tt.fov)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestUninitializedTables(t *testing.T) {
	tables := NewLookupTables()
	grid := openRoom(10)
	cam := NewCamera(5, 5, 0, DefaultFOV)

	if tables.Ready() {
		t.Fatal("new tables should not be ready")
	}
	_, err := NewRayCaster(32).CastRays(cam, grid, tables, nil)
	if !errors.Is(err, ErrTablesNotInitialized) {
		t.Errorf("CastRays error = %v, want ErrTablesNotInitialized", err)
	}
	_, err = NewMode7Renderer(32).RenderPlanes(cam, grid, tables, nil)
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) || !errors.Is(err, ErrTablesNotInitialized) {
		t.Errorf("RenderPlanes error = %v, want ConfigurationError", err)
	}
	if cfgErr != nil && cfgErr.Error() == "" {
		t.Error("empty error message")
	}
}
