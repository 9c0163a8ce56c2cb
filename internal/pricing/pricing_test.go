package pricing

import (
	"math"
	"testing"

	"github.com/eamarbiyout/storebot/internal/models"
)

const tolerance = 0.005

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestParseMeasurement(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{name: "plain integer", input: "3", want: 3, wantOK: true},
		{name: "dot decimal", input: "3.25", want: 3.25, wantOK: true},
		{name: "comma decimal", input: "3,25", want: 3.25, wantOK: true},
		{name: "surrounding whitespace", input: "  4.5  ", want: 4.5, wantOK: true},
		{name: "negative parses", input: "-5", want: -5, wantOK: true},
		{name: "letters rejected", input: "abc", wantOK: false},
		{name: "empty rejected", input: "", wantOK: false},
		{name: "mixed rejected", input: "3m", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMeasurement(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseMeasurement(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && !almostEqual(got, tt.want) {
				t.Errorf("ParseMeasurement(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		a, b float64
		want int
	}{
		{14, 0.6, 24},
		{12, 0.6, 20},
		{0.1, 0.6, 1},
		{0, 0.6, 0},
	}
	for _, tt := range tests {
		if got := CeilDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("CeilDiv(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFromDimensions(t *testing.T) {
	// L=3, W=4, H=3.2 → perimeter=14, wall=44.8, floor=12
	d := FromDimensions(3, 4, 3.2)

	if !almostEqual(d.PerimeterM, 14) {
		t.Errorf("perimeter = %v, want 14", d.PerimeterM)
	}
	if !almostEqual(d.WallAreaM2, 44.8) {
		t.Errorf("wall area = %v, want 44.8", d.WallAreaM2)
	}
	if !almostEqual(d.FloorAreaM2, 12) {
		t.Errorf("floor area = %v, want 12", d.FloorAreaM2)
	}
	if got := DecorCount(d.PerimeterM); got != 24 {
		t.Errorf("decor count = %d, want 24", got)
	}
	if got := StripCount(DecorCount(d.PerimeterM)); got != 48 {
		t.Errorf("strip count = %d, want 48", got)
	}
}

func TestFromAreasMatchesDimensionPath(t *testing.T) {
	// Feeding the wall area produced by the dimension path back through the
	// area path must recover the same perimeter within rounding tolerance.
	dim := FromDimensions(3, 4, 3.2)
	area := FromAreas(dim.WallAreaM2, dim.FloorAreaM2, 3.2)

	if !almostEqual(area.PerimeterM, dim.PerimeterM) {
		t.Errorf("recovered perimeter = %v, want %v", area.PerimeterM, dim.PerimeterM)
	}
	if DecorCount(area.PerimeterM) != DecorCount(dim.PerimeterM) {
		t.Errorf("decor counts differ between paths")
	}
}

func TestFromAreasZeroHeight(t *testing.T) {
	// Zero height is physically meaningless; the derivation degenerates to a
	// zero perimeter instead of dividing by zero.
	d := FromAreas(44.8, 12, 0)
	if d.PerimeterM != 0 {
		t.Errorf("perimeter = %v, want 0", d.PerimeterM)
	}
}

func TestWetSpace(t *testing.T) {
	space := WetSpace("مطبخ 1", models.CategoryKitchen, FromDimensions(3, 4, 3.2))

	if len(space.Lines) != 4 {
		t.Fatalf("line count = %d, want 4", len(space.Lines))
	}

	// wall 44.8×29 + floor 12×29 + decor 24×20 + strips 48×10 = 2607.20
	wantTotals := []float64{1299.2, 348.0, 480.0, 480.0}
	for i, want := range wantTotals {
		if got := space.Lines[i].Total(); !almostEqual(got, want) {
			t.Errorf("line %d total = %v, want %v", i, got, want)
		}
	}
	if got := space.Total(); !almostEqual(got, 2607.2) {
		t.Errorf("space total = %v, want 2607.20", got)
	}

	// Space total must equal the sum of independently rounded line totals.
	var sum float64
	for _, l := range space.Lines {
		sum += l.Total()
	}
	if !almostEqual(space.Total(), models.Round2(sum)) {
		t.Errorf("space total %v != sum of line totals %v", space.Total(), sum)
	}
}

func TestFlatSpace(t *testing.T) {
	space := FlatSpace("أرضية 1", models.CategoryFloor, 20)

	if len(space.Lines) != 1 {
		t.Fatalf("line count = %d, want 1", len(space.Lines))
	}
	if got := space.Total(); !almostEqual(got, 580.0) {
		t.Errorf("total = %v, want 580.00 (20 m² × 29.0)", got)
	}
	if space.PerimeterMeters != 0 || space.WallAreaM2 != 0 {
		t.Errorf("flat space must not carry wall measures: %+v", space)
	}
}
