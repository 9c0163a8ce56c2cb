package models

import "math"

// Category identifies which kind of physical space is being priced.
type Category string

const (
	CategoryKitchen Category = "kitchen"
	CategoryBath    Category = "bath"
	CategoryFloor   Category = "floor"
	CategoryFlat    Category = "flat"
)

// Valid reports whether the category is one of the four known kinds.
func (c Category) Valid() bool {
	switch c {
	case CategoryKitchen, CategoryBath, CategoryFloor, CategoryFlat:
		return true
	}
	return false
}

// Wet reports whether the category has walls (kitchen/bath). Wet spaces carry
// perimeter, height and wall area and produce decor/strip line items; floor and
// flat spaces produce a single area line.
func (c Category) Wet() bool {
	return c == CategoryKitchen || c == CategoryBath
}

// Label returns the Arabic display name used for space naming and keyboards.
func (c Category) Label() string {
	switch c {
	case CategoryKitchen:
		return "مطبخ"
	case CategoryBath:
		return "حمّام"
	case CategoryFloor:
		return "أرضية"
	case CategoryFlat:
		return "مساحة مسطّحة"
	}
	return string(c)
}

// LineItem is one priced row of a space invoice. Immutable once created.
type LineItem struct {
	// Label is the material or work category, e.g. "حائط" (wall tiling).
	Label string `json:"label"`

	// Unit is the measurement unit: "م²" for areas, "قطعة" for counted pieces.
	Unit string `json:"unit"`

	// Quantity is the billed amount in Unit. Never negative.
	Quantity float64 `json:"quantity"`

	// UnitPrice is the fixed price per Unit.
	UnitPrice float64 `json:"unit_price"`
}

// Total returns quantity × unit price rounded to 2 decimals.
func (l LineItem) Total() float64 {
	return Round2(l.Quantity * l.UnitPrice)
}

// SpaceInvoice is one physical space's computed bill of materials. It is built
// once when the input flow finalizes a space and is append-only thereafter.
type SpaceInvoice struct {
	// Name is the sequenced display label, e.g. "مطبخ 2".
	Name string `json:"name"`

	Category Category `json:"category"`

	// PerimeterMeters and HeightMeters are meaningful only for wet categories.
	// When the space was entered via direct areas the perimeter is recovered
	// as wall area divided by height.
	PerimeterMeters float64 `json:"perimeter_m"`
	HeightMeters    float64 `json:"height_m"`

	WallAreaM2  float64 `json:"wall_area_m2"`
	FloorAreaM2 float64 `json:"floor_area_m2"`

	Lines []LineItem `json:"lines"`
}

// Total sums the line totals, each already rounded to 2 decimals, and rounds
// the sum once more to keep the printed subtotal stable.
func (s *SpaceInvoice) Total() float64 {
	var sum float64
	for _, l := range s.Lines {
		sum += l.Total()
	}
	return Round2(sum)
}

// Round2 rounds to 2 decimal places, the precision of all printed currency.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
