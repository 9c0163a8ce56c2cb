// Package pricing holds the pure measurement and pricing rules of the tile
// calculator: fixed unit prices, the perimeter/area derivations for both input
// paths, and the decor/strip piece counts derived from the perimeter.
package pricing

import (
	"math"
	"strconv"
	"strings"

	"github.com/eamarbiyout/storebot/internal/models"
)

// Fixed unit prices in dinars. Wall and floor tiling share the same rate.
const (
	PriceWallPerM2  = 29.0
	PriceFloorPerM2 = 29.0
	PriceDecorUnit  = 20.0
	PriceStripUnit  = 10.0

	// DefaultHeightM is assumed for kitchen/bath walls unless the user
	// overrides it during the height confirmation step.
	DefaultHeightM = 3.2

	// decorSpacingM: one decor piece is needed per 0.6 linear meters of
	// perimeter, rounded up since partial pieces cannot be purchased.
	decorSpacingM = 0.6
)

// Arabic line item labels and units as printed on the invoice.
const (
	labelWall  = "حائط"
	labelFloor = "أرضية"
	labelDecor = "ديكورات"
	labelStrip = "استريشات"
	labelFlat  = "صنف 1"

	unitSquareMeter = "م²"
	unitPiece       = "قطعة"
)

// CeilDiv returns ceil(a/b). Used to turn a linear perimeter into a whole
// count of purchasable pieces.
func CeilDiv(a, b float64) int {
	return int(math.Ceil(a / b))
}

// ParseMeasurement parses a decimal number written with either "." or "," as
// the decimal separator. It returns ok=false on malformed input; callers
// re-prompt the same step rather than failing the conversation.
func ParseMeasurement(text string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Derived carries the measures computed from either input path. All decor and
// strip quantities are driven by Perimeter.
type Derived struct {
	PerimeterM  float64
	HeightM     float64
	WallAreaM2  float64
	FloorAreaM2 float64
}

// FromDimensions derives the wet-space measures from raw dimensions:
//
//	perimeter = 2×(L+W)
//	wallArea  = perimeter × H
//	floorArea = L × W
func FromDimensions(length, width, height float64) Derived {
	perimeter := 2 * (length + width)
	return Derived{
		PerimeterM:  perimeter,
		HeightM:     height,
		WallAreaM2:  perimeter * height,
		FloorAreaM2: length * width,
	}
}

// FromAreas derives the wet-space measures from directly stated areas. The
// perimeter is recovered as wallArea/height because decor and strip counts
// need it even when the user never measured linear dimensions. A zero height
// degenerates to perimeter 0 rather than dividing by zero.
func FromAreas(wallArea, floorArea, height float64) Derived {
	var perimeter float64
	if height > 0 {
		perimeter = wallArea / height
	}
	return Derived{
		PerimeterM:  perimeter,
		HeightM:     height,
		WallAreaM2:  wallArea,
		FloorAreaM2: floorArea,
	}
}

// DecorCount returns the number of decor pieces for the given perimeter.
func DecorCount(perimeterM float64) int {
	return CeilDiv(perimeterM, decorSpacingM)
}

// StripCount returns the number of trim strips: two per decor piece.
func StripCount(decorCount int) int {
	return 2 * decorCount
}

// WetSpace builds the invoice for a kitchen/bath space from derived measures:
// wall tiling, floor tiling, decor pieces and trim strips.
func WetSpace(name string, cat models.Category, d Derived) models.SpaceInvoice {
	decor := DecorCount(d.PerimeterM)
	strips := StripCount(decor)

	return models.SpaceInvoice{
		Name:            name,
		Category:        cat,
		PerimeterMeters: models.Round2(d.PerimeterM),
		HeightMeters:    d.HeightM,
		WallAreaM2:      models.Round2(d.WallAreaM2),
		FloorAreaM2:     models.Round2(d.FloorAreaM2),
		Lines: []models.LineItem{
			{Label: labelWall, Unit: unitSquareMeter, Quantity: models.Round2(d.WallAreaM2), UnitPrice: PriceWallPerM2},
			{Label: labelFloor, Unit: unitSquareMeter, Quantity: models.Round2(d.FloorAreaM2), UnitPrice: PriceFloorPerM2},
			{Label: labelDecor, Unit: unitPiece, Quantity: float64(decor), UnitPrice: PriceDecorUnit},
			{Label: labelStrip, Unit: unitPiece, Quantity: float64(strips), UnitPrice: PriceStripUnit},
		},
	}
}

// FlatSpace builds the single-line invoice for a floor/flat space: the stated
// or computed area priced at the floor rate. No walls, no perimeter-derived
// materials.
func FlatSpace(name string, cat models.Category, areaM2 float64) models.SpaceInvoice {
	return models.SpaceInvoice{
		Name:        name,
		Category:    cat,
		FloorAreaM2: models.Round2(areaM2),
		Lines: []models.LineItem{
			{Label: labelFlat, Unit: unitSquareMeter, Quantity: models.Round2(areaM2), UnitPrice: PriceFloorPerM2},
		},
	}
}
