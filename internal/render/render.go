// Package render lays out accumulated space invoices into a paginated A4 PDF
// document with right-to-left text. Optional capabilities (Arabic-capable TTF
// font, store logo, text shaper) are resolved once at construction; a missing
// capability degrades the output instead of failing the export.
package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/eamarbiyout/storebot/internal/models"
)

// Shaper converts a logical-order string into its visual RTL form.
type Shaper func(string) string

// Options configures the renderer. Every field is optional.
type Options struct {
	// FontPath points to a TTF with Arabic glyphs (e.g. Amiri). When absent
	// or unreadable the built-in Helvetica is used and Arabic text will not
	// render properly, but the export still succeeds.
	FontPath string

	// LogoPath points to a PNG or JPEG drawn in the page header.
	LogoPath string

	// Shape reorders text for RTL display. Nil means no shaping.
	Shape Shaper
}

// Renderer produces invoice documents. Safe for concurrent use; each Render
// call builds an independent document.
type Renderer struct {
	fontPath string
	logoPath string
	logoType string
	shape    Shaper
}

const (
	fontFamily = "Amiri"

	pageMargin = 15.0 // mm

	// Remaining-space thresholds checked before drawing the next block.
	spaceBreak = 50.0 // before a space header
	rowBreak   = 30.0 // before a table row or the footer
)

// New resolves the optional capabilities and returns a ready renderer.
func New(opts Options) *Renderer {
	r := &Renderer{shape: opts.Shape}
	if r.shape == nil {
		r.shape = func(s string) string { return s }
	}

	if opts.FontPath != "" {
		if sniffTTF(opts.FontPath) {
			r.fontPath = opts.FontPath
		} else {
			slog.Warn("Invoice font unavailable, falling back to built-in font", "path", opts.FontPath)
		}
	}
	if opts.LogoPath != "" {
		if t := sniffImageType(opts.LogoPath); t != "" {
			r.logoPath = opts.LogoPath
			r.logoType = t
		} else {
			slog.Warn("Invoice logo unavailable, omitting", "path", opts.LogoPath)
		}
	}
	return r
}

// Render lays out all spaces plus the grand total into a single PDF and
// returns its bytes. The caller owns delivery; no other I/O happens here.
func (r *Renderer) Render(spaces []models.SpaceInvoice) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("فاتورة السيراميك", true)
	pdf.SetAutoPageBreak(false, 0)

	font := "Helvetica"
	if r.fontPath != "" {
		pdf.AddUTF8Font(fontFamily, "", r.fontPath)
		font = fontFamily
	}

	pageW, pageH := pdf.GetPageSize()
	d := &doc{
		pdf:   pdf,
		font:  font,
		shape: r.shape,
		logo:  r.logoPath,
		logoT: r.logoType,
		pageW: pageW,
		pageH: pageH,
	}

	d.newPage()
	var grand float64
	for i := range spaces {
		d.drawSpace(&spaces[i])
		grand += spaces[i].Total()
	}
	d.drawFooter(models.Round2(grand))

	if pdf.Err() {
		return nil, fmt.Errorf("failed to render invoice: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write invoice: %w", err)
	}
	return buf.Bytes(), nil
}

// doc tracks the cursor while one document is laid out.
type doc struct {
	pdf   *fpdf.Fpdf
	font  string
	shape Shaper
	logo  string
	logoT string
	pageW float64
	pageH float64
	y     float64
}

func (d *doc) newPage() {
	d.pdf.AddPage()
	d.y = pageMargin
	d.drawHeader()
}

// ensure starts a new page (with a fresh header) when the remaining vertical
// space falls below need. Re-checked before every block and every row.
func (d *doc) ensure(need float64) {
	if d.y > d.pageH-need {
		d.newPage()
	}
}

// right draws text right-aligned, offset dx mm in from the right margin.
func (d *doc) right(text string, size, dx float64) {
	d.pdf.SetFont(d.font, "", size)
	d.pdf.SetXY(pageMargin, d.y)
	w := d.pageW - 2*pageMargin - dx
	d.pdf.CellFormat(w, size*0.45, d.shape(text), "", 0, "R", false, 0, "")
}

func (d *doc) rule(width float64) {
	d.pdf.SetLineWidth(width)
	d.pdf.Line(pageMargin, d.y, d.pageW-pageMargin, d.y)
}

func (d *doc) drawHeader() {
	d.right("فاتورة السيراميك — إعمار البيوت", 16, 0)
	if d.logo != "" {
		d.pdf.ImageOptions(d.logo, pageMargin, pageMargin, 30, 15, false,
			fpdf.ImageOptions{ImageType: d.logoT, ReadDpi: true}, 0, "")
	}
	d.y += 8
	d.rule(0.4)
	d.y += 5
}

// Column offsets (mm from the right margin): total, price, quantity, unit, label.
var columns = [5]float64{0, 30, 55, 85, 105}

func (d *doc) drawTableHeader() {
	headers := [5]string{"الإجمالي", "السعر", "الكمية", "الوحدة", "البند"}
	for i, h := range headers {
		d.right(h, 10, columns[i])
	}
	d.y += 4.5
	d.rule(0.2)
	d.y += 3
}

func (d *doc) drawSpace(space *models.SpaceInvoice) {
	d.ensure(spaceBreak)

	d.right(space.Name, 13, 0)
	d.y += 6
	if space.Category.Wet() {
		d.right(fmt.Sprintf("المحيط: %s م | الارتفاع: %s م",
			formatQty(space.PerimeterMeters), formatQty(space.HeightMeters)), 10, 0)
		d.y += 4.5
		d.right(fmt.Sprintf("الحائط: %s م² | الأرضية: %s م²",
			formatQty(space.WallAreaM2), formatQty(space.FloorAreaM2)), 10, 0)
		d.y += 5
	}

	d.drawTableHeader()
	for _, line := range space.Lines {
		if d.y > d.pageH-rowBreak {
			d.newPage()
			d.drawTableHeader()
		}
		d.right(fmt.Sprintf("%.2f", line.Total()), 10, columns[0])
		d.right(fmt.Sprintf("%.2f", line.UnitPrice), 10, columns[1])
		d.right(formatQty(line.Quantity), 10, columns[2])
		d.right(line.Unit, 10, columns[3])
		d.right(line.Label, 10, columns[4])
		d.y += 4.5
	}

	d.rule(0.2)
	d.y += 3
	d.right(fmt.Sprintf("إجمالي %s: %.2f د.ل", space.Name, space.Total()), 11, 0)
	d.y += 6
}

func (d *doc) drawFooter(grandTotal float64) {
	d.ensure(rowBreak)

	d.rule(0.4)
	d.y += 5
	d.pdf.SetTextColor(0, 0, 139)
	d.right(fmt.Sprintf("الإجمالي الكلي: %.2f د.ل", grandTotal), 14, 0)
	d.pdf.SetTextColor(0, 0, 0)
	d.y += 8
	d.right("شكراً لاختياركم إعمار البيوت للسيراميك والمواد الصحية — سبها", 9, 0)
	d.y += 4
	d.right("واتساب: +218928220151", 9, 0)
}

// formatQty renders a quantity with its natural precision (no trailing
// zeros), unlike currency which is always 2 decimals.
func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// sniffTTF reports whether path looks like a loadable TrueType/OpenType font.
func sniffTTF(path string) bool {
	head := readHead(path, 4)
	if head == nil {
		return false
	}
	switch string(head) {
	case "\x00\x01\x00\x00", "OTTO", "true":
		return true
	}
	return false
}

// sniffImageType returns "PNG", "JPG" or "" for the file at path.
func sniffImageType(path string) string {
	head := readHead(path, 8)
	if head == nil {
		return ""
	}
	if bytes.HasPrefix(head, []byte("\x89PNG")) {
		return "PNG"
	}
	if bytes.HasPrefix(head, []byte{0xFF, 0xD8}) {
		return "JPG"
	}
	return ""
}

func readHead(path string, n int) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	head := make([]byte, n)
	if _, err := f.Read(head); err != nil {
		return nil
	}
	return head
}
