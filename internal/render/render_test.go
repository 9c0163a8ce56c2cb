package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eamarbiyout/storebot/internal/models"
	"github.com/eamarbiyout/storebot/internal/pricing"
)

func sampleSpaces(n int) []models.SpaceInvoice {
	var spaces []models.SpaceInvoice
	session := models.NewSession()
	for i := 0; i < n; i++ {
		name := session.NextName(models.CategoryKitchen)
		spaces = append(spaces, pricing.WetSpace(name, models.CategoryKitchen, pricing.FromDimensions(3, 4, 3.2)))
	}
	return spaces
}

func TestRenderProducesPDF(t *testing.T) {
	r := New(Options{})

	out, err := r.Render(sampleSpaces(2))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output does not start with PDF magic: %q", out[:8])
	}
	if len(out) < 500 {
		t.Errorf("output suspiciously small: %d bytes", len(out))
	}
}

func TestRenderPaginatesLongSessions(t *testing.T) {
	r := New(Options{})

	small, err := r.Render(sampleSpaces(1))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	large, err := r.Render(sampleSpaces(60))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// 60 kitchen blocks cannot fit one A4 page; the large document must
	// carry more page objects than the single-space one.
	if pages(large) <= pages(small) {
		t.Errorf("large doc pages = %d, small doc pages = %d; expected pagination", pages(large), pages(small))
	}
}

// pages counts page objects in the raw PDF. "/Type /Pages" (the page tree
// root) also matches the page prefix, so subtract it.
func pages(pdf []byte) int {
	return bytes.Count(pdf, []byte("/Type /Page")) - bytes.Count(pdf, []byte("/Type /Pages"))
}

func TestRenderDegradesWithoutResources(t *testing.T) {
	// Missing font and logo paths must not fail the export.
	r := New(Options{
		FontPath: "testdata/does-not-exist.ttf",
		LogoPath: "testdata/does-not-exist.png",
	})

	out, err := r.Render(sampleSpaces(1))
	if err != nil {
		t.Fatalf("Render failed in degraded mode: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("degraded output is not a PDF")
	}
}

func TestRenderAppliesShaper(t *testing.T) {
	var shaped []string
	r := New(Options{Shape: func(s string) string {
		shaped = append(shaped, s)
		return s
	}})

	if _, err := r.Render(sampleSpaces(1)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var sawName bool
	for _, s := range shaped {
		if strings.Contains(s, "مطبخ 1") {
			sawName = true
		}
	}
	if !sawName {
		t.Error("shaper never saw the space name; RTL shaping is not applied to drawn text")
	}
}
