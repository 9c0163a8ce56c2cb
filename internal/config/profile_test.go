package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadProfileMissingFileUsesDefaults(t *testing.T) {
	p, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if p.Name == "" || p.WhatsApp == "" {
		t.Errorf("defaults not applied: %+v", p)
	}
	if len(p.Orders) == 0 {
		t.Error("default orders missing")
	}
}

func TestLoadProfileOverridesAndKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.yaml")
	content := `
name: "متجر الاختبار"
whatsapp: "218900000000"
orders:
  - code: EB-2601-001
    status: "قيد التجهيز"
    eta: "غدًا"
    note: ""
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if p.Name != "متجر الاختبار" {
		t.Errorf("name = %q, want override", p.Name)
	}
	// Untouched fields keep defaults.
	if p.WorkingHours == "" {
		t.Error("working hours default lost")
	}
	if len(p.Orders) != 1 || p.Orders[0].Code != "EB-2601-001" {
		t.Errorf("orders = %+v, want the overridden list", p.Orders)
	}
}

func TestWhatsAppPrefill(t *testing.T) {
	p := DefaultProfile()
	link := p.WhatsAppPrefill("طلب عرض سعر\nالاسم: أحمد")
	if !strings.HasPrefix(link, "https://wa.me/"+p.WhatsApp+"?text=") {
		t.Errorf("prefill link = %q", link)
	}
	if strings.ContainsAny(link[len("https://wa.me/"+p.WhatsApp+"?text="):], "\n ") {
		t.Error("prefill text not url-encoded")
	}
}
