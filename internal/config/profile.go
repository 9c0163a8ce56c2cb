package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eamarbiyout/storebot/internal/models"
)

// Profile holds the shop's public details shown by the menu responders, the
// advertised text offers, and the trackable orders seeded into the store.
type Profile struct {
	Name         string `yaml:"name"`
	WhatsApp     string `yaml:"whatsapp"` // international number, digits only
	MapsLink     string `yaml:"maps_link"`
	FacebookPage string `yaml:"facebook_page"`
	CatalogLink  string `yaml:"catalog_link"`
	WorkingHours string `yaml:"working_hours"`

	Offers []string       `yaml:"offers"`
	Orders []models.Order `yaml:"orders"`
}

// DefaultProfile returns the built-in shop details, used when no profile file
// is present.
func DefaultProfile() Profile {
	return Profile{
		Name:     "إعمار البيوت للسيراميك والمواد الصحية — سبها",
		WhatsApp: "218915190151",
		MapsLink: "https://maps.app.goo.gl/44BRQdCMW3S7VcPu8",
		WorkingHours: "السبت–الخميس:\n" +
			"صباحًا 09:00–13:00\n" +
			"مساءً 16:00–20:00\n" +
			"الجمعة: إجازة",
		Offers: []string{
			"خصم على باقات الحمّام المتكاملة — استفسر الآن.",
			"أسعار مميزة على بلاط 60×60 (لامع/مطفأ).",
			"خصومات على لواصق البلاط (كولا) للطلبات بالجملة.",
		},
		Orders: []models.Order{
			{Code: "EB-2510-001", Status: "قيد التجهيز", ETA: "خلال 48 ساعة", Note: "بانتظار تأكيد القياسات."},
			{Code: "EB-2510-002", Status: "تم التسليم", ETA: "-", Note: "سُلّم يوم 24/10/2025."},
		},
	}
}

// LoadProfile reads the profile file at path, falling back to the defaults
// when the file does not exist. Fields left empty in the file keep their
// default values.
func LoadProfile(path string) (Profile, error) {
	def := DefaultProfile()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return def, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	p := def
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return p, nil
}

// WhatsAppLink returns the direct chat link for the shop's number.
func (p Profile) WhatsAppLink() string {
	return "https://wa.me/" + p.WhatsApp
}

// WhatsAppPrefill returns a chat link that opens with the given text already
// typed.
func (p Profile) WhatsAppPrefill(text string) string {
	return p.WhatsAppLink() + "?text=" + url.QueryEscape(text)
}
