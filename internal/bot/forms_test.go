package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/eamarbiyout/storebot/internal/config"
	"github.com/eamarbiyout/storebot/internal/models"
)

func TestQuoteSummary(t *testing.T) {
	p := config.DefaultProfile()
	fields := map[string]string{
		"product":  "بلاط 60×60",
		"area":     "45",
		"customer": "أحمد",
		"phone":    "0915190151",
	}
	now := time.Date(2025, 10, 26, 14, 30, 0, 0, time.UTC)

	got := quoteSummary(p, fields, now)

	for _, want := range []string{
		"طلب عرض سعر",
		p.Name,
		"التاريخ: 2025-10-26 14:30",
		"المنتج: بلاط 60×60",
		"المساحة: 45",
		"الاسم: أحمد",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
	// Unanswered fields fall back to a placeholder, never go blank.
	if !strings.Contains(got, "الكمية: غير محدد") {
		t.Errorf("missing quantity placeholder:\n%s", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("summary has trailing newline")
	}
}

func TestOrderStatusText(t *testing.T) {
	p := config.DefaultProfile()

	t.Run("known order", func(t *testing.T) {
		got := orderStatusText(&models.Order{
			Code:   "EB-2510-001",
			Status: "قيد التجهيز",
			ETA:    "خلال 48 ساعة",
			Note:   "بانتظار تأكيد القياسات.",
		}, "EB-2510-001", p)

		for _, want := range []string{"EB-2510-001", "قيد التجهيز", "خلال 48 ساعة", "بانتظار"} {
			if !strings.Contains(got, want) {
				t.Errorf("status missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("delivered order hides dash eta", func(t *testing.T) {
		got := orderStatusText(&models.Order{Code: "EB-2510-002", Status: "تم التسليم", ETA: "-"}, "EB-2510-002", p)
		if strings.Contains(got, "التسليم المتوقع") {
			t.Errorf("placeholder ETA should be omitted:\n%s", got)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		got := orderStatusText(nil, "EB-0000-000", p)
		if !strings.Contains(got, "EB-0000-000") || !strings.Contains(got, "wa.me") {
			t.Errorf("unknown order reply should name the code and offer contact:\n%s", got)
		}
	})
}

func TestOfferNavKeyboard(t *testing.T) {
	tests := []struct {
		name     string
		idx      int
		total    int
		wantRows int
		wantData []string
	}{
		{"single offer", 0, 1, 1, []string{"offer60:back"}},
		{"first of three", 0, 3, 2, []string{"offer60:1", "offer60:back"}},
		{"middle of three", 1, 3, 2, []string{"offer60:0", "offer60:2", "offer60:back"}},
		{"last of three", 2, 3, 2, []string{"offer60:1", "offer60:back"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := offerNavKeyboard(tt.idx, tt.total)
			if len(kb.InlineKeyboard) != tt.wantRows {
				t.Fatalf("rows = %d, want %d", len(kb.InlineKeyboard), tt.wantRows)
			}

			var data []string
			for _, row := range kb.InlineKeyboard {
				for _, btn := range row {
					data = append(data, *btn.CallbackData)
				}
			}
			if len(data) != len(tt.wantData) {
				t.Fatalf("callback data = %v, want %v", data, tt.wantData)
			}
			for i := range data {
				if data[i] != tt.wantData[i] {
					t.Errorf("data[%d] = %q, want %q", i, data[i], tt.wantData[i])
				}
			}
		})
	}
}
