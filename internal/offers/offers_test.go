package offers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eamarbiyout/storebot/internal/store"
)

// fakeUploader records uploads and fails for codes listed in failFor.
type fakeUploader struct {
	uploaded []string
	failFor  map[string]bool
}

func (f *fakeUploader) UploadPhoto(chatID int64, path, caption string) (string, error) {
	code := filepath.Base(path)
	code = code[:len(code)-len(filepath.Ext(code))]
	if f.failFor[code] {
		return "", errors.New("upload rejected")
	}
	f.uploaded = append(f.uploaded, code)
	return "file-" + code, nil
}

func newTestService(t *testing.T, codes ...string) (*Service, *store.Memory) {
	t.Helper()
	dir := t.TempDir()
	for _, c := range codes {
		if err := os.WriteFile(filepath.Join(dir, c+".jpg"), []byte("img"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	// Junk files must be ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	mem := store.NewMemory()
	svc := New(mem, dir)
	svc.pause = time.Millisecond // keep tests fast
	return svc, mem
}

func TestIndexAll(t *testing.T) {
	svc, mem := newTestService(t, "6600002", "6600001")
	up := &fakeUploader{}

	report, err := svc.IndexAll(context.Background(), 1, up)
	if err != nil {
		t.Fatalf("IndexAll failed: %v", err)
	}
	if report.Indexed != 2 || len(report.Failures) != 0 {
		t.Errorf("report = %+v, want 2 indexed", report)
	}
	// Uploads happen in sorted code order.
	if len(up.uploaded) != 2 || up.uploaded[0] != "6600001" {
		t.Errorf("upload order = %v", up.uploaded)
	}

	offers, err := mem.ListOffers(context.Background(), DefaultSize)
	if err != nil {
		t.Fatalf("ListOffers failed: %v", err)
	}
	if len(offers) != 2 || offers[0].FileID != "file-6600001" {
		t.Errorf("archived offers = %+v", offers)
	}
}

func TestIndexContinuesPastFailures(t *testing.T) {
	svc, mem := newTestService(t, "a1", "a2", "a3")
	up := &fakeUploader{failFor: map[string]bool{"a2": true}}

	report, err := svc.IndexAll(context.Background(), 1, up)
	if err != nil {
		t.Fatalf("IndexAll failed: %v", err)
	}
	if report.Indexed != 2 {
		t.Errorf("indexed = %d, want 2", report.Indexed)
	}
	if len(report.Failures) != 1 || report.Failures[0].Code != "a2" {
		t.Errorf("failures = %+v, want a2 only", report.Failures)
	}

	offers, _ := mem.ListOffers(context.Background(), DefaultSize)
	if len(offers) != 2 {
		t.Errorf("archive holds %d offers, want the 2 successful ones", len(offers))
	}
}

func TestCheckAndIndexMissing(t *testing.T) {
	svc, _ := newTestService(t, "a1", "a2", "a3")
	ctx := context.Background()
	up := &fakeUploader{}

	// Archive a1 only, then check.
	if _, err := svc.index(ctx, 1, up, []string{"a1"}); err != nil {
		t.Fatalf("index failed: %v", err)
	}
	check, err := svc.Check(ctx)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if check.InDir != 3 || check.Archived != 1 {
		t.Errorf("check = %+v", check)
	}
	if len(check.Missing) != 2 {
		t.Errorf("missing = %v, want a2, a3", check.Missing)
	}

	report, err := svc.IndexMissing(ctx, 1, up)
	if err != nil {
		t.Fatalf("IndexMissing failed: %v", err)
	}
	if report.Indexed != 2 {
		t.Errorf("indexed = %d, want 2", report.Indexed)
	}

	check, err = svc.Check(ctx)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(check.Missing) != 0 {
		t.Errorf("still missing after IndexMissing: %v", check.Missing)
	}
}

func TestPage(t *testing.T) {
	svc, _ := newTestService(t, "a1", "a2")
	ctx := context.Background()

	if _, _, err := svc.Page(ctx, 0); err == nil {
		t.Error("Page on empty archive should fail")
	}

	if _, err := svc.IndexAll(ctx, 1, &fakeUploader{}); err != nil {
		t.Fatalf("IndexAll failed: %v", err)
	}

	offer, total, err := svc.Page(ctx, 1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if total != 2 || offer.Code != "a2" {
		t.Errorf("Page(1) = %+v total %d", offer, total)
	}

	if _, _, err := svc.Page(ctx, 5); err == nil {
		t.Error("out-of-range page should fail")
	}
}
