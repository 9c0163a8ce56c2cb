// Package offers implements the promotional image archive: one-time paced
// uploads of a local image folder to Telegram (recording the returned
// file_ids), diff reports between folder and archive, and paginated browsing.
package offers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eamarbiyout/storebot/internal/metrics"
	"github.com/eamarbiyout/storebot/internal/models"
	"github.com/eamarbiyout/storebot/internal/store"
)

// DefaultSize is the only offer collection the shop currently maintains.
const DefaultSize = "60x60"

// uploadPause spaces out archival uploads to stay clear of Telegram flood
// limits.
const uploadPause = 600 * time.Millisecond

var imageExts = []string{".jpg", ".jpeg", ".png", ".webp"}

// Uploader sends one local image to a chat and returns the Telegram file id
// under which it was stored. Implemented by the bot transport.
type Uploader interface {
	UploadPhoto(chatID int64, path, caption string) (string, error)
}

// Service archives and serves one offer collection.
type Service struct {
	store store.Store
	dir   string
	size  string
	pause time.Duration
}

// New returns a service for the images in dir, archived under DefaultSize.
func New(st store.Store, dir string) *Service {
	return &Service{store: st, dir: dir, size: DefaultSize, pause: uploadPause}
}

// ItemFailure records one image that could not be archived. Failures never
// abort the batch; they are reported in the summary.
type ItemFailure struct {
	Code string
	Err  error
}

// Report summarizes one archival run.
type Report struct {
	Indexed  int
	Failures []ItemFailure
}

// CheckReport compares the image folder against the archive.
type CheckReport struct {
	InDir    int
	Archived int
	Missing  []string // in folder, not archived
	Extra    []string // archived, no longer in folder
}

// IndexAll uploads every image in the folder, refreshing already archived
// codes.
func (s *Service) IndexAll(ctx context.Context, chatID int64, up Uploader) (Report, error) {
	codes, err := s.dirCodes()
	if err != nil {
		return Report{}, err
	}
	if len(codes) == 0 {
		return Report{}, fmt.Errorf("no images in %s", s.dir)
	}
	return s.index(ctx, chatID, up, codes)
}

// IndexMissing uploads only the images not present in the archive yet.
func (s *Service) IndexMissing(ctx context.Context, chatID int64, up Uploader) (Report, error) {
	check, err := s.Check(ctx)
	if err != nil {
		return Report{}, err
	}
	if len(check.Missing) == 0 {
		return Report{}, nil
	}
	return s.index(ctx, chatID, up, check.Missing)
}

// Check reports the differences between folder and archive.
func (s *Service) Check(ctx context.Context) (CheckReport, error) {
	dirCodes, err := s.dirCodes()
	if err != nil {
		return CheckReport{}, err
	}
	archived, err := s.store.ListOffers(ctx, s.size)
	if err != nil {
		return CheckReport{}, err
	}

	archivedSet := make(map[string]bool, len(archived))
	for _, o := range archived {
		archivedSet[o.Code] = true
	}
	dirSet := make(map[string]bool, len(dirCodes))
	for _, c := range dirCodes {
		dirSet[c] = true
	}

	report := CheckReport{InDir: len(dirCodes), Archived: len(archived)}
	for _, c := range dirCodes {
		if !archivedSet[c] {
			report.Missing = append(report.Missing, c)
		}
	}
	for _, o := range archived {
		if !dirSet[o.Code] {
			report.Extra = append(report.Extra, o.Code)
		}
	}
	return report, nil
}

// Page returns the offer at idx (browsing order) and the collection size.
func (s *Service) Page(ctx context.Context, idx int) (models.Offer, int, error) {
	offers, err := s.store.ListOffers(ctx, s.size)
	if err != nil {
		return models.Offer{}, 0, err
	}
	if len(offers) == 0 {
		return models.Offer{}, 0, fmt.Errorf("no archived offers")
	}
	if idx < 0 || idx >= len(offers) {
		return models.Offer{}, len(offers), fmt.Errorf("offer index %d out of range", idx)
	}
	return offers[idx], len(offers), nil
}

// Size returns the collection label, used in captions.
func (s *Service) Size() string { return s.size }

func (s *Service) index(ctx context.Context, chatID int64, up Uploader, codes []string) (Report, error) {
	batch := uuid.NewString()
	slog.Info("Starting offer archival", "batch", batch, "count", len(codes), "dir", s.dir)

	var report Report
	for i, code := range codes {
		if err := s.indexOne(ctx, chatID, up, code); err != nil {
			slog.Warn("Offer upload failed", "batch", batch, "code", code, "error", err)
			metrics.OfferUploads.WithLabelValues("failed").Inc()
			report.Failures = append(report.Failures, ItemFailure{Code: code, Err: err})
		} else {
			metrics.OfferUploads.WithLabelValues("ok").Inc()
			report.Indexed++
		}

		if i == len(codes)-1 {
			break
		}
		select {
		case <-time.After(s.pause):
		case <-ctx.Done():
			return report, ctx.Err()
		}
	}

	slog.Info("Offer archival finished", "batch", batch, "indexed", report.Indexed, "failed", len(report.Failures))
	return report, nil
}

func (s *Service) indexOne(ctx context.Context, chatID int64, up Uploader, code string) error {
	path, err := s.resolve(code)
	if err != nil {
		return err
	}
	caption := fmt.Sprintf("📦 أرشفة عرض %s — %s", code, s.size)
	fileID, err := up.UploadPhoto(chatID, path, caption)
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", code, err)
	}
	return s.store.PutOffer(ctx, models.Offer{Code: code, Size: s.size, FileID: fileID})
}

// resolve finds the image file for a code, trying each known extension.
func (s *Service) resolve(code string) (string, error) {
	for _, ext := range imageExts {
		path := filepath.Join(s.dir, code+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no image file for code %s", code)
}

// dirCodes lists the image codes (file names without extension) in the
// folder, sorted.
func (s *Service) dirCodes() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read offers dir %s: %w", s.dir, err)
	}

	var codes []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		for _, known := range imageExts {
			if ext == known {
				codes = append(codes, strings.TrimSuffix(name, filepath.Ext(name)))
				break
			}
		}
	}
	sort.Strings(codes)
	return codes, nil
}
