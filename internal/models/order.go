package models

// Order is a trackable customer order, looked up by its public code
// (format EB-YYMM-###). Orders are seeded from the store profile.
type Order struct {
	Code   string `json:"code" yaml:"code"`
	Status string `json:"status" yaml:"status"`
	ETA    string `json:"eta" yaml:"eta"`
	Note   string `json:"note" yaml:"note"`
}

// Offer is one archived promotional image. Size groups offers into browsable
// collections (currently "60x60"); FileID is the Telegram-side identifier
// returned when the image was first uploaded, so re-serving it needs no
// re-upload.
type Offer struct {
	Code      string `json:"code"`
	Size      string `json:"size"`
	FileID    string `json:"file_id"`
	CreatedAt int64  `json:"created_at"`
}
