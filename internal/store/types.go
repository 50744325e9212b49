package store

// Index is the gallery index written next to the stored photos.
type Index struct {
	Version   int     `json:"version"`
	UpdatedAt string  `json:"updated_at"`
	NextID    int64   `json:"next_id"`
	Photos    []Photo `json:"photos"`
	Stats     Stats   `json:"stats"`
}

// Photo describes one saved composition.
type Photo struct {
	ID          int64     `json:"id"`
	Timestamp   int64     `json:"timestamp"`    // unix milliseconds
	AspectRatio string    `json:"aspect_ratio"` // "9:16" or "16:9"
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Format      string    `json:"format"`
	Size        int64     `json:"size"`      // bytes on disk
	Hash        string    `json:"hash"`      // 16 hex chars of xxhash64
	Path        string    `json:"path"`      // relative to the store dir
	ThumbHash   string    `json:"thumbhash"` // base64 placeholder
	AvgColor    *[3]uint8 `json:"avg_color,omitempty"`
}

// Stats aggregates gallery metrics.
type Stats struct {
	TotalPhotos int            `json:"total_photos"`
	TotalBytes  int64          `json:"total_bytes"`
	ByAspect    map[string]int `json:"by_aspect,omitempty"`
	Oldest      int64          `json:"oldest,omitempty"`
	Newest      int64          `json:"newest,omitempty"`
}

// IndexFile is the index file name inside the store directory.
const IndexFile = "momento.gallery.json"

// SupportedIndexVersion is the current schema version.
const SupportedIndexVersion = 1
