// Package hasher derives the content hashes used to name stored photos
// and to detect corrupted files.
package hasher

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// ContentHash returns the xxHash64 of data as lowercase hex, truncated to
// hexLen characters when 0 < hexLen < 16.
func ContentHash(data []byte, hexLen int) string {
	return truncate(xxhash.Sum64(data), hexLen)
}

// ReaderHash computes the same hash as ContentHash, streaming from r.
func ReaderHash(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return truncate(h.Sum64(), hexLen), nil
}

func truncate(sum uint64, hexLen int) string {
	full := fmt.Sprintf("%016x", sum)
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
