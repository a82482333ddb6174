// Package hasher computes short content hashes for output files.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// ContentHash returns the xxHash64 of data as a hex string truncated to
// hexLen characters. Sixteen hex chars carry the full 64 bits.
func ContentHash(data []byte, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64(data))
	return truncate(hex.EncodeToString(b[:]), hexLen)
}

// ContentHashReader computes the streaming xxHash64 of r.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], h.Sum64())
	return truncate(hex.EncodeToString(b[:]), hexLen), nil
}

func truncate(s string, n int) string {
	if n > 0 && n < len(s) {
		return s[:n]
	}
	return s
}
