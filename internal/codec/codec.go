// Package codec converts raw binary payloads to and from the textual form
// used when file content is embedded in a JSON response.
package codec

import (
	"encoding/base64"
	"fmt"
)

// Encode returns the transport-safe textual form of raw binary data.
// The encoding is standard base64 with padding, so it is deterministic and
// reversible. Encoding an empty payload yields an empty string.
func Encode(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

// Decode reverses Encode, returning the original bytes.
func Decode(text string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("failed to decode file data: %w", err)
	}
	return raw, nil
}
