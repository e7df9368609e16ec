package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// CopyBytes returns an exact copy of the provided bytes.
func CopyBytes(b []byte) (copiedBytes []byte) {
	if b == nil {
		return nil
	}

	copiedBytes = make([]byte, len(b))
	copy(copiedBytes, b)

	return
}

// StringToBytes decodes a hex string, with or without the 0x prefix.
// Invalid input decodes to an empty slice.
func StringToBytes(str string) []byte {
	b, _ := DecodeHex(str)

	return b
}

// DecodeHex decodes a hex string, with or without the 0x prefix
func DecodeHex(str string) ([]byte, error) {
	str = strings.TrimPrefix(str, "0x")
	if len(str)%2 == 1 {
		str = "0" + str
	}

	return hex.DecodeString(str)
}

// EncodeToHex encodes b as a 0x prefixed hex string
func EncodeToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// decodeFixedHex decodes str into dst, which must match the decoded length exactly
func decodeFixedHex(name string, dst []byte, str string) error {
	b, err := DecodeHex(str)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, str, err)
	}

	if len(b) != len(dst) {
		return fmt.Errorf("invalid %s length %d, expected %d", name, len(b), len(dst))
	}

	copy(dst, b)

	return nil
}

// TrimLeftZeroes returns a subslice of s without leading zeroes
func TrimLeftZeroes(s []byte) []byte {
	idx := 0
	for ; idx < len(s); idx++ {
		if s[idx] != 0 {
			break
		}
	}

	return s[idx:]
}
