package types

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringToBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arr []byte
		exp []byte
	}{
		{StringToBytes("0x00ffff00ff0000"), []byte{0x00, 0xff, 0xff, 0x00, 0xff, 0x00, 0x00}},
		{StringToBytes("0x00000000000000"), []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{StringToBytes("0xff"), []byte{0xff}},
		{StringToBytes("fff"), []byte{0x0f, 0xff}},
		{[]byte{}, []byte{}},
	}

	for i, test := range tests {
		if !bytes.Equal(test.arr, test.exp) {
			t.Errorf("test %d, got %x exp %x", i, test.arr, test.exp)
		}
	}
}

func TestTrimLeftZeroes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arr []byte
		exp []byte
	}{
		{StringToBytes("0x00ffff00ff0000"), StringToBytes("0xffff00ff0000")},
		{StringToBytes("0x00000000000000"), []byte{}},
		{StringToBytes("0xff"), StringToBytes("0xff")},
		{[]byte{}, []byte{}},
	}

	for i, test := range tests {
		got := TrimLeftZeroes(test.arr)
		if !bytes.Equal(got, test.exp) {
			t.Errorf("test %d, got %x exp %x", i, got, test.exp)
		}
	}
}

func TestHexTextRoundTrip(t *testing.T) {
	t.Parallel()

	id := StringToObjectID("0x0102")

	text, err := id.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "0x0000000000000000000000000000000000000102", string(text))

	var decoded ObjectID

	assert.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, id, decoded)

	var digest Digest

	assert.Error(t, digest.UnmarshalText([]byte("0x0102")))
}
