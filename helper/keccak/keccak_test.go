package keccak

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeccak256(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input  string
		output string
	}{
		{
			"",
			"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		},
		{
			"abc",
			"4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45",
		},
	}

	for _, c := range cases {
		assert.Equal(t, c.output, hex.EncodeToString(Keccak256(nil, []byte(c.input))))
	}
}

func TestPoolReuse(t *testing.T) {
	t.Parallel()

	first := Keccak256(nil, []byte("abc"))

	h := DefaultKeccakPool.Get()
	h.Write([]byte("garbage"))
	DefaultKeccakPool.Put(h)

	assert.Equal(t, first, Keccak256(nil, []byte("abc")))
}
