package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUint64Bytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    uint64
		expected []byte
	}{
		{name: "zero", input: 0, expected: []byte{0, 0, 0, 0, 0, 0, 0, 0}},
		{name: "one", input: 1, expected: []byte{0, 0, 0, 0, 0, 0, 0, 1}},
		{name: "big endian", input: 0x0102030405060708, expected: []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{name: "max", input: math.MaxUint64, expected: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := Uint64ToBytes(tt.input)
			require.Equal(t, tt.expected, b)
			require.Equal(t, tt.input, BytesToUint64(b))
		})
	}
}
