package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderID(t *testing.T) {
	a := GenerateOrderID()
	b := GenerateOrderID()
	assert.NotEqual(t, a, b)
	assert.LessOrEqual(t, len(a), 50, "order IDs must fit the gateway limit")
	assert.Contains(t, a, "ORD-")
}

func TestFormatRial(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{420000, "420,000"},
		{500000000, "500,000,000"},
		{-10000, "-10,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRial(tt.in))
	}
}
