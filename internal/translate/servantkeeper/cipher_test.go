package servantkeeper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slingshot-dev/slingshot/internal/model"
)

func TestDecodeAmount(t *testing.T) {
	cases := []struct {
		encoded string
		want    model.Cents
	}{
		{"KLOZOJ", 12550},   // 125.50
		{"KJJZJJ", 10000},   // 100.00
		{"HOZJJ", -500},     // -5.00
		{"J", 0},            // 0
		{"125.50", 12550},   // already plain, passes through
	}
	for _, tc := range cases {
		got := DecodeAmount(tc.encoded)
		require.NotNil(t, got, "input %q", tc.encoded)
		assert.Equal(t, tc.want, *got, "input %q", tc.encoded)
	}
}

func TestDecodeAmountDegradesToNil(t *testing.T) {
	assert.Nil(t, DecodeAmount(""))
	assert.Nil(t, DecodeAmount("garbage"))
}
