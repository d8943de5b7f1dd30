package reference

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   int
	}{
		{"empty", "", 0},
		{"zero", "0", 0},
		{"short id", "987", 4},
		{"regression fixture", "12345", 7},
		{"published slip example", "21000000000313947143000901", 7},
		{"separators ignored", "12 34-5", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Checksum(tt.number))
		})
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name      string
		invoiceID string
		want      string
	}{
		{"no invoice", "", ""},
		{"short id", "987", "00 00000 00000 00000 00000 09874"},
		{"five digits", "12345", "00 00000 00000 00000 00001 23457"},
		{"full width", "21000000000313947143000901", "21 00000 00003 13947 14300 09017"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.invoiceID))
		})
	}
}

func TestGenerate_Shape(t *testing.T) {
	ids := []string{"1", "42", "987", "12345", "2024000017", "9999999999999999999999999"}

	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			ref := Generate(id)

			assert.Len(t, ref, Width+5, "27 digits and five separators")
			assert.Len(t, strings.ReplaceAll(ref, " ", ""), Width)
			assert.Equal(t, ref, Generate(id))
			assert.True(t, Validate(ref))
		})
	}
}

func TestGroup(t *testing.T) {
	assert.Equal(t, "", Group(""))
	assert.Equal(t, "123", Group("123"))
	assert.Equal(t, "12345", Group("12345"))
	assert.Equal(t, "1 23456", Group("123456"))
	assert.Equal(t, "12345 67890", Group("1234567890"))
}

func TestValidate(t *testing.T) {
	assert.True(t, Validate("21 00000 00003 13947 14300 09017"))
	assert.True(t, Validate("210000000003139471430009017"))
	assert.False(t, Validate("21 00000 00003 13947 14300 09018"), "wrong check digit")
	assert.False(t, Validate("00 00000 00000 00000 00000 0987"), "too short")
	assert.False(t, Validate("2A 00000 00003 13947 14300 09017"), "not numeric")
	assert.False(t, Validate(""))
}
