package utils_test

import (
	"errors"
	"testing"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/apperrors"
	"github.com/404twillCODE/Casino-Session-Tracker/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestParseMoneyToCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "20", want: 2000},
		{in: "20.5", want: 2050},
		{in: "20.50", want: 2050},
		{in: "$20.50", want: 2050},
		{in: " $1,000 ", want: 100000},
		{in: "0.015", want: 2},
		{in: "0", want: 0},
		{in: "-5", wantErr: true},
		{in: "", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "$", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := utils.ParseMoneyToCents(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrValidation))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 0, want: "$0.00"},
		{cents: 5, want: "$0.05"},
		{cents: 2050, want: "$20.50"},
		{cents: 12345, want: "$123.45"},
		{cents: -12345, want: "-$123.45"},
		{cents: 123456, want: "$1,234.56"},
		{cents: -100000000, want: "-$1,000,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.FormatMoney(tt.cents))
		})
	}
}

func TestFormatMoney_RoundTrip(t *testing.T) {
	for _, cents := range []int64{1, 99, 2050, 123456} {
		parsed, err := utils.ParseMoneyToCents(utils.FormatMoney(cents))
		assert.NoError(t, err)
		assert.Equal(t, cents, parsed)
	}
}

func TestCentsToDollars(t *testing.T) {
	assert.Equal(t, "20.50", utils.CentsToDollars(2050).StringFixed(2))
	assert.Equal(t, "-0.05", utils.CentsToDollars(-5).StringFixed(2))
}
