package model

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name string
		in   *big.Int
		want string
	}{
		{name: "nil", in: nil, want: "0"},
		{name: "whole", in: Tokens(100), want: "100"},
		{name: "half", in: new(big.Int).Div(Tokens(1), big.NewInt(2)), want: "0.5"},
		{name: "one wei", in: big.NewInt(1), want: "0.000000000000000001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatAmount(tt.in))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    *big.Int
		wantErr bool
	}{
		{name: "whole", in: "100", want: Tokens(100)},
		{name: "fraction", in: "12.5", want: new(big.Int).Add(Tokens(12), new(big.Int).Div(Tokens(1), big.NewInt(2)))},
		{name: "smallest unit", in: "0.000000000000000001", want: big.NewInt(1)},
		{name: "too precise", in: "0.0000000000000000001", wantErr: true},
		{name: "negative", in: "-1", wantErr: true},
		{name: "garbage", in: "ten", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			require.Zero(t, tt.want.Cmp(got), "got %s", got)
		})
	}
}

func TestCopy(t *testing.T) {
	src := big.NewInt(7)
	dst := Copy(src)
	dst.SetInt64(8)
	require.Equal(t, int64(7), src.Int64())
	require.Zero(t, Copy(nil).Sign())
}
