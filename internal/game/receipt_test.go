package game

import (
	"errors"
	"testing"
	"time"

	"github.com/playmatatu/spinwheel/internal/wheel"
	"github.com/stretchr/testify/require"
)

func sampleResult() *SpinResult {
	return &SpinResult{
		Token:    "abc123",
		Spin:     3,
		Selected: true,
		Pegs:     wheel.PegPair{A: 4, B: 3},
		Prize:    &Prize{Name: "Free coffee", Pegs: [2]int{3, 4}},
	}
}

func TestReceiptRoundTrip(t *testing.T) {
	receipt, err := SignReceipt("s3cret", time.Hour, sampleResult())
	require.NoError(t, err)

	claims, err := VerifyReceipt("s3cret", receipt)
	require.NoError(t, err)
	require.Equal(t, "abc123", claims.Session)
	require.Equal(t, 3, claims.Spin)
	require.Equal(t, [2]int{4, 3}, claims.Pegs)
	require.Equal(t, "Free coffee", claims.Prize)
}

func TestReceiptRejectsWrongSecret(t *testing.T) {
	receipt, err := SignReceipt("s3cret", time.Hour, sampleResult())
	require.NoError(t, err)

	_, err = VerifyReceipt("other", receipt)
	require.True(t, errors.Is(err, ErrInvalidReceipt))
}

func TestReceiptRejectsExpired(t *testing.T) {
	receipt, err := SignReceipt("s3cret", -time.Minute, sampleResult())
	require.NoError(t, err)

	_, err = VerifyReceipt("s3cret", receipt)
	require.ErrorIs(t, err, ErrInvalidReceipt)
}

func TestReceiptRejectsGarbage(t *testing.T) {
	_, err := VerifyReceipt("s3cret", "not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidReceipt)
}

func TestSignReceiptNeedsSecret(t *testing.T) {
	_, err := SignReceipt("", time.Hour, sampleResult())
	require.Error(t, err)
}
