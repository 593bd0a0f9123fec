package customer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseClassification(t *testing.T) {
	require.Equal(t, VIP, ParseClassification("vip"))
	require.Equal(t, VIP, ParseClassification(" VIP "))
	require.Equal(t, Regular, ParseClassification("gold"))
	require.Equal(t, Regular, ParseClassification(""))
	require.True(t, New("C1", "Ana", "Vip").IsVIP())
}

func TestPoints(t *testing.T) {
	c := New("C2", "Bruno", "REGULAR")
	require.NoError(t, c.AddPoints(10))
	require.NoError(t, c.RedeemPoints(4))
	require.Equal(t, 6, c.Points)
	require.ErrorIs(t, c.RedeemPoints(7), ErrInsufficientPoints)
	require.ErrorIs(t, c.AddPoints(-1), ErrInvalidPoints)
	require.ErrorIs(t, c.RedeemPoints(-1), ErrInvalidPoints)
	require.Equal(t, 6, c.Points)
}
