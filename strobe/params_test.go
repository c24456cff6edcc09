package strobe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecurityParameterRateCapacity(t *testing.T) {
	require.Equal(t, 166, Param128.Rate())
	require.Equal(t, 128, Param128.Bits())
	require.Equal(t, stateLen-166, Param128.Capacity())

	require.Equal(t, 134, Param256.Rate())
	require.Equal(t, 256, Param256.Bits())
	require.Equal(t, stateLen-134, Param256.Capacity())
}

func TestSecurityParameterString(t *testing.T) {
	require.Equal(t, "STROBE-128", Param128.String())
	require.Equal(t, "STROBE-256", Param256.String())
}
