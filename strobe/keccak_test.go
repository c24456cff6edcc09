package strobe

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPermuteIsDeterministic(t *testing.T) {
	var a, b [stateLen]byte
	for i := range a {
		a[i] = byte(i)
		b[i] = byte(i)
	}
	permute(&a)
	permute(&b)
	require.Equal(t, a, b)
}

func TestPermuteChangesAllZeroState(t *testing.T) {
	var zero [stateLen]byte
	state := zero
	permute(&state)
	require.False(t, bytes.Equal(zero[:], state[:]), "permutation of the all-zero state must not be a fixed point")
}

func TestLaneByteRoundTrip(t *testing.T) {
	var src [stateLen]byte
	for i := range src {
		src[i] = byte(i * 7)
	}

	var lanes [25]uint64
	xorLanesIn(&lanes, src[:])

	var dst [stateLen]byte
	lanesToBytes(&lanes, dst[:])

	require.Equal(t, src, dst)
}

func TestPermuteAvalanche(t *testing.T) {
	var a, b [stateLen]byte
	b[0] = 0x01 // single bit flip

	permute(&a)
	permute(&b)

	diff := 0
	for i := range a {
		if a[i] != b[i] {
			diff++
		}
	}
	require.Greater(t, diff, stateLen/2, "a single input bit flip should change most output bytes")
}
