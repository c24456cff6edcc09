package strobe

import "encoding/binary"

// keccakF1600 applies the 24-round Keccak-f[1600] permutation in place.
// This is the sole external collaborator described in spec.md §1 ("assumed
// available as a black-box function that mutates a 200-byte state"); no
// library in the surrounding ecosystem exposes a raw, byte-addressable
// permutation over an arbitrary 200-byte state, so it is written directly
// from the published round constants and rotation offsets (FIPS 202).
func keccakF1600(a *[25]uint64) {
	for round := 0; round < 24; round++ {
		// theta
		var c [5]uint64
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		var d [5]uint64
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ rotl64(c[(x+1)%5], 1)
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] ^= d[x]
			}
		}

		// rho and pi
		var b [25]uint64
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				nx := y
				ny := (2*x + 3*y) % 5
				b[nx+5*ny] = rotl64(a[x+5*y], rhoOffsets[x+5*y])
			}
		}

		// chi
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] = b[x+5*y] ^ ((^b[(x+1)%5+5*y]) & b[(x+2)%5+5*y])
			}
		}

		// iota
		a[0] ^= roundConstants[round]
	}
}

func rotl64(x uint64, n uint) uint64 {
	return (x << n) | (x >> (64 - n))
}

// rhoOffsets[x+5*y] is the rotation offset applied to lane (x,y) by rho.
var rhoOffsets = [25]uint{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082,
	0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001,
	0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088,
	0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b,
	0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080,
	0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080,
	0x0000000080000001, 0x8000000080008008,
}

// xorLanesIn XORs src (up to stateLen bytes, little-endian) into the lane
// array, matching the teacher's vendored
// github.com/dedis/kyber/cipher/sha3/sponge.go Transform byte-swap loop.
func xorLanesIn(a *[25]uint64, src []byte) {
	i := 0
	for len(src) >= 8 {
		a[i] ^= binary.LittleEndian.Uint64(src)
		src = src[8:]
		i++
	}
	if len(src) > 0 {
		var buf [8]byte
		copy(buf[:], src)
		a[i] ^= binary.LittleEndian.Uint64(buf[:])
	}
}

// lanesToBytes copies the lane array out to a byte buffer, little-endian.
func lanesToBytes(a *[25]uint64, dst []byte) {
	for i := 0; len(dst) >= 8; i++ {
		binary.LittleEndian.PutUint64(dst, a[i])
		dst = dst[8:]
	}
}

// permute runs Keccak-f[1600] over the 200-byte state in place, handling
// the byte<->lane conversion. Host endianness never leaks through: the
// state is always read and written as little-endian lanes (spec.md §9,
// "Endianness").
func permute(state *[stateLen]byte) {
	var a [25]uint64
	xorLanesIn(&a, state[:])
	keccakF1600(&a)
	lanesToBytes(&a, state[:])
}
