// Package strobe implements the STROBE protocol framework: a symmetric
// construction that unifies hashing, authenticated encryption, key
// derivation, MAC generation, and transcript-based protocol composition on
// top of a single sponge permutation (Keccak-f[1600]).
//
// A *Strobe value is a transcript: a protocol injects a sequence of typed
// operations into it (AD, Key, PRF, SendCLR/RecvCLR, SendENC/RecvENC,
// SendMAC/RecvMAC, Ratchet, and their Meta* variants), and two parties
// performing symmetric operation sequences with identical payloads end up
// with byte-identical transcript state.
//
// A *Strobe is single-owner and not internally synchronized; concurrent use
// from multiple goroutines requires external serialization (see
// crypto/vault for a synchronized wrapper).
package strobe

import "runtime"

const (
	flagI byte = 0x01 // inbound
	flagA byte = 0x02 // application
	flagC byte = 0x04 // cipher / transforms payload
	flagT byte = 0x08 // transport
	flagM byte = 0x10 // metadata
	flagK byte = 0x20 // key-tree (reserved, never exposed)
)

// strobeVersion is the 12-byte version string that ends the fixed 18-byte
// initialization header New builds (spec.md §4.4):
// [1, R+2, 1, 0, 1, 12*8, "STROBEv1.0.2"].
var strobeVersion = [12]byte{'S', 'T', 'R', 'O', 'B', 'E', 'v', '1', '.', '0', '.', '2'}

// Strobe is a STROBE transcript. The zero value is not usable; construct
// one with New.
type Strobe struct {
	state        [stateLen]byte
	pos          int
	posBegin     int
	curFlags     byte
	param        SecurityParameter
	permutations uint64
}

// New creates a new STROBE transcript, domain-separated by
// domainSeparator, running at the given security parameter.
//
// Two transcripts initialized with identical (domainSeparator, param) and
// fed identical operation sequences with identical payloads end up
// byte-for-byte identical (spec.md §3, "Conceptual lifecycle").
func New(domainSeparator []byte, param SecurityParameter) *Strobe {
	s := &Strobe{param: param}

	rate := param.Rate()
	header := [18]byte{1, byte(rate + 2), 1, 0, 1, 12 * 8}
	copy(header[6:], strobeVersion[:])
	copy(s.state[:], header[:])

	permute(&s.state)
	s.pos = 0
	s.posBegin = 0
	s.curFlags = 0

	s.MetaAD(domainSeparator, false)
	return s
}

// Param reports the security parameter this transcript is running at.
func (s *Strobe) Param() SecurityParameter {
	return s.param
}

// Clone returns an independent copy of the transcript: same state, pos,
// pos_begin, cur_flags and security parameter. Useful for protocols that
// need to fork a transcript (e.g. to save a pre-ratchet snapshot without
// re-running the whole prefix on a second object).
func (s *Strobe) Clone() *Strobe {
	c := *s
	return &c
}

// Zero overwrites the transcript's secret state with zero bytes. Callers
// must call Zero before letting a *Strobe become unreachable if the
// transcript ever absorbed secret material (spec.md §9,
// "Secret-zeroization"). runtime.KeepAlive anchors s past the wipe loop so
// the compiler cannot prove the writes are dead and elide them -- without
// it, a build that can see Zero is followed by nothing but the value going
// out of scope is free to drop the loop entirely.
func (s *Strobe) Zero() {
	for i := range s.state {
		s.state[i] = 0
	}
	s.pos = 0
	s.posBegin = 0
	s.curFlags = 0
	runtime.KeepAlive(s)
}

// Permutations reports how many Keccak-f[1600] permutations this
// transcript has run since it was created, not counting the one New runs
// over the initialization header (a transcript restored by Unmarshal
// starts again at zero), for callers that want to
// surface it as a metric without strobe itself depending on a metrics
// library.
func (s *Strobe) Permutations() uint64 {
	return s.permutations
}

func (s *Strobe) rate() int {
	return s.param.Rate()
}
