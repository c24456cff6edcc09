package strobe

// frameDelim is STROBE's fixed block-boundary delimiter byte (spec.md §9).
const frameDelim byte = 0x04

// forcePermute writes the block-boundary framing bytes into the capacity
// portion of the state (the only place pos_begin is ever consumed, per
// spec.md §9) and runs the Keccak-f[1600] permutation, then resets pos and
// pos_begin to 0. It is used both when a duplex step naturally reaches the
// rate boundary and when begin_op forces an out-of-band permutation on a
// cipher-direction change (spec.md §4.2).
func (s *Strobe) forcePermute() {
	r := s.rate()
	s.state[r] = byte(s.posBegin)
	s.state[r+1] = frameDelim
	permute(&s.state)
	s.pos = 0
	s.posBegin = 0
	s.permutations++
}

// maybePermute permutes once pos has reached the rate boundary.
func (s *Strobe) maybePermute() {
	if s.pos == s.rate() {
		s.forcePermute()
	}
}

// absorb implements spec.md §4.1's "absorb" duplex mode: state ^= data;
// data is left unchanged. Used by ad, key, send_clr, recv_clr, and the
// begin_op framing bytes themselves.
func (s *Strobe) absorb(data []byte) {
	for i := range data {
		s.state[s.pos] ^= data[i]
		s.pos++
		s.maybePermute()
	}
}

// squeeze implements the "absorb-and-squeeze" / PRF-style duplex mode:
// out[i] is overwritten with the current state byte, and that state byte
// is then zeroed. Used by prf, send_mac, and recv_mac's internal scratch
// buffer.
func (s *Strobe) squeeze(out []byte) {
	for i := range out {
		out[i] = s.state[s.pos]
		s.state[s.pos] = 0
		s.pos++
		s.maybePermute()
	}
}

// encrypt implements the encrypt duplex mode: buf is XORed with the state
// in place (plaintext -> ciphertext) and the resulting ciphertext replaces
// the state byte. Used by send_enc.
func (s *Strobe) encrypt(buf []byte) {
	for i := range buf {
		c := buf[i] ^ s.state[s.pos]
		buf[i] = c
		s.state[s.pos] = c
		s.pos++
		s.maybePermute()
	}
}

// decrypt implements recv_enc's asymmetric counterpart to encrypt: buf
// holds ciphertext on entry and plaintext on exit, but the *ciphertext* --
// not the recovered plaintext -- persists in the sponge state, so that a
// sender's send_enc and a receiver's recv_enc leave identical transcripts
// (spec.md §4.3, "The recv_enc rule is critical").
func (s *Strobe) decrypt(buf []byte) {
	for i := range buf {
		c := buf[i]
		p := c ^ s.state[s.pos]
		s.state[s.pos] = c
		buf[i] = p
		s.pos++
		s.maybePermute()
	}
}

// zeroState overwrites the next n bytes of state with zero, advancing pos
// and permuting as needed. Used by ratchet.
func (s *Strobe) zeroState(n int) {
	for i := 0; i < n; i++ {
		s.state[s.pos] = 0
		s.pos++
		s.maybePermute()
	}
}

// beginOp frames a new operation per spec.md §4.2: it absorbs the previous
// pos_begin and the new flags byte, records the new pos_begin, and -- if
// the operation changes cipher direction (C or K set) mid-block -- forces
// an extra permutation before any payload byte is processed.
//
// When more is true, beginOp is skipped entirely: the payload is duplexed
// under the previously active flags, implementing STROBE's streaming law
// (spec.md §8 property 6).
func (s *Strobe) beginOp(flags byte, more bool) {
	if more {
		return
	}

	oldBegin := byte(s.posBegin)
	s.curFlags = flags

	s.absorb([]byte{oldBegin, flags})
	s.posBegin = s.pos

	if flags&(flagC|flagK) != 0 && s.posBegin != 0 {
		s.forcePermute()
	}
}
