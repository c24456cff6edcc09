package strobe

// AD absorbs buf as associated data. buf is left unchanged.
func (s *Strobe) AD(buf []byte, more bool) {
	s.beginOp(flagA, more)
	s.absorb(buf)
}

// MetaAD is AD with the metadata bit set, used to inject protocol-level
// framing (labels, lengths) distinguishable from ordinary payload.
func (s *Strobe) MetaAD(buf []byte, more bool) {
	s.beginOp(flagA|flagM, more)
	s.absorb(buf)
}

// Key absorbs buf as keying material. Because the K-side framing rule
// (flags&(C|K) != 0) fires, a transcript that keys mid-block forces an
// extra permutation, matching spec.md §4.2's "run_f after begin_op" note.
func (s *Strobe) Key(buf []byte, more bool) {
	s.beginOp(flagA|flagC, more)
	s.absorb(buf)
}

// MetaKey is Key with the metadata bit set.
func (s *Strobe) MetaKey(buf []byte, more bool) {
	s.beginOp(flagA|flagC|flagM, more)
	s.absorb(buf)
}

// PRF squeezes len(out) pseudorandom bytes into out, derived from the
// entire prior transcript.
func (s *Strobe) PRF(out []byte, more bool) {
	s.beginOp(flagI|flagA|flagC, more)
	s.squeeze(out)
}

// MetaPRF is PRF with the metadata bit set.
func (s *Strobe) MetaPRF(out []byte, more bool) {
	s.beginOp(flagI|flagA|flagC|flagM, more)
	s.squeeze(out)
}

// SendCLR absorbs buf and marks it as cleartext transmitted to the peer.
// buf is left unchanged.
func (s *Strobe) SendCLR(buf []byte, more bool) {
	s.beginOp(flagA|flagT, more)
	s.absorb(buf)
}

// MetaSendCLR is SendCLR with the metadata bit set.
func (s *Strobe) MetaSendCLR(buf []byte, more bool) {
	s.beginOp(flagA|flagT|flagM, more)
	s.absorb(buf)
}

// RecvCLR absorbs buf as cleartext received from the peer. buf is left
// unchanged. The framing flags must match SendCLR's exactly -- I marks
// which side called the operation but is not part of the byte beginOp
// absorbs, so it is omitted here the same way RecvMAC omits it.
func (s *Strobe) RecvCLR(buf []byte, more bool) {
	s.beginOp(flagA|flagT, more)
	s.absorb(buf)
}

// MetaRecvCLR is RecvCLR with the metadata bit set.
func (s *Strobe) MetaRecvCLR(buf []byte, more bool) {
	s.beginOp(flagA|flagT|flagM, more)
	s.absorb(buf)
}

// SendENC encrypts buf in place: plaintext in, ciphertext out, and the
// ciphertext persists in the sponge state.
func (s *Strobe) SendENC(buf []byte, more bool) {
	s.beginOp(flagA|flagC|flagT, more)
	s.encrypt(buf)
}

// MetaSendENC is SendENC with the metadata bit set.
func (s *Strobe) MetaSendENC(buf []byte, more bool) {
	s.beginOp(flagA|flagC|flagT|flagM, more)
	s.encrypt(buf)
}

// RecvENC decrypts buf in place: ciphertext in, plaintext out. The
// ciphertext -- not the recovered plaintext -- persists in the sponge
// state, so a sender's SendENC and a receiver's RecvENC leave identical
// transcripts. Because C is set, beginOp forces an out-of-band
// permutation, so the framing flags byte it absorbs must be bit-for-bit
// identical to SendENC's -- I is therefore omitted here, exactly as
// RecvMAC already omits it from its own flags byte.
func (s *Strobe) RecvENC(buf []byte, more bool) {
	s.beginOp(flagA|flagC|flagT, more)
	s.decrypt(buf)
}

// MetaRecvENC is RecvENC with the metadata bit set.
func (s *Strobe) MetaRecvENC(buf []byte, more bool) {
	s.beginOp(flagA|flagC|flagT|flagM, more)
	s.decrypt(buf)
}

// SendMAC squeezes a MAC of len(out) bytes, computed over the entire prior
// transcript, into out. out must be non-empty (spec.md §7).
func (s *Strobe) SendMAC(out []byte, more bool) {
	if len(out) == 0 {
		return
	}
	s.beginOp(flagC|flagT, more)
	s.squeeze(out)
}

// MetaSendMAC is SendMAC with the metadata bit set.
func (s *Strobe) MetaSendMAC(out []byte, more bool) {
	if len(out) == 0 {
		return
	}
	s.beginOp(flagC|flagT|flagM, more)
	s.squeeze(out)
}

// RecvMAC squeezes len(tag) bytes internally and compares them to tag in
// constant time. It returns *AuthError if the tag does not match; the
// caller must discard the transcript in that case, since the sponge has
// already absorbed the attacker-chosen ciphertext and cannot be rolled
// back (spec.md §7).
func (s *Strobe) RecvMAC(tag []byte, more bool) error {
	if len(tag) == 0 {
		return nil
	}
	s.beginOp(flagC|flagT, more)
	return s.finishRecvMAC(tag)
}

// MetaRecvMAC is RecvMAC with the metadata bit set.
func (s *Strobe) MetaRecvMAC(tag []byte, more bool) error {
	if len(tag) == 0 {
		return nil
	}
	s.beginOp(flagC|flagT|flagM, more)
	return s.finishRecvMAC(tag)
}

func (s *Strobe) finishRecvMAC(tag []byte) error {
	scratch := make([]byte, len(tag))
	s.squeeze(scratch)
	ok := constantTimeEqual(scratch, tag)
	for i := range scratch {
		scratch[i] = 0
	}
	if !ok {
		return &AuthError{Len: len(tag)}
	}
	return nil
}

// Ratchet destroys n bytes of the current state by overwriting them with
// zero, guaranteeing that no future operation's output can be used to
// recover any secret absorbed before the ratchet (spec.md §8 property 5).
func (s *Strobe) Ratchet(n int, more bool) {
	s.beginOp(flagC, more)
	s.zeroState(n)
}

// MetaRatchet is Ratchet with the metadata bit set.
func (s *Strobe) MetaRatchet(n int, more bool) {
	s.beginOp(flagC|flagM, more)
	s.zeroState(n)
}

// constantTimeEqual reports whether a and b are equal, in time
// independent of where they first differ and without early exit
// (spec.md §4.5). Unequal lengths compare unequal, but the length check
// itself is not secret-dependent (lengths are public in every STROBE use
// of this function).
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var acc byte
	for i := range a {
		acc |= a[i] ^ b[i]
	}
	return acc == 0
}
