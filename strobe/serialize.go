package strobe

// serializedLen is the fixed length of a Marshal-ed transcript: the
// 200-byte state, pos, pos_begin, cur_flags, and a 1-byte security
// parameter tag (spec.md §6).
const serializedLen = stateLen + 4

// tag encodes the Open-Question (a) decision from DESIGN.md: 0x00
// for 128-bit, 0x01 for 256-bit. This mapping is not part of the STROBE
// reference design; it is this package's own documented choice, and
// Unmarshal rejects any other value.
func (p SecurityParameter) tag() byte {
	switch p {
	case Param128:
		return 0
	case Param256:
		return 1
	default:
		panic("strobe: unknown security parameter")
	}
}

func paramFromTag(tag byte) (SecurityParameter, bool) {
	switch tag {
	case 0:
		return Param128, true
	case 1:
		return Param256, true
	default:
		return 0, false
	}
}

// Marshal serializes the full private state: the raw sponge state, pos,
// pos_begin, cur_flags, and the security parameter. The result is the
// plaintext secret -- there is no obfuscation (spec.md §4.6) -- and the
// caller is responsible for protecting it the same way it protects the
// live *Strobe.
func (s *Strobe) Marshal() []byte {
	out := make([]byte, serializedLen)
	copy(out[:stateLen], s.state[:])
	out[stateLen] = byte(s.pos)
	out[stateLen+1] = byte(s.posBegin)
	out[stateLen+2] = s.curFlags
	out[stateLen+3] = s.param.tag()
	return out
}

// Unmarshal reconstructs a *Strobe from a Marshal-ed record, rejecting any
// record with the wrong length, an unrecognized security-parameter tag, or
// pos/pos_begin out of range for that parameter's rate.
func Unmarshal(data []byte) (*Strobe, error) {
	if len(data) != serializedLen {
		return nil, &DeserializationError{Reason: ErrInvalidCursor}
	}

	param, ok := paramFromTag(data[stateLen+3])
	if !ok {
		return nil, &DeserializationError{Reason: ErrUnknownSecurityParameter}
	}

	pos := int(data[stateLen])
	posBegin := int(data[stateLen+1])
	rate := param.Rate()
	if pos >= rate || posBegin >= rate {
		return nil, &DeserializationError{Reason: ErrInvalidCursor}
	}

	curFlags := data[stateLen+2]
	if curFlags&0x80 != 0 {
		return nil, &DeserializationError{Reason: ErrInvalidCursor}
	}

	s := &Strobe{param: param, pos: pos, posBegin: posBegin, curFlags: curFlags}
	copy(s.state[:], data[:stateLen])
	return s, nil
}
