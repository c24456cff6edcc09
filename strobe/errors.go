package strobe

import "errors"

// ErrUnknownSecurityParameter is returned by Unmarshal when the serialized
// security-parameter tag (spec.md §6, offset 203) is not one this package
// recognizes.
var ErrUnknownSecurityParameter = errors.New("strobe: unknown security parameter")

// ErrInvalidCursor is returned by Unmarshal when pos or pos_begin fall
// outside [0, Rate()) for the parameter the record claims. Unmarshal also
// uses it as the Reason for a record of the wrong length and for a
// cur_flags byte with bit 7 set.
var ErrInvalidCursor = errors.New("strobe: pos/pos_begin out of range for security parameter")

// ErrEmptyPayload describes a zero-length buffer passed to an operation
// that needs a non-empty one. No operation in this package returns it:
// SendMAC/MetaSendMAC do nothing on an empty out, and RecvMAC/MetaRecvMAC
// return nil on an empty tag.
var ErrEmptyPayload = errors.New("strobe: operation requires a non-empty buffer")

// AuthError is returned by RecvMAC when the received tag does not match
// the tag the transcript computes. It is the only recoverable runtime
// error this package defines (spec.md §7): the caller must discard the
// Strobe object afterward, since the sponge has already absorbed the
// attacker-chosen ciphertext.
type AuthError struct {
	// Len is the length in bytes of the MAC that failed to verify.
	Len int
}

func (e *AuthError) Error() string {
	return "strobe: MAC verification failed"
}

// DeserializationError reports why Unmarshal rejected a serialized state
// record.
type DeserializationError struct {
	Reason error
}

func (e *DeserializationError) Error() string {
	return "strobe: invalid serialized state: " + e.Reason.Error()
}

func (e *DeserializationError) Unwrap() error {
	return e.Reason
}
