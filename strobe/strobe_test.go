package strobe

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeterministicReplay(t *testing.T) {
	for _, param := range []SecurityParameter{Param128, Param256} {
		a := New([]byte("correctnesstest"), param)
		b := New([]byte("correctnesstest"), param)

		a.AD([]byte("hello world"), false)
		b.AD([]byte("hello world"), false)

		outA := make([]byte, 32)
		outB := make([]byte, 32)
		a.PRF(outA, false)
		b.PRF(outB, false)

		require.Equal(t, outA, outB)
		require.Equal(t, a.Marshal(), b.Marshal())
	}
}

func TestPositionInvariant(t *testing.T) {
	s := New([]byte(""), Param256)
	rate := Param256.Rate()

	require.True(t, s.pos >= 0 && s.pos < rate)
	s.AD(bytes.Repeat([]byte{0x42}, 500), false)
	require.True(t, s.pos >= 0 && s.pos < rate, "pos=%d rate=%d", s.pos, rate)

	out := make([]byte, 1000)
	s.PRF(out, false)
	require.True(t, s.pos >= 0 && s.pos < rate)
}

func TestAuthenticatedEncryptionRoundTrip(t *testing.T) {
	key := []byte("the-combination-on-my-luggage")
	nonce := make([]byte, 24)
	msg := []byte("groceries: kaymac, ajvar...")

	sender := New([]byte("correctnesstest"), Param256)
	sender.Key(key, false)
	sender.RecvCLR(nonce, false)
	ciphertext := append([]byte(nil), msg...)
	sender.SendENC(ciphertext, false)
	tag := make([]byte, 32)
	sender.SendMAC(tag, false)

	receiver := New([]byte("correctnesstest"), Param256)
	receiver.Key(key, false)
	receiver.RecvCLR(nonce, false)
	plaintext := append([]byte(nil), ciphertext...)
	receiver.RecvENC(plaintext, false)
	require.Equal(t, msg, plaintext)
	require.NoError(t, receiver.RecvMAC(tag, false))

	require.Equal(t, sender.Marshal(), receiver.Marshal())
}

func TestTamperedCiphertextDetected(t *testing.T) {
	key := []byte("the-combination-on-my-luggage")
	nonce := make([]byte, 24)
	msg := []byte("groceries: kaymac, ajvar...")

	sender := New([]byte("correctnesstest"), Param256)
	sender.Key(key, false)
	sender.RecvCLR(nonce, false)
	ciphertext := append([]byte(nil), msg...)
	sender.SendENC(ciphertext, false)
	tag := make([]byte, 32)
	sender.SendMAC(tag, false)

	ciphertext[0] ^= 0x01

	receiver := New([]byte("correctnesstest"), Param256)
	receiver.Key(key, false)
	receiver.RecvCLR(nonce, false)
	plaintext := append([]byte(nil), ciphertext...)
	receiver.RecvENC(plaintext, false)
	err := receiver.RecvMAC(tag, false)
	require.Error(t, err)
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestTamperedTagDetected(t *testing.T) {
	key := []byte("k")
	sender := New([]byte("d"), Param128)
	sender.Key(key, false)
	tag := make([]byte, 32)
	sender.SendMAC(tag, false)
	tag[0] ^= 0x01

	receiver := New([]byte("d"), Param128)
	receiver.Key(key, false)
	require.Error(t, receiver.RecvMAC(tag, false))
}

func TestStreamingEquivalence(t *testing.T) {
	s1 := New([]byte(""), Param256)
	s1.AD([]byte("hello "), false)
	s1.AD([]byte("world"), true)
	out1 := make([]byte, 16)
	s1.PRF(out1, false)

	s2 := New([]byte(""), Param256)
	s2.AD([]byte("hello world"), false)
	out2 := make([]byte, 16)
	s2.PRF(out2, false)

	require.Equal(t, out1, out2)
}

func TestRatchetForwardSecrecy(t *testing.T) {
	base := New([]byte("fs"), Param256)
	base.Key([]byte("some long term secret key material"), false)

	withSecret := base.Clone()
	withoutSecret := New([]byte("fs"), Param256) // never saw the key

	withSecret.Ratchet(withSecret.param.Capacity(), false)
	withoutSecret.Ratchet(withoutSecret.param.Capacity(), false)

	out1 := make([]byte, 16)
	out2 := make([]byte, 16)
	withSecret.PRF(out1, false)
	withoutSecret.PRF(out2, false)

	// Post-ratchet outputs are not required to match across differently
	// keyed prefixes (that would defeat the point of keying at all); the
	// property under test is that a *second* transcript resuming from a
	// Clone taken after the same ratchet reproduces the same output,
	// i.e. the ratcheted state alone determines future output.
	resumed := withSecret.Clone()
	out3 := make([]byte, 16)
	resumed.PRF(out3, false)
	require.Equal(t, out1, out3)
}

func TestDomainSeparation(t *testing.T) {
	a := New([]byte("domain-a"), Param256)
	b := New([]byte("domain-b"), Param256)

	require.NotEqual(t, a.Marshal(), b.Marshal())

	a.AD([]byte("same input"), false)
	b.AD([]byte("same input"), false)

	outA := make([]byte, 16)
	outB := make([]byte, 16)
	a.PRF(outA, false)
	b.PRF(outB, false)
	require.NotEqual(t, outA, outB)
}

func TestSerializationRoundTrip(t *testing.T) {
	s := New([]byte("roundtrip"), Param128)
	s.AD([]byte("some associated data"), false)

	data := s.Marshal()
	require.Len(t, data, serializedLen)

	restored, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, data, restored.Marshal())

	out1 := make([]byte, 8)
	out2 := make([]byte, 8)
	s.PRF(out1, false)
	restored.PRF(out2, false)
	require.Equal(t, out1, out2)
}

func TestUnmarshalRejectsBadRecords(t *testing.T) {
	s := New([]byte("x"), Param128)
	good := s.Marshal()

	_, err := Unmarshal(good[:len(good)-1])
	require.Error(t, err)

	badParam := append([]byte(nil), good...)
	badParam[len(badParam)-1] = 0xFF
	_, err = Unmarshal(badParam)
	require.Error(t, err)
	var dsErr *DeserializationError
	require.ErrorAs(t, err, &dsErr)

	badPos := append([]byte(nil), good...)
	badPos[stateLen] = byte(Param128.Rate()) // == rate, out of range
	_, err = Unmarshal(badPos)
	require.Error(t, err)
}

func TestSendMACRecvMACEmptyIsNoop(t *testing.T) {
	s := New([]byte("e"), Param128)
	before := s.Marshal()
	s.SendMAC(nil, false)
	require.Equal(t, before, s.Marshal())

	require.NoError(t, s.RecvMAC(nil, false))
}

func TestZeroWipesState(t *testing.T) {
	s := New([]byte("wipe"), Param128)
	s.Key([]byte("secret"), false)
	s.Zero()
	for _, b := range s.state {
		require.Equal(t, byte(0), b)
	}
	require.Equal(t, 0, s.pos)
	require.Equal(t, 0, s.posBegin)
	require.Equal(t, byte(0), s.curFlags)
}

func TestCloneIsIndependent(t *testing.T) {
	s := New([]byte("clone"), Param256)
	s.AD([]byte("prefix"), false)
	clone := s.Clone()

	s.AD([]byte("only on original"), false)
	require.NotEqual(t, s.Marshal(), clone.Marshal())
}
