// Package vault wraps a *strobe.Strobe transcript behind a mutex so a
// single protocol session can be driven from more than one goroutine, e.g.
// a network read loop absorbing RecvCLR frames while a timer goroutine logs
// liveness.
package vault

import (
	"sync"

	"github.com/drand/strobe/log"
	"github.com/drand/strobe/strobe"
	"github.com/drand/strobe/strobe/metrics"
)

// Vault serializes access to a *strobe.Strobe. A *strobe.Strobe itself is
// not safe for concurrent use -- Vault is the thread-safe wrapper the rest
// of this module should reach for whenever a transcript is shared.
type Vault struct {
	log          log.Logger
	mu           sync.RWMutex
	s            *strobe.Strobe
	permutations uint64
}

// New wraps an already-initialized transcript.
func New(l log.Logger, s *strobe.Strobe) *Vault {
	if l == nil {
		l = log.DefaultLogger()
	}
	return &Vault{log: l, s: s, permutations: s.Permutations()}
}

// Param reports the transcript's security parameter.
func (v *Vault) Param() strobe.SecurityParameter {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.s.Param()
}

// observe records an operation call, the bytes it touched, and any
// permutations it triggered. Called with v.mu already held.
func (v *Vault) observe(op string, n int) {
	param := v.s.Param().String()
	metrics.OperationsTotal.WithLabelValues(op, param).Inc()
	metrics.BytesProcessed.WithLabelValues(op, param).Add(float64(n))

	permutations := v.s.Permutations()
	if delta := permutations - v.permutations; delta > 0 {
		metrics.PermutationsTotal.WithLabelValues(param).Add(float64(delta))
	}
	v.permutations = permutations
}

// AD absorbs associated data.
func (v *Vault) AD(buf []byte, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.AD(buf, more)
	v.observe("ad", len(buf))
}

// MetaAD absorbs metadata associated data.
func (v *Vault) MetaAD(buf []byte, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.MetaAD(buf, more)
}

// Key absorbs keying material.
func (v *Vault) Key(buf []byte, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.Key(buf, more)
	v.observe("key", len(buf))
}

// MetaKey absorbs keying material tagged as metadata.
func (v *Vault) MetaKey(buf []byte, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.MetaKey(buf, more)
}

// PRF squeezes pseudorandom output into out.
func (v *Vault) PRF(out []byte, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.PRF(out, more)
	v.observe("prf", len(out))
}

// MetaPRF squeezes pseudorandom output tagged as metadata.
func (v *Vault) MetaPRF(out []byte, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.MetaPRF(out, more)
}

// SendCLR absorbs outgoing cleartext.
func (v *Vault) SendCLR(buf []byte, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.SendCLR(buf, more)
	v.observe("send_clr", len(buf))
}

// MetaSendCLR absorbs outgoing cleartext tagged as metadata.
func (v *Vault) MetaSendCLR(buf []byte, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.MetaSendCLR(buf, more)
}

// RecvCLR absorbs incoming cleartext.
func (v *Vault) RecvCLR(buf []byte, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.RecvCLR(buf, more)
	v.observe("recv_clr", len(buf))
}

// MetaRecvCLR absorbs incoming cleartext tagged as metadata.
func (v *Vault) MetaRecvCLR(buf []byte, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.MetaRecvCLR(buf, more)
}

// SendENC encrypts buf in place.
func (v *Vault) SendENC(buf []byte, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.SendENC(buf, more)
	v.observe("send_enc", len(buf))
}

// MetaSendENC encrypts buf in place, tagged as metadata.
func (v *Vault) MetaSendENC(buf []byte, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.MetaSendENC(buf, more)
}

// RecvENC decrypts buf in place.
func (v *Vault) RecvENC(buf []byte, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.RecvENC(buf, more)
	v.observe("recv_enc", len(buf))
}

// MetaRecvENC decrypts buf in place, tagged as metadata.
func (v *Vault) MetaRecvENC(buf []byte, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.MetaRecvENC(buf, more)
}

// SendMAC produces an authentication tag in out.
func (v *Vault) SendMAC(out []byte, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.SendMAC(out, more)
	v.observe("send_mac", len(out))
}

// MetaSendMAC produces an authentication tag in out, tagged as metadata.
func (v *Vault) MetaSendMAC(out []byte, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.MetaSendMAC(out, more)
}

// RecvMAC verifies tag. On mismatch it logs and returns the error; the
// caller must treat the vault as poisoned and discard it, since the sponge
// has already absorbed the tampered input.
func (v *Vault) RecvMAC(tag []byte, more bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.s.RecvMAC(tag, more); err != nil {
		metrics.AuthFailuresTotal.WithLabelValues(v.s.Param().String()).Inc()
		v.log.Warnw("authentication failed", "err", err)
		return err
	}
	v.observe("recv_mac", len(tag))
	return nil
}

// MetaRecvMAC verifies a metadata-tagged authentication tag.
func (v *Vault) MetaRecvMAC(tag []byte, more bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.s.MetaRecvMAC(tag, more); err != nil {
		metrics.AuthFailuresTotal.WithLabelValues(v.s.Param().String()).Inc()
		v.log.Warnw("authentication failed", "err", err)
		return err
	}
	return nil
}

// Ratchet destroys n bytes of state for forward secrecy.
func (v *Vault) Ratchet(n int, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.Ratchet(n, more)
	v.observe("ratchet", n)
}

// MetaRatchet destroys n bytes of state, tagged as metadata.
func (v *Vault) MetaRatchet(n int, more bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.MetaRatchet(n, more)
}

// Clone returns a new Vault around an independent copy of the underlying
// transcript.
func (v *Vault) Clone() *Vault {
	v.mu.RLock()
	defer v.mu.RUnlock()
	c := v.s.Clone()
	return &Vault{log: v.log, s: c, permutations: c.Permutations()}
}

// Marshal serializes the underlying transcript.
func (v *Vault) Marshal() []byte {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.s.Marshal()
}

// Zero wipes the underlying transcript's secret state.
func (v *Vault) Zero() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s.Zero()
}
