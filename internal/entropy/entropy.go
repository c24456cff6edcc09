// Package entropy supplies the byte stream strobe-cli's seal command
// binds into a transcript as a nonce: either operating-system randomness,
// or bytes read once from a file, depending on what the invocation asked
// for.
package entropy

import (
	"crypto/rand"
	"errors"
	"io"
	"os"

	"github.com/drand/strobe/log"
)

// SourceError reports why a file-based entropy source could not be
// opened or read, keeping the offending path attached the way
// strobe.DeserializationError keeps its Reason.
type SourceError struct {
	Path   string
	Reason error
}

func (e *SourceError) Error() string {
	return "entropy: " + e.Path + ": " + e.Reason.Error()
}

func (e *SourceError) Unwrap() error {
	return e.Reason
}

var errSourceIsDirectory = errors.New("source path is a directory, not a file")

// Nonce returns n bytes read from source. A nil source, or one that
// cannot supply n full bytes, falls back to crypto/rand -- a file
// supplied as --entropy-source is a convenience for reproducible tests,
// not a substitute for a real nonce when it runs dry.
func Nonce(source io.Reader, n uint32) ([]byte, error) {
	out := make([]byte, n)
	if source != nil {
		if read, err := io.ReadFull(source, out); err == nil && uint32(read) == n {
			return out, nil
		}
	}
	if _, err := rand.Read(out); err != nil {
		return nil, err
	}
	return out, nil
}

// OpenSource opens path once and returns it as the entropy stream Nonce
// should draw from, logging the choice so a seal transcript's randomness
// provenance shows up alongside its other debug output. The caller is
// responsible for closing it.
func OpenSource(path string, logger log.Logger) (io.ReadCloser, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &SourceError{Path: path, Reason: err}
	}
	if info.IsDir() {
		return nil, &SourceError{Path: path, Reason: errSourceIsDirectory}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Path: path, Reason: err}
	}
	logger.Infow("using file for nonce entropy", "source", path)
	return f, nil
}
