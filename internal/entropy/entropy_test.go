package entropy

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drand/strobe/internal/testlogger"
)

func TestNonceDefaultLength(t *testing.T) {
	nonce, err := Nonce(nil, 32)
	require.NoError(t, err)
	require.Len(t, nonce, 32)
}

func TestNonceDefaultNoDuplicates(t *testing.T) {
	a, err := Nonce(nil, 32)
	require.NoError(t, err)
	b, err := Nonce(nil, 32)
	require.NoError(t, err)
	require.False(t, bytes.Equal(a, b))
}

func TestNonceReadsSourceWhenLongEnough(t *testing.T) {
	source := bytes.NewReader([]byte("exactly sixteen!"))
	nonce, err := Nonce(source, 16)
	require.NoError(t, err)
	require.Equal(t, []byte("exactly sixteen!"), nonce)
}

func TestNonceFallsBackOnShortSource(t *testing.T) {
	short := bytes.NewReader([]byte{0x01, 0x02})
	nonce, err := Nonce(short, 32)
	require.NoError(t, err)
	require.Len(t, nonce, 32)
}

func TestOpenSourceReadsFileContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entropy-source")
	require.NoError(t, os.WriteFile(path, []byte("thirty-two-bytes-of-fixed-noise"), 0o600))

	r, err := OpenSource(path, testlogger.New(t))
	require.NoError(t, err)
	defer r.Close()

	nonce, err := Nonce(r, 16)
	require.NoError(t, err)
	require.Equal(t, []byte("thirty-two-bytes")[:16], nonce)
}

func TestOpenSourceRejectsDirectory(t *testing.T) {
	_, err := OpenSource(t.TempDir(), testlogger.New(t))
	require.Error(t, err)
	var sourceErr *SourceError
	require.ErrorAs(t, err, &sourceErr)
}

func TestOpenSourceRejectsMissingPath(t *testing.T) {
	_, err := OpenSource(filepath.Join(t.TempDir(), "missing"), testlogger.New(t))
	require.Error(t, err)
	var sourceErr *SourceError
	require.ErrorAs(t, err, &sourceErr)
}
