package rewrite

import (
	stderrors "errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/transform"

	"git.home.luguber.info/inful/linkfix/internal/config"
	"git.home.luguber.info/inful/linkfix/internal/foundation/errors"
)

func TestDecodePreserveKeepsBytes(t *testing.T) {
	raw := []byte{0xff, 0xfe, 'a', 0x80}
	out, err := decoderFor(config.DecodingPreserve)(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestDecodeLossyDropsIllFormed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "stray bytes", raw: "ok \xff\xfe done é", want: "ok  done é"},
		{name: "truncated sequence at end", raw: "tail \xe2\x82", want: "tail "},
		{name: "surrogate half", raw: "a\xed\xa0\x80b", want: "ab"},
		{name: "replacement character kept", raw: "keep � here\xff", want: "keep � here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := decoderFor(config.DecodingLossy)([]byte(tt.raw))
			require.NoError(t, err)
			assert.True(t, utf8.Valid(out))
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestDecodeLossyValidInputUnchanged(t *testing.T) {
	raw := []byte("plain ascii and ünïcödé")
	out, err := decodeLossy(raw)
	require.NoError(t, err)
	assert.Equal(t, string(raw), string(out))
}

func TestDecodeLossyLargeInputCrossesBufferBoundaries(t *testing.T) {
	chunk := "é\xff€\xe2\x82"
	raw := []byte(strings.Repeat(chunk, 4096))
	out, err := decodeLossy(raw)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é€", 4096), string(out))
}

type failingTransformer struct{ transform.NopResetter }

func (failingTransformer) Transform(_, _ []byte, _ bool) (int, int, error) {
	return 0, 0, stderrors.New("broken input")
}

func TestDecodeWithFailureIsClassified(t *testing.T) {
	_, err := decodeWith(failingTransformer{}, []byte("x"))
	require.Error(t, err)

	assert.True(t, errors.HasCategory(err, errors.CategoryDecode))
	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, errors.SeverityWarning, classified.Severity())
	assert.False(t, classified.IsFatal())
}
