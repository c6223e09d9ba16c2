package rewrite

import (
	"unicode/utf8"

	"golang.org/x/text/transform"

	"git.home.luguber.info/inful/linkfix/internal/config"
	"git.home.luguber.info/inful/linkfix/internal/foundation/errors"
)

// decoder turns raw file bytes into the text the rule is applied to.
type decoder func(raw []byte) ([]byte, error)

func decoderFor(mode config.DecodingMode) decoder {
	if mode == config.DecodingLossy {
		return decodeLossy
	}
	return decodePreserve
}

func decodePreserve(raw []byte) ([]byte, error) { return raw, nil }

// decodeLossy discards ill-formed UTF-8. A U+FFFD already present in the
// input is valid text and is kept.
func decodeLossy(raw []byte) ([]byte, error) {
	return decodeWith(dropIllFormed{}, raw)
}

func decodeWith(t transform.Transformer, raw []byte) ([]byte, error) {
	out, _, err := transform.Bytes(t, raw)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryDecode, "cannot decode file content").
			Warning().
			Build()
	}
	return out, nil
}

// dropIllFormed is a transform.Transformer that copies valid UTF-8 and skips
// every byte that does not start a well-formed sequence.
type dropIllFormed struct{ transform.NopResetter }

func (dropIllFormed) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if c := src[nSrc]; c < utf8.RuneSelf {
			if nDst == len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}

		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			nSrc++
			continue
		}
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
	}
	return nDst, nSrc, nil
}
