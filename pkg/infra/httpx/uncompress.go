package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// MaxDecodedBodySize caps a decoded TMS response. Evaluation replies are a
// few hundred bytes, anything near this limit is a broken or hostile peer.
const MaxDecodedBodySize = 8 << 20

var ErrDecodedBodyTooLarge = errors.New("decoded response body exceeds limit")

type decoder func(io.Reader) (io.ReadCloser, error)

var decoders = map[string]decoder{
	"br": func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(r)), nil
	},
	"gzip": func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	},
	"zstd": func(r io.Reader) (io.ReadCloser, error) {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	},
}

// DecodeChain undoes a Content-Encoding header value, last encoding first.
// The bool reports whether the body was changed.
func DecodeChain(ce string, body []byte) ([]byte, bool, error) {
	if ce == "" {
		return body, false, nil
	}
	encodings := strings.Split(ce, ",")
	changed := false
	for i := len(encodings) - 1; i >= 0; i-- {
		name := strings.TrimSpace(strings.ToLower(encodings[i]))
		var (
			out []byte
			err error
		)
		switch name {
		case "identity", "":
			continue
		case "deflate":
			out, err = inflate(body)
		default:
			dec, ok := decoders[name]
			if !ok {
				return nil, false, fmt.Errorf("unsupported content-encoding: %q", encodings[i])
			}
			out, err = decodeWith(dec, body)
		}
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", name, err)
		}
		body = out
		changed = true
	}
	return body, changed, nil
}

// inflate accepts both zlib-wrapped and raw deflate streams.
func inflate(body []byte) ([]byte, error) {
	out, err := decodeWith(func(r io.Reader) (io.ReadCloser, error) { return zlib.NewReader(r) }, body)
	if err == nil || errors.Is(err, ErrDecodedBodyTooLarge) {
		return out, err
	}
	return decodeWith(func(r io.Reader) (io.ReadCloser, error) { return flate.NewReader(r), nil }, body)
}

func decodeWith(dec decoder, body []byte) ([]byte, error) {
	rc, err := dec(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	out, err := io.ReadAll(io.LimitReader(rc, MaxDecodedBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(out) > MaxDecodedBodySize {
		return nil, ErrDecodedBodyTooLarge
	}
	return out, nil
}
