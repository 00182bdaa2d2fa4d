// Package codec abstracts the wire encodings spoken by the RPC transport.
//
// CBOR is the default encoding, JSON is offered for clients and tools that cannot speak CBOR.
package codec

import (
	"fmt"
	"io"
)

type Encoder interface {
	Encode(v any) error
}

type Decoder interface {
	Decode(v any) error
}

type Marshaler interface {
	Marshal(v any) ([]byte, error)
	NewEncoder(w io.Writer) Encoder
}

type Unmarshaler interface {
	Unmarshal(data []byte, dst any) error
	NewDecoder(r io.Reader) Decoder
}

// Codec is a symmetric encoding with a name and an HTTP content type.
type Codec interface {
	Marshaler
	Unmarshaler
	Name() string
	ContentType() string
}

const (
	FormatCBOR = "cbor"
	FormatJSON = "json"
)

// ByName returns the codec registered under name. An empty name selects CBOR.
func ByName(name string) (Codec, error) {
	switch name {
	case "", FormatCBOR:
		return NewCBOR(), nil
	case FormatJSON:
		return NewJSON(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", name)
	}
}

// ByContentType returns the codec whose content type is ct, or nil.
func ByContentType(ct string) Codec {
	for _, c := range []Codec{NewCBOR(), NewJSON()} {
		if c.ContentType() == ct {
			return c
		}
	}
	return nil
}

// Convert re-encodes src and decodes it into dst using c.
// It turns loosely typed values, such as decoded RPC params, into concrete types.
func Convert(c Codec, src, dst any) error {
	data, err := c.Marshal(src)
	if err != nil {
		return err
	}
	return c.Unmarshal(data, dst)
}
