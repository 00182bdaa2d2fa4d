package codec

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// CBOR encodes values as RFC 8949 CBOR. Decoded maps use string keys.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec = (*CBOR)(nil)

func NewCBOR() *CBOR {
	enc, err := cbor.EncOptions{
		Time: cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(err)
	}

	dec, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}

	return &CBOR{enc: enc, dec: dec}
}

func (c *CBOR) Marshal(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c *CBOR) NewEncoder(w io.Writer) Encoder {
	return c.enc.NewEncoder(w)
}

func (c *CBOR) Unmarshal(data []byte, dst any) error {
	return c.dec.Unmarshal(data, dst)
}

func (c *CBOR) NewDecoder(r io.Reader) Decoder {
	return c.dec.NewDecoder(r)
}

func (c *CBOR) Name() string {
	return FormatCBOR
}

func (c *CBOR) ContentType() string {
	return "application/cbor"
}
