package codec

import (
	"io"

	"github.com/goccy/go-json"
)

// JSON encodes values as JSON.
type JSON struct{}

var _ Codec = JSON{}

func NewJSON() JSON {
	return JSON{}
}

func (JSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSON) NewEncoder(w io.Writer) Encoder {
	return json.NewEncoder(w)
}

func (JSON) Unmarshal(data []byte, dst any) error {
	return json.Unmarshal(data, dst)
}

func (JSON) NewDecoder(r io.Reader) Decoder {
	return json.NewDecoder(r)
}

func (JSON) Name() string {
	return FormatJSON
}

func (JSON) ContentType() string {
	return "application/json"
}
