package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID   string `json:"id" cbor:"id"`
	Age  *int   `json:"age,omitempty" cbor:"age,omitempty"`
	Tags []string
}

func TestByName(t *testing.T) {
	c, err := ByName("")
	require.NoError(t, err)
	assert.Equal(t, FormatCBOR, c.Name())

	c, err = ByName("json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", c.ContentType())

	_, err = ByName("xml")
	assert.EqualError(t, err, `unsupported format "xml"`)
}

func TestByContentType(t *testing.T) {
	assert.Equal(t, FormatCBOR, ByContentType("application/cbor").Name())
	assert.Equal(t, FormatJSON, ByContentType("application/json").Name())
	assert.Nil(t, ByContentType("text/plain"))
}

func TestRoundTrip(t *testing.T) {
	age := 38
	in := sample{ID: "1", Age: &age, Tags: []string{"a"}}

	for _, c := range []Codec{NewCBOR(), NewJSON()} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out sample
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)

			var buf bytes.Buffer
			require.NoError(t, c.NewEncoder(&buf).Encode(in))
			var streamed sample
			require.NoError(t, c.NewDecoder(&buf).Decode(&streamed))
			assert.Equal(t, in, streamed)
		})
	}
}

func TestCBORDecodesStringKeyedMaps(t *testing.T) {
	c := NewCBOR()
	data, err := c.Marshal(map[string]any{"name": "Jesse"})
	require.NoError(t, err)

	var out any
	require.NoError(t, c.Unmarshal(data, &out))
	m, ok := out.(map[string]any)
	require.True(t, ok, "got %T", out)
	assert.Equal(t, "Jesse", m["name"])
}

func TestConvert(t *testing.T) {
	for _, c := range []Codec{NewCBOR(), NewJSON()} {
		t.Run(c.Name(), func(t *testing.T) {
			var out sample
			require.NoError(t, Convert(c, map[string]any{"id": "7", "age": 3}, &out))
			assert.Equal(t, "7", out.ID)
			require.NotNil(t, out.Age)
			assert.Equal(t, 3, *out.Age)
		})
	}
}
