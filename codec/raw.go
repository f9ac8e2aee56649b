package codec

// Bytes is an identity codec for []byte values. Encode/Decode return the
// input unchanged. Useful when callers already hold serialized bytes.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// String is a trivial codec for Go string values. It reproduces the
// "raw text per field" storage style: values land in the store exactly as
// given, with no structural encoding applied.
type String struct{}

func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }
