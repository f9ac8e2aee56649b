package codec

import "encoding/json"

// JSON serializes values with encoding/json. This is the default choice:
// payloads stay text-safe and inspectable with plain store tooling.
// The zero value is ready to use.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
