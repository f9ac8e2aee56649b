// Package codec provides the value (de)serialization layer of remcache.
// One codec instance covers both scalar entries and hash fields, so the
// stored representation is consistent across the whole facade.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
