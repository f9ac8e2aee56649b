package codec

import "google.golang.org/protobuf/proto"

// Protobuf serializes concrete proto.Message values. A constructor is needed
// because Decode must allocate a fresh message to unmarshal into.
type Protobuf[T proto.Message] struct {
	new func() T // e.g. func() *pb.User { return &pb.User{} }
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}
func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
