package rendezvous

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"hash"
)

// Hashable is implemented by key and node types that encode themselves
// into a hash accumulator. Pointer-typed nodes should implement it,
// otherwise they are hashed by their printed form.
type Hashable interface {
	WriteHash(h hash.Hash64)
}

// WriteString writes s length-prefixed, so adjacent values never run together.
func WriteString(h hash.Hash64, s string) {
	writeLen(h, len(s))
	h.Write([]byte(s))
}

// WriteBytes writes b length-prefixed.
func WriteBytes(h hash.Hash64, b []byte) {
	writeLen(h, len(b))
	h.Write(b)
}

// WriteUint64 writes v as 8 little-endian bytes.
func WriteUint64(h hash.Hash64, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}

func writeLen(h hash.Hash64, n int) {
	var buf [binary.MaxVarintLen64]byte
	h.Write(buf[:binary.PutUvarint(buf[:], uint64(n))])
}

// writeValue feeds v into h.
func writeValue(h hash.Hash64, v any) {
	switch x := v.(type) {
	case Hashable:
		x.WriteHash(h)
	case string:
		WriteString(h, x)
	case []byte:
		WriteBytes(h, x)
	case int:
		WriteUint64(h, uint64(x))
	case int8:
		WriteUint64(h, uint64(x))
	case int16:
		WriteUint64(h, uint64(x))
	case int32:
		WriteUint64(h, uint64(x))
	case int64:
		WriteUint64(h, uint64(x))
	case uint:
		WriteUint64(h, uint64(x))
	case uint8:
		WriteUint64(h, uint64(x))
	case uint16:
		WriteUint64(h, uint64(x))
	case uint32:
		WriteUint64(h, uint64(x))
	case uint64:
		WriteUint64(h, x)
	case uintptr:
		WriteUint64(h, uint64(x))
	case bool:
		if x {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case fmt.Stringer:
		WriteString(h, x.String())
	case encoding.BinaryMarshaler:
		b, err := x.MarshalBinary()
		if err != nil {
			WriteString(h, fmt.Sprintf("%#v", v))
			return
		}
		WriteBytes(h, b)
	default:
		WriteString(h, fmt.Sprintf("%#v", v))
	}
}
