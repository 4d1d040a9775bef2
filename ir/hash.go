package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

var seed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the node, consistent with Equal.
// Object field hashes are combined order-independently so that key
// order does not affect the result. It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteByte(byte(n.Type))
	switch n.Type {
	case NullType:
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case NumberType:
		var b [8]byte
		if n.Int64 != nil {
			h.WriteByte('i')
			binary.LittleEndian.PutUint64(b[:], uint64(*n.Int64))
			h.Write(b[:])
		} else if n.Float64 != nil {
			h.WriteByte('f')
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(*n.Float64))
			h.Write(b[:])
		}
	case StringType:
		h.WriteString(n.String)
	case ArrayType:
		var b [8]byte
		for _, v := range n.Values {
			binary.LittleEndian.PutUint64(b[:], v.Hash())
			h.Write(b[:])
		}
	case ObjectType:
		var sum uint64
		for i, field := range n.Fields {
			var kv maphash.Hash
			kv.SetSeed(seed)
			var b [8]byte
			binary.LittleEndian.PutUint64(b[:], field.Hash())
			kv.Write(b[:])
			binary.LittleEndian.PutUint64(b[:], n.Values[i].Hash())
			kv.Write(b[:])
			sum += kv.Sum64()
		}
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], sum)
		h.Write(b[:])
	}
	return h.Sum64()
}
