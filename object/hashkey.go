package object

import "hash/fnv"

// HashType tags which value kind a HashKey was derived from. Two keys
// with equal numeric payloads but different HashType are NOT equal: an
// Integer(1) and a Boolean(true) must not collide just because both
// happen to hash to payload 1.
type HashType byte

const (
	HashInteger HashType = iota
	HashBoolean
	HashString
)

// HashKey is the value Hash uses internally to index its pairs.
type HashKey struct {
	Type    HashType
	Payload uint64
}

// Hashable is implemented by every Object that may be used as a hash
// literal key: Integer, Boolean and String.
type Hashable interface {
	HashKey() HashKey
}

func (i *Integer) HashKey() HashKey {
	return HashKey{Type: HashInteger, Payload: uint64(i.Value)}
}

func (b *Boolean) HashKey() HashKey {
	if b.Value {
		return HashKey{Type: HashBoolean, Payload: 1}
	}
	return HashKey{Type: HashBoolean, Payload: 0}
}

// HashKey hashes the string's bytes with FNV-1a so equal strings always
// map to the same key regardless of the String value's identity.
func (s *String) HashKey() HashKey {
	h := fnv.New64a()
	h.Write([]byte(s.Value))
	return HashKey{Type: HashString, Payload: h.Sum64()}
}
