package typeenv

import "github.com/nguyentito/mpri13/names"

// benbjohnson/immutable's Map only ships default hashers for the bare
// int, string, and []byte types (see its Map.set); every key type this
// package's maps actually use is a named string type from names.* (or a
// struct of them), so each needs its own Hasher rather than falling
// through to NewMap(nil)'s panic-on-first-Set default.

func hashString(s string) uint32 {
	var hash uint32
	for i := 0; i < len(s); i++ {
		hash = 31*hash + uint32(s[i])
	}
	return hash
}

type valueNameHasher struct{}

func (valueNameHasher) Hash(key interface{}) uint32 { return hashString(string(key.(names.ValueName))) }
func (valueNameHasher) Equal(a, b interface{}) bool {
	return a.(names.ValueName) == b.(names.ValueName)
}

type typeConNameHasher struct{}

func (typeConNameHasher) Hash(key interface{}) uint32 {
	return hashString(string(key.(names.TypeConName)))
}
func (typeConNameHasher) Equal(a, b interface{}) bool {
	return a.(names.TypeConName) == b.(names.TypeConName)
}

type labelNameHasher struct{}

func (labelNameHasher) Hash(key interface{}) uint32 { return hashString(string(key.(names.LabelName))) }
func (labelNameHasher) Equal(a, b interface{}) bool {
	return a.(names.LabelName) == b.(names.LabelName)
}

type instanceKeyHasher struct{}

func (instanceKeyHasher) Hash(key interface{}) uint32 {
	k := key.(instanceKey)
	return hashString(string(k.Class))*31 + hashString(string(k.Head))
}
func (instanceKeyHasher) Equal(a, b interface{}) bool {
	return a.(instanceKey) == b.(instanceKey)
}
