// Copyright 2018 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

// Pair is one key/value entry used to build a Document via variadic
// construction.
type Pair struct {
	Key   string
	Value *Value
}

// KV is a convenience constructor for a Pair.
func KV(key string, v *Value) Pair {
	return Pair{Key: key, Value: v}
}

// Document is an ordered map of string keys to Values. Keys are arbitrary
// UTF-8 strings excluding embedded NUL; duplicate keys are not deduplicated
// on decode, but Insert always upserts the first match.
type Document struct {
	c *container
}

// NewDocument returns a document populated from pairs, in order. Duplicate
// keys among pairs are not deduplicated -- both remain in the sequence,
// matching construct-from-pair-list semantics.
func NewDocument(pairs ...Pair) *Document {
	d := &Document{c: newContainer(false)}
	for _, p := range pairs {
		d.c.pushBack(p.Key, p.Value)
	}
	return d
}

// Len reports the number of pairs.
func (d *Document) Len() int { return d.c.len() }

// Empty reports whether the document has no pairs.
func (d *Document) Empty() bool { return d.c.len() == 0 }

// Insert upserts a key/value pair: if key is already present, its value is
// replaced in place; otherwise the pair is appended.
func (d *Document) Insert(key string, v *Value) *Document {
	d.c.upsert(key, v)
	return d
}

// PushBack is equivalent to Insert, provided for parity with Array's
// append-only API.
func (d *Document) PushBack(key string, v *Value) *Document {
	return d.Insert(key, v)
}

// Find returns the first value for key and true, or nil and false if
// absent.
func (d *Document) Find(key string) (*Value, bool) {
	n := d.c.find(key)
	if n == nil {
		return nil, false
	}
	return n.val, true
}

// Get is a read-only lookup equivalent to Find's value, returning a
// MissingKeyError when the key is absent.
func (d *Document) Get(key string) (*Value, error) {
	v, ok := d.Find(key)
	if !ok {
		return nil, &MissingKeyError{Key: key}
	}
	return v, nil
}

// GetOrInsert returns the value for key, auto-vivifying an KindUnknown
// placeholder and inserting it if the key is absent. This is the mutable
// mutable-keyed-access behavior described for value[key] in the spec; use
// Find/Get for read-only lookups that must not mutate the document.
func (d *Document) GetOrInsert(key string) *Value {
	return d.c.getOrInsert(key)
}

// At returns the i-th pair in insertion order.
func (d *Document) At(i int) (key string, v *Value, ok bool) {
	n := d.c.at(i)
	if n == nil {
		return "", nil, false
	}
	return n.key, n.val, true
}

// Erase removes the pair at the iterator's current position.
func (d *Document) Erase(it *Iterator) {
	it.Remove()
}

// EraseKey removes the first pair with the given key, if present.
func (d *Document) EraseKey(key string) bool {
	n := d.c.find(key)
	if n == nil {
		return false
	}
	d.c.remove(n)
	return true
}

// Iter returns an iterator over the document's pairs in insertion order.
func (d *Document) Iter() *Iterator {
	return newIterator(d.c)
}

// Clone returns a deep, independent copy of the document.
func (d *Document) Clone() *Document {
	return &Document{c: d.c.clone()}
}

// Equal reports structural equality: same pairs, in the same order.
func (d *Document) Equal(o *Document) bool {
	return d.c.equal(o.c)
}

// EncodedSize returns the exact number of bytes Encode will write.
func (d *Document) EncodedSize() int { return d.c.encodedSize() }

// Encode appends the document's BSON binary encoding to dst.
func (d *Document) Encode(dst []byte) []byte {
	size := d.c.encodedSize()
	offset := len(dst)
	dst = append(dst, make([]byte, size)...)
	d.c.encodeInto(dst, offset)
	return dst
}

// Map renders the document as a plain Go map of decoded leaf values. Nested
// documents and arrays are rendered recursively. This is a lossy
// convenience view for diagnostics and is not used by the codec itself.
func (d *Document) Map() map[string]interface{} {
	m := make(map[string]interface{}, d.Len())
	it := d.Iter()
	for it.Next() {
		m[it.Key()] = valueToInterface(it.Value())
	}
	return m
}

func valueToInterface(v *Value) interface{} {
	switch v.Kind() {
	case KindNull, KindUnknown:
		return nil
	case KindInt32:
		return v.Int32()
	case KindInt64:
		return v.Int64()
	case KindDouble:
		return v.Double()
	case KindBoolean:
		return v.Bool()
	case KindString:
		return v.StringValue()
	case KindBinary:
		return v.BinaryValue()
	case KindObjectID:
		return v.ObjectIDValue()
	case KindDateTime:
		return v.DateTimeMillis()
	case KindTimestamp:
		return v.TimestampValue()
	case KindRegex:
		return v.RegexValue()
	case KindMinKey:
		return "$minKey"
	case KindMaxKey:
		return "$maxKey"
	case KindDocument:
		return v.AsDocument().Map()
	case KindArray:
		arr := v.AsArray()
		out := make([]interface{}, arr.Len())
		for i := 0; i < arr.Len(); i++ {
			elem, _ := arr.At(i)
			out[i] = valueToInterface(elem)
		}
		return out
	}
	return nil
}
