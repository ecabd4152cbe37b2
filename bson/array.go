// Copyright 2018 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import "strconv"

// Array is an ordered sequence of Values whose keys are the decimal string
// forms of their zero-based positions. Internally it is a container with
// array policy, sharing its representation with Document but renumbering
// keys on every erase so they remain densely "0", "1", ..., "n-1".
type Array struct {
	c *container
}

// NewArray returns an array populated from values, in order.
func NewArray(values ...*Value) *Array {
	a := &Array{c: newContainer(true)}
	a.PushBack(values...)
	return a
}

// Len reports the number of elements.
func (a *Array) Len() int { return a.c.len() }

// Empty reports whether the array has no elements.
func (a *Array) Empty() bool { return a.c.len() == 0 }

// PushBack appends one or more values, each keyed with the decimal form of
// its new index.
func (a *Array) PushBack(values ...*Value) *Array {
	for _, v := range values {
		a.c.pushBack(strconv.Itoa(a.c.len()), v)
	}
	return a
}

// At returns the element at index i.
func (a *Array) At(i int) (*Value, bool) {
	n := a.c.at(i)
	if n == nil {
		return nil, false
	}
	return n.val, true
}

// Erase removes the pair at the iterator's current position and renumbers
// every following element's key.
func (a *Array) Erase(it *Iterator) {
	it.Remove()
}

// EraseAt removes the element at index i, renumbering every following
// element's key to close the gap.
func (a *Array) EraseAt(i int) bool {
	n := a.c.at(i)
	if n == nil {
		return false
	}
	a.c.remove(n)
	return true
}

// Iter returns an iterator over the array's elements in order.
func (a *Array) Iter() *Iterator {
	return newIterator(a.c)
}

// Clone returns a deep, independent copy of the array.
func (a *Array) Clone() *Array {
	return &Array{c: a.c.clone()}
}

// Equal reports structural equality: same elements, in the same order.
func (a *Array) Equal(o *Array) bool {
	return a.c.equal(o.c)
}

// EncodedSize returns the exact number of bytes Encode will write.
func (a *Array) EncodedSize() int { return a.c.encodedSize() }

// Encode appends the array's BSON binary encoding to dst.
func (a *Array) Encode(dst []byte) []byte {
	size := a.c.encodedSize()
	offset := len(dst)
	dst = append(dst, make([]byte, size)...)
	a.c.encodeInto(dst, offset)
	return dst
}

// DecodeArray decodes one top-level BSON array-framed buffer (the same
// length+tags+NUL framing as a document, but with array key policy).
func DecodeArray(src []byte) (*Array, error) {
	c, _, err := decodeContainer(true, src, 0)
	if err != nil {
		return nil, err
	}
	return &Array{c: c}, nil
}
