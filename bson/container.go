package bson

import "strconv"

// pairNode is one link in the ordered, doubly-linked sequence of key/value
// pairs backing a container. The list is circular around a sentinel root
// node, following the shape sketched (but never finished) by the teacher's
// abandoned ordered-map draft.
type pairNode struct {
	key  string
	val  *Value
	prev *pairNode
	next *pairNode
}

// container is the shared storage for both Document and Array: an ordered
// sequence of (key, value) pairs. The isArray flag selects policy --
// whether keys are freely chosen (document) or must be dense decimal
// indices renumbered on every erase (array). Document and Array are thin,
// policy-specific wrappers around *container.
type container struct {
	root    pairNode // sentinel; root.next is the head, root.prev is the tail
	index   map[string]*pairNode
	length  int
	isArray bool
}

func newContainer(isArray bool) *container {
	c := &container{
		index:   make(map[string]*pairNode),
		isArray: isArray,
	}
	c.root.next = &c.root
	c.root.prev = &c.root
	return c
}

func (c *container) len() int {
	return c.length
}

func (c *container) insertBefore(at *pairNode, key string, v *Value) *pairNode {
	n := &pairNode{key: key, val: v, prev: at.prev, next: at}
	at.prev.next = n
	at.prev = n
	// A duplicate key must not move the index off the first-inserted pair:
	// keyed reads preserve first-seen semantics even though both pairs stay
	// in the sequence.
	if _, exists := c.index[key]; !exists {
		c.index[key] = n
	}
	c.length++
	return n
}

func (c *container) pushBack(key string, v *Value) *pairNode {
	return c.insertBefore(&c.root, key, v)
}

// upsert replaces the value of an existing key in place, or appends a new
// pair if the key is absent. Used by document keyed insertion.
func (c *container) upsert(key string, v *Value) {
	if n, ok := c.index[key]; ok {
		n.val = v
		return
	}
	c.pushBack(key, v)
}

// find returns the first pair matching key, or nil if absent.
func (c *container) find(key string) *pairNode {
	return c.index[key]
}

// getOrInsert returns the existing value for key, auto-vivifying an
// KindUnknown placeholder and inserting it at the end if the key is absent.
func (c *container) getOrInsert(key string) *Value {
	if n, ok := c.index[key]; ok {
		return n.val
	}
	v := &Value{kind: KindUnknown}
	c.pushBack(key, v)
	return v
}

// at returns the i-th pair in insertion order, or nil if out of range.
func (c *container) at(i int) *pairNode {
	if i < 0 || i >= c.length {
		return nil
	}
	n := c.root.next
	for j := 0; j < i; j++ {
		n = n.next
	}
	return n
}

// remove unlinks n from the sequence. If the container is array-policy,
// every subsequent pair's key is rewritten to its new decimal position so
// that keys remain densely "0".."n-1".
func (c *container) remove(n *pairNode) {
	n.prev.next = n.next
	n.next.prev = n.prev
	c.length--

	// If n was the pair the index pointed at for its key, promote the next
	// remaining duplicate (if any) so first-seen semantics survive erasure.
	if idx, ok := c.index[n.key]; ok && idx == n {
		delete(c.index, n.key)
		for cur := n.next; cur != &c.root; cur = cur.next {
			if cur.key == n.key {
				c.index[n.key] = cur
				break
			}
		}
	}

	if !c.isArray {
		return
	}
	// Renumber every element from n.next onward.
	i := 0
	if n.prev != &c.root {
		// Find the position of n.prev to resume numbering after it.
		// Array keys are always their position, so reuse the previous
		// node's (already-correct) key as a cheap starting index.
		if prevIdx, err := strconv.Atoi(n.prev.key); err == nil {
			i = prevIdx + 1
		}
	}
	for cur := n.next; cur != &c.root; cur = cur.next {
		newKey := strconv.Itoa(i)
		if newKey != cur.key {
			delete(c.index, cur.key)
			cur.key = newKey
			c.index[newKey] = cur
		}
		i++
	}
}

// clone produces a deep, independent copy: every child Value is cloned and
// relinked in the same order.
func (c *container) clone() *container {
	cc := newContainer(c.isArray)
	for n := c.root.next; n != &c.root; n = n.next {
		cc.pushBack(n.key, n.val.Clone())
	}
	return cc
}

// equal reports structural equality: same length, same keys in the same
// order, with recursively equal values.
func (c *container) equal(o *container) bool {
	if c.length != o.length {
		return false
	}
	a, b := c.root.next, o.root.next
	for a != &c.root {
		if a.key != b.key || !a.val.Equal(b.val) {
			return false
		}
		a = a.next
		b = b.next
	}
	return true
}

// Iterator walks a container's pairs in insertion order.
type Iterator struct {
	c       *container
	cur     *pairNode
	started bool
}

func newIterator(c *container) *Iterator {
	return &Iterator{c: c}
}

// Next advances the iterator and reports whether a pair is available.
func (it *Iterator) Next() bool {
	if !it.started {
		it.started = true
		it.cur = it.c.root.next
	} else if it.cur != nil {
		it.cur = it.cur.next
	}
	if it.cur == &it.c.root {
		it.cur = nil
	}
	return it.cur != nil
}

// Key returns the current pair's key.
func (it *Iterator) Key() string {
	if it.cur == nil {
		return ""
	}
	return it.cur.key
}

// Value returns the current pair's value.
func (it *Iterator) Value() *Value {
	if it.cur == nil {
		return nil
	}
	return it.cur.val
}

// Remove erases the pair the iterator currently points at and steps the
// iterator back to the preceding position, so the next call to Next yields
// the pair that followed the erased one. In an array, this renumbers every
// following key.
func (it *Iterator) Remove() {
	if it.cur == nil {
		return
	}
	doomed := it.cur
	it.cur = doomed.prev
	it.c.remove(doomed)
}

func (c *container) encodedSize() int {
	size := 4 // length prefix
	for n := c.root.next; n != &c.root; n = n.next {
		size += 1 + len(n.key) + 1 + n.val.EncodedSize()
	}
	size++ // trailing NUL
	return size
}

func (c *container) encodeInto(dst []byte, offset int) int {
	start := offset
	offset += 4
	for n := c.root.next; n != &c.root; n = n.next {
		k := n.val.kind
		if k == KindUnknown {
			// The sentinel has no wire tag; it is written as null.
			k = KindNull
		}
		offset = writeTypeAndKey(dst, offset, k, n.key)
		offset = n.val.encodeInto(dst, offset)
	}
	dst[offset] = 0
	offset++
	writeInt32(dst, start, int32(offset-start))
	return offset
}

// decodeContainer reads a length-prefixed sequence of tag | key\0 | payload
// triples terminated by a zero tag, per the BSON document framing. The
// declared length prefix is consumed but not used to bound the stream --
// the tag stream itself, terminated by 0x00, is the source of truth.
func decodeContainer(isArray bool, src []byte, offset int) (*container, int, error) {
	if _, err := readInt32(src, offset); err != nil {
		return nil, 0, err
	}
	offset += 4

	c := newContainer(isArray)
	for {
		if err := hasEnoughBytes(src, offset, 1); err != nil {
			return nil, 0, err
		}
		if src[offset] == 0 {
			offset++
			break
		}
		k, key, next, err := readTypeAndKey(src, offset)
		if err != nil {
			return nil, 0, err
		}
		offset = next
		v, next2, err := decodeValue(k, src, offset)
		if err != nil {
			return nil, 0, err
		}
		offset = next2
		c.pushBack(key, v)
	}
	return c, offset, nil
}
