package bson

// EncodedSize returns the exact number of bytes Encode will write for v.
func (v *Value) EncodedSize() int {
	switch v.kind {
	case KindNull, KindMinKey, KindMaxKey, KindUnknown:
		return 0
	case KindBoolean:
		return 1
	case KindInt32:
		return 4
	case KindDouble, KindInt64, KindDateTime, KindTimestamp:
		return 8
	case KindObjectID:
		return 12
	case KindString:
		// int32 length + payload + trailing NUL
		return 4 + len(v.str) + 1
	case KindBinary:
		// int32 length + subtype byte + payload
		return 4 + 1 + len(v.bin.Payload)
	case KindRegex:
		return len(v.rx.Pattern) + 1 + len(v.rx.Options) + 1
	case KindDocument, KindArray:
		return v.cont.encodedSize()
	}
	return 0
}

// Encode appends v's binary payload (not including a type tag or key) to
// dst and returns the result, matching the semantics of Go's append.
func (v *Value) Encode(dst []byte) []byte {
	size := v.EncodedSize()
	offset := len(dst)
	dst = append(dst, make([]byte, size)...)
	v.encodeInto(dst, offset)
	return dst
}

// encodeInto writes v's payload starting at offset and returns the offset
// immediately following it. The caller must have already reserved exactly
// EncodedSize() bytes at offset.
func (v *Value) encodeInto(dst []byte, offset int) int {
	switch v.kind {
	case KindNull, KindMinKey, KindMaxKey, KindUnknown:
		return offset
	case KindBoolean:
		if v.boolean {
			dst[offset] = 1
		} else {
			dst[offset] = 0
		}
		return offset + 1
	case KindInt32:
		return writeInt32(dst, offset, v.i32)
	case KindInt64:
		return writeInt64(dst, offset, v.i64)
	case KindDouble:
		return writeFloat64(dst, offset, v.f64)
	case KindDateTime:
		return writeInt64(dst, offset, int64(v.dt))
	case KindTimestamp:
		offset = writeUint32(dst, offset, v.ts.Increment)
		return writeUint32(dst, offset, v.ts.Seconds)
	case KindObjectID:
		copy(dst[offset:offset+12], v.oid[:])
		return offset + 12
	case KindString:
		return writeString(dst, offset, v.str)
	case KindBinary:
		offset = writeInt32(dst, offset, int32(len(v.bin.Payload)))
		dst[offset] = v.bin.Subtype
		offset++
		copy(dst[offset:], v.bin.Payload)
		return offset + len(v.bin.Payload)
	case KindRegex:
		offset = writeCString(dst, offset, v.rx.Pattern)
		return writeCString(dst, offset, v.rx.Options)
	case KindDocument, KindArray:
		return v.cont.encodeInto(dst, offset)
	}
	return offset
}

// decodeValue reads one value's payload (not a tag byte) of the given kind
// from src starting at offset, returning the decoded value and the offset
// immediately following it.
func decodeValue(k Kind, src []byte, offset int) (*Value, int, error) {
	switch k {
	case KindNull:
		return &Value{kind: KindNull}, offset, nil
	case KindMinKey:
		return &Value{kind: KindMinKey}, offset, nil
	case KindMaxKey:
		return &Value{kind: KindMaxKey}, offset, nil
	case KindBoolean:
		if err := hasEnoughBytes(src, offset, 1); err != nil {
			return nil, 0, err
		}
		return &Value{kind: KindBoolean, boolean: src[offset] == 0x01}, offset + 1, nil
	case KindInt32:
		n, err := readInt32(src, offset)
		if err != nil {
			return nil, 0, err
		}
		return &Value{kind: KindInt32, i32: n}, offset + 4, nil
	case KindInt64:
		n, err := readInt64(src, offset)
		if err != nil {
			return nil, 0, err
		}
		return &Value{kind: KindInt64, i64: n}, offset + 8, nil
	case KindDouble:
		f, err := readFloat64(src, offset)
		if err != nil {
			return nil, 0, err
		}
		return &Value{kind: KindDouble, f64: f}, offset + 8, nil
	case KindDateTime:
		n, err := readInt64(src, offset)
		if err != nil {
			return nil, 0, err
		}
		return &Value{kind: KindDateTime, dt: DateTime(n)}, offset + 8, nil
	case KindTimestamp:
		inc, err := readUint32(src, offset)
		if err != nil {
			return nil, 0, err
		}
		sec, err := readUint32(src, offset+4)
		if err != nil {
			return nil, 0, err
		}
		return &Value{kind: KindTimestamp, ts: Timestamp{Seconds: sec, Increment: inc}}, offset + 8, nil
	case KindObjectID:
		if err := hasEnoughBytes(src, offset, 12); err != nil {
			return nil, 0, err
		}
		var oid ObjectID
		copy(oid[:], src[offset:offset+12])
		return &Value{kind: KindObjectID, oid: oid}, offset + 12, nil
	case KindString:
		s, next, err := readLengthPrefixedString(src, offset)
		if err != nil {
			return nil, 0, err
		}
		return &Value{kind: KindString, str: s}, next, nil
	case KindBinary:
		length, err := readInt32(src, offset)
		if err != nil {
			return nil, 0, err
		}
		if length < 0 {
			return nil, 0, newBinaryFormatError("invalid binary length %d", length)
		}
		if err := hasEnoughBytes(src, offset, 5+int(length)); err != nil {
			return nil, 0, err
		}
		subtype := src[offset+4]
		payload := make([]byte, length)
		copy(payload, src[offset+5:offset+5+int(length)])
		return &Value{kind: KindBinary, bin: Binary{Subtype: subtype, Payload: payload}}, offset + 5 + int(length), nil
	case KindRegex:
		pattern, next, err := readCString(src, offset)
		if err != nil {
			return nil, 0, err
		}
		options, next2, err := readCString(src, next)
		if err != nil {
			return nil, 0, err
		}
		return &Value{kind: KindRegex, rx: Regex{Pattern: pattern, Options: options}}, next2, nil
	case KindDocument:
		c, next, err := decodeContainer(false, src, offset)
		if err != nil {
			return nil, 0, err
		}
		return &Value{kind: KindDocument, cont: c}, next, nil
	case KindArray:
		c, next, err := decodeContainer(true, src, offset)
		if err != nil {
			return nil, 0, err
		}
		return &Value{kind: KindArray, cont: c}, next, nil
	}
	return nil, 0, &UnknownKindError{Tag: byte(k)}
}

// Decode decodes one top-level BSON document from src. This is the
// documented entry point for decoding a single top-level node from a
// stream: BSON's root is always a document.
func Decode(src []byte) (*Document, error) {
	c, _, err := decodeContainer(false, src, 0)
	if err != nil {
		return nil, err
	}
	return &Document{c: c}, nil
}
