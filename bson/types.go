// Copyright (C) MongoDB, Inc. 2018-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

// Kind identifies which variant a Value carries. The numeric values match
// the one-byte BSON type tags so that Kind(tag) is a valid conversion on
// decode.
type Kind byte

// The closed set of value kinds. KindUnknown is a sentinel for a value whose
// kind is not known: an auto-vivified placeholder or a foreign value the
// interop bridge cannot classify. Its tag is never written: Encode and
// ToEJSON write such a value as null, and Decode never produces it.
const (
	KindUnknown   Kind = 0xEF
	KindDouble    Kind = 0x01
	KindString    Kind = 0x02
	KindDocument  Kind = 0x03
	KindArray     Kind = 0x04
	KindBinary    Kind = 0x05
	KindObjectID  Kind = 0x07
	KindBoolean   Kind = 0x08
	KindDateTime  Kind = 0x09
	KindNull      Kind = 0x0A
	KindRegex     Kind = 0x0B
	KindInt32     Kind = 0x10
	KindTimestamp Kind = 0x11
	KindInt64     Kind = 0x12
	KindMaxKey    Kind = 0x7F
	KindMinKey    Kind = 0xFF
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindDocument:
		return "document"
	case KindArray:
		return "array"
	case KindBinary:
		return "binary"
	case KindObjectID:
		return "object_id"
	case KindBoolean:
		return "boolean"
	case KindDateTime:
		return "datetime"
	case KindNull:
		return "null"
	case KindRegex:
		return "regular"
	case KindInt32:
		return "int32"
	case KindTimestamp:
		return "timestamp"
	case KindInt64:
		return "int64"
	case KindMaxKey:
		return "max_key"
	case KindMinKey:
		return "min_key"
	default:
		return "unknown"
	}
}

// Binary subtypes recognised on the wire.
const (
	SubtypeGeneric   byte = 0x00
	SubtypeFunction  byte = 0x01
	SubtypeBinaryOld byte = 0x02
	SubtypeUUIDOld   byte = 0x03
	SubtypeUUID      byte = 0x04
	SubtypeMD5       byte = 0x05
	SubtypeEncrypted byte = 0x06
	SubtypeUser      byte = 0x80
)

// ObjectID is an opaque 12-byte identifier.
type ObjectID [12]byte

// Regex is a regular-expression value: a pattern plus option flags. Both are
// stored as NUL-terminated cstrings on the wire, so neither may contain an
// embedded NUL.
type Regex struct {
	Pattern string
	Options string
}

// Binary is length-prefixed payload bytes tagged with a subtype.
type Binary struct {
	Subtype byte
	Payload []byte
}

// Timestamp is the MongoDB internal replication timestamp: an incrementing
// ordinal paired with seconds-since-epoch. The composite is otherwise
// opaque to this package.
type Timestamp struct {
	Seconds   uint32
	Increment uint32
}

// DateTime is signed milliseconds since the Unix epoch, UTC.
type DateTime int64
