package bson

import "fmt"

// BinaryFormatError records a malformed BSON byte stream: a truncated
// buffer, a missing key or cstring terminator, or an invalid string, binary
// or stream-frame length. An unrecognised type tag is reported as
// UnknownKindError instead, and Decode does not check a document's length
// prefix against its element stream.
type BinaryFormatError struct {
	msg string
}

func (e *BinaryFormatError) Error() string { return e.msg }

func newBinaryFormatError(format string, args ...interface{}) error {
	return &BinaryFormatError{msg: fmt.Sprintf(format, args...)}
}

// EJSONFormatError records a malformed Extended JSON document: an
// unexpected character at a value position, an unterminated string, an
// unknown "$"-wrapper key, or a missing separator.
type EJSONFormatError struct {
	msg string
}

func (e *EJSONFormatError) Error() string { return e.msg }

func newEJSONFormatError(format string, args ...interface{}) error {
	return &EJSONFormatError{msg: fmt.Sprintf(format, args...)}
}

// UnknownKindError is returned when a Value is constructed from an
// out-of-range BSON type tag.
type UnknownKindError struct {
	Tag byte
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown BSON type tag 0x%02X", e.Tag)
}

// MissingKeyError is returned by a read-only keyed lookup when the key is
// absent from the container.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("key %q not found", e.Key)
}

// ShapeError describes an operation used against the wrong container
// policy, e.g. keyed insertion on an array. Document and Array expose only
// the operations their policy allows, so no function in this package
// returns it.
type ShapeError struct {
	msg string
}

func (e *ShapeError) Error() string { return e.msg }

func newShapeError(format string, args ...interface{}) error {
	return &ShapeError{msg: fmt.Sprintf(format, args...)}
}
