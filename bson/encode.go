package bson

import (
	"bytes"
	"encoding/binary"
	"math"
)

func hasEnoughBytes(b []byte, offset int, n int) error {
	if len(b)-offset < n {
		return newBinaryFormatError("not enough bytes available to read value")
	}
	return nil
}

func writeTypeAndKey(dst []byte, offset int, k Kind, key string) int {
	dst[offset] = byte(k)
	nullByteOffset := offset + 1 + len(key)
	copy(dst[offset+1:nullByteOffset], key)
	dst[nullByteOffset] = 0
	return nullByteOffset + 1
}

func readTypeAndKey(src []byte, offset int) (Kind, string, int, error) {
	if err := hasEnoughBytes(src, offset, 1); err != nil {
		return 0, "", 0, err
	}
	k := Kind(src[offset])
	keyStart := offset + 1
	nullPos := bytes.IndexByte(src[keyStart:], 0)
	if nullPos == -1 {
		return 0, "", 0, newBinaryFormatError("missing key terminator")
	}
	key := string(src[keyStart : keyStart+nullPos])
	return k, key, keyStart + nullPos + 1, nil
}

func writeFloat64(dst []byte, offset int, value float64) int {
	binary.LittleEndian.PutUint64(dst[offset:offset+8], math.Float64bits(value))
	return offset + 8
}

func readFloat64(src []byte, offset int) (float64, error) {
	if err := hasEnoughBytes(src, offset, 8); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(src[offset : offset+8])), nil
}

func writeInt32(dst []byte, offset int, value int32) int {
	binary.LittleEndian.PutUint32(dst[offset:offset+4], uint32(value))
	return offset + 4
}

func writeUint32(dst []byte, offset int, value uint32) int {
	binary.LittleEndian.PutUint32(dst[offset:offset+4], value)
	return offset + 4
}

func readInt32(src []byte, offset int) (int32, error) {
	if err := hasEnoughBytes(src, offset, 4); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(src[offset : offset+4])), nil
}

func readUint32(src []byte, offset int) (uint32, error) {
	if err := hasEnoughBytes(src, offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(src[offset : offset+4]), nil
}

func writeInt64(dst []byte, offset int, value int64) int {
	binary.LittleEndian.PutUint64(dst[offset:offset+8], uint64(value))
	return offset + 8
}

func readInt64(src []byte, offset int) (int64, error) {
	if err := hasEnoughBytes(src, offset, 8); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(src[offset : offset+8])), nil
}

func readUint64(src []byte, offset int) (uint64, error) {
	if err := hasEnoughBytes(src, offset, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(src[offset : offset+8]), nil
}

func writeString(dst []byte, offset int, value string) int {
	strlen := len(value)
	offset = writeInt32(dst, offset, int32(strlen)+1)
	copy(dst[offset:offset+strlen], value)
	dst[offset+strlen] = 0
	return offset + strlen + 1
}

// readLengthPrefixedString reads a BSON string: int32 length (including the
// trailing NUL), then that many bytes with the final byte being the NUL.
func readLengthPrefixedString(src []byte, offset int) (string, int, error) {
	length, err := readInt32(src, offset)
	if err != nil {
		return "", 0, err
	}
	if length < 1 {
		return "", 0, newBinaryFormatError("invalid string length %d", length)
	}
	start := offset + 4
	if err := hasEnoughBytes(src, start, int(length)); err != nil {
		return "", 0, err
	}
	if src[start+int(length)-1] != 0 {
		return "", 0, newBinaryFormatError("string missing null terminator")
	}
	return string(src[start : start+int(length)-1]), start + int(length), nil
}

func writeCString(dst []byte, offset int, value string) int {
	strlen := len(value)
	copy(dst[offset:offset+strlen], value)
	dst[offset+strlen] = 0
	return offset + strlen + 1
}

func readCString(src []byte, offset int) (string, int, error) {
	nullPos := bytes.IndexByte(src[offset:], 0)
	if nullPos == -1 {
		return "", 0, newBinaryFormatError("cstring null terminator not found")
	}
	return string(src[offset : offset+nullPos]), offset + nullPos + 1, nil
}
