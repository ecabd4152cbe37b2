// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"io"
	"math"
	"strconv"
	"time"
)

// Reader is a streaming Extended JSON tokenizer that decodes a single
// top-level value at a time. It skips ASCII whitespace between tokens but
// never inside strings, and dispatches on a one-character lookahead at
// every value position.
type Reader struct {
	r *bufio.Reader
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br}
}

// ReadDocument reads exactly one top-level document from the stream.
func (r *Reader) ReadDocument() (*Document, error) {
	v, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	if v.Kind() != KindDocument {
		return nil, newEJSONFormatError("expected a document at top level, got %s", v.Kind())
	}
	return v.AsDocument(), nil
}

// ReadValue reads exactly one Extended JSON value from the stream,
// dispatching on a single-character lookahead.
func (r *Reader) ReadValue() (*Value, error) {
	ch, err := r.peekNonWS()
	if err != nil {
		return nil, err
	}
	switch {
	case ch == '"':
		return r.readStringOrSentinel()
	case ch == '{':
		return r.readObjectOrWrapper()
	case ch == '[':
		return r.readArray()
	case ch == 'n':
		return r.readLiteral("null", NewNull())
	case ch == 't':
		return r.readLiteral("true", NewBool(true))
	case ch == 'f':
		return r.readLiteral("false", NewBool(false))
	case ch == '-' || ch == '.' || (ch >= '0' && ch <= '9'):
		return r.readNumber()
	default:
		return nil, newEJSONFormatError("unexpected character %q at value position", ch)
	}
}

// FromEJSON parses a single Extended JSON document from text.
func FromEJSON(text string) (*Document, error) {
	return NewReader(bytes.NewReader([]byte(text))).ReadDocument()
}

// FromEJSONValue parses a single Extended JSON value (of any kind) from
// text.
func FromEJSONValue(text string) (*Value, error) {
	return NewReader(bytes.NewReader([]byte(text))).ReadValue()
}

func (r *Reader) peekNonWS() (byte, error) {
	for {
		b, err := r.r.Peek(1)
		if err != nil {
			if err == io.EOF {
				return 0, newEJSONFormatError("unexpected end of input")
			}
			return 0, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			_, _ = r.r.Discard(1)
		default:
			return b[0], nil
		}
	}
}

func (r *Reader) expectByte(b byte) error {
	got, err := r.r.ReadByte()
	if err != nil {
		return newEJSONFormatError("expected %q, got end of input", b)
	}
	if got != b {
		return newEJSONFormatError("expected %q, got %q", b, got)
	}
	return nil
}

func (r *Reader) expectByteAfterWS(b byte) error {
	ch, err := r.peekNonWS()
	if err != nil {
		return err
	}
	if ch != b {
		return newEJSONFormatError("expected %q, got %q", b, ch)
	}
	_, _ = r.r.Discard(1)
	return nil
}

func (r *Reader) readNameSeparator() error {
	return r.expectByteAfterWS(':')
}

func (r *Reader) readLiteral(lit string, v *Value) (*Value, error) {
	for i := 0; i < len(lit); i++ {
		if err := r.expectByte(lit[i]); err != nil {
			return nil, newEJSONFormatError("invalid literal, expected %q", lit)
		}
	}
	return v, nil
}

func (r *Reader) readNumber() (*Value, error) {
	var buf []byte
	hasDot := false
numLoop:
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		switch {
		case b >= '0' && b <= '9', b == '-':
			buf = append(buf, b)
		case b == '.':
			hasDot = true
			buf = append(buf, b)
		default:
			_ = r.r.UnreadByte()
			break numLoop
		}
	}
	if len(buf) == 0 {
		return nil, newEJSONFormatError("expected a number")
	}
	return parseTriagedNumber(buf, hasDot)
}

func parseTriagedNumber(buf []byte, hasDot bool) (*Value, error) {
	if hasDot {
		f, err := strconv.ParseFloat(string(buf), 64)
		if err != nil {
			return nil, newEJSONFormatError("invalid number %q: %v", buf, err)
		}
		return NewDouble(f), nil
	}
	n, err := strconv.ParseInt(string(buf), 10, 64)
	if err != nil {
		return nil, newEJSONFormatError("invalid integer %q: %v", buf, err)
	}
	if n >= math.MinInt32 && n <= math.MaxInt32 {
		return NewInt32(int32(n)), nil
	}
	return NewInt64(n), nil
}

// readRawNumberToken consumes the longest run of [0-9.-] and returns it
// without interpreting it, for wrapper bodies (like $timestamp's "i") whose
// value is syntactically checked but not semantically used.
func (r *Reader) readRawNumberToken() ([]byte, error) {
	var buf []byte
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		switch {
		case b >= '0' && b <= '9', b == '-', b == '.':
			buf = append(buf, b)
		default:
			_ = r.r.UnreadByte()
			return buf, nil
		}
	}
	if len(buf) == 0 {
		return nil, newEJSONFormatError("expected a number")
	}
	return buf, nil
}

func (r *Reader) readStringOrSentinel() (*Value, error) {
	s, err := r.readString()
	if err != nil {
		return nil, err
	}
	switch s {
	case "NaN":
		return NewDouble(math.NaN()), nil
	case "Infinity":
		return NewDouble(math.Inf(1)), nil
	case "-Infinity":
		return NewDouble(math.Inf(-1)), nil
	}
	return NewString(s), nil
}

func (r *Reader) readString() (string, error) {
	if err := r.expectByte('"'); err != nil {
		return "", newEJSONFormatError("expected string")
	}
	var buf bytes.Buffer
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			return "", newEJSONFormatError("unterminated string")
		}
		switch b {
		case '"':
			return buf.String(), nil
		case '\\':
			esc, err := r.r.ReadByte()
			if err != nil {
				return "", newEJSONFormatError("unterminated escape sequence")
			}
			switch esc {
			case '"':
				buf.WriteByte('"')
			case '\\':
				buf.WriteByte('\\')
			case '/':
				buf.WriteByte('/')
			case 'b':
				buf.WriteByte('\b')
			case 'f':
				buf.WriteByte('\f')
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case 'u':
				var hx [4]byte
				for i := 0; i < 4; i++ {
					h, err := r.r.ReadByte()
					if err != nil {
						return "", newEJSONFormatError("invalid \\u escape")
					}
					hx[i] = h
				}
				n, err := strconv.ParseUint(string(hx[:]), 16, 32)
				if err != nil {
					return "", newEJSONFormatError("invalid \\u escape: %v", err)
				}
				buf.WriteRune(rune(n))
			default:
				return "", newEJSONFormatError("invalid escape character %q", esc)
			}
		default:
			buf.WriteByte(b)
		}
	}
}

func (r *Reader) readArray() (*Value, error) {
	if err := r.expectByte('['); err != nil {
		return nil, err
	}
	ch, err := r.peekNonWS()
	if err != nil {
		return nil, err
	}
	if ch == ']' {
		_, _ = r.r.Discard(1)
		return NewArrayValue(NewArray()), nil
	}
	var values []*Value
	for {
		v, err := r.ReadValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		ch, err := r.peekNonWS()
		if err != nil {
			return nil, err
		}
		switch ch {
		case ',':
			_, _ = r.r.Discard(1)
		case ']':
			_, _ = r.r.Discard(1)
			return NewArrayValue(NewArray(values...)), nil
		default:
			return nil, newEJSONFormatError("expected ',' or ']', got %q", ch)
		}
	}
}

// recognisedWrappers are the "$"-prefixed keys that select a typed leaf
// decoder rather than a plain document. Any other "$"-prefixed first key
// is a protocol error.
var recognisedWrappers = map[string]bool{
	"$oid":               true,
	"$date":              true,
	"$numberDouble":      true,
	"$minKey":            true,
	"$maxKey":            true,
	"$timestamp":         true,
	"$binary":            true,
	"$regularExpression": true,
}

func (r *Reader) readObjectOrWrapper() (*Value, error) {
	if err := r.expectByte('{'); err != nil {
		return nil, err
	}
	ch, err := r.peekNonWS()
	if err != nil {
		return nil, err
	}
	if ch == '}' {
		_, _ = r.r.Discard(1)
		return NewDocumentValue(NewDocument()), nil
	}
	if ch != '"' {
		return nil, newEJSONFormatError("expected a string key, got %q", ch)
	}
	firstKey, err := r.readString()
	if err != nil {
		return nil, err
	}
	if len(firstKey) > 0 && firstKey[0] == '$' {
		if !recognisedWrappers[firstKey] {
			return nil, newEJSONFormatError("unknown extended JSON wrapper key %q", firstKey)
		}
		if err := r.readNameSeparator(); err != nil {
			return nil, err
		}
		return r.readWrapperBody(firstKey)
	}

	if err := r.readNameSeparator(); err != nil {
		return nil, err
	}
	firstVal, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	pairs := []Pair{KV(firstKey, firstVal)}

	for {
		ch, err := r.peekNonWS()
		if err != nil {
			return nil, err
		}
		switch ch {
		case ',':
			_, _ = r.r.Discard(1)
			key, err := r.readKeyAfterWS()
			if err != nil {
				return nil, err
			}
			if err := r.readNameSeparator(); err != nil {
				return nil, err
			}
			v, err := r.ReadValue()
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, KV(key, v))
		case '}':
			_, _ = r.r.Discard(1)
			return NewDocumentValue(NewDocument(pairs...)), nil
		default:
			return nil, newEJSONFormatError("expected ',' or '}', got %q", ch)
		}
	}
}

func (r *Reader) readKeyAfterWS() (string, error) {
	ch, err := r.peekNonWS()
	if err != nil {
		return "", err
	}
	if ch != '"' {
		return "", newEJSONFormatError("expected a string key, got %q", ch)
	}
	return r.readString()
}

func (r *Reader) readWrapperBody(key string) (*Value, error) {
	// Skip any whitespace between the wrapper key's ':' and its value.
	if _, err := r.peekNonWS(); err != nil {
		return nil, err
	}
	switch key {
	case "$oid":
		s, err := r.readString()
		if err != nil {
			return nil, err
		}
		if err := r.expectByteAfterWS('}'); err != nil {
			return nil, err
		}
		oid, err := parseObjectIDHex(s)
		if err != nil {
			return nil, err
		}
		return NewObjectID(oid), nil

	case "$date":
		s, err := r.readString()
		if err != nil {
			return nil, err
		}
		if err := r.expectByteAfterWS('}'); err != nil {
			return nil, err
		}
		millis, err := parseEJSONDate(s)
		if err != nil {
			return nil, err
		}
		return NewDateTime(millis), nil

	case "$numberDouble":
		s, err := r.readString()
		if err != nil {
			return nil, err
		}
		if err := r.expectByteAfterWS('}'); err != nil {
			return nil, err
		}
		f, err := parseEJSONDouble(s)
		if err != nil {
			return nil, err
		}
		return NewDouble(f), nil

	case "$minKey":
		if _, err := r.readRawNumberToken(); err != nil {
			return nil, err
		}
		if err := r.expectByteAfterWS('}'); err != nil {
			return nil, err
		}
		return NewMinKey(), nil

	case "$maxKey":
		if _, err := r.readRawNumberToken(); err != nil {
			return nil, err
		}
		if err := r.expectByteAfterWS('}'); err != nil {
			return nil, err
		}
		return NewMaxKey(), nil

	case "$timestamp":
		fields, err := r.readFieldsObject()
		if err != nil {
			return nil, err
		}
		if err := r.expectByteAfterWS('}'); err != nil {
			return nil, err
		}
		t, err := strconv.ParseUint(fields["t"], 10, 32)
		if err != nil {
			return nil, newEJSONFormatError("invalid $timestamp.t value %q", fields["t"])
		}
		return NewTimestamp(uint32(t), 0), nil

	case "$binary":
		fields, err := r.readFieldsObject()
		if err != nil {
			return nil, err
		}
		if err := r.expectByteAfterWS('}'); err != nil {
			return nil, err
		}
		payload, err := decodeBase64(fields["base64"])
		if err != nil {
			return nil, err
		}
		subtype, err := hex.DecodeString(fields["subType"])
		if err != nil || len(subtype) != 1 {
			return nil, newEJSONFormatError("invalid $binary.subType value %q", fields["subType"])
		}
		return NewBinary(subtype[0], payload), nil

	case "$regularExpression":
		fields, err := r.readFieldsObject()
		if err != nil {
			return nil, err
		}
		if err := r.expectByteAfterWS('}'); err != nil {
			return nil, err
		}
		return NewRegex(fields["pattern"], fields["options"]), nil
	}
	return nil, newEJSONFormatError("unknown extended JSON wrapper key %q", key)
}

// readFieldsObject reads a nested "{ "k1" : v1 , "k2" : v2 }" object whose
// values are either quoted strings or bare numbers, returning each value's
// textual form keyed by field name. It consumes the object's own closing
// brace but not any enclosing one.
func (r *Reader) readFieldsObject() (map[string]string, error) {
	if err := r.expectByteAfterWS('{'); err != nil {
		return nil, err
	}
	fields := make(map[string]string)
	for {
		key, err := r.readKeyAfterWS()
		if err != nil {
			return nil, err
		}
		if err := r.readNameSeparator(); err != nil {
			return nil, err
		}
		ch, err := r.peekNonWS()
		if err != nil {
			return nil, err
		}
		var val string
		if ch == '"' {
			val, err = r.readString()
			if err != nil {
				return nil, err
			}
		} else {
			raw, err := r.readRawNumberToken()
			if err != nil {
				return nil, err
			}
			val = string(raw)
		}
		fields[key] = val

		ch, err = r.peekNonWS()
		if err != nil {
			return nil, err
		}
		switch ch {
		case ',':
			_, _ = r.r.Discard(1)
		case '}':
			_, _ = r.r.Discard(1)
			return fields, nil
		default:
			return nil, newEJSONFormatError("expected ',' or '}', got %q", ch)
		}
	}
}

func parseObjectIDHex(s string) (ObjectID, error) {
	var oid ObjectID
	if len(s) != 24 {
		return oid, newEJSONFormatError("$oid must be 24 hex characters, got %d", len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return oid, newEJSONFormatError("invalid $oid hex value %q", s)
	}
	copy(oid[:], b)
	return oid, nil
}

func parseEJSONDate(s string) (int64, error) {
	t, err := time.Parse(ejsonDateLayout, s)
	if err != nil {
		return 0, newEJSONFormatError("invalid $date value %q: %v", s, err)
	}
	return t.Unix()*1000 + int64(t.Nanosecond())/1000000, nil
}

func parseEJSONDouble(s string) (float64, error) {
	switch s {
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, newEJSONFormatError("invalid $numberDouble value %q", s)
	}
	return f, nil
}

func decodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, newEJSONFormatError("invalid $binary.base64 value: %v", err)
	}
	return b, nil
}
