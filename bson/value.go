package bson

// Value is a tagged union over the closed set of kinds in Kind. Exactly one
// payload field is meaningful for a given kind; which one is determined
// entirely by the kind tag, with no virtual dispatch required.
type Value struct {
	kind Kind

	i32     int32
	i64     int64
	f64     float64
	boolean bool
	str     string
	bin     Binary
	oid     ObjectID
	dt      DateTime
	ts      Timestamp
	rx      Regex
	cont    *container // KindDocument, KindArray
}

// Kind reports which variant this value carries.
func (v *Value) Kind() Kind { return v.kind }

// NewNull returns a null value.
func NewNull() *Value { return &Value{kind: KindNull} }

// NewUnknown returns the transient "not yet typed" sentinel value. Its tag
// is never written (Encode and ToEJSON write it as null) and it is never
// produced by a successful Decode/FromEJSON; it exists only for
// auto-vivified placeholders (see
// Document.GetOrInsert) and interop bridges that cannot classify a foreign
// value.
func NewUnknown() *Value { return &Value{kind: KindUnknown} }

// NewMinKey returns the BSON min-key sentinel value.
func NewMinKey() *Value { return &Value{kind: KindMinKey} }

// NewMaxKey returns the BSON max-key sentinel value.
func NewMaxKey() *Value { return &Value{kind: KindMaxKey} }

// NewInt32 returns a signed 32-bit integer value.
func NewInt32(n int32) *Value { return &Value{kind: KindInt32, i32: n} }

// NewInt64 returns a signed 64-bit integer value.
func NewInt64(n int64) *Value { return &Value{kind: KindInt64, i64: n} }

// NewDouble returns an IEEE-754 binary64 value.
func NewDouble(f float64) *Value { return &Value{kind: KindDouble, f64: f} }

// NewBool returns a boolean value.
func NewBool(b bool) *Value { return &Value{kind: KindBoolean, boolean: b} }

// NewString returns a UTF-8 string value.
func NewString(s string) *Value { return &Value{kind: KindString, str: s} }

// NewBinary returns a binary value with the given subtype and payload. The
// payload is copied.
func NewBinary(subtype byte, payload []byte) *Value {
	cp := make([]byte, len(payload))
	copy(cp, payload)
	return &Value{kind: KindBinary, bin: Binary{Subtype: subtype, Payload: cp}}
}

// NewObjectID returns an object_id value.
func NewObjectID(id ObjectID) *Value { return &Value{kind: KindObjectID, oid: id} }

// NewDateTime returns a datetime value from milliseconds since the Unix
// epoch, UTC.
func NewDateTime(millis int64) *Value { return &Value{kind: KindDateTime, dt: DateTime(millis)} }

// NewTimestamp returns a timestamp value.
func NewTimestamp(seconds, increment uint32) *Value {
	return &Value{kind: KindTimestamp, ts: Timestamp{Seconds: seconds, Increment: increment}}
}

// NewRegex returns a regular-expression value.
func NewRegex(pattern, options string) *Value {
	return &Value{kind: KindRegex, rx: Regex{Pattern: pattern, Options: options}}
}

// NewDocumentValue wraps a *Document as a Value suitable for embedding in
// another container.
func NewDocumentValue(d *Document) *Value {
	return &Value{kind: KindDocument, cont: d.c}
}

// NewArrayValue wraps an *Array as a Value suitable for embedding in
// another container.
func NewArrayValue(a *Array) *Value {
	return &Value{kind: KindArray, cont: a.c}
}

// AsDocument returns the embedded document, or nil if the value is not a
// document.
func (v *Value) AsDocument() *Document {
	if v.kind != KindDocument {
		return nil
	}
	return &Document{c: v.cont}
}

// AsArray returns the embedded array, or nil if the value is not an array.
func (v *Value) AsArray() *Array {
	if v.kind != KindArray {
		return nil
	}
	return &Array{c: v.cont}
}

// Int32 returns the payload of an int32 value.
func (v *Value) Int32() int32 { return v.i32 }

// Int64 returns the payload of an int64 value.
func (v *Value) Int64() int64 { return v.i64 }

// Double returns the payload of a double value.
func (v *Value) Double() float64 { return v.f64 }

// Bool returns the payload of a boolean value.
func (v *Value) Bool() bool { return v.boolean }

// StringValue returns the payload of a string value.
func (v *Value) StringValue() string { return v.str }

// BinaryValue returns the payload of a binary value.
func (v *Value) BinaryValue() Binary { return v.bin }

// ObjectIDValue returns the payload of an object_id value.
func (v *Value) ObjectIDValue() ObjectID { return v.oid }

// DateTimeMillis returns the payload of a datetime value, in milliseconds
// since the Unix epoch, UTC.
func (v *Value) DateTimeMillis() int64 { return int64(v.dt) }

// TimestampValue returns the payload of a timestamp value.
func (v *Value) TimestampValue() Timestamp { return v.ts }

// RegexValue returns the payload of a regular-expression value.
func (v *Value) RegexValue() Regex { return v.rx }

// Clone returns a deep, independent copy of v. Containers are recursively
// cloned; leaf payloads are copied by value (and, for binary, by slice
// copy).
func (v *Value) Clone() *Value {
	cp := *v
	switch v.kind {
	case KindBinary:
		cp.bin.Payload = make([]byte, len(v.bin.Payload))
		copy(cp.bin.Payload, v.bin.Payload)
	case KindDocument, KindArray:
		cp.cont = v.cont.clone()
	}
	return &cp
}

// Equal reports whether v and o are structurally equal. Ordering is
// undefined, and always false, across differing kinds.
func (v *Value) Equal(o *Value) bool {
	if o == nil || v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull, KindMinKey, KindMaxKey, KindUnknown:
		return true
	case KindInt32:
		return v.i32 == o.i32
	case KindInt64:
		return v.i64 == o.i64
	case KindDouble:
		return v.f64 == o.f64 || (isNaN(v.f64) && isNaN(o.f64))
	case KindBoolean:
		return v.boolean == o.boolean
	case KindString:
		return v.str == o.str
	case KindBinary:
		return v.bin.Subtype == o.bin.Subtype && bytesEqual(v.bin.Payload, o.bin.Payload)
	case KindObjectID:
		return v.oid == o.oid
	case KindDateTime:
		return v.dt == o.dt
	case KindTimestamp:
		return v.ts == o.ts
	case KindRegex:
		return v.rx == o.rx
	case KindDocument, KindArray:
		return v.cont.equal(o.cont)
	}
	return false
}

func isNaN(f float64) bool { return f != f }

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
