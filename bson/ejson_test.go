package bson

import (
	"math"
	"strings"
	"testing"
)

func TestEJSONRoundTripPerKind(t *testing.T) {
	oid := ObjectID{0xA1, 0xB2, 0xC3, 0xD4, 0xE5, 0xF6, 0x6F, 0x5E, 0x4D, 0x3C, 0x2B, 0x1A}
	cases := []*Value{
		NewNull(),
		NewMinKey(),
		NewMaxKey(),
		NewInt32(-2147483648),
		NewInt64(9223372036854775807),
		NewDouble(3.14),
		NewBool(true),
		NewBool(false),
		NewString("hello world!"),
		NewBinary(SubtypeGeneric, []byte{0xDE, 0xAD, 0xBE, 0xEF}),
		NewObjectID(oid),
		NewDateTime(1642982400000),
		NewTimestamp(123456789, 1),
		NewRegex("^H", "i"),
	}
	for _, v := range cases {
		text := v.ToEJSON()
		got, err := FromEJSONValue(text)
		if err != nil {
			t.Fatalf("kind %s: FromEJSONValue(%q): %v", v.Kind(), text, err)
		}
		if v.Kind() == KindTimestamp {
			// §4.5's "i" field is a write-only literal; only "t" survives the
			// read path, so compare seconds directly rather than via Equal.
			if got.TimestampValue().Seconds != v.TimestampValue().Seconds {
				t.Fatalf("timestamp seconds mismatch: want %d, got %d", v.TimestampValue().Seconds, got.TimestampValue().Seconds)
			}
			continue
		}
		if !got.Equal(v) {
			t.Fatalf("kind %s: round trip mismatch: %q -> %v", v.Kind(), text, got)
		}
	}
}

func TestEJSONDoubleSentinels(t *testing.T) {
	cases := map[string]float64{
		`"NaN"`:       math.NaN(),
		`"Infinity"`:  math.Inf(1),
		`"-Infinity"`: math.Inf(-1),
	}
	for text, want := range cases {
		v, err := FromEJSONValue(text)
		if err != nil {
			t.Fatalf("%q: %v", text, err)
		}
		if v.Kind() != KindDouble {
			t.Fatalf("%q: expected double, got %s", text, v.Kind())
		}
		if math.IsNaN(want) {
			if !math.IsNaN(v.Double()) {
				t.Fatalf("%q: expected NaN, got %v", text, v.Double())
			}
			continue
		}
		if v.Double() != want {
			t.Fatalf("%q: expected %v, got %v", text, want, v.Double())
		}
	}
}

func TestEJSONNumericTriage(t *testing.T) {
	cases := []struct {
		text     string
		wantKind Kind
	}{
		{"0", KindInt32},
		{"-2147483648", KindInt32},
		{"2147483647", KindInt32},
		{"-2147483649", KindInt64},
		{"2147483648", KindInt64},
		{"9223372036854775807", KindInt64},
		{"1.5", KindDouble},
		{"1.0", KindDouble},
		{"-0.5", KindDouble},
	}
	for _, c := range cases {
		v, err := FromEJSONValue(c.text)
		if err != nil {
			t.Fatalf("%q: %v", c.text, err)
		}
		if v.Kind() != c.wantKind {
			t.Fatalf("%q: expected kind %s, got %s", c.text, c.wantKind, v.Kind())
		}
	}
}

func TestEJSONUnknownWrapperIsProtocolError(t *testing.T) {
	_, err := FromEJSONValue(`{ "$bogus" : 1 }`)
	if err == nil {
		t.Fatal("expected an error for an unrecognised $-prefixed wrapper key")
	}
	if _, ok := err.(*EJSONFormatError); !ok {
		t.Fatalf("expected *EJSONFormatError, got %T", err)
	}
}

func TestEJSONPlainDocumentAndArray(t *testing.T) {
	doc, err := FromEJSON(`{ "a" : 1 , "b" : [ 1 , 2 , 3 ] , "c" : { } }`)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Len() != 3 {
		t.Fatalf("expected 3 top-level pairs, got %d", doc.Len())
	}
	b := mustGet(t, doc, "b")
	if b.Kind() != KindArray || b.AsArray().Len() != 3 {
		t.Fatalf("expected a 3-element array for key b, got %v", b)
	}
	c := mustGet(t, doc, "c")
	if c.Kind() != KindDocument || !c.AsDocument().Empty() {
		t.Fatalf("expected an empty document for key c, got %v", c)
	}
}

func TestEJSONStringEscapes(t *testing.T) {
	v, err := FromEJSONValue(`"line\nbreak \"quoted\" A"`)
	if err != nil {
		t.Fatal(err)
	}
	want := "line\nbreak \"quoted\" A"
	if v.StringValue() != want {
		t.Fatalf("expected %q, got %q", want, v.StringValue())
	}
}

func TestEJSONWriterUsesCanonicalSpacing(t *testing.T) {
	text := NewDocument(KV("a", NewInt32(1))).ToEJSON()
	if !strings.Contains(text, `"a" : 1`) {
		t.Fatalf("expected canonical spacing around ':' in %q", text)
	}
}

func TestEJSONBinaryWrapperFieldOrderIndependent(t *testing.T) {
	// The canonical emit order is base64 then subType, but the spec does not
	// require the reader to reject the opposite order.
	v, err := FromEJSONValue(`{ "$binary" : { "subType" : "05", "base64" : "3q2+7w==" } }`)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != KindBinary {
		t.Fatalf("expected binary, got %s", v.Kind())
	}
	if v.BinaryValue().Subtype != SubtypeMD5 {
		t.Fatalf("expected subtype 0x05, got 0x%02X", v.BinaryValue().Subtype)
	}
}
