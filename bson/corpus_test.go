package bson

import (
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
)

// TestScenarioInt32Document exercises the literal byte sequence from the
// worked example: a document with one pair, key "a", int32 value 1.
func TestScenarioInt32Document(t *testing.T) {
	doc := NewDocument(KV("a", NewInt32(1)))
	got := hex.EncodeToString(doc.Encode(nil))
	want := "0c0000001061000100000000"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
	decoded, err := Decode(doc.Encode(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !decoded.Equal(doc) {
		t.Fatal("decoding the literal bytes did not reproduce the document")
	}
}

// TestScenarioBooleanAndNull exercises the second worked example: a
// document with a boolean true and a null. (The source text's claimed
// length prefix of 13 does not match the byte sequence it lists -- 12
// bytes, consistent with a 0x0C prefix; this test follows the actual byte
// count, per the determinism invariant in §8.)
func TestScenarioBooleanAndNull(t *testing.T) {
	doc := NewDocument(KV("x", NewBool(true)), KV("y", NewNull()))
	got := hex.EncodeToString(doc.Encode(nil))
	want := "0c000000087800010a790000"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

// TestScenarioEJSONSimpleDouble exercises EJSON decode of a simple document
// with a double field.
func TestScenarioEJSONSimpleDouble(t *testing.T) {
	doc, err := FromEJSON(`{ "pi" : 3.14 }`)
	if err != nil {
		t.Fatal(err)
	}
	v := mustGet(t, doc, "pi")
	if v.Kind() != KindDouble || v.Double() != 3.14 {
		t.Fatalf("expected double(3.14), got %v", v)
	}
	reencoded := doc.ToEJSON()
	if !strings.Contains(reencoded, `"pi"`) || !strings.Contains(reencoded, "3.14") {
		t.Fatalf("re-encoded form missing expected tokens: %s", reencoded)
	}
}

// TestScenarioEJSONObjectID exercises the $oid wrapper decode scenario.
func TestScenarioEJSONObjectID(t *testing.T) {
	doc, err := FromEJSON(`{ "k" : { "$oid" : "a1b2c3d4e5f66f5e4d3c2b1a" } }`)
	if err != nil {
		t.Fatal(err)
	}
	v := mustGet(t, doc, "k")
	if v.Kind() != KindObjectID {
		t.Fatalf("expected object_id, got %s", v.Kind())
	}
	want := ObjectID{0xA1, 0xB2, 0xC3, 0xD4, 0xE5, 0xF6, 0x6F, 0x5E, 0x4D, 0x3C, 0x2B, 0x1A}
	if v.ObjectIDValue() != want {
		t.Fatalf("expected %x, got %x", want, v.ObjectIDValue())
	}
}

// TestScenarioArrayMixedKinds exercises the mixed-kind array decode
// scenario, including numeric triage at both int32/int64 extrema.
func TestScenarioArrayMixedKinds(t *testing.T) {
	doc, err := FromEJSON(`{ "arr" : [ null, -2147483648, 9223372036854775807, 1.5 ] }`)
	if err != nil {
		t.Fatal(err)
	}
	v := mustGet(t, doc, "arr")
	arr := v.AsArray()
	wantKinds := []Kind{KindNull, KindInt32, KindInt64, KindDouble}
	if arr.Len() != len(wantKinds) {
		t.Fatalf("expected %d elements, got %d", len(wantKinds), arr.Len())
	}
	for i, want := range wantKinds {
		elem, _ := arr.At(i)
		if elem.Kind() != want {
			t.Fatalf("index %d: expected kind %s, got %s", i, want, elem.Kind())
		}
	}
	for i := 0; i < arr.Len(); i++ {
		key := arr.c.at(i).key
		if key != strconv.Itoa(i) {
			t.Fatalf("index %d: unexpected key %q", i, key)
		}
	}
}

// TestScenarioEJSONDateRoundTrip exercises the $date wrapper round trip and
// the underlying millisecond value it must decode to.
func TestScenarioEJSONDateRoundTrip(t *testing.T) {
	const text = `{ "d" : { "$date" : "2022-01-24T00:00:00.000Z" } }`
	doc, err := FromEJSON(text)
	if err != nil {
		t.Fatal(err)
	}
	v := mustGet(t, doc, "d")
	if v.Kind() != KindDateTime {
		t.Fatalf("expected datetime, got %s", v.Kind())
	}
	if v.DateTimeMillis() != 1642982400000 {
		t.Fatalf("expected 1642982400000 ms, got %d", v.DateTimeMillis())
	}
	reencoded := doc.ToEJSON()
	if reencoded != `{ "d" : { "$date" : "2022-01-24T00:00:00.000Z" } }` {
		t.Fatalf("expected the exact canonical round trip, got %s", reencoded)
	}
}

func TestBinaryDeterminism(t *testing.T) {
	docs := []*Document{
		NewDocument(),
		NewDocument(KV("a", NewInt32(1))),
		NewDocument(KV("x", NewBool(true)), KV("y", NewNull())),
	}
	for _, d := range docs {
		encoded := d.Encode(nil)
		if len(encoded) != d.EncodedSize() {
			t.Fatalf("EncodedSize()=%d, Encode produced %d bytes", d.EncodedSize(), len(encoded))
		}
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatal(err)
		}
		if !decoded.Equal(d) {
			t.Fatal("decode(encode(v)) != v")
		}
	}
}
