package bson

import "testing"

func TestDocumentInsertUpserts(t *testing.T) {
	d := NewDocument()
	d.Insert("k", NewInt32(1))
	d.Insert("k", NewInt32(2))

	if d.Len() != 1 {
		t.Fatalf("expected exactly one pair for key %q, got %d", "k", d.Len())
	}
	v := mustGet(t, d, "k")
	if v.Int32() != 2 {
		t.Fatalf("expected upsert to replace value, got %d", v.Int32())
	}
	key, _, _ := d.At(0)
	if key != "k" {
		t.Fatalf("upsert must not move the pair's position, got key %q at index 0", key)
	}
}

func TestDocumentConstructDoesNotDeduplicate(t *testing.T) {
	d := NewDocument(KV("k", NewInt32(1)), KV("k", NewInt32(2)))
	if d.Len() != 2 {
		t.Fatalf("construct-from-pairs must preserve duplicate keys, got length %d", d.Len())
	}
	v, _ := d.Find("k")
	if v.Int32() != 1 {
		t.Fatalf("Find must return the first match, got %d", v.Int32())
	}
}

func TestDocumentFindAndGet(t *testing.T) {
	d := NewDocument(KV("present", NewBool(true)))
	if _, ok := d.Find("absent"); ok {
		t.Fatal("Find should report false for an absent key")
	}
	if _, err := d.Get("absent"); err == nil {
		t.Fatal("Get should return an error for an absent key")
	} else if _, ok := err.(*MissingKeyError); !ok {
		t.Fatalf("expected *MissingKeyError, got %T", err)
	}
}

func TestDocumentGetOrInsertAutoVivifies(t *testing.T) {
	d := NewDocument()
	v := d.GetOrInsert("new")
	if v.Kind() != KindUnknown {
		t.Fatalf("auto-vivified placeholder should be KindUnknown, got %s", v.Kind())
	}
	if d.Len() != 1 {
		t.Fatal("GetOrInsert must insert the placeholder for an absent key")
	}
	// A second call must return the same placeholder, not insert another.
	v2 := d.GetOrInsert("new")
	if d.Len() != 1 {
		t.Fatal("GetOrInsert must not duplicate an existing key")
	}
	v2.str = "now a string, via direct mutation of the returned reference"
	if v.str != v2.str {
		t.Fatal("GetOrInsert should return a stable reference to the same underlying value")
	}
}

func TestDocumentFindSurvivesErasingFirstDuplicate(t *testing.T) {
	d := NewDocument(KV("k", NewInt32(1)), KV("k", NewInt32(2)))
	d.EraseKey("k")
	if d.Len() != 1 {
		t.Fatalf("EraseKey must remove exactly one pair, got length %d", d.Len())
	}
	v := mustGet(t, d, "k")
	if v.Int32() != 2 {
		t.Fatalf("Find must fall back to the remaining duplicate after the first is erased, got %d", v.Int32())
	}
}

func TestDocumentEraseKey(t *testing.T) {
	d := NewDocument(KV("a", NewInt32(1)), KV("b", NewInt32(2)), KV("c", NewInt32(3)))
	if !d.EraseKey("b") {
		t.Fatal("EraseKey should report true when the key was present")
	}
	if d.EraseKey("b") {
		t.Fatal("EraseKey should report false on a second call for the same key")
	}
	if d.Len() != 2 {
		t.Fatalf("expected 2 remaining pairs, got %d", d.Len())
	}
	keyA, _, _ := d.At(0)
	keyC, _, _ := d.At(1)
	if keyA != "a" || keyC != "c" {
		t.Fatalf("unexpected remaining keys: %q, %q", keyA, keyC)
	}
}

func TestDocumentIterationOrder(t *testing.T) {
	d := NewDocument(KV("a", NewInt32(1)), KV("b", NewInt32(2)), KV("c", NewInt32(3)))
	var keys []string
	it := d.Iter()
	for it.Next() {
		keys = append(keys, it.Key())
	}
	want := []string{"a", "b", "c"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("index %d: expected key %q, got %q", i, want[i], keys[i])
		}
	}
}

func TestDocumentIteratorErase(t *testing.T) {
	d := NewDocument(KV("a", NewInt32(1)), KV("b", NewInt32(2)), KV("c", NewInt32(3)))
	it := d.Iter()
	for it.Next() {
		if it.Key() == "b" {
			d.Erase(it)
		}
	}
	if d.Len() != 2 {
		t.Fatalf("expected 2 pairs after erase, got %d", d.Len())
	}
	if _, ok := d.Find("b"); ok {
		t.Fatal("erased key should no longer be found")
	}
}

func TestDocumentCloneAndEqual(t *testing.T) {
	d := NewDocument(
		KV("a", NewInt32(1)),
		KV("b", NewDocumentValue(NewDocument(KV("nested", NewString("x"))))),
	)
	clone := d.Clone()
	if !d.Equal(clone) {
		t.Fatal("a document must equal its own clone")
	}
	clone.AsNestedAndMutate(t)
	if d.Equal(clone) {
		t.Fatal("mutating a clone's nested document must not affect the original")
	}
}

// AsNestedAndMutate mutates the nested document under key "b" in place, to
// exercise that Clone deep-copies recursively.
func (d *Document) AsNestedAndMutate(t *testing.T) {
	t.Helper()
	v := mustGet(t, d, "b")
	v.AsDocument().Insert("nested", NewString("mutated"))
}

func TestDocumentMapRendersNestedValues(t *testing.T) {
	d := NewDocument(
		KV("n", NewInt32(42)),
		KV("arr", NewArrayValue(NewArray(NewString("x"), NewNull()))),
	)
	m := d.Map()
	if m["n"] != int32(42) {
		t.Fatalf("expected int32(42), got %#v", m["n"])
	}
	arr, ok := m["arr"].([]interface{})
	if !ok || len(arr) != 2 {
		t.Fatalf("expected a 2-element slice, got %#v", m["arr"])
	}
	if arr[0] != "x" || arr[1] != nil {
		t.Fatalf("unexpected array contents: %#v", arr)
	}
}

func TestDocumentBinaryRoundTrip(t *testing.T) {
	d := NewDocument(
		KV("a", NewInt32(1)),
		KV("s", NewString("hello")),
		KV("nested", NewDocumentValue(NewDocument(KV("x", NewBool(true))))),
	)
	encoded := d.Encode(nil)
	if len(encoded) != d.EncodedSize() {
		t.Fatalf("EncodedSize()=%d but Encode produced %d bytes", d.EncodedSize(), len(encoded))
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if !decoded.Equal(d) {
		t.Fatal("document did not round-trip through binary encode/decode")
	}
}
