package bson

import "go.mongodb.org/mongo-driver/bson/primitive"

// ToPrimitive renders v as the equivalent go.mongodb.org/mongo-driver value,
// for callers that bridge into driver-based code (e.g. feeding a document
// built here into mongo-driver's own bson.Marshal via the returned
// primitive.D, or handing leaf values to driver APIs that expect
// primitive.ObjectID/primitive.Binary/etc).
func (v *Value) ToPrimitive() interface{} {
	switch v.kind {
	case KindNull, KindUnknown:
		return nil
	case KindInt32:
		return v.i32
	case KindInt64:
		return v.i64
	case KindDouble:
		return v.f64
	case KindBoolean:
		return v.boolean
	case KindString:
		return v.str
	case KindBinary:
		return primitive.Binary{Subtype: v.bin.Subtype, Data: v.bin.Payload}
	case KindObjectID:
		return primitive.ObjectID(v.oid)
	case KindDateTime:
		return primitive.DateTime(v.dt)
	case KindTimestamp:
		return primitive.Timestamp{T: v.ts.Seconds, I: v.ts.Increment}
	case KindRegex:
		return primitive.Regex{Pattern: v.rx.Pattern, Options: v.rx.Options}
	case KindMinKey:
		return primitive.MinKey{}
	case KindMaxKey:
		return primitive.MaxKey{}
	case KindDocument:
		return v.AsDocument().ToPrimitiveD()
	case KindArray:
		return v.AsArray().ToPrimitiveA()
	}
	return nil
}

// ToPrimitiveD renders the document as a primitive.D, preserving key order.
func (d *Document) ToPrimitiveD() primitive.D {
	out := make(primitive.D, 0, d.Len())
	it := d.Iter()
	for it.Next() {
		out = append(out, primitive.E{Key: it.Key(), Value: it.Value().ToPrimitive()})
	}
	return out
}

// ToPrimitiveA renders the array as a primitive.A.
func (a *Array) ToPrimitiveA() primitive.A {
	out := make(primitive.A, 0, a.Len())
	for i := 0; i < a.Len(); i++ {
		v, _ := a.At(i)
		out = append(out, v.ToPrimitive())
	}
	return out
}

// FromPrimitiveD builds a Document from a mongo-driver primitive.D, the
// reverse bridge of ToPrimitiveD: useful when a driver call (e.g. a
// Decimal128-free find result) hands back primitive.D/A/leaf values that
// need to enter this package's own value model.
func FromPrimitiveD(d primitive.D) *Document {
	pairs := make([]Pair, 0, len(d))
	for _, e := range d {
		pairs = append(pairs, KV(e.Key, valueFromPrimitive(e.Value)))
	}
	return NewDocument(pairs...)
}

func valueFromPrimitive(x interface{}) *Value {
	switch t := x.(type) {
	case nil:
		return NewNull()
	case int32:
		return NewInt32(t)
	case int64:
		return NewInt64(t)
	case int:
		return NewInt64(int64(t))
	case float64:
		return NewDouble(t)
	case bool:
		return NewBool(t)
	case string:
		return NewString(t)
	case primitive.Binary:
		return NewBinary(t.Subtype, t.Data)
	case primitive.ObjectID:
		return NewObjectID(ObjectID(t))
	case primitive.DateTime:
		return NewDateTime(int64(t))
	case primitive.Timestamp:
		return NewTimestamp(t.T, t.I)
	case primitive.Regex:
		return NewRegex(t.Pattern, t.Options)
	case primitive.MinKey:
		return NewMinKey()
	case primitive.MaxKey:
		return NewMaxKey()
	case primitive.D:
		return NewDocumentValue(FromPrimitiveD(t))
	case primitive.A:
		values := make([]*Value, 0, len(t))
		for _, elem := range t {
			values = append(values, valueFromPrimitive(elem))
		}
		return NewArrayValue(NewArray(values...))
	default:
		return NewUnknown()
	}
}
