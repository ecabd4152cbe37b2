package bson

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

const ejsonDateLayout = "2006-01-02T15:04:05.000Z"

// ToEJSON renders the document as canonical Extended JSON.
func (d *Document) ToEJSON() string {
	var buf bytes.Buffer
	writeContainerEJSON(&buf, d.c)
	return buf.String()
}

// ToEJSON renders the array as canonical Extended JSON.
func (a *Array) ToEJSON() string {
	var buf bytes.Buffer
	writeContainerEJSON(&buf, a.c)
	return buf.String()
}

// ToEJSON renders a single value as canonical Extended JSON. For a
// document or array value this is identical to calling ToEJSON on the
// unwrapped container.
func (v *Value) ToEJSON() string {
	var buf bytes.Buffer
	writeValueEJSON(&buf, v)
	return buf.String()
}

func writeContainerEJSON(buf *bytes.Buffer, c *container) {
	if c.isArray {
		if c.length == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[ ")
		first := true
		for n := c.root.next; n != &c.root; n = n.next {
			if !first {
				buf.WriteString(", ")
			}
			first = false
			writeValueEJSON(buf, n.val)
		}
		buf.WriteString(" ]")
		return
	}
	if c.length == 0 {
		buf.WriteString("{}")
		return
	}
	buf.WriteString("{ ")
	first := true
	for n := c.root.next; n != &c.root; n = n.next {
		if !first {
			buf.WriteString(", ")
		}
		first = false
		writeJSONString(buf, n.key)
		buf.WriteString(" : ")
		writeValueEJSON(buf, n.val)
	}
	buf.WriteString(" }")
}

func writeValueEJSON(buf *bytes.Buffer, v *Value) {
	switch v.kind {
	case KindNull, KindUnknown:
		buf.WriteString("null")
	case KindBoolean:
		if v.boolean {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindInt32:
		buf.WriteString(strconv.FormatInt(int64(v.i32), 10))
	case KindInt64:
		buf.WriteString(strconv.FormatInt(v.i64, 10))
	case KindDouble:
		writeDoubleEJSON(buf, v.f64)
	case KindString:
		writeJSONString(buf, v.str)
	case KindBinary:
		buf.WriteString(`{ "$binary" : { "base64" : "`)
		buf.WriteString(base64.StdEncoding.EncodeToString(v.bin.Payload))
		buf.WriteString(`", "subType" : "`)
		fmt.Fprintf(buf, "%02x", v.bin.Subtype)
		buf.WriteString(`" } }`)
	case KindObjectID:
		buf.WriteString(`{ "$oid" : "`)
		fmt.Fprintf(buf, "%x", v.oid[:])
		buf.WriteString(`" }`)
	case KindDateTime:
		buf.WriteString(`{ "$date" : "`)
		buf.WriteString(millisToEJSONDate(int64(v.dt)))
		buf.WriteString(`" }`)
	case KindTimestamp:
		buf.WriteString(`{ "$timestamp" : { "t" : `)
		buf.WriteString(strconv.FormatUint(uint64(v.ts.Seconds), 10))
		buf.WriteString(`, "i" : 1 } }`)
	case KindRegex:
		buf.WriteString(`{ "$regularExpression" : { "pattern" : `)
		writeJSONString(buf, v.rx.Pattern)
		buf.WriteString(`, "options" : `)
		writeJSONString(buf, v.rx.Options)
		buf.WriteString(` } }`)
	case KindMinKey:
		buf.WriteString(`{ "$minKey" : 1 }`)
	case KindMaxKey:
		buf.WriteString(`{ "$maxKey" : 1 }`)
	case KindDocument, KindArray:
		writeContainerEJSON(buf, v.cont)
	}
}

func writeDoubleEJSON(buf *bytes.Buffer, f float64) {
	switch {
	case math.IsNaN(f):
		buf.WriteString(`"NaN"`)
	case math.IsInf(f, 1):
		buf.WriteString(`"Infinity"`)
	case math.IsInf(f, -1):
		buf.WriteString(`"-Infinity"`)
	default:
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
}

func writeJSONString(buf *bytes.Buffer, s string) {
	// encoding/json's string quoting already implements the escaping rules
	// a conforming JSON string needs; reuse it rather than hand-roll one.
	b, err := json.Marshal(s)
	if err != nil {
		// Marshal does not fail for a string value (invalid UTF-8 is
		// replaced with U+FFFD), so this fallback is not reached.
		b = []byte(`""`)
	}
	buf.Write(b)
}

func millisToEJSONDate(millis int64) string {
	sec := millis / 1000
	ns := (millis % 1000) * 1000000
	if ns < 0 {
		sec--
		ns += 1000000000
	}
	return time.Unix(sec, ns).UTC().Format(ejsonDateLayout)
}
