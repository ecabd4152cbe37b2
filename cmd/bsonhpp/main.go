// Command bsonhpp builds a sample document exercising every value kind,
// then round-trips it: binary encode, binary decode, Extended JSON encode,
// Extended JSON decode, and prints each stage so the codec's behavior can be
// inspected end to end.
package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xenginez/bsonhpp/bson"
)

func sampleDocument() (*bson.Document, error) {
	payload := make([]byte, 25)
	for i := range payload {
		payload[i] = byte(i) + 'a'
	}
	var oid bson.ObjectID
	copy(oid[:], []byte{0xA1, 0xB2, 0xC3, 0xD4, 0xE5, 0xF6, 0x6F, 0x5E, 0x4D, 0x3C, 0x2B, 0x1A})

	generatedOID, err := bson.GenerateObjectID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()

	return bson.NewDocument(
		bson.KV("null", bson.NewNull()),
		bson.KV("generated_object_id", bson.NewObjectID(generatedOID)),
		bson.KV("int32", bson.NewInt32(math.MinInt32)),
		bson.KV("int64", bson.NewInt64(math.MaxInt64)),
		bson.KV("double", bson.NewDouble(123456.654321)),
		bson.KV("double-NaN", bson.NewDouble(math.NaN())),
		bson.KV("double-Infinity", bson.NewDouble(math.Inf(1))),
		bson.KV("string", bson.NewString("hello world!")),
		bson.KV("boolean", bson.NewBool(false)),
		bson.KV("min_key", bson.NewMinKey()),
		bson.KV("max_key", bson.NewMaxKey()),
		bson.KV("binary", bson.NewBinary(bson.SubtypeGeneric, payload)),
		bson.KV("regular", bson.NewRegex("^H", "i")),
		bson.KV("datetime", bson.NewDateTime(now)),
		bson.KV("timestamp", bson.NewTimestamp(math.MaxUint32, 1)),
		bson.KV("object_id", bson.NewObjectID(oid)),
		bson.KV("array", bson.NewArrayValue(bson.NewArray(
			bson.NewNull(),
			bson.NewInt32(math.MinInt32),
			bson.NewInt64(math.MaxInt64),
			bson.NewDouble(123456.654321),
			bson.NewString("hello world!"),
			bson.NewBool(true),
			bson.NewMinKey(),
			bson.NewMaxKey(),
			bson.NewRegex("^H", "i"),
			bson.NewDateTime(now),
			bson.NewObjectID(oid),
			bson.NewBinary(bson.SubtypeGeneric, payload),
		))),
	), nil
}

func main() {
	doc1, err := sampleDocument()
	if err != nil {
		logrus.WithError(err).Fatal("building sample document failed")
	}

	fmt.Println()
	fmt.Println(doc1.ToEJSON())
	fmt.Println()

	wire := doc1.Encode(nil)
	logrus.WithField("bytes", len(wire)).Info("encoded binary document")

	roundTripped, err := bson.Decode(wire)
	if err != nil {
		logrus.WithError(err).Fatal("binary decode failed")
	}
	if !roundTripped.Equal(doc1) {
		logrus.Fatal("binary round trip did not preserve the document")
	}

	text := doc1.ToEJSON()
	doc2, err := bson.FromEJSON(text)
	if err != nil {
		logrus.WithError(err).Fatal("EJSON decode failed")
	}

	fmt.Println()
	fmt.Println(doc2.ToEJSON())
	fmt.Println()

	if len(os.Args) > 1 && os.Args[1] == "-repl" {
		repl()
	}
}

// repl reads one Extended JSON document per line from stdin and echoes its
// canonical binary size and re-serialized form, for ad hoc inspection.
func repl() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for {
		fmt.Print("bson> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		doc, err := bson.FromEJSON(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf("%d bytes\n%s\n", doc.EncodedSize(), doc.ToEJSON())
	}
}
