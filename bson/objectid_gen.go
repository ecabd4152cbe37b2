package bson

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	"github.com/oklog/ulid"
)

// objectIDEntropy is a monotonic, cryptographically seeded entropy source
// shared across calls to GenerateObjectID, so that IDs minted within the
// same process in rapid succession still sort distinctly.
var objectIDEntropy = ulid.Monotonic(rand.Reader, 0)

// GenerateObjectID mints a fresh object_id: a 4-byte big-endian Unix
// timestamp (seconds) followed by 8 bytes drawn from a ULID-style
// monotonic entropy source. The result has no wire-format meaning beyond
// what §3.1 assigns to object_id -- 12 opaque bytes -- but gives callers a
// ready way to construct identifiers without wiring their own entropy
// source, the way mongo-driver's primitive.NewObjectID does for its
// ObjectID type.
func GenerateObjectID() (ObjectID, error) {
	id, err := ulid.New(ulid.Now(), objectIDEntropy)
	if err != nil {
		return ObjectID{}, err
	}
	var oid ObjectID
	binary.BigEndian.PutUint32(oid[0:4], uint32(time.Now().Unix()))
	entropy := id.Entropy()
	copy(oid[4:12], entropy[:8])
	return oid, nil
}
