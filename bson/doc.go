// Copyright 2018 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bson implements an in-memory, ordered document model together with
// a bidirectional codec for the BSON binary format and its canonical
// Extended JSON (EJSON) textual representation.
//
// A Value is a tagged union over a closed set of kinds (see Kind).  Two of
// those kinds -- Document and Array -- are recursive containers holding an
// ordered sequence of key/value pairs; they share one underlying
// implementation and differ only in key policy (arbitrary keys for
// documents, dense decimal indices for arrays).
//
// Binary encoding follows the MongoDB BSON wire format byte-for-byte:
// little-endian integers and floats, length-prefixed strings and binary
// payloads, and NUL-terminated keys. Extended JSON follows the MongoDB
// canonical EJSON v2 conventions, wrapping non-JSON-native kinds in
// single-key "$"-prefixed objects.
package bson
