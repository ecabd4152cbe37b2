package bson

import "io"

// scratchPool supplies reusable encode buffers for the streaming writer
// functions below: amortize allocation across repeated calls instead of
// allocating a fresh buffer per document.
var scratchPool = NewBytePool(256, 1<<20)

// WriteDocument writes doc's length-prefixed BSON binary encoding to w
// using a pooled scratch buffer, returning the number of bytes written.
func WriteDocument(w io.Writer, doc *Document) (int, error) {
	buf := scratchPool.Get()
	defer func() { scratchPool.Put(buf) }()
	buf = doc.Encode(buf)
	return w.Write(buf)
}

// WriteArray writes a's length-prefixed BSON binary encoding to w using a
// pooled scratch buffer, returning the number of bytes written.
func WriteArray(w io.Writer, a *Array) (int, error) {
	buf := scratchPool.Get()
	defer func() { scratchPool.Put(buf) }()
	buf = a.Encode(buf)
	return w.Write(buf)
}

// ReadBinaryDocument reads exactly one length-prefixed BSON document from
// r: the leading int32 length is read first to learn how many further
// bytes to pull, then the whole framed buffer is handed to Decode.
func ReadBinaryDocument(r io.Reader) (*Document, error) {
	body, err := readLengthFramedBuffer(r)
	if err != nil {
		return nil, err
	}
	return Decode(body)
}

// ReadBinaryArray reads exactly one length-prefixed BSON array from r,
// using array key policy for the contained elements.
func ReadBinaryArray(r io.Reader) (*Array, error) {
	body, err := readLengthFramedBuffer(r)
	if err != nil {
		return nil, err
	}
	return DecodeArray(body)
}

func readLengthFramedBuffer(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n, err := readInt32(lenBuf[:], 0)
	if err != nil {
		return nil, err
	}
	if n < 5 {
		return nil, newBinaryFormatError("invalid top-level length %d", n)
	}
	body := make([]byte, n)
	copy(body, lenBuf[:])
	if _, err := io.ReadFull(r, body[4:]); err != nil {
		return nil, err
	}
	return body, nil
}
