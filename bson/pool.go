// Copyright 2018 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import "sync"

// A ByteSlicePool provides an abstraction for a pool of []byte objects. It
// provides Get, Put, and Resize methods. The Resize method allows for more
// control over allocations than relying on the native append function to
// grow slices.
type ByteSlicePool interface {
	Get() []byte
	Put(buf []byte)
	Resize(buf []byte, size int) []byte
}

// A BytePool wraps a sync.Pool of byte slices, constraining byte slices
// created or returned to be between a minimum and maximum capacity. It
// backs the scratch buffers used by the streaming binary writer so that
// repeated WriteDocument/WriteArray calls do not allocate on every call.
type BytePool struct {
	pool   *sync.Pool
	minCap int
	maxCap int
}

// NewBytePool constructs a byte slice pool with minimum and maximum
// capacities for byte slices in the pool. If minCap is negative, new slices
// will have zero capacity. If maxCap is negative, no maximum will be
// applied.
func NewBytePool(minCap, maxCap int) *BytePool {
	if minCap < 0 {
		minCap = 0
	}
	return &BytePool{
		minCap: minCap,
		maxCap: maxCap,
		pool:   &sync.Pool{},
	}
}

// Get gives the caller a byte slice from the pool or a new byte slice with
// the pool's configured minimum capacity. The returned slice has length
// zero.
func (p *BytePool) Get() []byte {
	bp := p.pool.Get()
	if bp == nil {
		return make([]byte, 0, p.minCap)
	}
	buf := bp.([]byte)
	return buf[0:0]
}

// Put returns a byte slice to the pool if its capacity does not exceed the
// pool's configured maximum.
func (p *BytePool) Put(buf []byte) {
	if p.maxCap < 0 || cap(buf) <= p.maxCap {
		p.pool.Put(buf)
	}
}

// Resize returns a slice of the desired length. If the underlying capacity
// is insufficient, a copy with capacity of twice the old capacity plus size
// is returned. This is an
// intentionally leaky pool abstraction: small slices are grown rather than
// recycled, to minimize amortized allocation count.
func (p *BytePool) Resize(buf []byte, size int) []byte {
	if size <= cap(buf) {
		return buf[0:size]
	}
	temp := make([]byte, size, cap(buf)*2+size)
	copy(temp, buf)
	return temp
}
