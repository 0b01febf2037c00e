// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/cpmech/gosl/chk"
)

// archive header
const (
	archiveMagic   = "NLFEMDMP"
	archiveVersion = 1
)

// Archive writes or reads the state of a model in binary form.
// The same sequence of calls serves both directions: when saving, values are written;
// when loading, values are read into the given pointers or slices.
// Errors are sticky: after the first error all calls do nothing and Err returns it.
type Archive struct {
	saving bool          // writing mode
	w      *bytes.Buffer // writer
	r      *bytes.Reader // reader
	err    error         // first error
}

// NewArchiveWriter returns an archive in writing mode
func NewArchiveWriter() (o *Archive) {
	o = &Archive{saving: true, w: new(bytes.Buffer)}
	o.w.WriteString(archiveMagic)
	binary.Write(o.w, binary.LittleEndian, uint32(archiveVersion))
	return
}

// NewArchiveReader returns an archive in reading mode
func NewArchiveReader(b []byte) (o *Archive, err error) {
	if len(b) < len(archiveMagic)+4 || string(b[:len(archiveMagic)]) != archiveMagic {
		return nil, chk.Err("archive: invalid file")
	}
	o = &Archive{r: bytes.NewReader(b[len(archiveMagic):])}
	var version uint32
	if err = binary.Read(o.r, binary.LittleEndian, &version); err != nil {
		return nil, chk.Err("archive: cannot read version: %v", err)
	}
	if version != archiveVersion {
		return nil, chk.Err("archive: version %d is not supported; expected %d", version, archiveVersion)
	}
	return
}

// Saving tells whether the archive is in writing mode
func (o *Archive) Saving() bool { return o.saving }

// Err returns the first error
func (o *Archive) Err() error { return o.err }

// Bytes returns the contents written so far
func (o *Archive) Bytes() []byte {
	if o.w == nil {
		return nil
	}
	return o.w.Bytes()
}

// Section marks the beginning of a group of values; the signature is checked when loading
func (o *Archive) Section(name string, fields ...string) {
	h := fnv.New64a()
	h.Write([]byte(name))
	for _, f := range fields {
		h.Write([]byte{0})
		h.Write([]byte(f))
	}
	sig := h.Sum64()
	if o.saving {
		o.put(sig)
		return
	}
	var got uint64
	o.get(&got)
	if o.err == nil && got != sig {
		o.err = chk.Err("archive: section %q does not match; the archive was written by a different model", name)
	}
}

// Int writes or reads an integer
func (o *Archive) Int(v *int) {
	x := int64(*v)
	o.value(&x)
	*v = int(x)
}

// Float writes or reads a float
func (o *Archive) Float(v *float64) {
	x := math.Float64bits(*v)
	o.value(&x)
	*v = math.Float64frombits(x)
}

// Bool writes or reads a boolean
func (o *Archive) Bool(v *bool) {
	var x uint8
	if *v {
		x = 1
	}
	o.value(&x)
	*v = x == 1
}

// String writes or reads a string
func (o *Archive) String(v *string) {
	n := len(*v)
	o.Int(&n)
	if o.err != nil {
		return
	}
	if o.saving {
		o.w.WriteString(*v)
		return
	}
	if n < 0 || n > o.r.Len() {
		o.err = chk.Err("archive: invalid string length %d", n)
		return
	}
	b := make([]byte, n)
	o.r.Read(b)
	*v = string(b)
}

// Floats writes or reads a slice of floats; the length must match when loading
func (o *Archive) Floats(v []float64) {
	if !o.length(len(v)) {
		return
	}
	for i := range v {
		o.Float(&v[i])
	}
}

// Ints writes or reads a slice of integers; the length must match when loading
func (o *Archive) Ints(v []int) {
	if !o.length(len(v)) {
		return
	}
	for i := range v {
		o.Int(&v[i])
	}
}

// length writes or checks the length of a slice
func (o *Archive) length(n int) (ok bool) {
	m := n
	o.Int(&m)
	if o.err == nil && m != n {
		o.err = chk.Err("archive: slice length %d does not match; expected %d", m, n)
	}
	return o.err == nil
}

// value writes or reads a fixed-size value
func (o *Archive) value(x interface{}) {
	if o.saving {
		o.put(x)
	} else {
		o.get(x)
	}
}

// put writes a fixed-size value
func (o *Archive) put(x interface{}) {
	if o.err != nil {
		return
	}
	if err := binary.Write(o.w, binary.LittleEndian, x); err != nil {
		o.err = chk.Err("archive: cannot write: %v", err)
	}
}

// get reads a fixed-size value
func (o *Archive) get(x interface{}) {
	if o.err != nil {
		return
	}
	if err := binary.Read(o.r, binary.LittleEndian, x); err != nil {
		o.err = chk.Err("archive: cannot read: %v", err)
	}
}
