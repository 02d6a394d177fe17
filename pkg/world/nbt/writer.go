// Package nbt reads and writes the big-endian named binary tag format of
// chunk storage.
package nbt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// NBT tag type IDs.
const (
	TagEnd       byte = 0
	TagByte      byte = 1
	TagShort     byte = 2
	TagInt       byte = 3
	TagLong      byte = 4
	TagFloat     byte = 5
	TagDouble    byte = 6
	TagByteArray byte = 7
	TagString    byte = 8
	TagList      byte = 9
	TagCompound  byte = 10
	TagIntArray  byte = 11
	TagLongArray byte = 12
)

// ErrUnbalanced reports a tag written where its container does not allow it.
var ErrUnbalanced = errors.New("nbt: unbalanced tags")

// frame is an open compound or list.
type frame struct {
	list bool
	elem byte
	left int32
}

// Writer streams one root compound to an io.Writer. Writes after the first
// failure are dropped; Finish reports it.
type Writer struct {
	w     io.Writer
	buf   [8]byte
	err   error
	stack []frame
}

// NewWriter creates a new NBT Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered during writing.
func (w *Writer) Err() error { return w.err }

// Finish returns the first error, or ErrUnbalanced if a container is still
// open.
func (w *Writer) Finish() error {
	if len(w.stack) > 0 {
		w.fail("%d containers left open", len(w.stack))
	}
	return w.err
}

func (w *Writer) fail(format string, args ...any) {
	if w.err == nil {
		w.err = fmt.Errorf("%w: %s", ErrUnbalanced, fmt.Sprintf(format, args...))
	}
}

func (w *Writer) top() *frame {
	if len(w.stack) == 0 {
		return nil
	}
	return &w.stack[len(w.stack)-1]
}

func (w *Writer) write(data []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(data)
}

func (w *Writer) putByte(v byte) {
	w.buf[0] = v
	w.write(w.buf[:1])
}

func (w *Writer) putUint16(v uint16) {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	w.write(w.buf[:2])
}

func (w *Writer) putInt32(v int32) {
	binary.BigEndian.PutUint32(w.buf[:4], uint32(v))
	w.write(w.buf[:4])
}

func (w *Writer) putInt64(v int64) {
	binary.BigEndian.PutUint64(w.buf[:8], uint64(v))
	w.write(w.buf[:8])
}

func (w *Writer) putString(v string) {
	if len(v) > math.MaxUint16 {
		w.fail("string of %d bytes", len(v))
		return
	}
	w.putUint16(uint16(len(v)))
	if len(v) > 0 {
		w.write([]byte(v))
	}
}

// named writes a tag header inside the open compound. Only a compound may
// stand at the root.
func (w *Writer) named(tag byte, name string) {
	switch f := w.top(); {
	case f == nil && tag != TagCompound:
		w.fail("tag %q outside the root compound", name)
	case f != nil && f.list:
		w.fail("named tag %q inside a list", name)
	}
	w.putByte(tag)
	w.putString(name)
}

// element accounts for one unnamed element of the open list.
func (w *Writer) element(tag byte) {
	f := w.top()
	switch {
	case f == nil || !f.list:
		w.fail("list element outside a list")
	case f.elem != tag:
		w.fail("tag %d in a list of tag %d", tag, f.elem)
	case f.left == 0:
		w.fail("list longer than its declared length")
	default:
		f.left--
	}
}

// BeginCompound opens a named compound. Use name="" for the root.
func (w *Writer) BeginCompound(name string) {
	w.named(TagCompound, name)
	w.stack = append(w.stack, frame{})
}

// ListCompound opens the next compound element of a compound list.
func (w *Writer) ListCompound() {
	w.element(TagCompound)
	w.stack = append(w.stack, frame{})
}

// EndCompound closes the innermost compound.
func (w *Writer) EndCompound() {
	if f := w.top(); f == nil || f.list {
		w.fail("EndCompound without an open compound")
		return
	}
	w.putByte(TagEnd)
	w.stack = w.stack[:len(w.stack)-1]
}

// BeginList opens a named list of count elements of type elemType.
func (w *Writer) BeginList(name string, elemType byte, count int32) {
	w.named(TagList, name)
	w.putByte(elemType)
	w.putInt32(count)
	w.stack = append(w.stack, frame{list: true, elem: elemType, left: count})
}

// EndList closes the innermost list once all its elements are written.
func (w *Writer) EndList() {
	f := w.top()
	switch {
	case f == nil || !f.list:
		w.fail("EndList without an open list")
		return
	case f.left != 0:
		w.fail("list closed %d elements short", f.left)
	}
	w.stack = w.stack[:len(w.stack)-1]
}

// ListString writes the next element of a string list.
func (w *Writer) ListString(v string) {
	w.element(TagString)
	w.putString(v)
}

func (w *Writer) Byte(name string, v int8) {
	w.named(TagByte, name)
	w.putByte(byte(v))
}

func (w *Writer) Int(name string, v int32) {
	w.named(TagInt, name)
	w.putInt32(v)
}

func (w *Writer) Long(name string, v int64) {
	w.named(TagLong, name)
	w.putInt64(v)
}

func (w *Writer) Double(name string, v float64) {
	w.named(TagDouble, name)
	w.putInt64(int64(math.Float64bits(v)))
}

func (w *Writer) String(name, v string) {
	w.named(TagString, name)
	w.putString(v)
}

// LongArray writes a named long array, the packed form of palette data and
// heightmaps.
func (w *Writer) LongArray(name string, v []int64) {
	w.named(TagLongArray, name)
	w.putInt32(int32(len(v)))
	for _, val := range v {
		w.putInt64(val)
	}
}
