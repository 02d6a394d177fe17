package nbt

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// maxDepth bounds compound and list nesting.
const maxDepth = 512

// ErrInvalid reports malformed NBT.
var ErrInvalid = errors.New("nbt: invalid data")

// Compound is a decoded compound tag. Values are int8, int16, int32, int64,
// float32, float64, []byte, string, []any, Compound, []int32 or []int64.
type Compound map[string]any

func (c Compound) Byte(name string) (int8, bool) {
	v, ok := c[name].(int8)
	return v, ok
}

func (c Compound) Int(name string) (int32, bool) {
	v, ok := c[name].(int32)
	return v, ok
}

func (c Compound) Long(name string) (int64, bool) {
	v, ok := c[name].(int64)
	return v, ok
}

func (c Compound) String(name string) (string, bool) {
	v, ok := c[name].(string)
	return v, ok
}

func (c Compound) Compound(name string) (Compound, bool) {
	v, ok := c[name].(Compound)
	return v, ok
}

func (c Compound) List(name string) ([]any, bool) {
	v, ok := c[name].([]any)
	return v, ok
}

func (c Compound) LongArray(name string) ([]int64, bool) {
	v, ok := c[name].([]int64)
	return v, ok
}

// Reader decodes NBT from an io.Reader.
type Reader struct {
	r   *bufio.Reader
	buf [8]byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadRoot reads the root compound and returns its name.
func (r *Reader) ReadRoot() (string, Compound, error) {
	tag, err := r.byte()
	if err != nil {
		return "", nil, fmt.Errorf("read root tag: %w", err)
	}
	if tag != TagCompound {
		return "", nil, fmt.Errorf("%w: root tag %d is not a compound", ErrInvalid, tag)
	}
	name, err := r.string()
	if err != nil {
		return "", nil, fmt.Errorf("read root name: %w", err)
	}
	c, err := r.compound(0)
	if err != nil {
		return "", nil, err
	}
	return name, c, nil
}

// Read decodes a single root compound from r.
func Read(r io.Reader) (string, Compound, error) { return NewReader(r).ReadRoot() }

func (r *Reader) full(n int) ([]byte, error) {
	if _, err := io.ReadFull(r.r, r.buf[:n]); err != nil {
		return nil, err
	}
	return r.buf[:n], nil
}

func (r *Reader) byte() (byte, error) { return r.r.ReadByte() }

func (r *Reader) int16() (int16, error) {
	b, err := r.full(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

func (r *Reader) int32() (int32, error) {
	b, err := r.full(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *Reader) int64() (int64, error) {
	b, err := r.full(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (r *Reader) length() (int, error) {
	n, err := r.int32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative length %d", ErrInvalid, n)
	}
	return int(n), nil
}

func (r *Reader) string() (string, error) {
	n, err := r.int16()
	if err != nil {
		return "", err
	}
	b := make([]byte, uint16(n))
	if _, err := io.ReadFull(r.r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *Reader) compound(depth int) (Compound, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrInvalid, maxDepth)
	}
	c := make(Compound)
	for {
		tag, err := r.byte()
		if err != nil {
			return nil, fmt.Errorf("read tag: %w", err)
		}
		if tag == TagEnd {
			return c, nil
		}
		name, err := r.string()
		if err != nil {
			return nil, fmt.Errorf("read tag name: %w", err)
		}
		v, err := r.payload(tag, depth+1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		c[name] = v
	}
}

func (r *Reader) payload(tag byte, depth int) (any, error) {
	switch tag {
	case TagByte:
		b, err := r.byte()
		return int8(b), err
	case TagShort:
		return r.int16()
	case TagInt:
		return r.int32()
	case TagLong:
		return r.int64()
	case TagFloat:
		v, err := r.int32()
		return math.Float32frombits(uint32(v)), err
	case TagDouble:
		v, err := r.int64()
		return math.Float64frombits(uint64(v)), err
	case TagByteArray:
		n, err := r.length()
		if err != nil {
			return nil, err
		}
		b := make([]byte, n)
		_, err = io.ReadFull(r.r, b)
		return b, err
	case TagString:
		return r.string()
	case TagList:
		return r.list(depth)
	case TagCompound:
		return r.compound(depth)
	case TagIntArray:
		n, err := r.length()
		if err != nil {
			return nil, err
		}
		out := make([]int32, n)
		for i := range out {
			if out[i], err = r.int32(); err != nil {
				return nil, err
			}
		}
		return out, nil
	case TagLongArray:
		n, err := r.length()
		if err != nil {
			return nil, err
		}
		out := make([]int64, n)
		for i := range out {
			if out[i], err = r.int64(); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: unknown tag %d", ErrInvalid, tag)
}

func (r *Reader) list(depth int) ([]any, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrInvalid, maxDepth)
	}
	elem, err := r.byte()
	if err != nil {
		return nil, err
	}
	n, err := r.length()
	if err != nil {
		return nil, err
	}
	if elem == TagEnd && n > 0 {
		return nil, fmt.Errorf("%w: list of %d end tags", ErrInvalid, n)
	}
	out := make([]any, 0, min(n, 1024))
	for range n {
		v, err := r.payload(elem, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
