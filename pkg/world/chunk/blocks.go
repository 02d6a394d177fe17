package chunk

import "github.com/OCharnyshevich/worldgen-server/pkg/world/block"

// Subchunk stores one 16x16x16 section. It holds a single state until a
// write diverges from it and collapses back once every entry is equal again.
// The zero value is a section of air.
type Subchunk struct {
	single block.State
	blocks *[SectionVolume]block.State
	counts []uint16
}

// NewSubchunk returns a homogeneous section of s.
func NewSubchunk(s block.State) Subchunk { return Subchunk{single: s} }

func sectionIndex(x, y, z int) int { return (y&15)<<8 | z<<4 | x }

// Homogeneous reports the section's only state when it has one.
func (s *Subchunk) Homogeneous() (block.State, bool) {
	if s.blocks == nil {
		return s.single, true
	}
	return 0, false
}

// Get returns the state at section-local (x, y&15, z).
func (s *Subchunk) Get(x, y, z int) block.State {
	if s.blocks == nil {
		return s.single
	}
	return s.blocks[sectionIndex(x, y, z)]
}

// Set writes v at section-local (x, y&15, z).
func (s *Subchunk) Set(x, y, z int, v block.State) {
	i := sectionIndex(x, y, z)
	if s.blocks == nil {
		if v == s.single {
			return
		}
		s.expand()
	}
	old := s.blocks[i]
	if old == v {
		return
	}
	s.blocks[i] = v
	s.counts[old]--
	s.count(v)
	if s.counts[v] == SectionVolume {
		s.single, s.blocks, s.counts = v, nil, nil
	}
}

func (s *Subchunk) expand() {
	blocks := new([SectionVolume]block.State)
	for i := range blocks {
		blocks[i] = s.single
	}
	s.blocks = blocks
	s.counts = make([]uint16, int(s.single)+1)
	s.counts[s.single] = SectionVolume
}

func (s *Subchunk) count(v block.State) {
	if int(v) >= len(s.counts) {
		s.counts = append(s.counts, make([]uint16, int(v)+1-len(s.counts))...)
	}
	s.counts[v]++
}

// Array returns a copy of every state in section index order.
func (s *Subchunk) Array() *[SectionVolume]block.State {
	out := new([SectionVolume]block.State)
	if s.blocks != nil {
		*out = *s.blocks
		return out
	}
	for i := range out {
		out[i] = s.single
	}
	return out
}

// Blocks stores a chunk column's states. Like Subchunk it stays a single
// state until a write diverges and collapses when every section agrees again.
type Blocks struct {
	single   block.State
	sections *[SectionCount]Subchunk
}

// Homogeneous reports the column's only state when it has one.
func (b *Blocks) Homogeneous() (block.State, bool) {
	if b.sections == nil {
		return b.single, true
	}
	return 0, false
}

// Section returns the section at index i counted from the bottom. The result
// shares storage with the column and must only be read.
func (b *Blocks) Section(i int) Subchunk {
	if b.sections == nil {
		return NewSubchunk(b.single)
	}
	return b.sections[i]
}

func (b *Blocks) get(x, y, z int) block.State {
	if b.sections == nil {
		return b.single
	}
	return b.sections[(y-MinY)>>4].Get(x, y, z)
}

func (b *Blocks) set(x, y, z int, v block.State) {
	if b.sections == nil {
		if v == b.single {
			return
		}
		b.sections = new([SectionCount]Subchunk)
		for i := range b.sections {
			b.sections[i] = NewSubchunk(b.single)
		}
	}
	sec := &b.sections[(y-MinY)>>4]
	sec.Set(x, y, z, v)
	if s, ok := sec.Homogeneous(); !ok || s != v {
		return
	}
	for i := range b.sections {
		if s, ok := b.sections[i].Homogeneous(); !ok || s != v {
			return
		}
	}
	b.single, b.sections = v, nil
}
