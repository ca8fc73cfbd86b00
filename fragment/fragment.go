package fragment

import (
	"fmt"
)

// Fragments represents an ordered collection of fragments
type Fragments []*Fragment

// Fragment represents a single piece of a split element
type Fragment struct {
	Index    int               `json:"index"`
	Start    int               `json:"start"`
	End      int               `json:"end"`
	Checksum uint64            `json:"checksum"`
	Kind     string            `json:"kind,omitempty"`
	Name     string            `json:"name,omitempty"`
	Data     []byte            `json:"data,omitempty"`
	Meta     map[string]string `json:"meta,omitempty"`
}

// New creates a fragment over the supplied payload
func New(kind string, start int, data []byte) *Fragment {
	return &Fragment{
		Start:    start,
		End:      start + len(data),
		Checksum: Checksum(data),
		Kind:     kind,
		Data:     data,
	}
}

// ID returns the fragment identity within the supplied source
func (f *Fragment) ID(sourceID string) string {
	return fmt.Sprintf("%s:%d-%d", sourceID, f.Start, f.End)
}

// Text returns the fragment payload as text
func (f *Fragment) Text() string {
	return string(f.Data)
}

// ByID returns a map of fragments indexed by their identity within the supplied source
func (f Fragments) ByID(sourceID string) map[string]*Fragment {
	var result = make(map[string]*Fragment)
	for _, fragment := range f {
		result[fragment.ID(sourceID)] = fragment
	}
	return result
}

// Size returns the total payload size across all fragments
func (f Fragments) Size() int {
	size := 0
	for _, fragment := range f {
		size += len(fragment.Data)
	}
	return size
}
