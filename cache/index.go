package cache

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/bintly"

	"github.com/viant/splitly/fragment"
)

// indexAsset names the persisted index file under the base location
const indexAsset = "splitly_index.bin"

// Entry records the split outcome for one source
type Entry struct {
	ID        string
	ModTime   int64
	Hash      uint64
	Count     int64
	Fragments fragment.Fragments
}

// Entries is a collection of index entries
type Entries []*Entry

// EncodeBinary encodes the entry into a binary stream
func (e *Entry) EncodeBinary(stream *bintly.Writer) error {
	stream.String(e.ID)
	stream.Int64(e.ModTime)
	stream.Uint64(e.Hash)
	stream.Int64(e.Count)
	return e.Fragments.EncodeBinary(stream)
}

// DecodeBinary decodes the entry from a binary stream
func (e *Entry) DecodeBinary(stream *bintly.Reader) error {
	stream.String(&e.ID)
	stream.Int64(&e.ModTime)
	stream.Uint64(&e.Hash)
	stream.Int64(&e.Count)
	return e.Fragments.DecodeBinary(stream)
}

// EncodeBinary encodes the collection into a binary stream
func (e Entries) EncodeBinary(stream *bintly.Writer) error {
	stream.Int32(int32(len(e)))
	for _, entry := range e {
		if err := entry.EncodeBinary(stream); err != nil {
			return err
		}
	}
	return nil
}

// DecodeBinary decodes the collection from a binary stream
func (e *Entries) DecodeBinary(stream *bintly.Reader) error {
	var size int32
	stream.Int32(&size)
	*e = make(Entries, 0, size)
	for i := 0; i < int(size); i++ {
		entry := &Entry{}
		if err := entry.DecodeBinary(stream); err != nil {
			return err
		}
		*e = append(*e, entry)
	}
	return nil
}

// Index persists split outcomes so unchanged sources are not split again
type Index struct {
	fs      afs.Service
	baseURL string
	entries *Map[string, Entry]
}

// NewIndex creates an index backed by the supplied base location, restoring
// any previously persisted entries.
func NewIndex(ctx context.Context, baseURL string) (*Index, error) {
	result := &Index{
		fs:      afs.New(),
		baseURL: baseURL,
		entries: NewMap[string, Entry](),
	}
	if err := result.load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load index: %w", err)
	}
	return result, nil
}

// Lookup returns the entry for a source when its content hash still matches
func (i *Index) Lookup(id string, hash uint64) (*Entry, bool) {
	entry, ok := i.entries.Get(id)
	if !ok || entry.Hash != hash {
		return nil, false
	}
	return entry, true
}

// Store records the split outcome for a source
func (i *Index) Store(entry *Entry) {
	i.entries.Set(entry.ID, entry)
}

// Remove drops the entry for a source
func (i *Index) Remove(id string) {
	i.entries.Delete(id)
}

// Size returns the number of indexed sources
func (i *Index) Size() int {
	return i.entries.Size()
}

// Persist saves the index under the base location
func (i *Index) Persist(ctx context.Context) error {
	entries := make(Entries, 0, i.entries.Size())
	i.entries.Range(func(id string, entry *Entry) bool {
		entries = append(entries, entry)
		return true
	})
	sort.Slice(entries, func(x, y int) bool { return entries[x].ID < entries[y].ID })
	data, err := bintly.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	return i.fs.Upload(ctx, i.assetURL(), file.DefaultFileOsMode, bytes.NewReader(data))
}

// load restores entries from a persisted asset, if any
func (i *Index) load(ctx context.Context) error {
	URL := i.assetURL()
	if ok, _ := i.fs.Exists(ctx, URL); !ok {
		return nil
	}
	data, err := i.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to open asset: %w", err)
	}
	entries := Entries{}
	if err = bintly.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to decode index: %w", err)
	}
	for _, entry := range entries {
		i.entries.Set(entry.ID, entry)
	}
	return nil
}

func (i *Index) assetURL() string {
	return url.Join(i.baseURL, indexAsset)
}
