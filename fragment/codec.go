package fragment

import (
	"github.com/viant/bintly"
)

// EncodeBinary encodes the fragment into a binary stream
func (f *Fragment) EncodeBinary(stream *bintly.Writer) error {
	stream.Int(f.Index)
	stream.Int(f.Start)
	stream.Int(f.End)
	stream.Uint64(f.Checksum)
	stream.String(f.Kind)
	stream.String(f.Name)
	stream.Uint8s(f.Data)
	stream.Int16(int16(len(f.Meta)))
	for k, v := range f.Meta {
		stream.String(k)
		stream.String(v)
	}
	return nil
}

// DecodeBinary decodes the fragment from a binary stream
func (f *Fragment) DecodeBinary(stream *bintly.Reader) error {
	stream.Int(&f.Index)
	stream.Int(&f.Start)
	stream.Int(&f.End)
	stream.Uint64(&f.Checksum)
	stream.String(&f.Kind)
	stream.String(&f.Name)
	stream.Uint8s(&f.Data)
	var size int16
	stream.Int16(&size)
	if size > 0 {
		f.Meta = make(map[string]string, size)
	}
	for i := 0; i < int(size); i++ {
		var key, value string
		stream.String(&key)
		stream.String(&value)
		f.Meta[key] = value
	}
	return nil
}

// EncodeBinary encodes the collection into a binary stream
func (f Fragments) EncodeBinary(stream *bintly.Writer) error {
	stream.Int32(int32(len(f)))
	for _, fragment := range f {
		if err := fragment.EncodeBinary(stream); err != nil {
			return err
		}
	}
	return nil
}

// DecodeBinary decodes the collection from a binary stream
func (f *Fragments) DecodeBinary(stream *bintly.Reader) error {
	var size int32
	stream.Int32(&size)
	*f = make(Fragments, 0, size)
	for i := 0; i < int(size); i++ {
		fragment := &Fragment{}
		if err := fragment.DecodeBinary(stream); err != nil {
			return err
		}
		*f = append(*f, fragment)
	}
	return nil
}
