package splitter

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/splitly/fragment"
)

// Location identifies an external element by URL
type Location struct {
	URL string
}

// NewLocation creates a location, normalizing OS paths into file URLs
func NewLocation(location string) Location {
	norm := location
	if url.Scheme(norm, "") == "" && url.IsRelative(norm) {
		if abs, err := filepath.Abs(norm); err == nil {
			norm = abs
		}
	}
	if url.Scheme(norm, "") == "" && !url.IsRelative(norm) {
		norm = url.ToFileURL(norm)
	}
	return Location{URL: norm}
}

// loader resolves inbound elements into raw payloads. Byte slices, strings,
// readers and fragments are taken as content; locations are downloaded.
type loader struct {
	fs afs.Service
}

// Normalize converts an inbound element into the strategy payload
func (l *loader) Normalize(ctx context.Context, element interface{}) ([]byte, error) {
	switch actual := element.(type) {
	case []byte:
		return actual, nil
	case string:
		return []byte(actual), nil
	case *fragment.Fragment:
		return actual.Data, nil
	case Location:
		return l.download(ctx, actual.URL)
	case *Location:
		return l.download(ctx, actual.URL)
	case io.Reader:
		data, err := io.ReadAll(actual)
		if err != nil {
			return nil, fmt.Errorf("failed to read element: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unsupported element type %T", element)
}

func (l *loader) download(ctx context.Context, URL string) ([]byte, error) {
	if l.fs == nil {
		l.fs = afs.New()
	}
	data, err := l.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download %v: %w", URL, err)
	}
	return data, nil
}
