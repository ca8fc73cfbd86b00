package mcp

type SplitInput struct {
	// Location points at the content to split; any afs URL or local path
	Location string `json:"location,omitempty"`
	// Content carries inline text to split instead of a location
	Content  string                 `json:"content,omitempty"`
	Strategy string                 `json:"strategy"`
	Options  map[string]interface{} `json:"options,omitempty"`
	// MaxFragments caps the returned fragments, zero returns all
	MaxFragments int `json:"maxFragments,omitempty"`
	// WithText includes fragment text in the response
	WithText bool `json:"withText,omitempty"`
}

type FragmentInfo struct {
	Index    int               `json:"index"`
	Start    int               `json:"start"`
	End      int               `json:"end"`
	Kind     string            `json:"kind"`
	Name     string            `json:"name,omitempty"`
	Checksum string            `json:"checksum"`
	Meta     map[string]string `json:"meta,omitempty"`
	Text     string            `json:"text,omitempty"`
}

type SplitOutput struct {
	Count     int64          `json:"count"`
	Fragments []FragmentInfo `json:"fragments"`
	Truncated bool           `json:"truncated,omitempty"`
}

type CountInput struct {
	Location string                 `json:"location,omitempty"`
	Content  string                 `json:"content,omitempty"`
	Strategy string                 `json:"strategy"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

type CountOutput struct {
	Count int64 `json:"count"`
}

type StrategiesInput struct{}

type StrategiesOutput struct {
	Strategies []string `json:"strategies"`
}
