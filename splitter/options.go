package splitter

// Options holds opaque strategy configuration
type Options map[string]interface{}

// Int returns an integer option value or the supplied default
func (o Options) Int(key string, defaultValue int) int {
	value, ok := o[key]
	if !ok {
		return defaultValue
	}
	switch actual := value.(type) {
	case int:
		return actual
	case int32:
		return int(actual)
	case int64:
		return int(actual)
	case uint:
		return int(actual)
	case float64:
		return int(actual)
	}
	return defaultValue
}

// String returns a string option value or the supplied default
func (o Options) String(key string, defaultValue string) string {
	value, ok := o[key]
	if !ok {
		return defaultValue
	}
	if actual, ok := value.(string); ok {
		return actual
	}
	return defaultValue
}

// Bool returns a boolean option value or the supplied default
func (o Options) Bool(key string, defaultValue bool) bool {
	value, ok := o[key]
	if !ok {
		return defaultValue
	}
	if actual, ok := value.(bool); ok {
		return actual
	}
	return defaultValue
}

// Has checks if an option is present
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Clone returns a shallow copy of the options
func (o Options) Clone() Options {
	result := make(Options, len(o))
	for k, v := range o {
		result[k] = v
	}
	return result
}
