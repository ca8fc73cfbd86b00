package splitly

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/viant/splitly/stream"
)

// Dispatch routes a convention named invocation, splitXxx or countXxx, to the
// matching strategy. A stream target yields a fragment stream or a deferred
// count, any other target is split in place. Invocations that match neither
// verb, carry no qualifier or name an unknown strategy come back with the
// original unknown operation error untouched, before any argument handling.
func (s *Service) Dispatch(ctx context.Context, target interface{}, method string, args ...interface{}) (interface{}, error) {
	origErr := &UnknownOperationError{Method: method}
	verb, name, ok := parseMethod(method)
	if !ok {
		return nil, origErr
	}
	if _, _, found := s.lookup(name); !found {
		fmt.Printf("splitly: no such strategy: %v\n", name)
		return nil, origErr
	}
	switch verb {
	case "split":
		if source, isStream := target.(*stream.Stream[interface{}]); isStream {
			return s.Split(ctx, source, name, args...)
		}
		return s.SplitValue(ctx, target, name, args...)
	default:
		if source, isStream := target.(*stream.Stream[interface{}]); isStream {
			return s.Count(ctx, source, name, args...)
		}
		return s.CountValue(ctx, target, name, args...)
	}
}

// parseMethod extracts the verb and strategy name from a dynamic method name.
// The qualifier has to be non empty and start with an upper case rune, its
// first rune is lowered to form the strategy name.
func parseMethod(method string) (string, string, bool) {
	for _, verb := range []string{"split", "count"} {
		if !strings.HasPrefix(method, verb) {
			continue
		}
		qualifier := method[len(verb):]
		if qualifier == "" {
			return "", "", false
		}
		first, size := utf8.DecodeRuneInString(qualifier)
		if !unicode.IsUpper(first) {
			return "", "", false
		}
		name := string(unicode.ToLower(first)) + qualifier[size:]
		return verb, name, true
	}
	return "", "", false
}
