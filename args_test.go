package splitly

import (
	"errors"
	"testing"

	"github.com/viant/splitly/fragment"
	"github.com/viant/splitly/splitter"
	"github.com/viant/splitly/stream"
)

func TestNormalizeArgs(t *testing.T) {
	callback := func(aFragment *fragment.Fragment) {}
	sink := stream.New[*fragment.Fragment]()

	testCases := []struct {
		description string
		args        []interface{}
		expectErr   bool
		check       func(t *testing.T, actual *Arguments)
	}{
		{
			description: "no arguments",
			check: func(t *testing.T, actual *Arguments) {
				if actual.Options == nil || len(actual.Options) != 0 {
					t.Errorf("expected empty options, got %v", actual.Options)
				}
				if actual.Each != nil {
					t.Errorf("expected no callback")
				}
				if actual.Into != nil {
					t.Errorf("expected no sink")
				}
			},
		},
		{
			description: "options map only",
			args:        []interface{}{map[string]interface{}{"by": 3}},
			check: func(t *testing.T, actual *Arguments) {
				if by := actual.Options.Int("by", 0); by != 3 {
					t.Errorf("expected by 3, got %v", by)
				}
			},
		},
		{
			description: "typed options only",
			args:        []interface{}{splitter.Options{"sep": ";"}},
			check: func(t *testing.T, actual *Arguments) {
				if sep := actual.Options.String("sep", ""); sep != ";" {
					t.Errorf("expected sep ;, got %v", sep)
				}
			},
		},
		{
			description: "callback only",
			args:        []interface{}{callback},
			check: func(t *testing.T, actual *Arguments) {
				if actual.Each == nil {
					t.Errorf("expected callback")
				}
				if len(actual.Options) != 0 {
					t.Errorf("expected empty options, got %v", actual.Options)
				}
			},
		},
		{
			description: "options and callback",
			args:        []interface{}{splitter.Options{"by": 2}, callback},
			check: func(t *testing.T, actual *Arguments) {
				if by := actual.Options.Int("by", 0); by != 2 {
					t.Errorf("expected by 2, got %v", by)
				}
				if actual.Each == nil {
					t.Errorf("expected callback")
				}
			},
		},
		{
			description: "adapter keys lifted out of options",
			args: []interface{}{splitter.Options{
				"by":        4,
				"each":      callback,
				"into":      sink,
				"autoClose": false,
			}},
			check: func(t *testing.T, actual *Arguments) {
				if len(actual.Options) != 1 || !actual.Options.Has("by") {
					t.Errorf("expected options reduced to by, got %v", actual.Options)
				}
				if actual.Each == nil {
					t.Errorf("expected callback lifted from each option")
				}
				if actual.Into != sink {
					t.Errorf("expected sink lifted from into option")
				}
				if actual.AutoClose == nil || *actual.AutoClose {
					t.Errorf("expected autoClose false")
				}
			},
		},
		{
			description: "too many arguments",
			args:        []interface{}{splitter.Options{}, callback, "extra"},
			expectErr:   true,
		},
		{
			description: "unsupported single argument",
			args:        []interface{}{"what"},
			expectErr:   true,
		},
		{
			description: "first argument has to be options",
			args:        []interface{}{42, callback},
			expectErr:   true,
		},
		{
			description: "second argument has to be a callback",
			args:        []interface{}{splitter.Options{}, "nope"},
			expectErr:   true,
		},
		{
			description: "into option with wrong type",
			args:        []interface{}{splitter.Options{"into": "sink"}},
			expectErr:   true,
		},
		{
			description: "autoClose option with wrong type",
			args:        []interface{}{splitter.Options{"autoClose": "yes"}},
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		actual, err := NormalizeArgs(testCase.args...)
		if testCase.expectErr {
			if !errors.Is(err, ErrInvalidArguments) {
				t.Errorf("%v: expected invalid arguments error, got %v", testCase.description, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%v: %v", testCase.description, err)
		}
		if testCase.check != nil {
			testCase.check(t, actual)
		}
	}
}

func TestNormalizeArgs_CallbackWins(t *testing.T) {
	var viaOption, viaArgument int
	args := []interface{}{
		splitter.Options{"each": EachFunc(func(aFragment *fragment.Fragment) { viaOption++ })},
		func(aFragment *fragment.Fragment) { viaArgument++ },
	}
	actual, err := NormalizeArgs(args...)
	if err != nil {
		t.Fatalf("failed to normalize: %v", err)
	}
	actual.Each(&fragment.Fragment{})
	if viaOption != 0 {
		t.Errorf("expected each option to be replaced, it ran %v times", viaOption)
	}
	if viaArgument != 1 {
		t.Errorf("expected callback argument to run once, got %v", viaArgument)
	}
}
