package mcp

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	protoserver "github.com/viant/mcp-protocol/server"

	"github.com/viant/splitly/fragment"
	"github.com/viant/splitly/splitter"
)

//go:embed tools/split.md
var descSplit string

//go:embed tools/count.md
var descCount string

//go:embed tools/strategies.md
var descStrategies string

func registerTools(registry *protoserver.Registry, h *Handler) error {
	if err := protoserver.RegisterTool[*SplitInput, *SplitOutput](registry, "split", descSplit, func(ctx context.Context, in *SplitInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.split(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*CountInput, *CountOutput](registry, "count", descCount, func(ctx context.Context, in *CountInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.count(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*StrategiesInput, *StrategiesOutput](registry, "strategies", descStrategies, func(ctx context.Context, in *StrategiesInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.strategies(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	return nil
}

func buildErrorResult(message string) (*schema.CallToolResult, *jsonrpc.Error) {
	return nil, jsonrpc.NewError(jsonrpc.InvalidParams, message, nil)
}

func buildSuccessResult(payload any) (*schema.CallToolResult, *jsonrpc.Error) {
	b, _ := json.Marshal(payload)
	return &schema.CallToolResult{
		Content: []schema.CallToolResultContentElem{
			schema.TextContent{Type: "text", Text: string(b)},
		},
		StructuredContent: map[string]any{"result": payload},
	}, nil
}

func (h *Handler) split(ctx context.Context, in *SplitInput) (*SplitOutput, error) {
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil {
		in = &SplitInput{}
	}
	if in.Strategy == "" {
		return nil, fmt.Errorf("mcp: missing strategy")
	}
	element, err := resolveElement(in.Location, in.Content)
	if err != nil {
		return nil, err
	}
	fragments, err := h.service.SplitValue(ctx, element, in.Strategy, splitter.Options(in.Options))
	if err != nil {
		return nil, err
	}
	limit := in.MaxFragments
	if limit <= 0 || limit > len(fragments) {
		limit = len(fragments)
	}
	out := &SplitOutput{
		Count:     int64(len(fragments)),
		Truncated: limit < len(fragments),
	}
	for _, aFragment := range fragments[:limit] {
		out.Fragments = append(out.Fragments, newFragmentInfo(aFragment, in.WithText))
	}
	return out, nil
}

func (h *Handler) count(ctx context.Context, in *CountInput) (*CountOutput, error) {
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil {
		in = &CountInput{}
	}
	if in.Strategy == "" {
		return nil, fmt.Errorf("mcp: missing strategy")
	}
	element, err := resolveElement(in.Location, in.Content)
	if err != nil {
		return nil, err
	}
	count, err := h.service.CountValue(ctx, element, in.Strategy, splitter.Options(in.Options))
	if err != nil {
		return nil, err
	}
	return &CountOutput{Count: count}, nil
}

func (h *Handler) strategies(ctx context.Context, in *StrategiesInput) (*StrategiesOutput, error) {
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	names := h.service.Registry().Names()
	sort.Strings(names)
	return &StrategiesOutput{Strategies: names}, nil
}

func resolveElement(location, content string) (interface{}, error) {
	if location != "" {
		return splitter.NewLocation(location), nil
	}
	if content != "" {
		return content, nil
	}
	return nil, fmt.Errorf("mcp: missing location or content")
}

func newFragmentInfo(aFragment *fragment.Fragment, withText bool) FragmentInfo {
	info := FragmentInfo{
		Index:    aFragment.Index,
		Start:    aFragment.Start,
		End:      aFragment.End,
		Kind:     aFragment.Kind,
		Name:     aFragment.Name,
		Checksum: fmt.Sprintf("%016x", aFragment.Checksum),
		Meta:     aFragment.Meta,
	}
	if withText {
		info.Text = aFragment.Text()
	}
	return info
}
