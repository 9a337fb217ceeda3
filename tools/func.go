package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agentlab/corag-agents/components"
)

// Func adapts a typed Go function into a Tool.
// The input schema is reflected from I, arguments are decoded into I and validated before fn runs.
type Func[I any, O any] struct {
	Config
	fn     func(context.Context, *I) (*O, error)
	schema any
}

var _ Tool = (*Func[struct{}, struct{}])(nil)

// NewFunc returns a Tool named title wrapping fn
func NewFunc[I any, O any](title string, fn func(context.Context, *I) (*O, error), opts ...Option) *Func[I, O] {
	ret := &Func[I, O]{
		fn:     fn,
		schema: InputSchema(new(I)),
	}
	ret.SetTitle(title)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	return ret
}

func (t *Func[I, O]) Definition() components.ToolDefinition {
	return components.ToolDefinition{
		Name:        t.Title(),
		Description: t.Description(),
		Parameters:  t.schema,
	}
}

// Run calls the wrapped function with typed input
func (t *Func[I, O]) Run(ctx context.Context, in *I) (*O, error) {
	if err := Validator().StructCtx(ctx, in); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return t.fn(ctx, in)
}

func (t *Func[I, O]) Call(ctx context.Context, arguments string) (string, error) {
	if fn := t.startHook; fn != nil {
		fn(ctx, t, arguments)
	}
	out, err := t.call(ctx, arguments)
	if err != nil {
		if fn := t.errorHook; fn != nil {
			fn(ctx, t, arguments, err)
		}
		return "", err
	}
	if fn := t.endHook; fn != nil {
		fn(ctx, t, arguments, out)
	}
	return out, nil
}

func (t *Func[I, O]) call(ctx context.Context, arguments string) (string, error) {
	in := new(I)
	if args := strings.TrimSpace(arguments); args != "" {
		if err := json.Unmarshal([]byte(args), in); err != nil {
			return "", fmt.Errorf("decode arguments: %w", err)
		}
	}
	out, err := t.Run(ctx, in)
	if err != nil {
		return "", err
	}
	bs, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}
