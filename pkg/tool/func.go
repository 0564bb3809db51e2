package tool

import "context"

type funcTool[I, O any] struct {
	meta Metadata
	fn   func(ctx context.Context, input I) (O, error)
}

func (t *funcTool[I, O]) Metadata() Metadata { return t.meta }

func (t *funcTool[I, O]) Execute(ctx context.Context, input I) (O, error) {
	return t.fn(ctx, input)
}

// Func wraps a plain function as an erased tool handle. Most tools
// need no struct of their own:
//
//	add := tool.Func("add", "Add two numbers",
//		func(ctx context.Context, in AddInput) (AddOutput, error) {
//			return AddOutput{Result: in.A + in.B}, nil
//		})
func Func[I, O any](name, description string, fn func(ctx context.Context, input I) (O, error), opts ...Option) Handle {
	return NewHandle[I, O](&funcTool[I, O]{
		meta: NewMetadata(name, description, opts...),
		fn:   fn,
	})
}
