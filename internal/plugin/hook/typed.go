package hook

import (
	"context"
	"fmt"
)

// Filter applies the filters bound to name and asserts the result is a T.
func Filter[T any](ctx context.Context, r *Registry, name string, payload T) (T, error) {
	out, err := r.ApplyFilters(ctx, name, payload)
	if err != nil {
		var zero T
		return zero, err
	}

	typed, ok := out.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("filter %s: got %T, want %T", name, out, zero)
	}
	return typed, nil
}

// TypedFilter adapts a function over T to a FilterFunc.
func TypedFilter[T any](fn func(ctx context.Context, payload T) (T, error)) FilterFunc {
	return func(ctx context.Context, payload any) (any, error) {
		typed, ok := payload.(T)
		if !ok {
			var zero T
			return nil, fmt.Errorf("unexpected payload %T, want %T", payload, zero)
		}
		return fn(ctx, typed)
	}
}

// TypedAction adapts a function over T to an ActionFunc.
func TypedAction[T any](fn func(ctx context.Context, payload T) error) ActionFunc {
	return func(ctx context.Context, payload any) error {
		typed, ok := payload.(T)
		if !ok {
			var zero T
			return fmt.Errorf("unexpected payload %T, want %T", payload, zero)
		}
		return fn(ctx, typed)
	}
}
