// Package session carries the signed-in identity through request contexts.
package session

import "context"

type contextKey string

const matricKey contextKey = "matric_number"

// WithMatric attaches the signed-in matric number to the context.
func WithMatric(ctx context.Context, matric string) context.Context {
	return context.WithValue(ctx, matricKey, matric)
}

// Matric extracts the signed-in matric number from the context.
func Matric(ctx context.Context) (string, bool) {
	matric, ok := ctx.Value(matricKey).(string)
	return matric, ok
}
