package session

import "context"

type ctxKey struct{}

func WithRecord(ctx context.Context, rec *Record) context.Context {
	return context.WithValue(ctx, ctxKey{}, rec)
}

func FromContext(ctx context.Context) *Record {
	rec, _ := ctx.Value(ctxKey{}).(*Record)
	return rec
}

// TokenFromContext is the bearer token source for the backend client.
func TokenFromContext(ctx context.Context) string {
	if rec := FromContext(ctx); rec != nil {
		return rec.Token
	}
	return ""
}
