package logging

import "context"

type tagKey struct{}

// WithTag returns a context whose log records carry the given task tag.
// Console and file appenders prepend the tag to the message, which is
// how long-running workers distinguish their output. Pass the context
// through the *Context logging methods, e.g.
//
//	ctx := logging.WithTag(ctx, "[worker-3] ")
//	logger.InfoContext(ctx, "cycle finished")
func WithTag(ctx context.Context, tag string) context.Context {
	return context.WithValue(ctx, tagKey{}, tag)
}

// Tag returns the task tag carried by ctx, or "" when none is set.
func Tag(ctx context.Context) string {
	tag, _ := ctx.Value(tagKey{}).(string)
	return tag
}
