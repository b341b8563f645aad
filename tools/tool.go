package tools

import (
	"context"
	"fmt"
	"math"
	"reflect"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/mitchellh/mapstructure"
)

type Tool interface {
	Name() string
	Title() string
	Description() string
	InputSchema() *jsonschema.Schema
	OutputSchema() *jsonschema.Schema
	Run(ctx context.Context, input map[string]any) (*Result, error)
}

// Result is what a tool hands back to the host: text lines for the model, an optional structured payload
// for the widget, and whether the call failed.
type Result struct {
	Text       []string `json:"text"`
	Structured any      `json:"structured,omitempty"`
	IsError    bool     `json:"is_error,omitempty"`
}

// ErrorResult reports a failure the caller should see instead of a payload.
func ErrorResult(format string, args ...any) *Result {
	return &Result{Text: []string{fmt.Sprintf(format, args...)}, IsError: true}
}

// Call is a tool invocation addressed by name, as received outside an MCP session.
type Call struct {
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
	User  string         `json:"user,omitempty"`
}

type userKey struct{}

// AnonymousUser owns preferences when the host does not identify the caller.
const AnonymousUser = "anonymous"

// WithUser attaches the calling user's id to ctx.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFrom returns the calling user's id, or AnonymousUser.
func UserFrom(ctx context.Context) string {
	if u, ok := ctx.Value(userKey{}).(string); ok && u != "" {
		return u
	}
	return AnonymousUser
}

func decodeInput(tool string, input map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     out,
		TagName:    "json",
		DecodeHook: rejectFractionalInts,
	})
	if err != nil {
		return fmt.Errorf("create %s input decoder: %w", tool, err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("invalid %s input: %w", tool, err)
	}
	return nil
}

// rejectFractionalInts stops mapstructure from truncating a JSON number like 1.5 into an int field.
func rejectFractionalInts(from, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	if from.Kind() != reflect.Float32 && from.Kind() != reflect.Float64 {
		return data, nil
	}
	f := reflect.ValueOf(data).Float()
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not a whole number", f)
	}
	return data, nil
}
