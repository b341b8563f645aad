package server

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	should "github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"cocktails"
	"cocktails/catalog"
	"cocktails/prefs"
	"cocktails/tools"
)

type recordingLogger struct {
	mu      sync.Mutex
	entries []cocktails.InvocationLog
}

func (l *recordingLogger) LogInvocation(entry cocktails.InvocationLog) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return nil
}

func newTestServer(t *testing.T, opts Options) (*Server, *tools.Registry) {
	t.Helper()
	c, err := catalog.Default()
	must.NoError(t, err)
	registry, err := tools.NewRegistry(c, prefs.NewMemoryStore())
	must.NoError(t, err)
	s, err := New(registry, opts)
	must.NoError(t, err)
	return s, registry
}

func callRaw(t *testing.T, s *Server, name, args string) *mcp.CallToolResult {
	t.Helper()
	req := &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{Name: name}}
	if args != "" {
		req.Params.Arguments = json.RawMessage(args)
	}
	result, err := s.handler(name)(context.Background(), req)
	must.NoError(t, err)
	return result
}

func texts(r *mcp.CallToolResult) []string {
	var out []string
	for _, c := range r.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			out = append(out, tc.Text)
		}
	}
	return out
}

func TestHandler(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	t.Run("get-recipe end to end", func(t *testing.T) {
		result := callRaw(t, s, "get-recipe", `{"name":"Old-Fashioned"}`)
		should.False(t, result.IsError)

		out, ok := result.StructuredContent.(tools.GetRecipeOutput)
		must.True(t, ok)
		should.Equal(t, "Old Fashioned", out.Cocktail.Name)
		should.Len(t, out.AvailableCocktails, 2)

		lines := texts(result)
		must.Len(t, lines, 2)
		should.Contains(t, lines[0], "Old Fashioned")
		should.Equal(t, tools.RecipeCardNote, lines[1])
	})

	t.Run("get-recipe without arguments", func(t *testing.T) {
		result := callRaw(t, s, "get-recipe", "")
		should.False(t, result.IsError)
		should.Equal(t, "old_fashioned", result.StructuredContent.(tools.GetRecipeOutput).Cocktail.ID)
	})

	t.Run("get-recipe not found", func(t *testing.T) {
		result := callRaw(t, s, "get-recipe", `{"name":"not-a-real-drink"}`)
		should.True(t, result.IsError)
		should.Nil(t, result.StructuredContent)
		must.Len(t, texts(result), 1)
		should.Contains(t, texts(result)[0], "not-a-real-drink")
	})

	t.Run("list-recipes", func(t *testing.T) {
		result := callRaw(t, s, "list-recipes", `{}`)
		should.False(t, result.IsError)
		should.Nil(t, result.StructuredContent)
		must.Len(t, texts(result), 1)
		should.Contains(t, texts(result)[0], "• Negroni — ")
	})

	t.Run("malformed arguments", func(t *testing.T) {
		result := callRaw(t, s, "get-recipe", `{"name":`)
		should.True(t, result.IsError)
		should.Contains(t, texts(result)[0], "Invalid arguments for get-recipe")
	})

	t.Run("wrong argument type", func(t *testing.T) {
		result := callRaw(t, s, "get-recipe", `{"name":7}`)
		should.True(t, result.IsError)
		should.Contains(t, texts(result)[0], "invalid get-recipe input")
	})

	t.Run("preference follows the host subject", func(t *testing.T) {
		set := &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{
			Name:      "set-unit-preference",
			Meta:      mcp.Meta{subjectMetaKey: "user-1"},
			Arguments: json.RawMessage(`{"unit":"ml"}`),
		}}
		result, err := s.handler("set-unit-preference")(context.Background(), set)
		must.NoError(t, err)
		must.False(t, result.IsError)

		format := &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{
			Name:      "format-recipe",
			Meta:      mcp.Meta{subjectMetaKey: "user-1"},
			Arguments: json.RawMessage(`{"name":"negroni"}`),
		}}
		result, err = s.handler("format-recipe")(context.Background(), format)
		must.NoError(t, err)
		should.Equal(t, "Negroni (x1, ml):", texts(result)[0])

		other := callRaw(t, s, "format-recipe", `{"name":"negroni"}`)
		should.Equal(t, "Negroni (x1, oz):", texts(other)[0])
	})
}

func TestCall_Instrumentation(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	logger := &recordingLogger{}

	s, _ := newTestServer(t, Options{
		Logger: logger,
		Tracer: tracerProvider.Tracer(cocktails.TracerNameServer),
		Meter:  meterProvider.Meter(cocktails.TracerNameServer),
	})

	ctx := tools.WithUser(context.Background(), "dana")
	_, err := s.Call(ctx, "get-recipe", map[string]any{"name": "negroni"})
	must.NoError(t, err)
	result, err := s.Call(ctx, "get-recipe", map[string]any{"name": "mojito"})
	must.NoError(t, err)
	should.True(t, result.IsError)
	_, err = s.Call(ctx, "shake-drink", nil)
	should.EqualError(t, err, `tool "shake-drink" not found in registry`)

	t.Run("spans", func(t *testing.T) {
		ended := spans.Ended()
		must.Len(t, ended, 3)
		should.Equal(t, "tool.get-recipe", ended[0].Name())
		should.Equal(t, "tool.shake-drink", ended[2].Name())
	})

	t.Run("invocation log", func(t *testing.T) {
		must.Len(t, logger.entries, 3)
		should.NotEmpty(t, logger.entries[0].ID)
		should.Equal(t, "dana", logger.entries[0].User)
		should.False(t, logger.entries[0].IsError)
		should.True(t, logger.entries[1].IsError)
		should.Equal(t, `tool "shake-drink" not found in registry`, logger.entries[2].Error)
	})

	t.Run("metrics", func(t *testing.T) {
		var rm metricdata.ResourceMetrics
		must.NoError(t, reader.Collect(context.Background(), &rm))

		sums := map[string]int64{}
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
					for _, dp := range sum.DataPoints {
						sums[m.Name] += dp.Value
					}
				}
			}
		}
		should.Equal(t, int64(3), sums["tool_calls_total"])
		should.Equal(t, int64(2), sums["tool_calls_failed_total"])
	})
}

func TestServer_InMemoryClient(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	ctx := context.Background()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := s.MCP().Connect(ctx, serverTransport, nil)
	must.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	must.NoError(t, err)
	defer session.Close()

	t.Run("lists registry tools", func(t *testing.T) {
		list, err := session.ListTools(ctx, &mcp.ListToolsParams{})
		must.NoError(t, err)

		var names []string
		for _, tool := range list.Tools {
			names = append(names, tool.Name)
			if tool.Name == "get-recipe" {
				should.Equal(t, WidgetURI, tool.Meta[outputTemplateKey])
			}
		}
		should.ElementsMatch(t, []string{"get-recipe", "list-recipes", "format-recipe", "set-unit-preference"}, names)
	})

	t.Run("calls get-recipe", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "get-recipe",
			Arguments: map[string]any{"name": "Old-Fashioned"},
		})
		must.NoError(t, err)
		should.False(t, result.IsError)

		payload, ok := result.StructuredContent.(map[string]any)
		must.True(t, ok)
		cocktail := payload["cocktail"].(map[string]any)
		should.Equal(t, "Old Fashioned", cocktail["name"])
	})

	t.Run("reads the widget", func(t *testing.T) {
		res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: WidgetURI})
		must.NoError(t, err)
		must.Len(t, res.Contents, 1)
		should.Equal(t, WidgetMIMEType, res.Contents[0].MIMEType)
		should.Contains(t, res.Contents[0].Text, "cocktail-card-root")
	})
}

func TestRenderWidget(t *testing.T) {
	html, err := RenderWidget("https://cdn.example.com/cards/")
	must.NoError(t, err)
	should.Contains(t, html, `src="https://cdn.example.com/cards/cocktail-card.js"`)
	should.Contains(t, html, `href="https://cdn.example.com/cards/cocktail-card.css"`)
}
