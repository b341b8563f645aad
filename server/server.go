// Package server exposes the tool registry to chat hosts over the Model Context Protocol.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"cocktails"
	"cocktails/tools"
)

// subjectMetaKey carries the host's stable id for the calling user.
const subjectMetaKey = "openai/subject"

// Options configures a Server. Zero values fall back to no-op logging and telemetry.
type Options struct {
	Name          string
	Version       string
	WidgetBaseURL string
	Logger        cocktails.InvocationLogger
	Tracer        trace.Tracer
	Meter         metric.Meter
}

// Server serves registry tools and the recipe card widget over MCP.
type Server struct {
	tools   cocktails.ToolProvider
	opts    Options
	mcp     *mcp.Server
	metrics *toolMetrics
}

// New builds an MCP server exposing every tool of tp.
func New(tp cocktails.ToolProvider, opts Options) (*Server, error) {
	if opts.Name == "" {
		opts.Name = "cocktail-recipes"
	}
	if opts.Version == "" {
		opts.Version = "0.1.0"
	}
	if opts.Logger == nil {
		opts.Logger = cocktails.NewNoOpInvocationLogger()
	}
	if opts.Tracer == nil {
		opts.Tracer = tracenoop.NewTracerProvider().Tracer(cocktails.TracerNameServer)
	}
	if opts.Meter == nil {
		opts.Meter = metricnoop.NewMeterProvider().Meter(cocktails.TracerNameServer)
	}

	metrics, err := newToolMetrics(opts.Meter)
	if err != nil {
		return nil, fmt.Errorf("create tool metrics: %w", err)
	}

	s := &Server{
		tools:   tp,
		opts:    opts,
		mcp:     mcp.NewServer(&mcp.Implementation{Name: opts.Name, Version: opts.Version}, nil),
		metrics: metrics,
	}

	for _, t := range tp.GetTools() {
		s.mcp.AddTool(s.describe(t), s.handler(t.Name()))
	}
	if err := s.addWidget(); err != nil {
		return nil, err
	}

	metrics.toolsAvailable.Record(context.Background(), int64(len(tp.GetTools())))
	return s, nil
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *mcp.Server { return s.mcp }

// RunStdio serves a single host over stdin/stdout until ctx is done or the host disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) describe(t tools.Tool) *mcp.Tool {
	desc := &mcp.Tool{
		Name:        t.Name(),
		Title:       t.Title(),
		Description: t.Description(),
		InputSchema: t.InputSchema(),
	}
	if out := t.OutputSchema(); out != nil {
		desc.OutputSchema = out
	}
	if t.Name() == "get-recipe" {
		desc.Meta = mcp.Meta{
			outputTemplateKey:                WidgetURI,
			"openai/widgetAccessible":        true,
			"openai/toolInvocation/invoking": "Mixing a cocktail",
			"openai/toolInvocation/invoked":  "Served a cocktail",
		}
	}
	return desc
}

func (s *Server) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var input map[string]any
		if req.Params != nil && len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &input); err != nil {
				return toCallToolResult(tools.ErrorResult("Invalid arguments for %s: %v", name, err)), nil
			}
		}

		result, err := s.Call(tools.WithUser(ctx, userOf(req)), name, input)
		if err != nil {
			return toCallToolResult(tools.ErrorResult("%v", err)), nil
		}
		return toCallToolResult(result), nil
	}
}

// Call runs a registry tool with tracing, metrics and invocation logging. A tool that fails outright
// returns an error; a tool that reports a user-facing failure returns a result with IsError set.
func (s *Server) Call(ctx context.Context, name string, input map[string]any) (*tools.Result, error) {
	ctx, span := s.opts.Tracer.Start(ctx, "tool."+name, trace.WithAttributes(
		attribute.String("tool.name", name),
	))
	defer span.End()

	toolAttr := metric.WithAttributes(attribute.String("tool", name))
	s.metrics.calls.Add(ctx, 1, toolAttr)

	entry := cocktails.InvocationLog{
		ID:        uuid.NewString(),
		Tool:      name,
		User:      tools.UserFrom(ctx),
		Timestamp: time.Now(),
		Input:     input,
	}
	start := time.Now()

	result, err := s.run(ctx, name, input)

	elapsed := time.Since(start)
	s.metrics.duration.Record(ctx, elapsed.Seconds(), toolAttr)
	entry.DurationMS = elapsed.Milliseconds()

	switch {
	case err != nil:
		s.metrics.failed.Add(ctx, 1, toolAttr)
		span.SetStatus(codes.Error, "tool failed")
		span.RecordError(err)
		entry.IsError = true
		entry.Error = err.Error()
		slog.Error("TOOL: Call failed", "tool", name, "id", entry.ID, "error", err)
	case result.IsError:
		s.metrics.failed.Add(ctx, 1, toolAttr)
		span.SetAttributes(attribute.Bool("tool.is_error", true))
		entry.IsError = true
		entry.Text = result.Text
		slog.Info("TOOL: Call returned error result", "tool", name, "id", entry.ID, "text", result.Text)
	default:
		entry.Text = result.Text
		slog.Info("TOOL: Call completed", "tool", name, "id", entry.ID, "duration", elapsed)
	}

	if logErr := s.opts.Logger.LogInvocation(entry); logErr != nil {
		slog.Error("TOOL: Failed to log invocation", "tool", name, "error", logErr)
	}
	return result, err
}

func (s *Server) run(ctx context.Context, name string, input map[string]any) (*tools.Result, error) {
	t, err := s.tools.GetTool(name)
	if err != nil {
		return nil, err
	}
	return t.Run(ctx, input)
}

func userOf(req *mcp.CallToolRequest) string {
	if req.Params != nil {
		if subject, ok := req.Params.Meta[subjectMetaKey].(string); ok && subject != "" {
			return subject
		}
	}
	if req.Session != nil {
		return req.Session.ID()
	}
	return ""
}

func toCallToolResult(r *tools.Result) *mcp.CallToolResult {
	out := &mcp.CallToolResult{IsError: r.IsError}
	for _, text := range r.Text {
		out.Content = append(out.Content, &mcp.TextContent{Text: text})
	}
	if r.Structured != nil {
		out.StructuredContent = r.Structured
	}
	return out
}
