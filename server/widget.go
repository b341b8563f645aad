package server

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// WidgetURI is where the host fetches the recipe card template from.
	WidgetURI = "ui://widget/cocktail-card.html"

	// WidgetMIMEType marks the template as an embeddable widget for the host.
	WidgetMIMEType = "text/html+skybridge"

	outputTemplateKey = "openai/outputTemplate"
)

//go:embed widget/cocktail-card.html
var widgetSource string

var widgetTemplate = template.Must(template.New("cocktail-card").Parse(widgetSource))

// RenderWidget fills the card template with the URL its script and stylesheet are served from.
func RenderWidget(baseURL string) (string, error) {
	var buf bytes.Buffer
	err := widgetTemplate.Execute(&buf, struct{ BaseURL string }{BaseURL: strings.TrimSuffix(baseURL, "/")})
	if err != nil {
		return "", fmt.Errorf("render widget: %w", err)
	}
	return buf.String(), nil
}

func (s *Server) addWidget() error {
	html, err := RenderWidget(s.opts.WidgetBaseURL)
	if err != nil {
		return err
	}

	s.mcp.AddResource(&mcp.Resource{
		URI:         WidgetURI,
		Name:        "cocktail-card",
		Description: "Interactive recipe card shown for get-recipe results.",
		MIMEType:    WidgetMIMEType,
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      WidgetURI,
				MIMEType: WidgetMIMEType,
				Text:     html,
			}},
		}, nil
	})
	return nil
}
