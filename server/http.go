package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// HTTPHandler serves the MCP endpoint over streamable HTTP at /mcp, next to a /health probe.
func (s *Server) HTTPHandler(recipeCount int) http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"name":    s.opts.Name,
			"version": s.opts.Version,
			"recipes": recipeCount,
			"tools":   len(s.tools.GetTools()),
		})
	})

	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.mcp }, nil)
	router.Any("/mcp", gin.WrapH(mcpHandler))

	return router
}
