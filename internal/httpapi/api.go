// Package httpapi serves the editor's tools over HTTP with gin.
//
// Routes:
//
//	GET  /healthz      liveness
//	GET  /tools        tool definitions, as in MCP tools/list
//	POST /tools/:name  run a tool; the body is its JSON arguments
//
// Results and error kinds are the same as over MCP. All tool calls are
// serialized through one mutex because the editor is single-threaded.
package httpapi

import (
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/photo-edit-mcp/internal/server"
)

type api struct {
	mu  sync.Mutex
	srv *server.Server
}

// NewRouter builds the gin engine for srv.
func NewRouter(srv *server.Server, log logrus.FieldLogger) *gin.Engine {
	a := &api{srv: srv}

	router := gin.New()
	router.Use(LoggingMiddleware(log))
	router.Use(gin.CustomRecovery(HandlePanics(log)))

	router.GET("/healthz", a.health)
	tools := router.Group("/tools")
	{
		tools.GET("", a.listTools)
		tools.POST("/:name", a.callTool)
	}
	return router
}

func (a *api) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *api) listTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": server.ToolDefinitions()})
}

func (a *api) callTool(c *gin.Context) {
	name := c.Param("name")
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, server.ToolError{Kind: "invalid_parameter", Detail: err.Error()})
		return
	}

	a.mu.Lock()
	result, err := a.srv.Call(name, body)
	a.mu.Unlock()

	if err != nil {
		kind := server.ErrorKind(err)
		c.JSON(StatusFor(kind), server.ToolError{Kind: kind, Detail: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// StatusFor maps an error kind to an HTTP status.
func StatusFor(kind string) int {
	switch kind {
	case "invalid_parameter":
		return http.StatusBadRequest
	case "unknown_tool":
		return http.StatusNotFound
	case "no_image", "no_source":
		return http.StatusConflict
	case "decode", "encode":
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
