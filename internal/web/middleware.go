package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhisek/edugenius/internal/llm"
	"github.com/abhisek/edugenius/internal/logger"
	"github.com/abhisek/edugenius/internal/studio"
)

const (
	headerRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
	ctxWorkspace    = "workspace"
	sessionKey      = "workspace_id"
)

// RequestID propagates or assigns an X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(headerRequestID))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Request = c.Request.WithContext(llm.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// RequestLogger logs one line per request.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if id := c.GetString(ctxRequestID); id != "" {
			fields = append(fields, "request_id", id)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

// attachWorkspace binds the session's workspace to the request, creating
// both on first visit.
func (s *Server) attachWorkspace() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		id, _ := sess.Get(sessionKey).(string)
		if id == "" {
			id = uuid.NewString()
			sess.Set(sessionKey, id)
			if err := sess.Save(); err != nil {
				s.log.Error("session save failed", "error", err.Error())
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
		}
		c.Set(ctxWorkspace, s.registry.Get(id))
		c.Next()
	}
}

func workspaceOf(c *gin.Context) *studio.Workspace {
	return c.MustGet(ctxWorkspace).(*studio.Workspace)
}
