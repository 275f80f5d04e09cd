package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/edugenius/internal/content"
	"github.com/abhisek/edugenius/internal/intake"
	"github.com/abhisek/edugenius/internal/modulegen"
	"github.com/abhisek/edugenius/internal/studio"
)

type apiImage struct {
	Name     string `json:"name"`
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

type apiGenerateRequest struct {
	Level          string     `json:"level"`
	Subject        string     `json:"subject" binding:"required"`
	Topic          string     `json:"topic" binding:"required"`
	Context        string     `json:"context"`
	IncludeSummary *bool      `json:"includeSummary"`
	Images         []apiImage `json:"images"`
}

type apiGenerateResponse struct {
	Meta    content.Meta              `json:"meta"`
	Content *content.GeneratedContent `json:"content"`
	Notice  string                    `json:"notice,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

func respondError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, errorEnvelope{Error: apiError{Message: msg, Code: code}})
}

// apiGenerate runs one stateless generation.
func (s *Server) apiGenerate(c *gin.Context) {
	var req apiGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_input", studio.NoticeMissingFields)
		return
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Topic) == "" {
		respondError(c, http.StatusBadRequest, "invalid_input", studio.NoticeMissingFields)
		return
	}

	in := content.NewFormInput()
	if req.Level != "" {
		level, err := content.ParseLevel(req.Level)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid_level", err.Error())
			return
		}
		in.Level = level
	}
	in.Subject = req.Subject
	in.Topic = req.Topic
	in.FreeText = req.Context
	if req.IncludeSummary != nil {
		in.IncludeSummary = *req.IncludeSummary
	}

	files := make([]intake.File, 0, len(req.Images))
	for _, img := range req.Images {
		files = append(files, intake.File{Name: img.Name, DeclaredType: img.MIMEType, Data: img.Data})
	}
	accepted := s.intake.Accept(files)
	in.Attachments = accepted.Accepted

	generated, err := s.gen.Generate(c.Request.Context(), in)
	if err != nil {
		kind := modulegen.Classify(err)
		status := http.StatusInternalServerError
		if kind == modulegen.FailureTransport || kind == modulegen.FailureContract {
			status = http.StatusBadGateway
		}
		c.Error(err)
		respondError(c, status, kind.String(), modulegen.UserMessage(err))
		return
	}

	c.JSON(http.StatusOK, apiGenerateResponse{
		Meta:    in.Meta(),
		Content: generated,
		Notice:  accepted.Notice(),
	})
}
