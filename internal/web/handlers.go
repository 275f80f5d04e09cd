package web

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/edugenius/internal/content"
	"github.com/abhisek/edugenius/internal/export"
	"github.com/abhisek/edugenius/internal/quiz"
	"github.com/abhisek/edugenius/internal/studio"
)

func (s *Server) healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

type levelOption struct {
	Value    string
	Label    string
	Selected bool
}

type pageView struct {
	Model       string
	Levels      []levelOption
	Form        content.FormInput
	MaxUploadMB int64
	Notice      string
	Error       string
	Loading     bool
	HasResult   bool
	Summary     string
	Questions   []quiz.QuestionView
	Answered    int
}

func (s *Server) index(c *gin.Context) {
	snap := workspaceOf(c).Snapshot()

	v := pageView{
		Model:       s.model(),
		Form:        snap.Form,
		MaxUploadMB: s.intake.Limit() >> 20,
		Notice:      snap.Notice,
		Error:       snap.Error,
		Loading:     snap.Loading,
	}
	for _, l := range content.AllLevels() {
		v.Levels = append(v.Levels, levelOption{
			Value:    string(l),
			Label:    l.DisplayName(),
			Selected: l == snap.Form.Level,
		})
	}
	if r := snap.Result; r != nil {
		v.HasResult = true
		if r.Content.HasSummary() {
			v.Summary = r.Content.Summary
		}
		v.Questions = r.Quiz.View()
		v.Answered = r.Quiz.AnsweredCount()
	}
	c.HTML(http.StatusOK, "page", v)
}

// formFields are the text inputs of the page form. Every form post
// carries them so typed values survive attachment changes.
type formFields struct {
	Level          string `form:"level"`
	Subject        string `form:"subject"`
	Topic          string `form:"topic"`
	Context        string `form:"context"`
	IncludeSummary bool   `form:"includeSummary"`
}

func (s *Server) bindFields(c *gin.Context, ws *studio.Workspace) error {
	var f formFields
	if err := c.ShouldBind(&f); err != nil {
		return err
	}
	level, err := content.ParseLevel(f.Level)
	if err != nil {
		level = content.DefaultLevel
	}
	ws.SetFields(studio.Fields{
		Level:          level,
		Subject:        f.Subject,
		Topic:          f.Topic,
		FreeText:       f.Context,
		IncludeSummary: f.IncludeSummary,
	})
	return nil
}

// offerUploads passes any files of the "files" field through intake.
func (s *Server) offerUploads(c *gin.Context, ws *studio.Workspace) error {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil
		}
		return err
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return nil
	}
	res, err := s.intake.ReadMultipart(headers)
	if err != nil {
		return err
	}
	ws.Offer(res)
	return nil
}

func (s *Server) backToPage(c *gin.Context, anchor string) {
	target := "/"
	if anchor != "" {
		target += "#" + anchor
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (s *Server) addAttachments(c *gin.Context) {
	ws := workspaceOf(c)
	if err := s.bindFields(c, ws); err != nil {
		c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	if err := s.offerUploads(c, ws); err != nil {
		c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	s.backToPage(c, "attachments")
}

func (s *Server) removeAttachment(c *gin.Context) {
	ws := workspaceOf(c)
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	if err := s.bindFields(c, ws); err != nil {
		c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	ws.RemoveAttachment(i)
	s.backToPage(c, "attachments")
}

func (s *Server) generate(c *gin.Context) {
	ws := workspaceOf(c)
	ws.DismissNotice()
	if err := s.bindFields(c, ws); err != nil {
		c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	if err := s.offerUploads(c, ws); err != nil {
		c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	// Failures are recorded on the workspace and rendered by the page.
	if _, err := ws.Submit(c.Request.Context()); err == nil {
		s.backToPage(c, "result")
		return
	}
	s.backToPage(c, "")
}

func questionID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithError(http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}

func (s *Server) answer(c *gin.Context) {
	id, ok := questionID(c)
	if !ok {
		return
	}
	key := strings.TrimSpace(c.PostForm("key"))
	workspaceOf(c).Dispatch(quiz.SelectOption{QuestionID: id, Key: key})
	s.backToPage(c, fmt.Sprintf("q-%d", id))
}

func (s *Server) toggleExplanation(c *gin.Context) {
	id, ok := questionID(c)
	if !ok {
		return
	}
	workspaceOf(c).Dispatch(quiz.ToggleExplanation{QuestionID: id})
	s.backToPage(c, fmt.Sprintf("q-%d", id))
}

func (s *Server) download(c *gin.Context) {
	format, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	snap := workspaceOf(c).Snapshot()
	if snap.Result == nil {
		c.Status(http.StatusNoContent)
		return
	}
	file, err := export.Export(snap.Result.Content, &snap.Result.Meta, format)
	if err != nil {
		s.log.Error("export failed", "format", string(format), "error", err.Error())
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	if file == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	c.Data(http.StatusOK, file.MIMEType, file.Data)
}
