package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alnah/go-summary/internal/share"
	"github.com/alnah/go-summary/internal/template"
	"github.com/alnah/go-summary/internal/transcript"
	"github.com/alnah/go-summary/internal/workspace"
)

// SessionCookie names the cookie holding the workspace id.
const SessionCookie = "summary_workspace"

const workspaceKey = "workspace"

// page is the data rendered by index.html.
type page struct {
	workspace.Snapshot
	Notice workspace.Notice
}

// session binds the request to its workspace, creating one when the cookie
// is missing or stale.
func (s *Server) session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(SessionCookie)
		ws := s.store.GetOrCreate(id)
		// Re-issued on every request so the cookie lives as long as the
		// workspace's sliding idle window.
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, ws.ID(), int(s.idleTimeout.Seconds()), "/", "", false, true)
		c.Set(workspaceKey, ws)
		c.Next()
	}
}

func current(c *gin.Context) *workspace.Workspace {
	return c.MustGet(workspaceKey).(*workspace.Workspace)
}

// back finishes a POST with a redirect to the page.
func back(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleIndex(c *gin.Context) {
	ws := current(c)
	c.HTML(http.StatusOK, "index.html", page{
		Snapshot: ws.Snapshot(),
		Notice:   ws.TakeNotice(),
	})
}

func (s *Server) handleUpload(c *gin.Context) {
	ws := current(c)

	fh, err := c.FormFile("transcript")
	if err != nil {
		back(c)
		return
	}
	f, err := fh.Open()
	if err != nil {
		s.logger.Warn("open upload", zap.String("filename", fh.Filename), zap.Error(err))
		back(c)
		return
	}
	defer func() { _ = f.Close() }()

	t, err := transcript.Read(fh.Filename, fh.Header.Get("Content-Type"), f)
	switch {
	case errors.Is(err, transcript.ErrNotText):
		// Non-text files are ignored.
	case err != nil:
		s.logger.Warn("read upload", zap.String("filename", fh.Filename), zap.Error(err))
	default:
		ws.LoadTranscript(t)
	}
	back(c)
}

func (s *Server) handleClearTranscript(c *gin.Context) {
	current(c).ClearTranscript()
	back(c)
}

func (s *Server) handleInstruction(c *gin.Context) {
	current(c).SetInstruction(c.PostForm("instruction"))
	back(c)
}

func (s *Server) handleSelectTemplate(c *gin.Context) {
	if err := current(c).SelectTemplate(c.Param("id")); errors.Is(err, template.ErrUnknown) {
		c.String(http.StatusNotFound, "unknown template %q", c.Param("id"))
		return
	}
	back(c)
}

// handleGenerate starts a generation in the background and returns at once;
// the page shows the busy state until the result is applied.
func (s *Server) handleGenerate(c *gin.Context) {
	ws := current(c)

	if instr, ok := c.GetPostForm("instruction"); ok && instr != ws.Instruction() {
		ws.SetInstruction(instr)
	}

	req, err := ws.BeginGeneration(s.ctx)
	if err != nil {
		back(c)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		text, genErr := s.summarizer.Summarize(req.Context(), req.Summarize())
		if err := ws.Complete(req, text, genErr); err != nil {
			s.logger.Debug("generation discarded", zap.String("request", req.ID()), zap.Error(err))
			return
		}
		if genErr != nil {
			s.logger.Error("summary generation failed", zap.String("request", req.ID()), zap.Error(genErr))
		}
	}()
	back(c)
}

func (s *Server) handleEditSummary(c *gin.Context) {
	_ = current(c).EditSummary(c.PostForm("summary"))
	back(c)
}

func (s *Server) handleShareOpen(c *gin.Context) {
	ws := current(c)
	if summary, ok := c.GetPostForm("summary"); ok {
		_ = ws.EditSummary(summary)
	}
	_ = ws.OpenShare()
	back(c)
}

// updateShare copies the dialog fields posted with every share action.
func updateShare(c *gin.Context, ws *workspace.Workspace) {
	ws.UpdateShare(
		c.PostForm("email"),
		c.DefaultPostForm("subject", share.DefaultSubject),
		c.DefaultPostForm("message", share.DefaultMessage),
	)
}

func (s *Server) handleShareAdd(c *gin.Context) {
	ws := current(c)
	updateShare(c, ws)
	_ = ws.AddRecipient()
	back(c)
}

func (s *Server) handleShareRemove(c *gin.Context) {
	ws := current(c)
	updateShare(c, ws)
	ws.RemoveRecipient(c.PostForm("remove"))
	back(c)
}

// linkOpener leaves opening to the page: the link travels in the notice.
var linkOpener = share.OpenerFunc(func(string) error { return nil })

func (s *Server) handleShareSend(c *gin.Context) {
	ws := current(c)
	updateShare(c, ws)
	if h, err := ws.SendShare(linkOpener); err == nil {
		s.logger.Info("summary handed off", zap.Int("recipients", h.Recipients))
	}
	back(c)
}

func (s *Server) handleShareCancel(c *gin.Context) {
	current(c).CancelShare()
	back(c)
}
