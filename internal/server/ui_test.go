package server_test

// Notes:
// - Every UI action is POST-redirect-GET; assertions read the workspace
//   through the store and the rendered page
// - Generation runs in the background; srv.Wait() joins it

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alnah/go-summary/internal/server"
	"github.com/alnah/go-summary/internal/share"
	"github.com/alnah/go-summary/internal/summarize"
	"github.com/alnah/go-summary/internal/template"
	"github.com/alnah/go-summary/internal/workspace"
)

func workspaceOf(t *testing.T, srv *server.Server, b *browser) *workspace.Workspace {
	t.Helper()
	if b.cookie == nil {
		t.Fatal("no session cookie")
	}
	ws, err := srv.Store().Get(b.cookie.Value)
	if err != nil {
		t.Fatalf("Store.Get: %v", err)
	}
	return ws
}

func TestIndex_CreatesSession(t *testing.T) {
	t.Parallel()

	srv := server.New(&mockSummarizer{}, nil)
	b := newBrowser(t, srv)

	rec := b.get("/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if b.cookie == nil || !b.cookie.HttpOnly {
		t.Fatalf("session cookie = %+v", b.cookie)
	}
	body := rec.Body.String()
	for _, want := range []string{"Upload Transcript", "Ready to Generate", "Executive Summary", "Action Items"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}

	b.get("/")
	if srv.Store().Len() != 1 {
		t.Errorf("Store.Len() = %d, want one workspace per session", srv.Store().Len())
	}
}

func TestSession_CookieRefreshedOnEveryRequest(t *testing.T) {
	t.Parallel()

	srv := server.New(&mockSummarizer{}, nil)
	b := newBrowser(t, srv)
	b.get("/")
	first := b.cookie
	if first == nil {
		t.Fatal("no session cookie issued")
	}

	rec := b.get("/")
	var refreshed *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == server.SessionCookie {
			refreshed = c
		}
	}
	if refreshed == nil {
		t.Fatal("returning request did not refresh the session cookie")
	}
	if refreshed.Value != first.Value {
		t.Errorf("cookie value = %q, want %q", refreshed.Value, first.Value)
	}
	if refreshed.MaxAge <= 0 {
		t.Errorf("MaxAge = %d, want the idle window", refreshed.MaxAge)
	}
}

func TestUpload(t *testing.T) {
	t.Parallel()

	srv := server.New(&mockSummarizer{}, nil)
	b := newBrowser(t, srv)
	b.get("/")

	b.upload("standup.txt", "text/plain", "Alice: done\nBob: blocked")
	ws := workspaceOf(t, srv, b)
	if got := ws.Transcript(); got.Filename != "standup.txt" || got.Content != "Alice: done\nBob: blocked" {
		t.Errorf("Transcript() = %+v", got)
	}

	page := b.get("/").Body.String()
	if !strings.Contains(page, "Transcript Loaded") || !strings.Contains(page, "standup.txt (24 bytes)") {
		t.Error("page does not show loaded transcript")
	}

	b.post("/transcript/clear", nil)
	if ws.Step() != 1 {
		t.Errorf("Step() = %d after clear, want 1", ws.Step())
	}
}

func TestUpload_NonTextIgnored(t *testing.T) {
	t.Parallel()

	srv := server.New(&mockSummarizer{}, nil)
	b := newBrowser(t, srv)
	b.get("/")

	b.upload("slides.pdf", "application/pdf", "%PDF-1.7")
	if ws := workspaceOf(t, srv, b); ws.Transcript().Content != "" {
		t.Error("non-text upload was loaded")
	}
}

func TestSelectTemplate(t *testing.T) {
	t.Parallel()

	srv := server.New(&mockSummarizer{}, nil)
	b := newBrowser(t, srv)
	b.get("/")

	b.post("/instruction", url.Values{"instruction": {"foo"}})
	b.post("/template/"+template.ActionItems, nil)

	ws := workspaceOf(t, srv, b)
	if ws.Instruction() != template.ActionItemsName.Prompt() {
		t.Errorf("Instruction() = %q, want preset prompt", ws.Instruction())
	}
	if !strings.Contains(b.get("/").Body.String(), `class="card selected"`) {
		t.Error("selected template not highlighted")
	}
}

func TestSelectTemplate_Unknown(t *testing.T) {
	t.Parallel()

	srv := server.New(&mockSummarizer{}, nil)
	b := newBrowser(t, srv)
	b.get("/")

	rec := b.do(httptest.NewRequest(http.MethodPost, "/template/weekly", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	mock := &mockSummarizer{text: "- shipped\n- blocked on review"}
	srv := server.New(mock, nil)
	defer srv.Close()
	b := newBrowser(t, srv)
	b.get("/")

	b.upload("notes.txt", "text/plain", "Meeting notes...")
	b.post("/generate", url.Values{"instruction": {"Summarize in 3 bullets"}})
	srv.Wait()

	ws := workspaceOf(t, srv, b)
	if ws.Generating() {
		t.Error("still generating after Wait")
	}
	if ws.Summary() != "- shipped\n- blocked on review" {
		t.Errorf("Summary() = %q", ws.Summary())
	}
	if p := mock.LastRequest().UserPrompt; p == nil || *p != "Summarize in 3 bullets" {
		t.Errorf("instruction sent = %v", p)
	}

	page := b.get("/").Body.String()
	if !strings.Contains(page, "6 words") {
		t.Error("page does not show word count")
	}
}

func TestEditSummary_BadgeSurvivesRegenerate(t *testing.T) {
	t.Parallel()

	mock := &mockSummarizer{text: "- shipped"}
	srv := server.New(mock, nil)
	defer srv.Close()
	b := newBrowser(t, srv)
	b.get("/")

	b.upload("notes.txt", "text/plain", "Meeting notes...")
	b.post("/generate", url.Values{"instruction": {"Summarize in 3 bullets"}})
	srv.Wait()
	if strings.Contains(b.get("/").Body.String(), `id="edited-badge"`) {
		t.Fatal("fresh summary shows the edited badge")
	}

	b.post("/summary", url.Values{"summary": {"- shipped on Friday"}})
	b.post("/generate", url.Values{"instruction": {"Summarize in 3 bullets"}})
	srv.Wait()

	if !strings.Contains(b.get("/").Body.String(), `id="edited-badge"`) {
		t.Error("edited badge missing after regenerating an edited summary")
	}
}

func TestGenerate_WithoutInstructionIsRefused(t *testing.T) {
	t.Parallel()

	mock := &mockSummarizer{text: "x"}
	srv := server.New(mock, nil)
	b := newBrowser(t, srv)
	b.get("/")

	b.upload("notes.txt", "text/plain", "text")
	b.post("/generate", url.Values{"instruction": {"  "}})
	srv.Wait()

	if mock.CallCount() != 0 {
		t.Error("provider called without instruction")
	}
}

func TestGenerate_FailureShowsToast(t *testing.T) {
	t.Parallel()

	srv := server.New(&mockSummarizer{err: errors.New("boom")}, nil)
	b := newBrowser(t, srv)
	b.get("/")

	b.upload("notes.txt", "text/plain", "text")
	b.post("/generate", url.Values{"instruction": {"bullets"}})
	srv.Wait()

	page := b.get("/").Body.String()
	if !strings.Contains(page, workspace.GenerateFailedMessage) {
		t.Error("failure toast not rendered")
	}
	if strings.Contains(b.get("/").Body.String(), workspace.GenerateFailedMessage) {
		t.Error("toast rendered twice")
	}
}

func TestShareFlow(t *testing.T) {
	t.Parallel()

	srv := server.New(&mockSummarizer{text: "- point"}, nil)
	b := newBrowser(t, srv)
	b.get("/")

	b.upload("notes.txt", "text/plain", "text")
	b.post("/generate", url.Values{"instruction": {"bullets"}})
	srv.Wait()

	b.post("/share/open", url.Values{"summary": {"- point edited"}})
	form := url.Values{"subject": {share.DefaultSubject}, "message": {share.DefaultMessage}}

	form.Set("email", "a@b.co")
	b.post("/share/recipients", form)
	b.post("/share/recipients", form)
	form.Set("email", "c@d.io")
	b.post("/share/recipients", form)

	ws := workspaceOf(t, srv, b)
	if got := ws.Snapshot().Share.Recipients; len(got) != 2 {
		t.Fatalf("recipients = %v, want 2 distinct", got)
	}

	form.Set("email", "")
	form.Set("remove", "c@d.io")
	b.post("/share/recipients/remove", form)
	form.Del("remove")

	b.post("/share/send", form)

	page := b.get("/").Body.String()
	if !strings.Contains(page, "Summary sent to 1 recipient") {
		t.Error("success toast missing")
	}
	link := share.ComposeURL([]string{"a@b.co"}, share.DefaultSubject, share.Body(share.DefaultMessage, "- point edited"))
	if !strings.Contains(page, strings.ReplaceAll(link, "&", "&amp;")) {
		t.Errorf("compose link not rendered; want %s", link)
	}
	if ws.Snapshot().Share.Open {
		t.Error("dialog still open after send")
	}
}

func TestShareSend_NoRecipients(t *testing.T) {
	t.Parallel()

	srv := server.New(&mockSummarizer{}, nil)
	b := newBrowser(t, srv)
	b.get("/")

	b.post("/share/open", nil)
	b.post("/share/send", url.Values{"subject": {"s"}, "message": {"m"}})

	page := b.get("/").Body.String()
	if !strings.Contains(page, "No recipients, Please add atleast one email address") {
		t.Error("validation toast missing")
	}
	if strings.Contains(page, "compose-link") {
		t.Error("link rendered without recipients")
	}
	if !workspaceOf(t, srv, b).Snapshot().Share.Open {
		t.Error("dialog closed on validation failure")
	}
}

func TestShareCancel(t *testing.T) {
	t.Parallel()

	srv := server.New(&mockSummarizer{}, nil)
	b := newBrowser(t, srv)
	b.get("/")

	b.post("/share/open", nil)
	b.post("/share/recipients", url.Values{"email": {"a@b.co"}, "subject": {"changed"}})
	b.post("/share/cancel", nil)

	snap := workspaceOf(t, srv, b).Snapshot().Share
	if snap.Open || len(snap.Recipients) != 0 || snap.Subject != share.DefaultSubject {
		t.Errorf("share after cancel = %+v", snap)
	}
}

func TestClose_CancelsBackgroundGeneration(t *testing.T) {
	t.Parallel()

	blocked := make(chan struct{})
	s := summarizeFunc(func(ctx context.Context, _ summarize.Request) (string, error) {
		close(blocked)
		<-ctx.Done()
		return "", ctx.Err()
	})
	srv := server.New(s, nil)
	b := newBrowser(t, srv)
	b.get("/")

	b.upload("notes.txt", "text/plain", "text")
	b.post("/generate", url.Values{"instruction": {"bullets"}})
	<-blocked

	srv.Close()
	ws := workspaceOf(t, srv, b)
	if ws.Generating() {
		t.Error("generation still pending after Close")
	}
	if n := ws.TakeNotice(); !n.IsError() {
		t.Errorf("notice = %+v, want error", n)
	}
}

type summarizeFunc func(context.Context, summarize.Request) (string, error)

func (f summarizeFunc) Summarize(ctx context.Context, req summarize.Request) (string, error) {
	return f(ctx, req)
}
