package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jtbakery/storefront-backend/internal/chat"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

type fakeChatService struct {
	reply string
	calls int
}

func (f *fakeChatService) Complete(_ context.Context, _ chat.Request) (string, error) {
	f.calls++
	return f.reply, nil
}

func (f *fakeChatService) StartStream(_ context.Context, _ chat.Request) (*chat.Stream, error) {
	f.calls++
	return &chat.Stream{
		Body:        io.NopCloser(strings.NewReader("data: [DONE]\n\n")),
		ContentType: "text/event-stream",
	}, nil
}

func chatTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("error"), Output: io.Discard})
}

func TestChatCompleteRejectsOversizedBody(t *testing.T) {
	t.Parallel()
	svc := &fakeChatService{reply: "hello"}
	handler := ChatComplete(svc, 64, chatTestLogger())

	long := strings.Repeat("x", 512)
	body := `{"messages":[{"role":"user","content":"` + long + `"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if svc.calls != 0 {
		t.Fatalf("upstream called %d times for an oversized body", svc.calls)
	}
}

func TestChatCompleteWithinBodyLimit(t *testing.T) {
	t.Parallel()
	svc := &fakeChatService{reply: "We bake sourdough daily."}
	handler := ChatComplete(svc, 64*1024, chatTestLogger())

	body := `{"messages":[{"role":"user","content":"what do you bake?"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data struct {
			Reply      string `json:"reply"`
			ReplyClean string `json:"replyClean"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Reply != svc.reply {
		t.Fatalf("reply = %q, want %q", envelope.Data.Reply, svc.reply)
	}
}

func TestChatStreamRejectsOversizedBody(t *testing.T) {
	t.Parallel()
	svc := &fakeChatService{}
	handler := ChatStream(svc, 64, chatTestLogger())

	long := strings.Repeat("y", 512)
	body := `{"messages":[{"role":"user","content":"` + long + `"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/stream", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if svc.calls != 0 {
		t.Fatalf("upstream called %d times for an oversized body", svc.calls)
	}
}
