package controllers

import (
	"io"
	"net/http"

	"github.com/jtbakery/storefront-backend/api/responses"
	"github.com/jtbakery/storefront-backend/api/validators"
	"github.com/jtbakery/storefront-backend/internal/chat"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

const defaultChatBodyLimit = 64 * 1024

// ChatComplete proxies one batch completion. The raw reply is returned for
// clients that sanitize themselves; replyClean carries the sanitized form.
// Request bodies are capped at maxBody bytes before decoding.
func ChatComplete(svc chat.Service, maxBody int64, logg *logger.Logger) http.HandlerFunc {
	type completeResponse struct {
		Reply      string `json:"reply"`
		ReplyClean string `json:"replyClean"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		limitChatBody(w, r, maxBody)
		var payload chat.Request
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reply, err := svc.Complete(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, completeResponse{Reply: reply, ReplyClean: chat.Sanitize(reply)})
	}
}

// ChatStream proxies a streaming completion, piping the upstream event
// stream through unmodified so fragments reach the widget in order.
func ChatStream(svc chat.Service, maxBody int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limitChatBody(w, r, maxBody)
		var payload chat.Request
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stream, err := svc.StartStream(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer stream.Body.Close()

		w.Header().Set("Content-Type", stream.ContentType)
		w.Header().Set("Cache-Control", "no-cache, no-transform")
		w.Header().Set("Connection", "keep-alive")

		flusher, _ := w.(http.Flusher)
		buf := make([]byte, 4096)
		for {
			n, readErr := stream.Body.Read(buf)
			if n > 0 {
				if _, writeErr := w.Write(buf[:n]); writeErr != nil {
					return
				}
				if flusher != nil {
					flusher.Flush()
				}
			}
			if readErr != nil {
				if readErr != io.EOF {
					logg.Error(r.Context(), "chat stream interrupted", readErr)
				}
				return
			}
		}
	}
}

func limitChatBody(w http.ResponseWriter, r *http.Request, maxBody int64) {
	if maxBody <= 0 {
		maxBody = defaultChatBodyLimit
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
}
