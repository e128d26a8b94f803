package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jwtutil "github.com/MdAmzadAli/note-taking-app-sub003/pkg/jwt"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func withClaims(r *http.Request) *http.Request {
	claims := &jwtutil.Claims{UserID: primitive.NewObjectID().Hex(), Role: "user"}
	return r.WithContext(context.WithValue(r.Context(), middleware.UserContextKey, claims))
}

func TestUploadVoiceNoteHandler_MalformedBody(t *testing.T) {
	h := NewTranscriptionHandler(nil, nil, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/transcriptions", strings.NewReader("not a multipart body"))
	req.Header.Set("Content-Type", "text/plain")
	req = withClaims(req)

	rec := httptest.NewRecorder()
	h.UploadVoiceNoteHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadVoiceNoteHandler_Unauthorized(t *testing.T) {
	h := NewTranscriptionHandler(nil, nil, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/transcriptions", nil)
	rec := httptest.NewRecorder()
	h.UploadVoiceNoteHandler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
