package http

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/presensi-hr/hris-backend-go/internal/handler/http/response"
	"github.com/presensi-hr/hris-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Token(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	jwtService  jwt.Service
	operatorKey string
}

func NewAuthHandler(jwtService jwt.Service, operatorKey string) AuthHandler {
	return &authHandlerImpl{
		jwtService:  jwtService,
		operatorKey: operatorKey,
	}
}

type tokenRequest struct {
	APIKey string `json:"api_key"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

// Token exchanges the configured operator API key for a short-lived access
// token. There are no user accounts here; the HR suite's own auth lives
// elsewhere.
func (h *authHandlerImpl) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(h.operatorKey)) != 1 {
		response.Unauthorized(w, "invalid operator key")
		return
	}

	token, expiresAt, err := h.jwtService.GenerateAccessToken("operator")
	if err != nil {
		slog.Error("Failed to generate access token", "error", err)
		response.InternalServerError(w, "Failed to generate token")
		return
	}

	response.Success(w, tokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	})
}
