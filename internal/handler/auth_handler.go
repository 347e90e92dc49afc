package handler

import (
	"context"
	"net/http"

	"github.com/mohit429/HasHBackend/internal/auth"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Signup はユーザーを登録しトークンを発行する。
	Signup(ctx context.Context, input auth.SignupInput) (*auth.Result, error)
	// Signin は認証情報を照合しトークンを発行する。
	Signin(ctx context.Context, input auth.SigninInput) (*auth.Result, error)
}

// AuthHandler はユーザー登録・サインインのHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

type signupResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  string `json:"userId"`
}

type signinResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Signup はユーザー登録を処理する。
// POST /api/v1/user/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req auth.SignupInput
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.Signup(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, signupResponse{
		Message: "User created successfully",
		Token:   result.Token,
		UserID:  result.UserID,
	})
}

// Signin はサインインを処理する。
// POST /api/v1/user/signin
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req auth.SigninInput
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.Signin(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, signinResponse{
		Token:  result.Token,
		UserID: result.UserID,
	})
}
