package handler

import (
	"context"
	"net/http"

	"github.com/mohit429/HasHBackend/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// GetName は指定IDのユーザーの表示名を返す。
	GetName(ctx context.Context, id string) (string, error)
	// GetProfile は操作ユーザー自身のプロフィールを返す。
	GetProfile(ctx context.Context, userID string) (*model.User, error)
}

// UserHandler はユーザー情報参照のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

type nameRequest struct {
	ID string `json:"id"`
}

type nameResponse struct {
	Name string `json:"name"`
}

type profileResponse struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Posts []string `json:"posts"`
}

// GetName は著者IDから表示名を返す。
// POST /api/v1/namewithauthId
func (h *UserHandler) GetName(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	name, err := h.service.GetName(r.Context(), req.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nameResponse{Name: name})
}

// Me は操作ユーザー自身のプロフィールと所有記事IDを返す。
// GET /api/v1/user/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Posts: user.PostIDs,
	})
}
