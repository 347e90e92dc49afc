package handler

import (
	"context"
	"net/http"

	"github.com/mohit429/HasHBackend/internal/model"
	"github.com/mohit429/HasHBackend/internal/post"
)

// PostServiceInterface は記事ハンドラーが必要とするサービスインターフェース。
type PostServiceInterface interface {
	Create(ctx context.Context, actorID string, input post.CreateInput) (string, error)
	Update(ctx context.Context, actorID string, input post.UpdateInput) (*model.Post, error)
	Delete(ctx context.Context, actorID string, input post.DeleteInput) (*model.Post, error)
	List(ctx context.Context, filter string) ([]*model.Post, error)
}

// PostHandler はブログ記事のHTTPハンドラー。
type PostHandler struct {
	service PostServiceInterface
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(service PostServiceInterface) *PostHandler {
	return &PostHandler{service: service}
}

type createPostRequest struct {
	UserID  string `json:"userId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// updatePostRequest のTitleとContentは省略時に既存値を維持する。
type updatePostRequest struct {
	UserID  string  `json:"userId"`
	PostID  string  `json:"postId"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type deletePostRequest struct {
	UserID string `json:"userId"`
	PostID string `json:"postId"`
}

type createPostResponse struct {
	Message string `json:"message"`
	PostID  string `json:"postId"`
}

type postMutationResponse struct {
	Message string      `json:"message"`
	Post    *model.Post `json:"post"`
}

type postListResponse struct {
	Posts []*model.Post `json:"posts"`
}

// Create は記事作成を処理する。
// POST /api/v1/blog
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	var req createPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	postID, err := h.service.Create(r.Context(), actor, post.CreateInput{
		UserID:  req.UserID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, createPostResponse{
		Message: "Post created successfully!",
		PostID:  postID,
	})
}

// Update は記事更新を処理する。
// POST /api/v1/Updateblog
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	var req updatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.service.Update(r.Context(), actor, post.UpdateInput{
		UserID:  req.UserID,
		PostID:  req.PostID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, postMutationResponse{
		Message: "Post Updated Successfully!",
		Post:    updated,
	})
}

// Delete は記事削除を処理する。
// DELETE /api/v1/deleteblog
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	var req deletePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	deleted, err := h.service.Delete(r.Context(), actor, post.DeleteInput{
		UserID: req.UserID,
		PostID: req.PostID,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, postMutationResponse{
		Message: "Post deleted successfully!",
		Post:    deleted,
	})
}

// List は記事の一覧・検索を処理する。
// GET /api/v1/blog/bulk?filter=
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if posts == nil {
		posts = []*model.Post{}
	}

	writeJSON(w, http.StatusOK, postListResponse{Posts: posts})
}
