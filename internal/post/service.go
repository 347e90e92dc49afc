// Package post はブログ記事の作成・更新・削除・検索のドメインロジックを提供する。
//
// 操作ユーザーは認証ミドルウェアが検証したトークンの主体とする。
// リクエストボディのuserIdは形式を検証したうえで主体と照合し、
// 一致しない場合は記事が存在しない場合と同じエラーを返す。
package post

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mohit429/HasHBackend/internal/model"
	"github.com/mohit429/HasHBackend/internal/repository"
	"github.com/mohit429/HasHBackend/internal/validation"
)

// 記事操作の種別
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Sanitizer は記事本文から表示用の安全なHTMLを生成するインターフェース。
type Sanitizer interface {
	Sanitize(rawHTML string) string
}

// MutationRecorder は成功した記事操作を記録するインターフェース。
type MutationRecorder interface {
	RecordPostMutation(op string)
}

// CreateInput は記事作成の入力。
type CreateInput struct {
	UserID  string
	Title   string
	Content string
}

// UpdateInput は記事更新の入力。TitleとContentはnilの場合に既存値を維持する。
type UpdateInput struct {
	UserID  string
	PostID  string
	Title   *string
	Content *string
}

// DeleteInput は記事削除の入力。
type DeleteInput struct {
	UserID string
	PostID string
}

// Service はブログ記事のビジネスロジックを提供する。
type Service struct {
	postRepo  repository.PostRepository
	sanitizer Sanitizer
	recorder  MutationRecorder
	now       func() time.Time
}

// NewService はServiceを生成する。recorderはnilでもよい。
func NewService(postRepo repository.PostRepository, sanitizer Sanitizer, recorder MutationRecorder) *Service {
	return &Service{
		postRepo:  postRepo,
		sanitizer: sanitizer,
		recorder:  recorder,
		now:       time.Now,
	}
}

// Create は操作ユーザーを著者とする記事を作成し、記事IDを返す。
// タイトルと本文は投稿されたまま保存する。
func (s *Service) Create(ctx context.Context, actorID string, input CreateInput) (string, error) {
	if input.UserID == "" {
		return "", model.NewMissingUserIDError()
	}
	userID, ok := validation.NormalizeID(input.UserID)
	if !ok {
		return "", model.NewInvalidIDError("UserId")
	}

	if isBlank(input.Title) || isBlank(input.Content) {
		return "", model.NewValidationError("Title and content are required")
	}

	if userID != actorID {
		return "", model.NewUserNotFoundError()
	}

	now := s.now()
	post := &model.Post{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Content:   input.Content,
		Published: true,
		AuthorID:  userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.postRepo.CreateForAuthor(ctx, post); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", model.NewUserNotFoundError()
		}
		slog.Error("failed to create post",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return "", model.NewInternalError()
	}

	s.record(OpCreate)
	slog.Info("post created",
		slog.String("user_id", post.AuthorID),
		slog.String("post_id", post.ID),
	)
	return post.ID, nil
}

// Update は操作ユーザーが著者である記事を更新し、更新後の記事を返す。
// 更新された記事は公開状態になる。
func (s *Service) Update(ctx context.Context, actorID string, input UpdateInput) (*model.Post, error) {
	userID, postID, err := ownedTarget(input.UserID, input.PostID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil && isBlank(*input.Title) {
		return nil, model.NewValidationError("Title must not be empty")
	}
	if input.Content != nil && isBlank(*input.Content) {
		return nil, model.NewValidationError("Content must not be empty")
	}

	if userID != actorID {
		return nil, model.NewPostNotFoundOrNotOwnerError()
	}

	post, err := s.postRepo.UpdateOwned(ctx, postID, userID, input.Title, input.Content)
	if err != nil {
		slog.Error("failed to update post",
			slog.String("user_id", userID),
			slog.String("post_id", postID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewInternalError()
	}
	if post == nil {
		return nil, model.NewPostNotFoundOrNotOwnerError()
	}

	s.record(OpUpdate)
	return s.render(post), nil
}

// Delete は操作ユーザーが著者である記事を削除し、削除した記事を返す。
func (s *Service) Delete(ctx context.Context, actorID string, input DeleteInput) (*model.Post, error) {
	userID, postID, err := ownedTarget(input.UserID, input.PostID)
	if err != nil {
		return nil, err
	}

	if userID != actorID {
		return nil, model.NewPostNotFoundOrNotOwnerError()
	}

	post, err := s.postRepo.DeleteOwned(ctx, postID, userID)
	if err != nil {
		slog.Error("failed to delete post",
			slog.String("user_id", userID),
			slog.String("post_id", postID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewInternalError()
	}
	if post == nil {
		return nil, model.NewPostNotFoundOrNotOwnerError()
	}

	s.record(OpDelete)
	slog.Info("post deleted",
		slog.String("user_id", userID),
		slog.String("post_id", post.ID),
	)
	return s.render(post), nil
}

// List はタイトルまたは本文にfilterを含む記事を返す。filterが空の場合は全件を返す。
func (s *Service) List(ctx context.Context, filter string) ([]*model.Post, error) {
	posts, err := s.postRepo.Search(ctx, filter)
	if err != nil {
		slog.Error("failed to search posts", slog.String("error", err.Error()))
		return nil, model.NewInternalError()
	}
	if posts == nil {
		posts = []*model.Post{}
	}
	for _, p := range posts {
		s.render(p)
	}
	return posts, nil
}

// ownedTarget は更新・削除対象を指すIDを検証し、正規形にして返す。
func ownedTarget(userID, postID string) (string, string, error) {
	if userID == "" {
		return "", "", model.NewMissingUserIDError()
	}
	uid, ok := validation.NormalizeID(userID)
	if !ok {
		return "", "", model.NewInvalidIDError("userId")
	}
	pid, ok := validation.NormalizeID(postID)
	if !ok {
		return "", "", model.NewInvalidIDError("postId")
	}
	return uid, pid, nil
}

// render は本文から表示用HTMLを生成する。保存された本文は変更しない。
func (s *Service) render(p *model.Post) *model.Post {
	p.ContentHTML = s.sanitizer.Sanitize(p.Content)
	return p
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (s *Service) record(op string) {
	if s.recorder != nil {
		s.recorder.RecordPostMutation(op)
	}
}
