// Package user はユーザー情報参照のドメインロジックを提供する。
package user

import (
	"context"
	"log/slog"

	"github.com/mohit429/HasHBackend/internal/model"
	"github.com/mohit429/HasHBackend/internal/repository"
	"github.com/mohit429/HasHBackend/internal/validation"
)

// Service はユーザー情報参照のサービス層。
type Service struct {
	userRepo repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// GetName は指定IDのユーザーの表示名を返す。
// IDの形式が不正な場合も存在しない場合と同じくUserNotFoundを返す。
func (s *Service) GetName(ctx context.Context, id string) (string, error) {
	id, ok := validation.NormalizeID(id)
	if !ok {
		return "", model.NewUserNotFoundError()
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		slog.Error("failed to find user",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
		return "", model.NewInternalError()
	}
	if user == nil {
		return "", model.NewUserNotFoundError()
	}

	return user.Name, nil
}

// GetProfile は操作ユーザー自身のプロフィールを所有記事IDとともに返す。
func (s *Service) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	if !validation.IsID(userID) {
		return nil, model.NewUserNotFoundError()
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		slog.Error("failed to find user",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewInternalError()
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	if user.PostIDs == nil {
		user.PostIDs = []string{}
	}

	return user, nil
}
