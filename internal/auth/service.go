// Package auth はユーザー登録・サインインとトークンの発行・検証を提供する。
package auth

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

// 認証イベント名
const (
	EventSignup = "signup"
	EventSignin = "signin"
)

// 認証イベントの結果
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// TokenIssuer はトークン発行のインターフェース。
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// Hasher はパスワードハッシュのインターフェース。
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

// EventRecorder は認証イベントを記録するインターフェース。
type EventRecorder interface {
	RecordAuthEvent(event, outcome string)
}

// SignupInput はユーザー登録の入力。
type SignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SigninInput はサインインの入力。
type SigninInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Result は登録・サインイン成功時に返すトークンとユーザーID。
type Result struct {
	Token  string
	UserID string
}

// Service はユーザー登録とサインインのビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	hasher   Hasher
	tokens   TokenIssuer
	recorder EventRecorder
	now      func() time.Time
}

// NewService はServiceを生成する。recorderはnilでもよい。
func NewService(userRepo repository.UserRepository, hasher Hasher, tokens TokenIssuer, recorder EventRecorder) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		recorder: recorder,
		now:      time.Now,
	}
}

// Signup はユーザーを登録し、新しいユーザーに紐づくトークンを発行する。
func (s *Service) Signup(ctx context.Context, input SignupInput) (result *Result, err error) {
	defer func() { s.record(EventSignup, err) }()

	input.Email = normalizeEmail(input.Email)
	if err := validation.Struct(input); err != nil {
		return nil, model.NewInvalidInputsError()
	}

	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		slog.Error("failed to look up user by email", slog.String("error", err.Error()))
		return nil, model.NewInternalError()
	}
	if existing != nil {
		return nil, model.NewEmailTakenError()
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		slog.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, model.NewInternalError()
	}

	now := s.now()
	user := &model.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// FindByEmailと作成の間に同じメールアドレスが登録された場合
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.NewEmailTakenError()
		}
		slog.Error("failed to create user", slog.String("error", err.Error()))
		return nil, model.NewInternalError()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		slog.Error("failed to issue token",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewInternalError()
	}

	slog.Info("user signed up", slog.String("user_id", user.ID))
	return &Result{Token: token, UserID: user.ID}, nil
}

// Signin はメールアドレスとパスワードを照合し、トークンを発行する。
// 未登録メールとパスワード誤りは同じエラーを返す。
func (s *Service) Signin(ctx context.Context, input SigninInput) (result *Result, err error) {
	defer func() { s.record(EventSignin, err) }()

	input.Email = normalizeEmail(input.Email)
	if err := validation.Struct(input); err != nil {
		return nil, model.NewInvalidInputsError()
	}

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		slog.Error("failed to look up user by email", slog.String("error", err.Error()))
		return nil, model.NewInternalError()
	}
	if user == nil {
		return nil, model.NewInvalidCredentialsError()
	}

	ok, err := s.hasher.Compare(user.PasswordHash, input.Password)
	if err != nil {
		slog.Error("failed to compare password",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewInternalError()
	}
	if !ok {
		return nil, model.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		slog.Error("failed to issue token",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewInternalError()
	}

	return &Result{Token: token, UserID: user.ID}, nil
}

func (s *Service) record(event string, err error) {
	if s.recorder == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	s.recorder.RecordAuthEvent(event, outcome)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
