package handler

import (
	"context"

	"github.com/mohit429/HasHBackend/internal/auth"
	"github.com/mohit429/HasHBackend/internal/model"
	"github.com/mohit429/HasHBackend/internal/post"
)

// --- モック定義 ---

type mockAuthService struct {
	signupFn func(ctx context.Context, input auth.SignupInput) (*auth.Result, error)
	signinFn func(ctx context.Context, input auth.SigninInput) (*auth.Result, error)
}

func (m *mockAuthService) Signup(ctx context.Context, input auth.SignupInput) (*auth.Result, error) {
	if m.signupFn != nil {
		return m.signupFn(ctx, input)
	}
	return &auth.Result{}, nil
}

func (m *mockAuthService) Signin(ctx context.Context, input auth.SigninInput) (*auth.Result, error) {
	if m.signinFn != nil {
		return m.signinFn(ctx, input)
	}
	return &auth.Result{}, nil
}

type mockPostService struct {
	createFn func(ctx context.Context, actorID string, input post.CreateInput) (string, error)
	updateFn func(ctx context.Context, actorID string, input post.UpdateInput) (*model.Post, error)
	deleteFn func(ctx context.Context, actorID string, input post.DeleteInput) (*model.Post, error)
	listFn   func(ctx context.Context, filter string) ([]*model.Post, error)
}

func (m *mockPostService) Create(ctx context.Context, actorID string, input post.CreateInput) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, actorID, input)
	}
	return "", nil
}

func (m *mockPostService) Update(ctx context.Context, actorID string, input post.UpdateInput) (*model.Post, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, actorID, input)
	}
	return &model.Post{}, nil
}

func (m *mockPostService) Delete(ctx context.Context, actorID string, input post.DeleteInput) (*model.Post, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, actorID, input)
	}
	return &model.Post{}, nil
}

func (m *mockPostService) List(ctx context.Context, filter string) ([]*model.Post, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

type mockUserService struct {
	getNameFn    func(ctx context.Context, id string) (string, error)
	getProfileFn func(ctx context.Context, userID string) (*model.User, error)
}

func (m *mockUserService) GetName(ctx context.Context, id string) (string, error) {
	if m.getNameFn != nil {
		return m.getNameFn(ctx, id)
	}
	return "", nil
}

func (m *mockUserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(ctx, userID)
	}
	return &model.User{ID: userID}, nil
}

// mockVerifier は"valid-<userID>"形式のトークンを受け入れる。
type mockVerifier struct{}

func (mockVerifier) Verify(token string) (string, error) {
	const prefix = "valid-"
	if len(token) > len(prefix) && token[:len(prefix)] == prefix {
		return token[len(prefix):], nil
	}
	return "", auth.ErrInvalidToken
}

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(context.Context) error {
	return m.err
}
