// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/mohit429/HasHBackend/internal/model"
)

var (
	// ErrNotFound は参照先のレコードが存在しないことを表す。
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate は一意制約違反を表す。
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成する。メールアドレスが重複する場合はErrDuplicateを返す。
	Create(ctx context.Context, user *model.User) error

	// FindByID は指定IDのユーザーを所有記事IDとともに取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// PostRepository は記事データの永続化インターフェース。
// 更新・削除は記事IDと著者IDの両方で絞り込み、所有者以外の操作を一致なしとして扱う。
type PostRepository interface {
	// CreateForAuthor は著者の存在を確認したうえで記事を同一トランザクションで作成する。
	// 著者が存在しない場合はErrNotFoundを返す。
	CreateForAuthor(ctx context.Context, post *model.Post) error

	// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
	// APIからは呼ばれず、削除後に記事が取得できないことをテストで確認するために使う。
	FindByID(ctx context.Context, id string) (*model.Post, error)

	// UpdateOwned は著者が一致する記事のタイトル・本文を更新し、published=trueにする。
	// nilのフィールドは変更しない。一致する記事がない場合はnilを返す。
	UpdateOwned(ctx context.Context, postID, authorID string, title, content *string) (*model.Post, error)

	// DeleteOwned は著者が一致する記事を削除し、削除した記事を返す。
	// 一致する記事がない場合はnilを返す。
	DeleteOwned(ctx context.Context, postID, authorID string) (*model.Post, error)

	// Search はタイトルまたは本文に部分一致（大文字小文字を区別しない）する記事を作成順に返す。
	// filterが空の場合は全件を返す。
	Search(ctx context.Context, filter string) ([]*model.Post, error)
}
