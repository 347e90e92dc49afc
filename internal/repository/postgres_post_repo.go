package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mohit429/HasHBackend/internal/model"
)

const postColumns = `id, author_id, title, content, published, created_at, updated_at`

// PostgresPostRepo はPostgreSQLを使用したブログ記事リポジトリ。
type PostgresPostRepo struct {
	db *sql.DB
}

// NewPostgresPostRepo はPostgresPostRepoを生成する。
func NewPostgresPostRepo(db *sql.DB) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

// CreateForAuthor は著者行を共有ロックしたうえで記事を作成する。
// ロックにより記事作成と著者削除が競合しても孤立した記事は生じない。
func (r *PostgresPostRepo) CreateForAuthor(ctx context.Context, post *model.Post) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	var authorID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM users WHERE id = $1 FOR SHARE`,
		post.AuthorID,
	).Scan(&authorID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("著者が存在しません: %w", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("著者の取得に失敗しました: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO posts (`+postColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		post.ID, post.AuthorID, post.Title, post.Content, post.Published, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("記事の作成に失敗しました: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミットに失敗しました: %w", err)
	}
	return nil
}

// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
func (r *PostgresPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("記事の取得に失敗しました: %w", err)
	}
	return post, nil
}

// UpdateOwned は著者が一致する記事を更新する。nilのフィールドは既存値を維持する。
// 更新された記事は常にpublished=trueになる。
func (r *PostgresPostRepo) UpdateOwned(ctx context.Context, postID, authorID string, title, content *string) (*model.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx,
		`UPDATE posts
		 SET title = COALESCE($3, title),
		     content = COALESCE($4, content),
		     published = true,
		     updated_at = now()
		 WHERE id = $1 AND author_id = $2
		 RETURNING `+postColumns,
		postID, authorID, nullableString(title), nullableString(content),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("記事の更新に失敗しました: %w", err)
	}
	return post, nil
}

// DeleteOwned は著者が一致する記事を削除し、削除前の内容を返す。
func (r *PostgresPostRepo) DeleteOwned(ctx context.Context, postID, authorID string) (*model.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx,
		`DELETE FROM posts WHERE id = $1 AND author_id = $2
		 RETURNING `+postColumns,
		postID, authorID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("記事の削除に失敗しました: %w", err)
	}
	return post, nil
}

// Search はタイトルまたは本文にfilterを含む記事を作成順に返す。
// filter中の%と_はワイルドカードではなく文字として扱う。
func (r *PostgresPostRepo) Search(ctx context.Context, filter string) ([]*model.Post, error) {
	pattern := "%" + escapeLike(filter) + "%"

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts
		 WHERE title ILIKE $1 ESCAPE '\' OR content ILIKE $1 ESCAPE '\'
		 ORDER BY created_at, id`,
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("記事の検索に失敗しました: %w", err)
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("記事の読み取りに失敗しました: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("記事の走査に失敗しました: %w", err)
	}
	return posts, nil
}

// rowScanner は*sql.Rowと*sql.Rowsの共通インターフェース。
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*model.Post, error) {
	post := &model.Post{}
	if err := row.Scan(
		&post.ID, &post.AuthorID, &post.Title, &post.Content,
		&post.Published, &post.CreatedAt, &post.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return post, nil
}

// likeEscaper はLIKEパターンの特殊文字をエスケープする。
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// nullableString はnilをSQLのNULLに変換する。
func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// compile-time interface check
var _ PostRepository = (*PostgresPostRepo)(nil)
