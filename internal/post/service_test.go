package post

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mohit429/HasHBackend/internal/model"
	"github.com/mohit429/HasHBackend/internal/repository"
	"github.com/mohit429/HasHBackend/internal/security"
)

const (
	aliceID = "11111111-1111-4111-8111-111111111111"
	bobID   = "22222222-2222-4222-8222-222222222222"
	ghostID = "99999999-9999-4999-8999-999999999999"
)

// --- モック定義 ---

// memoryPostRepo はPostRepositoryのインメモリ実装。
// 著者IDで絞り込む更新・削除の挙動をPostgreSQL実装と揃える。
type memoryPostRepo struct {
	users map[string]bool
	posts []*model.Post
	err   error
}

func newMemoryPostRepo(userIDs ...string) *memoryPostRepo {
	users := map[string]bool{}
	for _, id := range userIDs {
		users[id] = true
	}
	return &memoryPostRepo{users: users}
}

func (m *memoryPostRepo) CreateForAuthor(_ context.Context, p *model.Post) error {
	if m.err != nil {
		return m.err
	}
	if !m.users[p.AuthorID] {
		return fmt.Errorf("author missing: %w", repository.ErrNotFound)
	}
	cp := *p
	m.posts = append(m.posts, &cp)
	return nil
}

func (m *memoryPostRepo) FindByID(_ context.Context, id string) (*model.Post, error) {
	for _, p := range m.posts {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memoryPostRepo) UpdateOwned(_ context.Context, postID, authorID string, title, content *string) (*model.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.posts {
		if p.ID == postID && p.AuthorID == authorID {
			if title != nil {
				p.Title = *title
			}
			if content != nil {
				p.Content = *content
			}
			p.Published = true
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memoryPostRepo) DeleteOwned(_ context.Context, postID, authorID string) (*model.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i, p := range m.posts {
		if p.ID == postID && p.AuthorID == authorID {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return p, nil
		}
	}
	return nil, nil
}

func (m *memoryPostRepo) Search(_ context.Context, filter string) ([]*model.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*model.Post
	f := strings.ToLower(filter)
	for _, p := range m.posts {
		if strings.Contains(strings.ToLower(p.Title), f) || strings.Contains(strings.ToLower(p.Content), f) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type mockRecorder struct {
	ops []string
}

func (m *mockRecorder) RecordPostMutation(op string) {
	m.ops = append(m.ops, op)
}

func newTestService(repo *memoryPostRepo) (*Service, *mockRecorder) {
	rec := &mockRecorder{}
	return NewService(repo, security.NewContentSanitizer(), rec), rec
}

func assertAPIError(t *testing.T, err error, code, message string) {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %T (%v)", err, err)
	}
	if apiErr.Code != code {
		t.Errorf("Code = %q, want %q", apiErr.Code, code)
	}
	if message != "" && apiErr.Message != message {
		t.Errorf("Message = %q, want %q", apiErr.Message, message)
	}
}

func strPtr(s string) *string { return &s }

// --- Create ---

func TestService_Create_Success(t *testing.T) {
	repo := newMemoryPostRepo(aliceID)
	svc, rec := newTestService(repo)

	postID, err := svc.Create(context.Background(), aliceID, CreateInput{
		UserID:  aliceID,
		Title:   "Hello",
		Content: "<p>World</p>",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, _ := repo.FindByID(context.Background(), postID)
	if got == nil {
		t.Fatal("created post not found")
	}
	// 作成後の記事の著者は指定したuserIdと一致する
	if got.AuthorID != aliceID {
		t.Errorf("AuthorID = %q, want %q", got.AuthorID, aliceID)
	}
	if !got.Published {
		t.Error("new posts should be published")
	}
	if got.Title != "Hello" || got.Content != "<p>World</p>" {
		t.Errorf("post = %+v", got)
	}
	if len(rec.ops) != 1 || rec.ops[0] != OpCreate {
		t.Errorf("ops = %v", rec.ops)
	}
}

// タイトルと本文は投稿された文字列のまま保存され、検索対象になること
func TestService_Create_StoresTextVerbatim(t *testing.T) {
	repo := newMemoryPostRepo(aliceID)
	svc, _ := newTestService(repo)

	title := "&lt;script&gt;alert(1)&lt;/script&gt; Tom & Jerry"
	content := `Tom & Jerry it's "fun" <3`
	postID, err := svc.Create(context.Background(), aliceID, CreateInput{
		UserID:  aliceID,
		Title:   title,
		Content: content,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, _ := repo.FindByID(context.Background(), postID)
	if got.Title != title {
		t.Errorf("Title = %q, want %q", got.Title, title)
	}
	if got.Content != content {
		t.Errorf("Content = %q, want %q", got.Content, content)
	}

	found, err := svc.List(context.Background(), "jerry it's")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(found) != 1 || found[0].ID != postID {
		t.Fatalf("List(jerry it's) = %v, want [%s]", found, postID)
	}
	if found[0].Content != content {
		t.Errorf("listed Content = %q, want %q", found[0].Content, content)
	}
}

// 応答の表示用HTMLはサニタイズされ、保存された本文は変わらないこと
func TestService_RendersContentHTML(t *testing.T) {
	repo := newMemoryPostRepo(aliceID)
	svc, _ := newTestService(repo)

	raw := `<p onclick="x()">body</p><script>alert(1)</script>`
	postID := seedPost(t, svc, aliceID, "title", raw)

	posts, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	html := posts[0].ContentHTML
	if !strings.Contains(html, "<p>body</p>") {
		t.Errorf("ContentHTML = %q, want allowed markup kept", html)
	}
	if strings.Contains(html, "script") || strings.Contains(html, "onclick") {
		t.Errorf("ContentHTML not sanitized: %q", html)
	}

	stored, _ := repo.FindByID(context.Background(), postID)
	if stored.Content != raw {
		t.Errorf("stored Content = %q, want %q", stored.Content, raw)
	}
	if stored.ContentHTML != "" {
		t.Errorf("stored ContentHTML = %q, want empty", stored.ContentHTML)
	}
}

// 大文字のUUIDで指定された自分のIDも同じユーザーとして扱うこと
func TestService_AcceptsUppercaseIDs(t *testing.T) {
	repo := newMemoryPostRepo(aliceID)
	svc, _ := newTestService(repo)
	upperAlice := strings.ToUpper(aliceID)

	postID, err := svc.Create(context.Background(), aliceID, CreateInput{UserID: upperAlice, Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	got, _ := repo.FindByID(context.Background(), postID)
	if got.AuthorID != aliceID {
		t.Errorf("AuthorID = %q, want canonical %q", got.AuthorID, aliceID)
	}

	updated, err := svc.Update(context.Background(), aliceID, UpdateInput{
		UserID: upperAlice,
		PostID: strings.ToUpper(postID),
		Title:  strPtr("renamed"),
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Title != "renamed" {
		t.Errorf("Title = %q, want %q", updated.Title, "renamed")
	}

	deleted, err := svc.Delete(context.Background(), aliceID, DeleteInput{UserID: upperAlice, PostID: strings.ToUpper(postID)})
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if deleted.ID != postID {
		t.Errorf("deleted ID = %q, want %q", deleted.ID, postID)
	}
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateInput
		code    string
		message string
	}{
		{"userIdなし", CreateInput{Title: "t", Content: "c"}, model.ErrCodeValidation, "UserId is required"},
		{"userId形式不正", CreateInput{UserID: "123", Title: "t", Content: "c"}, model.ErrCodeInvalidID, "Invalid UserId format"},
		{"タイトルなし", CreateInput{UserID: aliceID, Content: "c"}, model.ErrCodeValidation, ""},
		{"本文なし", CreateInput{UserID: aliceID, Title: "t"}, model.ErrCodeValidation, ""},
		{"タイトルが空白のみ", CreateInput{UserID: aliceID, Title: "   ", Content: "c"}, model.ErrCodeValidation, "Title and content are required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryPostRepo(aliceID)
			svc, rec := newTestService(repo)

			_, err := svc.Create(context.Background(), aliceID, tt.input)
			assertAPIError(t, err, tt.code, tt.message)
			if len(repo.posts) != 0 {
				t.Error("no post should be created")
			}
			if len(rec.ops) != 0 {
				t.Errorf("ops = %v, want none", rec.ops)
			}
		})
	}
}

func TestService_Create_UserNotFound(t *testing.T) {
	t.Run("トークンの主体と異なるuserId", func(t *testing.T) {
		repo := newMemoryPostRepo(aliceID, bobID)
		svc, _ := newTestService(repo)

		_, err := svc.Create(context.Background(), aliceID, CreateInput{UserID: bobID, Title: "t", Content: "c"})
		assertAPIError(t, err, model.ErrCodeUserNotFound, "User not found")
		if len(repo.posts) != 0 {
			t.Error("no post should be created for another user")
		}
	})

	t.Run("存在しないユーザー", func(t *testing.T) {
		repo := newMemoryPostRepo()
		svc, _ := newTestService(repo)

		_, err := svc.Create(context.Background(), ghostID, CreateInput{UserID: ghostID, Title: "t", Content: "c"})
		assertAPIError(t, err, model.ErrCodeUserNotFound, "User not found")
	})
}

func TestService_Create_RepositoryFailure(t *testing.T) {
	repo := newMemoryPostRepo(aliceID)
	repo.err = errors.New("connection reset")
	svc, _ := newTestService(repo)

	_, err := svc.Create(context.Background(), aliceID, CreateInput{UserID: aliceID, Title: "t", Content: "c"})
	assertAPIError(t, err, model.ErrCodeInternal, "Server error")
}

// --- Update ---

func seedPost(t *testing.T, svc *Service, authorID, title, content string) string {
	t.Helper()
	id, err := svc.Create(context.Background(), authorID, CreateInput{UserID: authorID, Title: title, Content: content})
	if err != nil {
		t.Fatalf("seed Create error: %v", err)
	}
	return id
}

func TestService_Update_Success(t *testing.T) {
	repo := newMemoryPostRepo(aliceID)
	svc, rec := newTestService(repo)
	postID := seedPost(t, svc, aliceID, "old", "old body")
	repo.posts[0].Published = false

	got, err := svc.Update(context.Background(), aliceID, UpdateInput{
		UserID: aliceID,
		PostID: postID,
		Title:  strPtr("new"),
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Title != "new" {
		t.Errorf("Title = %q, want %q", got.Title, "new")
	}
	if got.Content != "old body" {
		t.Errorf("Content = %q, want unchanged %q", got.Content, "old body")
	}
	if !got.Published {
		t.Error("updated post should be published")
	}
	if rec.ops[len(rec.ops)-1] != OpUpdate {
		t.Errorf("ops = %v", rec.ops)
	}
}

func TestService_Update_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   UpdateInput
		code    string
		message string
	}{
		{"userIdなし", UpdateInput{PostID: ghostID}, model.ErrCodeValidation, "UserId is required"},
		{"userId形式不正", UpdateInput{UserID: "123", PostID: ghostID}, model.ErrCodeInvalidID, "Invalid userId format"},
		{"postId形式不正", UpdateInput{UserID: aliceID, PostID: "abc"}, model.ErrCodeInvalidID, "Invalid postId format"},
		{"postIdなし", UpdateInput{UserID: aliceID}, model.ErrCodeInvalidID, "Invalid postId format"},
		{"空のタイトル", UpdateInput{UserID: aliceID, PostID: ghostID, Title: strPtr("  ")}, model.ErrCodeValidation, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(newMemoryPostRepo(aliceID))
			_, err := svc.Update(context.Background(), aliceID, tt.input)
			assertAPIError(t, err, tt.code, tt.message)
		})
	}
}

// 他人の記事の更新と存在しない記事の更新は区別できないこと
func TestService_Update_NotOwnerIndistinguishableFromMissing(t *testing.T) {
	repo := newMemoryPostRepo(aliceID, bobID)
	svc, _ := newTestService(repo)
	postID := seedPost(t, svc, aliceID, "mine", "body")

	_, errNotOwner := svc.Update(context.Background(), bobID, UpdateInput{UserID: bobID, PostID: postID, Title: strPtr("x")})
	_, errMissing := svc.Update(context.Background(), bobID, UpdateInput{UserID: bobID, PostID: ghostID, Title: strPtr("x")})
	_, errSpoofed := svc.Update(context.Background(), bobID, UpdateInput{UserID: aliceID, PostID: postID, Title: strPtr("x")})

	for _, err := range []error{errNotOwner, errMissing, errSpoofed} {
		assertAPIError(t, err, model.ErrCodePostNotFound, "Post not found or user is not the author.")
	}
	if errNotOwner.Error() != errMissing.Error() || errMissing.Error() != errSpoofed.Error() {
		t.Errorf("errors differ: %v / %v / %v", errNotOwner, errMissing, errSpoofed)
	}

	got, _ := repo.FindByID(context.Background(), postID)
	if got.Title != "mine" {
		t.Errorf("post should be unchanged, got title %q", got.Title)
	}
}

// --- Delete ---

func TestService_Delete_Success(t *testing.T) {
	repo := newMemoryPostRepo(aliceID)
	svc, rec := newTestService(repo)
	postID := seedPost(t, svc, aliceID, "bye", "body")

	deleted, err := svc.Delete(context.Background(), aliceID, DeleteInput{UserID: aliceID, PostID: postID})
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if deleted.ID != postID {
		t.Errorf("deleted ID = %q, want %q", deleted.ID, postID)
	}

	// 削除後は取得できない
	if got, _ := repo.FindByID(context.Background(), postID); got != nil {
		t.Error("post should be gone after delete")
	}
	if rec.ops[len(rec.ops)-1] != OpDelete {
		t.Errorf("ops = %v", rec.ops)
	}
}

func TestService_Delete_NotOwnerIndistinguishableFromMissing(t *testing.T) {
	repo := newMemoryPostRepo(aliceID, bobID)
	svc, _ := newTestService(repo)
	postID := seedPost(t, svc, aliceID, "mine", "body")

	_, errNotOwner := svc.Delete(context.Background(), bobID, DeleteInput{UserID: bobID, PostID: postID})
	_, errMissing := svc.Delete(context.Background(), bobID, DeleteInput{UserID: bobID, PostID: ghostID})

	assertAPIError(t, errNotOwner, model.ErrCodePostNotFound, "")
	assertAPIError(t, errMissing, model.ErrCodePostNotFound, "")
	if errNotOwner.Error() != errMissing.Error() {
		t.Errorf("errors differ: %v / %v", errNotOwner, errMissing)
	}
	if got, _ := repo.FindByID(context.Background(), postID); got == nil {
		t.Error("post must survive a non-owner delete")
	}
}

func TestService_Delete_Validation(t *testing.T) {
	svc, _ := newTestService(newMemoryPostRepo(aliceID))

	_, err := svc.Delete(context.Background(), aliceID, DeleteInput{UserID: "123", PostID: ghostID})
	assertAPIError(t, err, model.ErrCodeInvalidID, "Invalid userId format")

	_, err = svc.Delete(context.Background(), aliceID, DeleteInput{UserID: aliceID, PostID: "123"})
	assertAPIError(t, err, model.ErrCodeInvalidID, "Invalid postId format")
}

func TestService_Delete_RepositoryFailure(t *testing.T) {
	repo := newMemoryPostRepo(aliceID)
	repo.err = errors.New("boom")
	svc, _ := newTestService(repo)

	_, err := svc.Delete(context.Background(), aliceID, DeleteInput{UserID: aliceID, PostID: ghostID})
	assertAPIError(t, err, model.ErrCodeInternal, "")
}

// --- List ---

func TestService_List(t *testing.T) {
	repo := newMemoryPostRepo(aliceID)
	svc, _ := newTestService(repo)
	seedPost(t, svc, aliceID, "Hello there", "first")
	seedPost(t, svc, aliceID, "Second", "say HELLO")
	seedPost(t, svc, aliceID, "Third", "nothing")

	tests := []struct {
		filter string
		want   int
	}{
		{"", 3},
		{"hello", 2},
		{"HELLO", 2},
		{"missing", 0},
	}

	for _, tt := range tests {
		t.Run("filter="+tt.filter, func(t *testing.T) {
			got, err := svc.List(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("List error: %v", err)
			}
			if got == nil {
				t.Fatal("List should return a non-nil slice")
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestService_List_RepositoryFailure(t *testing.T) {
	repo := newMemoryPostRepo()
	repo.err = errors.New("timeout")
	svc, _ := newTestService(repo)

	_, err := svc.List(context.Background(), "")
	assertAPIError(t, err, model.ErrCodeInternal, "")
}
