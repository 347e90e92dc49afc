package model

import "time"

// Post はユーザーが所有するブログ記事を表す。
// TitleとContentは投稿された文字列のまま保存する。
// ContentHTMLは応答時にContentから生成する表示用HTMLで、保存しない。
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml"`
	Published   bool      `json:"published"`
	AuthorID    string    `json:"author"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
