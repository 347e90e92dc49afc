// Package security はブログ記事本文から表示用の安全なHTMLを生成する機能を提供する。
//
// 保存される本文は投稿されたままとし、サニタイズは応答時の表示用フィールドにのみ適用する。
package security

import (
	"net/url"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService は記事入力のサニタイズ機能のインターフェースを定義する。
type ContentSanitizerService interface {
	// Sanitize は記事本文のHTMLを許可リストに従ってサニタイズする。
	// 見出し、段落、リスト、引用、コード、強調、リンク、https画像のみを通過させる。
	Sanitize(rawHTML string) string
}

type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// ポリシーの内容:
//   - 許可タグ: h1-h6, p, br, hr, a, ul, ol, li, blockquote, pre, code, strong, em, img
//   - script, iframe, style および全てのon*イベント属性は除去
//   - imgのsrc属性: httpsスキームのみ許可
//   - aタグ: target="_blank" と rel="noopener noreferrer" を自動付与
func NewContentSanitizer() *contentSanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "hr", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em",
	)

	p.AllowAttrs("href").OnElements("a")
	p.AllowRelativeURLs(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)

	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowURLSchemeWithCustomPolicy("https", func(u *url.URL) bool {
		return true
	})

	return &contentSanitizer{policy: p}
}

// Sanitize は記事本文のHTMLをサニタイズして安全なHTMLを返す。
func (s *contentSanitizer) Sanitize(rawHTML string) string {
	return s.policy.Sanitize(rawHTML)
}
