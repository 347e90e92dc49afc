// Package validation はリクエスト入力の形式検証を提供する。
// 構造体のvalidateタグをgo-playground/validatorで検証する。
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// validate はプロセス共有のvalidatorを返す。
// validator.Validateは構造体情報をキャッシュするため1つを使い回す。
func validate() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
	})
	return instance
}

// FieldError は検証に失敗した1フィールドを表す。
type FieldError struct {
	Field string
	Tag   string
}

// Errors は検証に失敗したフィールドの一覧。
type Errors []FieldError

// Error はerrorインターフェースを実装する。
func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fmt.Sprintf("%s:%s", fe.Field, fe.Tag)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Struct はvalidateタグに従って構造体を検証する。
// 失敗時はErrorsを返す。
func Struct(v any) error {
	err := validate().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate: %w", err)
	}

	out := make(Errors, len(verrs))
	for i, fe := range verrs {
		out[i] = FieldError{Field: fe.Field(), Tag: fe.Tag()}
	}
	return out
}

// IsID は文字列がこのAPIの発行する識別子（UUID）形式かどうかを判定する。
// 英字の大文字小文字は区別しない。
func IsID(s string) bool {
	_, ok := NormalizeID(s)
	return ok
}

// NormalizeID は識別子をハイフン区切り・小文字の正規形に変換する。
// 発行済みの識別子と比較する前に必ず通すこと。形式が不正な場合はfalseを返す。
func NormalizeID(s string) (string, bool) {
	if len(s) != 36 {
		return "", false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
