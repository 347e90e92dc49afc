// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, post, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvalidID          = "INVALID_ID"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodePostNotFound       = "POST_NOT_FOUND_OR_NOT_OWNER"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// NewValidationError は入力形式エラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  message,
		Category: "validation",
		Action:   "Check the request fields and try again.",
	}
}

// NewInvalidInputsError はリクエスト全体の形式が不正な場合のエラーを生成する。
func NewInvalidInputsError() *APIError {
	return NewValidationError("Incorrect inputs")
}

// NewInvalidIDError はID形式エラーを生成する。
// fieldにはメッセージに表示するフィールド名（UserId, userId, postId等）を渡す。
func NewInvalidIDError(field string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidID,
		Message:  fmt.Sprintf("Invalid %s format", field),
		Category: "validation",
		Action:   "Send an identifier returned by this API.",
	}
}

// NewMissingUserIDError はuserIdが未指定の場合のエラーを生成する。
func NewMissingUserIDError() *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  "UserId is required",
		Category: "validation",
		Action:   "Include userId in the request body.",
	}
}

// NewEmailTakenError はメールアドレス重複エラーを生成する。
func NewEmailTakenError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  "Email already taken",
		Category: "auth",
		Action:   "Sign in or use a different email address.",
	}
}

// NewInvalidCredentialsError は認証情報不一致エラーを生成する。
// 未登録メールとパスワード誤りは区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "Invalid MailId or password !",
		Category: "auth",
		Action:   "Check your email address and password.",
	}
}

// NewUnauthorizedError はトークン欠如・不正時のエラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "Unauthorized",
		Category: "auth",
		Action:   "Sign in and send the token as a Bearer Authorization header.",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "User not found",
		Category: "auth",
		Action:   "Sign in again.",
	}
}

// NewPostNotFoundOrNotOwnerError は記事が存在しない、または操作ユーザーが著者でない場合のエラーを生成する。
// 存在しない記事と他人の記事は同じエラーにする。
func NewPostNotFoundOrNotOwnerError() *APIError {
	return &APIError{
		Code:     ErrCodePostNotFound,
		Message:  "Post not found or user is not the author.",
		Category: "post",
		Action:   "Check the post ID.",
	}
}

// NewInternalError は内部エラーを生成する。
// 詳細はログのみに記録し、クライアントには一般的なメッセージを返す。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "Server error",
		Category: "system",
		Action:   "Please wait and try again.",
	}
}
