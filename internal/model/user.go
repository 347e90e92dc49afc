// Package model はドメインモデルを定義する。
package model

import "time"

// User はブログの著者となるユーザーを表す。
// PostIDsはpostsテーブルのauthor_idから導出され、独立して保存されない。
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	PostIDs      []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
