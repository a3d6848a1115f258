package model

import "time"

// User 用户账号及体测档案
// 体测字段是规则引擎在无法从上下文解析时的回退来源
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Age          int       `gorm:"default:0" json:"age,omitempty"`
	Weight       float64   `gorm:"default:0" json:"weight,omitempty"` // kg
	Gender       string    `gorm:"size:20" json:"gender,omitempty"`
	Experience   string    `gorm:"size:50" json:"experience,omitempty"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AuthToken 已签发的令牌记录，刷新流程据此判断撤销
type AuthToken struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:36" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;type:text" json:"token"`
	TokenType string    `gorm:"size:20" json:"token_type"` // access_token, refresh_token
	IsRevoked bool      `gorm:"default:false" json:"is_revoked"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

func (AuthToken) TableName() string {
	return "auth_tokens"
}
