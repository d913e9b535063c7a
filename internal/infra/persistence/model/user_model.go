// Package model holds the GORM persistence models. Case-insensitive uniqueness
// is enforced through normalized *_key columns carrying unique indexes.
package model

import "time"

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID             int64   `gorm:"primaryKey;autoIncrement"`
	ExternalAuthID string  `gorm:"type:varchar(128);uniqueIndex;not null"`
	Username       string  `gorm:"type:varchar(50);not null"`
	UsernameKey    string  `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email          string  `gorm:"type:varchar(255);not null"`
	EmailKey       string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Role           string  `gorm:"type:varchar(16);not null;default:user"`
	DisplayName    *string `gorm:"type:varchar(100)"`
	Bio            *string `gorm:"type:text"`
	Avatar         *string `gorm:"type:text"`
	CreatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// CreatorApplicationModel mirrors the 'creator_applications' table. UserID is
// unique: a user applies once.
type CreatorApplicationModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"uniqueIndex;not null"`
	Status    string `gorm:"type:varchar(16);not null;default:pending"`
	Portfolio string `gorm:"type:text;not null"`
	Sample    string `gorm:"type:text;not null"`
	Reason    string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CreatorApplicationModel) TableName() string {
	return "creator_applications"
}
