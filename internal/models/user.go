package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"_id"`
	Name         string `gorm:"size:100;not null" bson:"name" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash string `gorm:"size:255;not null" bson:"password" json:"-"`
	Role         string `gorm:"size:20;default:'user'" bson:"role" json:"role"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
