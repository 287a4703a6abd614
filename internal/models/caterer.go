package models

import (
	"time"

	"gorm.io/datatypes"
)

type Caterer struct {
	ID     string `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"_id"`
	UserID string `gorm:"type:varchar(36);index;not null" bson:"user" json:"user"`

	BusinessName string `gorm:"size:150;not null" bson:"businessName" json:"businessName"`
	OwnerName    string `gorm:"size:100;not null" bson:"ownerName" json:"ownerName"`
	// Caterers may register without an email, so uniqueness only covers
	// non-empty values.
	Email string `gorm:"size:100;index:idx_caterers_email,unique,where:email <> ''" bson:"email" json:"email"`
	Phone string `gorm:"size:30" bson:"phone" json:"phone"`

	Experience int                      `bson:"experience" json:"experience"`
	Services   datatypes.JSONSlice[int] `bson:"services" json:"services"`
	Cuisines   datatypes.JSONSlice[int] `bson:"cuisines" json:"cuisines"`
	Capacity   *int                     `bson:"capacity" json:"capacity"`
	Pricing    *float64                 `bson:"pricing" json:"pricing"`
	Bio        string                   `gorm:"type:text" bson:"bio,omitempty" json:"bio,omitempty"`

	ProfileImage string                      `gorm:"size:255" bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	MenuImages   datatypes.JSONSlice[string] `bson:"menuImages" json:"menuImages"`

	IsApproved bool      `gorm:"not null;default:false" bson:"isApproved" json:"isApproved"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
