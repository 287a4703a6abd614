package models

import (
	"time"

	"gorm.io/datatypes"
)

type Photographer struct {
	ID     string `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"_id"`
	UserID string `gorm:"type:varchar(36);index" bson:"user,omitempty" json:"user,omitempty"`

	FullName string `gorm:"size:100;not null" bson:"fullName" json:"fullName"`
	Email    string `gorm:"size:100;uniqueIndex;not null" bson:"email" json:"email"`
	Phone    string `gorm:"size:30;not null" bson:"phone" json:"phone"`
	Country  string `gorm:"size:80;not null" bson:"country" json:"country"`
	State    string `gorm:"size:80;not null" bson:"state" json:"state"`
	City     string `gorm:"size:80;not null" bson:"city" json:"city"`
	Bio      string `gorm:"type:text" bson:"bio,omitempty" json:"bio,omitempty"`

	Specialties datatypes.JSONSlice[string] `bson:"specialties" json:"specialties"`
	Experience  string                      `gorm:"size:50" bson:"experience" json:"experience"`
	Pricing     float64                     `gorm:"not null" bson:"pricing" json:"pricing"`
	// Availability is a free-form weekly schedule, e.g.
	// {"monday": {"morning": true, "evening": false}}.
	Availability datatypes.JSONMap `bson:"availability" json:"availability"`

	PortfolioImages datatypes.JSONSlice[string] `bson:"portfolioImages" json:"portfolioImages"`
	ProfilePicture  string                      `gorm:"size:255" bson:"profilePicture" json:"profilePicture"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
