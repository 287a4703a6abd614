package models

import "time"

type AuditLog struct {
	ID string `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"_id"`

	UserID string `gorm:"type:varchar(36);index" bson:"user,omitempty" json:"user,omitempty"`
	Action string `gorm:"size:50;not null" bson:"action" json:"action"`

	Entity   string `gorm:"size:50" bson:"entity" json:"entity"`
	EntityID string `gorm:"type:varchar(36)" bson:"entityId" json:"entityId"`
	Metadata string `gorm:"type:text" bson:"metadata,omitempty" json:"metadata,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
