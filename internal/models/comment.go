package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Comment struct {
	gorm.Model

	TaskID uint `gorm:"not null;index"`
	// Author holds the team member email that wrote the comment.
	Author  string `gorm:"not null"`
	Content string
	// Tags holds the member emails resolved from @-mentions in Content.
	// Derived once when the comment is created, never recomputed.
	Tags datatypes.JSONSlice[string]

	// Relationships
	Task Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
