package model

import "time"

// Query is one submitted question. Rows are write-once.
type Query struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Question  string    `json:"question" gorm:"type:text;not null"`
	Age       *int      `json:"age,omitempty" gorm:"index"`
	Gender    *string   `json:"gender,omitempty" gorm:"size:10;index"`
	Response  *Response `json:"response,omitempty" gorm:"foreignKey:QueryID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT;"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index"`
}

func (Query) TableName() string {
	return "medical_queries"
}
