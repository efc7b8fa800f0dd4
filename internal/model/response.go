package model

import "time"

// Response is the generated advice for exactly one Query. The unique index on
// query_id keeps it at most one per Query.
type Response struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	QueryID   uint      `json:"query_id" gorm:"not null;uniqueIndex"`
	Advice    string    `json:"advice" gorm:"type:text;not null"`
	ModelUsed string    `json:"model_used" gorm:"size:50;not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index"`
}

func (Response) TableName() string {
	return "ai_responses"
}
