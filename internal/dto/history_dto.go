package dto

import "time"

type HistoryItem struct {
	ID        uint      `json:"id" example:"1"`
	Question  string    `json:"question" example:"Kelläm agyrýar we gyzzyrma bar"`
	Age       *int      `json:"age" example:"30"`
	Gender    *string   `json:"gender" example:"erkek"`
	Advice    string    `json:"advice" example:"Siziň alamatlaryňyz..."`
	AIModel   string    `json:"ai_model" example:"gemini-2.5-flash"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Total   int64         `json:"total" example:"1"`
	Queries []HistoryItem `json:"queries"`
}
