package dto

// AdviceRequest is the body of POST /advice.
type AdviceRequest struct {
	Question string  `json:"question" binding:"required,min=10,max=1000" example:"Kelläm agyrýar we gyzzyrma bar, näme etmeli?"`
	Age      *int    `json:"age" binding:"omitempty,min=0,max=150" example:"30"`
	Gender   *string `json:"gender" binding:"omitempty,max=10" example:"erkek"`
}

// AdviceResponse is returned on a successful generation. ID identifies the
// stored record for GET /history/{id}.
type AdviceResponse struct {
	ID         uint   `json:"id" example:"1"`
	Advice     string `json:"advice" example:"Siziň alamatlaryňyz..."`
	Disclaimer string `json:"disclaimer"`
}
