package dto

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type HealthStatus struct {
	Status            string `json:"status" example:"sagdyn"`
	Message           string `json:"message" example:"Ähli hyzmatlar işleýär"`
	GeminiConnected   bool   `json:"gemini_connected"`
	DatabaseConnected *bool  `json:"database_connected,omitempty"`
}
