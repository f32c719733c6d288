// ABOUTME: Response DTOs for health and account endpoints

package responses

import "shoplist-api/core/domain"

// HealthResponse reports liveness
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// SignupResponse wraps the created user
type SignupResponse struct {
	User *domain.User `json:"user"`
}
