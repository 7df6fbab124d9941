package models

type RewardBalance struct {
	UserID string `json:"user_id"`
	Points int    `json:"points"`
}
