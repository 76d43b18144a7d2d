package dto

import "time"

type ReviewResponse struct {
	User   string    `json:"user"`
	Stars  int       `json:"stars"`
	Review string    `json:"review"`
	Date   time.Time `json:"date"`
}

type ListReviewsResponse struct {
	Place   string           `json:"place"`
	Reviews []ReviewResponse `json:"reviews"`
}

type AddReviewRequest struct {
	Place  string `json:"place"`
	User   string `json:"user"`
	Stars  int    `json:"stars"`
	Review string `json:"review"`
}

type SignalsResponse struct {
	Unlocked       []string `json:"unlocked"`
	ClearanceLevel int      `json:"clearance_level"`
}

type UnlockSignalRequest struct {
	Place string `json:"place"`
}

type LocaleRequest struct {
	Locale string `json:"locale"`
}
