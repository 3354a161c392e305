package structs

import "recycup/models"

type CaptureResponse struct {
	Message   string          `json:"message"`
	Indicator int             `json:"indicator"`
	Image     models.ImageRef `json:"image"`
}

type SubmitResponse struct {
	Message      string `json:"message"`
	Awarded      bool   `json:"awarded"`
	Points       int    `json:"points,omitempty"`
	NewMileage   int    `json:"newMileage,omitempty"`
	NewAuthCount int    `json:"newAuthCount,omitempty"`
}
