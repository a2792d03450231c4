package models

type SaveResumeResponse struct {
	Message string  `json:"message"`
	Resume  *Resume `json:"resume"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// UploadErrorResponse reports which pipeline stage stopped an upload.
type UploadErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Stage   string `json:"stage,omitempty"`
}

// ATSResult is the parsed response of the score call.
type ATSResult struct {
	ATSScore float64 `json:"ats_score" mapstructure:"ats_score"`
	Reason   string  `json:"reason" mapstructure:"reason"`
}
