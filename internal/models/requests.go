package models

type SetupResponse struct {
	Saved            bool   `json:"saved"`
	Title            string `json:"title,omitempty"`
	Responsibilities string `json:"responsibilities,omitempty"`
	Requirements     string `json:"requirements,omitempty"`
	Language         string `json:"language,omitempty"`
	ResumeFilename   string `json:"resume_filename,omitempty"`
	ResumeMimeType   string `json:"resume_mime_type,omitempty"`
	ResumeSize       int    `json:"resume_size,omitempty"`
	ResumePreview    string `json:"resume_preview,omitempty"`
}

type SendRequest struct {
	Text string `json:"text"`
}

type StartResponse struct {
	Turn ConversationTurn `json:"turn"`
}

type ExchangeResponse struct {
	Turns []ConversationTurn `json:"turns"`
}

type HistoryResponse struct {
	Turns     []ConversationTurn `json:"turns"`
	Busy      bool               `json:"busy"`
	LastError string             `json:"last_error,omitempty"`
}
