package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RelayRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type RelayResponse struct {
	Status string `json:"status"`
	Data   struct {
		SessionID string `json:"session_id"`
		Reply     string `json:"reply"`
	} `json:"data"`
}

type ChatTurnDTO struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type HistoryResponse struct {
	Status string        `json:"status"`
	Data   []ChatTurnDTO `json:"data"`
}
