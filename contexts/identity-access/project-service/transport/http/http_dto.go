package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AuthenticateRequest struct {
	WalletAddress string `json:"wallet_address"`
	ProjectName   string `json:"project_name,omitempty"`
}

type ProjectDTO struct {
	ProjectID   string `json:"project_id"`
	OwnerWallet string `json:"owner_wallet"`
	Name        string `json:"name"`
	CreatedAt   string `json:"created_at"`
}

type AuthenticateResponse struct {
	Status  string     `json:"status"`
	Created bool       `json:"created"`
	Data    ProjectDTO `json:"data"`
}

type ProjectResponse struct {
	Status string     `json:"status"`
	Data   ProjectDTO `json:"data"`
}

type ProjectListResponse struct {
	Status string       `json:"status"`
	Data   []ProjectDTO `json:"data"`
}
