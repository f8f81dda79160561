package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type IssueAssetRequest struct {
	AssetKind     string `json:"asset_kind"`
	RecipientAddr string `json:"recipient_address"`
}

type AssetDTO struct {
	AssetID       string `json:"asset_id"`
	ProjectID     string `json:"project_id"`
	AssetKind     string `json:"asset_kind"`
	TransactionID string `json:"transaction_id"`
	MintedAt      string `json:"minted_at"`
}

type IssueAssetResponse struct {
	Status   string   `json:"status"`
	Replayed bool     `json:"replayed,omitempty"`
	Data     AssetDTO `json:"data"`
}

type AssetListResponse struct {
	Status string     `json:"status"`
	Data   []AssetDTO `json:"data"`
}
