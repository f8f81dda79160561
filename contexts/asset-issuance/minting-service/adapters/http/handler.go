package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"launchpad/contexts/asset-issuance/minting-service/application"
	"launchpad/contexts/asset-issuance/minting-service/ports"
	httptransport "launchpad/contexts/asset-issuance/minting-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) IssueAssetHandler(
	ctx context.Context,
	projectID string,
	req httptransport.IssueAssetRequest,
) (httptransport.IssueAssetResponse, error) {
	result, err := h.Service.IssueAsset(ctx, application.IssueAssetInput{
		ProjectID:     projectID,
		AssetKind:     req.AssetKind,
		RecipientAddr: req.RecipientAddr,
	})
	if err != nil {
		return httptransport.IssueAssetResponse{}, err
	}
	return httptransport.IssueAssetResponse{
		Status:   "success",
		Replayed: result.Replayed,
		Data:     assetDTO(result.Asset),
	}, nil
}

func (h Handler) ListAssetsHandler(ctx context.Context, projectID string) (httptransport.AssetListResponse, error) {
	assets, err := h.Service.ListAssets(ctx, projectID)
	if err != nil {
		return httptransport.AssetListResponse{}, err
	}
	resp := httptransport.AssetListResponse{
		Status: "success",
		Data:   make([]httptransport.AssetDTO, 0, len(assets)),
	}
	for _, asset := range assets {
		resp.Data = append(resp.Data, assetDTO(asset))
	}
	return resp, nil
}

func assetDTO(asset ports.AssetRecord) httptransport.AssetDTO {
	return httptransport.AssetDTO{
		AssetID:       asset.AssetID,
		ProjectID:     asset.ProjectID,
		AssetKind:     asset.AssetKind,
		TransactionID: asset.TransactionID,
		MintedAt:      asset.MintedAt.UTC().Format(time.RFC3339),
	}
}
