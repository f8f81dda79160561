package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "launchpad/contexts/asset-issuance/minting-service/domain/errors"
	"launchpad/contexts/asset-issuance/minting-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Minter ports.MintingClient
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

type IssueAssetInput struct {
	ProjectID     string
	AssetKind     string
	RecipientAddr string
}

type IssueAssetResult struct {
	Asset    ports.AssetRecord
	Replayed bool
}

// IssueAsset mints at most once per (project, kind). A repeat request returns
// the original record without touching the chain again.
func (s Service) IssueAsset(ctx context.Context, input IssueAssetInput) (IssueAssetResult, error) {
	projectID := strings.TrimSpace(input.ProjectID)
	kind := strings.ToLower(strings.TrimSpace(input.AssetKind))
	recipient := strings.TrimSpace(input.RecipientAddr)
	if projectID == "" || recipient == "" {
		return IssueAssetResult{}, domainerrors.ErrInvalidRequest
	}
	if !ports.IsValidAssetKind(kind) {
		return IssueAssetResult{}, domainerrors.ErrUnknownAssetKind
	}

	// Check before minting so a replay never reaches the chain.
	existing, err := s.Repo.ListAssets(ctx, projectID)
	if err != nil {
		return IssueAssetResult{}, err
	}
	for _, asset := range existing {
		if asset.AssetKind == kind {
			return IssueAssetResult{Asset: asset, Replayed: true}, nil
		}
	}

	txID, err := s.Minter.Mint(ctx, recipient, kind)
	if err != nil {
		resolveLogger(s.Logger).Warn("mint call failed",
			"event", "minting_mint_failed",
			"module", "asset-issuance/minting-service",
			"layer", "application",
			"project_id", projectID,
			"asset_kind", kind,
			"error", err.Error(),
		)
		return IssueAssetResult{}, domainerrors.ErrMintUnavailable
	}

	assetID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return IssueAssetResult{}, err
	}
	record, created, err := s.Repo.RecordMint(ctx, ports.AssetRecord{
		AssetID:       strings.TrimSpace(assetID),
		ProjectID:     projectID,
		AssetKind:     kind,
		RecipientAddr: recipient,
		TransactionID: txID,
		MintedAt:      s.now(),
	})
	if err != nil {
		return IssueAssetResult{}, err
	}

	if created {
		resolveLogger(s.Logger).Info("asset minted",
			"event", "minting_asset_minted",
			"module", "asset-issuance/minting-service",
			"layer", "application",
			"project_id", projectID,
			"asset_kind", kind,
			"transaction_id", txID,
		)
	}
	return IssueAssetResult{Asset: record, Replayed: !created}, nil
}

func (s Service) ListAssets(ctx context.Context, projectID string) ([]ports.AssetRecord, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Repo.ListAssets(ctx, strings.TrimSpace(projectID))
}

// CompletionFlags reports which onboarding assets the project has minted;
// the progression gate for level 1 consumes this.
func (s Service) CompletionFlags(ctx context.Context, projectID string) (idea bool, vision bool, err error) {
	assets, err := s.ListAssets(ctx, projectID)
	if err != nil {
		return false, false, err
	}
	for _, asset := range assets {
		switch asset.AssetKind {
		case ports.AssetKindIdea:
			idea = true
		case ports.AssetKindVision:
			vision = true
		}
	}
	return idea, vision, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
