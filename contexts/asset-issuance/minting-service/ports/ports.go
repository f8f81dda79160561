package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// AssetKind enumerates the onboarding assets a project mints exactly once.
const (
	AssetKindIdea   = "idea"
	AssetKindVision = "vision"
)

func IsValidAssetKind(kind string) bool {
	switch kind {
	case AssetKindIdea, AssetKindVision:
		return true
	default:
		return false
	}
}

// AssetRecord is one completed (or replayed) mint.
type AssetRecord struct {
	AssetID       string
	ProjectID     string
	AssetKind     string
	RecipientAddr string
	TransactionID string
	MintedAt      time.Time
}

// MintingClient is the black-box chain boundary: recipient plus asset kind in,
// transaction identifier out.
type MintingClient interface {
	Mint(ctx context.Context, recipientAddr string, assetKind string) (string, error)
}

// Repository guards one mint per (project, kind): RecordMint reports whether
// the record was created or already existed.
type Repository interface {
	RecordMint(ctx context.Context, record AssetRecord) (AssetRecord, bool, error)
	ListAssets(ctx context.Context, projectID string) ([]AssetRecord, error)
}
