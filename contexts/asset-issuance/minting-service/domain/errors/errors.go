package errors

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrMintUnavailable  = errors.New("minting service unavailable")
	ErrUnknownAssetKind = errors.New("unknown asset kind")
)
