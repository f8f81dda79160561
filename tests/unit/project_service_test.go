package unit

import (
	"context"
	"errors"
	"testing"

	projectservice "launchpad/contexts/identity-access/project-service"
	domainerrors "launchpad/contexts/identity-access/project-service/domain/errors"
	httptransport "launchpad/contexts/identity-access/project-service/transport/http"
)

func TestProjectAuthenticateCreatesOnFirstSignIn(t *testing.T) {
	module := projectservice.NewInMemoryModule(nil)

	resp, err := module.Handler.AuthenticateHandler(context.Background(), httptransport.AuthenticateRequest{
		WalletAddress: "0xAbC123",
		ProjectName:   "Protein Folding Lab",
	})
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if !resp.Created {
		t.Fatalf("first sign-in must create the project")
	}
	if resp.Data.Name != "Protein Folding Lab" {
		t.Fatalf("unexpected project name %q", resp.Data.Name)
	}
	if resp.Data.ProjectID == "" {
		t.Fatalf("expected generated project id")
	}
}

func TestProjectAuthenticateReturnsExistingForSameWallet(t *testing.T) {
	module := projectservice.NewInMemoryModule(nil)

	first, err := module.Handler.AuthenticateHandler(context.Background(), httptransport.AuthenticateRequest{
		WalletAddress: "0xAbC123",
	})
	if err != nil {
		t.Fatalf("first authenticate failed: %v", err)
	}

	// Wallet addresses are matched case-insensitively.
	second, err := module.Handler.AuthenticateHandler(context.Background(), httptransport.AuthenticateRequest{
		WalletAddress: "0xabc123",
	})
	if err != nil {
		t.Fatalf("second authenticate failed: %v", err)
	}
	if second.Created {
		t.Fatalf("repeat sign-in must not create a second project")
	}
	if first.Data.ProjectID != second.Data.ProjectID {
		t.Fatalf("expected same project, got %s and %s", first.Data.ProjectID, second.Data.ProjectID)
	}
}

func TestProjectAuthenticateDefaultsName(t *testing.T) {
	module := projectservice.NewInMemoryModule(nil)

	resp, err := module.Handler.AuthenticateHandler(context.Background(), httptransport.AuthenticateRequest{
		WalletAddress: "0xFeed",
	})
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if resp.Data.Name != "Untitled Project" {
		t.Fatalf("expected default name, got %q", resp.Data.Name)
	}
}

func TestProjectAuthenticateRejectsEmptyWallet(t *testing.T) {
	module := projectservice.NewInMemoryModule(nil)

	_, err := module.Handler.AuthenticateHandler(context.Background(), httptransport.AuthenticateRequest{})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestProjectGetUnknownID(t *testing.T) {
	module := projectservice.NewInMemoryModule(nil)

	_, err := module.Handler.GetProjectHandler(context.Background(), "missing")
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProjectListByOwner(t *testing.T) {
	module := projectservice.NewInMemoryModule(nil)

	if _, err := module.Handler.AuthenticateHandler(context.Background(), httptransport.AuthenticateRequest{
		WalletAddress: "0xOwner",
		ProjectName:   "First",
	}); err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	resp, err := module.Handler.ListProjectsHandler(context.Background(), "0xowner")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Name != "First" {
		t.Fatalf("unexpected list %+v", resp.Data)
	}
}
