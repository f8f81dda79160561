package bootstrap

import (
	"context"

	mintingapp "launchpad/contexts/asset-issuance/minting-service/application"
	chatports "launchpad/contexts/community-experience/chat-relay-service/ports"
	progressionapp "launchpad/contexts/community-growth/progression-service/application"
	progressionports "launchpad/contexts/community-growth/progression-service/ports"
	projectapp "launchpad/contexts/identity-access/project-service/application"
)

// assetFlagsBridge answers the progression gate's mint-completion question
// from the minting context without coupling the two modules directly.
type assetFlagsBridge struct {
	minting mintingapp.Service
}

func (b assetFlagsBridge) Flags(ctx context.Context, projectID string) (progressionports.AssetFlags, error) {
	idea, vision, err := b.minting.CompletionFlags(ctx, projectID)
	if err != nil {
		return progressionports.AssetFlags{}, err
	}
	return progressionports.AssetFlags{
		IdeaAssetMinted:   idea,
		VisionAssetMinted: vision,
	}, nil
}

// projectFactsBridge assembles the assistant's grounding facts from the
// project and progression contexts.
type projectFactsBridge struct {
	projects    projectapp.Service
	progression progressionapp.Service
}

func (b projectFactsBridge) Facts(ctx context.Context, projectID string) (chatports.ProjectFacts, error) {
	metrics, err := b.progression.GetMetrics(ctx, projectID)
	if err != nil {
		return chatports.ProjectFacts{}, err
	}

	facts := chatports.ProjectFacts{
		ProjectID:       projectID,
		Level:           metrics.Level,
		NextRequirement: b.progression.NextRequirement(metrics.Level),
		MemberCount:     metrics.MemberCount,
		PapersShared:    metrics.PapersShared,
	}
	if project, err := b.projects.GetProject(ctx, projectID); err == nil {
		facts.ProjectName = project.Name
	}
	return facts, nil
}
