package httpadapter

import (
	"context"
	"log/slog"

	"launchpad/contexts/community-growth/progression-service/application"
	"launchpad/contexts/community-growth/progression-service/domain/classify"
	"launchpad/contexts/community-growth/progression-service/ports"
	httptransport "launchpad/contexts/community-growth/progression-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// IngestWebhookHandler is the external-webhook trigger path.
func (h Handler) IngestWebhookHandler(
	ctx context.Context,
	req httptransport.WebhookActivityRequest,
) (httptransport.TriggerResponse, error) {
	activity := classify.ActivityUnit{
		MessageID: req.MessageID,
		AuthorID:  req.AuthorID,
		ChannelID: req.ChannelID,
		Text:      req.Content,
	}
	for _, attachment := range req.Attachments {
		activity.Attachments = append(activity.Attachments, classify.Attachment{
			Name:        attachment.Name,
			ContentType: attachment.ContentType,
			SizeBytes:   attachment.SizeBytes,
		})
	}

	outcome, err := h.Service.OnTrigger(ctx, ports.TriggerInput{
		ProjectID:       req.ProjectID,
		Source:          ports.TriggerWebhook,
		Activity:        &activity,
		LiveMemberCount: req.MemberCount,
	})
	if err != nil {
		return httptransport.TriggerResponse{}, err
	}
	return triggerResponse(outcome), nil
}

// CheckHandler is the user-initiated trigger path: no activity, just a gate
// re-evaluation on current counters.
func (h Handler) CheckHandler(ctx context.Context, projectID string) (httptransport.TriggerResponse, error) {
	outcome, err := h.Service.OnTrigger(ctx, ports.TriggerInput{
		ProjectID: projectID,
		Source:    ports.TriggerManual,
	})
	if err != nil {
		return httptransport.TriggerResponse{}, err
	}
	return triggerResponse(outcome), nil
}

func (h Handler) GetMetricsHandler(ctx context.Context, projectID string) (httptransport.MetricsResponse, error) {
	metrics, err := h.Service.GetMetrics(ctx, projectID)
	if err != nil {
		return httptransport.MetricsResponse{}, err
	}
	resp := httptransport.MetricsResponse{Status: "success"}
	resp.Data.Metrics = metricsDTO(metrics)
	resp.Data.NextRequirement = h.Service.NextRequirement(metrics.Level)
	return resp, nil
}

func (h Handler) RegisterCommunityHandler(
	ctx context.Context,
	projectID string,
	req httptransport.RegisterCommunityRequest,
) (httptransport.RegisterCommunityResponse, error) {
	metrics, err := h.Service.RegisterCommunity(ctx, projectID, req.InviteURL)
	if err != nil {
		return httptransport.RegisterCommunityResponse{}, err
	}
	resp := httptransport.RegisterCommunityResponse{Status: "success"}
	resp.Data.Metrics = metricsDTO(metrics)
	return resp, nil
}

func triggerResponse(outcome ports.TriggerOutcome) httptransport.TriggerResponse {
	resp := httptransport.TriggerResponse{Status: "success"}
	resp.Data.Advanced = outcome.Advanced
	resp.Data.FromLevel = outcome.FromLevel
	resp.Data.ToLevel = outcome.ToLevel
	if outcome.Classification != nil {
		resp.Data.Category = string(outcome.Classification.Category)
		resp.Data.Confidence = outcome.Classification.Confidence
	}
	resp.Data.Metrics = metricsDTO(outcome.Metrics)
	return resp
}

func metricsDTO(metrics ports.CommunityMetrics) httptransport.MetricsDTO {
	return httptransport.MetricsDTO{
		ProjectID:     metrics.ProjectID,
		Level:         metrics.Level,
		MemberCount:   metrics.MemberCount,
		MessagesCount: metrics.MessagesCount,
		PapersShared:  metrics.PapersShared,
		QualityScore:  metrics.QualityScore,
		BotLinked:     metrics.BotLinked,
		Verified:      metrics.Verified,
		CommunityID:   metrics.CommunityID,
		CommunityName: metrics.CommunityName,
	}
}
