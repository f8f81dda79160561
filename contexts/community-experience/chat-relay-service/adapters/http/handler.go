package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"launchpad/contexts/community-experience/chat-relay-service/application"
	httptransport "launchpad/contexts/community-experience/chat-relay-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RelayHandler(
	ctx context.Context,
	projectID string,
	req httptransport.RelayRequest,
) (httptransport.RelayResponse, error) {
	result, err := h.Service.Relay(ctx, application.RelayInput{
		ProjectID: projectID,
		SessionID: req.SessionID,
		Message:   req.Message,
	})
	if err != nil {
		return httptransport.RelayResponse{}, err
	}
	resp := httptransport.RelayResponse{Status: "success"}
	resp.Data.SessionID = result.SessionID
	resp.Data.Reply = result.Reply
	return resp, nil
}

func (h Handler) HistoryHandler(ctx context.Context, sessionID string) (httptransport.HistoryResponse, error) {
	turns, err := h.Service.History(ctx, sessionID)
	if err != nil {
		return httptransport.HistoryResponse{}, err
	}
	resp := httptransport.HistoryResponse{
		Status: "success",
		Data:   make([]httptransport.ChatTurnDTO, 0, len(turns)),
	}
	for _, turn := range turns {
		resp.Data = append(resp.Data, httptransport.ChatTurnDTO{
			Role:      turn.Role,
			Content:   turn.Content,
			CreatedAt: turn.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}
