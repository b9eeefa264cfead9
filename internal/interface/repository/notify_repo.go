package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"fieldscan-scheduler/internal/domain/entity"
	"fieldscan-scheduler/internal/domain/repository"
	"fieldscan-scheduler/pkg/logger"
)

// HTTPNotifyRepository delivers farmer notices through the external
// notification service
type HTTPNotifyRepository struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
}

// NewHTTPNotifyRepository creates a new HTTP notify repository
func NewHTTPNotifyRepository(logger logger.Logger) repository.NotifyRepository {
	baseURL := os.Getenv("NOTIFY_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8090"
	}

	return &HTTPNotifyRepository{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: os.Getenv("NOTIFY_TOKEN"),
	}
}

type sendNoticeRequest struct {
	RecipientID string `json:"recipientId"`
	Text        string `json:"text"`
	ScheduleAt  string `json:"scheduleAt"`
}

// SendNotice posts the notice to the notification service and returns the
// delivery task id
func (r *HTTPNotifyRepository) SendNotice(ctx context.Context, notice *entity.Notice) (string, error) {
	body := sendNoticeRequest{
		RecipientID: notice.RecipientID,
		Text:        notice.Text,
		ScheduleAt:  notice.ScheduleAt.UTC().Format(time.RFC3339),
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal notice: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/notices", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send notice: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("notify service returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			TaskID string `json:"taskId"`
			Status string `json:"status"`
		} `json:"data"`
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if !response.Success {
		return "", fmt.Errorf("notify service rejected notice: %s (code: %s)", response.Error.Message, response.Error.Code)
	}

	r.logger.Info("Notice delivered to notify service",
		"taskId", response.Data.TaskID,
		"recipientId", notice.RecipientID,
		"scheduleAt", body.ScheduleAt)

	return response.Data.TaskID, nil
}
