package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vbarbosa/email-triage/internal/core/domain"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) chatCompletion(
	ctx context.Context,
	operation string,
	messages []chatMessage,
	temperature float64,
	maxTokens int,
) (string, error) {
	// Never attempt a call without a configured credential.
	if strings.TrimSpace(c.apiKey) == "" {
		return "", domain.WrapError(domain.ErrUpstreamAuth, operation, errors.New("no api key configured"))
	}

	var answer string
	call := func(ctx context.Context) error {
		var err error
		answer, err = c.doChatCompletion(ctx, operation, messages, temperature, maxTokens)
		return err
	}

	if err := c.executor.Execute(ctx, "openai."+operation, call, classifyUpstreamError); err != nil {
		return "", wrapCircuitOpen(operation, err)
	}
	return answer, nil
}

func (c *Client) doChatCompletion(
	ctx context.Context,
	operation string,
	messages []chatMessage,
	temperature float64,
	maxTokens int,
) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", domain.WrapError(domain.ErrUpstreamUnavailable, operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", mapHTTPStatus(operation, resp)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", domain.WrapError(domain.ErrUpstreamProtocol, operation, fmt.Errorf("decode response: %w", err))
	}
	if len(parsed.Choices) == 0 {
		return "", domain.WrapError(domain.ErrUpstreamProtocol, operation, errors.New("completion returned no choices"))
	}

	answer := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if answer == "" {
		return "", domain.WrapError(domain.ErrUpstreamProtocol, operation, errors.New("completion returned empty content"))
	}
	return answer, nil
}

func mapHTTPStatus(operation string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	detail := fmt.Errorf("status %s: %s", resp.Status, strings.TrimSpace(string(body)))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.WrapError(domain.ErrUpstreamAuth, operation, detail)
	case resp.StatusCode == http.StatusTooManyRequests:
		return domain.WrapError(domain.ErrUpstreamRateLimited, operation, detail)
	case resp.StatusCode >= 500:
		return domain.WrapError(domain.ErrUpstreamUnavailable, operation, detail)
	default:
		return domain.WrapError(domain.ErrUpstreamProtocol, operation, detail)
	}
}
