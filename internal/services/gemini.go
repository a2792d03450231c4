package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/resume-radar/internal/logger"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiService is the subset of the hosted model the analyzer and the OCR engine need.
type GeminiService interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
	GenerateFromDocument(ctx context.Context, data []byte, mimeType, instruction string) (string, error)
}

type geminiService struct {
	client    *genai.Client
	modelName string
	log       *zap.Logger
}

func NewGeminiService(ctx context.Context, apiKey, model string, log *zap.Logger) (GeminiService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: model,
		log:       logger.OrNop(log).With(zap.String(logger.FieldModel, model)),
	}, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		g.log.Warn("gemini generate failed", zap.Error(err))
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	return g.responseText(resp)
}

// GenerateFromDocument sends the raw document alongside the instruction. Used for OCR.
func (g *geminiService) GenerateFromDocument(ctx context.Context, data []byte, mimeType, instruction string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(data, mimeType),
		genai.NewPartFromText(instruction),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var temperature float32
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, &genai.GenerateContentConfig{
		Temperature: &temperature,
	})
	if err != nil {
		g.log.Warn("gemini document request failed", zap.String("mime_type", mimeType), zap.Error(err))
		return "", fmt.Errorf("failed to generate from document: %w", err)
	}

	return g.responseText(resp)
}

func (g *geminiService) responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	g.log.Debug("gemini response received", zap.String("text", logger.TruncateForLog(text, 200)))
	return text, nil
}
