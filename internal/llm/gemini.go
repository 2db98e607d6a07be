package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/stylescout/stylescout/internal/retry"
	"google.golang.org/genai"
)

const (
	defaultAnalysisModel = "gemini-3-flash-preview"
	defaultPreviewModel  = "gemini-2.5-flash-image"
)

// Gemini Flash pricing (per million tokens)
const (
	geminiInputPricePerMillion  = 0.50 // $0.50 per 1M input tokens (text/image/video)
	geminiOutputPricePerMillion = 3.00 // $3.00 per 1M output tokens (including thinking)
)

// Config holds everything the Gemini client needs. The credential is passed
// explicitly rather than read from the environment at call time.
type Config struct {
	APIKey        string
	AnalysisModel string
	PreviewModel  string
	Retry         retry.Policy
}

// GeminiClient implements Analyzer and PreviewGenerator against Google's
// Gemini API.
type GeminiClient struct {
	client        *genai.Client
	analysisModel string
	previewModel  string
	retry         retry.Policy
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g := &GeminiClient{
		client:        client,
		analysisModel: cfg.AnalysisModel,
		previewModel:  cfg.PreviewModel,
		retry:         cfg.Retry,
	}
	if g.analysisModel == "" {
		g.analysisModel = defaultAnalysisModel
	}
	if g.previewModel == "" {
		g.previewModel = defaultPreviewModel
	}
	if g.retry.MaxAttempts == 0 {
		g.retry = retry.Default()
	}
	return g, nil
}

// Analyze implements the Analyzer interface. It sends exactly one request
// carrying the photo and the mode-specific instruction, constrained to the
// declared response schema.
func (g *GeminiClient) Analyze(ctx context.Context, imageData []byte, mimeType string, mode AnalysisMode) (*AnalysisResult, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("no image provided")
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown analysis mode: %q", mode)
	}
	if mimeType == "" {
		mimeType = DetectMIMEType(imageData)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(analysisInstruction),
		{InlineData: &genai.Blob{Data: imageData, MIMEType: mimeType}},
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction(mode), genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    analysisSchema(),
	}

	var result *genai.GenerateContentResponse
	err := g.retry.Do(ctx, func() error {
		var callErr error
		result, callErr = g.client.Models.GenerateContent(ctx, g.analysisModel, contents, config)
		return callErr
	})
	if err != nil {
		log.Error().Err(err).Str("model", g.analysisModel).Str("mode", string(mode)).Msg("analysis call failed")
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from Gemini")
	}

	analysis, err := parseAnalysis(result.Text(), mode)
	if err != nil {
		return nil, err
	}

	usage := usageFrom(result)
	log.Info().
		Str("model", g.analysisModel).
		Str("mode", string(mode)).
		Str("mimeType", mimeType).
		Int64("inputTokens", usage.InputTokens).
		Int64("outputTokens", usage.OutputTokens).
		Float64("costUSD", usage.CostUSD).
		Msg("style analysis llm call")

	return analysis, nil
}

// GeneratePreview implements the PreviewGenerator interface. It sends the
// original photo plus an edit instruction to the image model and returns the
// first inline image from the response as a PNG data URI.
func (g *GeminiClient) GeneratePreview(ctx context.Context, imageData []byte, mimeType, styleDescription string) (string, error) {
	if len(imageData) == 0 {
		return "", fmt.Errorf("no image provided")
	}
	if strings.TrimSpace(styleDescription) == "" {
		return "", fmt.Errorf("no style description provided")
	}
	if mimeType == "" {
		mimeType = DetectMIMEType(imageData)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(previewPrompt(styleDescription)),
		{InlineData: &genai.Blob{Data: imageData, MIMEType: mimeType}},
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}

	var result *genai.GenerateContentResponse
	err := g.retry.Do(ctx, func() error {
		var callErr error
		result, callErr = g.client.Models.GenerateContent(ctx, g.previewModel, contents, config)
		return callErr
	})
	if err != nil {
		log.Error().Err(err).Str("model", g.previewModel).Msg("preview call failed")
		return "", fmt.Errorf("failed to generate preview: %w", err)
	}

	uri, err := extractInlineImage(result)
	if err != nil {
		return "", err
	}

	usage := usageFrom(result)
	log.Info().
		Str("model", g.previewModel).
		Str("style", styleDescription).
		Int64("inputTokens", usage.InputTokens).
		Int64("outputTokens", usage.OutputTokens).
		Msg("preview llm call")

	return uri, nil
}

// parseAnalysis parses the returned text into an AnalysisResult and checks
// the mode invariants.
func parseAnalysis(text string, mode AnalysisMode) (*AnalysisResult, error) {
	jsonStr, err := extractJSONObject(text)
	if err != nil {
		return nil, err
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to parse analysis JSON: %w (response: %s)", err, truncate(jsonStr, 200))
	}

	if err := validateForMode(&result, mode); err != nil {
		return nil, fmt.Errorf("analysis failed validation: %w", err)
	}
	return &result, nil
}

// extractInlineImage scans the response's content parts in order and wraps
// the first inline image as a PNG data URI.
func extractInlineImage(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("no image generated")
	}
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return PNGDataURI(part.InlineData.Data), nil
		}
	}
	return "", fmt.Errorf("no image generated")
}

// extractJSONObject extracts a JSON object from text that may contain
// markdown code blocks or other formatting.
func extractJSONObject(text string) (string, error) {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response: %s", truncate(text, 200))
	}
	return text[start : end+1], nil
}

func usageFrom(result *genai.GenerateContentResponse) Usage {
	usage := Usage{}
	if result != nil && result.UsageMetadata != nil {
		usage.InputTokens = int64(result.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int64(result.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int64(result.UsageMetadata.TotalTokenCount)
		usage.CostUSD = calculateGeminiCost(usage.InputTokens, usage.OutputTokens)
	}
	return usage
}

func calculateGeminiCost(inputTokens, outputTokens int64) float64 {
	inputCost := float64(inputTokens) / 1_000_000 * geminiInputPricePerMillion
	outputCost := float64(outputTokens) / 1_000_000 * geminiOutputPricePerMillion
	return inputCost + outputCost
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
