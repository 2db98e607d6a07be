package llm

import "context"

// AnalysisMode selects which styling axis the analysis should cover.
type AnalysisMode string

const (
	// ModeComplete recommends hairstyles, facial hair, and combined looks.
	ModeComplete AnalysisMode = "complete"
	// ModeHairstyleOnly recommends hairstyles only.
	ModeHairstyleOnly AnalysisMode = "hairstyle"
	// ModeFacialHairOnly recommends facial hair styles only.
	ModeFacialHairOnly AnalysisMode = "facial_hair"
)

// Valid reports whether m is a known analysis mode.
func (m AnalysisMode) Valid() bool {
	switch m {
	case ModeComplete, ModeHairstyleOnly, ModeFacialHairOnly:
		return true
	}
	return false
}

// StyleRecommendation is one suggested hairstyle or facial hair style.
type StyleRecommendation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Reasoning   string `json:"reasoning"`
}

// StyleCombination is a paired look. Hairstyle or FacialHair may be empty
// when the analysis mode excludes that axis.
type StyleCombination struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Hairstyle   string `json:"hairstyle"`
	FacialHair  string `json:"facialHair"`
	Reasoning   string `json:"reasoning"`
}

// AnalysisResult is the structured output of one analysis request.
type AnalysisResult struct {
	FaceShape    string                `json:"faceShape"`
	FaceAnalysis string                `json:"faceAnalysis"`
	Hairstyles   []StyleRecommendation `json:"hairstyles"`
	FacialHair   []StyleRecommendation `json:"facialHair"`
	Combinations []StyleCombination    `json:"combinations"`
	GroomingTips []string              `json:"groomingTips"`
}

// Usage contains token usage and cost information for one model call.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
	CostUSD      float64
}

// Analyzer can analyze a facial photo and produce style recommendations.
type Analyzer interface {
	// Analyze takes raw image bytes and returns recommendations for the
	// requested mode.
	Analyze(ctx context.Context, imageData []byte, mimeType string, mode AnalysisMode) (*AnalysisResult, error)
}

// PreviewGenerator renders a photorealistic preview of a style applied to
// the original photo.
type PreviewGenerator interface {
	// GeneratePreview returns the rendered image as a
	// "data:image/png;base64,..." URI.
	GeneratePreview(ctx context.Context, imageData []byte, mimeType, styleDescription string) (string, error)
}
