package llm

import "google.golang.org/genai"

// analysisSchema constrains the analysis model to structured output that
// unmarshals directly into AnalysisResult.
func analysisSchema() *genai.Schema {
	recommendation := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":        {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
			"reasoning":   {Type: genai.TypeString},
		},
		Required:         []string{"name", "description", "reasoning"},
		PropertyOrdering: []string{"name", "description", "reasoning"},
	}

	combination := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":        {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
			"hairstyle":   {Type: genai.TypeString, Description: "Name of the paired hairstyle, empty string if none."},
			"facialHair":  {Type: genai.TypeString, Description: "Name of the paired facial hair style, empty string if none."},
			"reasoning":   {Type: genai.TypeString},
		},
		Required:         []string{"name", "description", "hairstyle", "facialHair", "reasoning"},
		PropertyOrdering: []string{"name", "description", "hairstyle", "facialHair", "reasoning"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"faceShape":    {Type: genai.TypeString, Description: "e.g. oval, square, round, heart"},
			"faceAnalysis": {Type: genai.TypeString, Description: "Short analysis of the facial features relevant to styling."},
			"hairstyles":   {Type: genai.TypeArray, Items: recommendation},
			"facialHair":   {Type: genai.TypeArray, Items: recommendation},
			"combinations": {Type: genai.TypeArray, Items: combination},
			"groomingTips": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required:         []string{"faceShape", "faceAnalysis", "hairstyles", "facialHair", "combinations", "groomingTips"},
		PropertyOrdering: []string{"faceShape", "faceAnalysis", "hairstyles", "facialHair", "combinations", "groomingTips"},
	}
}
