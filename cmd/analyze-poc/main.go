package main

import (
	"context"
	"fmt"
	"os"

	"github.com/stylescout/stylescout/internal/llm"
	"github.com/stylescout/stylescout/internal/retry"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <image-path> [complete|hairstyle|facial_hair]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment variables:\n")
		fmt.Fprintf(os.Stderr, "  GEMINI_API_KEY - Required\n")
		os.Exit(1)
	}

	imagePath := os.Args[1]
	mode := llm.ModeComplete
	if len(os.Args) >= 3 {
		mode = llm.AnalysisMode(os.Args[2])
		if !mode.Valid() {
			fmt.Fprintf(os.Stderr, "Unknown mode: %s (use complete, hairstyle, or facial_hair)\n", os.Args[2])
			os.Exit(1)
		}
	}

	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read image: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	client, err := llm.NewGeminiClient(ctx, llm.Config{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Retry:  retry.Default(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create client: %v\n", err)
		os.Exit(1)
	}

	result, err := client.Analyze(ctx, imageData, llm.DetectMIMEType(imageData), mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	printResult(result)
}

func printResult(result *llm.AnalysisResult) {
	fmt.Printf("Face shape: %s\n", result.FaceShape)
	fmt.Printf("Analysis:   %s\n", result.FaceAnalysis)

	if len(result.Hairstyles) > 0 {
		fmt.Println("\nHairstyles:")
		for _, rec := range result.Hairstyles {
			fmt.Printf("  - %s: %s\n    %s\n", rec.Name, rec.Description, rec.Reasoning)
		}
	}
	if len(result.FacialHair) > 0 {
		fmt.Println("\nFacial hair:")
		for _, rec := range result.FacialHair {
			fmt.Printf("  - %s: %s\n    %s\n", rec.Name, rec.Description, rec.Reasoning)
		}
	}
	if len(result.Combinations) > 0 {
		fmt.Println("\nCombinations:")
		for _, combo := range result.Combinations {
			fmt.Printf("  - %s (%s + %s)\n    %s\n", combo.Name, combo.Hairstyle, combo.FacialHair, combo.Description)
		}
	}
	if len(result.GroomingTips) > 0 {
		fmt.Println("\nGrooming tips:")
		for _, tip := range result.GroomingTips {
			fmt.Printf("  - %s\n", tip)
		}
	}
}
