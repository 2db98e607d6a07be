package llm

import "fmt"

// validateForMode checks the parsed result against the invariants of the
// requested mode. The provider is schema-constrained, but the schema cannot
// express per-mode emptiness, so it is enforced here instead of trusting
// provider compliance.
func validateForMode(result *AnalysisResult, mode AnalysisMode) error {
	switch mode {
	case ModeComplete:
		if len(result.Hairstyles) == 0 {
			return fmt.Errorf("complete analysis returned no hairstyles")
		}
		if len(result.FacialHair) == 0 {
			return fmt.Errorf("complete analysis returned no facial hair styles")
		}
		if len(result.Combinations) != 3 {
			return fmt.Errorf("complete analysis returned %d combinations, want 3", len(result.Combinations))
		}
	case ModeHairstyleOnly:
		if len(result.Hairstyles) == 0 {
			return fmt.Errorf("hairstyle analysis returned no hairstyles")
		}
		if len(result.FacialHair) != 0 {
			return fmt.Errorf("hairstyle analysis unexpectedly returned %d facial hair styles", len(result.FacialHair))
		}
		for i, c := range result.Combinations {
			if c.FacialHair != "" {
				return fmt.Errorf("combination %d carries facial hair %q in hairstyle-only mode", i, c.FacialHair)
			}
		}
	case ModeFacialHairOnly:
		if len(result.FacialHair) == 0 {
			return fmt.Errorf("facial hair analysis returned no facial hair styles")
		}
		if len(result.Hairstyles) != 0 {
			return fmt.Errorf("facial hair analysis unexpectedly returned %d hairstyles", len(result.Hairstyles))
		}
		for i, c := range result.Combinations {
			if c.Hairstyle != "" {
				return fmt.Errorf("combination %d carries hairstyle %q in facial-hair-only mode", i, c.Hairstyle)
			}
		}
	default:
		return fmt.Errorf("unknown analysis mode: %q", mode)
	}

	if len(result.Combinations) == 0 {
		return fmt.Errorf("analysis returned no combinations")
	}
	if result.FaceShape == "" {
		return fmt.Errorf("analysis returned empty face shape")
	}
	return nil
}
