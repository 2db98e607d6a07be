package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCompleteResult() *AnalysisResult {
	return &AnalysisResult{
		FaceShape:    "oval",
		FaceAnalysis: "Balanced proportions with a defined jawline.",
		Hairstyles: []StyleRecommendation{
			{Name: "Pompadour", Description: "Volume up top", Reasoning: "Adds height"},
		},
		FacialHair: []StyleRecommendation{
			{Name: "Stubble", Description: "Short growth", Reasoning: "Sharpens the jaw"},
		},
		Combinations: []StyleCombination{
			{Name: "Classic", Description: "Timeless", Hairstyle: "Pompadour", FacialHair: "Stubble", Reasoning: "Cohesive"},
			{Name: "Sharp", Description: "Modern", Hairstyle: "Fade", FacialHair: "Goatee", Reasoning: "Defined"},
			{Name: "Relaxed", Description: "Casual", Hairstyle: "Quiff", FacialHair: "Clean Shaven", Reasoning: "Fresh"},
		},
		GroomingTips: []string{"Use a matte pomade."},
	}
}

func TestValidateForModeComplete(t *testing.T) {
	require.NoError(t, validateForMode(validCompleteResult(), ModeComplete))

	noHair := validCompleteResult()
	noHair.Hairstyles = nil
	assert.Error(t, validateForMode(noHair, ModeComplete))

	noBeard := validCompleteResult()
	noBeard.FacialHair = nil
	assert.Error(t, validateForMode(noBeard, ModeComplete))
}

func TestValidateForModeCompleteRequiresThreeCombinations(t *testing.T) {
	short := validCompleteResult()
	short.Combinations = short.Combinations[:1]
	assert.Error(t, validateForMode(short, ModeComplete))

	long := validCompleteResult()
	long.Combinations = append(long.Combinations, StyleCombination{Name: "Extra"})
	assert.Error(t, validateForMode(long, ModeComplete))
}

func TestValidateForModeHairstyleOnly(t *testing.T) {
	result := validCompleteResult()
	result.FacialHair = nil
	for i := range result.Combinations {
		result.Combinations[i].FacialHair = ""
	}
	require.NoError(t, validateForMode(result, ModeHairstyleOnly))

	leaked := validCompleteResult()
	for i := range leaked.Combinations {
		leaked.Combinations[i].FacialHair = ""
	}
	assert.Error(t, validateForMode(leaked, ModeHairstyleOnly), "facial hair recommendations must be rejected")

	comboLeak := validCompleteResult()
	comboLeak.FacialHair = nil
	assert.Error(t, validateForMode(comboLeak, ModeHairstyleOnly), "combinations carrying facial hair must be rejected")
}

func TestValidateForModeFacialHairOnly(t *testing.T) {
	result := validCompleteResult()
	result.Hairstyles = nil
	for i := range result.Combinations {
		result.Combinations[i].Hairstyle = ""
	}
	require.NoError(t, validateForMode(result, ModeFacialHairOnly))

	leaked := validCompleteResult()
	leaked.Hairstyles = nil
	assert.Error(t, validateForMode(leaked, ModeFacialHairOnly), "combinations carrying hairstyles must be rejected")
}

func TestValidateForModeCommonInvariants(t *testing.T) {
	noCombos := validCompleteResult()
	noCombos.Combinations = nil
	assert.Error(t, validateForMode(noCombos, ModeComplete))

	noShape := validCompleteResult()
	noShape.FaceShape = ""
	assert.Error(t, validateForMode(noShape, ModeComplete))

	assert.Error(t, validateForMode(validCompleteResult(), AnalysisMode("bogus")))
}
