package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemInstructionIncludesModeDirective(t *testing.T) {
	complete := systemInstruction(ModeComplete)
	assert.Contains(t, complete, "barber")
	assert.Contains(t, complete, "exactly 3 combinations")

	hair := systemInstruction(ModeHairstyleOnly)
	assert.Contains(t, hair, "facialHair array must be empty")

	beard := systemInstruction(ModeFacialHairOnly)
	assert.Contains(t, beard, "hairstyles array must be empty")
}

func TestPreviewPrompt(t *testing.T) {
	prompt := previewPrompt("Hairstyle: Pompadour.")
	assert.Contains(t, prompt, "Hairstyle: Pompadour.")
	assert.Contains(t, prompt, "photorealistic")
	assert.Contains(t, prompt, "identity")
}

func TestTrimDedent(t *testing.T) {
	out := trimDedent(`
		line one
		line two`)
	assert.Equal(t, "line one\nline two", out)
	assert.False(t, strings.HasPrefix(out, "\n"))
}
