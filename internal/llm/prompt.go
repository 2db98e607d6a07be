package llm

import (
	"fmt"
	"strings"

	"github.com/lithammer/dedent"
)

// personaPreamble is shared by all analysis modes. The mode-specific
// directive is appended to it to form the system instruction.
var personaPreamble = trimDedent(`
	You are a world-class barber and men's style consultant with decades of
	experience in face shape analysis, hairstyling, and grooming. You study
	the photo you are given: the face shape, hairline, hair texture, jawline,
	and current grooming. Your recommendations are specific, flattering, and
	achievable in a real barbershop. You always respond with JSON matching
	the requested schema, nothing else.`)

var modeDirectives = map[AnalysisMode]string{
	ModeComplete: trimDedent(`
		Recommend 3-4 hairstyles and 3-4 facial hair styles suited to this
		face. Then propose exactly 3 combinations, each pairing one of your
		recommended hairstyles with one of your recommended facial hair
		styles into a cohesive look. Fill every field of the schema.`),
	ModeHairstyleOnly: trimDedent(`
		Recommend 4-5 hairstyles suited to this face. Do not recommend any
		facial hair: the facialHair array must be empty. Propose 3
		combinations built from the hairstyles alone; in each combination
		the facialHair field must be an empty string.`),
	ModeFacialHairOnly: trimDedent(`
		Recommend 4-5 facial hair styles suited to this face. Do not
		recommend any hairstyles: the hairstyles array must be empty.
		Propose 3 combinations built from the facial hair styles alone; in
		each combination the hairstyle field must be an empty string.`),
}

// analysisInstruction is the user-turn text sent alongside the photo.
const analysisInstruction = "Analyze this facial photo and provide style recommendations."

// previewInstruction wraps the style description with the constraints the
// image model must honor when editing the photo.
var previewInstruction = trimDedent(`
	Edit this photo of a person to apply the following style: %s

	Rules:
	- Preserve the person's identity, facial features, skin tone, and
	  expression exactly.
	- Keep the original lighting, camera angle, and background.
	- The result must be photorealistic, as if taken in the same session.
	- Change nothing except the hair and facial hair described above.`)

// systemInstruction returns the full system instruction for a mode.
func systemInstruction(mode AnalysisMode) string {
	return personaPreamble + "\n\n" + modeDirectives[mode]
}

// previewPrompt builds the edit instruction for the preview model.
func previewPrompt(styleDescription string) string {
	return fmt.Sprintf(previewInstruction, styleDescription)
}

func trimDedent(s string) string {
	return strings.TrimSpace(dedent.Dedent(s))
}
