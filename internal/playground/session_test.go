package playground

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleHairstyle(t *testing.T) {
	s := &Session{}

	s.ToggleHairstyle("Pompadour")
	assert.Equal(t, "Pompadour", s.SelectedHair)

	// Selecting a different style replaces, not stacks
	s.ToggleHairstyle("Quiff")
	assert.Equal(t, "Quiff", s.SelectedHair)

	// Selecting the current style clears it
	s.ToggleHairstyle("Quiff")
	assert.Empty(t, s.SelectedHair)
}

func TestToggleFacialHair(t *testing.T) {
	s := &Session{}
	s.ToggleFacialHair("Stubble")
	assert.Equal(t, "Stubble", s.SelectedBeard)
	s.ToggleFacialHair("Stubble")
	assert.Empty(t, s.SelectedBeard)
}

func TestSetViewModeKeepsSelections(t *testing.T) {
	s := &Session{ViewMode: ViewRecommended}
	s.ToggleHairstyle("Pompadour")
	s.ToggleFacialHair("Stubble")

	s.SetViewMode(ViewExplore)
	assert.Equal(t, ViewExplore, s.ViewMode)
	assert.Equal(t, "Pompadour", s.SelectedHair)
	assert.Equal(t, "Stubble", s.SelectedBeard)

	s.SetViewMode(ViewRecommended)
	assert.Equal(t, "Pompadour", s.SelectedHair)
}

func TestBeginGeneration(t *testing.T) {
	s := &Session{Phase: PhaseIdle}
	assert.ErrorIs(t, s.BeginGeneration(), ErrNoSelection)

	s.ToggleHairstyle("Fade")
	require.NoError(t, s.BeginGeneration())
	assert.Equal(t, PhaseGenerating, s.Phase)

	assert.ErrorIs(t, s.BeginGeneration(), ErrBusy)
}

func TestBeginGenerationClearsPreviousOutcome(t *testing.T) {
	s := &Session{
		Phase:        PhaseErrored,
		ErrorMessage: GenerationFailedMessage,
		GeneratedURI: "data:image/png;base64,old",
		PreviewID:    "old",
	}
	s.ToggleHairstyle("Fade")

	require.NoError(t, s.BeginGeneration())
	assert.Empty(t, s.ErrorMessage)
	assert.Empty(t, s.GeneratedURI)
	assert.Empty(t, s.PreviewID)
}

func TestCompleteGenerationRecentersSlider(t *testing.T) {
	s := &Session{Phase: PhaseGenerating, SliderPos: 87}
	require.NoError(t, s.CompleteGeneration("data:image/png;base64,abc", "preview1"))

	assert.Equal(t, PhaseDone, s.Phase)
	assert.Equal(t, "data:image/png;base64,abc", s.GeneratedURI)
	assert.Equal(t, "preview1", s.PreviewID)
	assert.Equal(t, 50.0, s.SliderPos)
	assert.Empty(t, s.ErrorMessage)
}

func TestFailGenerationKeepsSelections(t *testing.T) {
	s := &Session{Phase: PhaseGenerating}
	s.ToggleHairstyle("Fade")
	s.ToggleFacialHair("Goatee")

	require.NoError(t, s.FailGeneration())
	assert.Equal(t, PhaseErrored, s.Phase)
	assert.Equal(t, GenerationFailedMessage, s.ErrorMessage)
	assert.Empty(t, s.GeneratedURI)
	assert.Equal(t, "Fade", s.SelectedHair)
	assert.Equal(t, "Goatee", s.SelectedBeard)
}

func TestReset(t *testing.T) {
	s := &Session{
		Phase:        PhaseDone,
		GeneratedURI: "data:image/png;base64,abc",
		PreviewID:    "p",
		SliderPos:    50,
	}
	require.NoError(t, s.Reset())

	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Empty(t, s.GeneratedURI)
	assert.Empty(t, s.PreviewID)
	assert.Zero(t, s.SliderPos)
}

func TestResetRejectedWhileGenerating(t *testing.T) {
	s := &Session{Phase: PhaseGenerating}
	assert.ErrorIs(t, s.Reset(), ErrBusy)
	assert.Equal(t, PhaseGenerating, s.Phase)
}

func TestGenerationOutcomeRequiresGeneratingPhase(t *testing.T) {
	s := &Session{Phase: PhaseIdle}
	assert.ErrorIs(t, s.CompleteGeneration("data:image/png;base64,abc", "p"), ErrNotGenerating)
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Empty(t, s.GeneratedURI)

	assert.ErrorIs(t, s.FailGeneration(), ErrNotGenerating)
	assert.Empty(t, s.ErrorMessage)

	done := &Session{Phase: PhaseDone, GeneratedURI: "data:image/png;base64,current"}
	assert.ErrorIs(t, done.CompleteGeneration("data:image/png;base64,stale", "p2"), ErrNotGenerating)
	assert.Equal(t, "data:image/png;base64,current", done.GeneratedURI)
}

func TestSetSliderPosClamps(t *testing.T) {
	s := &Session{}
	s.SetSliderPos(-10)
	assert.Zero(t, s.SliderPos)
	s.SetSliderPos(150)
	assert.Equal(t, 100.0, s.SliderPos)
	s.SetSliderPos(42.5)
	assert.Equal(t, 42.5, s.SliderPos)
}

func TestStyleDescription(t *testing.T) {
	s := &Session{}
	assert.Empty(t, s.StyleDescription())

	s.ToggleHairstyle("Pompadour")
	assert.Equal(t, "Hairstyle: Pompadour. Create a cohesive look.", s.StyleDescription())

	s.ToggleFacialHair("Stubble")
	assert.Equal(t, "Hairstyle: Pompadour. Facial Hair: Stubble. Create a cohesive look.", s.StyleDescription())

	s.ToggleHairstyle("Pompadour")
	assert.Equal(t, "Facial Hair: Stubble. Create a cohesive look.", s.StyleDescription())
}
