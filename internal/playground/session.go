// Package playground owns the per-user state machine behind the style
// playground: catalog selections, view mode, preview generation phase, and
// the reveal slider.
package playground

import (
	"errors"
	"strings"
	"time"

	"github.com/stylescout/stylescout/internal/llm"
)

// ViewMode selects which catalog of names is offered.
type ViewMode string

const (
	// ViewRecommended offers the AI-curated subset from the analysis.
	ViewRecommended ViewMode = "recommended"
	// ViewExplore offers the full static catalog.
	ViewExplore ViewMode = "explore"
)

// Phase is the preview generation phase.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseGenerating Phase = "generating"
	PhaseDone       Phase = "done"
	PhaseErrored    Phase = "errored"
)

// GenerationFailedMessage is the fixed user-facing message shown when
// preview generation fails for any reason.
const GenerationFailedMessage = "Could not generate the style preview. Please try again."

var (
	// ErrNoSelection is returned when generation is requested without a
	// hairstyle or facial hair selection.
	ErrNoSelection = errors.New("no style selected")
	// ErrBusy is returned when a generation is already in flight.
	ErrBusy = errors.New("a preview is already being generated")
	// ErrNotGenerating is returned when a generation outcome arrives for a
	// session that is no longer in the Generating phase.
	ErrNotGenerating = errors.New("no preview generation in flight")
)

// Session is the playground state for one uploaded photo. All mutation goes
// through the Store, which serializes access.
type Session struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Uploaded photo, reused as the "before" image.
	Image     []byte
	MIMEType  string
	Analysis  *llm.AnalysisResult
	Mode      llm.AnalysisMode

	ViewMode      ViewMode
	SelectedHair  string // empty = none
	SelectedBeard string // empty = none

	Phase        Phase
	GeneratedURI string
	PreviewID    string
	ErrorMessage string
	SliderPos    float64 // [0,100], fraction of the overlay revealed
}

// ToggleHairstyle applies single-select toggle semantics: selecting the
// current selection clears it.
func (s *Session) ToggleHairstyle(name string) {
	if s.SelectedHair == name {
		s.SelectedHair = ""
		return
	}
	s.SelectedHair = name
}

// ToggleFacialHair applies single-select toggle semantics.
func (s *Session) ToggleFacialHair(name string) {
	if s.SelectedBeard == name {
		s.SelectedBeard = ""
		return
	}
	s.SelectedBeard = name
}

// SetViewMode switches between Recommended and Explore. Selections are kept
// even when the selected name does not exist in the new catalog; a dangling
// selection is harmless and still drives generation.
func (s *Session) SetViewMode(mode ViewMode) {
	s.ViewMode = mode
}

// HasSelection reports whether at least one axis is selected.
func (s *Session) HasSelection() bool {
	return s.SelectedHair != "" || s.SelectedBeard != ""
}

// BeginGeneration moves the session into the Generating phase. It fails
// when nothing is selected or a generation is already in flight.
func (s *Session) BeginGeneration() error {
	if s.Phase == PhaseGenerating {
		return ErrBusy
	}
	if !s.HasSelection() {
		return ErrNoSelection
	}
	s.Phase = PhaseGenerating
	s.GeneratedURI = ""
	s.PreviewID = ""
	s.ErrorMessage = ""
	return nil
}

// CompleteGeneration records a successful preview and recenters the reveal
// slider. Done is only reachable from Generating; an outcome arriving after
// the session left that phase is rejected so stale images cannot land.
func (s *Session) CompleteGeneration(dataURI, previewID string) error {
	if s.Phase != PhaseGenerating {
		return ErrNotGenerating
	}
	s.Phase = PhaseDone
	s.GeneratedURI = dataURI
	s.PreviewID = previewID
	s.ErrorMessage = ""
	s.SliderPos = 50
	return nil
}

// FailGeneration records a failed preview. Selections remain so the user
// can retry. Like CompleteGeneration it only applies from Generating.
func (s *Session) FailGeneration() error {
	if s.Phase != PhaseGenerating {
		return ErrNotGenerating
	}
	s.Phase = PhaseErrored
	s.GeneratedURI = ""
	s.PreviewID = ""
	s.ErrorMessage = GenerationFailedMessage
	return nil
}

// Reset clears the generated image, error state, and slider measurement.
// A session with a generation in flight cannot be reset; the outcome must
// land first.
func (s *Session) Reset() error {
	if s.Phase == PhaseGenerating {
		return ErrBusy
	}
	s.Phase = PhaseIdle
	s.GeneratedURI = ""
	s.PreviewID = ""
	s.ErrorMessage = ""
	s.SliderPos = 0
	return nil
}

// SetSliderPos clamps and stores the reveal slider position.
func (s *Session) SetSliderPos(pos float64) {
	if pos < 0 {
		pos = 0
	}
	if pos > 100 {
		pos = 100
	}
	s.SliderPos = pos
}

// StyleDescription builds the free-text description sent to the preview
// generator from the current selections. Only selected axes contribute a
// fragment.
func (s *Session) StyleDescription() string {
	var parts []string
	if s.SelectedHair != "" {
		parts = append(parts, "Hairstyle: "+s.SelectedHair+".")
	}
	if s.SelectedBeard != "" {
		parts = append(parts, "Facial Hair: "+s.SelectedBeard+".")
	}
	if len(parts) == 0 {
		return ""
	}
	parts = append(parts, "Create a cohesive look.")
	return strings.Join(parts, " ")
}
