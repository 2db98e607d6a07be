package server

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stylescout/stylescout/internal/catalog"
	"github.com/stylescout/stylescout/internal/llm"
	"github.com/stylescout/stylescout/internal/playground"
	"github.com/stylescout/stylescout/internal/storage"
)

type analyzeRequest struct {
	ImageData string `json:"imageData,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Mode      string `json:"mode,omitempty"`
}

type selectRequest struct {
	Axis string `json:"axis"` // "hair" or "beard"
	Name string `json:"name"`
}

type viewRequest struct {
	ViewMode string `json:"viewMode"`
}

type sliderRequest struct {
	Position float64 `json:"position"`
}

// sessionResponse is the full playground state returned after every session
// operation so the front end can render without extra round trips.
type sessionResponse struct {
	SessionID     string              `json:"sessionId"`
	Mode          llm.AnalysisMode    `json:"mode"`
	Analysis      *llm.AnalysisResult `json:"analysis"`
	ViewMode      playground.ViewMode `json:"viewMode"`
	Hairstyles    []catalog.Style     `json:"hairstyles"`
	FacialHair    []catalog.Style     `json:"facialHair"`
	SelectedHair  string              `json:"selectedHair,omitempty"`
	SelectedBeard string              `json:"selectedBeard,omitempty"`
	Phase         playground.Phase    `json:"phase"`
	GeneratedURI  string              `json:"generatedUri,omitempty"`
	PreviewID     string              `json:"previewId,omitempty"`
	ErrorMessage  string              `json:"errorMessage,omitempty"`
	SliderPos     float64             `json:"sliderPos"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	imageData, mimeType, mode, err := s.readAnalyzeInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), imageData, mimeType, mode)
	if err != nil {
		log.Error().Err(err).Str("mode", string(mode)).Msg("analysis failed")
		writeError(w, http.StatusBadGateway, "Analysis failed. Please try again.")
		return
	}

	session := s.sessions.Create(imageData, mimeType, mode, result)
	writeJSON(w, http.StatusOK, sessionState(session))
}

// readAnalyzeInput accepts either a multipart upload (field "image", optional
// field "mode") or a JSON body with base64 imageData or a remote imageUrl.
func (s *Server) readAnalyzeInput(r *http.Request) ([]byte, string, llm.AnalysisMode, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, "", "", fmt.Errorf("failed to parse upload: %w", err)
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			return nil, "", "", errors.New("missing image file")
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to read upload: %w", err)
		}
		if len(data) == 0 {
			return nil, "", "", errors.New("empty image file")
		}
		if len(data) > maxUploadBytes {
			return nil, "", "", errors.New("image too large")
		}
		mode, err := parseMode(r.FormValue("mode"))
		if err != nil {
			return nil, "", "", err
		}
		return data, llm.DetectMIMEType(data), mode, nil
	}

	var req analyzeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&req); err != nil {
		return nil, "", "", fmt.Errorf("invalid request body: %w", err)
	}
	mode, err := parseMode(req.Mode)
	if err != nil {
		return nil, "", "", err
	}

	switch {
	case req.ImageData != "":
		data, mimeType, err := llm.DecodeImagePayload(req.ImageData)
		if err != nil {
			return nil, "", "", err
		}
		return data, mimeType, mode, nil
	case req.ImageURL != "":
		if s.fetcher == nil {
			return nil, "", "", errors.New("imageUrl is not supported")
		}
		data, mimeType, err := s.fetcher.Fetch(r.Context(), req.ImageURL)
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to fetch image: %w", err)
		}
		return data, mimeType, mode, nil
	default:
		return nil, "", "", errors.New("imageData or imageUrl is required")
	}
}

func parseMode(raw string) (llm.AnalysisMode, error) {
	if raw == "" {
		return llm.ModeComplete, nil
	}
	mode := llm.AnalysisMode(raw)
	if !mode.Valid() {
		return "", fmt.Errorf("unknown analysis mode %q", raw)
	}
	return mode, nil
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sessionState(session))
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	session, err := s.sessions.Update(r.PathValue("id"), func(sess *playground.Session) error {
		switch req.Axis {
		case "hair":
			if !knownHairstyle(sess, req.Name) {
				return fmt.Errorf("unknown hairstyle %q", req.Name)
			}
			sess.ToggleHairstyle(req.Name)
		case "beard":
			if !knownFacialHair(sess, req.Name) {
				return fmt.Errorf("unknown facial hair style %q", req.Name)
			}
			sess.ToggleFacialHair(req.Name)
		default:
			return fmt.Errorf("unknown axis %q", req.Axis)
		}
		return nil
	})
	if err != nil {
		writeUpdateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionState(session))
}

func (s *Server) handleViewMode(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mode := playground.ViewMode(req.ViewMode)
	if mode != playground.ViewRecommended && mode != playground.ViewExplore {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown view mode %q", req.ViewMode))
		return
	}

	session, err := s.sessions.Update(r.PathValue("id"), func(sess *playground.Session) error {
		sess.SetViewMode(mode)
		return nil
	})
	if err != nil {
		writeUpdateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionState(session))
}

func (s *Server) handleVisualize(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	session, err := s.sessions.Update(id, func(sess *playground.Session) error {
		return sess.BeginGeneration()
	})
	if err != nil {
		writeUpdateError(w, err)
		return
	}

	dataURI, err := s.generator.GeneratePreview(r.Context(), session.Image, session.MIMEType, session.StyleDescription())
	if err != nil {
		log.Error().Err(err).Str("session_id", id).Msg("preview generation failed")
		session, _ = s.sessions.Update(id, func(sess *playground.Session) error {
			return sess.FailGeneration()
		})
		writeJSON(w, http.StatusBadGateway, sessionState(session))
		return
	}

	previewID, err := s.persistPreview(id, dataURI)
	if err != nil {
		// The preview still renders from the data URI; only download is lost.
		log.Warn().Err(err).Str("session_id", id).Msg("failed to persist preview")
	}

	session, err = s.sessions.Update(id, func(sess *playground.Session) error {
		return sess.CompleteGeneration(dataURI, previewID)
	})
	if err != nil {
		writeUpdateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionState(session))
}

func (s *Server) persistPreview(sessionID, dataURI string) (string, error) {
	png, err := base64.StdEncoding.DecodeString(llm.StripDataURLPrefix(dataURI))
	if err != nil {
		return "", fmt.Errorf("failed to decode preview data URI: %w", err)
	}
	rec := &storage.PreviewRecord{
		ID:        newPreviewID(),
		SessionID: sessionID,
		PNG:       png,
		CreatedAt: time.Now(),
	}
	if err := s.store.SavePreview(rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (s *Server) handleSlider(w http.ResponseWriter, r *http.Request) {
	var req sliderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := s.sessions.Update(r.PathValue("id"), func(sess *playground.Session) error {
		sess.SetSliderPos(req.Position)
		return nil
	})
	if err != nil {
		writeUpdateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionState(session))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Update(r.PathValue("id"), func(sess *playground.Session) error {
		return sess.Reset()
	})
	if err != nil {
		writeUpdateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionState(session))
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetPreview(r.PathValue("id"))
	if err != nil {
		log.Error().Err(err).Msg("failed to load preview")
		writeError(w, http.StatusInternalServerError, "failed to load preview")
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "preview not found")
		return
	}

	filename := fmt.Sprintf("stylescout-custom-%d.png", rec.CreatedAt.UnixMilli())
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(rec.PNG); err != nil {
		log.Warn().Err(err).Msg("failed to write preview body")
	}
}

func writeUpdateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, playground.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, playground.ErrNoSelection):
		writeError(w, http.StatusBadRequest, "select a style before generating a preview")
	case errors.Is(err, playground.ErrBusy):
		writeError(w, http.StatusConflict, playground.ErrBusy.Error())
	case errors.Is(err, playground.ErrNotGenerating):
		writeError(w, http.StatusConflict, playground.ErrNotGenerating.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

// sessionState projects a session into the API response, resolving which
// style lists the current view mode offers.
func sessionState(session playground.Session) sessionResponse {
	resp := sessionResponse{
		SessionID:     session.ID,
		Mode:          session.Mode,
		Analysis:      session.Analysis,
		ViewMode:      session.ViewMode,
		SelectedHair:  session.SelectedHair,
		SelectedBeard: session.SelectedBeard,
		Phase:         session.Phase,
		GeneratedURI:  session.GeneratedURI,
		PreviewID:     session.PreviewID,
		ErrorMessage:  session.ErrorMessage,
		SliderPos:     session.SliderPos,
	}

	if session.ViewMode == playground.ViewExplore {
		resp.Hairstyles = catalog.Hairstyles()
		resp.FacialHair = catalog.FacialHairStyles()
		return resp
	}
	if session.Analysis != nil {
		resp.Hairstyles = recommendedStyles(session.Analysis.Hairstyles)
		resp.FacialHair = recommendedStyles(session.Analysis.FacialHair)
	}
	return resp
}

// A selectable name comes either from the static catalog or from the
// session's analysis recommendations, which may name styles outside it.
func knownHairstyle(sess *playground.Session, name string) bool {
	if catalog.HasHairstyle(name) {
		return true
	}
	if sess.Analysis != nil {
		for _, rec := range sess.Analysis.Hairstyles {
			if rec.Name == name {
				return true
			}
		}
	}
	return false
}

func knownFacialHair(sess *playground.Session, name string) bool {
	if catalog.HasFacialHair(name) {
		return true
	}
	if sess.Analysis != nil {
		for _, rec := range sess.Analysis.FacialHair {
			if rec.Name == name {
				return true
			}
		}
	}
	return false
}

func recommendedStyles(recs []llm.StyleRecommendation) []catalog.Style {
	styles := make([]catalog.Style, 0, len(recs))
	for _, rec := range recs {
		styles = append(styles, catalog.Style{Name: rec.Name, Description: rec.Description})
	}
	return styles
}

func newPreviewID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
