package web

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/faceforge/internal/avatar/domain"
	"github.com/louisbranch/faceforge/internal/avatar/gateway"
	"github.com/louisbranch/faceforge/internal/avatar/session"
	apperrors "github.com/louisbranch/faceforge/internal/platform/errors"
	"github.com/louisbranch/faceforge/internal/web/templates"
)

// maxBodyBytes bounds request bodies; configuration patches are tiny.
const maxBodyBytes = 1 << 20

// configWire is the JSON shape of a configuration on the editor API.
type configWire struct {
	HeadShape    string `json:"headShape"`
	HeadColor    string `json:"headColor"`
	HairStyle    string `json:"hairStyle"`
	HairColor    string `json:"hairColor"`
	EyeStyle     string `json:"eyeStyle"`
	EyeColor     string `json:"eyeColor"`
	EyebrowStyle string `json:"eyebrowStyle"`
	NoseStyle    string `json:"noseStyle"`
	MouthStyle   string `json:"mouthStyle"`
	HasBlush     bool   `json:"hasBlush"`
}

// patchWire is the JSON shape of a partial update. Absent fields keep
// their current value.
type patchWire struct {
	HeadShape    *string `json:"headShape"`
	HeadColor    *string `json:"headColor"`
	HairStyle    *string `json:"hairStyle"`
	HairColor    *string `json:"hairColor"`
	EyeStyle     *string `json:"eyeStyle"`
	EyeColor     *string `json:"eyeColor"`
	EyebrowStyle *string `json:"eyebrowStyle"`
	NoseStyle    *string `json:"noseStyle"`
	MouthStyle   *string `json:"mouthStyle"`
	HasBlush     *bool   `json:"hasBlush"`
}

func toWire(cfg domain.Configuration) configWire {
	return configWire{
		HeadShape:    string(cfg.HeadShape),
		HeadColor:    cfg.HeadColor,
		HairStyle:    string(cfg.HairStyle),
		HairColor:    cfg.HairColor,
		EyeStyle:     string(cfg.EyeStyle),
		EyeColor:     cfg.EyeColor,
		EyebrowStyle: string(cfg.EyebrowStyle),
		NoseStyle:    string(cfg.NoseStyle),
		MouthStyle:   string(cfg.MouthStyle),
		HasBlush:     cfg.HasBlush,
	}
}

func (p patchWire) toPatch() domain.PatchInput {
	return domain.PatchInput{
		HeadShape:    p.HeadShape,
		HeadColor:    p.HeadColor,
		HairStyle:    p.HairStyle,
		HairColor:    p.HairColor,
		EyeStyle:     p.EyeStyle,
		EyeColor:     p.EyeColor,
		EyebrowStyle: p.EyebrowStyle,
		NoseStyle:    p.NoseStyle,
		MouthStyle:   p.MouthStyle,
		HasBlush:     p.HasBlush,
	}
}

// Handler serves the editor API and debug page for one avatar session.
type Handler struct {
	session  *session.Session
	palette  Palette
	identity string
}

// NewHandler builds the editor HTTP handler. identity labels the debug
// page; it is empty when the editor runs without persistence.
func NewHandler(sess *session.Session, palette Palette, identity string) http.Handler {
	h := &Handler{session: sess, palette: palette, identity: identity}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleEditorPage)
	mux.HandleFunc("GET /api/avatar/config", h.handleGetConfig)
	mux.HandleFunc("PATCH /api/avatar/config", h.handlePatchConfig)
	mux.HandleFunc("GET /api/avatar/mesh", h.handleGetMesh)
	mux.HandleFunc("POST /api/avatar/save", h.handleSave)
	mux.HandleFunc("POST /api/avatar/load", h.handleLoad)
	mux.HandleFunc("GET /api/palette", h.handlePalette)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func (h *Handler) handleEditorPage(w http.ResponseWriter, r *http.Request) {
	cfg := h.session.Configuration()
	hierarchy, err := json.MarshalIndent(h.session.Hierarchy(), "", "  ")
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.CodeUnknown, "encode hierarchy", err))
		return
	}
	view := templates.EditorPageView{
		Identity:      h.identity,
		Busy:          h.session.Busy(),
		Fields:        fieldRows(cfg),
		HierarchyJSON: string(hierarchy),
	}
	templ.Handler(templates.EditorPage(view)).ServeHTTP(w, r)
}

func fieldRows(cfg domain.Configuration) []templates.FieldRow {
	return []templates.FieldRow{
		{Label: "Head shape", Value: string(cfg.HeadShape)},
		{Label: "Head color", Value: cfg.HeadColor, Color: cfg.HeadColor},
		{Label: "Hair style", Value: string(cfg.HairStyle)},
		{Label: "Hair color", Value: cfg.HairColor, Color: cfg.HairColor},
		{Label: "Eye style", Value: string(cfg.EyeStyle)},
		{Label: "Eye color", Value: cfg.EyeColor, Color: cfg.EyeColor},
		{Label: "Eyebrow style", Value: string(cfg.EyebrowStyle)},
		{Label: "Nose style", Value: string(cfg.NoseStyle)},
		{Label: "Mouth style", Value: string(cfg.MouthStyle)},
		{Label: "Blush", Value: boolLabel(cfg.HasBlush)},
	}
}

func boolLabel(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toWire(h.session.Configuration()))
}

func (h *Handler) handlePatchConfig(w http.ResponseWriter, r *http.Request) {
	var patch patchWire
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&patch); err != nil {
		writeError(w, apperrors.Wrap(apperrors.CodeInvalidPatch, "malformed configuration patch", err))
		return
	}
	cfg, err := h.session.Mutate(patch.toPatch())
	if err != nil {
		writeError(w, sessionError(err, "apply configuration patch"))
		return
	}
	writeJSON(w, http.StatusOK, toWire(cfg))
}

func (h *Handler) handleGetMesh(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Hierarchy())
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Save(r.Context()); err != nil {
		writeError(w, sessionError(err, "save avatar"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.session.Load(r.Context())
	if errors.Is(err, gateway.ErrNoRecord) {
		writeError(w, apperrors.New(apperrors.CodeNotFound, "no saved avatar for this identity"))
		return
	}
	if err != nil {
		writeError(w, sessionError(err, "load avatar"))
		return
	}
	writeJSON(w, http.StatusOK, toWire(cfg))
}

func (h *Handler) handlePalette(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.palette)
}

// sessionError maps session failures to coded errors for the API.
func sessionError(err error, operation string) error {
	if errors.Is(err, session.ErrBusy) {
		return apperrors.New(apperrors.CodeSessionBusy, "another save or load is in progress")
	}
	return apperrors.Wrap(apperrors.CodeUnknown, operation, err)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		domainErr = apperrors.Wrap(apperrors.CodeUnknown, err.Error(), err)
	}
	writeJSON(w, domainErr.Code.HTTPStatus(), map[string]string{
		"code":    string(domainErr.Code),
		"message": domainErr.Message,
	})
}
