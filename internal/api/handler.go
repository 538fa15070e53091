package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/swatchly/swatch/internal/config"
	"github.com/swatchly/swatch/internal/grid"
	"github.com/swatchly/swatch/internal/model"
	"github.com/swatchly/swatch/internal/service"
	"github.com/swatchly/swatch/internal/store"
)

// defaultPreviewPixels is the overall preview tile edge used to compute
// per-cell tile sizes when the client doesn't ask for a specific size.
const defaultPreviewPixels = 240

// PaletteResponse wraps a Palette for JSON API responses, including the
// resolved grid size so clients never re-implement the fallback rule.
type PaletteResponse struct {
	ID              string                  `json:"id"`
	Alias           string                  `json:"alias"`
	AliasExplicit   bool                    `json:"alias_explicit"`
	Title           string                  `json:"title"`
	GridSize        int                     `json:"grid_size"`
	ResolvedSize    int                     `json:"resolved_size"`
	Colors          []model.ColorAssignment `json:"colors"`
	Creator         string                  `json:"creator"`
	CreatedAtMillis int64                   `json:"created_at_millis"`
	UpdatedAtMillis int64                   `json:"updated_at_millis"`
}

// toPaletteResponse converts a model.Palette to a PaletteResponse for API output.
func toPaletteResponse(p *model.Palette) PaletteResponse {
	colors := p.Colors
	if colors == nil {
		colors = []model.ColorAssignment{}
	}
	return PaletteResponse{
		ID:              p.ID,
		Alias:           p.Alias,
		AliasExplicit:   p.AliasExplicit,
		Title:           p.Title,
		GridSize:        p.GridSize,
		ResolvedSize:    grid.ResolveSize(p.GridSize),
		Colors:          colors,
		Creator:         p.Creator,
		CreatedAtMillis: p.CreatedAtMillis,
		UpdatedAtMillis: p.UpdatedAtMillis,
	}
}

// toPaletteResponses converts a slice of model.Palette to PaletteResponses.
func toPaletteResponses(palettes []*model.Palette) []PaletteResponse {
	responses := make([]PaletteResponse, len(palettes))
	for i, p := range palettes {
		responses[i] = toPaletteResponse(p)
	}
	return responses
}

// GridResponse is a PaletteResponse plus the rendered dense grid.
// Cells is always resolved_size squared long; empty cells are null.
type GridResponse struct {
	PaletteResponse
	Cells    []*model.ColorEntry `json:"cells"`
	TileSize int                 `json:"tile_size"`
}

// toGridResponse builds the dense grid payload for a palette. overall is the
// preview edge length in pixels used to derive the per-cell tile size.
func toGridResponse(p *model.Palette, overall int) GridResponse {
	return GridResponse{
		PaletteResponse: toPaletteResponse(p),
		Cells:           grid.Build(p),
		TileSize:        grid.TileSize(overall, p.GridSize),
	}
}

// Handler contains all HTTP handlers for the API.
//
// Design: single-user, single-session. The Handler holds one active
// LibraryContext that is shared by all requests. SwitchLibrary swaps it
// atomically. This is intentional: `swatch serve` is a local tool, not a
// multi-tenant server. All connected clients (browser tabs) see the same
// library.
//
// Lifecycle: globalStore is read fresh on each ListAllLibraries/SwitchLibrary
// call (never cached), so external changes to ~/.config/swatch/config.toml
// are picked up immediately.
type Handler struct {
	globalStore     store.GlobalStore
	mu              sync.RWMutex
	current         *LibraryContext
	onLibrarySwitch func(newLibraryRoot string) // Called when library is switched
}

// NewHandler creates a new handler with the given dependencies.
func NewHandler(globalStore store.GlobalStore, ctx *LibraryContext) *Handler {
	return &Handler{
		globalStore: globalStore,
		current:     ctx,
	}
}

// SetOnLibrarySwitch sets a callback that's called when the active library changes.
// Used by Server to update the file watcher when libraries are switched.
func (h *Handler) SetOnLibrarySwitch(fn func(newLibraryRoot string)) {
	h.onLibrarySwitch = fn
}

// ctx returns the current LibraryContext under read lock.
// The returned context is immutable; callers should not modify it.
func (h *Handler) ctx() *LibraryContext {
	h.mu.RLock()
	c := h.current
	h.mu.RUnlock()
	return c
}

// RegisterRoutes sets up all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Library routes
	mux.HandleFunc("GET /api/v1/library", h.GetLibrary)
	mux.HandleFunc("GET /favicon.svg", h.GetFavicon)

	// Cross-library routes
	mux.HandleFunc("GET /api/v1/all-libraries", h.ListAllLibraries)
	mux.HandleFunc("POST /api/v1/switch", h.SwitchLibrary)

	// Palette routes
	mux.HandleFunc("GET /api/v1/palettes", h.ListPalettes)
	mux.HandleFunc("POST /api/v1/palettes", h.CreatePalette)
	mux.HandleFunc("GET /api/v1/palettes/{id}", h.GetPalette)
	mux.HandleFunc("PUT /api/v1/palettes/{id}", h.UpdatePalette)
	mux.HandleFunc("DELETE /api/v1/palettes/{id}", h.DeletePalette)

	// Cell routes
	mux.HandleFunc("PUT /api/v1/palettes/{id}/cells/{index}", h.SetCell)
	mux.HandleFunc("DELETE /api/v1/palettes/{id}/cells/{index}", h.ClearCell)

	// Action menu route
	mux.HandleFunc("POST /api/v1/palettes/{id}/actions", h.RunAction)

	// Doctor route
	mux.HandleFunc("GET /api/v1/doctor", h.Doctor)

	// Static files (frontend)
	mux.Handle("/", h.StaticHandler())
}

// --- Library Handlers ---

// LibraryResponse is the JSON response for library metadata.
type LibraryResponse struct {
	Name            string `json:"name"`
	ActivePalette   string `json:"active_palette,omitempty"`
	DefaultGridSize int    `json:"default_grid_size"`
}

// GetLibrary returns the library metadata.
func (h *Handler) GetLibrary(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.ctx().LibraryStore.Load()
	if err != nil {
		Error(w, err)
		return
	}

	name := cfg.Name
	if name == "" {
		name = "Swatch"
	}

	JSON(w, http.StatusOK, LibraryResponse{
		Name:            name,
		ActivePalette:   cfg.ActivePalette,
		DefaultGridSize: grid.ResolveSize(cfg.DefaultGridSize),
	})
}

// --- Palette Handlers ---

// ListPalettes returns all palettes.
func (h *Handler) ListPalettes(w http.ResponseWriter, r *http.Request) {
	palettes, err := h.ctx().PaletteService.List()
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{"palettes": toPaletteResponses(palettes)})
}

// CreatePaletteRequest is the JSON body for creating a palette.
type CreatePaletteRequest struct {
	Title    string                  `json:"title"`
	GridSize int                     `json:"grid_size,omitempty"`
	Colors   []model.ColorAssignment `json:"colors,omitempty"`
}

// CreatePalette creates a new palette.
func (h *Handler) CreatePalette(w http.ResponseWriter, r *http.Request) {
	var req CreatePaletteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	if req.Title == "" {
		BadRequest(w, "title is required")
		return
	}

	palette, err := h.ctx().PaletteService.Save(service.SaveInput{
		Title:    req.Title,
		GridSize: req.GridSize,
		Colors:   req.Colors,
		Creator:  h.ctx().Creator,
	})
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusCreated, toPaletteResponse(palette))
}

// previewPixels extracts the requested overall preview size from the query
// string, falling back to the default for missing or invalid values.
func previewPixels(r *http.Request) int {
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultPreviewPixels
}

// GetPalette returns a single palette with its dense grid.
func (h *Handler) GetPalette(w http.ResponseWriter, r *http.Request) {
	paletteID := r.PathValue("id")

	palette, err := h.findPalette(paletteID)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, toGridResponse(palette, previewPixels(r)))
}

// UpdatePaletteRequest is the JSON body for updating a palette.
type UpdatePaletteRequest struct {
	Title    *string `json:"title,omitempty"`
	Alias    *string `json:"alias,omitempty"`
	GridSize *int    `json:"grid_size,omitempty"`
}

// UpdatePalette updates an existing palette.
func (h *Handler) UpdatePalette(w http.ResponseWriter, r *http.Request) {
	paletteID := r.PathValue("id")

	palette, err := h.findPalette(paletteID)
	if err != nil {
		Error(w, err)
		return
	}

	var req UpdatePaletteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	updated, err := h.ctx().PaletteService.Edit(palette.ID, service.EditInput{
		Title:    req.Title,
		Alias:    req.Alias,
		GridSize: req.GridSize,
	})
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, toGridResponse(updated, previewPixels(r)))
}

// DeletePalette deletes a palette.
func (h *Handler) DeletePalette(w http.ResponseWriter, r *http.Request) {
	paletteID := r.PathValue("id")

	palette, err := h.findPalette(paletteID)
	if err != nil {
		Error(w, err)
		return
	}

	if err := h.ctx().PaletteService.Delete(palette.ID); err != nil {
		Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Cell Handlers ---

// SetCellRequest is the JSON body for assigning a color to a cell.
type SetCellRequest struct {
	Background string `json:"background"`
	Effect     string `json:"effect,omitempty"`
}

// SetCell assigns a color to a cell index.
func (h *Handler) SetCell(w http.ResponseWriter, r *http.Request) {
	paletteID := r.PathValue("id")

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		BadRequest(w, "invalid cell index")
		return
	}

	palette, err := h.findPalette(paletteID)
	if err != nil {
		Error(w, err)
		return
	}

	var req SetCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if req.Background == "" {
		BadRequest(w, "background is required")
		return
	}

	updated, err := h.ctx().PaletteService.SetColor(palette.ID, index, model.ColorEntry{
		Background: req.Background,
		Effect:     req.Effect,
	})
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, toGridResponse(updated, previewPixels(r)))
}

// ClearCell removes the color assignment at a cell index.
func (h *Handler) ClearCell(w http.ResponseWriter, r *http.Request) {
	paletteID := r.PathValue("id")

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		BadRequest(w, "invalid cell index")
		return
	}

	palette, err := h.findPalette(paletteID)
	if err != nil {
		Error(w, err)
		return
	}

	updated, err := h.ctx().PaletteService.ClearColor(palette.ID, index)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, toGridResponse(updated, previewPixels(r)))
}

// --- Action Handlers ---

// ActionRequest is the JSON body for the palette action menu. The action tag
// is applied to the palette identified by the URL path; the palette's stored
// ID is always the one forwarded to services.
type ActionRequest struct {
	Action string `json:"action"`
	Format string `json:"format,omitempty"` // For share: hex, css, or json
}

// ActionResponse is the JSON response for an executed action.
type ActionResponse struct {
	Action    string `json:"action"`
	PaletteID string `json:"palette_id"`
	Export    string `json:"export,omitempty"` // For share
}

// RunAction executes a menu action against a palette.
func (h *Handler) RunAction(w http.ResponseWriter, r *http.Request) {
	paletteID := r.PathValue("id")

	palette, err := h.findPalette(paletteID)
	if err != nil {
		Error(w, err)
		return
	}

	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	action, err := model.ParseAction(req.Action)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	resp := ActionResponse{Action: string(action), PaletteID: palette.ID}

	switch action {
	case model.ActionLoad:
		if _, err := h.ctx().PaletteService.Load(palette.ID); err != nil {
			Error(w, err)
			return
		}
		JSON(w, http.StatusOK, resp)

	case model.ActionEyePreview:
		JSON(w, http.StatusOK, toGridResponse(palette, previewPixels(r)))

	case model.ActionShare:
		format := service.ShareFormatHex
		if req.Format != "" {
			format, err = service.ParseShareFormat(req.Format)
			if err != nil {
				BadRequest(w, err.Error())
				return
			}
		}
		export, err := h.ctx().ShareService.Export(palette.ID, format)
		if err != nil {
			Error(w, err)
			return
		}
		resp.Export = export
		JSON(w, http.StatusOK, resp)

	case model.ActionDelete:
		if err := h.ctx().PaletteService.Delete(palette.ID); err != nil {
			Error(w, err)
			return
		}
		JSON(w, http.StatusOK, resp)
	}
}

// findPalette resolves a palette by ID or alias from the current context.
func (h *Handler) findPalette(idOrAlias string) (*model.Palette, error) {
	palette, err := h.ctx().PaletteService.Get(idOrAlias)
	if err == nil {
		return palette, nil
	}
	return h.ctx().PaletteStore.FindByAlias(idOrAlias)
}

// --- Doctor Handler ---

// DoctorResponse is the JSON response for the doctor endpoint.
type DoctorResponse struct {
	Issues []service.Issue `json:"issues"`
}

// Doctor runs the data consistency checks.
func (h *Handler) Doctor(w http.ResponseWriter, r *http.Request) {
	issues, err := h.ctx().DoctorService.Check()
	if err != nil {
		Error(w, err)
		return
	}
	if issues == nil {
		issues = []service.Issue{}
	}
	JSON(w, http.StatusOK, DoctorResponse{Issues: issues})
}

// --- Cross-Library Handlers ---

// LibraryEntry represents a single registered library.
type LibraryEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// SkippedLibrary describes a registered library that couldn't be listed.
type SkippedLibrary struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// AllLibrariesResponse is the JSON response for listing all registered libraries.
type AllLibrariesResponse struct {
	Libraries          []LibraryEntry   `json:"libraries"`
	CurrentLibraryPath string           `json:"current_library_path"`
	Skipped            []SkippedLibrary `json:"skipped,omitempty"`
}

// ListAllLibraries returns all libraries registered in the global config.
func (h *Handler) ListAllLibraries(w http.ResponseWriter, r *http.Request) {
	globalCfg, err := h.globalStore.Load()
	if err != nil {
		Error(w, fmt.Errorf("failed to load global config: %w", err))
		return
	}

	var libraries []LibraryEntry
	var skipped []SkippedLibrary

	for libraryName, libraryPath := range globalCfg.Libraries {
		dataLocation := ""
		if extras := globalCfg.GetLibraryExtras(libraryPath); extras != nil {
			dataLocation = extras.DataLocation
		}

		paths := config.NewPaths(libraryPath, dataLocation)
		libraryStore := store.NewLibraryStore(paths)

		if !libraryStore.Exists() {
			log.Printf("Skipping library %q (%s): no swatch data", libraryName, libraryPath)
			skipped = append(skipped, SkippedLibrary{
				Name:   libraryName,
				Path:   libraryPath,
				Reason: "no swatch data found",
			})
			continue
		}

		// Prefer the display name from the library config
		displayName := libraryName
		if cfg, err := libraryStore.Load(); err == nil && cfg.Name != "" {
			displayName = cfg.Name
		}

		libraries = append(libraries, LibraryEntry{
			Name: displayName,
			Path: libraryPath,
		})
	}

	if libraries == nil {
		libraries = []LibraryEntry{}
	}

	JSON(w, http.StatusOK, AllLibrariesResponse{
		Libraries:          libraries,
		CurrentLibraryPath: h.ctx().LibraryRoot,
		Skipped:            skipped,
	})
}

// SwitchLibraryRequest is the JSON body for switching libraries.
type SwitchLibraryRequest struct {
	LibraryPath string `json:"library_path"`
}

// SwitchLibraryResponse is the JSON response after switching libraries.
type SwitchLibraryResponse struct {
	LibraryName string `json:"library_name"`
	Palettes    int    `json:"palettes"`
}

// SwitchLibrary switches the handler's active library context.
func (h *Handler) SwitchLibrary(w http.ResponseWriter, r *http.Request) {
	var req SwitchLibraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	if req.LibraryPath == "" {
		BadRequest(w, "library_path is required")
		return
	}

	// Validate the path is a registered library
	globalCfg, err := h.globalStore.Load()
	if err != nil {
		Error(w, fmt.Errorf("failed to load global config: %w", err))
		return
	}

	registered := false
	for _, path := range globalCfg.Libraries {
		if path == req.LibraryPath {
			registered = true
			break
		}
	}
	if !registered {
		NotFound(w, "library", req.LibraryPath)
		return
	}

	dataLocation := ""
	if extras := globalCfg.GetLibraryExtras(req.LibraryPath); extras != nil {
		dataLocation = extras.DataLocation
	}

	// Build new context
	newCtx, err := BuildLibraryContext(req.LibraryPath, dataLocation, h.ctx().Creator)
	if err != nil {
		Error(w, fmt.Errorf("failed to switch library: %w", err))
		return
	}

	if !newCtx.LibraryStore.Exists() {
		BadRequest(w, "library has no swatch data")
		return
	}

	palettes, err := newCtx.PaletteService.List()
	if err != nil {
		Error(w, err)
		return
	}

	libraryName := ""
	if cfg, err := newCtx.LibraryStore.Load(); err == nil {
		libraryName = cfg.Name
	}
	if libraryName == "" {
		for name, path := range globalCfg.Libraries {
			if path == req.LibraryPath {
				libraryName = name
				break
			}
		}
	}

	// Swap context
	h.mu.Lock()
	h.current = newCtx
	h.mu.Unlock()

	// Notify server to update file watcher
	if h.onLibrarySwitch != nil {
		h.onLibrarySwitch(newCtx.LibraryRoot)
	}

	JSON(w, http.StatusOK, SwitchLibraryResponse{
		LibraryName: libraryName,
		Palettes:    len(palettes),
	})
}
