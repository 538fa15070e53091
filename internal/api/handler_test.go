package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/swatchly/swatch/internal/model"
	"github.com/swatchly/swatch/internal/store"
)

// testAPI provides a complete test environment for API handler tests.
type testAPI struct {
	handler      *Handler
	mux          *http.ServeMux
	paletteStore store.PaletteStore
	libraryStore store.LibraryStore
	libraryRoot  string
}

// setupTestAPI creates a test environment with real stores backed by a temp directory.
func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()

	// Keep the global config away from the real home directory
	t.Setenv("HOME", t.TempDir())

	libraryRoot := t.TempDir()
	if err := os.MkdirAll(filepath.Join(libraryRoot, ".swatch", "palettes"), 0755); err != nil {
		t.Fatalf("Failed to create swatch dirs: %v", err)
	}

	ctx, err := BuildLibraryContext(libraryRoot, "", "test-user")
	if err != nil {
		t.Fatalf("Failed to build library context: %v", err)
	}
	if err := ctx.LibraryStore.EnsureInitialized("Test Library"); err != nil {
		t.Fatalf("Failed to initialize library: %v", err)
	}

	handler := NewHandler(store.NewGlobalStore(), ctx)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	return &testAPI{
		handler:      handler,
		mux:          mux,
		paletteStore: ctx.PaletteStore,
		libraryStore: ctx.LibraryStore,
		libraryRoot:  libraryRoot,
	}
}

// request makes an HTTP request and returns the response.
func (api *testAPI) request(method, path string, body any) *httptest.ResponseRecorder {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	api.mux.ServeHTTP(w, req)
	return w
}

// createPalette creates a palette through the API and returns its response.
func (api *testAPI) createPalette(t *testing.T, req CreatePaletteRequest) PaletteResponse {
	t.Helper()
	w := api.request("POST", "/api/v1/palettes", req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to create palette: status %d, body %s", w.Code, w.Body.String())
	}
	var resp PaletteResponse
	decodeJSON(t, w, &resp)
	return resp
}

// decodeJSON decodes the response body into the given target.
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(target); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

// ============================================================================
// Library Endpoint Tests
// ============================================================================

func TestHandler_GetLibrary(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("GET", "/api/v1/library", nil)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var resp LibraryResponse
	decodeJSON(t, w, &resp)

	if resp.Name != "Test Library" {
		t.Errorf("Expected name 'Test Library', got %q", resp.Name)
	}
	if resp.DefaultGridSize < 1 {
		t.Errorf("Expected a resolved default grid size, got %d", resp.DefaultGridSize)
	}
}

// ============================================================================
// Palette Endpoint Tests
// ============================================================================

func TestHandler_ListPalettes_Empty(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("GET", "/api/v1/palettes", nil)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var resp struct {
		Palettes []PaletteResponse `json:"palettes"`
	}
	decodeJSON(t, w, &resp)

	if len(resp.Palettes) != 0 {
		t.Errorf("Expected 0 palettes, got %d", len(resp.Palettes))
	}
}

func TestHandler_CreatePalette_Basic(t *testing.T) {
	api := setupTestAPI(t)

	resp := api.createPalette(t, CreatePaletteRequest{
		Title:    "Sunset Tones",
		GridSize: 3,
		Colors: []model.ColorAssignment{
			{Index: 0, Color: model.ColorEntry{Background: "#ef4444"}},
		},
	})

	if resp.ID == "" {
		t.Error("Expected a generated ID")
	}
	if resp.Alias == "" {
		t.Error("Expected a generated alias")
	}
	if resp.Title != "Sunset Tones" {
		t.Errorf("Expected title 'Sunset Tones', got %q", resp.Title)
	}
	if resp.Creator != "test-user" {
		t.Errorf("Expected creator 'test-user', got %q", resp.Creator)
	}
	if resp.ResolvedSize != 3 {
		t.Errorf("Expected resolved size 3, got %d", resp.ResolvedSize)
	}
}

func TestHandler_CreatePalette_DefaultGridSize(t *testing.T) {
	api := setupTestAPI(t)

	resp := api.createPalette(t, CreatePaletteRequest{Title: "Untitled"})

	if resp.ResolvedSize != 2 {
		t.Errorf("Expected resolved size to fall back to 2, got %d", resp.ResolvedSize)
	}
}

func TestHandler_CreatePalette_MissingTitle(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/palettes", CreatePaletteRequest{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHandler_CreatePalette_InvalidJSON(t *testing.T) {
	api := setupTestAPI(t)

	req := httptest.NewRequest("POST", "/api/v1/palettes", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	api.mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHandler_GetPalette_DenseGrid(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createPalette(t, CreatePaletteRequest{
		Title:    "Corners",
		GridSize: 2,
		Colors: []model.ColorAssignment{
			{Index: 0, Color: model.ColorEntry{Background: "#ef4444"}},
			{Index: 3, Color: model.ColorEntry{Background: "#3b82f6"}},
		},
	})

	w := api.request("GET", "/api/v1/palettes/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp GridResponse
	decodeJSON(t, w, &resp)

	if len(resp.Cells) != 4 {
		t.Fatalf("Expected 4 cells, got %d", len(resp.Cells))
	}
	if resp.Cells[0] == nil || resp.Cells[0].Background != "#ef4444" {
		t.Errorf("Expected cell 0 to be #ef4444, got %+v", resp.Cells[0])
	}
	if resp.Cells[1] != nil || resp.Cells[2] != nil {
		t.Error("Expected unassigned cells to be null")
	}
	if resp.Cells[3] == nil || resp.Cells[3].Background != "#3b82f6" {
		t.Errorf("Expected cell 3 to be #3b82f6, got %+v", resp.Cells[3])
	}
	if resp.TileSize != 120 {
		t.Errorf("Expected tile size 120 for default 240px preview, got %d", resp.TileSize)
	}
}

func TestHandler_GetPalette_TileSizeQuery(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createPalette(t, CreatePaletteRequest{Title: "Thirds", GridSize: 3})

	w := api.request("GET", "/api/v1/palettes/"+created.ID+"?size=100", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp GridResponse
	decodeJSON(t, w, &resp)

	if resp.TileSize != 33 {
		t.Errorf("Expected tile size 33 for 100px preview of a 3x3 grid, got %d", resp.TileSize)
	}
}

func TestHandler_GetPalette_ByAlias(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createPalette(t, CreatePaletteRequest{Title: "Ocean Depths"})

	w := api.request("GET", "/api/v1/palettes/"+created.Alias, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp GridResponse
	decodeJSON(t, w, &resp)

	if resp.ID != created.ID {
		t.Errorf("Expected to resolve alias to palette %s, got %s", created.ID, resp.ID)
	}
}

func TestHandler_GetPalette_NotFound(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("GET", "/api/v1/palettes/nonexistent", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestHandler_UpdatePalette_Title(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createPalette(t, CreatePaletteRequest{Title: "Old Name"})

	newTitle := "Forest Greens"
	w := api.request("PUT", "/api/v1/palettes/"+created.ID, UpdatePaletteRequest{Title: &newTitle})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp GridResponse
	decodeJSON(t, w, &resp)

	if resp.Title != "Forest Greens" {
		t.Errorf("Expected title 'Forest Greens', got %q", resp.Title)
	}
	if resp.Alias == created.Alias {
		t.Error("Expected alias to be regenerated after title change")
	}
}

func TestHandler_UpdatePalette_NotFound(t *testing.T) {
	api := setupTestAPI(t)

	newTitle := "Nope"
	w := api.request("PUT", "/api/v1/palettes/missing", UpdatePaletteRequest{Title: &newTitle})

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestHandler_DeletePalette(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createPalette(t, CreatePaletteRequest{Title: "Doomed"})

	w := api.request("DELETE", "/api/v1/palettes/"+created.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", w.Code)
	}

	w = api.request("GET", "/api/v1/palettes/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected deleted palette to 404, got %d", w.Code)
	}
}

func TestHandler_DeletePalette_NotFound(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("DELETE", "/api/v1/palettes/missing", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

// ============================================================================
// Cell Endpoint Tests
// ============================================================================

func TestHandler_SetCell(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createPalette(t, CreatePaletteRequest{Title: "Cells", GridSize: 2})

	w := api.request("PUT", "/api/v1/palettes/"+created.ID+"/cells/1", SetCellRequest{Background: "#10b981"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp GridResponse
	decodeJSON(t, w, &resp)

	if resp.Cells[1] == nil || resp.Cells[1].Background != "#10b981" {
		t.Errorf("Expected cell 1 to be #10b981, got %+v", resp.Cells[1])
	}
}

func TestHandler_SetCell_LastWriteWins(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createPalette(t, CreatePaletteRequest{Title: "Overwrite", GridSize: 2})

	api.request("PUT", "/api/v1/palettes/"+created.ID+"/cells/0", SetCellRequest{Background: "#ef4444"})
	w := api.request("PUT", "/api/v1/palettes/"+created.ID+"/cells/0", SetCellRequest{Background: "#3b82f6"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp GridResponse
	decodeJSON(t, w, &resp)

	if resp.Cells[0] == nil || resp.Cells[0].Background != "#3b82f6" {
		t.Errorf("Expected the second assignment to win, got %+v", resp.Cells[0])
	}
	if len(resp.Colors) != 1 {
		t.Errorf("Expected a single stored assignment, got %d", len(resp.Colors))
	}
}

func TestHandler_SetCell_OutOfRange(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createPalette(t, CreatePaletteRequest{Title: "Small", GridSize: 2})

	w := api.request("PUT", "/api/v1/palettes/"+created.ID+"/cells/4", SetCellRequest{Background: "#ef4444"})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for out-of-range index, got %d", w.Code)
	}
}

func TestHandler_SetCell_MissingBackground(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createPalette(t, CreatePaletteRequest{Title: "Blank", GridSize: 2})

	w := api.request("PUT", "/api/v1/palettes/"+created.ID+"/cells/0", SetCellRequest{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHandler_ClearCell(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createPalette(t, CreatePaletteRequest{
		Title:    "Clearable",
		GridSize: 2,
		Colors: []model.ColorAssignment{
			{Index: 0, Color: model.ColorEntry{Background: "#ef4444"}},
		},
	})

	w := api.request("DELETE", "/api/v1/palettes/"+created.ID+"/cells/0", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp GridResponse
	decodeJSON(t, w, &resp)

	if resp.Cells[0] != nil {
		t.Errorf("Expected cell 0 to be cleared, got %+v", resp.Cells[0])
	}
}

// ============================================================================
// Action Endpoint Tests
// ============================================================================

func TestHandler_RunAction_Load(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createPalette(t, CreatePaletteRequest{Title: "Loadable"})

	w := api.request("POST", "/api/v1/palettes/"+created.ID+"/actions", ActionRequest{Action: "load"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	cfg, err := api.libraryStore.Load()
	if err != nil {
		t.Fatalf("Failed to load library config: %v", err)
	}
	if cfg.ActivePalette != created.ID {
		t.Errorf("Expected active palette %s, got %s", created.ID, cfg.ActivePalette)
	}
}

func TestHandler_RunAction_Share(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createPalette(t, CreatePaletteRequest{
		Title:    "Shareable",
		GridSize: 2,
		Colors: []model.ColorAssignment{
			{Index: 0, Color: model.ColorEntry{Background: "#ef4444"}},
		},
	})

	w := api.request("POST", "/api/v1/palettes/"+created.ID+"/actions", ActionRequest{Action: "share", Format: "hex"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp ActionResponse
	decodeJSON(t, w, &resp)

	if resp.Export != "#ef4444\n" {
		t.Errorf("Expected hex export, got %q", resp.Export)
	}
}

func TestHandler_RunAction_Delete(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createPalette(t, CreatePaletteRequest{Title: "Removable"})

	w := api.request("POST", "/api/v1/palettes/"+created.ID+"/actions", ActionRequest{Action: "delete"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	w = api.request("GET", "/api/v1/palettes/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected deleted palette to 404, got %d", w.Code)
	}
}

func TestHandler_RunAction_Invalid(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createPalette(t, CreatePaletteRequest{Title: "Confused"})

	w := api.request("POST", "/api/v1/palettes/"+created.ID+"/actions", ActionRequest{Action: "explode"})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown action, got %d", w.Code)
	}
}

// ============================================================================
// Doctor Endpoint Tests
// ============================================================================

func TestHandler_Doctor_Clean(t *testing.T) {
	api := setupTestAPI(t)

	api.createPalette(t, CreatePaletteRequest{Title: "Healthy", GridSize: 2})

	w := api.request("GET", "/api/v1/doctor", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp DoctorResponse
	decodeJSON(t, w, &resp)

	if len(resp.Issues) != 0 {
		t.Errorf("Expected no issues, got %d: %+v", len(resp.Issues), resp.Issues)
	}
}

func TestHandler_Doctor_FlagsOutOfRange(t *testing.T) {
	api := setupTestAPI(t)

	created := api.createPalette(t, CreatePaletteRequest{Title: "Stale", GridSize: 2})

	// Write a stale assignment directly, bypassing service validation
	palette, err := api.paletteStore.Get(created.ID)
	if err != nil {
		t.Fatalf("Failed to get palette: %v", err)
	}
	palette.Colors = append(palette.Colors, model.ColorAssignment{
		Index: 99, Color: model.ColorEntry{Background: "#ef4444"},
	})
	if err := api.paletteStore.Update(palette); err != nil {
		t.Fatalf("Failed to update palette: %v", err)
	}

	w := api.request("GET", "/api/v1/doctor", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp DoctorResponse
	decodeJSON(t, w, &resp)

	if len(resp.Issues) == 0 {
		t.Fatal("Expected doctor to flag the out-of-range index")
	}
}
