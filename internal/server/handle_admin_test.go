package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/playperu/cipherchamber/internal/escaperoom"
)

func adminLogin(t *testing.T, r http.Handler) []*http.Cookie {
	t.Helper()
	body, _ := json.Marshal(AdminLoginRequest{Email: "admin@cipherchamber.local", Password: "changeme"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}

func adminDo(t *testing.T, r http.Handler, method, path string, cookies []*http.Cookie, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminLoginGoodCredentials(t *testing.T) {
	r := testRouter(t)

	body, _ := json.Marshal(AdminLoginRequest{Email: "admin@cipherchamber.local", Password: "changeme"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp AdminMeResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Email != "admin@cipherchamber.local" {
		t.Errorf("expected email admin@cipherchamber.local, got %q", resp.Email)
	}

	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected admin_session cookie to be set")
	}
}

func TestAdminLoginBadCredentials(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		name   string
		req    AdminLoginRequest
		status int
	}{
		{"wrong password", AdminLoginRequest{Email: "admin@cipherchamber.local", Password: "nope"}, http.StatusUnauthorized},
		{"unknown email", AdminLoginRequest{Email: "who@cipherchamber.local", Password: "changeme"}, http.StatusUnauthorized},
		{"empty", AdminLoginRequest{}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := adminDo(t, r, http.MethodPost, "/api/admin/login", nil, tt.req)
			if w.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, w.Code)
			}
		})
	}
}

func TestAdminMeAndLogout(t *testing.T) {
	r := testRouter(t)
	cookies := adminLogin(t, r)

	w := adminDo(t, r, http.MethodGet, "/api/admin/me", cookies, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", w.Code)
	}

	if w := adminDo(t, r, http.MethodPost, "/api/admin/logout", cookies, nil); w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}

	if w := adminDo(t, r, http.MethodGet, "/api/admin/me", cookies, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("me after logout: expected 401, got %d", w.Code)
	}
}

func TestAdminRoutesRequireCookie(t *testing.T) {
	r := testRouter(t)

	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/admin/me"},
		{http.MethodGet, "/api/admin/puzzles"},
		{http.MethodPost, "/api/admin/rooms"},
		{http.MethodPut, "/api/admin/rooms/1"},
		{http.MethodDelete, "/api/admin/rooms/1"},
	}
	for _, p := range paths {
		if w := adminDo(t, r, p.method, p.path, nil, nil); w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", p.method, p.path, w.Code)
		}
	}
}

func TestAdminListPuzzlesIncludesSolutions(t *testing.T) {
	r := testRouter(t)
	cookies := adminLogin(t, r)

	w := adminDo(t, r, http.MethodGet, "/api/admin/puzzles", cookies, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"solution"`) {
		t.Error("admin puzzle list should carry solutions")
	}

	var puzzles []escaperoom.Puzzle
	json.NewDecoder(w.Body).Decode(&puzzles)
	if len(puzzles) != 11 {
		t.Errorf("expected 11 puzzles, got %d", len(puzzles))
	}
}

func TestAdminRoomCRUD(t *testing.T) {
	r := testRouter(t)
	cookies := adminLogin(t, r)

	create := AdminRoomRequest{
		Name:          "  The Attic ",
		Difficulty:    "medium",
		PuzzleIDs:     []int{2, 6},
		EstimatedTime: "5 min",
	}
	w := adminDo(t, r, http.MethodPost, "/api/admin/rooms", cookies, create)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var room escaperoom.Room
	json.NewDecoder(w.Body).Decode(&room)
	if room.ID != 4 || room.Name != "The Attic" || room.Difficulty != escaperoom.DifficultyMedium {
		t.Fatalf("unexpected room %+v", room)
	}

	// Public catalogue sees the new room with a default layout.
	w = adminDo(t, r, http.MethodGet, "/api/rooms/4", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}
	json.NewDecoder(w.Body).Decode(&room)
	if len(room.Hotspots) == 0 {
		t.Error("expected a default hotspot layout")
	}

	update := create
	update.Name = "The Loft"
	update.PuzzleIDs = []int{6}
	w = adminDo(t, r, http.MethodPut, "/api/admin/rooms/4", cookies, update)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	json.NewDecoder(w.Body).Decode(&room)
	if room.ID != 4 || room.Name != "The Loft" || len(room.PuzzleIDs) != 1 {
		t.Errorf("unexpected updated room %+v", room)
	}

	if w := adminDo(t, r, http.MethodPut, "/api/admin/rooms/40", cookies, update); w.Code != http.StatusNotFound {
		t.Errorf("update missing: expected 404, got %d", w.Code)
	}

	if w := adminDo(t, r, http.MethodDelete, "/api/admin/rooms/4", cookies, nil); w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	if w := adminDo(t, r, http.MethodDelete, "/api/admin/rooms/4", cookies, nil); w.Code != http.StatusNotFound {
		t.Errorf("delete again: expected 404, got %d", w.Code)
	}
}

func TestAdminRoomValidation(t *testing.T) {
	r := testRouter(t)
	cookies := adminLogin(t, r)

	valid := AdminRoomRequest{Name: "Cellar", Difficulty: "Easy", PuzzleIDs: []int{1}}

	tests := []struct {
		name   string
		mutate func(*AdminRoomRequest)
	}{
		{"missing name", func(r *AdminRoomRequest) { r.Name = " " }},
		{"bad difficulty", func(r *AdminRoomRequest) { r.Difficulty = "Nightmare" }},
		{"no puzzles", func(r *AdminRoomRequest) { r.PuzzleIDs = nil }},
		{"unknown puzzle", func(r *AdminRoomRequest) { r.PuzzleIDs = []int{1, 99} }},
		{"repeated puzzle", func(r *AdminRoomRequest) { r.PuzzleIDs = []int{1, 1} }},
		{"duplicate hotspot", func(r *AdminRoomRequest) {
			r.Hotspots = []escaperoom.Hotspot{{ID: "door"}, {ID: "door"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			w := adminDo(t, r, http.MethodPost, "/api/admin/rooms", cookies, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestAdminDeleteRoomWithSessions(t *testing.T) {
	r := testRouter(t)
	cookies := adminLogin(t, r)

	startGame(t, r, 2)

	w := adminDo(t, r, http.MethodDelete, "/api/admin/rooms/2", cookies, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if w := adminDo(t, r, http.MethodGet, "/api/rooms/2", nil, nil); w.Code != http.StatusOK {
		t.Errorf("room should still exist, got %d", w.Code)
	}
}

func TestAdminRoomEditKeepsRunningGame(t *testing.T) {
	r := testRouter(t)
	cookies := adminLogin(t, r)
	token := startGame(t, r, 1)

	edit := AdminRoomRequest{Name: "The Study", Difficulty: "Easy", PuzzleIDs: []int{4, 5, 6}}
	if w := adminDo(t, r, http.MethodPut, "/api/admin/rooms/1", cookies, edit); w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w := do(t, r, http.MethodPost, "/api/game/hotspots/door", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("hotspot: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	clicked := decode[HotspotResponse](t, w)
	if clicked.Puzzle == nil || clicked.Puzzle.ID != 1 {
		t.Fatalf("expected door to open puzzle 1, got %+v", clicked.Puzzle)
	}

	w = do(t, r, http.MethodPost, "/api/game/puzzles/1/solve", token, SolveRequest{Answer: "gold"})
	if w.Code != http.StatusOK {
		t.Fatalf("solve: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if resp := decode[SolveResponse](t, w); !resp.IsCorrect {
		t.Fatalf("expected correct, got %+v", resp)
	}

	w = do(t, r, http.MethodGet, "/api/game/state", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("state: expected 200, got %d", w.Code)
	}
	state := decode[GameStateResponse](t, w)
	want := map[string]int{"door": 1, "desk": 2, "bookshelf": 3, "painting": 0, "chest": 0}
	for _, h := range state.Hotspots {
		if h.PuzzleID != want[h.ID] {
			t.Errorf("hotspot %s: expected puzzle %d, got %d", h.ID, want[h.ID], h.PuzzleID)
		}
	}
	if len(state.Hotspots) != len(want) {
		t.Errorf("expected %d hotspots, got %d", len(want), len(state.Hotspots))
	}

	// A fresh game picks up the edited puzzle list.
	w = do(t, r, http.MethodPost, "/api/games", "", StartGameRequest{RoomID: 1})
	if fresh := decode[StartGameResponse](t, w); len(fresh.State.RoomPuzzleIDs) != 3 || fresh.State.RoomPuzzleIDs[0] != 4 {
		t.Errorf("expected new game bound to [4 5 6], got %v", fresh.State.RoomPuzzleIDs)
	}
}
