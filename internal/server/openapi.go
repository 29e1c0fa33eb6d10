package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/cipherchamber/internal/escaperoom"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse maps each dependency to its check status.
type HealthResponse map[string]struct {
	Status     string `json:"status"`
	DurationMS int64  `json:"durationMs"`
}

type roomPath struct {
	RoomID int `path:"roomID"`
}

type puzzlePath struct {
	PuzzleID int `path:"puzzleID"`
}

type itemPath struct {
	ItemID int `path:"itemID"`
}

type listRoomsQuery struct {
	Difficulty string `query:"difficulty" description:"Easy, Medium, Hard or All; case-insensitive."`
}

type listItemsQuery struct {
	IDs string `query:"ids" description:"Comma-separated item ids."`
}

type tokenQuery struct {
	Token string `query:"token" required:"true"`
}

type hotspotRequestBody struct {
	HotspotID string `path:"hotspotID"`
	HotspotRequest
}

type solveRequestBody struct {
	PuzzleID int `path:"puzzleID"`
	escaperoom.Submission
}

type roomRequestBody struct {
	RoomID int `path:"roomID"`
	AdminRoomRequest
}

// op is one documented endpoint.
type op struct {
	method, path, summary, description string
	req                                any
	resp                               map[int]any
	contentType                        string
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Cipher Chamber API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Cipher Chamber escape-room game.")

	const (
		bearer = " Requires Bearer token."
		cookie = " Requires admin_session cookie."
	)

	ops := []op{
		{
			method: http.MethodGet, path: "/healthz",
			summary: "Health check", description: "Returns the health status of backend dependencies.",
			resp: map[int]any{http.StatusOK: HealthResponse{}, http.StatusServiceUnavailable: HealthResponse{}},
		},
		{
			method: http.MethodGet, path: "/api/rooms",
			summary: "List rooms", description: "Lists rooms, optionally filtered by difficulty.",
			req:  listRoomsQuery{},
			resp: map[int]any{http.StatusOK: []escaperoom.Room{}},
		},
		{
			method: http.MethodGet, path: "/api/rooms/{roomID}",
			summary: "Get room", description: "Returns a room with its hotspot layout.",
			req:  roomPath{},
			resp: map[int]any{http.StatusOK: escaperoom.Room{}, http.StatusNotFound: ErrorResponse{}},
		},
		{
			method: http.MethodGet, path: "/api/rooms/{roomID}/puzzles",
			summary: "List room puzzles", description: "Returns the player views of a room's puzzles, in room order.",
			req:  roomPath{},
			resp: map[int]any{http.StatusOK: []PuzzleView{}, http.StatusNotFound: ErrorResponse{}},
		},
		{
			method: http.MethodGet, path: "/api/puzzles/{puzzleID}",
			summary: "Get puzzle", description: "Returns the player view of a puzzle. Solutions are never included.",
			req:  puzzlePath{},
			resp: map[int]any{http.StatusOK: PuzzleView{}, http.StatusNotFound: ErrorResponse{}},
		},
		{
			method: http.MethodGet, path: "/api/items",
			summary: "List items", description: "Lists items, optionally only the given ids.",
			req:  listItemsQuery{},
			resp: map[int]any{http.StatusOK: []escaperoom.Item{}, http.StatusBadRequest: ErrorResponse{}},
		},
		{
			method: http.MethodGet, path: "/api/items/{itemID}",
			summary: "Get item",
			req:     itemPath{},
			resp:    map[int]any{http.StatusOK: escaperoom.Item{}, http.StatusNotFound: ErrorResponse{}},
		},
		{
			method: http.MethodPost, path: "/api/games",
			summary:     "Start game",
			description: "Starts a game in a room and returns a session token. With a Bearer token the existing session is rebound instead.",
			req:         StartGameRequest{},
			resp: map[int]any{
				http.StatusCreated:    StartGameResponse{},
				http.StatusBadRequest: ErrorResponse{},
				http.StatusNotFound:   ErrorResponse{},
			},
		},
		{
			method: http.MethodGet, path: "/api/game/state",
			summary: "Get game state", description: "Returns the session state with room, hotspots, puzzles and inventory." + bearer,
			resp: map[int]any{http.StatusOK: GameStateResponse{}, http.StatusUnauthorized: ErrorResponse{}},
		},
		{
			method: http.MethodPost, path: "/api/game/restart",
			summary: "Restart game", description: "Resets the session in the same room." + bearer,
			resp: map[int]any{http.StatusOK: escaperoom.GameState{}, http.StatusUnauthorized: ErrorResponse{}},
		},
		{
			method: http.MethodGet, path: "/api/game/puzzles/{puzzleID}",
			summary: "Get game puzzle", description: "Returns a puzzle of the current room with revealed hints." + bearer,
			req:  puzzlePath{},
			resp: map[int]any{http.StatusOK: GamePuzzleView{}, http.StatusNotFound: ErrorResponse{}},
		},
		{
			method: http.MethodPost, path: "/api/game/puzzles/{puzzleID}/solve",
			summary:     "Solve puzzle",
			description: "Checks a submission. A wrong answer is a 200 with isCorrect false." + bearer,
			req:         solveRequestBody{},
			resp: map[int]any{
				http.StatusOK:         SolveResponse{},
				http.StatusBadRequest: ErrorResponse{},
				http.StatusNotFound:   ErrorResponse{},
				http.StatusConflict:   ErrorResponse{},
			},
		},
		{
			method: http.MethodPost, path: "/api/game/puzzles/{puzzleID}/hints",
			summary: "Request hint", description: "Reveals the next hint. No hint is counted once all are shown." + bearer,
			req:  puzzlePath{},
			resp: map[int]any{http.StatusOK: HintResponse{}, http.StatusNotFound: ErrorResponse{}},
		},
		{
			method: http.MethodPost, path: "/api/game/hotspots/{hotspotID}",
			summary: "Click hotspot", description: "Opens the puzzle behind a hotspot, optionally using a held item." + bearer,
			req: hotspotRequestBody{},
			resp: map[int]any{
				http.StatusOK:       HotspotResponse{},
				http.StatusNotFound: ErrorResponse{},
				http.StatusConflict: ErrorResponse{},
			},
		},
		{
			method: http.MethodGet, path: "/api/game/inventory",
			summary: "List inventory", description: "Returns the held items." + bearer,
			resp: map[int]any{http.StatusOK: []escaperoom.Item{}},
		},
		{
			method: http.MethodPost, path: "/api/game/inventory",
			summary: "Add item", description: "Adds an item to the inventory." + bearer,
			req:  AddItemRequest{},
			resp: map[int]any{http.StatusOK: InventoryResponse{}, http.StatusNotFound: ErrorResponse{}},
		},
		{
			method: http.MethodDelete, path: "/api/game/inventory/{itemID}",
			summary: "Remove item", description: "Removes an item from the inventory." + bearer,
			req:  itemPath{},
			resp: map[int]any{http.StatusOK: InventoryResponse{}, http.StatusNotFound: ErrorResponse{}},
		},
		{
			method: http.MethodPut, path: "/api/game/timer",
			summary: "Set timer", description: "Sets elapsed seconds. Lower values are ignored; the clock stops on completion." + bearer,
			req:  TimerRequest{},
			resp: map[int]any{http.StatusOK: TimerResponse{}, http.StatusBadRequest: ErrorResponse{}},
		},
		{
			method: http.MethodGet, path: "/api/game/timer/ws",
			summary: "Timer WebSocket", description: "Upgrades to a WebSocket that takes {\"elapsedTime\":n} ticks and answers with the stored clock.",
			req:         tokenQuery{},
			resp:        map[int]any{http.StatusSwitchingProtocols: nil},
			contentType: "application/json",
		},
		{
			method: http.MethodGet, path: "/api/game/summary",
			summary: "Victory summary", description: "Returns time, rating and stars once the room is complete." + bearer,
			resp: map[int]any{http.StatusOK: escaperoom.Summary{}, http.StatusConflict: ErrorResponse{}},
		},
		{
			method: http.MethodGet, path: "/api/game/events",
			summary: "SSE event stream", description: "Server-Sent Events stream for real-time game updates. Pass token as query parameter.",
			req:         tokenQuery{},
			resp:        map[int]any{http.StatusOK: nil},
			contentType: "text/event-stream",
		},
		{
			method: http.MethodPost, path: "/api/admin/login",
			summary: "Admin login", description: "Authenticate with email and password. Sets admin_session cookie.",
			req:  AdminLoginRequest{},
			resp: map[int]any{http.StatusOK: AdminMeResponse{}, http.StatusUnauthorized: ErrorResponse{}},
		},
		{
			method: http.MethodPost, path: "/api/admin/logout",
			summary: "Admin logout", description: "Clears admin session and cookie.",
			resp: map[int]any{http.StatusOK: nil},
		},
		{
			method: http.MethodGet, path: "/api/admin/me",
			summary: "Current admin", description: "Returns the currently authenticated admin." + cookie,
			resp: map[int]any{http.StatusOK: AdminMeResponse{}, http.StatusUnauthorized: ErrorResponse{}},
		},
		{
			method: http.MethodGet, path: "/api/admin/puzzles",
			summary: "List puzzles with solutions", description: "Returns every puzzle including its solution and hints." + cookie,
			resp: map[int]any{http.StatusOK: []escaperoom.Puzzle{}, http.StatusUnauthorized: ErrorResponse{}},
		},
		{
			method: http.MethodPost, path: "/api/admin/rooms",
			summary: "Create room", description: "Creates a room under the next free id." + cookie,
			req: AdminRoomRequest{},
			resp: map[int]any{
				http.StatusCreated:      escaperoom.Room{},
				http.StatusBadRequest:   ErrorResponse{},
				http.StatusUnauthorized: ErrorResponse{},
			},
		},
		{
			method: http.MethodPut, path: "/api/admin/rooms/{roomID}",
			summary: "Update room", description: "Replaces a room; the id is kept." + cookie,
			req: roomRequestBody{},
			resp: map[int]any{
				http.StatusOK:           escaperoom.Room{},
				http.StatusBadRequest:   ErrorResponse{},
				http.StatusNotFound:     ErrorResponse{},
				http.StatusUnauthorized: ErrorResponse{},
			},
		},
		{
			method: http.MethodDelete, path: "/api/admin/rooms/{roomID}",
			summary: "Delete room", description: "Deletes a room. Blocked while game sessions reference it." + cookie,
			req: roomPath{},
			resp: map[int]any{
				http.StatusOK:           nil,
				http.StatusConflict:     ErrorResponse{},
				http.StatusNotFound:     ErrorResponse{},
				http.StatusUnauthorized: ErrorResponse{},
			},
		},
	}

	for _, o := range ops {
		oc, err := r.NewOperationContext(o.method, o.path)
		if err != nil {
			continue
		}
		oc.SetSummary(o.summary)
		if o.description != "" {
			oc.SetDescription(o.description)
		}
		if o.req != nil {
			oc.AddReqStructure(o.req)
		}
		for status, body := range o.resp {
			opts := []openapi.ContentOption{openapi.WithHTTPStatus(status)}
			if body == nil && o.contentType != "" {
				opts = append(opts, openapi.WithContentType(o.contentType))
			}
			oc.AddRespStructure(body, opts...)
		}
		_ = r.AddOperation(oc)
	}

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
