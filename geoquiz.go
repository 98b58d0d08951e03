/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Geoquiz game hubs
//
// A celebrity's photo is shown and the players must find the province they
// were born in, either from four options or by clicking the map.
//
// Features:
// - WebSockets per game ID: /play/:gameid and /play/:gameid/ws
// - Every client of a game sees the same session, so duo players can share
//   one screen or join from a second device through the QR link
// - Clients send start/answer/region_click/region_hover/stop commands and
//   receive the session's events as JSON messages
// - Map highlighting is computed server-side with the same matching rule
//   used to resolve clicks
// - Games auto-reaped after configurable idle timeout
// - Random 8-char game IDs via crypto/rand, with server-side collision check

package main

import (
	"crypto/rand"
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/Seednode/geoquiz/catalog"
	"github.com/Seednode/geoquiz/quiz"
	"github.com/Seednode/geoquiz/session"
)

// Messages coming from clients
type ClientMessage struct {
	Type  string `json:"type"`            // "start", "answer", "region_click", "region_hover", "stop"
	Mode  string `json:"mode,omitempty"`  // start
	Index *int   `json:"index,omitempty"` // answer
	Label string `json:"label,omitempty"` // region_click / region_hover
}

// ModeInfo describes a playable mode for the start screen.
type ModeInfo struct {
	Mode  session.Mode `json:"mode"`
	Title string       `json:"title"`
	Rules []string     `json:"rules"`
}

// SessionInfoMessage is sent immediately on connect so the client can render
// whatever is already on screen for this game.
type SessionInfoMessage struct {
	Type    string            `json:"type"` // "session_info"
	GameID  string            `json:"game_id"`
	Modes   []ModeInfo        `json:"modes"`
	HUD     session.Snapshot  `json:"hud"`
	Options []quiz.OptionView `json:"options,omitempty"`
}

// SimpleMessage is for generic notifications ("invalid_mode", etc.)
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Client struct {
	conn *websocket.Conn
	send chan any
}

type command struct {
	client *Client
	msg    ClientMessage
}

type Hub struct {
	id      string
	session *session.Session
	clients map[*Client]bool

	register chan *Client
	unreg    chan *Client
	commands chan command
	quit     chan struct{}

	mu sync.RWMutex

	lastActive time.Time
}

func modeInfos() []ModeInfo {
	infos := make([]ModeInfo, 0, len(session.Modes))
	for _, m := range session.Modes {
		infos = append(infos, ModeInfo{Mode: m, Title: m.Title(), Rules: m.Rules()})
	}
	return infos
}

func provinceNames(cat *catalog.Catalog) []string {
	names := make([]string, 0, len(cat.Provinces()))
	for _, p := range cat.Provinces() {
		names = append(names, p.Name)
	}
	return names
}

func newHub(cfg *Config, cat *catalog.Catalog, gameID string) *Hub {
	h := &Hub{
		id:         gameID,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		commands:   make(chan command),
		quit:       make(chan struct{}),
		lastActive: time.Now(),
	}

	opts := cfg.sessionOptions()
	opts.Regions = provinceNames(cat)
	opts.Notify = func(e session.Event) {
		h.notify(cfg, e)
	}
	h.session = session.New(cat, opts)

	return h
}

func (h *Hub) run(cfg *Config) {
	for {
		select {
		case c := <-h.register:
			// Joining under the session lock orders session_info before
			// every event emitted after the snapshot.
			h.session.WithState(func(hud session.Snapshot, options []quiz.OptionView) {
				h.mu.Lock()
				defer h.mu.Unlock()

				h.lastActive = time.Now()
				h.clients[c] = true
				h.sendLocked(c, SessionInfoMessage{
					Type:    "session_info",
					GameID:  h.id,
					Modes:   modeInfos(),
					HUD:     hud,
					Options: options,
				})
			})

		case c := <-h.unreg:
			h.mu.Lock()
			h.lastActive = time.Now()

			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case cmd := <-h.commands:
			h.handleCommand(cfg, cmd)

		case <-h.quit:
			return
		}
	}
}

// handleCommand applies one client command to the session. Commands that do
// not apply in the current state are dropped by the session itself.
func (h *Hub) handleCommand(cfg *Config, cmd command) {
	h.mu.Lock()
	h.lastActive = time.Now()
	h.mu.Unlock()

	msg := cmd.msg

	switch msg.Type {
	case "start":
		mode, err := session.ParseMode(msg.Mode)
		if err != nil {
			h.mu.Lock()
			h.sendLocked(cmd.client, SimpleMessage{
				Type:    "invalid_mode",
				Message: err.Error(),
			})
			h.mu.Unlock()
			return
		}

		if err := h.session.Start(mode); err != nil {
			errorf("GAMES: Failed to start %s game %s: %v", mode, h.id, err)
			return
		}
		logf(cfg, "GAMES: Started %s session %s in %s", mode, h.session.ID(), h.id)

	case "answer":
		if msg.Index != nil {
			h.session.SubmitMenuAnswer(*msg.Index)
		}

	case "region_click":
		h.session.SubmitMapAnswer(msg.Label)

	case "region_hover":
		h.session.Hover(msg.Label)

	case "stop":
		h.session.Stop()
	}
}

// notify runs with the session locked; it must only fan the event out.
func (h *Hub) notify(cfg *Config, e session.Event) {
	observe(e)

	if ev, ok := e.(session.SessionFinished); ok {
		logf(cfg, "GAMES: Session %s in %s finished after %d questions (%d correct)",
			ev.HUD.ID, h.id, ev.Summary.QuestionCount, ev.Summary.CorrectCount)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	for client := range h.clients {
		h.sendLocked(client, e)
	}
}

// sendLocked queues msg for c, dropping the client if it cannot keep up.
func (h *Hub) sendLocked(c *Client, msg any) {
	if _, ok := h.clients[c]; !ok {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

// closeAll ends the session and disconnects all clients of this hub (used
// by reaper).
func (h *Hub) closeAll() {
	h.session.Stop()
	close(h.quit)

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GameManager holds a set of hubs keyed by game ID, so each /play/$gameid
// is its own isolated session.
type GameManager struct {
	mu          sync.Mutex
	hubs        map[string]*Hub
	catalog     *catalog.Catalog
	idleTimeout time.Duration

	done      chan struct{}
	closeOnce sync.Once
}

func newGameManager(cat *catalog.Catalog, idleTimeout time.Duration) *GameManager {
	gm := &GameManager{
		hubs:        make(map[string]*Hub),
		catalog:     cat,
		idleTimeout: idleTimeout,
		done:        make(chan struct{}),
	}
	if idleTimeout > 0 {
		go gm.reaperLoop()
	}
	return gm
}

func (gm *GameManager) getHub(cfg *Config, gameID string) *Hub {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if hub, ok := gm.hubs[gameID]; ok {
		return hub
	}

	hub := newHub(cfg, gm.catalog, gameID)
	gm.hubs[gameID] = hub
	gamesActive.Inc()
	go hub.run(cfg)
	return hub
}

func (gm *GameManager) lookup(gameID string) (*Hub, bool) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	hub, ok := gm.hubs[gameID]
	return hub, ok
}

// newGameID generates a crypto-random game ID and ensures it doesn't
// collide with existing games.
func (gm *GameManager) newGameID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, 8)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		id := string(out)

		if _, exists := gm.lookup(id); !exists {
			return id
		}
	}
}

// reap removes hubs that have been idle since before cutoff.
func (gm *GameManager) reap(cutoff time.Time) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for id, hub := range gm.hubs {
		hub.mu.RLock()
		last := hub.lastActive
		hub.mu.RUnlock()

		if last.Before(cutoff) {
			delete(gm.hubs, id)
			gamesActive.Dec()
			go hub.closeAll()
		}
	}
}

// reaperLoop periodically removes hubs that have been idle longer than idleTimeout.
func (gm *GameManager) reaperLoop() {
	ticker := time.NewTicker(gm.idleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			gm.reap(time.Now().Add(-gm.idleTimeout))
		case <-gm.done:
			return
		}
	}
}

// close stops the reaper and every hub, halting their session clocks before
// it returns.
func (gm *GameManager) close() {
	gm.closeOnce.Do(func() {
		close(gm.done)

		gm.mu.Lock()
		hubs := make([]*Hub, 0, len(gm.hubs))
		for id, hub := range gm.hubs {
			hubs = append(hubs, hub)
			delete(gm.hubs, id)
			gamesActive.Dec()
		}
		gm.mu.Unlock()

		for _, hub := range hubs {
			hub.closeAll()
		}
	})
}

// WebSocket handler that picks the hub based on :gameid
func serveWSForManager(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		hub := gm.getHub(cfg, gameID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			errorf("GAMES: Upgrade failed for %s: %v", gameID, err)
			return
		}

		client := &Client{
			conn: conn,
			send: make(chan any, 32),
		}

		select {
		case hub.register <- client:
		case <-hub.quit:
			_ = conn.Close()
			return
		}

		logf(cfg, "GAMES: Client %s connected to %s", realIP(r), gameID)

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unreg <- c:
		case <-h.quit:
		}
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "start", "answer", "region_click", "region_hover", "stop":
			select {
			case h.commands <- command{client: c, msg: msg}:
			case <-h.quit:
				return
			}
		default:
			// ignore unknown types
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// serveState reports the HUD of an existing game as JSON.
func serveState(cfg *Config, gm *GameManager, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		hub, ok := gm.lookup(ps.ByName("gameid"))
		if !ok {
			http.Error(w, "unknown game id", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		state := struct {
			HUD     session.Snapshot  `json:"hud"`
			Options []quiz.OptionView `json:"options,omitempty"`
			Summary *session.Summary  `json:"summary,omitempty"`
		}{
			HUD:     hub.session.Snapshot(),
			Options: hub.session.OptionViews(),
		}
		if sum, ok := hub.session.Summary(); ok {
			state.Summary = &sum
		}

		if err := json.NewEncoder(w).Encode(state); err != nil {
			errs <- err
		}
	}
}

// serveProvinces lists the map regions the client should draw.
func serveProvinces(cfg *Config, cat *catalog.Catalog, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		if err := json.NewEncoder(w).Encode(cat.Provinces()); err != nil {
			errs <- err
		}
	}
}

// QR handler: generates a PNG QR code for the current game URL using go-qrcode.
func qrHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
		scheme := cfg.scheme()
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		url := scheme + "://" + r.Host + strings.TrimSuffix(r.URL.Path, "/qr")

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(png)
	}
}

//go:embed assets/geoquiz/index.html
var indexHTML []byte

func serveGame(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		if _, err := w.Write(indexHTML); err != nil {
			errs <- err
		}
	}
}

// redirectNewGame handles GET /play by generating a new random game ID
// (with server-side collision detection) and redirecting to /play/:gameid,
// keeping any ?mode= preselection.
func redirectNewGame(cfg *Config, path string, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gameID := gm.newGameID()
		logf(cfg, "GAMES: Created game %s/%s", path, gameID)

		target := cfg.prefix + path + "/" + gameID
		if mode, err := session.ParseMode(r.URL.Query().Get("mode")); err == nil {
			target += "?mode=" + string(mode)
		}

		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
	}
}

// registerGeoquiz sets up routes so that:
//   - $path                  → redirects to new random game (8-char ID)
//   - $path/:gameid          → HTML client
//   - $path/:gameid/ws       → WebSocket for that game
//   - $path/:gameid/qr       → PNG QR code for that game URL
//   - $path/:gameid/state    → JSON HUD for that game
//   - /api/provinces         → map regions with their coordinates
func registerGeoquiz(cfg *Config, path string, cat *catalog.Catalog, mux *httprouter.Router, errs chan<- error) *GameManager {
	gm := newGameManager(cat, cfg.sessionTimeout)

	mux.GET(cfg.prefix+path, redirectNewGame(cfg, path, gm))

	mux.GET(cfg.prefix+path+"/:gameid", serveGame(cfg, errs))
	mux.GET(cfg.prefix+"/api/provinces", serveProvinces(cfg, cat, errs))

	mux.GET(cfg.prefix+path+"/:gameid/ws", serveWSForManager(cfg, gm))
	mux.GET(cfg.prefix+path+"/:gameid/qr", qrHandler(cfg))
	mux.GET(cfg.prefix+path+"/:gameid/state", serveState(cfg, gm, errs))

	return gm
}
