// internal/httpserver/server.go
//
// HTTP surface for the word-stack game.
// Responsibilities:
//   - Router + middleware (JSON, CORS, request IDs, panic recovery, timeouts, access log).
//   - Public endpoints: "/", "/health", POST /game/new.
//   - Per-game endpoints, gated by the token handed out at creation:
//     GET /game/{id}, POST /game/{id}/keys, POST /game/{id}/word, DELETE /game/{id}.
//
// Notes:
//   - This layer is the input and rendering surface: it forwards key presses
//     to the session and returns snapshots. All game rules live in package game.
//   - Every session access goes through store.Update, which serializes it.
//   - Input the session ignores (locked feedback, dictionary still loading)
//     is not an HTTP error; the response just reports handled=false.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordstack/internal/game"
	"github.com/robalobadob/wordstack/internal/store"
)

// Options tunes a Server.
type Options struct {
	JWTSecret    string
	TokenTTL     time.Duration
	// ClientOrigin is the browser origin allowed by CORS.
	// Defaults to http://localhost:5173.
	ClientOrigin string
	// Session options applied to every new game (clock, delays, stack size).
	Session []game.Option
}

// Server bundles router, session store and dictionary.
type Server struct {
	r      *chi.Mux
	store  store.Store
	lex    game.Lexicon
	tokens *tokenIssuer
	opts   []game.Option
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, lex game.Lexicon, o Options) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		store:  st,
		lex:    lex,
		tokens: newTokenIssuer(o.JWTSecret, o.TokenTTL),
		opts:   o.Session,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(o.ClientOrigin))            // answers preflights before any route auth

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordstack","endpoints":["/health","POST /game/new","GET /game/{id}","POST /game/{id}/keys","POST /game/{id}/word"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true, "dictionaryReady": s.lex.Ready()})
	})

	s.r.Post("/game/new", s.handleNewGame)
	s.r.Route("/game/{id}", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/", s.handleSnapshot)
		r.Post("/keys", s.handleKeys)
		r.Post("/word", s.handleWord)
		r.Delete("/", s.handleEnd)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]string{"error": "not_found", "path": r.URL.Path})
		http.Error(w, string(body), http.StatusNotFound)
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin. Preflight requests
// are answered here, so they never reach the token check.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one debug line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Debug().
				Str("requestId", chimw.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("took", time.Since(start)).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

// ------------------------------ GAME ---------------------------------------

type newGameRes struct {
	GameID    string        `json:"gameId"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Snapshot  game.Snapshot `json:"snapshot"`
}

// handleNewGame creates a session and hands back the token that unlocks it.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	g := game.New(s.lex, s.opts...)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	tok, exp, err := s.tokens.sign(g.ID)
	if err != nil {
		log.Error().Err(err).Str("gameId", g.ID).Msg("sign token")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Info().Str("gameId", g.ID).Msg("game started")

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: g.ID, Token: tok, ExpiresAt: exp, Snapshot: g.Snapshot()})
}

// handleSnapshot returns the current frame.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap game.Snapshot
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Session) error {
		snap = g.Snapshot()
		return nil
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(snap)
}

// keysReq/Res payloads for POST /game/{id}/keys.
type keysReq struct {
	Keys []string `json:"keys"`
}
type keysRes struct {
	Handled  int           `json:"handled"` // keys the session acted on
	Verdict  *game.Verdict `json:"verdict,omitempty"`
	Snapshot game.Snapshot `json:"snapshot"`
}

const maxKeys = 64

// handleKeys replays host key presses in order.
func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	var req keysReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if len(req.Keys) > maxKeys {
		http.Error(w, `{"error":"too_many_keys"}`, http.StatusBadRequest)
		return
	}

	var res keysRes
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Session) error {
		for _, k := range req.Keys {
			if k == game.KeyEnter {
				if v, ok := g.Commit(); ok {
					res.Handled++
					res.Verdict = &v
				}
				continue
			}
			if g.Press(k) {
				res.Handled++
			}
		}
		res.Snapshot = g.Snapshot()
		return nil
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// wordReq/Res payloads for POST /game/{id}/word.
type wordReq struct {
	Word string `json:"word"`
}
type wordRes struct {
	Handled  bool          `json:"handled"`
	Word     string        `json:"word,omitempty"` // word actually committed
	Accepted bool          `json:"accepted"`
	Reason   game.Reason   `json:"reason,omitempty"`
	Points   int           `json:"points"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// handleWord replaces the buffer with the given word and commits it.
// The word must be ASCII letters only; case is ignored.
func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if !isLetters(req.Word) {
		http.Error(w, `{"error":"bad_word"}`, http.StatusBadRequest)
		return
	}

	var res wordRes
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Session) error {
		for g.Delete() {
		}
		for _, c := range req.Word {
			g.Type(c)
		}
		if v, ok := g.Commit(); ok {
			res.Handled, res.Word = true, v.Word
			res.Accepted, res.Reason, res.Points = v.Accepted, v.Reason, v.Points
		}
		res.Snapshot = g.Snapshot()
		return nil
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleEnd drops the session.
func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	log.Info().Str("gameId", id).Msg("game ended")
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func isLetters(w string) bool {
	for _, c := range w {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	log.Error().Err(err).Msg("store")
	http.Error(w, `{"error":"store_failed"}`, http.StatusInternalServerError)
}
