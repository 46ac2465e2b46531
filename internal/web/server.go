package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/gabrilend/gen-realms/internal/game"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Faction        string `json:"faction"`
	Kind           string `json:"kind"`
	Cost           int    `json:"cost"`
	Defense        int    `json:"defense,omitempty"`
	Text           string `json:"text"`
	Outpost        bool   `json:"outpost,omitempty"`
	FrontierLeader bool   `json:"frontierLeader,omitempty"`
	ArtPath        string `json:"artPath,omitempty"`
}

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Cards  []string `json:"cards"`
}

// Config configures the web UI server.
type Config struct {
	Catalog   *game.Catalog
	ArtDir    string // served under /art/ when set
	DecksFile string
	GameAddr  string // match server used when the browser names none
	Logger    *zap.Logger
}

// Server is the realms web UI server.
type Server struct {
	catalog   *game.Catalog
	artDir    string
	decksFile string
	gameAddr  string
	logger    *zap.Logger
	mux       *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("web server needs a catalog")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		catalog:   cfg.Catalog,
		artDir:    cfg.ArtDir,
		decksFile: cfg.DecksFile,
		gameAddr:  cfg.GameAddr,
		logger:    logger,
		mux:       http.NewServeMux(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f)
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	if s.artDir != "" {
		s.mux.Handle("GET /art/", http.StripPrefix("/art/", http.FileServer(http.Dir(s.artDir))))
	}

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)

	// WebSocket bridge to the TCP match server
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the HTTP handler of the UI.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) artPath(id string) string {
	if s.artDir == "" {
		return ""
	}
	if _, err := os.Stat(s.artDir + "/" + id + ".png"); err != nil {
		return ""
	}
	return "/art/" + id + ".png"
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := []CardInfo{}
	for _, ct := range s.catalog.Types() {
		cards = append(cards, CardInfo{
			ID:             ct.ID,
			Name:           ct.Name,
			Description:    ct.Description,
			Faction:        ct.Faction.String(),
			Kind:           ct.Kind.String(),
			Cost:           ct.Cost,
			Defense:        ct.Defense,
			Text:           ct.RulesText(),
			Outpost:        ct.Outpost,
			FrontierLeader: ct.FrontierLeader,
			ArtPath:        s.artPath(ct.ID),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cards)
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	decks := []DeckInfo{}
	if s.decksFile == "" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(decks)
		return
	}
	df, err := game.ReadDeckFile(s.decksFile)
	if err != nil {
		s.logger.Warn("read decks file", zap.String("path", s.decksFile), zap.Error(err))
		http.Error(w, "could not read decks file", http.StatusInternalServerError)
		return
	}

	for i, d := range df.Decks {
		di := DeckInfo{
			Number: i + 1,
			Name:   d.Name,
		}
		for _, c := range d.Cards {
			name := c.Card
			if ct, ok := s.catalog.Lookup(c.Card); ok {
				name = ct.Name
			}
			di.Cards = append(di.Cards, fmt.Sprintf("%dx %s", c.Count, name))
		}
		decks = append(decks, di)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(decks)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	// Read initial connect message from browser
	_, connectData, err := wsConn.Read(ctx)
	if err != nil {
		s.logger.Debug("websocket read connect", zap.Error(err))
		return
	}

	var connectMsg struct {
		Type       string `json:"type"`
		Addr       string `json:"addr"`
		DeckNumber int    `json:"deck_number"`
	}
	if err := json.Unmarshal(connectData, &connectMsg); err != nil || connectMsg.Type != "connect" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected connect message")
		return
	}
	addr := connectMsg.Addr
	if addr == "" {
		addr = s.gameAddr
	}

	dialer := net.Dialer{Timeout: 5 * time.Second}
	tcpConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		errMsg, _ := json.Marshal(map[string]string{
			"type":    "error",
			"message": fmt.Sprintf("Could not connect to game server at %s: %v", addr, err),
		})
		wsConn.Write(ctx, websocket.MessageText, errMsg)
		wsConn.Close(websocket.StatusNormalClosure, "connection failed")
		return
	}
	defer tcpConn.Close()
	s.logger.Info("browser joined", zap.String("game", addr), zap.String("remote", r.RemoteAddr))

	joinMsg, _ := json.Marshal(map[string]any{
		"type":        "join",
		"deck_number": connectMsg.DeckNumber,
	})
	joinMsg = append(joinMsg, '\n')
	if _, err := tcpConn.Write(joinMsg); err != nil {
		s.logger.Warn("tcp write join", zap.Error(err))
		return
	}

	done := make(chan struct{})

	// TCP → WebSocket (server messages to browser)
	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if !errors.Is(err, io.EOF) {
					s.logger.Debug("tcp read", zap.Error(err))
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				s.logger.Debug("websocket write", zap.Error(err))
				return
			}
		}
	}()

	// WebSocket → TCP (browser commands to server)
	go func() {
		defer tcpConn.Close()
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				return
			}
			if !json.Valid(data) {
				continue
			}
			data = append(data, '\n')
			if _, err := tcpConn.Write(data); err != nil {
				s.logger.Debug("tcp write", zap.Error(err))
				return
			}
		}
	}()

	<-done
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// ListenAndServe serves HTTP on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
