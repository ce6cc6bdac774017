package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	. "github.com/cricklet/magics/internal/bitboards"
	. "github.com/cricklet/magics/internal/helpers"
	"github.com/cricklet/magics/internal/lookup"
	"github.com/cricklet/magics/internal/magic"
)

// MaxAttemptsFactor bounds how far a request may raise the server's attempt
// budget.
const MaxAttemptsFactor = 10

type Table struct {
	ID          string
	Seed        int64
	MaxAttempts int
	CreatedAt   time.Time
	LookUp    *lookup.LookUp
}

// Server keeps every table it has built, keyed by id, and answers attack
// queries against them.
type Server struct {
	Logger Logger

	options  magic.Options
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	tables map[string]*Table
}

func NewServer(logger Logger, options magic.Options) *Server {
	return &Server{
		Logger:  logger,
		options: options,
		tables:  map[string]*Table{},
	}
}

// BuildRequest overrides the server's options for one table. Zero
// MaxAttempts keeps the server's budget; larger requests are clamped to
// MaxAttemptsFactor times it.
type BuildRequest struct {
	Seed        int64
	MaxAttempts int
}

// Build constructs a table with the server's options. A partially built table
// is still registered; its failures are in the error.
func (s *Server) Build(request BuildRequest, observer func(magic.Report)) (*Table, Error) {
	options := s.options
	options.Seed = request.Seed
	options.MaxAttempts = s.maxAttempts(request)
	options.Observer = observer

	l, err := lookup.Build(options)
	if l == nil {
		return nil, err
	}

	table := &Table{
		ID:          uuid.NewString(),
		Seed:        request.Seed,
		MaxAttempts: options.MaxAttempts,
		CreatedAt:   time.Now(),
		LookUp:      l,
	}

	s.mu.Lock()
	s.tables[table.ID] = table
	s.mu.Unlock()

	s.Logger.Printf("built table %v (seed %v, %v failed squares)\n", table.ID, request.Seed, len(l.Failed()))
	return table, err
}

func (s *Server) maxAttempts(request BuildRequest) int {
	budget := s.options.MaxAttempts
	if budget <= 0 {
		budget = magic.DefaultMaxAttempts
	}
	if request.MaxAttempts <= 0 {
		return budget
	}
	return MinInt(request.MaxAttempts, MaxAttemptsFactor*budget)
}

func (s *Server) Get(id string) (*Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.tables[id]
	return table, ok
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/tables", s.handleCreate).Methods(http.MethodPost)
	router.HandleFunc("/tables/{id}/magics/{slider}", s.handleMagics).Methods(http.MethodGet)
	router.HandleFunc("/tables/{id}/{piece}/{square}", s.handleAttacks).Methods(http.MethodGet)
	router.HandleFunc("/ws/build", s.handleBuildStream)
	return router
}

type CreatedResponse struct {
	ID          string   `json:"id"`
	Seed        int64    `json:"seed"`
	MaxAttempts int      `json:"maxAttempts"`
	Failed      []string `json:"failed"`
}

type AttacksResponse struct {
	Piece   string   `json:"piece"`
	Square  string   `json:"square"`
	Attacks string   `json:"attacks"`
	Squares []string `json:"squares"`
}

type MagicResponse struct {
	Square    string `json:"square"`
	Magic     string `json:"magic"`
	IndexBits int    `json:"indexBits"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// BuildMessage is sent over /ws/build: one per searched square, then a last
// one carrying the table id.
type BuildMessage struct {
	Report *magic.Report `json:"report,omitempty"`
	ID     string        `json:"id,omitempty"`
	Failed []string      `json:"failed,omitempty"`
	Error  string        `json:"error,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		s.Logger.Println("writing response:", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func buildRequestFromQuery(r *http.Request) (BuildRequest, Error) {
	request := BuildRequest{}
	query := r.URL.Query()

	if value := query.Get("seed"); value != "" {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return request, Errorf("seed %q: %w", value, err)
		}
		request.Seed = seed
	}

	if value := query.Get("attempts"); value != "" {
		attempts, err := strconv.Atoi(value)
		if err != nil || attempts <= 0 {
			return request, Errorf("attempts %q must be a positive integer", value)
		}
		request.MaxAttempts = attempts
	}

	return request, NilError
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	request, err := buildRequestFromQuery(r)
	if !IsNil(err) {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	table, err := s.Build(request, nil)
	if table == nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, CreatedResponse{
		ID:          table.ID,
		Seed:        table.Seed,
		MaxAttempts: table.MaxAttempts,
		Failed:      table.LookUp.Failed(),
	})
}

func (s *Server) tableFromRequest(w http.ResponseWriter, r *http.Request) (*Table, bool) {
	id := mux.Vars(r)["id"]
	table, ok := s.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("no table %q", id))
	}
	return table, ok
}

func occupancyFromQuery(r *http.Request) (Bitboard, Error) {
	occupancy := Bitboard(0)

	if value := r.URL.Query().Get("occupancy"); value != "" {
		n, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			return 0, Errorf("occupancy %q: %w", value, err)
		}
		occupancy |= Bitboard(n)
	}

	if value := r.URL.Query().Get("occupied"); value != "" {
		for _, location := range strings.Split(value, ",") {
			square, err := SquareFromString(location)
			if !IsNil(err) {
				return 0, err
			}
			occupancy |= SingleBitboard(square)
		}
	}

	return occupancy, NilError
}

// attacksFor turns the panic from a square whose magic search failed into an
// error wrapping magic.ErrMagicSearchExhausted.
func attacksFor(l *lookup.LookUp, piece string, s Square, occupancy Bitboard, player Player) (result Bitboard, err Error) {
	defer func() {
		if r := recover(); r != nil {
			recovered, ok := r.(error)
			if !ok {
				panic(r)
			}
			result, err = 0, Wrap(recovered)
		}
	}()

	switch piece {
	case "rook":
		return l.RookAttacks(s, occupancy), NilError
	case "bishop":
		return l.BishopAttacks(s, occupancy), NilError
	case "queen":
		return l.QueenAttacks(s, occupancy), NilError
	case "king":
		return l.KingAttacks(s), NilError
	case "knight":
		return l.KnightAttacks(s), NilError
	case "pawn":
		return l.PawnAttacks(player, s), NilError
	case "pawnpush":
		MustBeOnBoard(s)
		pawn, empty := SingleBitboard(s), ^occupancy
		return SinglePawnPush(player, pawn, empty) | DoublePawnPush(player, pawn, empty), NilError
	}
	return 0, Errorf("unknown piece %q", piece)
}

func (s *Server) handleAttacks(w http.ResponseWriter, r *http.Request) {
	table, ok := s.tableFromRequest(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	square, err := SquareFromString(vars["square"])
	if !IsNil(err) {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	occupancy, err := occupancyFromQuery(r)
	if !IsNil(err) {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	player := White
	if value := r.URL.Query().Get("player"); value != "" {
		player, err = PlayerFromString(value)
		if !IsNil(err) {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	attacks, err := attacksFor(table.LookUp, vars["piece"], square, occupancy, player)
	if errors.Is(err, magic.ErrMagicSearchExhausted) {
		s.writeError(w, http.StatusConflict, err)
		return
	} else if !IsNil(err) {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.writeJSON(w, http.StatusOK, AttacksResponse{
		Piece:   vars["piece"],
		Square:  square.String(),
		Attacks: fmt.Sprintf("0x%016x", uint64(attacks)),
		Squares: MapSlice(attacks.Squares(), Square.String),
	})
}

func (s *Server) handleMagics(w http.ResponseWriter, r *http.Request) {
	table, ok := s.tableFromRequest(w, r)
	if !ok {
		return
	}

	slider := mux.Vars(r)["slider"]
	magics, ok := table.LookUp.Magics(slider)
	if !ok {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unknown slider %q", slider))
		return
	}

	response := make([]MagicResponse, 0, 64)
	for i, m := range magics {
		response = append(response, MagicResponse{
			Square:    Square(i).String(),
			Magic:     fmt.Sprintf("0x%016x", m.Magic),
			IndexBits: m.BitsInMagicIndex,
		})
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleBuildStream(w http.ResponseWriter, r *http.Request) {
	request, err := buildRequestFromQuery(r)
	if !IsNil(err) {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	c, upgradeErr := s.upgrader.Upgrade(w, r, nil)
	if upgradeErr != nil {
		s.Logger.Println("upgrading build stream:", upgradeErr)
		return
	}
	defer c.Close()

	// reports arrive from several search workers at once
	writeLock := sync.Mutex{}
	var send = func(message BuildMessage) {
		writeLock.Lock()
		defer writeLock.Unlock()
		if err := c.WriteJSON(message); err != nil {
			s.Logger.Println("build stream:", err)
		}
	}

	table, err := s.Build(request, func(report magic.Report) {
		send(BuildMessage{Report: &report})
	})

	final := BuildMessage{}
	if table != nil {
		final.ID = table.ID
		final.Failed = table.LookUp.Failed()
	}
	if !IsNil(err) {
		final.Error = err.Error()
	}
	send(final)
}
