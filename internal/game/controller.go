// Package game runs a chess game: it owns the board, enforces turn order,
// tracks the draw rules, and drives the engine-controlled player through a
// background search.
package game

import (
	"context"
	"sync"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/eval"
	"github.com/lgbarn/chessplay-go/internal/hashing"
	"github.com/lgbarn/chessplay-go/internal/search"
	"github.com/lgbarn/chessplay-go/internal/worker"
)

const (
	// fiftyMoveLimit is the halfmove clock value that draws the game.
	fiftyMoveLimit = 100

	// progressBuffer exceeds the legal move count of any position, so a
	// search only drops progress reports when the listener stalls.
	progressBuffer = 256
)

// ply is the controller's journal entry for one applied move. The board
// keeps its own undo record; this holds the game-level fields.
type ply struct {
	move     chess.Move
	halfmove int // clock before the move
	fullmove int
	key      hashing.PositionKey // position counted after the move
	side     chess.Colour        // side to move after the move
}

// searchJob is one background search over a private copy of the board.
type searchJob struct {
	board     *engine.Board
	colour    chess.Colour
	depth     int
	ply       int
	progress  chan int
	forwarded chan struct{}
	done      sync.Once
}

// finish closes the progress channel. The worker calls it when the search
// returns; Close calls it for a job the stopped pool skipped.
func (j *searchJob) finish() {
	j.done.Do(func() { close(j.progress) })
}

type searchOutcome struct {
	job    *searchJob
	result search.Result
}

// Controller owns one game. All exported methods are safe for concurrent use.
type Controller struct {
	cfg      *config.Config
	listener Listener

	mu   sync.Mutex
	idle *sync.Cond

	board    *engine.Board
	startFEN string
	toMove   chess.Colour
	halfmove int
	fullmove int
	state    State
	reps     *hashing.RepetitionTable
	plies    []ply
	depth    int

	searching bool
	current   *searchJob
	closed    bool

	pending    []event
	delivering bool
	wake       chan struct{}
	wakeClosed bool
	notifyDone chan struct{}

	pool        *worker.Pool[*searchJob, searchOutcome]
	collectDone chan struct{}

	hintMu sync.Mutex
	hinter *search.Searcher
}

// New creates a controller for cfg.Game.StartFEN, or the standard starting
// position if that is empty. A nil cfg means the defaults.
func New(cfg *config.Config, listener Listener) (*Controller, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	fen := cfg.Game.StartFEN
	if fen == "" {
		fen = engine.InitialFEN
	}
	return NewFromFEN(cfg, fen, listener)
}

// NewFromFEN creates a controller starting from fen. The engine does not
// move until Start is called.
func NewFromFEN(cfg *config.Config, fen string, listener Listener) (*Controller, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	setup, err := engine.ParseFEN(fen)
	if err != nil {
		return nil, errors.Wrap(err, "start position")
	}
	setup.Board.SetStrict(cfg.Strict)

	c := &Controller{
		cfg:         cfg,
		listener:    listener,
		board:       setup.Board,
		startFEN:    fen,
		toMove:      setup.ToMove,
		halfmove:    setup.HalfmoveClock,
		fullmove:    setup.FullmoveNumber,
		reps:        hashing.NewRepetitionTable(),
		depth:       config.ClampDepth(cfg.Search.Depth),
		wake:        make(chan struct{}, 1),
		notifyDone:  make(chan struct{}),
		collectDone: make(chan struct{}),
	}
	c.idle = sync.NewCond(&c.mu)
	c.reps.Add(c.board.Key(), c.toMove)
	c.state = c.evaluateStateL()

	ev := eval.NewEvaluator(eval.DefaultWeights())
	engineSearcher := search.NewSearcher(cfg.Search, ev)
	engineSearcher.SetStrict(cfg.Strict)
	c.hinter = search.NewSearcher(cfg.Search, ev)
	c.hinter.SetStrict(cfg.Strict)

	c.pool = worker.NewPool(searchFunc(engineSearcher), worker.WithWorkers(1), worker.WithBufferSize(1))
	c.pool.Start()
	go c.collect()
	go c.notify()

	cfg.Logf(2, "new game from %q, %s to move, %s", fen, c.toMove, c.state)
	return c, nil
}

// searchFunc runs one job on the engine's searcher. Progress is offered to
// the job's channel without blocking; updates are dropped if it is full.
func searchFunc(s *search.Searcher) worker.ProcessFunc[*searchJob, searchOutcome] {
	return func(ctx context.Context, job worker.Job[*searchJob]) (searchOutcome, error) {
		sj := job.Value
		defer sj.finish()
		res, err := s.ChooseMove(ctx, sj.board, sj.colour, sj.depth, func(p int) {
			select {
			case sj.progress <- p:
			default:
			}
		})
		return searchOutcome{job: sj, result: res}, err
	}
}

// Start lets the engine move if it is its turn.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatchL()
}

// Close cancels any search in flight and stops the background goroutines.
// Queued notifications are still delivered.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.pool.Stop()
	c.pool.Close()
	<-c.collectDone

	c.mu.Lock()
	if c.current != nil {
		c.current.finish()
		forwarded := c.current.forwarded
		c.current = nil
		c.mu.Unlock()
		<-forwarded
		c.mu.Lock()
	}
	c.searching = false
	c.wakeClosed = true
	close(c.wake)
	c.idle.Broadcast()
	c.mu.Unlock()
	<-c.notifyDone
}

// Wait blocks until no search is running and every queued notification
// has been delivered.
func (c *Controller) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.searching || len(c.pending) > 0 || c.delivering {
		c.idle.Wait()
	}
}

// GetPieceAt returns the piece on file x, rank y (both 0-7).
func (c *Controller) GetPieceAt(x, y int) (chess.Piece, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board.PieceAt(x, y)
}

// IsValidMove reports whether m is legal for the side to move. It never
// changes the game.
func (c *Controller) IsValidMove(m chess.Move) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.state.IsOver() && m.Colour == c.toMove && c.board.IsLegal(m)
}

// SubmitMove plays a human move and starts the engine's reply if the
// engine is to move next. It reports whether the move was accepted.
func (c *Controller) SubmitMove(m chess.Move) bool {
	return c.Play(m) == nil
}

// Play is SubmitMove with the reason for a refusal: ErrGameOver,
// ErrSearchBusy, or a *MoveError wrapping ErrIllegalMove.
func (c *Controller) Play(m chess.Move) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.closed || c.state.IsOver():
		return errors.ErrGameOver
	case c.searching:
		return errors.ErrSearchBusy
	}
	if c.isEngineTurnL() || m.Colour != c.toMove || !c.board.IsLegal(m) {
		return &errors.MoveError{
			Err:      errors.ErrIllegalMove,
			PlyNum:   len(c.plies) + 1,
			MoveText: m.String(),
			FEN:      c.fenL(),
		}
	}
	c.applyMoveL(m)
	return nil
}

// UndoLastExchange takes back the last human move together with the
// engine's reply to it. Without an engine player it takes back the last
// two moves. It returns false if there is nothing to undo or a search is
// running.
func (c *Controller) UndoLastExchange() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.searching || len(c.plies) == 0 {
		return false
	}

	c.undoPlyL()
	if c.cfg.Game.Automated {
		for len(c.plies) > 0 && c.toMove == c.cfg.Game.AutomatedColour {
			c.undoPlyL()
		}
	} else if len(c.plies) > 0 {
		c.undoPlyL()
	}

	prev := c.state
	c.state = c.evaluateStateL()
	c.cfg.Logf(1, "undo: back to ply %d, %s to move", len(c.plies), c.toMove)

	fen, status := c.fenL(), c.state
	c.enqueueL(func(l Listener) {
		l.BoardChanged(BoardEvent{FEN: fen, Undo: true, Status: status})
	})
	if status != prev {
		c.enqueueL(func(l Listener) { l.StateChanged(status) })
	}
	c.dispatchL()
	return true
}

// RequestHint runs a shallow search for the side to move on a copy of the
// board. Nothing is played.
func (c *Controller) RequestHint() (chess.Move, bool) {
	c.mu.Lock()
	if c.closed || c.state.IsOver() {
		c.mu.Unlock()
		return chess.Move{}, false
	}
	b := c.board.Clone()
	colour := c.toMove
	c.mu.Unlock()

	c.hintMu.Lock()
	defer c.hintMu.Unlock()
	res, err := c.hinter.ChooseMove(context.Background(), b, colour, c.cfg.Game.HintDepth, nil)
	if err != nil || !res.Found {
		return chess.Move{}, false
	}
	c.cfg.Logf(2, "hint for %s: %s (score %d)", colour, res.Move, res.Score)
	return res.Move, true
}

// SetDepth sets the engine's search depth for later searches and returns
// the value actually used after clamping.
func (c *Controller) SetDepth(depth int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.depth = config.ClampDepth(depth)
	return c.depth
}

// Depth returns the engine's search depth.
func (c *Controller) Depth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.depth
}

// State returns the game state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ToMove returns the side to move.
func (c *Controller) ToMove() chess.Colour {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toMove
}

// Searching reports whether an engine search is in flight.
func (c *Controller) Searching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searching
}

// Moves returns the moves played so far.
func (c *Controller) Moves() []chess.Move {
	c.mu.Lock()
	defer c.mu.Unlock()
	moves := make([]chess.Move, len(c.plies))
	for i, p := range c.plies {
		moves[i] = p.move
	}
	return moves
}

// FEN returns the current position.
func (c *Controller) FEN() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fenL()
}

// StartFEN returns the position the game started from.
func (c *Controller) StartFEN() string {
	return c.startFEN
}

// HalfmoveClock returns the number of plies since the last capture or pawn move.
func (c *Controller) HalfmoveClock() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.halfmove
}

// RepetitionCount returns how often the current position has occurred.
func (c *Controller) RepetitionCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reps.Count(c.board.Key(), c.toMove)
}

func (c *Controller) fenL() string {
	return engine.FEN(c.board, c.toMove, c.halfmove, c.fullmove)
}

func (c *Controller) isEngineTurnL() bool {
	return c.cfg.Game.Automated && c.toMove == c.cfg.Game.AutomatedColour
}

// applyMoveL plays a legal move and updates the draw bookkeeping.
func (c *Controller) applyMoveL(m chess.Move) {
	rec := c.board.MakeMove(m)
	p := ply{move: m, halfmove: c.halfmove, fullmove: c.fullmove}

	if c.board.Piece(rec.Moved).Kind == chess.Pawn || rec.IsCapture() {
		c.halfmove = 0
	} else {
		c.halfmove++
	}
	if c.toMove == chess.Black {
		c.fullmove++
	}
	c.toMove = c.toMove.Opposite()

	p.key, p.side = c.board.Key(), c.toMove
	c.reps.Add(p.key, p.side)
	c.plies = append(c.plies, p)

	prev := c.state
	c.state = c.evaluateStateL()
	c.cfg.Logf(1, "%d: %s plays %s", len(c.plies), m.Colour, m)
	c.cfg.Logf(2, "positions: %d distinct, most repeated %d", c.reps.UniqueCount(), c.reps.MaxCount())

	fen, status := c.fenL(), c.state
	c.enqueueL(func(l Listener) {
		l.BoardChanged(BoardEvent{FEN: fen, LastMove: m, Status: status})
	})
	if status != prev {
		c.cfg.Logf(1, "game over: %s", status)
		c.enqueueL(func(l Listener) { l.StateChanged(status) })
	}
	c.dispatchL()
}

// undoPlyL takes back the last move, restoring the clocks from the journal.
func (c *Controller) undoPlyL() {
	n := len(c.plies)
	p := c.plies[n-1]
	c.plies = c.plies[:n-1]

	c.reps.Remove(p.key, p.side)
	c.board.UndoMove()
	c.halfmove = p.halfmove
	c.fullmove = p.fullmove
	c.toMove = c.toMove.Opposite()
}

// evaluateStateL classifies the current position.
func (c *Controller) evaluateStateL() State {
	for _, colour := range []chess.Colour{c.toMove, c.toMove.Opposite()} {
		if c.board.IsCheckmate(colour) {
			return checkmated(colour)
		}
	}
	switch {
	case c.board.IsStalemate(c.toMove):
		return DrawByStalemate
	case engine.HasInsufficientMaterial(c.board):
		return DrawByInsufficientMaterial
	case c.halfmove >= fiftyMoveLimit:
		return DrawByFiftyMoveRule
	case c.reps.Count(c.board.Key(), c.toMove) >= 3:
		return DrawByRepetition
	}
	return InProgress
}

// dispatchL starts the engine's search if it is the engine's turn.
func (c *Controller) dispatchL() {
	if c.closed || c.searching || c.state.IsOver() || !c.isEngineTurnL() {
		return
	}
	job := &searchJob{
		board:     c.board.Clone(),
		colour:    c.toMove,
		depth:     c.depth,
		ply:       len(c.plies),
		progress:  make(chan int, progressBuffer),
		forwarded: make(chan struct{}),
	}
	go c.forwardProgress(job)
	if !c.pool.TrySubmit(worker.Job[*searchJob]{Value: job, Index: job.ply}) {
		job.finish()
		c.cfg.Logf(1, "engine search for ply %d not started", job.ply)
		return
	}
	c.searching = true
	c.current = job
	c.cfg.Logf(2, "engine searching as %s at depth %d", job.colour, job.depth)
}

// forwardProgress turns a search's progress channel into notifications.
func (c *Controller) forwardProgress(job *searchJob) {
	defer close(job.forwarded)
	for p := range job.progress {
		percent := p
		c.mu.Lock()
		c.enqueueL(func(l Listener) { l.SearchProgress(percent) })
		c.mu.Unlock()
	}
}

// collect applies finished searches until the pool closes.
func (c *Controller) collect() {
	defer close(c.collectDone)
	for r := range c.pool.Results() {
		if r.Value.job != nil {
			<-r.Value.job.forwarded
		}
		c.finishSearch(r)
	}
}

func (c *Controller) finishSearch(r worker.Result[searchOutcome]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.idle.Broadcast()
	c.searching = false
	c.current = nil

	if c.closed || r.Err != nil {
		c.cfg.Logf(2, "search abandoned: %v", r.Err)
		return
	}
	if r.Value.job.ply != len(c.plies) {
		c.cfg.Logf(1, "discarding stale search for ply %d", r.Value.job.ply)
		return
	}

	res := r.Value.result
	st := res.Stats
	c.cfg.Logf(2, "search: %d nodes, %d quiescence, %d table hits, %d cutoffs, %d table slots used",
		st.Nodes, st.QNodes, st.TTHits, st.Cutoffs, st.TTUsed)
	if !res.Found {
		c.cfg.Logf(1, "engine has no move as %s", c.toMove)
		return
	}
	c.cfg.Logf(1, "engine chose %s (score %d)", res.Move, res.Score)
	c.applyMoveL(res.Move)
}
