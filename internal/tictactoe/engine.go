package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// RootBound is the pruning bound of a top-level search. It is worse than any legal score, so the
// root never cuts off and always scans every empty square.
const RootBound = entity.DefeatValue - 1

type Option func(*Engine)

// WithHeuristic switches the open-lines heuristic at the search horizon. Disabled, every
// horizon position scores 0.
func WithHeuristic(enabled bool) Option {
	return func(engine *Engine) {
		engine.useHeuristic = enabled
	}
}

// WithRand sets the source used to break ties between equally good moves.
func WithRand(r *rand.Rand) Option {
	return func(engine *Engine) {
		engine.rand = r
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(engine *Engine) {
		engine.logger = logger
	}
}

// Engine searches one board in place. It is not safe for concurrent use: give every concurrent
// search its own Board and Engine.
type Engine struct {
	logger *slog.Logger

	board        *entity.Board
	useHeuristic bool
	rand         *rand.Rand

	nodes int
}

func NewEngine(board *entity.Board, opts ...Option) *Engine {
	engine := &Engine{
		board:        board,
		useHeuristic: true,
	}

	for _, opt := range opts {
		opt(engine)
	}

	if engine.rand == nil {
		engine.rand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	if engine.logger == nil {
		engine.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	engine.logger = engine.logger.With("component", "engine")

	return engine
}

// Nodes returns how many placements the last top-level search tried.
func (that *Engine) Nodes() int {
	return that.nodes
}

// Search scores the position for mover with a negamax of at most ply half-moves.
//
// The board is mutated and restored for every move tried, on every return path. pruneBound is
// the best score of the parent node; the scan stops once this node is provably worse for the
// parent. Top-level callers pass RootBound. With collectTies the linear indexes of all moves
// reaching the returned score are reported as well.
//
// The context is polled after each move. A cancelled search returns ErrSearchCancelled and no
// moves.
func (that *Engine) Search(ctx context.Context, mover entity.Square, ply, pruneBound int, collectTies bool) (int, []int, error) {
	opponent := mover.Opponent()
	dimension := that.board.Dimension()
	best := entity.DefeatValue - 1

	var ties []int
	if collectTies {
		ties = make([]int, 0, that.board.Area())
	}

scan:
	for index := 0; index < that.board.Area(); index++ {
		if that.board.AtIndex(index) != entity.Empty {
			continue
		}

		row, column := index/dimension, index%dimension
		that.nodes++

		victory, err := that.board.Place(mover, row, column, false)
		if err != nil {
			return best, nil, fmt.Errorf("%w: %w", apperror.ErrInternalConsistency, err)
		}

		var moveValue int
		var childErr error

		switch {
		case victory:
			moveValue = entity.VictoryValue
		case !that.board.IsFull() && ply > 1:
			var childValue int
			childValue, _, childErr = that.Search(ctx, opponent, ply-1, best, false)
			moveValue = -childValue
		default:
			moveValue = that.horizonValue(mover, opponent)
		}

		if _, err = that.board.Place(entity.Empty, row, column, false); err != nil {
			return best, nil, fmt.Errorf("%w: %w", apperror.ErrInternalConsistency, err)
		}

		if childErr != nil {
			return best, nil, childErr
		}

		if err = ctx.Err(); err != nil {
			return best, nil, fmt.Errorf("%w: %w", apperror.ErrSearchCancelled, err)
		}

		switch {
		case moveValue == best && collectTies:
			ties = append(ties, index)
		case moveValue > best:
			best = moveValue

			switch {
			// alpha-beta cutoff: the parent already has something better
			case best > -pruneBound:
				break scan
			case collectTies:
				ties = append(ties[:0], index)
			case best == entity.VictoryValue:
				break scan
			}
		}
	}

	if best < entity.DefeatValue || best > entity.VictoryValue {
		return best, nil, fmt.Errorf("%w: best score %d is out of range", apperror.ErrInternalConsistency, best)
	}

	if collectTies && len(ties) == 0 {
		return best, nil, fmt.Errorf("%w: no best moves collected", apperror.ErrInternalConsistency)
	}

	return best, ties, nil
}

// horizonValue scores a position where the search stops without a win. A full board still gets
// the heuristic when it is enabled.
func (that *Engine) horizonValue(mover, opponent entity.Square) int {
	if !that.useHeuristic {
		return 0
	}

	return HeuristicValue(that.board, mover, opponent)
}

// SelectMove runs a top-level search for mover and picks one of the tied best moves at random.
// A cancelled search returns NoMove together with ErrSearchCancelled.
func (that *Engine) SelectMove(ctx context.Context, mover entity.Square, ply int) (entity.BestMove, error) {
	log := that.logger.With("method", "SelectMove", "mover", mover.String(), "ply", ply)

	if !mover.IsPlayer() {
		return entity.NoMove, fmt.Errorf("%w: %d", apperror.ErrInvalidPlayer, mover)
	}

	if err := entity.ValidatePly(ply); err != nil {
		return entity.NoMove, err
	}

	if that.board.IsFull() {
		return entity.NoMove, apperror.ErrNoEmptySquares
	}

	start := time.Now()
	that.nodes = 0

	score, ties, err := that.Search(ctx, mover, ply, RootBound, true)
	if err != nil {
		if errors.Is(err, apperror.ErrSearchCancelled) {
			log.Debug("search cancelled", "nodes", that.nodes, "duration", time.Since(start))
		}

		return entity.NoMove, err
	}

	index := ties[that.rand.Intn(len(ties))]
	dimension := that.board.Dimension()

	log.Debug("search finished",
		"score", score,
		"ties", ties,
		"index", index,
		"nodes", that.nodes,
		"duration", time.Since(start),
	)

	return entity.BestMove{
		Score:  score,
		Row:    index / dimension,
		Column: index % dimension,
	}, nil
}
