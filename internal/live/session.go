package live

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/berpycasiano-dotcom/catanylizer/internal/board"
	"github.com/berpycasiano-dotcom/catanylizer/internal/geometry"
	"github.com/berpycasiano-dotcom/catanylizer/internal/score"
)

// Session is one client's editable board plus ranking parameters. A
// session is owned by its connection's reader goroutine; methods are not
// safe for concurrent use.
type Session struct {
	ID     string
	graph  *geometry.IntersectionGraph
	tiles  board.TileAssignment
	weight float64
}

// Open builds a session from a HELLO frame. A rejected HELLO returns a
// non-nil ErrorMsg and no session.
func Open(graph *geometry.IntersectionGraph, hello HelloMsg, defaultWeight float64) (*Session, *ErrorMsg) {
	weight := defaultWeight
	if hello.Weight != nil {
		if !validWeight(*hello.Weight) {
			frame := errorFrame(ErrBadWeight, "weight must be a finite number >= 0, got %v", *hello.Weight)
			return nil, &frame
		}
		weight = *hello.Weight
	}

	var tiles board.TileAssignment
	if hello.Board != nil {
		parsed, err := hello.Board.Assignment()
		if err != nil {
			frame := errorFrame(ErrBadBoard, "%v", err)
			return nil, &frame
		}
		tiles = parsed
	} else {
		seed := time.Now().UnixNano()
		if hello.Seed != nil {
			seed = *hello.Seed
		}
		tiles = board.RandomAssignment(seed)
	}

	return &Session{
		ID:     uuid.NewString(),
		graph:  graph,
		tiles:  tiles,
		weight: weight,
	}, nil
}

// Welcome builds the WELCOME frame for this session.
func (s *Session) Welcome() WelcomeMsg {
	return WelcomeMsg{
		Type:            TypeWelcome,
		ProtocolVersion: Version,
		SessionID:       s.ID,
		Board:           s.tiles.Document(),
		Weight:          s.weight,
	}
}

// Ranking recomputes and returns the RANKING frame for the current board.
func (s *Session) Ranking() any {
	messages := board.Validate(s.tiles)
	ranked, err := score.Rank(s.graph, s.tiles, s.weight)
	if err != nil {
		return errorFrame(ErrBadBoard, "%v", err)
	}
	return RankingMsg{
		Type:          TypeRanking,
		Weight:        s.weight,
		Messages:      messages,
		Intersections: ranked,
	}
}

// Handle applies one post-handshake frame and returns the response frame:
// a RANKING on success, an ERROR otherwise. Errors never mutate the board.
func (s *Session) Handle(raw []byte) any {
	base, err := DecodeBase(raw)
	if err != nil {
		return errorFrame(ErrBadFrame, "%v", err)
	}

	switch base.Type {
	case TypeSetTile:
		var msg SetTileMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			return errorFrame(ErrBadFrame, "decode %s: %v", TypeSetTile, err)
		}
		return s.setTile(msg)

	case TypeSetWeight:
		var msg SetWeightMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			return errorFrame(ErrBadFrame, "decode %s: %v", TypeSetWeight, err)
		}
		if !validWeight(msg.Weight) {
			return errorFrame(ErrBadWeight, "weight must be a finite number >= 0, got %v", msg.Weight)
		}
		s.weight = msg.Weight
		return s.Ranking()

	case TypeReset:
		var msg ResetMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			return errorFrame(ErrBadFrame, "decode %s: %v", TypeReset, err)
		}
		seed := time.Now().UnixNano()
		if msg.Seed != nil {
			seed = *msg.Seed
		}
		s.tiles = board.RandomAssignment(seed)
		return s.Ranking()

	case TypeGet:
		return s.Ranking()

	case TypeHello:
		return errorFrame(ErrUnknownType, "session already open")

	default:
		return errorFrame(ErrUnknownType, "unknown message type %q", base.Type)
	}
}

func (s *Session) setTile(msg SetTileMsg) any {
	if msg.Index < 0 || msg.Index >= board.NumHexes {
		return errorFrame(ErrBadTile, "index %d out of range [0, %d]", msg.Index, board.NumHexes-1)
	}
	res, err := board.ParseResource(msg.Resource)
	if err != nil {
		return errorFrame(ErrBadTile, "%v", err)
	}
	number := 0
	if msg.Number != nil {
		number = *msg.Number
	}
	s.tiles[msg.Index] = board.Tile{Resource: res, Number: number}
	return s.Ranking()
}

func validWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w >= 0
}
