// Package live implements the WebSocket session protocol: a client holds
// an editable board, mutates it one frame at a time, and receives a fresh
// intersection ranking after every change.
package live

import (
	"encoding/json"
	"fmt"

	"github.com/berpycasiano-dotcom/catanylizer/internal/board"
	"github.com/berpycasiano-dotcom/catanylizer/internal/score"
)

// Version is the live protocol version. Bump on breaking frame changes.
const Version = 1

// Client-to-server message types.
const (
	TypeHello     = "HELLO"
	TypeSetTile   = "SET_TILE"
	TypeSetWeight = "SET_WEIGHT"
	TypeReset     = "RESET"
	TypeGet       = "GET"
)

// Server-to-client message types.
const (
	TypeWelcome = "WELCOME"
	TypeRanking = "RANKING"
	TypeError   = "ERROR"
)

// Error codes carried by ERROR frames.
const (
	ErrBadFrame    = "E_BAD_FRAME"
	ErrUnknownType = "E_UNKNOWN_TYPE"
	ErrBadTile     = "E_BAD_TILE"
	ErrBadWeight   = "E_BAD_WEIGHT"
	ErrBadBoard    = "E_BAD_BOARD"
)

var knownCodes = map[string]bool{
	ErrBadFrame:    true,
	ErrUnknownType: true,
	ErrBadTile:     true,
	ErrBadWeight:   true,
	ErrBadBoard:    true,
}

// IsKnownCode reports whether code is a defined live error code.
func IsKnownCode(code string) bool {
	return knownCodes[code]
}

// BaseMessage is the envelope every frame shares. Individual frames embed
// the same type/version fields plus their own payload.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion int    `json:"protocol_version,omitempty"`
}

// DecodeBase peels the envelope off a raw frame to dispatch on type.
func DecodeBase(data []byte) (BaseMessage, error) {
	var base BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		return base, fmt.Errorf("decode frame: %w", err)
	}
	if base.Type == "" {
		return base, fmt.Errorf("frame missing type")
	}
	return base, nil
}

// HelloMsg opens a session. A nil Board starts from a random setup; Seed
// pins that setup for reproducible sessions.
type HelloMsg struct {
	Type   string          `json:"type"`
	Board  *board.Document `json:"board,omitempty"`
	Weight *float64        `json:"weight,omitempty"`
	Seed   *int64          `json:"seed,omitempty"`
}

// SetTileMsg replaces the tile on one hex. A nil Number clears the token,
// which is how desert hexes are set.
type SetTileMsg struct {
	Type     string `json:"type"`
	Index    int    `json:"index"`
	Resource string `json:"resource"`
	Number   *int   `json:"number,omitempty"`
}

// SetWeightMsg changes the diversity weight for subsequent rankings.
type SetWeightMsg struct {
	Type   string  `json:"type"`
	Weight float64 `json:"weight"`
}

// ResetMsg re-deals the board. A nil Seed picks a fresh random one.
type ResetMsg struct {
	Type string `json:"type"`
	Seed *int64 `json:"seed,omitempty"`
}

// GetMsg asks for the current ranking without changing anything.
type GetMsg struct {
	Type string `json:"type"`
}

// WelcomeMsg acknowledges a HELLO and echoes the session's starting state.
// A RANKING frame always follows immediately.
type WelcomeMsg struct {
	Type            string         `json:"type"`
	ProtocolVersion int            `json:"protocol_version"`
	SessionID       string         `json:"session_id"`
	Board           board.Document `json:"board"`
	Weight          float64        `json:"weight"`
}

// RankingMsg carries the full ranked intersection list for the session's
// current board, plus any advisory pairing messages.
type RankingMsg struct {
	Type          string                    `json:"type"`
	Weight        float64                   `json:"weight"`
	Messages      []board.ValidationMessage `json:"messages,omitempty"`
	Intersections []score.Intersection      `json:"intersections"`
}

// ErrorMsg reports a rejected frame. The session stays open; the board is
// unchanged.
type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorFrame(code, format string, args ...any) ErrorMsg {
	return ErrorMsg{Type: TypeError, Code: code, Message: fmt.Sprintf(format, args...)}
}
