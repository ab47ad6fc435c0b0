package gameerrors

import "errors"

// Sentinel errors shared by the room, game and ws packages so none of them
// need to import each other just to classify a failure.
var (
	ErrNotConnected    = errors.New("not connected to a room")
	ErrRoomFull        = errors.New("room is full")
	ErrRoomNotFound    = errors.New("room not found")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrIllegalMove     = errors.New("illegal move")
	ErrGameAlreadyOver = errors.New("game already over")
	ErrGameNotStarted  = errors.New("game not started")
)

// Kind returns the wire error kind for a sentinel, or "Internal" for
// anything else. The kind goes into the `kind` field of error messages so
// clients can branch without parsing human-readable text.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrNotConnected):
		return "NotConnected"
	case errors.Is(err, ErrRoomFull):
		return "RoomFull"
	case errors.Is(err, ErrRoomNotFound):
		return "RoomNotFound"
	case errors.Is(err, ErrNotYourTurn):
		return "NotYourTurn"
	case errors.Is(err, ErrIllegalMove):
		return "IllegalMove"
	case errors.Is(err, ErrGameAlreadyOver):
		return "GameAlreadyOver"
	case errors.Is(err, ErrGameNotStarted):
		return "GameNotStarted"
	default:
		return "Internal"
	}
}
