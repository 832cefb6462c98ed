package types

import "time"

// Timestamp is a point in time as Unix epoch milliseconds.
type Timestamp int64

// NewTimestamp converts t to a Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Time converts the timestamp back to a time.Time in UTC.
func (ts Timestamp) Time() time.Time {
	return time.UnixMilli(int64(ts)).UTC()
}

// State is the entire persisted tree: the ordered collection of boards.
type State struct {
	Boards []*Board `json:"boards"`
}

// FindBoard returns the board with the given id.
func (s *State) FindBoard(id string) (*Board, bool) {
	if i := s.BoardIndex(id); i >= 0 {
		return s.Boards[i], true
	}
	return nil, false
}

// BoardIndex returns the position of the board with the given id, or -1.
func (s *State) BoardIndex(id string) int {
	for i, b := range s.Boards {
		if b != nil && b.ID == id {
			return i
		}
	}
	return -1
}

// Default seed values used when no state has ever been persisted.
const (
	SeedBoardID         = "1"
	SeedBoardTitle      = "My trello board"
	SeedBoardBackground = "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=2000&auto=format&fit=crop"
	SeedMember          = "John"
)

// DefaultState returns the state a fresh installation starts with.
func DefaultState() *State {
	return &State{
		Boards: []*Board{
			{
				ID:         SeedBoardID,
				Title:      SeedBoardTitle,
				Background: SeedBoardBackground,
				Lists:      []*List{},
				Members:    []string{SeedMember},
			},
		},
	}
}
