package types

// NoBackground is the list background sentinel meaning "no background".
// Lists persisted without a background report this value.
const NoBackground = "#101204"

// Board is the top-level container a user opens and works within.
// A board owns its lists exclusively.
type Board struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Background  string  `json:"background"`
	Lists       []*List `json:"lists"`
	IsStarred   bool    `json:"isStarred"`
	IsClosed    bool    `json:"isClosed"`
	// Members is omitted when nil; an empty list is kept.
	Members []string `json:"members,omitzero"`
}

// List is a named, ordered column of cards within a board.
type List struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Cards []*Card `json:"cards"`
	// Background is empty when the list uses the default.
	Background string `json:"background,omitempty"`
}

// EffectiveBackground returns the stored background or NoBackground.
func (l *List) EffectiveBackground() string {
	if l.Background == "" {
		return NoBackground
	}
	return l.Background
}

// Card is a single work item within a list.
type Card struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
	IsWatching  bool       `json:"isWatching"`
	CreatedAt   Timestamp  `json:"createdAt"`
	Activities  []Activity `json:"activities"`
	Comments    []Comment  `json:"comments"`
}

// Valid reports whether the card carries the fields every operation relies on.
func (c *Card) Valid() bool {
	return c != nil && c.ID != ""
}

// DescriptionText returns the description or "" when unset.
func (c *Card) DescriptionText() string {
	if c.Description == nil {
		return ""
	}
	return *c.Description
}

// ListIndex returns the position of the list with the given id, or -1.
func (b *Board) ListIndex(id string) int {
	for i, l := range b.Lists {
		if l != nil && l.ID == id {
			return i
		}
	}
	return -1
}

// FindList returns the list with the given id.
func (b *Board) FindList(id string) (*List, bool) {
	if i := b.ListIndex(id); i >= 0 {
		return b.Lists[i], true
	}
	return nil, false
}

// CardIndex returns the position of the card with the given id, or -1.
func (l *List) CardIndex(id string) int {
	for i, c := range l.Cards {
		if c != nil && c.ID == id {
			return i
		}
	}
	return -1
}

// FindCard returns the card with the given id.
func (l *List) FindCard(id string) (*Card, bool) {
	if i := l.CardIndex(id); i >= 0 {
		return l.Cards[i], true
	}
	return nil, false
}

// CommentIndex returns the position of the comment with the given id, or -1.
func (c *Card) CommentIndex(id string) int {
	for i := range c.Comments {
		if c.Comments[i].ID == id {
			return i
		}
	}
	return -1
}

// CardCount returns the number of cards across all lists of the board.
func (b *Board) CardCount() int {
	n := 0
	for _, l := range b.Lists {
		if l != nil {
			n += len(l.Cards)
		}
	}
	return n
}
