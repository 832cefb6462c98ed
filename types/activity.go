package types

import "fmt"

// ActivityType identifies what a card activity records.
type ActivityType string

const (
	ActivityAdd         ActivityType = "add"
	ActivityMove        ActivityType = "move"
	ActivityComplete    ActivityType = "complete"
	ActivityDescription ActivityType = "description"
	// ActivityTitle is reserved; title edits do not currently produce it.
	ActivityTitle ActivityType = "title"
)

// Valid reports whether t is one of the known activity types.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityAdd, ActivityMove, ActivityComplete, ActivityDescription, ActivityTitle:
		return true
	}
	return false
}

// ActivityData holds the optional payload of an activity.
type ActivityData struct {
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
	Value string `json:"value,omitempty"`
}

// Activity is an immutable, timestamped log entry on a card.
type Activity struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	Data      ActivityData `json:"data"`
	CreatedAt Timestamp    `json:"createdAt"`
	UserID    string       `json:"userId"`
	UserName  string       `json:"userName"`
}

// Text renders the activity the way the card detail view shows it,
// without the leading user name.
func (a Activity) Text() string {
	switch a.Type {
	case ActivityAdd:
		return fmt.Sprintf("added this card to %s", a.Data.To)
	case ActivityMove:
		return fmt.Sprintf("moved this card from %s to %s", a.Data.From, a.Data.To)
	case ActivityComplete:
		if a.Data.Value == "true" {
			return "marked this card as complete"
		}
		return "marked this card as incomplete"
	case ActivityDescription:
		if a.Data.Value != "" {
			return "updated the description"
		}
		return "removed the description"
	case ActivityTitle:
		return "updated the title"
	default:
		return ""
	}
}

// Comment is a user-authored, editable note attached to a card.
type Comment struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	UserID    string     `json:"userId"`
	UserName  string     `json:"userName"`
	CreatedAt Timestamp  `json:"createdAt"`
	UpdatedAt *Timestamp `json:"updatedAt,omitempty"`
}

// Actor identifies the user on whose behalf mutations are recorded.
type Actor struct {
	ID   string
	Name string
}
