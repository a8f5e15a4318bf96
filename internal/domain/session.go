package domain

// State is the position of a user in a dialogue. The zero value is StateIdle.
type State uint8

const (
	StateIdle State = iota
	StateStartButton
	StateItemDesc
	StatePrice
	StateContact
	StateConfirmation
	StateEditDesc
	StateEditPrice
	StateEditContact
	StateBroadcastMessage
	StateBroadcastConfirm
	StateStatsMenu

	stateCount
)

var stateNames = [stateCount]string{
	StateIdle:             "idle",
	StateStartButton:      "start_button",
	StateItemDesc:         "item_desc",
	StatePrice:            "price",
	StateContact:          "contact",
	StateConfirmation:     "confirmation",
	StateEditDesc:         "edit_desc",
	StateEditPrice:        "edit_price",
	StateEditContact:      "edit_contact",
	StateBroadcastMessage: "broadcast_message",
	StateBroadcastConfirm: "broadcast_confirm",
	StateStatsMenu:        "stats_menu",
}

func (s State) String() string {
	if s >= stateCount {
		return "unknown"
	}
	return stateNames[s]
}

// Valid reports whether s is one of the declared states
func (s State) Valid() bool {
	return s < stateCount
}

// IsEdit reports whether s edits a single field of a complete draft
func (s State) IsEdit() bool {
	return s == StateEditDesc || s == StateEditPrice || s == StateEditContact
}

// OwnerOnly reports whether only the owner may be in state s
func (s State) OwnerOnly() bool {
	return s == StateBroadcastMessage || s == StateBroadcastConfirm || s == StateStatsMenu
}

// Draft holds the fields of a submission that has not been sent yet
type Draft struct {
	Description string
	PhotoID     string
	Price       string
	Contact     string
}

// Content renders the draft body, carrying the photo along when present
func (d Draft) Content(text string) Content {
	return Content{Text: text, PhotoID: d.PhotoID}
}

// Session is the per-user dialogue state. Instruction and Preview point at
// transient UI messages that must be cleaned up when replaced.
type Session struct {
	State           State
	Draft           Draft
	Instruction     *MessageRef
	Preview         *MessageRef
	BroadcastSource *MessageRef
}

// NewSession returns an empty session in the given state
func NewSession(state State) *Session {
	return &Session{State: state}
}
