package domain

import "fmt"

// Control identifiers carried in callback data
const (
	CallbackStartSubmit   = "start_submit"
	CallbackFinalSend     = "final_send"
	CallbackEditDesc      = "edit_desc"
	CallbackEditPrice     = "edit_price"
	CallbackEditContact   = "edit_contact"
	CallbackCancel        = "cancel_fsm"
	CallbackBroadcastOK   = "bc_confirm"
	CallbackStatsToday    = "stats_today"
	CallbackStatsAll      = "stats_all"
	CallbackStatsShowMenu = "stats_show_menu"
	CallbackStatsBack     = "stats_back"

	CallbackPublishPrefix = "mod_pub"
	CallbackRejectPrefix  = "mod_rej"
)

// StartSubmitKeyboard is attached to the welcome message
func StartSubmitKeyboard() *Keyboard {
	return &Keyboard{
		{{Text: "📤 Submit a post", Data: CallbackStartSubmit}},
	}
}

// CancelKeyboard is attached to every instruction message
func CancelKeyboard() *Keyboard {
	return &Keyboard{
		{{Text: "❌ Cancel", Data: CallbackCancel}},
	}
}

// DraftEditKeyboard is attached to the draft preview
func DraftEditKeyboard() *Keyboard {
	return &Keyboard{
		{
			{Text: "✏️ Description", Data: CallbackEditDesc},
			{Text: "💰 Price", Data: CallbackEditPrice},
			{Text: "📞 Contact", Data: CallbackEditContact},
		},
		{{Text: "✅ Send to moderation", Data: CallbackFinalSend}},
		{{Text: "❌ Cancel submission", Data: CallbackCancel}},
	}
}

// ModerationKeyboard is attached to a review post in the moderation channel
func ModerationKeyboard(authorID int64) *Keyboard {
	return &Keyboard{
		{
			{Text: "✅ Publish", Data: fmt.Sprintf("%s:%d", CallbackPublishPrefix, authorID)},
			{Text: "❌ Reject", Data: fmt.Sprintf("%s:%d", CallbackRejectPrefix, authorID)},
		},
	}
}

// BroadcastConfirmKeyboard asks the owner to confirm a broadcast
func BroadcastConfirmKeyboard() *Keyboard {
	return &Keyboard{
		{
			{Text: "✅ Send", Data: CallbackBroadcastOK},
			{Text: "❌ Cancel", Data: CallbackCancel},
		},
	}
}

// StatsMenuKeyboard is the statistics menu
func StatsMenuKeyboard() *Keyboard {
	return &Keyboard{
		{{Text: "📊 Today", Data: CallbackStatsToday}},
		{{Text: "📈 All time", Data: CallbackStatsAll}},
		{{Text: "🔙 Close", Data: CallbackStatsBack}},
	}
}

// StatsBackKeyboard returns from a statistics view to the menu
func StatsBackKeyboard() *Keyboard {
	return &Keyboard{
		{{Text: "🔙 Back to statistics", Data: CallbackStatsShowMenu}},
	}
}
