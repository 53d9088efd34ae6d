package web

// Message types for the JSON protocol over WebSocket.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_cards", "choose_challenge", "choose_insurance"
	Prompt     string     `json:"prompt,omitempty"`
	Candidates []CardView `json:"candidates,omitempty"`
	Min        int        `json:"min,omitempty"`
	Max        int        `json:"max,omitempty"`

	// For "choose_renewal"
	Policy *CardView `json:"policy,omitempty"`

	// Attached to every decision request
	State *StateView `json:"state,omitempty"`

	// For "game_over" and "error"
	Result string `json:"result,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// CardView describes a card candidate for selection.
type CardView struct {
	Index       int    `json:"index"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Kind        string `json:"kind"`
	Power       int    `json:"power,omitempty"`
	Cost        int    `json:"cost,omitempty"`
	Coverage    int    `json:"coverage,omitempty"`
	UsageCount  int    `json:"usageCount,omitempty"`
}

// StateView is the visible game state for the client.
type StateView struct {
	Turn            int        `json:"turn"`
	Stage           string     `json:"stage"`
	Phase           string     `json:"phase"`
	Status          string     `json:"status"`
	Vitality        int        `json:"vitality"`
	MaxVitality     int        `json:"maxVitality"`
	InsuranceBurden int        `json:"insuranceBurden"`
	Hand            []CardView `json:"hand"`
	Insurance       []CardView `json:"insurance"`
	DeckCount       int        `json:"deckCount"`
	DiscardCount    int        `json:"discardCount"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "cards" and "pick"
	Indices []int `json:"indices,omitempty"`
	Index   int   `json:"index,omitempty"`

	// For "yes_no" (renewal answers) and "pick" declines
	Answer  bool `json:"answer,omitempty"`
	Decline bool `json:"decline,omitempty"`

	// For "join" (initial handshake)
	PlayerName string `json:"playerName,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
}
