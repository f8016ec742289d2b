package models

import "time"

// Sender identifies who authored a chat turn.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ConversationState is the per-session FSM value governing follow-up turns.
type ConversationState string

const (
	StateIdle               ConversationState = "idle"
	StateAwaitingSuggestion ConversationState = "awaiting_suggestion_response"
)

// ImageAttachment is an image the user attached to a turn. Data is only set
// while the turn is in flight; persisted turns carry the URL.
type ImageAttachment struct {
	URL      string `json:"url,omitempty"`
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"-"`
}

// ChatTurn is one user or assistant message. Turns are append-only within a
// session and never mutated after creation.
type ChatTurn struct {
	ID            string                 `json:"id"`
	Sender        Sender                 `json:"sender"`
	Text          string                 `json:"text"`
	Attachment    *ImageAttachment       `json:"attachment,omitempty"`
	Results       []SearchResult         `json:"results,omitempty"`
	AnalyzedQuery string                 `json:"analyzedQuery,omitempty"`
	Itinerary     *ItinerarySnippet      `json:"itinerary,omitempty"`
	Alternative   *AlternativeSuggestion `json:"alternative,omitempty"`
	RealTime      *RealTimeSuggestion    `json:"realTime,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ConversationSession holds one user's chat history and FSM state. It is
// owned by the caller and passed explicitly into every pipeline call; the
// planner's tracker is the only writer of State.
type ConversationSession struct {
	ID       string            `json:"id"`
	UserID   string            `json:"userId"`
	State    ConversationState `json:"state"`
	History  []ChatTurn        `json:"history"`
	Location GeoPoint          `json:"location,omitempty"`
}

// AlternativeSuggestion proposes a different destination after a completed
// search. Turn-scoped; never persisted outside the turn that carries it.
type AlternativeSuggestion struct {
	Location  string  `json:"location"`
	Reason    string  `json:"reason"`
	CostDelta float64 `json:"costDelta,omitempty"`
}

// RealTimeSuggestion is the disruption-path payload: a nearby venue or plan
// change when the user's current itinerary is disrupted.
type RealTimeSuggestion struct {
	Venue     string `json:"venue"`
	Location  string `json:"location"`
	Reason    string `json:"reason"`
	TimeDelta string `json:"timeDelta,omitempty"`
}

// TravelAlert is produced by the disruption monitor when a forecast check
// flags an upcoming itinerary.
type TravelAlert struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	ItineraryID string    `json:"itineraryId"`
	Headline    string    `json:"headline"`
	Detail      string    `json:"detail"`
	CreatedAt   time.Time `json:"createdAt"`
}
