package planner

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"voyago/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

const interpretFlightReply = `{
	"analyzedQuery": "flights to Tokyo next month",
	"flight": {"origin": "LIS", "destination": "NRT", "departure_date": "2026-09-15"}
}`

const interpretCarReply = `{
	"analyzedQuery": "an SUV in Austin",
	"car": {"location": "Austin", "pickup_date": "2026-09-05", "dropoff_date": "2026-09-08", "car_type": "SUV"}
}`

func TestAdvanceConversationArmsSuggestionAfterFlightResults(t *testing.T) {
	genAI := &stubGenAI{replies: []genReply{
		{out: interpretFlightReply},
		{out: `{"summary": "Found 2 flights to Tokyo."}`},
	}}
	svc := newTestService(genAI)
	svc.Flights = countingFlights(new(int32), []models.SearchResult{
		flightResult("ANA", "Tokyo"), flightResult("TAP", "Tokyo"),
	}, nil)

	session := newSession()
	turn, err := svc.AdvanceConversation(context.Background(), session, "find me flights to Tokyo next month", nil)

	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingSuggestion, session.State)
	assert.True(t, strings.HasSuffix(turn.Text, suggestionOffer))
	assert.Equal(t, "flights to Tokyo next month", turn.AnalyzedQuery)
	assert.Len(t, turn.Results, 2)
	// One user turn and one assistant turn appended.
	require.Len(t, session.History, 2)
	assert.Equal(t, models.SenderUser, session.History[0].Sender)
	assert.Equal(t, models.SenderAssistant, session.History[1].Sender)
}

func TestAdvanceConversationCarOnlyResultsStayIdle(t *testing.T) {
	genAI := &stubGenAI{replies: []genReply{
		{out: interpretCarReply},
		{out: `{"summary": "Found an SUV in Austin."}`},
	}}
	svc := newTestService(genAI)
	svc.Cars = countingCars(new(int32), []models.SearchResult{carResult("Hertz", "Austin")}, nil)

	session := newSession()
	turn, err := svc.AdvanceConversation(context.Background(), session, "I need an SUV in Austin", nil)

	require.NoError(t, err)
	assert.Equal(t, models.StateIdle, session.State)
	assert.False(t, strings.HasSuffix(turn.Text, suggestionOffer))
}

func TestAdvanceConversationAffirmativeRunsAlternative(t *testing.T) {
	genAI := &stubGenAI{replies: []genReply{
		{out: `{"location": "Osaka", "reason": "Similar vibe, usually cheaper flights.", "costDelta": -120}`},
	}}
	svc := newTestService(genAI)

	session := newSession(userTurn("flights to Tokyo"))
	session.State = models.StateAwaitingSuggestion

	turn, err := svc.AdvanceConversation(context.Background(), session, "yes please", nil)

	require.NoError(t, err)
	assert.Equal(t, models.StateIdle, session.State)
	require.NotNil(t, turn.Alternative)
	assert.Equal(t, "Osaka", turn.Alternative.Location)
	assert.Contains(t, turn.Text, "Osaka")
}

func TestAdvanceConversationNeutralDeclineAcksWithoutModelCall(t *testing.T) {
	genAI := &stubGenAI{replies: []genReply{{out: `{}`}}}
	svc := newTestService(genAI)

	session := newSession(userTurn("flights to Tokyo"))
	session.State = models.StateAwaitingSuggestion

	turn, err := svc.AdvanceConversation(context.Background(), session, "no thanks", nil)

	require.NoError(t, err)
	assert.Equal(t, models.StateIdle, session.State)
	assert.Equal(t, neutralAck, turn.Text)
	assert.Zero(t, genAI.calls)
}

func TestAdvanceConversationNewSearchOverridesPendingOffer(t *testing.T) {
	genAI := &stubGenAI{replies: []genReply{
		{out: interpretCarReply},
		{out: `{"summary": "Found an SUV in Austin."}`},
	}}
	svc := newTestService(genAI)
	var carCalls int32
	svc.Cars = countingCars(&carCalls, []models.SearchResult{carResult("Hertz", "Austin")}, nil)

	session := newSession(userTurn("flights to Tokyo"))
	session.State = models.StateAwaitingSuggestion

	turn, err := svc.AdvanceConversation(context.Background(), session, "actually, find me an SUV in Austin", nil)

	require.NoError(t, err)
	assert.Equal(t, models.StateIdle, session.State)
	assert.Equal(t, "an SUV in Austin", turn.AnalyzedQuery)
	assert.Nil(t, turn.Alternative)
	assert.Equal(t, int32(1), atomic.LoadInt32(&carCalls))
}

func TestAdvanceConversationDisruptionInterruptsPendingOffer(t *testing.T) {
	genAI := &stubGenAI{replies: []genReply{
		{out: `{"venue": "National Museum", "location": "Lisbon", "reason": "Indoors and a short walk away.", "timeDelta": "+15m"}`},
	}}
	svc := newTestService(genAI)
	svc.Trips = &stubTrips{itinerary: &models.SavedItinerary{
		ID: "itin-1", UserID: "user-1", Name: "Lisbon Weekend",
		Location: "Lisbon", StartDate: "2026-08-29",
		Days: []models.ItineraryDay{{Date: "2026-08-29", Stops: []models.ItineraryStop{{Time: "10:00", Title: "Belem Tower"}}}},
	}}

	session := newSession(userTurn("flights to Tokyo"))
	session.State = models.StateAwaitingSuggestion

	turn, err := svc.AdvanceConversation(context.Background(), session, "it's raining, what else can I do instead?", nil)

	require.NoError(t, err)
	// The interrupt bypasses the FSM: the pending offer is untouched.
	assert.Equal(t, models.StateAwaitingSuggestion, session.State)
	require.NotNil(t, turn.RealTime)
	assert.Equal(t, "National Museum", turn.RealTime.Venue)
	assert.Nil(t, turn.Alternative)
	// The disruption prompt carries the itinerary, not the transcript rules.
	require.Len(t, genAI.prompts, 1)
	assert.Contains(t, genAI.prompts[0], "Belem Tower")
}

func TestAdvanceConversationDisruptionWithoutItineraryFallsThrough(t *testing.T) {
	genAI := &stubGenAI{replies: []genReply{
		{out: `{"analyzedQuery": "nothing actionable"}`},
	}}
	svc := newTestService(genAI)
	svc.Trips = &stubTrips{}

	session := newSession()
	turn, err := svc.AdvanceConversation(context.Background(), session, "the weather ruined everything", nil)

	require.NoError(t, err)
	// No saved itinerary, so the normal pipeline handles the turn.
	assert.Nil(t, turn.RealTime)
	assert.Equal(t, FallbackSummary, turn.Text)
	assert.Equal(t, models.StateIdle, session.State)
}

func TestAdvanceConversationClassifiedFailureBecomesAssistantTurn(t *testing.T) {
	genAI := &stubGenAI{replies: []genReply{{err: &googleapi.Error{Code: 403}}}}
	svc := newTestService(genAI)

	session := newSession()
	turn, err := svc.AdvanceConversation(context.Background(), session, "find me flights to Tokyo", nil)

	require.NoError(t, err)
	assert.Equal(t, userMessages[KindPermissionDenied], turn.Text)
	assert.Equal(t, models.StateIdle, session.State)
	require.Len(t, session.History, 2)
	assert.Equal(t, models.SenderAssistant, session.History[1].Sender)
}

func TestAdvanceConversationParseFailureBecomesAssistantTurn(t *testing.T) {
	genAI := &stubGenAI{replies: []genReply{{out: `garbage`}}}
	svc := newTestService(genAI)

	session := newSession()
	turn, err := svc.AdvanceConversation(context.Background(), session, "find me flights to Tokyo", nil)

	require.NoError(t, err)
	assert.Equal(t, userMessages[KindInvalidRequest], turn.Text)
}
