package truco

// Reason explains why an action is disabled. ReasonNone means enabled.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonSpectator      Reason = "not seated at this match"
	ReasonMatchOver      Reason = "the match is over"
	ReasonNotYourTurn    Reason = "not your turn"
	ReasonCallPending    Reason = "a call is waiting for an answer"
	ReasonTrickFull      Reason = "the trick is full, cards must be collected"
	ReasonHandDecided    Reason = "the hand already has a winner"
	ReasonNoCards        Reason = "no cards left in hand"
	ReasonNotInHand      Reason = "card is not in your hand"
	ReasonFirstTrickOpen Reason = "cards can only be covered after the first trick"
	ReasonLeadFaceUp     Reason = "the first card of a trick must be face up"
	ReasonHandOfEleven   Reason = "nobody calls in the hand of eleven"
	ReasonCallDeclined   Reason = "the call was declined"
	ReasonLadderTop      Reason = "twelve is the highest call"
	ReasonSameTeamRaised Reason = "your team made the last call"
	ReasonTooLateToCall  Reason = "too many cards on the table to call"
	ReasonNoPendingCall  Reason = "there is no call to answer"
	ReasonOwnCall        Reason = "your team made this call"
	ReasonNotOwner       Reason = "only the room owner collects the cards"
	ReasonTrickNotDone   Reason = "the trick is not finished"
	ReasonAlreadyCalled  Reason = "a call was already made this hand"
	ReasonWrongLevel     Reason = "that is not the next call level"
)

// Error lets a Reason be wrapped into ErrInvalidTransition.
func (r Reason) Error() string {
	return string(r)
}
