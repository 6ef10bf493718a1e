package game

// Version of the client.
// Bumping this number will eventually make browsers reload the WASM.
//
// If you set this to an empty string, a random version number will be
// used, and force the reload of the WASM on every restart. This is
// useful during development.
var Version = "v0.1.0"

// Team tags as written by the backend.
const (
	TeamUs   = "NOS"
	TeamThem = "ELES"
	TieTag   = "EMPATE"
)

// Chair keys used by the backend for the four absolute seats.
const (
	ChairA = "chair_a"
	ChairB = "chair_b"
	ChairC = "chair_c"
	ChairD = "chair_d"
)

// RecordSeparator joins the fields of the backend's compound string records,
// e.g. "alice---NOS" for a call or "alice---yes" for an acceptance.
const RecordSeparator = "---"

// MaxPlayerNameLength is the longest player name the backend accepts.
const MaxPlayerNameLength = 36

// MaxChatMessageLength is the longest chat message the backend accepts.
const MaxChatMessageLength = 256
