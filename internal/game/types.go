package game

import (
	"fmt"
	"strings"
)

// Player is the identity the backend hands out on registration.
type Player struct {
	ID   string `json:"uuid"`
	Name string `json:"name"`
}

// Chairs holds the player name sitting on each absolute seat.
type Chairs struct {
	ChairA string `json:"chair_a"`
	ChairB string `json:"chair_b"`
	ChairC string `json:"chair_c"`
	ChairD string `json:"chair_d"`
}

// Owner is the player that created the room and collects the table cards.
type Owner struct {
	Name string `json:"name"`
}

// ChatMessage is one entry of a room chat.
type ChatMessage struct {
	PlayerName  string `json:"player_name"`
	DateCreated string `json:"date_created"`
	Content     string `json:"content"`
}

// Step is the backend's record of the hand in progress.
//
// Call and acceptance records are compound strings joined by RecordSeparator.
// A nil pointer means the field was null on the wire.
type Step struct {
	ID               int      `json:"id"`
	GameID           string   `json:"game_id"`
	Number           int      `json:"number"`
	TableCards       []string `json:"table_cards"`
	PlayerTime       *string  `json:"player_time"`
	PlayerCall3      *string  `json:"player_call_3"`
	PlayerCall6      *string  `json:"player_call_6"`
	PlayerCall9      *string  `json:"player_call_9"`
	PlayerCall12     *string  `json:"player_call_12"`
	Vira             string   `json:"vira"`
	CardsChairA      []string `json:"cards_chair_a"`
	CardsChairB      []string `json:"cards_chair_b"`
	CardsChairC      []string `json:"cards_chair_c"`
	CardsChairD      []string `json:"cards_chair_d"`
	First            *string  `json:"first"`
	Second           *string  `json:"second"`
	Win              *string  `json:"win"`
	FirstCardOrigin  *string  `json:"first_card_origin"`
	SecondCardOrigin *string  `json:"second_card_origin"`
	ThirdCardOrigin  *string  `json:"third_card_origin"`
	FourthCardOrigin *string  `json:"fourth_card_origin"`
	IsAcceptFirst    *string  `json:"is_accept_first"`
	IsAcceptSecond   *string  `json:"is_accept_second"`
}

// Details is the full game document returned by every poll.
type Details struct {
	UUID         string        `json:"uuid"`
	RoomID       string        `json:"room_id"`
	RoomName     string        `json:"room_name"`
	ScoreUs      int           `json:"score_us"`
	ScoreThem    int           `json:"score_them"`
	Protected    bool          `json:"protected"`
	IsTwoPlayers bool          `json:"is_two_players"`
	EndGameWin   *string       `json:"end_game_win"`
	Chairs       Chairs        `json:"chairs"`
	Step         Step          `json:"step"`
	Owner        Owner         `json:"owner"`
	Messages     []ChatMessage `json:"messages"`
}

func (d *Details) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Game %s: room=%s, two_players=%t, score=%d/%d, step=%d, vira=%s, table=%v",
		d.UUID, d.RoomName, d.IsTwoPlayers, d.ScoreUs, d.ScoreThem, d.Step.Number, d.Step.Vira, d.Step.TableCards)
	if d.Step.PlayerTime != nil {
		fmt.Fprintf(&sb, ", turn=%s", *d.Step.PlayerTime)
	}
	return sb.String()
}

// Room is a lobby entry, as listed by GET /rooms.
type Room struct {
	UUID         string `json:"uuid"`
	Name         string `json:"name"`
	PlayersCount int    `json:"players_count"`
	Owner        Owner  `json:"owner"`
	Protected    bool   `json:"protected"`
	IsTwoPlayers bool   `json:"is_two_players"`
	Chairs       Chairs `json:"chairs"`
	// GameUUID is set once the owner started a match in this room.
	GameUUID string        `json:"game_uuid,omitempty"`
	Messages []ChatMessage `json:"messages,omitempty"`
}

// Ptr returns a pointer to v, for building optional wire fields.
func Ptr[T any](v T) *T {
	return &v
}
