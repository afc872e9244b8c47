package ledger

// EventType identifies a committed ledger operation.
type EventType string

const (
	EventLobbyCreated    EventType = "lobby_created"
	EventPlayerEnrolled  EventType = "player_enrolled"
	EventLobbyCanceled   EventType = "lobby_canceled"
	EventPlayerWithdrew  EventType = "player_withdrew"
	EventPlayerStartGame EventType = "player_start_game"
)

// Event is a fire-and-forget notification of a committed operation.
// Events for the same lobby are emitted in commit order.
type Event struct {
	Type          EventType `json:"type"`
	LobbyID       uint64    `json:"lobbyId"`
	Identity      string    `json:"identity,omitempty"`
	Capacity      int       `json:"capacity,omitempty"`
	DepositAmount float64   `json:"depositAmount,omitempty"`
	Amount        float64   `json:"amount,omitempty"`
}

// Sink consumes committed events. Emit must not block for long: it is
// called on the operation's goroutine, inside the lobby's critical
// section so that per-lobby ordering matches commit order.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// Sinks fans an event out to each sink in order.
type Sinks []Sink

func (s Sinks) Emit(e Event) {
	for _, sink := range s {
		sink.Emit(e)
	}
}
