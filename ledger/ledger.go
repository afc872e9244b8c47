package ledger

import (
	"fmt"
	"math"
	"sync"
)

// Escrow is the external value-transfer collaborator. Hold debits the
// participant and keeps the value with the ledger; Release pays it back
// out. Both report failure synchronously. The ledger never moves value
// itself, it only instructs the escrow and records the bookkeeping.
type Escrow interface {
	Hold(identity string, lobbyID uint64, amount float64) error
	Release(identity string, lobbyID uint64, amount float64) error
}

type lobby struct {
	mu       sync.Mutex
	id       uint64
	capacity int
	deposit  float64
	creator  string
	enrolled map[string]struct{}
	entries  map[string]float64 // cumulative escrowed amount per participant
	canceled bool
}

// LobbyLedger owns all lobby and deposit state. Capacity and deposit
// amount are fixed for the process lifetime; every CreateLobby call must
// match them. Operations on the same lobby are serialized by the lobby's
// mutex, operations on different lobbies run in parallel. Lobbies are
// never deleted: a canceled lobby stays queryable.
type LobbyLedger struct {
	capacity int
	deposit  float64
	escrow   Escrow
	sink     Sink

	mu      sync.RWMutex
	lobbies map[uint64]*lobby
	lastID  uint64
}

func New(capacity int, depositAmount float64, escrow Escrow, sink Sink) *LobbyLedger {
	return &LobbyLedger{
		capacity: capacity,
		deposit:  depositAmount,
		escrow:   escrow,
		sink:     sink,
		lobbies:  make(map[uint64]*lobby),
	}
}

func (ll *LobbyLedger) emit(e Event) {
	if ll.sink != nil {
		ll.sink.Emit(e)
	}
}

func (ll *LobbyLedger) get(lobbyID uint64) (*lobby, error) {
	ll.mu.RLock()
	l, ok := ll.lobbies[lobbyID]
	ll.mu.RUnlock()
	if !ok {
		return nil, ErrLobbyNotFound
	}
	return l, nil
}

// CreateLobby allocates the next lobby id and an empty roster. Both
// parameters must equal the configured constants; the ledger refuses to
// run mixed configurations. The id counter is checked, not wrapping.
func (ll *LobbyLedger) CreateLobby(capacity int, depositAmount float64, creator string) (uint64, error) {
	if capacity != ll.capacity {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrInvalidCapacity, capacity, ll.capacity)
	}
	if depositAmount != ll.deposit {
		return 0, fmt.Errorf("%w: got %v, want %v", ErrInvalidDepositAmount, depositAmount, ll.deposit)
	}

	ll.mu.Lock()
	if ll.lastID == math.MaxUint64 {
		ll.mu.Unlock()
		return 0, ErrCounterOverflow
	}
	ll.lastID++
	l := &lobby{
		id:       ll.lastID,
		capacity: capacity,
		deposit:  depositAmount,
		creator:  creator,
		enrolled: make(map[string]struct{}),
		entries:  make(map[string]float64),
	}
	// Hold the new lobby's lock across the map insert and the created
	// event, so no operation on the fresh id can emit ahead of it.
	l.mu.Lock()
	ll.lobbies[l.id] = l
	ll.mu.Unlock()

	ll.emit(Event{Type: EventLobbyCreated, LobbyID: l.id, Identity: creator, Capacity: capacity, DepositAmount: depositAmount})
	l.mu.Unlock()
	return l.id, nil
}

// Enroll adds a participant to the lobby roster. Lobby-level rejections
// (canceled, full) are reported before participant-level ones.
func (ll *LobbyLedger) Enroll(lobbyID uint64, identity string) error {
	l, err := ll.get(lobbyID)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.canceled {
		return ErrLobbyCanceled
	}
	if len(l.enrolled) >= l.capacity {
		return ErrLobbyFull
	}
	if _, ok := l.enrolled[identity]; ok {
		return ErrAlreadyRegistered
	}

	l.enrolled[identity] = struct{}{}
	ll.emit(Event{Type: EventPlayerEnrolled, LobbyID: lobbyID, Identity: identity})
	return nil
}

// Deposit escrows exactly one unit amount for an enrolled participant.
// Repeated deposits accumulate; there is no per-participant cap beyond
// each call being the exact unit. The escrow hold happens before any
// ledger mutation, so a failed hold leaves no trace.
func (ll *LobbyLedger) Deposit(lobbyID uint64, identity string, amount float64) error {
	l, err := ll.get(lobbyID)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.canceled {
		return ErrLobbyCanceled
	}
	if amount != l.deposit {
		return fmt.Errorf("%w: got %v, want %v", ErrIncorrectAmount, amount, l.deposit)
	}
	if _, ok := l.enrolled[identity]; !ok {
		return ErrNotRegistered
	}

	if err := ll.escrow.Hold(identity, lobbyID, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	l.entries[identity] += amount
	return nil
}

// CancelLobby is creator-only and one-way. Calling it again on an
// already-canceled lobby is a harmless no-op that still emits the event,
// keeping the sink a faithful log of accepted operations.
func (ll *LobbyLedger) CancelLobby(lobbyID uint64, caller string) error {
	l, err := ll.get(lobbyID)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.creator {
		return ErrNotAuthorized
	}

	l.canceled = true
	ll.emit(Event{Type: EventLobbyCanceled, LobbyID: lobbyID})
	return nil
}

// Withdraw removes the participant from the roster, zeroes their entry,
// and only then asks the escrow to pay the balance back out. The
// mutation commits first: a failed transfer returns ErrTransferFailed
// with the participant already removed and the entry already zero, so
// the same entry can never pay out twice. Callers must treat a transfer
// failure as a reconciliation case, not retry the withdrawal.
//
// Withdrawal is deliberately not gated on cancellation: participants of
// a canceled lobby get their refund through the same path. Enrolled
// participants who never deposited withdraw a zero balance successfully.
func (ll *LobbyLedger) Withdraw(lobbyID uint64, identity string) error {
	l, err := ll.get(lobbyID)
	if err != nil {
		return err
	}

	l.mu.Lock()
	if _, ok := l.enrolled[identity]; !ok {
		l.mu.Unlock()
		return ErrNotRegistered
	}

	amount := l.entries[identity]
	delete(l.enrolled, identity)
	delete(l.entries, identity)
	ll.emit(Event{Type: EventPlayerWithdrew, LobbyID: lobbyID, Identity: identity, Amount: amount})
	l.mu.Unlock()

	if amount == 0 {
		return nil
	}
	if err := ll.escrow.Release(identity, lobbyID, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	return nil
}

// StartGame signals that the caller is ready to play. It mutates
// nothing: the lobby has no started state and repeated signals from the
// same or different participants are all accepted, so external
// orchestration must dedupe if it cares. The enrollment check runs
// before the balance check, otherwise a stranger would be reported as
// underfunded instead of unregistered.
func (ll *LobbyLedger) StartGame(lobbyID uint64, caller string) error {
	l, err := ll.get(lobbyID)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.canceled {
		return ErrLobbyCanceled
	}
	if _, ok := l.enrolled[caller]; !ok {
		return ErrNotRegistered
	}
	if l.entries[caller] < l.deposit {
		return ErrInsufficientDeposit
	}

	ll.emit(Event{Type: EventPlayerStartGame, LobbyID: lobbyID, Identity: caller})
	return nil
}

// DepositOf reports the cumulative escrowed amount for a participant.
// Unknown lobby ids are an error, never a zero default, so callers can
// tell "never existed" from "legitimately zero".
func (ll *LobbyLedger) DepositOf(lobbyID uint64, identity string) (float64, error) {
	l, err := ll.get(lobbyID)
	if err != nil {
		return 0, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries[identity], nil
}

// EnrolledCount reports the current roster size.
func (ll *LobbyLedger) EnrolledCount(lobbyID uint64) (int, error) {
	l, err := ll.get(lobbyID)
	if err != nil {
		return 0, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.enrolled), nil
}

// IsCanceled reports whether the lobby has been canceled.
func (ll *LobbyLedger) IsCanceled(lobbyID uint64) (bool, error) {
	l, err := ll.get(lobbyID)
	if err != nil {
		return false, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.canceled, nil
}

// Creator reports the identity that created the lobby.
func (ll *LobbyLedger) Creator(lobbyID uint64) (string, error) {
	l, err := ll.get(lobbyID)
	if err != nil {
		return "", err
	}
	return l.creator, nil
}
