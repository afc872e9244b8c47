package ledger

import "errors"

// Every rejection is a distinct sentinel so callers can branch on cause
// with errors.Is instead of matching message strings.
var (
	ErrLobbyNotFound        = errors.New("lobby not found")
	ErrInvalidCapacity      = errors.New("capacity does not match the configured lobby capacity")
	ErrInvalidDepositAmount = errors.New("deposit amount does not match the configured unit amount")
	ErrCounterOverflow      = errors.New("lobby id space exhausted")
	ErrLobbyCanceled        = errors.New("lobby is canceled")
	ErrLobbyFull            = errors.New("lobby is full")
	ErrAlreadyRegistered    = errors.New("already registered in this lobby")
	ErrNotRegistered        = errors.New("not registered in this lobby")
	ErrIncorrectAmount      = errors.New("amount must equal the lobby deposit amount")
	ErrNotAuthorized        = errors.New("caller is not the lobby creator")
	ErrInsufficientDeposit  = errors.New("deposit balance below the required amount")
	ErrTransferFailed       = errors.New("value transfer failed")
)
