package service

import (
	"errors"

	"connectrpc.com/connect"
	"github.com/mmynk/potledger/internal/storage"
)

var (
	ErrSessionNotActive   = errors.New("session is not active")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidKind        = errors.New("type must be BUY_IN or CASH_OUT")
	ErrInvalidSessionType = errors.New("type must be POKER, MAHJONG or GENERAL")
	ErrPlayerNotInSession = errors.New("player is not part of the session")
	ErrNameRequired       = errors.New("name is required")
	ErrIDRequired         = errors.New("id is required")
	ErrStateRequired      = errors.New("state is required")
	ErrUnknownReference   = errors.New("reference to unknown session or player")
	ErrDuplicateID        = errors.New("duplicate id")
)

// toConnectError maps service and storage errors to Connect codes.
func toConnectError(err error) *connect.Error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ErrSessionNotActive):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidKind),
		errors.Is(err, ErrInvalidSessionType),
		errors.Is(err, ErrPlayerNotInSession),
		errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrIDRequired),
		errors.Is(err, ErrStateRequired),
		errors.Is(err, ErrUnknownReference),
		errors.Is(err, ErrDuplicateID):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
