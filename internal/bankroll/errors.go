package bankroll

import "errors"

var (
	ErrInvalidPeriod  = errors.New("invalid chart period")
	ErrInvalidFilter  = errors.New("invalid bet filter")
	ErrBetNotFound    = errors.New("bet not found")
	ErrBetNotPending  = errors.New("only pending bets can be recorded")
	ErrInvalidOptions = errors.New("invalid bankroll options")
)
