package models

import "errors"

// Custom errors
var (
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrInvalidProfile     = errors.New("invalid player profile")
	ErrInvalidBet         = errors.New("invalid bet")
	ErrInvalidID          = errors.New("invalid ID format")
)
