package service

import "errors"

// Errors shared across services and mapped to HTTP statuses by the handlers.
var (
	// A second settlement attempt on an already-settled match. Rejected
	// with no side effects.
	ErrMatchComplete = errors.New("match is already complete")

	// The bracket has no match at the computed next-round number. The
	// current match still settles; only advancement is skipped.
	ErrMalformedBracket = errors.New("bracket has no match at the next-round number")

	// A survey is missing, or references a team, match or player that does
	// not belong to the match being settled. Fails the whole settlement.
	ErrMissingReport   = errors.New("no survey submitted for this side of the match")
	ErrReportMismatch  = errors.New("survey does not belong to this match")
	ErrDuplicateReport = errors.New("this side has already submitted a survey")
	ErrUnknownPlayer   = errors.New("nominated player is not rostered on either team")

	// The match cannot settle until both team slots are assigned.
	ErrUnfilledSlot = errors.New("match has an unfilled team slot")

	// Bracket creation preconditions.
	ErrBracketSize = errors.New("tournament team count must be a power of two")
)
