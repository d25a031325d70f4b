package automaton

import "github.com/pkg/errors"

var (
	ErrStateOutOfRange  = errors.New("state out of range")
	ErrStateFinished    = errors.New("state already had transitions added")
	ErrInvalidRange     = errors.New("invalid label range")
	ErrNotDeterministic = errors.New("input automaton must be deterministic")
	ErrNondeterministic = errors.New("conflicting transition")
	ErrUnknownState     = errors.New("unknown state")
	ErrUnknownSymbol    = errors.New("unknown symbol")
	ErrPartitionMissing = errors.New("partition does not cover the table")
)
