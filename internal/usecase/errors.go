package usecase

import "errors"

var (
	// ErrSymbolNotFound means the symbol is malformed, unlisted or halted.
	ErrSymbolNotFound = errors.New("symbol not found or halted")

	// ErrDataUnavailable means a source answered but returned too little
	// history to evaluate anything.
	ErrDataUnavailable = errors.New("market data unavailable")

	// ErrUpstreamUnavailable means every acquisition attempt failed; the
	// caller must not confuse it with a legitimately empty result.
	ErrUpstreamUnavailable = errors.New("upstream sources unavailable")
)
