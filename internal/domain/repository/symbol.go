package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedExchange marks instrument codes outside the two supported
// exchanges (BSE / NEEQ boards). Such codes are rejected before any network
// call is made.
var ErrUnsupportedExchange = errors.New("unsupported exchange prefix")

// NormalizeSymbol maps a bare numeric instrument code to an
// exchange-qualified identifier: leading '6' is Shanghai, '0' and '3' are
// Shenzhen, '4' and '8' are unsupported. Already-qualified codes pass
// through unchanged.
func NormalizeSymbol(code string) (string, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "", errors.New("empty symbol")
	}
	if strings.HasPrefix(code, "sh") || strings.HasPrefix(code, "sz") {
		return code, nil
	}
	switch code[0] {
	case '6':
		return "sh" + code, nil
	case '0', '3':
		return "sz" + code, nil
	case '4', '8':
		return "", ErrUnsupportedExchange
	default:
		return "", fmt.Errorf("unrecognized symbol %q", code)
	}
}

// BareCode strips the exchange qualifier from a normalized symbol.
func BareCode(symbol string) string {
	if strings.HasPrefix(symbol, "sh") || strings.HasPrefix(symbol, "sz") {
		return symbol[2:]
	}
	return symbol
}
