package sina

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"TrendHunter/internal/domain/models"
)

// flexFloat accepts both bare and quoted numbers; the listing endpoint mixes
// the two freely. Unparseable values decode to zero rather than failing the
// whole page.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "" || s == "null" || s == "-" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

type listingRow struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Trade         flexFloat `json:"trade"`
	Settlement    flexFloat `json:"settlement"`
	ChangePercent flexFloat `json:"changepercent"`
}

// snapshot converts a row, dropping halted instruments (zero trade price).
// The listing carries no volume ratio; the field stays zero so downstream
// filtering treats it as unavailable.
func (r listingRow) snapshot() (models.QuoteSnapshot, bool) {
	if r.Symbol == "" || r.Trade <= 0 {
		return models.QuoteSnapshot{}, false
	}
	return models.QuoteSnapshot{
		Symbol:    strings.ToLower(r.Symbol),
		Name:      r.Name,
		Last:      float64(r.Trade),
		PrevClose: float64(r.Settlement),
		ChangePct: float64(r.ChangePercent),
	}, true
}

// parseListingPage decodes one page of the ranked listing. The endpoint
// emits pseudo-JSON with unquoted object keys, so keys are quoted by a
// byte-level pass and the result is decoded into a fixed schema. The raw
// text is never evaluated. A "null" body means past the last page.
func parseListingPage(body []byte) ([]listingRow, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var rows []listingRow
	if err := json.Unmarshal(quoteBareKeys(trimmed), &rows); err != nil {
		return nil, fmt.Errorf("decode listing page: %w", err)
	}
	return rows, nil
}

// quoteBareKeys wraps unquoted object keys in double quotes. A bare
// identifier counts as a key only when it directly follows '{' or ',' at
// object level; bytes inside string literals pass through untouched.
func quoteBareKeys(in []byte) []byte {
	out := make([]byte, 0, len(in)+64)
	inString := false
	prev := byte(0)
	for i := 0; i < len(in); i++ {
		c := in[i]
		if inString {
			out = append(out, c)
			if c == '\\' && i+1 < len(in) {
				i++
				out = append(out, in[i])
				continue
			}
			if c == '"' {
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			prev = c
			continue
		}
		if isIdentStart(c) && (prev == '{' || prev == ',') {
			j := i
			for j < len(in) && isIdentChar(in[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, in[i:j]...)
			out = append(out, '"')
			i = j - 1
			prev = '"'
			continue
		}
		out = append(out, c)
		switch c {
		case ' ', '\t', '\n', '\r':
		default:
			prev = c
		}
	}
	return out
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
