// Package scancode turns raw scanned-code payloads into piece candidates.
//
// The rule order is load-bearing: label printers at the plant emit
// pipe- or backtick-delimited payloads whose last field is the marca, so
// rules 1-3 catch nearly everything real. The structured formats below
// them (JSON, colon, pipe, comma) predate the printers and are kept for
// compatibility with payloads the early rules do not claim.
package scancode

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

// ParsedCode is the candidate extracted from one scanned payload.
type ParsedCode struct {
	Marca    string `json:"marca"`
	Cantidad int    `json:"cantidad"`
}

// Parse extracts a piece candidate from a raw scanned payload. It returns
// nil when no usable marca can be extracted.
func Parse(raw string) *ParsedCode {
	clean := strings.TrimSpace(raw)

	// Rule 1: marca is everything after the last pipe.
	if strings.Contains(clean, "|") {
		idx := strings.LastIndex(clean, "|")
		if marca := strings.TrimSpace(clean[idx+1:]); marca != "" {
			return &ParsedCode{Marca: marca, Cantidad: 1}
		}
	}

	// Rule 2: marca is everything after the last backtick.
	if strings.Contains(clean, "`") {
		idx := strings.LastIndex(clean, "`")
		if marca := strings.TrimSpace(clean[idx+1:]); marca != "" {
			return &ParsedCode{Marca: marca, Cantidad: 1}
		}
	}

	// Rule 3: long undelimited payloads carry the marca in the last
	// 8 characters.
	if runes := []rune(clean); len(runes) >= 8 {
		return &ParsedCode{Marca: string(runes[len(runes)-8:]), Cantidad: 1}
	}

	// Rule 4: structured JSON payload {"marca": ..., "cantidad": ...}.
	if parsed := parseJSONPayload(raw); parsed != nil {
		return parsed
	}

	// Rule 5: MARCA:CANTIDAD.
	if strings.Contains(raw, ":") {
		parts := strings.SplitN(raw, ":", 2)
		marca := strings.TrimSpace(parts[0])
		if marca != "" {
			return &ParsedCode{Marca: marca, Cantidad: quantityOrOne(parts[1])}
		}
	}

	// Rule 6: MARCA|CANTIDAD. Unreachable: rule 1 already claims any
	// payload containing a pipe. Kept for parity with the scanner's
	// historical format list.
	if strings.Contains(raw, "|") {
		parts := strings.SplitN(raw, "|", 2)
		marca := strings.TrimSpace(parts[0])
		if marca != "" {
			return &ParsedCode{Marca: marca, Cantidad: quantityOrOne(parts[1])}
		}
	}

	// Rule 7: MARCA,CANTIDAD with exactly one comma; the quantity side
	// must start with a valid number or the rule does not match.
	if parts := strings.Split(raw, ","); len(parts) == 2 {
		marca := strings.TrimSpace(parts[0])
		cantidad, ok := parseLeadingInt(parts[1])
		if marca != "" && ok {
			if cantidad == 0 {
				cantidad = 1
			}
			return &ParsedCode{Marca: marca, Cantidad: cantidad}
		}
	}

	// Rule 8: the whole payload is the marca.
	if clean != "" {
		return &ParsedCode{Marca: clean, Cantidad: 1}
	}

	return nil
}

func parseJSONPayload(raw string) *ParsedCode {
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil
	}
	marcaValue, marcaOK := payload["marca"]
	cantidadValue, cantidadOK := payload["cantidad"]
	if !marcaOK || !cantidadOK {
		return nil
	}

	marca := coerceString(marcaValue)
	if marca == "" {
		return nil
	}

	cantidad := 1
	switch v := cantidadValue.(type) {
	case float64:
		if int(v) != 0 {
			cantidad = int(v)
		} else {
			return nil // zero is not a usable quantity
		}
	case string:
		if v == "" {
			return nil
		}
		if n, ok := parseLeadingInt(v); ok && n != 0 {
			cantidad = n
		}
	case bool:
		if !v {
			return nil
		}
	case nil:
		return nil
	}

	return &ParsedCode{Marca: marca, Cantidad: cantidad}
}

func coerceString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// quantityOrOne parses a leading integer, defaulting to 1 when the text
// does not start with a number or parses to zero.
func quantityOrOne(text string) int {
	if n, ok := parseLeadingInt(text); ok && n != 0 {
		return n
	}
	return 1
}

// parseLeadingInt reads an optionally signed integer prefix after leading
// whitespace, the way scanner firmware emits quantities ("5 pzs" -> 5).
func parseLeadingInt(text string) (int, bool) {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}
