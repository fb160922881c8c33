package scancode

import (
	"testing"
)

func TestParsePipeDelimited(t *testing.T) {
	got := Parse("ABC|DEF|VIG-200")
	if got == nil || got.Marca != "VIG-200" || got.Cantidad != 1 {
		t.Fatalf("pipe payload parse got %+v", got)
	}

	got = Parse("PLANO-01|  COL-300X300  ")
	if got == nil || got.Marca != "COL-300X300" || got.Cantidad != 1 {
		t.Fatalf("pipe payload should trim marca, got %+v", got)
	}
}

func TestParseBacktickDelimited(t *testing.T) {
	got := Parse("X`Y`COL-300")
	if got == nil || got.Marca != "COL-300" || got.Cantidad != 1 {
		t.Fatalf("backtick payload parse got %+v", got)
	}
}

func TestParseLastEightCharacters(t *testing.T) {
	got := Parse("XYZ1234567890")
	if got == nil || got.Marca != "34567890" || got.Cantidad != 1 {
		t.Fatalf("long payload should take last 8 chars, got %+v", got)
	}

	// Exactly 8 characters keeps the whole payload.
	got = Parse("ABCDEFGH")
	if got == nil || got.Marca != "ABCDEFGH" {
		t.Fatalf("8-char payload parse got %+v", got)
	}
}

func TestParsePipeWithEmptyTail(t *testing.T) {
	// Rule 1 skips a payload whose last pipe has nothing after it; the
	// short payload then falls through to the MARCA|CANTIDAD rule.
	got := Parse("ABC|")
	if got == nil || got.Marca != "ABC" || got.Cantidad != 1 {
		t.Fatalf("trailing-pipe payload parse got %+v", got)
	}
}

func TestParseColonQuantity(t *testing.T) {
	got := Parse("VIG:5")
	if got == nil || got.Marca != "VIG" || got.Cantidad != 5 {
		t.Fatalf("colon payload parse got %+v", got)
	}

	// Non-numeric quantity defaults to 1.
	got = Parse("AB:x")
	if got == nil || got.Marca != "AB" || got.Cantidad != 1 {
		t.Fatalf("colon payload with bad quantity got %+v", got)
	}

	// Empty marca side does not match; whole payload becomes the marca.
	got = Parse(":5")
	if got == nil || got.Marca != ":5" || got.Cantidad != 1 {
		t.Fatalf("colon payload without marca got %+v", got)
	}
}

func TestParseCommaQuantity(t *testing.T) {
	got := Parse("AB,3")
	if got == nil || got.Marca != "AB" || got.Cantidad != 3 {
		t.Fatalf("comma payload parse got %+v", got)
	}

	// Quantity side must start with a number or the rule does not match.
	got = Parse("AB,cd")
	if got == nil || got.Marca != "AB,cd" || got.Cantidad != 1 {
		t.Fatalf("comma payload with bad quantity got %+v", got)
	}

	// More than one comma never matches the pair rule.
	got = Parse("A,B,3")
	if got == nil || got.Marca != "A,B,3" || got.Cantidad != 1 {
		t.Fatalf("multi-comma payload parse got %+v", got)
	}
}

func TestParseWholePayloadFallback(t *testing.T) {
	got := Parse("  COL-3  ")
	if got == nil || got.Marca != "COL-3" || got.Cantidad != 1 {
		t.Fatalf("fallback parse got %+v", got)
	}
}

func TestParseEmptyPayload(t *testing.T) {
	if got := Parse(""); got != nil {
		t.Fatalf("empty payload should not parse, got %+v", got)
	}
	if got := Parse("   "); got != nil {
		t.Fatalf("blank payload should not parse, got %+v", got)
	}
}

// Any JSON object carrying both fields is longer than 8 characters, so the
// last-8-chars rule always claims it first. The branch is kept for format
// compatibility; exercise it directly.
func TestParseJSONPayloadDirect(t *testing.T) {
	got := parseJSONPayload(`{"marca":"VIG-200","cantidad":3}`)
	if got == nil || got.Marca != "VIG-200" || got.Cantidad != 3 {
		t.Fatalf("json payload parse got %+v", got)
	}

	got = parseJSONPayload(`{"marca":"VIG-200","cantidad":"2"}`)
	if got == nil || got.Cantidad != 2 {
		t.Fatalf("json string quantity parse got %+v", got)
	}

	got = parseJSONPayload(`{"marca":"VIG-200","cantidad":"x"}`)
	if got == nil || got.Cantidad != 1 {
		t.Fatalf("json bad quantity should default to 1, got %+v", got)
	}

	if got := parseJSONPayload(`{"marca":"VIG-200"}`); got != nil {
		t.Fatalf("json payload without cantidad should not parse, got %+v", got)
	}
	if got := parseJSONPayload(`{"marca":"","cantidad":3}`); got != nil {
		t.Fatalf("json payload with empty marca should not parse, got %+v", got)
	}
	if got := parseJSONPayload(`not json`); got != nil {
		t.Fatalf("non-json payload should not parse, got %+v", got)
	}
}

func TestParseLeadingInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"5", 5, true},
		{" 12 pzs", 12, true},
		{"-3", -3, true},
		{"+7", 7, true},
		{"x5", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseLeadingInt(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("parseLeadingInt(%q) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
