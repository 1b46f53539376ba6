package division

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   Division
		wantOK bool
	}{
		{name: "first", in: "ENGLISH_PREMIERSHIP", want: EnglishPremiership, wantOK: true},
		{name: "last", in: "SWISS_SUPER_LEAGUE", want: SwissSuperLeague, wantOK: true},
		{name: "case sensitive", in: "english_premiership", wantOK: false},
		{name: "unknown", in: "woo", wantOK: false},
		{name: "empty", in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok=%v want=%v", tt.in, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("Parse(%q)=%v want=%v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNames_DeclarationOrder(t *testing.T) {
	want := []string{
		"ENGLISH_PREMIERSHIP",
		"SCOTTISH_PREMIERSHIP",
		"SCOTTISH_CHAMPIONSHIP",
		"GERMAN_BUNDESLIGA",
		"FRENCH_LIGUE1",
		"SPANISH_PRIMERA",
		"DUTCH_EREDIVISE",
		"PORTUGUESE_LIGA",
		"SWISS_SUPER_LEAGUE",
	}

	got := Names()
	if len(got) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("name[%d]=%q want=%q", i, got[i], want[i])
		}
	}

	got[0] = "MUTATED"
	if Names()[0] != "ENGLISH_PREMIERSHIP" {
		t.Fatalf("Names must return a copy")
	}
}

func TestAll_RoundTripsThroughString(t *testing.T) {
	for _, d := range All() {
		parsed, ok := Parse(d.String())
		if !ok || parsed != d {
			t.Fatalf("round trip failed for %v", d)
		}
	}
}

func TestString_InvalidDivision(t *testing.T) {
	if got := Division(-1).String(); got != "" {
		t.Fatalf("expected empty name for invalid division, got %q", got)
	}
	if Division(len(names)).Valid() {
		t.Fatalf("expected out of range division to be invalid")
	}
}
