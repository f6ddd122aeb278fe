package normalizer

import (
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses space runs",
			input: "grace   period\tof  thirty days",
			want:  "grace period of thirty days",
		},
		{
			name:  "rejoins hyphenated line breaks",
			input: "premium pay-\nment is due",
			want:  "premium payment is due",
		},
		{
			name:  "strips soft hyphen and zero width space",
			input: "cover­age and ben​efits",
			want:  "coverage and benefits",
		},
		{
			name:  "normalizes CRLF",
			input: "line one\r\nline two",
			want:  "line one\nline two",
		},
		{
			name:  "trims and caps blank runs",
			input: "  a\n\n\n\nb  ",
			want:  "a\n\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanText(tt.input)
			if got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTerminology(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // substring expected in output
	}{
		{"hyphenates pre existing", "pre existing diseases are excluded", "pre-existing"},
		{"word months to digits", "after thirty-six months of cover", "36 months"},
		{"word days to digits", "a grace period of thirty days", "30 days"},
		{"percent symbol", "limited to 50 percent of charges", "50%"},
		{"spaced percent sign", "limited to 2 % of Sum Insured", "2%"},
		{"uin prefix", "UIN ICIHLIP22012V012223", "UIN: ICIHLIP22012V012223"},
		{"plan reference", "under plan A only", "Plan A"},
		{"copayment", "a co pay of 10%", "co-payment"},
		{"air ambulance", "air  ambulance services", "air-ambulance"},
		{"sum insured casing", "up to the sum insured", "Sum Insured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Normalize(%q) = %q, want substring %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeStructureMarkers(t *testing.T) {
	input := "intro text\nEXCLUSIONS:\nwar and nuclear perils are not covered"
	got := Normalize(input)
	if !strings.Contains(got, "EXCLUSIONS SECTION:") {
		t.Errorf("Normalize() = %q, want EXCLUSIONS SECTION marker", got)
	}

	input = "preamble\nGENERAL TERMS AND CONDITIONS\nthe policy may be renewed"
	got = Normalize(input)
	if !strings.Contains(got, "SECTION: GENERAL TERMS AND CONDITIONS") {
		t.Errorf("Normalize() = %q, want SECTION marker for all-caps heading", got)
	}
}

func TestNormalizeIdempotentOnCleanInput(t *testing.T) {
	input := "A grace period of 30 days is provided for payment of premium."
	once := Normalize(input)
	twice := Normalize(once)
	if once != twice {
		t.Errorf("Normalize not stable: first %q, second %q", once, twice)
	}
}
