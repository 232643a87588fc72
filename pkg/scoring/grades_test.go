package scoring

import "testing"

func TestGlobalGrade(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{1000, "A"},
		{800, "A"},
		{799, "B"},
		{600, "B"},
		{599, "C"},
		{400, "C"},
		{399, "D"},
		{200, "D"},
		{199, "F"},
		{0, "F"},
	}

	for _, tc := range tests {
		if got := GlobalGrade(tc.score); got != tc.want {
			t.Errorf("GlobalGrade(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestDomainGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A"},
		{80, "A"},
		{79.9, "B"},
		{60, "B"},
		{59.9, "C"},
		{40, "C"},
		{39.9, "D"},
		{20, "D"},
		{19.9, "E"},
		{0, "E"},
	}

	for _, tc := range tests {
		if got := DomainGrade(tc.score); got != tc.want {
			t.Errorf("DomainGrade(%.1f) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestCriticalityFactor(t *testing.T) {
	tests := []struct {
		severity Severity
		want     float64
	}{
		{SeverityCritical, 2.0},
		{SeverityHigh, 1.5},
		{SeverityMedium, 1.0},
		{SeverityLow, 0.5},
		{SeverityInfo, 0.0},
		{Severity("unknown"), 0.0},
	}

	for _, tc := range tests {
		if got := CriticalityFactor(tc.severity); got != tc.want {
			t.Errorf("CriticalityFactor(%q) = %.1f, want %.1f", tc.severity, got, tc.want)
		}
	}
}

func TestSizeFromEmployees(t *testing.T) {
	tests := []struct {
		count int
		want  SizeCategory
	}{
		{0, SizeMicro},
		{9, SizeMicro},
		{10, SizeSME},
		{249, SizeSME},
		{250, SizeMidMarket},
		{4999, SizeMidMarket},
		{5000, SizeEnterprise},
		{100000, SizeEnterprise},
	}

	for _, tc := range tests {
		if got := SizeFromEmployees(tc.count); got != tc.want {
			t.Errorf("SizeFromEmployees(%d) = %q, want %q", tc.count, got, tc.want)
		}
	}
}
