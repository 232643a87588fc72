package scoring

// GlobalGrade maps a 0-1000 global score to a letter grade.
func GlobalGrade(score int) string {
	switch {
	case score >= 800:
		return "A"
	case score >= 600:
		return "B"
	case score >= 400:
		return "C"
	case score >= 200:
		return "D"
	default:
		return "F"
	}
}

// DomainGrade maps a 0-100 domain score to a letter grade.
func DomainGrade(score float64) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 60:
		return "B"
	case score >= 40:
		return "C"
	case score >= 20:
		return "D"
	default:
		return "E"
	}
}

// GradeLabels gives the human-readable meaning of each global grade.
var GradeLabels = map[string]string{
	"A": "Excellent",
	"B": "Good",
	"C": "Acceptable",
	"D": "Weak",
	"F": "Critical",
}

// CriticalityFactor returns the severity multiplier used both for domain
// score deductions and for aggregation amplification.
func CriticalityFactor(s Severity) float64 {
	switch s {
	case SeverityCritical:
		return 2.0
	case SeverityHigh:
		return 1.5
	case SeverityMedium:
		return 1.0
	case SeverityLow:
		return 0.5
	default:
		return 0.0
	}
}
