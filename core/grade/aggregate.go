package grade

// Pure aggregation helpers over grade snapshots. None of these mutate their
// input; all are total functions (empty input yields empty output or 0).

// ByStudent returns the grades recorded for the given student id (exact match).
func ByStudent(grades []Grade, studentID string) []Grade {
	filtered := make([]Grade, 0)
	for _, g := range grades {
		if g.StudentID == studentID {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// BySubject returns the grades recorded against the given denormalized
// subject name (exact, case-sensitive match).
func BySubject(grades []Grade, subjectName string) []Grade {
	filtered := make([]Grade, 0)
	for _, g := range grades {
		if g.SubjectName == subjectName {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// WeightedAverage returns sum(value*coefficient) / sum(coefficient) over the
// given grades. The average of an empty set is 0 by policy: not NaN, not an
// error. No rounding is applied; that is a display concern.
func WeightedAverage(grades []Grade) float64 {
	var points float64
	var coefs int
	for _, g := range grades {
		points += g.Value * float64(g.Coefficient)
		coefs += g.Coefficient
	}
	if coefs == 0 {
		return 0
	}
	return points / float64(coefs)
}
