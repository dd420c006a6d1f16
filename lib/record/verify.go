package record

import "fmt"

// Verify reports whether decoded is structurally equal to original: same length
// and, at every position, the same value in every field.
func Verify(original, decoded Batch) bool {
	return Diff(original, decoded) == ""
}

// Diff describes the first difference between two batches.
// It returns an empty string if the batches are structurally equal.
func Diff(original, decoded Batch) string {
	if len(original) != len(decoded) {
		return fmt.Sprintf("length mismatch: expected %d records, got %d", len(original), len(decoded))
	}

	for i := range original {
		a, b := original[i], decoded[i]
		switch {
		case a.ID != b.ID:
			return fieldDiff(i, "id", a.ID, b.ID)
		case a.Name != b.Name:
			return fieldDiff(i, "name", a.Name, b.Name)
		case a.Salary != b.Salary:
			return fieldDiff(i, "salary", a.Salary, b.Salary)
		case a.Email != b.Email:
			return fieldDiff(i, "email", a.Email, b.Email)
		case a.HireDate != b.HireDate:
			return fieldDiff(i, "hireDate", a.HireDate, b.HireDate)
		case a.Position != b.Position:
			return fieldDiff(i, "position", a.Position, b.Position)
		case a.Department != b.Department:
			return fieldDiff(i, "department", a.Department, b.Department)
		case a.Active != b.Active:
			return fieldDiff(i, "active", a.Active, b.Active)
		}
	}

	return ""
}

func fieldDiff(index int, field string, expected, got any) string {
	return fmt.Sprintf("record %d: %s mismatch: expected %v, got %v", index, field, expected, got)
}
