package record

import "fmt"

// Record is a single employee. All fields are compared by value.
type Record struct {
	ID         int64   `json:"id" xml:"id" yaml:"id"`
	Name       string  `json:"name" xml:"name" yaml:"name"`
	Salary     float64 `json:"salary" xml:"salary" yaml:"salary"`
	Email      string  `json:"email" xml:"email" yaml:"email"`
	HireDate   string  `json:"hireDate" xml:"hireDate" yaml:"hireDate"`
	Position   string  `json:"position" xml:"position" yaml:"position"`
	Department string  `json:"department" xml:"department" yaml:"department"`
	Active     bool    `json:"active" xml:"active" yaml:"active"`
}

// Batch is an ordered sequence of records treated as one unit for encoding,
// decoding and transmission. A batch must not be modified after construction.
type Batch []Record

// Len returns the number of records in the batch
func (b Batch) Len() int {
	return len(b)
}

// Clone returns a copy of the batch that shares no memory with the original
func (b Batch) Clone() Batch {
	if b == nil {
		return nil
	}
	out := make(Batch, len(b))
	copy(out, b)
	return out
}

// String returns a short human-readable description of the record
func (r Record) String() string {
	return fmt.Sprintf("#%d %s <%s>", r.ID, r.Name, r.Email)
}

// --------------------------------------------------------------------------
// Batch Sources
// --------------------------------------------------------------------------

// Sample returns the default three-employee batch
func Sample() Batch {
	return Batch{
		{ID: 1, Name: "Ali", Salary: 9000, Email: "ali@example.com", HireDate: "2020-01-15", Position: "Developer", Department: "Engineering", Active: true},
		{ID: 2, Name: "Kamal", Salary: 22000, Email: "kamal@example.com", HireDate: "2018-06-03", Position: "Manager", Department: "Sales", Active: true},
		{ID: 3, Name: "Amal", Salary: 23000, Email: "amal@example.com", HireDate: "2019-09-23", Position: "Architect", Department: "Engineering", Active: false},
	}
}

var (
	generatedPositions   = []string{"Developer", "Manager", "Architect", "Analyst", "Designer"}
	generatedDepartments = []string{"Engineering", "Sales", "Finance", "Support"}
)

// Generate returns a deterministic synthetic batch of n records.
// The same n always yields the same batch so sizes are reproducible.
func Generate(n int) Batch {
	if n <= 0 {
		return Batch{}
	}
	out := make(Batch, n)
	for i := 0; i < n; i++ {
		id := int64(i + 1)
		out[i] = Record{
			ID:         id,
			Name:       fmt.Sprintf("Employee %d", id),
			Salary:     float64(8000 + (i*1375)%20000),
			Email:      fmt.Sprintf("employee%d@example.com", id),
			HireDate:   fmt.Sprintf("%04d-%02d-%02d", 2010+i%15, 1+i%12, 1+i%28),
			Position:   generatedPositions[i%len(generatedPositions)],
			Department: generatedDepartments[i%len(generatedDepartments)],
			Active:     i%3 != 0,
		}
	}
	return out
}
