package record

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	base := Sample()

	testCases := []struct {
		name    string
		decoded func() Batch
		want    bool
	}{
		{name: "identical", decoded: func() Batch { return base.Clone() }, want: true},
		{name: "decoded empty", decoded: func() Batch { return Batch{} }, want: false},
		{name: "shorter", decoded: func() Batch { return base.Clone()[:2] }, want: false},
		{name: "salary differs", decoded: func() Batch {
			b := base.Clone()
			b[1].Salary = 22000.5
			return b
		}, want: false},
		{name: "email differs in case", decoded: func() Batch {
			b := base.Clone()
			b[0].Email = "ALI@example.com"
			return b
		}, want: false},
		{name: "active flipped", decoded: func() Batch {
			b := base.Clone()
			b[2].Active = !b[2].Active
			return b
		}, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Verify(base, tc.decoded()))
		})
	}
}

func TestVerifyEmptyAndNil(t *testing.T) {
	assert.True(t, Verify(Batch{}, nil))
	assert.True(t, Verify(nil, Batch{}))
}

func TestDiffNamesField(t *testing.T) {
	a := Sample()
	b := a.Clone()
	b[2].HireDate = "2019-09-24"

	diff := Diff(a, b)
	assert.Contains(t, diff, "record 2")
	assert.Contains(t, diff, "hireDate")
}

func TestCloneDoesNotShare(t *testing.T) {
	a := Sample()
	b := a.Clone()
	b[0].Name = "changed"
	assert.Equal(t, "Ali", a[0].Name)
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(50)
	b := Generate(50)
	require.Len(t, a, 50)
	assert.True(t, Verify(a, b))
	assert.Equal(t, int64(50), a[49].ID)
	assert.Empty(t, Generate(0))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"employee":[{"id":7,"name":"Sara","salary":12500.5,"email":"sara@example.com","hireDate":"2021-03-01","position":"Analyst","department":"Finance","active":true}]}`), 0o644))

	yamlPath := filepath.Join(dir, "data.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
employee:
  - id: 7
    name: Sara
    salary: 12500.5
    email: sara@example.com
    hireDate: "2021-03-01"
    position: Analyst
    department: Finance
    active: true
`), 0o644))

	fromJSON, err := LoadFile(jsonPath)
	require.NoError(t, err)
	fromYAML, err := LoadFile(yamlPath)
	require.NoError(t, err)

	require.Len(t, fromJSON, 1)
	assert.Equal(t, "Sara", fromJSON[0].Name)
	assert.True(t, Verify(fromJSON, fromYAML), Diff(fromJSON, fromYAML))
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"employee":[`), 0o644))
	_, err = LoadFile(bad)
	assert.Error(t, err)
}
