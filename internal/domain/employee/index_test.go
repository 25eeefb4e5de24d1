package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	assert.Equal(t, "emp-042", Canonical("  EMP-042 "))
	assert.Equal(t, "7", Canonical("7"))
	assert.Equal(t, "", Canonical("   "))
}

func TestBuildIndex_Lookups(t *testing.T) {
	idx := BuildIndex([]Employee{
		{ID: "emp-1", EmployeeCode: "EMP-042", ContactNumber: "081234567890", Email: "Budi@Example.com"},
		{ID: "emp-2", EmployeeCode: "7"},
	})

	emp, ok := idx.ByCode("emp-042")
	require.True(t, ok)
	assert.Equal(t, "emp-1", emp.ID)

	emp, ok = idx.ByContact("081234567890")
	require.True(t, ok)
	assert.Equal(t, "emp-1", emp.ID)

	emp, ok = idx.ByEmail("budi@example.com")
	require.True(t, ok)
	assert.Equal(t, "emp-1", emp.ID)

	_, ok = idx.ByCode("missing")
	assert.False(t, ok)
}

func TestBuildIndex_EmptyKeysNotIndexed(t *testing.T) {
	idx := BuildIndex([]Employee{
		{ID: "emp-1", EmployeeCode: "", ContactNumber: "  "},
	})

	_, ok := idx.ByCode("")
	assert.False(t, ok)
	_, ok = idx.ByContact("")
	assert.False(t, ok)
	assert.Equal(t, 1, idx.Len())
}

func TestBuildIndex_FirstWinsOnDuplicateKey(t *testing.T) {
	idx := BuildIndex([]Employee{
		{ID: "emp-1", EmployeeCode: "7"},
		{ID: "emp-2", EmployeeCode: "7"},
	})

	emp, ok := idx.ByCode("7")
	require.True(t, ok)
	assert.Equal(t, "emp-1", emp.ID)
}

func TestBuildIndex_SnapshotIsolatedFromSource(t *testing.T) {
	source := []Employee{{ID: "emp-1", EmployeeCode: "7"}}
	idx := BuildIndex(source)

	source[0].EmployeeCode = "changed"

	emp, ok := idx.ByCode("7")
	require.True(t, ok)
	assert.Equal(t, "emp-1", emp.ID)
}
