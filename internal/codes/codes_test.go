package codes

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^KR[A-HJ-NP-Z2-9]{6}$`)

func TestBatch(t *testing.T) {
	gen := NewGenerator("KR", 42)
	batch, err := gen.Batch(1000)
	require.NoError(t, err)

	assert.Len(t, batch, 1000)

	seen := make(map[string]struct{}, len(batch))
	for _, code := range batch {
		assert.Regexp(t, codePattern, code)
		_, dup := seen[code]
		assert.False(t, dup, "duplicate code %s", code)
		seen[code] = struct{}{}
	}

	// Sorted output.
	for i := 1; i < len(batch); i++ {
		assert.LessOrEqual(t, batch[i-1], batch[i])
	}
}

func TestBatchReproducible(t *testing.T) {
	a, err := NewGenerator("KR", 7).Batch(50)
	require.NoError(t, err)
	b, err := NewGenerator("KR", 7).Batch(50)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBatchRejectsBadCount(t *testing.T) {
	_, err := NewGenerator("KR", 1).Batch(0)
	assert.Error(t, err)
	_, err = NewGenerator("KR", 1).Batch(-5)
	assert.Error(t, err)
}

func TestAlphabetExcludesConfusingChars(t *testing.T) {
	for _, c := range "0O1I" {
		assert.NotContains(t, Alphabet, string(c))
	}
	assert.Len(t, Alphabet, 32)

	// Pinned: codes already distributed were minted from this exact
	// alphabet, so it can never drift.
	assert.Equal(t, "ABCDEFGHJKLMNPQRSTUVWXYZ23456789", Alphabet)
}

func TestWriters(t *testing.T) {
	dir := t.TempDir()
	batch := []string{"KRAAAAAA", "KRBBBBBB", "KRCCCCCC"}

	validPath := filepath.Join(dir, "valid_codes.json")
	masterPath := filepath.Join(dir, "codes_master_list.json")
	csvPath := filepath.Join(dir, "codes_master_list.csv")

	require.NoError(t, WriteValidCodes(validPath, batch))
	require.NoError(t, WriteMasterList(masterPath, batch))
	require.NoError(t, WriteCSV(csvPath, batch))

	var valid []string
	data, err := os.ReadFile(validPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &valid))
	assert.Equal(t, batch, valid)

	var master []MasterEntry
	data, err = os.ReadFile(masterPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &master))
	require.Len(t, master, 3)
	assert.Equal(t, "KRAAAAAA", master[0].Code)
	assert.Equal(t, 1, master[0].Index)
	assert.Empty(t, master[0].GivenTo)

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Index", "Code", "Given To", "Date Given", "Notes"}, rows[0])
	assert.Equal(t, "KRBBBBBB", rows[2][1])
}
