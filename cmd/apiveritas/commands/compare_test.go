package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariogalea/qualitymatters-apiveritas/store"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apiveritas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func seedFolders(t *testing.T, suite string, folders map[string]map[string][]byte) string {
	t.Helper()
	root := t.TempDir()
	st := store.New(root)
	for folder, files := range folders {
		require.NoError(t, st.SaveTo(suite, folder, files))
	}
	return root
}

func TestSetupCompareFlags(t *testing.T) {
	fs, flags := SetupCompareFlags()
	require.NoError(t, fs.Parse([]string{
		"--old", "a", "--new", "b", "--strict-schema", "--format", "json", "--report",
	}))

	assert.Equal(t, "a", flags.OldFolder)
	assert.Equal(t, "b", flags.NewFolder)
	assert.True(t, flags.StrictSchema)
	assert.False(t, flags.StrictValues)
	assert.Equal(t, FormatJSON, flags.Format)
	assert.True(t, flags.Report)
}

func TestHandleCompareRejectsBadFormat(t *testing.T) {
	err := HandleCompare([]string{"--format", "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestHandleCompareMissingConfig(t *testing.T) {
	err := HandleCompare([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestHandleCompareNeedsTwoFolders(t *testing.T) {
	root := seedFolders(t, "orders", map[string]map[string][]byte{
		"2025.01.02.000000": {"ping": []byte(`{}`)},
	})
	cfgPath := writeConfigFile(t, fmt.Sprintf(`
suite: orders
payloads_dir: %s
tests:
  - name: ping
    url: http://localhost/ping
`, root))

	err := HandleCompare([]string{"--config", cfgPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fewer than two")
}

func TestHandleCompareMatchedSnapshots(t *testing.T) {
	body := []byte(`{"id":1,"status":"open"}`)
	root := seedFolders(t, "orders", map[string]map[string][]byte{
		"2025.01.02.000000": {"get_order": body},
		"2025.01.03.000000": {"get_order": body},
	})
	cfgPath := writeConfigFile(t, fmt.Sprintf(`
suite: orders
payloads_dir: %s
tests:
  - name: get order
    url: http://localhost/orders/1
`, root))

	// Identical snapshots exit 0, so the handler returns instead of exiting.
	assert.NoError(t, HandleCompare([]string{"--config", cfgPath}))
}

func TestHandleCompareExplicitFolders(t *testing.T) {
	body := []byte(`{"id":1}`)
	root := seedFolders(t, "orders", map[string]map[string][]byte{
		"2025.01.01.000000": {"get_order": body},
		"2025.01.02.000000": {"get_order": body},
		"2025.01.03.000000": {"get_order": []byte(`{"id":"1"}`)},
	})
	cfgPath := writeConfigFile(t, fmt.Sprintf(`
suite: orders
payloads_dir: %s
tests:
  - name: get order
    url: http://localhost/orders/1
`, root))

	assert.NoError(t, HandleCompare([]string{
		"--config", cfgPath,
		"--old", "2025.01.01.000000",
		"--new", "2025.01.02.000000",
	}))
}

func TestHandleCompareWritesReport(t *testing.T) {
	body := []byte(`{"id":1}`)
	root := seedFolders(t, "orders", map[string]map[string][]byte{
		"2025.01.02.000000": {"get_order": body},
		"2025.01.03.000000": {"get_order": body},
	})
	reportsDir := filepath.Join(t.TempDir(), "reports")
	cfgPath := writeConfigFile(t, fmt.Sprintf(`
suite: orders
payloads_dir: %s
reports_dir: %s
tests:
  - name: get order
    url: http://localhost/orders/1
`, root, reportsDir))

	require.NoError(t, HandleCompare([]string{"--config", cfgPath, "--report"}))

	entries, err := os.ReadDir(reportsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "report-")
}
