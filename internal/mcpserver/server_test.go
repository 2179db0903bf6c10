package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariogalea/qualitymatters-apiveritas/store"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apiveritas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func seedSnapshots(t *testing.T, suite string, folders map[string]map[string][]byte) string {
	t.Helper()
	root := t.TempDir()
	st := store.New(root)
	for folder, files := range folders {
		require.NoError(t, st.SaveTo(suite, folder, files))
	}
	return root
}

func TestHandleListRuns(t *testing.T) {
	root := seedSnapshots(t, "orders", map[string]map[string][]byte{
		"2025.01.02.000000": {"ping": []byte(`{}`)},
		"2025.01.03.000000": {"ping": []byte(`{}`)},
	})
	cfgPath := writeTestConfig(t, fmt.Sprintf(`
suite: orders
payloads_dir: %s
tests:
  - name: ping
    url: http://localhost/ping
`, root))

	res, out, err := handleListRuns(context.Background(), nil, listRunsInput{ConfigPath: cfgPath})
	require.NoError(t, err)
	require.Nil(t, res)

	assert.Equal(t, "orders", out.Suite)
	assert.Equal(t, []string{"2025.01.03.000000", "2025.01.02.000000"}, out.Folders)
	assert.Equal(t, 2, out.Count)
}

func TestHandleListRunsSuiteOverride(t *testing.T) {
	root := seedSnapshots(t, "other", map[string]map[string][]byte{
		"2025.01.02.000000": {"ping": []byte(`{}`)},
	})
	cfgPath := writeTestConfig(t, fmt.Sprintf(`
suite: orders
payloads_dir: %s
tests:
  - name: ping
    url: http://localhost/ping
`, root))

	_, out, err := handleListRuns(context.Background(), nil, listRunsInput{ConfigPath: cfgPath, Suite: "other"})
	require.NoError(t, err)
	assert.Equal(t, "other", out.Suite)
	assert.Equal(t, 1, out.Count)
}

func TestHandleCompareDefaultsToLatestTwo(t *testing.T) {
	root := seedSnapshots(t, "orders", map[string]map[string][]byte{
		"2025.01.02.000000": {"get_order": []byte(`{"id":1,"status":"open"}`)},
		"2025.01.03.000000": {"get_order": []byte(`{"id":"1","status":"open"}`)},
	})
	cfgPath := writeTestConfig(t, fmt.Sprintf(`
suite: orders
payloads_dir: %s
tests:
  - name: get order
    url: http://localhost/orders/1
`, root))

	res, out, err := handleCompare(context.Background(), nil, compareInput{ConfigPath: cfgPath})
	require.NoError(t, err)
	require.Nil(t, res)

	assert.Equal(t, "2025.01.02.000000", out.OldFolder)
	assert.Equal(t, "2025.01.03.000000", out.NewFolder)
	assert.Equal(t, 1, out.TotalFiles)
	assert.Equal(t, 1, out.DiffCount)
	assert.True(t, out.BreakingChange)
	assert.Contains(t, out.Summary, "Breaking contract change")

	require.NotEmpty(t, out.Differences)
	assert.Equal(t, "get_order.json", out.Differences[0].File)
	assert.Equal(t, "id", out.Differences[0].Path)
	assert.Equal(t, "type-mismatch", out.Differences[0].Kind)
}

func TestHandleCompareFewerThanTwoFolders(t *testing.T) {
	root := seedSnapshots(t, "orders", map[string]map[string][]byte{
		"2025.01.02.000000": {"ping": []byte(`{}`)},
	})
	cfgPath := writeTestConfig(t, fmt.Sprintf(`
suite: orders
payloads_dir: %s
tests:
  - name: ping
    url: http://localhost/ping
`, root))

	res, _, err := handleCompare(context.Background(), nil, compareInput{ConfigPath: cfgPath})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
}

func TestHandleCompareStrictValuesOverride(t *testing.T) {
	root := seedSnapshots(t, "orders", map[string]map[string][]byte{
		"2025.01.02.000000": {"get_order": []byte(`{"status":"open"}`)},
		"2025.01.03.000000": {"get_order": []byte(`{"status":"closed"}`)},
	})
	cfgPath := writeTestConfig(t, fmt.Sprintf(`
suite: orders
payloads_dir: %s
tests:
  - name: get order
    url: http://localhost/orders/1
`, root))

	strict := true
	_, out, err := handleCompare(context.Background(), nil, compareInput{ConfigPath: cfgPath, StrictValues: &strict})
	require.NoError(t, err)
	assert.True(t, out.BreakingChange)

	loose := false
	_, out, err = handleCompare(context.Background(), nil, compareInput{ConfigPath: cfgPath, StrictValues: &loose})
	require.NoError(t, err)
	assert.False(t, out.BreakingChange)
	assert.Equal(t, "informational", out.Differences[0].Severity)
}

func TestHandleRunTests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	root := t.TempDir()
	cfgPath := writeTestConfig(t, fmt.Sprintf(`
suite: orders
payloads_dir: %s
tests:
  - name: ping
    url: %s/ping
`, root, srv.URL))

	res, out, err := handleRunTests(context.Background(), nil, runTestsInput{ConfigPath: cfgPath})
	require.NoError(t, err)
	require.Nil(t, res)

	assert.Equal(t, "orders", out.Suite)
	assert.NotEmpty(t, out.Folder)
	assert.Equal(t, 1, out.SavedFiles)
	assert.Zero(t, out.FailedCount)
	require.Len(t, out.Outcomes, 1)
	assert.Equal(t, http.StatusOK, out.Outcomes[0].StatusCode)

	data, err := store.New(root).Read("orders", out.Folder, "ping.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))
}

func TestHandleRunTestsMissingConfig(t *testing.T) {
	res, _, err := handleRunTests(context.Background(), nil, runTestsInput{
		ConfigPath: filepath.Join(t.TempDir(), "nope.yaml"),
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
}

func TestSanitizeError(t *testing.T) {
	err := errors.New("open /home/user/secrets/apiveritas.yaml: no such file")
	assert.NotContains(t, sanitizeError(err), "/home/user")
	assert.Empty(t, sanitizeError(nil))
}
