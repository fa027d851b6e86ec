package statusline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeCounter(t *testing.T, root, iface, file, content string) {
	t.Helper()
	dir := filepath.Join(root, iface, "statistics")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0644))
}
