package policy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDenyByDefault(t *testing.T) {
	rendered := Render("192.168.1.5 10.0.0.7")

	lines := strings.Split(strings.TrimSpace(rendered), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "#"))
	assert.Equal(t, "Order deny,allow", lines[1])
	assert.Equal(t, "Deny from all", lines[2])
	assert.Equal(t, "Allow from 192.168.1.5 10.0.0.7", lines[3])
}

func TestWriteCreatesArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".htaccess")
	writer := NewWriter(path)

	require.NoError(t, writer.Write("127.0.0.1"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Render("127.0.0.1"), string(content))
}

func TestWriteOverwritesPriorPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".htaccess")
	writer := NewWriter(path)

	require.NoError(t, writer.Write("192.0.2.1 192.0.2.2"))
	require.NoError(t, writer.Write("198.51.100.9"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Allow from 198.51.100.9")
	assert.NotContains(t, string(content), "192.0.2.1")
}

func TestWriteFailsOnMissingDirectory(t *testing.T) {
	writer := NewWriter(filepath.Join(t.TempDir(), "no-such-dir", ".htaccess"))

	err := writer.Write("127.0.0.1")
	assert.ErrorContains(t, err, "failed to write access policy")
}
