package enrich

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyScreenshot(t *testing.T) {
	t.Parallel()

	outputDir := t.TempDir()
	resultsDir := t.TempDir()

	nestedDir := path.Join(outputDir, "screenshots")
	require.NoError(t, os.MkdirAll(nestedDir, 0o755))

	older := path.Join(outputDir, "older.png")
	newer := path.Join(nestedDir, "newer.jpg")
	require.NoError(t, os.WriteFile(older, []byte("older"), 0o600))
	require.NoError(t, os.WriteFile(newer, []byte("newer"), 0o600))

	now := time.Now()
	require.NoError(t, os.Chtimes(older, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(newer, now, now))

	attachment, err := copyScreenshot(outputDir, resultsDir, "0123456789abcdef01234567")
	require.NoError(t, err)
	require.NotNil(t, attachment)

	assert.Equal(t, "Screenshot (failure)", attachment.Name)
	assert.Equal(t, "0123456789abcdef01234567-attachment.jpg", attachment.Source)
	assert.Equal(t, "image/jpeg", attachment.Type)

	copied, err := os.ReadFile(path.Join(resultsDir, attachment.Source))
	require.NoError(t, err)
	assert.Equal(t, []byte("newer"), copied)
}

func TestCopyScreenshot_MissingDirectory(t *testing.T) {
	t.Parallel()

	attachment, err := copyScreenshot(path.Join(t.TempDir(), "absent"), t.TempDir(), "lorem")
	require.NoError(t, err)
	assert.Nil(t, attachment)
}

func TestCopyScreenshot_NoImageFiles(t *testing.T) {
	t.Parallel()

	outputDir := t.TempDir()
	require.NoError(t, os.WriteFile(path.Join(outputDir, "maestro.log"), []byte("logs"), 0o600))

	attachment, err := copyScreenshot(outputDir, t.TempDir(), "lorem")
	require.NoError(t, err)
	assert.Nil(t, attachment)
}
