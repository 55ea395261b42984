package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"noticeboard/internal/paths"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfigHome(t *testing.T) {
	t.Helper()
	old := paths.ConfigHomeOverride
	paths.ConfigHomeOverride = t.TempDir()
	t.Cleanup(func() { paths.ConfigHomeOverride = old })
}

func TestEmbeddedPagesLoad(t *testing.T) {
	withConfigHome(t)
	for _, name := range []string{HelpSupport, Terms, Privacy} {
		page, err := Load(context.Background(), name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, page.Title)
		assert.NotEmpty(t, page.Sections)
		assert.NotEmpty(t, page.Text())
	}
}

func TestUnknownPage(t *testing.T) {
	withConfigHome(t)
	_, err := Load(context.Background(), "cookies")
	assert.Error(t, err)
}

func TestOverrideWinsUnlessBroken(t *testing.T) {
	withConfigHome(t)
	require.NoError(t, os.MkdirAll(OverrideDir(), 0o755))
	path := filepath.Join(OverrideDir(), Terms+".yaml")

	require.NoError(t, os.WriteFile(path, []byte("title: House rules\nsections:\n  - body: Be kind.\n"), 0o644))
	page, err := Load(context.Background(), Terms)
	require.NoError(t, err)
	assert.Equal(t, "House rules", page.Title)
	assert.Equal(t, "Be kind.\n", page.Text())

	require.NoError(t, os.WriteFile(path, []byte("sections: [oops"), 0o644))
	page, err = Load(context.Background(), Terms)
	require.NoError(t, err)
	assert.Equal(t, "Terms of Service", page.Title)
}
