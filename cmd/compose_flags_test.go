package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/momento-cli/internal/config"
	"github.com/AnyUserName/momento-cli/internal/filter"
	"github.com/AnyUserName/momento-cli/internal/frame"
)

func withConfig(t *testing.T) {
	t.Helper()
	t.Setenv("MOMENTO_HOME", t.TempDir())
	c, err := config.Load("")
	require.NoError(t, err)
	cfg = c
}

func TestResolveUsesPinnedFrame(t *testing.T) {
	withConfig(t)
	pinned, err := pins().Toggle(frame.Of(frame.Polaroid))
	require.NoError(t, err)
	require.True(t, pinned)

	f := composeFlags{filter: "sepia", sticker: "gratidao"}
	st, err := f.resolve()
	require.NoError(t, err)
	assert.Equal(t, filter.Sepia, st.Filter)
	assert.Equal(t, frame.Polaroid, st.Frame.Kind())
	assert.Equal(t, "gratidao", st.Sticker.Name)

	f.frame = "cinema"
	st, err = f.resolve()
	require.NoError(t, err)
	assert.Equal(t, frame.Cinema, st.Frame.Kind())
}

func TestResolveCustomFrameFile(t *testing.T) {
	withConfig(t)
	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, os.WriteFile(path, []byte("png bytes"), 0o644))

	st, err := (&composeFlags{frameFile: path}).resolve()
	require.NoError(t, err)
	assert.Equal(t, frame.Custom, st.Frame.Kind())
	assert.Equal(t, []byte("png bytes"), st.Frame.Payload())
}

func TestResolveRejectsUnknownNames(t *testing.T) {
	withConfig(t)
	for _, f := range []composeFlags{
		{filter: "lomo"},
		{frame: "oval"},
		{frame: "custom"},
		{sticker: "ola"},
	} {
		_, err := f.resolve()
		assert.Error(t, err, "%+v", f)
	}
}

func TestTruncKey(t *testing.T) {
	assert.Equal(t, "short", truncKey("short", 10))
	assert.Equal(t, "...efghij", truncKey("abcdefghij", 9))
}
