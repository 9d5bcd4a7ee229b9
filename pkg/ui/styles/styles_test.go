package styles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/importsteps/pkg/ui/styles"
)

func TestEmbeddedStylesCoverNames(t *testing.T) {
	for _, name := range styles.Names {
		t.Run(name, func(t *testing.T) {
			assert.True(t, styles.Has(name), "missing style %s", name)
		})
	}
}

func TestStyleAttributes(t *testing.T) {
	assert.True(t, styles.GetStyle("Header").GetBold())
	assert.True(t, styles.GetStyle("Disabled").GetItalic())
	assert.False(t, styles.GetStyle("Path").GetBold())
}

func TestGetStyle_Unknown(t *testing.T) {
	st := styles.GetStyle("DoesNotExist")
	assert.False(t, st.GetBold())
	assert.Equal(t, "text", st.Render("text"))
}

func TestMergeStyles(t *testing.T) {
	merged := styles.MergeStyles("Bold", "Italic")
	assert.True(t, merged.GetBold())
	assert.True(t, merged.GetItalic())
}

func TestStyleMap_IsCopy(t *testing.T) {
	m := styles.StyleMap()
	delete(m, "Header")
	assert.True(t, styles.Has("Header"))
}

func TestLoadStylesFromData(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, styles.RestoreDefaults())
	})

	data := []byte(`
colors:
  red: {light: "#ff0000", dark: "#ff5555"}
styles:
  Alarm:
    bold: true
    foreground: red
`)
	require.NoError(t, styles.LoadStylesFromData(data))
	assert.True(t, styles.Has("Alarm"))
	assert.False(t, styles.Has("Header"))
	assert.True(t, styles.GetStyle("Alarm").GetBold())

	assert.Error(t, styles.LoadStylesFromData([]byte("styles: [")))
}
