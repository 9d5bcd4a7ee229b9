package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"help/patterns.md":         {Data: []byte("# Patterns\n\nWildcards and keywords")},
		"help/suffixes.txt":        {Data: []byte("Suffix unification")},
		"help/option-format.txt":   {Data: []byte("Output format help")},
		"help/config.txxt":         {Data: []byte("Configuration Guide")},
		"help/ignore.json":         {Data: []byte("{}")},
		"help/advanced/folders.md": {Data: []byte("Folder targets")},
	}
}

func TestScanTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(testFS(), "help")
		require.NoError(t, tm.scanTopics())

		tests := []struct {
			name    string
			exists  bool
			content string
		}{
			{"patterns", true, "# Patterns\n\nWildcards and keywords"},
			{"suffixes", true, "Suffix unification"},
			{"folders", true, "Folder targets"},
			{"config", false, ""},
			{"ignore", false, ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				topic, ok := tm.GetTopic(tt.name)
				assert.Equal(t, tt.exists, ok)
				if ok {
					assert.Equal(t, tt.content, topic.Content)
				}
			})
		}
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(testFS(), "help", Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.scanTopics())
		assert.Equal(t, []string{"config"}, tm.ListTopics())
	})

	t.Run("missing directory", func(t *testing.T) {
		tm := New(testFS(), "nope")
		require.NoError(t, tm.scanTopics())
		assert.Empty(t, tm.ListTopics())
	})

	t.Run("nil filesystem", func(t *testing.T) {
		tm := New(nil, "help")
		require.NoError(t, tm.scanTopics())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestGetTopic_FlagStyle(t *testing.T) {
	tm := New(testFS(), "help")
	require.NoError(t, tm.scanTopics())

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"patterns", "patterns", true},
		{"option-format", "option-format", true},
		{"format", "option-format", true},
		{"--format", "option-format", true},
		{"-format", "option-format", true},
		{"-v", "", false},
		{"nonexistent", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, ok := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, ok)
			if ok {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestListTopics_Sorted(t *testing.T) {
	tm := New(testFS(), "help")
	require.NoError(t, tm.scanTopics())
	assert.Equal(t, []string{"folders", "option-format", "patterns", "suffixes"}, tm.ListTopics())
}

func newRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "testapp", Short: "Test application"}
	root.AddCommand(&cobra.Command{
		Use:   "resolve",
		Short: "Resolve steps",
		Run:   func(cmd *cobra.Command, args []string) {},
	})
	require.NoError(t, Initialize(root, testFS(), "help"))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, &out
}

func TestInitialize_HelpCommand(t *testing.T) {
	root, _ := newRoot(t)
	// cobra attaches the help command lazily, on Execute
	root.InitDefaultHelpCmd()
	helpCmd, _, err := root.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help [command or topic]", helpCmd.Use)
}

func TestHelp_Topic(t *testing.T) {
	root, out := newRoot(t)
	root.SetArgs([]string{"help", "suffixes"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Suffix unification")
}

func TestHelp_TopicList(t *testing.T) {
	root, out := newRoot(t)
	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())

	got := out.String()
	assert.Contains(t, got, "General topics:")
	assert.Contains(t, got, "  patterns")
	assert.Contains(t, got, "  --format")
	assert.Contains(t, got, "testapp help <topic>")
}

func TestHelp_FallsBackToCommand(t *testing.T) {
	root, out := newRoot(t)
	root.SetArgs([]string{"help", "resolve"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Resolve steps")
}

func TestPlainRenderer(t *testing.T) {
	assert.Equal(t, "body\n", Plain.Render(&Topic{Content: "body"}))
	assert.Equal(t, "body\n", Plain.Render(&Topic{Content: "body\n\n"}))
}

func TestCustomRenderer(t *testing.T) {
	summary := RendererFunc(func(topic *Topic) string {
		return topic.Name + ":" + topic.Format()
	})
	root := &cobra.Command{Use: "testapp"}
	root.AddCommand(&cobra.Command{Use: "list", Run: func(cmd *cobra.Command, args []string) {}})
	require.NoError(t, InitializeWithOptions(root, testFS(), "help", Options{Renderer: summary}))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"help", "patterns"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "patterns:.md", out.String())
}

func TestGlamourRenderer_PassThrough(t *testing.T) {
	r := &GlamourRenderer{Style: "notty"}
	assert.Equal(t, "plain text\n", r.Render(&Topic{FilePath: "help/a.txt", Content: "plain text"}))

	out := r.Render(&Topic{FilePath: "help/a.md", Content: "# Title\n\nbody"})
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
}
