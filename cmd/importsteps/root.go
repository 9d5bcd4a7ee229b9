// Package importsteps builds the importsteps command line.
package importsteps

import (
	"embed"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/importsteps/internal/version"
	"github.com/arthur-debert/importsteps/pkg/cobrax/topics"
	"github.com/arthur-debert/importsteps/pkg/logging"
	"github.com/arthur-debert/importsteps/pkg/ui"
)

//go:embed topics
var topicFiles embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "importsteps",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&g.project, "project", "C", "", MsgFlagProject)
	flags.StringVarP(&g.format, "format", "f", "auto", MsgFlagFormat)
	flags.StringVar(&g.configFile, "config", "", MsgFlagConfig)
	flags.StringArrayVar(&g.sets, "set", nil, MsgFlagSet)
	_ = rootCmd.RegisterFlagCompletionFunc("format", formatCompletion)

	rootCmd.AddGroup(
		&cobra.Group{ID: "steps", Title: "STEPS:"},
		&cobra.Group{ID: "import", Title: "IMPORT:"},
		&cobra.Group{ID: "maintenance", Title: "MAINTENANCE:"},
		&cobra.Group{ID: "misc", Title: "MISC:"},
	)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(
		newAddCmd(g),
		newEditCmd(g),
		newRemoveCmd(g),
		newListCmd(g),
		newResolveCmd(g),
		newKindsCmd(g),
		newImportCmd(g),
		newSuffixCmd(g),
		newNukeCmd(g),
		newConfigCmd(g),
		newVersionCmd(),
		newCompletionCmd(),
	)

	opts := topics.Options{
		Extensions: []string{".md", ".txt"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if err := topics.InitializeWithOptions(rootCmd, topicFiles, "topics", opts); err != nil {
		log.Warn().Err(err).Msg("Failed to load help topics")
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

func formatCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, 0, len(ui.Formats()))
	for _, f := range ui.Formats() {
		names = append(names, f.String())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
