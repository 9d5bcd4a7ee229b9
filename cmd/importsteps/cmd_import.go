package importsteps

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/importsteps/pkg/core"
	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/paths"
	"github.com/arthur-debert/importsteps/pkg/ui/display"
)

// manifestFs is where manifests are read from. Paths are relative to the
// working directory, not the project root.
var manifestFs = afero.NewOsFs()

func newImportCmd(g *globalOptions) *cobra.Command {
	var importer string

	cmd := &cobra.Command{
		Use:     "import <manifest.yaml>",
		Short:   MsgImportShort,
		Long:    MsgImportLong,
		Example: MsgImportExample,
		GroupID: "import",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := paths.ExpandHome(args[0])
			if err != nil {
				return err
			}
			data, err := afero.ReadFile(manifestFs, path)
			if err != nil {
				return errors.Wrapf(err, errors.ErrNotFound, MsgErrReadManifest, path)
			}
			manifest, err := core.ParseManifest(data)
			if err != nil {
				return err
			}

			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			objects, err := manifest.ImportedObjects(s.engine.Hierarchy(), s.engine.DB())
			if err != nil {
				return err
			}

			report := s.engine.RunBatch(objects, importer)
			return s.renderer.RenderResult(display.NewBatchView(report))
		},
	}

	cmd.Flags().StringVar(&importer, "importer", "ModelImporter", MsgFlagImporter)
	return cmd
}
