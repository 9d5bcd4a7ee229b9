package steps_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/importsteps/pkg/assetdb"
	"github.com/arthur-debert/importsteps/pkg/keywords"
	"github.com/arthur-debert/importsteps/pkg/matcher"
	"github.com/arthur-debert/importsteps/pkg/pattern"
	"github.com/arthur-debert/importsteps/pkg/steps"
	"github.com/arthur-debert/importsteps/pkg/suffix"
	"github.com/arthur-debert/importsteps/pkg/types"
)

type deferred struct {
	step      *steps.Step
	assetPath string
}

type recordingDeferrer struct {
	items []deferred
}

func (r *recordingDeferrer) Defer(step *steps.Step, assetPath string) {
	r.items = append(r.items, deferred{step: step, assetPath: assetPath})
}

type env struct {
	ctx      *steps.Context
	db       assetdb.Database
	fs       afero.Fs
	deferrer *recordingDeferrer
}

func newEnv(t *testing.T, files ...string) *env {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, []byte("data"), 0644))
	}
	db := assetdb.New(fs)
	d := &recordingDeferrer{}
	return &env{
		ctx: &steps.Context{
			DB:       db,
			Matcher:  matcher.New(pattern.NewCompiler(pattern.DefaultWildcards(), 0), types.DefaultHierarchy(), keywords.Defaults()),
			Suffixes: suffix.DefaultTable(),
			Analysis: suffix.DefaultAnalysisOptions(),
			Deferrer: d,
			Logger:   zerolog.Nop(),
		},
		db:       db,
		fs:       fs,
		deferrer: d,
	}
}
