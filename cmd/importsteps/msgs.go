package importsteps

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Rule driven asset import steps"
	MsgAddShort        = "Add an import step"
	MsgRemoveShort     = "Remove an import step"
	MsgEditShort       = "Edit an import step"
	MsgListShort       = "List configured steps"
	MsgResolveShort    = "Show the steps that run for an asset"
	MsgImportShort     = "Run an import batch from a manifest"
	MsgKindsShort      = "List step kinds and their parameters"
	MsgSuffixShort     = "Unify suffixes and manage suffix rules"
	MsgUnifyShort      = "Unify the suffix of the given names"
	MsgSeparatorShort  = "Set the separator written before suffixes"
	MsgRestoreShort    = "Restore the default suffix rules"
	MsgNukeShort       = "Remove every step and restore suffix defaults"
	MsgVersionShort    = "Print version information"
	MsgConfigShort     = "Inspect configuration sources"
	MsgDefaultsShort   = "Print the built-in default configuration"
	MsgPathsShort      = "Print the config and log file locations"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgStepAdded        = "Added step %s"
	MsgStepRemoved      = "Removed step %s"
	MsgStepUpdated      = "Updated step %s"
	MsgStepDisabled     = "Step %s was disabled: it targets no types"
	MsgSeparatorSet     = "Suffix separator set to %q"
	MsgSuffixesRestored = "Restored default suffix rules"
	MsgNuked            = "Removed every step and restored default suffix rules"
	MsgLoadProblem      = "A stored step was not loaded and is kept as is: %v"
	MsgVersionFormat    = "importsteps %s (commit %s, built %s)"

	// Error messages
	MsgErrNoTarget     = "a target is required: pass --id or --path"
	MsgErrBothTargets  = "--id and --path are mutually exclusive"
	MsgErrBadParam     = "invalid parameter %q: expected name=value"
	MsgErrUnknownTypes = "unknown types: %s"
	MsgErrNukeConfirm  = "nuke removes every step; pass --yes to confirm"
	MsgErrEnableBoth   = "--enable and --disable are mutually exclusive"
	MsgErrReadManifest = "failed to read manifest %s"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagProject   = "Project root (default is the current directory)"
	MsgFlagFormat    = "Output format: auto, terminal, text or json"
	MsgFlagConfig    = "User config file (default is $XDG_CONFIG_HOME/importsteps/config.toml)"
	MsgFlagSet       = "Override a config key, as key=value (repeatable)"
	MsgFlagID        = "Target a stable asset id"
	MsgFlagPath      = "Target a path pattern"
	MsgFlagTypes     = "Types the step applies to (comma separated)"
	MsgFlagSubAsset  = "Pattern selecting sub-assets by name"
	MsgFlagPriority  = "Priority, lower runs first"
	MsgFlagParam     = "Kind parameter as name=value (repeatable)"
	MsgFlagDisabled  = "Add the step disabled"
	MsgFlagEnable    = "Enable the step"
	MsgFlagDisable   = "Disable the step"
	MsgFlagFolder    = "Only steps whose pattern originates from this folder"
	MsgFlagImporter  = "Importer name reported to the steps"
	MsgFlagCaseSens  = "Match suffix variants case sensitively"
	MsgFlagYes       = "Confirm the operation"
	MsgFlagResolveAs = "Asset types (default: every known type)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/add-long.txt
	msgAddLongRaw string
	MsgAddLong    = strings.TrimSpace(msgAddLongRaw)

	//go:embed msgs/add-example.txt
	msgAddExampleRaw string
	MsgAddExample    = strings.TrimRight(msgAddExampleRaw, "\n")

	//go:embed msgs/edit-long.txt
	msgEditLongRaw string
	MsgEditLong    = strings.TrimSpace(msgEditLongRaw)

	//go:embed msgs/resolve-long.txt
	msgResolveLongRaw string
	MsgResolveLong    = strings.TrimSpace(msgResolveLongRaw)

	//go:embed msgs/import-long.txt
	msgImportLongRaw string
	MsgImportLong    = strings.TrimSpace(msgImportLongRaw)

	//go:embed msgs/import-example.txt
	msgImportExampleRaw string
	MsgImportExample    = strings.TrimRight(msgImportExampleRaw, "\n")

	//go:embed msgs/suffix-long.txt
	msgSuffixLongRaw string
	MsgSuffixLong    = strings.TrimSpace(msgSuffixLongRaw)

	//go:embed msgs/nuke-long.txt
	msgNukeLongRaw string
	MsgNukeLong    = strings.TrimSpace(msgNukeLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
