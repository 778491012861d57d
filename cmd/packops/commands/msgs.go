package commands

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Install and remove packages on a target system"
	MsgRunShort        = "Run the packages job"
	MsgCountShort      = "Print the number of package units the job would process"
	MsgBackendsShort   = "List available backends"
	MsgKeyringShort    = "Initialise the pacman keyring of the target"
	MsgHistoryShort    = "Show recorded package outcomes"
	MsgGenConfigShort  = "Print a sample job configuration"
	MsgTopicsShort     = "Display available documentation topics"
	MsgManShort        = "Generate man pages into a directory"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice    = "DRY RUN MODE - no commands were run"
	MsgRunFinished     = "%s %d of %d package units processed\n"
	MsgRunSkipped      = "%s No package operations to process\n"
	MsgKeyringFinished = "%s Keyring initialised\n"
	MsgNoHistory       = "No outcomes recorded."
	MsgManWritten      = "Man pages written to %s\n"
	MsgTopicNotFound   = "no help topic named %q"

	// Error messages
	MsgErrLoadConfig  = "failed to load config: %w"
	MsgErrLoadStorage = "failed to load storage: %w"
	MsgErrOpenJournal = "failed to open journal: %w"
	MsgErrProgress    = "failed to start progress bar: %w"
	MsgErrBadProgress = "invalid --progress value %q (want auto, bar, log or none)"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Log package-manager commands instead of running them"
	MsgFlagConfig    = "Job configuration file (TOML or YAML)"
	MsgFlagStorage   = "Shared storage document (YAML)"
	MsgFlagRoot      = "Root mount point of the target system"
	MsgFlagOnline    = "Treat the install as online"
	MsgFlagInternet  = "Treat internet as available"
	MsgFlagLocale    = "Locale substituted into package names"
	MsgFlagProgress  = "Progress display: auto, bar, log or none"
	MsgFlagNoJournal = "Do not record outcomes in the journal"
	MsgFlagLimit     = "Number of outcomes to show"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/history-long.txt
	msgHistoryLongRaw string
	MsgHistoryLong    = strings.TrimSpace(msgHistoryLongRaw)

	//go:embed msgs/keyring-long.txt
	msgKeyringLongRaw string
	MsgKeyringLong    = strings.TrimSpace(msgKeyringLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
