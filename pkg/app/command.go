package app

import (
	"context"

	"github.com/spf13/cobra"
)

// Main runs the command line with args. It returns when the command finishes or,
// for serve, when ctx is done and the server has shut down.
func Main(ctx context.Context, args []string) error {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// NewRootCommand returns the surrealblog command tree. Flag defaults come from DefaultConfig,
// so environment variables apply unless a flag is given.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "surrealblog",
		Short: "In-memory blog API with live queries",
		Long: `surrealblog serves users, posts and comments from memory over an RPC API.

Clients call methods over HTTP (POST /rpc) or WebSocket (GET /rpc). WebSocket
clients can also start live queries and receive changes as they happen.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newCheckCommand())

	return rootCmd
}

func newServeCommand() *cobra.Command {
	config := DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and WebSocket server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := New(config)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&config.Addr, "addr", config.Addr, "listen address (env "+EnvAddr+")")
	flags.StringVar(&config.Format, "format", config.Format, "default WebSocket encoding, cbor or json (env "+EnvFormat+")")
	flags.StringVar(&config.SeedFile, "seed", config.SeedFile, "YAML seed file loaded at startup (env "+EnvSeed+")")
	flags.BoolVar(&config.Demo, "demo", config.Demo, "load the sample blog (env "+EnvDemo+")")
	flags.IntVar(&config.BufferSize, "buffer-size", config.BufferSize, "events buffered per live query (env "+EnvBufferSize+")")
	flags.DurationVar(&config.CountInterval, "count-interval", config.CountInterval, "tick period of count live queries (env "+EnvCountInterval+")")
	flags.StringVar(&config.LogLevel, "log-level", config.LogLevel, "debug, info, warn or error (env "+EnvLogLevel+")")
	flags.StringVar(&config.LogFile, "log-file", config.LogFile, "append logs to this file instead of stdout (env "+EnvLogFile+")")
	flags.BoolVar(&config.LogConsole, "log-console", config.LogConsole, "human readable logs (env "+EnvLogConsole+")")
	flags.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log backend, zerolog or slog (env "+EnvLogFormat+")")

	return cmd
}

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <seed.yaml>",
		Short: "Validate a seed file",
		Long: `Check parses a seed file and verifies that ids and emails are unique and
that every post and comment references existing entities.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := Check(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("%s: %d users, %d posts, %d comments\n",
				args[0], summary.Users, summary.Posts, summary.Comments)
			return nil
		},
	}
}
