// Package cli implements the mywallet admin command line on top of
// server.App using cobra.
package cli

import (
	"context"
	"io"

	"github.com/dmitrijs2005/mywallet/internal/server"
	"github.com/dmitrijs2005/mywallet/internal/server/config"
	"github.com/spf13/cobra"
)

// session is shared by all commands of one invocation.
type session struct {
	flags  *config.Flags
	config *config.Config
	app    *server.App
}

func (s *session) open(cmd *cobra.Command) error {
	cfg, err := config.Load(s.flags)
	if err != nil {
		return err
	}
	s.config = cfg

	app, err := server.NewApp(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	s.app = app
	return nil
}

func (s *session) close() error {
	if s.app == nil {
		return nil
	}
	err := s.app.Close()
	s.app = nil
	return err
}

// Execute runs the command line given by args. Output goes to stdout,
// logs and prompts to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	s := &session{}
	defer func() {
		if cerr := s.close(); err == nil {
			err = cerr
		}
	}()

	root := newRootCommand(s)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return root.ExecuteContext(ctx)
}

// newRootCommand builds the command tree. Every runnable subcommand gets
// an opened App through the persistent pre-run hook.
func newRootCommand(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:           "mywallet",
		Short:         "Personal finance ledger administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open(cmd)
		},
	}

	s.flags = config.BindFlags(root.PersistentFlags())

	root.AddCommand(newInitCommand(s))
	root.AddCommand(newSeedCommand(s))
	root.AddCommand(newUserCommand(s))
	root.AddCommand(newEntryCommand(s))

	return root
}
