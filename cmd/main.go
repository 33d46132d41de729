package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"screen-flipper/pkg/command"
	"screen-flipper/pkg/config"
	"screen-flipper/pkg/display"
	"screen-flipper/pkg/flipper"
	"screen-flipper/pkg/globals"
	"screen-flipper/pkg/logger"
	"screen-flipper/pkg/service"
	"screen-flipper/pkg/session"
	"screen-flipper/pkg/state"
)

// Swapped out by tests
var (
	newRunner    = func(cfg *config.Config) command.Runner { return command.ForDisplay(cfg.DisplayID) }
	checkSession = session.Check
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg   *config.Config
		reset bool
	)

	root := &cobra.Command{
		Use:   "screen-flipper",
		Short: "Toggle the screen and touch panel between normal and inverted",
		Long: `screen-flipper rotates the display by 180 degrees and remaps the touch
panel calibration to match. Every run toggles between the normal and the
inverted orientation. --reset forces the normal orientation.`,
		Version:       globals.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(config.Path())
			if err != nil {
				return err
			}
			logger.Init(globals.LogsPath, "id", cfg.ID)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			checkSession(cfg.DisplayID)
			f := newFlipper(cfg)

			if reset {
				if err := f.Reset(); err != nil {
					return err
				}
				log.Println("Orientation reset to normal")
				return nil
			}

			o, err := f.Toggle()
			if err != nil {
				return err
			}
			log.Printf("Screen is now %s", o)
			return nil
		},
	}
	root.Flags().BoolVarP(&reset, "reset", "r", false, "force reset to the normal orientation")

	root.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the orientation recorded by the state file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := newFlipper(cfg).Current()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), o)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "logs",
		Short: "Print recent log entries",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, e := range logger.GetLogs() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-5s %s\n", e.Time, e.Level, e.Msg)
			}
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "install-service",
		Short: "Install a systemd service that resets the orientation at boot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to locate executable: %w", err)
			}

			sessionUser, xauthority, err := service.SessionUser()
			if err != nil {
				return err
			}
			if sessionUser == "" {
				log.Println("Warning: installing the service as root, run with sudo from the desktop user so it can reach X")
			}

			// the service reads the same settings as this run
			cfgPath := config.Path()
			if err := cfg.Save(cfgPath); err != nil {
				return err
			}

			return service.Install(&command.Exec{}, globals.ServicePath, service.Unit{
				ExecPath:   exe,
				ConfigPath: cfgPath,
				DisplayID:  cfg.DisplayID,
				User:       sessionUser,
				XAuthority: xauthority,
			})
		},
	})

	return root
}

func newFlipper(cfg *config.Config) *flipper.Flipper {
	runner := newRunner(cfg)
	return flipper.New(
		runner,
		cfg.TouchDevicePattern,
		display.NewXController(runner, cfg.OutputName),
		state.NewFileStore(cfg.StatePath),
	)
}
