package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/voxlate/internal/cli"
	"codeberg.org/snonux/voxlate/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(args, flags)
	}

	serveCmd := cli.CreateServeCommand(flags)
	serveCmd.RunE = func(cmd *cobra.Command, args []string) error {
		addr := viper.GetString("server.addr")
		if addr == "" {
			addr = flags.ServeAddr
		}
		return processor.NewProcessor(flags).RunServer(addr)
	}
	rootCmd.AddCommand(serveCmd)

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(args []string, flags *cli.Flags) error {
	proc := processor.NewProcessor(flags)

	// Handle --list-languages flag
	if flags.ListLanguages {
		proc.ListLanguages()
		return nil
	}

	// Handle --list-models flag
	if flags.ListModels {
		return proc.ListModels(context.Background())
	}

	// Handle --archive flag
	if flags.Archive {
		if err := proc.ArchiveLastRun(); err != nil {
			return fmt.Errorf("failed to archive last run: %w", err)
		}
		if flags.InputFile == "" && len(args) == 0 {
			return nil
		}
	}

	switch {
	case flags.InputFile != "":
		if err := proc.ProcessFile(flags.InputFile); err != nil {
			return err
		}
	case len(args) > 0:
		if err := proc.ProcessText(args[0]); err != nil {
			return err
		}
	default:
		// No input provided - launch GUI mode by default
		return proc.RunGUIMode()
	}

	fmt.Printf("\nDone! Output saved to: %s\n", proc.OutputDir())
	return nil
}
