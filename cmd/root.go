package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/byxorna/stopover/pkg/app"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	flags = struct {
		ConfigFile string
	}{}

	root = &cobra.Command{
		Use:   "stopover",
		Short: "Stopover is a terminal based trip itinerary tracker",
		Args:  cobra.MaximumNArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if os.Getenv("STOPOVER_DEBUG") != "" {
				f, err := app.LogToRuntimeFile()
				if err != nil {
					return fmt.Errorf("unable to set up debug logging: %w", err)
				}
				defer f.Close()
			} else {
				log.SetOutput(io.Discard)
			}

			m, err := app.NewFromConfigFile(ctx, flags.ConfigFile, os.Getenv("GEMINI_API_KEY"))
			if err != nil {
				return err
			}
			defer m.Close()

			p := tea.NewProgram(m, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
)

func init() {
	root.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "~/.stopover.yaml", "configuration file")
}

func Execute() {
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
