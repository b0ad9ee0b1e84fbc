package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/infographic/internal/config"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change stored preferences",
	}
	cmd.AddCommand(&cobra.Command{
		Use:       "dark-mode [on|off|show]",
		Short:     "Switch the page theme used by HTML exports and previews",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off", "show"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store := settingsStore(config.Load())
			s, err := store.Load()
			if err != nil {
				return err
			}
			action := "show"
			if len(args) == 1 {
				action = args[0]
			}
			switch action {
			case "show":
			case "on", "off":
				s.DarkMode = action == "on"
				if err := store.Save(s); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown argument %q: want on, off or show", action)
			}
			state := "off"
			if s.DarkMode {
				state = "on"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dark mode: %s (%s)\n", state, store.Path())
			return nil
		},
	})
	return cmd
}
