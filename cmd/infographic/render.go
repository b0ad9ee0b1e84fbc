package main

import (
	"github.com/spf13/cobra"

	"github.com/dgallion1/infographic/internal/document"
)

func newRenderCmd() *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:   "render <document.json|document.yaml>",
		Short: "Render a stored document",
		Long: `Render lays out a document written by hand or saved with
"generate --save" and exports it without calling a model.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}
			return f.export(cmd, doc)
		},
	}
	f.register(cmd)
	return cmd
}
