package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frherrer/docsuite/internal/builder"
	"github.com/frherrer/docsuite/internal/render"
)

var resourceJSON bool

var resourceCmd = &cobra.Command{
	Use:   "resource <files...>",
	Short: "Parse resource files and summarize them",
	Long:  `Parses resource files concurrently and prints the imports, variables and keywords each one defines.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		popts, err := parserOptions(cfg)
		if err != nil {
			return err
		}
		b, err := builder.NewResourceBuilder(popts, log)
		if err != nil {
			return err
		}
		resources, err := b.BuildAll(cmd.Context(), args...)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if resourceJSON {
			return render.WriteResourcesJSON(w, resources)
		}
		for _, res := range resources {
			fmt.Fprintf(w, "%s: %d imports, %d variables, %d keywords\n",
				res.Source, len(res.Imports), len(res.Variables), len(res.Keywords))
			for _, kw := range res.Keywords {
				fmt.Fprintf(w, "  - %s\n", kw.Name)
			}
		}
		return nil
	},
}

func init() {
	resourceCmd.Flags().BoolVar(&resourceJSON, "json", false, "print the parsed resources as JSON")
	rootCmd.AddCommand(resourceCmd)
}
