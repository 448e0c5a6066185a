package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frherrer/docsuite/internal/builder"
	"github.com/frherrer/docsuite/internal/config"
	"github.com/frherrer/docsuite/internal/domain"
	"github.com/frherrer/docsuite/internal/render"
)

var buildFlags struct {
	mode        string
	allowEmpty  bool
	suites      []string
	extensions  []string
	parsers     []string
	languages   []string
	output      string
	template    string
	templateDir string
	noColor     bool
}

var buildCmd = &cobra.Command{
	Use:   "build [paths...]",
	Short: "Build a suite tree and print it",
	Long: `Parses the given files and directories, or input.paths from the
configuration file, into one suite tree and prints it as a tree, with a
custom template, or as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyBuildFlags(cmd, cfg)

		opts, err := builderOptions(cfg)
		if err != nil {
			return err
		}
		if codes := opts.Languages.Codes(); len(codes) > 0 {
			log.Debugf("Accepting section names in: %s.", strings.Join(codes, ", "))
		}
		b, err := builder.NewSuiteBuilder(opts, log)
		if err != nil {
			return err
		}

		paths := args
		if len(paths) == 0 {
			paths = cfg.Input.Paths
		}
		suite, err := b.Build(paths...)
		if err != nil {
			return err
		}
		log.Infof("Built suite '%s' (%d %s).", suite.DisplayName(), suite.TestCount(), suite.Mode)
		return writeSuite(cmd.OutOrStdout(), suite, cfg.Output)
	},
}

func init() {
	f := buildCmd.Flags()
	f.StringVar(&buildFlags.mode, "mode", "", "execution mode of all suites: tests or tasks")
	f.BoolVar(&buildFlags.allowEmpty, "allow-empty", false, "do not fail when no tests or tasks are found")
	f.StringSliceVarP(&buildFlags.suites, "suite", "s", nil, "only include suites matching these patterns")
	f.StringSliceVarP(&buildFlags.extensions, "extension", "e", nil, "file extensions parsed in directories")
	f.StringSliceVar(&buildFlags.parsers, "parser", nil, "parser aliases in the form format:extension")
	f.StringSliceVar(&buildFlags.languages, "language", nil, "extra languages for section names")
	f.StringVarP(&buildFlags.output, "output", "o", "", "output format: tree or json")
	f.StringVarP(&buildFlags.template, "template", "t", "", "template used for tree output")
	f.StringVar(&buildFlags.templateDir, "template-dir", "", "directory with additional templates")
	f.BoolVar(&buildFlags.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(buildCmd)
}

// applyBuildFlags overrides configuration values with the flags that were set.
func applyBuildFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("mode") {
		c.Parsing.Mode = buildFlags.mode
	}
	if flags.Changed("allow-empty") {
		c.Parsing.AllowEmptySuite = buildFlags.allowEmpty
	}
	if flags.Changed("suite") {
		c.Input.IncludedSuites = buildFlags.suites
	}
	if flags.Changed("extension") {
		c.Input.Extensions = buildFlags.extensions
	}
	if flags.Changed("parser") {
		c.Input.Parsers = append(c.Input.Parsers, buildFlags.parsers...)
	}
	if flags.Changed("language") {
		c.Parsing.Languages = buildFlags.languages
	}
	if flags.Changed("output") {
		c.Output.Format = buildFlags.output
	}
	if flags.Changed("template") {
		c.Output.Template = buildFlags.template
	}
	if flags.Changed("template-dir") {
		c.Output.TemplateDir = buildFlags.templateDir
	}
	if buildFlags.noColor {
		c.Output.Color = false
	}
}

func writeSuite(w io.Writer, suite *domain.TestSuite, out config.OutputConfig) error {
	switch out.Format {
	case "json":
		return render.WriteJSON(w, suite)
	case "", "tree":
	default:
		return domain.Errorf(domain.KindConfig, "unknown output format %q", out.Format)
	}

	engine, err := render.NewEngine(out.TemplateDir, out.Color)
	if err != nil {
		return err
	}
	text, err := engine.Render(suite, out.Template)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}
