// Command tshighlight is a small CLI front end for the highlight core: it
// reads a property sheet and a source file, and prints the highlighted
// result to the terminal (ANSI) or as HTML. Grammar discovery and
// home-directory configuration are explicitly out of scope (§1); the only
// grammar linked in is Go's.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"

	highlight "github.com/tree-sitter-contrib/tshighlight"
	"github.com/tree-sitter-contrib/tshighlight/cliutil"
	"github.com/tree-sitter-contrib/tshighlight/htmlrender"
)

const goLanguageName = "go"

var log = logrus.New()

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.WithError(err).Error("tshighlight failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "tshighlight",
		Short:         "Syntax-highlight source text using a tree-sitter property sheet",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newHighlightCommand())
	return root
}

func newHighlightCommand() *cobra.Command {
	var (
		sheetPath string
		themePath string
		html      bool
	)

	cmd := &cobra.Command{
		Use:   "highlight [file]",
		Short: "Highlight a source file and print it to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args)
			if err != nil {
				return err
			}

			sheetJSON, err := os.ReadFile(sheetPath)
			if err != nil {
				return fmt.Errorf("reading property sheet: %w", err)
			}

			language := tree_sitter.NewLanguage(tree_sitter_go.Language())
			sheet, err := highlight.Compile(language, sheetJSON)
			if err != nil {
				return fmt.Errorf("compiling property sheet: %w", err)
			}

			registry := highlight.NewStaticRegistry()
			registry.Register(goLanguageName, language, sheet)

			log.WithField("bytes", len(source)).Debug("parsing source")
			highlighter, err := highlight.New(registry, language, sheet, source)
			if err != nil {
				return fmt.Errorf("constructing highlighter: %w", err)
			}
			defer highlighter.Close()

			events := highlighter.Highlight(context.Background())

			if html {
				out, err := htmlrender.Render(events)
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			}

			theme := cliutil.DefaultTheme()
			if themePath != "" {
				themeJSON, err := os.ReadFile(themePath)
				if err != nil {
					return fmt.Errorf("reading theme: %w", err)
				}
				theme, err = cliutil.NewTheme(themeJSON)
				if err != nil {
					return fmt.Errorf("parsing theme: %w", err)
				}
			}

			return cliutil.RenderANSI(os.Stdout, theme, events)
		},
	}

	cmd.Flags().StringVar(&sheetPath, "sheet", "", "path to the property-sheet JSON file")
	cmd.Flags().StringVar(&themePath, "theme", "", "path to a theme JSON file (defaults to the built-in theme)")
	cmd.Flags().BoolVar(&html, "html", false, "render HTML instead of ANSI escapes")
	_ = cmd.MarkFlagRequired("sheet")

	return cmd
}

func readSource(args []string) ([]byte, error) {
	if len(args) == 0 {
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return source, nil
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return source, nil
}
