package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CTAG07/markovtext/pkg/templating"
)

// TemplateInput is the data passed to every rendered template.
type TemplateInput struct {
	Corpus string
	Path   string
}

func (a *app) newTemplateManager(ctx context.Context, dir string) (*templating.TemplateManager, error) {
	model, err := a.loadModel(ctx)
	if err != nil {
		return nil, err
	}
	limits := a.config.Templates.TemplateConfig
	tm, err := templating.NewTemplateManager(a.logger, model, &limits, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create template manager: %w", err)
	}
	return tm, nil
}

func (a *app) newRenderCmd() *cobra.Command {
	var (
		dir    string
		inline string
	)
	cmd := &cobra.Command{
		Use:   "render [TEMPLATE]",
		Short: "Render a placeholder template filled with generated text",
		Long: `Render a template from the template directory. Without a name a random
*.tmpl.html template is chosen. --inline renders the given template text
instead, with the directory's partials available.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = a.config.Templates.TemplateDir
			}
			tm, err := a.newTemplateManager(cmd.Context(), dir)
			if err != nil {
				return err
			}
			data := TemplateInput{Corpus: a.config.Corpus.DisplayName()}

			if inline != "" {
				return tm.ExecuteTemplateString(cmd.OutOrStdout(), inline, data)
			}

			name := tm.GetRandomTemplate()
			if len(args) == 1 {
				name = args[0]
			}
			if name == "" {
				return fmt.Errorf("no templates found in %s", dir)
			}
			return tm.Execute(cmd.OutOrStdout(), name, data)
		},
	}
	cmd.Flags().StringVar(&dir, "templates", "", "template directory (default from config)")
	cmd.Flags().StringVar(&inline, "inline", "", "render this template text instead of a file")
	return cmd
}
