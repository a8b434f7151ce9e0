package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/ragdesk/internal/core"
)

const maxListedModels = 25

type ModelsCommand struct {
	cfg       core.ProviderConfig
	lister    core.ModelLister
	formatter *ResponseFormatter
}

func NewModelsCommand(cfg core.ProviderConfig, lister core.ModelLister) *ModelsCommand {
	return &ModelsCommand{cfg: cfg, lister: lister, formatter: NewResponseFormatter()}
}

func (c *ModelsCommand) Name() string { return "models" }

func (c *ModelsCommand) Description() string {
	return "Show the current model and what the provider offers"
}

func (c *ModelsCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	sections := []string{
		c.formatter.Info("Current Model"),
		c.formatter.Label("Provider", c.cfg.GetProvider()),
		c.formatter.Label("Model", c.cfg.GetModel()),
	}

	models, err := c.lister.Models(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list models: %w", err)
	}

	items := make([]string, 0, min(len(models), maxListedModels))
	for i, m := range models {
		if i == maxListedModels {
			items = append(items, fmt.Sprintf("… and %d more", len(models)-maxListedModels))
			break
		}
		items = append(items, fmt.Sprintf("`%s`", m.ID))
	}
	if len(items) > 0 {
		sections = append(sections, c.formatter.Section("📚", "Available", c.formatter.List(items)))
	}

	return c.formatter.Combine(sections...), nil
}
