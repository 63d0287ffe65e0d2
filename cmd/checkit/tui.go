package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/checkit/internal/app"
	"github.com/nhle/checkit/internal/hooks"
)

func runTUI(ctx context.Context, flags globalFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := openRuntime(ctx, flags)
	if err != nil {
		return err
	}
	defer rt.Close()

	opts := hooks.Options{Timeout: rt.cfg.Hooks.Timeout, Logger: rt.logger}
	todos := hooks.NewTodos(rt.store, opts)
	items := hooks.NewChecklist(rt.store, opts)
	cats := hooks.NewCategories(rt.store, opts)
	defer todos.Close()
	defer items.Close()
	defer cats.Close()

	rt.restore(ctx)
	stop := hooks.Follow(ctx, rt.provider, todos, items, cats)
	defer stop()

	m := app.New(app.Options{
		Todos:      todos,
		Checklist:  items,
		Categories: cats,
		Auth:       rt.provider,
		Vault:      rt.vault,
		Config:     rt.cfg,
		ConfigPath: rt.configPath,
		Logger:     rt.logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}
	return nil
}
