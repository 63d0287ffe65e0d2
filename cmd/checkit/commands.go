package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/checkit/internal/auth"
	"github.com/nhle/checkit/internal/hooks"
	"github.com/nhle/checkit/internal/model"
	"github.com/nhle/checkit/internal/viewmodel"
)

var errSignedOut = errors.New("not signed in, run `checkit signin` first")

func signUpCmd(flags *globalFlags) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return authenticate(cmd, *flags, email, password, true)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email (prompted when empty)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when empty)")
	return cmd
}

func signInCmd(flags *globalFlags) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return authenticate(cmd, *flags, email, password, false)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email (prompted when empty)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when empty)")
	return cmd
}

func authenticate(cmd *cobra.Command, flags globalFlags, email, password string, signUp bool) error {
	ctx := cmd.Context()
	rt, err := openRuntime(ctx, flags)
	if err != nil {
		return err
	}
	defer rt.Close()

	if email == "" || password == "" {
		if err := promptCredentials(&email, &password); err != nil {
			return err
		}
	}

	var user *model.User
	if signUp {
		user, err = rt.provider.SignUp(ctx, email, password)
	} else {
		user, err = rt.provider.SignIn(ctx, email, password)
	}
	if err != nil {
		return err
	}

	rt.remember()
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", user.Email)
	if rt.cfg.Session.Backend == model.SessionBackendMemory {
		fmt.Fprintln(cmd.ErrOrStderr(), "note: the memory session backend does not keep sessions between runs")
	}
	return nil
}

func promptCredentials(email, password *string) error {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Value(email),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password),
	)).Run()
}

func signOutCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "End the remembered session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := openRuntime(ctx, *flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.restore(ctx)
			if err := rt.provider.SignOut(ctx); err != nil {
				return err
			}
			if rt.vault != nil {
				if err := rt.vault.ClearToken(); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func whoamiCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := openRuntime(ctx, *flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			user := rt.restore(ctx)
			if user == nil {
				return errSignedOut
			}
			fmt.Fprintln(cmd.OutOrStdout(), user.Email)
			return nil
		},
	}
}

func todosCmd(flags *globalFlags) *cobra.Command {
	var sortName string

	cmd := &cobra.Command{
		Use:   "todos",
		Short: "Print your todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := openRuntime(ctx, *flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			if sortName == "" {
				sortName = rt.cfg.Display.DefaultSort
			}
			key, err := viewmodel.ParseSortKey(sortName)
			if err != nil {
				return err
			}

			user := rt.restore(ctx)
			if user == nil {
				return errSignedOut
			}

			opts := hooks.Options{Timeout: rt.cfg.Hooks.Timeout, Logger: rt.logger}
			todos := hooks.NewTodos(rt.store, opts)
			defer todos.Close()
			cats := hooks.NewCategories(rt.store, opts)
			defer cats.Close()
			if err := fetchFor(ctx, user, todos, cats); err != nil {
				return err
			}

			printTodos(cmd.OutOrStdout(), todos.State().Items, cats.State().Items, key)
			return nil
		},
	}
	cmd.Flags().StringVarP(&sortName, "sort", "s", "", "Sort: newest, oldest, title_asc, title_desc")
	return cmd
}

func checklistCmd(flags *globalFlags) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Print your checklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := openRuntime(ctx, *flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			user := rt.restore(ctx)
			if user == nil {
				return errSignedOut
			}

			items := hooks.NewChecklist(rt.store, hooks.Options{Timeout: rt.cfg.Hooks.Timeout, Logger: rt.logger})
			defer items.Close()
			if err := fetchFor(ctx, user, items); err != nil {
				return err
			}

			printChecklist(cmd.OutOrStdout(), items.State().Items, label)
			return nil
		},
	}
	cmd.Flags().StringVar(&label, "category", viewmodel.AllLabel, "Only print items with this label")
	return cmd
}

// fetchFor scopes each hook to user and loads its items.
func fetchFor(ctx context.Context, user *model.User, hs ...hooks.Resetter) error {
	for _, h := range hs {
		if err := h.Reset(ctx, user); err != nil {
			return err
		}
	}
	return nil
}

func printTodos(w io.Writer, todos []model.Todo, cats []model.Category, key viewmodel.SortKey) {
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	var active, completed []model.Todo
	if key == viewmodel.SortNewest {
		active, completed = viewmodel.DisplayOrder(todos)
	} else {
		active, completed = viewmodel.Partition(todos)
		active, completed = viewmodel.Sort(active, key), viewmodel.Sort(completed, key)
	}

	line := func(t model.Todo) {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		suffix := ""
		if t.HasCategory() {
			if name, ok := names[*t.CategoryID]; ok {
				suffix = " (" + name + ")"
			}
		}
		fmt.Fprintf(w, "%s %s%s\n", mark, t.Title, suffix)
	}

	for _, t := range active {
		line(t)
	}
	if len(completed) > 0 {
		fmt.Fprintf(w, "\nCompleted Tasks (%d)\n", len(completed))
		for _, t := range completed {
			line(t)
		}
	}

	counts := viewmodel.Summary(todos)
	fmt.Fprintf(w, "\n%d active, %d completed\n", counts.Active, counts.Completed)
}

func printChecklist(w io.Writer, items []model.ChecklistItem, label string) {
	for _, g := range viewmodel.GroupChecklistByLabel(viewmodel.FilterByLabel(items, label)) {
		fmt.Fprintf(w, "%s (%d)\n", g.Label, len(g.Items))
		active, completed := viewmodel.Partition(g.Items)
		for _, it := range append(active, completed...) {
			mark := "[ ]"
			if it.Completed {
				mark = "[x]"
			}
			parts := []string{mark, it.Title}
			if it.Quantity != nil {
				parts = append(parts, "x"+*it.Quantity)
			}
			if it.Notes != nil {
				parts = append(parts, "- "+*it.Notes)
			}
			fmt.Fprintf(w, "  %s\n", strings.Join(parts, " "))
		}
	}
}

// Compile-time check that the provider satisfies the hooks' identity view.
var _ hooks.Identity = (*auth.Provider)(nil)
