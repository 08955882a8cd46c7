package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/reel/internal/adapter/source"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/render"
	"github.com/mmcdole/reel/internal/service"
)

func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Enter and validate a catalog API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()
			return runSetupFlow(a.cfg, a.logger)
		},
	}
}

func browseCmd() *cobra.Command {
	var pages int

	cmd := &cobra.Command{
		Use:   "browse <address>",
		Short: "Print a view without the terminal UI",
		Example: "  reel browse '?q=dune'\n" +
			"  reel browse 'reel://?view=favorites'\n" +
			"  reel browse '?id=438631'",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			catalog, err := source.NewClientFromConfig(a.cfg, a.logger)
			if err != nil {
				return err
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			out := render.NewText(cmd.OutOrStdout())
			browser := a.newBrowser(catalog, st, out, service.NewInlineScheduler(ctx))

			// Every job finishes before Schedule returns, so each call below
			// has printed its results by the time it returns
			browser.Start(args[0])
			for loaded := 1; loaded < pages && browser.Router.HasMore(); loaded++ {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if browser.Orchestrator.Failed() {
					break
				}
				browser.Router.LoadMore()
			}
			if browser.Orchestrator.Failed() {
				return errPageFailed
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&pages, "pages", "n", 1, "number of pages to load for remote views")
	return cmd
}

var errPageFailed = errors.New("failed to load a page from the catalog (see the log for details)")

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "list favorites|watched",
		Short:     "Print a local collection",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"favorites", "watched"},
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := localView(args[0])
			if err != nil {
				return err
			}

			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			collection, _ := service.CollectionFor(view)
			items, err := service.NewAnnotationService(st, a.logger).List(collection)
			if err != nil {
				return err
			}

			state := domain.NewViewState()
			state.Kind = view

			out := render.NewText(cmd.OutOrStdout())
			out.SetHeader(service.HeaderFor(state))
			if len(items) == 0 {
				out.RenderEmptyState(service.EmptyListMessage(view))
				return nil
			}
			presenter := a.presenter()
			out.AppendCards(presenter.Cards(items))
			return nil
		},
	}
}

// localView maps a collection name onto its view
func localView(name string) (domain.ViewKind, error) {
	c, err := service.ParseCollection(name)
	if err != nil {
		return 0, err
	}
	switch c {
	case service.Favorites:
		return domain.ViewFavorites, nil
	case service.Watched:
		return domain.ViewWatched, nil
	default:
		return 0, fmt.Errorf("%w: %q has no list view", domain.ErrUnknownCollection, name)
	}
}

func noteCmd() *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "note <id> [text]",
		Short: "Show or set the private note for an item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("%w: %q", domain.ErrInvalidID, args[0])
			}

			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			annotations := service.NewAnnotationService(st, a.logger)
			out := cmd.OutOrStdout()

			text := strings.Join(args[1:], " ")
			if remove {
				text = ""
			} else if text == "" {
				note := annotations.Note(id)
				if note == "" {
					fmt.Fprintf(out, "No note for %d\n", id)
					return nil
				}
				fmt.Fprintln(out, note)
				return nil
			}

			if err := annotations.SetNote(id, text); err != nil {
				return err
			}
			if remove {
				fmt.Fprintln(out, "Note removed")
				return nil
			}
			fmt.Fprintln(out, "Note saved!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "clear", false, "remove the note")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored catalog API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := service.NewSessionService(a.logger).Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out. Run 'reel setup' to set up again.")
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "reel %s\n", Version)
		},
	}
}
