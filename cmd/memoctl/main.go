// memoctl operates a memo session directly against a local store: the same
// controller the service uses, driven from the command line.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/memoflow/memoflow/internal/config"
	"github.com/memoflow/memoflow/internal/exporter"
	"github.com/memoflow/memoflow/internal/factory"
	"github.com/memoflow/memoflow/internal/identity"
	"github.com/memoflow/memoflow/internal/identity/static"
	"github.com/memoflow/memoflow/internal/logger"
	"github.com/memoflow/memoflow/internal/model"
	"github.com/memoflow/memoflow/internal/services"
	"github.com/memoflow/memoflow/internal/session"
)

var (
	credentialFlag string
	categoryFlag   string
	rootCmd        = &cobra.Command{
		Use:   "memoctl",
		Short: "CLI for the memoflow memo store",
	}
)

// newSession signs in and returns a controller with a loaded working set.
func newSession(ctx context.Context) (*session.Controller, error) {
	log := logger.New("memoctl")

	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	provider, err := factory.NewIdentityProvider(cfg, log)
	if err != nil {
		return nil, err
	}
	sum, err := factory.NewSummarizer(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	ctrl := session.NewController(services.NewMemoService(st), sum, exporter.NewPDF(), log)
	broker := identity.NewBroker(provider)
	broker.Subscribe(func(ident *model.Identity) {
		ctrl.OnIdentityChanged(ctx, ident)
	})
	if _, err := broker.SignIn(ctx, credentialFlag); err != nil {
		log.Error().Err(err).Msg("sign-in failed")
		return nil, err
	}
	return ctrl, nil
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&credentialFlag, "credential", "c",
		static.LocalDevCredential, "Identity credential (ID token for the google provider)")

	addCmd := &cobra.Command{
		Use:   "add [title] [body]",
		Short: "Save a new memo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl, err := newSession(ctx)
			if err != nil {
				return err
			}
			category, err := model.ParseCategory(categoryFlag)
			if err != nil {
				return err
			}
			ctrl.SetDraft(model.Draft{Title: args[0], Body: args[1], Category: category})
			if err := ctrl.Save(ctx); err != nil {
				return err
			}
			memos := ctrl.WorkingSet()
			if len(memos) > 0 {
				fmt.Println(memos[0].ID)
			}
			return nil
		},
	}
	addCmd.Flags().StringVar(&categoryFlag, "category", string(model.CategoryBusiness), "Memo category (business|personal)")
	rootCmd.AddCommand(addCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List memos, most recently touched first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl, err := newSession(ctx)
			if err != nil {
				return err
			}
			keyword, _ := cmd.Flags().GetString("keyword")
			rawCategory, _ := cmd.Flags().GetString("category")
			rawPeriod, _ := cmd.Flags().GetString("period")
			fc, err := model.ParseFilterCategory(rawCategory)
			if err != nil {
				return err
			}
			period, err := model.ParsePeriod(rawPeriod)
			if err != nil {
				return err
			}
			ctrl.SetFilter(model.FilterState{Keyword: keyword, Category: fc, Period: period})
			for _, m := range ctrl.Visible() {
				fmt.Printf("%s\t%s\t%s\t%s\n", m.ID, m.Category, m.EffectiveTime().Format("2006-01-02 15:04"), m.Title)
			}
			return nil
		},
	}
	listCmd.Flags().StringP("keyword", "k", "", "Substring to match in title or body")
	listCmd.Flags().String("category", "all", "Filter category (all|business|personal)")
	listCmd.Flags().String("period", "all", "Filter period (all|today|this-week|this-month)")
	rootCmd.AddCommand(listCmd)

	editCmd := &cobra.Command{
		Use:   "edit [id] [title] [body]",
		Short: "Update a memo's fields",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl, err := newSession(ctx)
			if err != nil {
				return err
			}
			if err := ctrl.BeginEdit(args[0]); err != nil {
				return err
			}
			category, err := model.ParseCategory(categoryFlag)
			if err != nil {
				return err
			}
			ctrl.SetEditFields(args[1], args[2], category)
			return ctrl.CommitEdit(ctx)
		},
	}
	editCmd.Flags().StringVar(&categoryFlag, "category", string(model.CategoryBusiness), "Memo category (business|personal)")
	rootCmd.AddCommand(editCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a memo permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl, err := newSession(ctx)
			if err != nil {
				return err
			}
			return ctrl.Delete(ctx, args[0])
		},
	}
	rootCmd.AddCommand(deleteCmd)

	exportCmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export a memo as PDF into the current directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl, err := newSession(ctx)
			if err != nil {
				return err
			}
			data, filename, err := ctrl.Export(args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(filename, data, 0o644); err != nil {
				return err
			}
			fmt.Println(filename)
			return nil
		},
	}
	rootCmd.AddCommand(exportCmd)

	summarizeCmd := &cobra.Command{
		Use:   "summarize [id]",
		Short: "Summarize a memo body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl, err := newSession(ctx)
			if err != nil {
				return err
			}
			var body string
			for _, m := range ctrl.WorkingSet() {
				if m.ID == args[0] {
					body = m.Body
				}
			}
			if err := ctrl.Summarize(ctx, args[0], body); err != nil {
				return err
			}
			if s, ok := ctrl.Summary(args[0]); ok {
				fmt.Println(s)
			}
			return nil
		},
	}
	rootCmd.AddCommand(summarizeCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
