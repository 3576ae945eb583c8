package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"daily-word-bot/internal/model"
)

func newHintTypeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hinttype",
		Short: "Hint type catalog commands",
	}

	cmd.AddCommand(newHintTypeListCmd(opts))
	cmd.AddCommand(newHintTypeCreateCmd(opts))
	cmd.AddCommand(newHintTypeStateCmd(opts, "delete", "Soft-delete a hint type"))
	cmd.AddCommand(newHintTypeStateCmd(opts, "reactivate", "Reactivate a deleted hint type"))
	cmd.AddCommand(newHintTypeUpdateCmd(opts))
	cmd.AddCommand(newHintTypeSeedCmd(opts))

	return cmd
}

func newHintTypeListCmd(opts *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List hint types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			types, err := opts.app.Catalog.List(ctx, all)
			if err != nil {
				return err
			}
			views := make([]HintTypeView, len(types))
			for i, ht := range types {
				views[i] = newHintTypeView(ht)
			}
			opts.out(cmd).Print(views)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include deleted hint types")

	return cmd
}

func newHintTypeCreateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create <code> [display name]",
		Short: "Create a hint type",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			ht, err := opts.app.Catalog.Create(ctx, args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			opts.out(cmd).Print(newHintTypeView(ht))
			return nil
		},
	}
}

func newHintTypeStateCmd(opts *rootOptions, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <code>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			var (
				ht  *model.HintType
				err error
			)
			if use == "delete" {
				ht, err = opts.app.Catalog.SoftDelete(ctx, args[0])
			} else {
				ht, err = opts.app.Catalog.Reactivate(ctx, args[0])
			}
			if err != nil {
				return err
			}
			opts.out(cmd).Print(newHintTypeView(ht))
			return nil
		},
	}
}

func newHintTypeUpdateCmd(opts *rootOptions) *cobra.Command {
	var newCode, newName string

	cmd := &cobra.Command{
		Use:   "update <code>",
		Short: "Rename a hint type or change its display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var codePtr, namePtr *string
			if cmd.Flags().Changed("code") {
				codePtr = &newCode
			}
			if cmd.Flags().Changed("name") {
				namePtr = &newName
			}
			if codePtr == nil && namePtr == nil {
				return errors.New("nothing to update: pass --code and/or --name")
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			ht, err := opts.app.Catalog.Update(ctx, args[0], codePtr, namePtr)
			if err != nil {
				return err
			}
			opts.out(cmd).Print(newHintTypeView(ht))
			return nil
		},
	}

	cmd.Flags().StringVar(&newCode, "code", "", "New code")
	cmd.Flags().StringVar(&newName, "name", "", "New display name")

	return cmd
}

func newHintTypeSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default hint types on an empty catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			n, err := opts.app.Catalog.SeedDefaults(ctx)
			if err != nil {
				return err
			}
			opts.out(cmd).PrintMessage(fmt.Sprintf("%d hint types created", n))
			return nil
		},
	}
}
