package cli

import (
	"warehouse-pos/internal/domain"

	"github.com/spf13/cobra"
)

func (a *App) categoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage product categories",
	}

	var name, description, search string

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := &domain.Category{Name: name, Description: description}
			if err := a.categories.Add(cmd.Context(), c); err != nil {
				return err
			}
			return respond(cmd, c)
		},
	}
	add.Flags().StringVar(&name, "name", "", "category name (2-100 characters)")
	add.Flags().StringVar(&description, "description", "", "free-form description")

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories, optionally filtered by a search term",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return respond(cmd, a.categories.Search(search))
		},
	}
	list.Flags().StringVar(&search, "search", "", "case-insensitive match on name or description")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			c, err := a.categories.GetByID(id)
			if err != nil {
				return err
			}
			return respond(cmd, c)
		},
	}

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Change a category's name or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			c, err := a.categories.GetByID(id)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				c.Name = name
			}
			if cmd.Flags().Changed("description") {
				c.Description = description
			}
			if err := a.categories.Update(cmd.Context(), c); err != nil {
				return err
			}
			return respond(cmd, c)
		},
	}
	update.Flags().StringVar(&name, "name", "", "new name")
	update.Flags().StringVar(&description, "description", "", "new description")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			if err := a.categories.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return respond(cmd, map[string]int64{"deleted": id})
		},
	}

	cmd.AddCommand(add, list, get, update, del)
	return cmd
}
