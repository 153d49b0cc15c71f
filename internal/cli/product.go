package cli

import (
	"warehouse-pos/internal/domain"

	"github.com/spf13/cobra"
)

type productFlags struct {
	name, description, price, sku string
	quantity                      int
	categoryID                    int64
}

func (f *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "product name (2-100 characters)")
	cmd.Flags().StringVar(&f.description, "description", "", "free-form description")
	cmd.Flags().StringVar(&f.price, "price", "", "unit price, e.g. 9.99")
	cmd.Flags().IntVar(&f.quantity, "quantity", 0, "units on hand")
	cmd.Flags().Int64Var(&f.categoryID, "category", 0, "category id")
	cmd.Flags().StringVar(&f.sku, "sku", "", "stock keeping unit, A-Z 0-9 and dashes")
}

// apply copies the flags set on cmd onto p.
func (f *productFlags) apply(cmd *cobra.Command, p *domain.Product) error {
	changed := cmd.Flags().Changed
	if changed("name") {
		p.Name = f.name
	}
	if changed("description") {
		p.Description = f.description
	}
	if changed("price") {
		price, err := parsePrice(f.price)
		if err != nil {
			return err
		}
		p.Price = price
	}
	if changed("quantity") {
		p.Quantity = f.quantity
	}
	if changed("category") {
		p.CategoryID = f.categoryID
	}
	if changed("sku") {
		p.SKU = f.sku
	}
	return nil
}

func (a *App) productCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage products and stock",
	}

	var addFlags, updateFlags productFlags

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := &domain.Product{}
			if err := addFlags.apply(cmd, p); err != nil {
				return err
			}
			if err := a.products.Add(cmd.Context(), p); err != nil {
				return err
			}
			return respond(cmd, p)
		},
	}
	addFlags.register(add)

	var search string
	var categoryID int64
	var lowStock int
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products := a.products.Search(search)
			if cmd.Flags().Changed("category") {
				products = intersect(products, a.products.ByCategory(categoryID))
			}
			if cmd.Flags().Changed("low-stock") {
				products = intersect(products, a.products.LowStock(lowStock))
			}
			return respond(cmd, products)
		},
	}
	list.Flags().StringVar(&search, "search", "", "case-insensitive match on name, description or SKU")
	list.Flags().Int64Var(&categoryID, "category", 0, "only products in this category")
	list.Flags().IntVar(&lowStock, "low-stock", 0, "only products with at most this many units")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			p, err := a.products.GetByID(id)
			if err != nil {
				return err
			}
			return respond(cmd, p)
		},
	}

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Change a product's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			p, err := a.products.GetByID(id)
			if err != nil {
				return err
			}
			if err := updateFlags.apply(cmd, p); err != nil {
				return err
			}
			if err := a.products.Update(cmd.Context(), p); err != nil {
				return err
			}
			return respond(cmd, p)
		},
	}
	updateFlags.register(update)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			if err := a.products.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return respond(cmd, map[string]int64{"deleted": id})
		},
	}

	var delta int
	stock := &cobra.Command{
		Use:   "stock ID --delta N",
		Short: "Adjust units on hand; negative for removal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			p, err := a.products.UpdateStock(cmd.Context(), id, delta)
			if err != nil {
				return err
			}
			return respond(cmd, p)
		},
	}
	stock.Flags().IntVar(&delta, "delta", 0, "signed change in units")
	_ = stock.MarkFlagRequired("delta")

	cmd.AddCommand(add, list, get, update, del, stock)
	return cmd
}

// intersect keeps the products of base, in order, that also appear in filter.
func intersect(base, filter []domain.Product) []domain.Product {
	keep := make(map[int64]bool, len(filter))
	for _, p := range filter {
		keep[p.ID] = true
	}
	out := []domain.Product{}
	for _, p := range base {
		if keep[p.ID] {
			out = append(out, p)
		}
	}
	return out
}
