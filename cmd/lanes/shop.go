package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-lanes/internal/progress"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "List cosmetics",
	Long: `Shows the cosmetic catalog for the current profile.
Coins are earned by collecting them during runs.

Examples:
  lanes shop
  lanes shop buy ember
  lanes shop equip ember`,
	Args: cobra.NoArgs,
	RunE: runShop,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <id>",
	Short: "Buy and equip a cosmetic",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopBuy,
}

var shopEquipCmd = &cobra.Command{
	Use:   "equip <id>",
	Short: "Equip an owned cosmetic",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopEquip,
}

func init() {
	shopCmd.AddCommand(shopBuyCmd)
	shopCmd.AddCommand(shopEquipCmd)
}

func runShop(_ *cobra.Command, _ []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	selected := a.ledger.SelectedCosmetic()
	fmt.Printf("Shop - %s has %d coins\n", flagProfile, a.ledger.TotalCoins())
	fmt.Println()
	fmt.Printf("  %-8s  %-8s  %-5s  %-6s  %s\n", "ID", "Name", "Face", "Cost", "Status")
	fmt.Printf("  %-8s  %-8s  %-5s  %-6s  %s\n", "--", "----", "----", "----", "------")
	for _, c := range a.ledger.Catalog() {
		status := ""
		switch {
		case c.ID == selected:
			status = "equipped"
		case a.ledger.Owns(c.ID):
			status = "owned"
		}
		fmt.Printf("  %-8s  %-8s  %-5s  %-6d  %s\n", c.ID, c.Name, c.Face, c.Cost, status)
	}
	return nil
}

func runShopBuy(_ *cobra.Command, args []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	id := args[0]
	if err := a.ledger.Purchase(id); err != nil {
		if errors.Is(err, progress.ErrInsufficientCoins) {
			return fmt.Errorf("not enough coins for %s (have %d)", id, a.ledger.TotalCoins())
		}
		return err
	}
	if err := a.ledger.Select(id); err != nil {
		return err
	}
	fmt.Printf("%s equipped, %d coins left\n", id, a.ledger.TotalCoins())
	return nil
}

func runShopEquip(_ *cobra.Command, args []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.ledger.Select(args[0]); err != nil {
		if errors.Is(err, progress.ErrNotOwned) {
			return fmt.Errorf("%s is not owned, try 'lanes shop buy %s'", args[0], args[0])
		}
		return err
	}
	fmt.Printf("%s equipped\n", args[0])
	return nil
}
