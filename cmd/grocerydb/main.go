package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"grocerydb/internal/config"
	"grocerydb/internal/database"
	"grocerydb/internal/grocery"
	"grocerydb/internal/logging"
	"grocerydb/internal/printer"
	"grocerydb/internal/reconcile"
	"grocerydb/internal/store"
	"grocerydb/internal/upc"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app wires the configuration, databases, and collaborators for one
// command invocation. The caller must defer Close.
type app struct {
	cfg       *config.Config
	service   *grocery.Service
	inventory *store.InventoryStore
	lists     *store.DefaultListStore
	history   *store.HistoryStore

	currentDB *sql.DB
	historyDB *sql.DB
	device    *os.File
}

func newApp() (*app, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}

	cfg, created, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if created {
		fmt.Fprintf(os.Stderr, "Wrote default configuration to %s\n", path)
	}

	logger := logging.Setup(os.Stderr, cfg.LogLevel)

	if err := os.MkdirAll(cfg.Database.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	a := &app{cfg: cfg}

	a.currentDB, err = database.OpenCurrent(filepath.Join(cfg.Database.DataDir, "current.db"))
	if err != nil {
		return nil, fmt.Errorf("open current db: %w", err)
	}
	a.historyDB, err = database.OpenHistory(filepath.Join(cfg.Database.DataDir, "history.db"))
	if err != nil {
		a.currentDB.Close()
		return nil, fmt.Errorf("open history db: %w", err)
	}

	a.inventory = store.NewInventoryStore(a.currentDB)
	a.lists = store.NewDefaultListStore(a.currentDB)
	a.history = store.NewHistoryStore(a.historyDB)

	renderCfg := printer.Config{Profile: cfg.Printer.Profile, CharWidth: cfg.Printer.CharWidth}
	var renderer grocery.Renderer
	if cfg.Printer.Enabled {
		a.device, err = os.OpenFile(cfg.Printer.Device, os.O_WRONLY, 0)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("open printer device %s: %w", cfg.Printer.Device, err)
		}
		renderer = printer.NewEscpos(a.device, renderCfg)
	} else {
		renderer = printer.NewText(os.Stdout, renderCfg)
	}

	var lookup upc.Lookup = upc.Noop{}
	if cfg.UPC.Enabled {
		lookup = upc.NewClient(cfg.UPC.BaseURL, logger)
	}

	a.service = grocery.NewService(a.inventory, a.lists, a.history, lookup, renderer, logger)
	return a, nil
}

func (a *app) Close() {
	if a.device != nil {
		a.device.Close()
	}
	if a.historyDB != nil {
		a.historyDB.Close()
	}
	if a.currentDB != nil {
		a.currentDB.Close()
	}
}

var rootCmd = &cobra.Command{
	Use:   "grocerydb",
	Short: "Household grocery inventory and shopping list tracker",
}

// config command

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		if err := config.Init(path, config.Default(filepath.Dir(path))); err != nil {
			return err
		}
		fmt.Printf("Configuration initialized at %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		cfg, err := config.ReadFromFile(path)
		if err != nil {
			return err
		}
		fmt.Printf("Configuration from %s:\n\n", path)
		return config.Write(os.Stdout, cfg)
	},
}

// inventory command

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Adjust and inspect on-hand items",
}

var inventoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add stock, by name or by scanned UPC",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		code, _ := cmd.Flags().GetString("upc")
		qty, _ := cmd.Flags().GetInt("qty")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		rec, err := a.service.AddItem(cmd.Context(), name, code, qty)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d on hand\n", rec.Name, rec.Quantity)
		return nil
	},
}

var inventoryRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove stock (never below zero)",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		qty, _ := cmd.Flags().GetInt("qty")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		rec, err := a.service.RemoveItem(name, qty)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d on hand\n", rec.Name, rec.Quantity)
		return nil
	},
}

var inventoryReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the full inventory report",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		return a.service.InventoryReport()
	},
}

var inventoryEditCmd = &cobra.Command{
	Use:   "edit NAME",
	Short: "Rename an item or change its description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		newName, _ := cmd.Flags().GetString("new-name")
		description, _ := cmd.Flags().GetString("description")
		if newName == "" {
			newName = args[0]
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		// An omitted description keeps the current one.
		if !cmd.Flags().Changed("description") {
			rec, err := a.inventory.Get(args[0])
			if err != nil {
				return err
			}
			if rec != nil {
				description = rec.Description
			}
		}

		if err := a.inventory.UpdateDetails(args[0], newName, description); err != nil {
			return err
		}
		fmt.Printf("Updated %s\n", newName)
		return nil
	},
}

var inventoryDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Permanently remove an item record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.inventory.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

// list command

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Manage default shopping lists",
}

var listCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new default list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		list, err := a.lists.Create(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created list %q (%s)\n", list.Name, list.UUID)
		return nil
	},
}

var listAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add or update an item target on a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, _ := cmd.Flags().GetString("item")
		qty, _ := cmd.Flags().GetInt("qty")
		code, _ := cmd.Flags().GetString("upc")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var codePtr *string
		if code != "" {
			codePtr = &code
		}
		if err := a.lists.AddEntry(args[0], item, qty, codePtr); err != nil {
			return err
		}
		fmt.Printf("%s: %s x%d\n", args[0], item, qty)
		return nil
	},
}

var listRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove an item from a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, _ := cmd.Flags().GetString("item")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.lists.RemoveEntry(args[0], item); err != nil {
			return err
		}
		fmt.Printf("Removed %s from %s\n", item, args[0])
		return nil
	},
}

var listDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a default list and its entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.lists.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted list %s\n", args[0])
		return nil
	},
}

var listShowCmd = &cobra.Command{
	Use:   "show [NAME]",
	Short: "Render one default list, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 1 {
			_, err := a.service.ShowList(args[0])
			return err
		}
		return a.service.DefaultListsReport()
	},
}

// generate command

var generateCmd = &cobra.Command{
	Use:   "generate LIST [LIST...]",
	Short: "Generate, archive, and print a shopping list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		extraFlags, _ := cmd.Flags().GetStringArray("extra")
		extras, err := parseExtras(extraFlags)
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		archived, err := a.service.GenerateList(args, extras)
		if err != nil {
			return err
		}
		if archived == nil {
			fmt.Println("Everything is fully stocked, nothing to buy.")
			return nil
		}
		fmt.Printf("Archived shopping list %s (%d items)\n", archived.UUID, len(archived.Entries))
		return nil
	},
}

// history command

var historyCmd = &cobra.Command{
	Use:   "history QUERY",
	Short: "Reprint archived lists by id or YYYY-MM-DD date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		lists, err := a.service.Reprint(args[0])
		if err != nil {
			return err
		}
		if len(lists) == 0 {
			fmt.Println("No archived lists match.")
		}
		return nil
	},
}

// parseExtras turns repeated "item=qty" flags into ad-hoc requests.
func parseExtras(flags []string) ([]reconcile.Extra, error) {
	var extras []reconcile.Extra
	for _, raw := range flags {
		name, qtyStr, ok := strings.Cut(raw, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --extra %q, want item=qty", raw)
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("invalid --extra quantity in %q", raw)
		}
		extras = append(extras, reconcile.Extra{ItemName: name, Quantity: qty})
	}
	return extras, nil
}

func init() {
	configCmd.AddCommand(configInitCmd, configShowCmd)

	inventoryAddCmd.Flags().String("name", "", "item name")
	inventoryAddCmd.Flags().String("upc", "", "scanned UPC code")
	inventoryAddCmd.Flags().Int("qty", 1, "quantity to add")
	inventoryRemoveCmd.Flags().String("name", "", "item name")
	inventoryRemoveCmd.Flags().Int("qty", 1, "quantity to remove")
	inventoryEditCmd.Flags().String("new-name", "", "replacement item name")
	inventoryEditCmd.Flags().String("description", "", "replacement description")
	inventoryCmd.AddCommand(inventoryAddCmd, inventoryRemoveCmd, inventoryReportCmd, inventoryEditCmd, inventoryDeleteCmd)

	listAddCmd.Flags().String("item", "", "item name")
	listAddCmd.Flags().Int("qty", 1, "target quantity")
	listAddCmd.Flags().String("upc", "", "optional UPC code")
	listRemoveCmd.Flags().String("item", "", "item name")
	listCmd.AddCommand(listCreateCmd, listAddCmd, listRemoveCmd, listDeleteCmd, listShowCmd)

	generateCmd.Flags().StringArray("extra", nil, "ad-hoc item=qty request, repeatable")

	rootCmd.AddCommand(configCmd, inventoryCmd, listCmd, generateCmd, historyCmd)
}
