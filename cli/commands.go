// Package cli provides the Cobra-based CLI for techshop.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"techshop/catalog"
	"techshop/domain"
	"techshop/shop"
	"techshop/storage"
)

// quickAmounts are the preset deposit values offered by the wallet UI.
var quickAmounts = []int64{1000, 5000, 10000, 50000}

var (
	rootCmd = &cobra.Command{
		Use:   "techshop",
		Short: "A demo storefront: catalog, cart, wallet and mock auth",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// IMPORTANT: allow tests to inject the service
			if shopService != nil {
				return nil
			}

			if cfg := viper.GetString("config"); cfg != "" {
				viper.SetConfigFile(cfg)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}

			lvlStr := strings.ToLower(viper.GetString("log-level"))
			lvl := slog.LevelInfo
			switch lvlStr {
			case "debug":
				lvl = slog.LevelDebug
			case "warn", "warning":
				lvl = slog.LevelWarn
			case "error":
				lvl = slog.LevelError
			}
			slog.SetDefault(slog.New(
				slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
			))

			kv, err := storage.Open(
				viper.GetString("store"),
				viper.GetString("store-file"),
			)
			if err != nil {
				return err
			}

			cat := catalog.Default()
			if path := viper.GetString("catalog"); path != "" {
				cat, err = catalog.Load(path)
				if err != nil {
					return err
				}
			}

			shopService = shop.New(shop.Config{
				Catalog:      cat,
				Store:        kv,
				StartBalance: viper.GetInt64("start-balance"),
			})
			return nil
		},
	}

	shopService *shop.Shop
)

func printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func printProducts(products []domain.Product, output string) {
	if output == "json" {
		printJSON(products)
		return
	}
	for _, p := range products {
		price := strconv.FormatInt(p.EffectiveUnitPrice(), 10)
		if p.Discount > 0 {
			price = fmt.Sprintf("%d (-%d%%)", p.EffectiveUnitPrice(), p.Discount)
		}
		fmt.Printf("%d | %s | %s | %s\n", p.ID, p.Name, price, p.Category)
	}
}

func init() {
	// shell
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode",
		Long:  "Interactive shell mode. Cart and wallet live for the shell session; the login persists across runs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := bufio.NewReader(os.Stdin)
			for {
				fmt.Print("techshop> ")
				line, err := r.ReadString('\n')
				if err != nil {
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}
				rootCmd.SetArgs(strings.Fields(line))
				if err := rootCmd.Execute(); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
				rootCmd.SetArgs(nil)
			}
		},
	}
	rootCmd.AddCommand(shellCmd)

	rootCmd.PersistentFlags().String("store", "file", "storage backend: memory|file")
	rootCmd.PersistentFlags().String("store-file", "data/techshop.json", "storage file path")
	rootCmd.PersistentFlags().String("catalog", "", "catalog file (json or yaml); empty uses the built-in catalog")
	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")
	rootCmd.PersistentFlags().Int64("start-balance", 50000, "wallet start balance")

	viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("store-file", rootCmd.PersistentFlags().Lookup("store-file"))
	viper.BindPFlag("catalog", rootCmd.PersistentFlags().Lookup("catalog"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("start-balance", rootCmd.PersistentFlags().Lookup("start-balance"))
	viper.SetEnvPrefix("TECHSHOP")
	viper.AutomaticEnv()

	// catalog
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the product catalog",
	}
	var listOutput string
	catalogListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all products",
		RunE: func(cmd *cobra.Command, args []string) error {
			printProducts(shopService.Catalog.Products(), listOutput)
			return nil
		},
	}
	catalogListCmd.Flags().StringVar(&listOutput, "output", "", "output format")
	catalogCmd.AddCommand(catalogListCmd)

	var searchOutput string
	catalogSearchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search products by name, description or category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			found := shopService.Catalog.Search(query)
			printProducts(found, searchOutput)
			if query != "" {
				fmt.Printf("found: %d\n", len(found))
			}
			return nil
		},
	}
	catalogSearchCmd.Flags().StringVar(&searchOutput, "output", "", "output format")
	catalogCmd.AddCommand(catalogSearchCmd)
	rootCmd.AddCommand(catalogCmd)

	// cart
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}

	var confirmDelay time.Duration
	cartAddCmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a catalog product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id: %s", args[0])
			}
			ctx := context.Background()
			if confirmDelay > 0 {
				p, err := shopService.Catalog.Get(id)
				if err != nil {
					return err
				}
				if err := shopService.Cart.AddAfter(ctx, confirmDelay, p); err != nil {
					return err
				}
				fmt.Printf("added to cart: %s\n", p.Name)
				return nil
			}
			start := time.Now()
			p, err := shopService.AddToCart(ctx, id)
			if err != nil {
				slog.Error("cart add failed", "product_id", id, "error", err)
				return err
			}
			slog.Info("cart add", "product_id", id, "duration_ms", time.Since(start).Milliseconds())
			fmt.Printf("added to cart: %s\n", p.Name)
			return nil
		},
	}
	cartAddCmd.Flags().DurationVar(&confirmDelay, "confirm-delay", 0, "delay before the add is confirmed")
	cartCmd.AddCommand(cartAddCmd)

	cartRemoveCmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove an item from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id: %s", args[0])
			}
			if err := shopService.Cart.Remove(context.Background(), id); err != nil {
				return err
			}
			fmt.Println("removed")
			return nil
		},
	}
	cartCmd.AddCommand(cartRemoveCmd)

	cartSetCmd := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set an item's quantity; 0 removes the item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id: %s", args[0])
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity: %s", args[1])
			}
			if err := shopService.Cart.SetQuantity(context.Background(), id, qty); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
	cartCmd.AddCommand(cartSetCmd)

	cartClearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := shopService.Cart.Clear(context.Background()); err != nil {
				return err
			}
			fmt.Println("cart cleared")
			return nil
		},
	}
	cartCmd.AddCommand(cartClearCmd)

	var cartShowOutput string
	cartShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the cart contents and totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			items := shopService.Cart.Items()
			if cartShowOutput == "json" {
				printJSON(items)
				return nil
			}
			if len(items) == 0 {
				fmt.Println("cart is empty")
				return nil
			}
			for _, item := range items {
				fmt.Printf("%d | %s | x%d | %d\n",
					item.Product.ID, item.Product.Name, item.Quantity, item.LineTotal())
			}
			fmt.Printf("items: %d, total: %d\n",
				shopService.Cart.TotalItems(), shopService.Cart.TotalPrice())
			return nil
		},
	}
	cartShowCmd.Flags().StringVar(&cartShowOutput, "output", "", "output format")
	cartCmd.AddCommand(cartShowCmd)
	rootCmd.AddCommand(cartCmd)

	// wallet
	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage the wallet",
	}

	walletBalanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(shopService.Wallet.Balance())
			return nil
		},
	}
	walletCmd.AddCommand(walletBalanceCmd)

	walletDepositCmd := &cobra.Command{
		Use:   "deposit <amount>",
		Short: "Add funds to the wallet",
		Long:  fmt.Sprintf("Add funds to the wallet. Quick amounts: %v.", quickAmounts),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount: %s", args[0])
			}
			txn, err := shopService.Wallet.Deposit(context.Background(), amount)
			if err != nil {
				slog.Error("deposit failed", "amount", amount, "error", err)
				return err
			}
			slog.Info("deposit", "amount", amount, "transaction_id", txn.ID)
			printJSON(txn)
			return nil
		},
	}
	walletCmd.AddCommand(walletDepositCmd)

	var historyOutput string
	walletHistoryCmd := &cobra.Command{
		Use:   "history",
		Short: "Show the transaction log, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			txns := shopService.Wallet.Transactions()
			if historyOutput == "json" {
				printJSON(txns)
				return nil
			}
			for _, txn := range txns {
				sign := ""
				if txn.Amount > 0 {
					sign = "+"
				}
				fmt.Printf("%d | %s | %s%d | %s | %s\n",
					txn.ID, txn.Type, sign, txn.Amount, txn.Description,
					txn.Date.Format(time.RFC3339))
			}
			return nil
		},
	}
	walletHistoryCmd.Flags().StringVar(&historyOutput, "output", "", "output format")
	walletCmd.AddCommand(walletHistoryCmd)
	rootCmd.AddCommand(walletCmd)

	// checkout
	checkoutCmd := &cobra.Command{
		Use:   "checkout",
		Short: "Debit the cart total from the wallet and clear the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			receipt, err := shopService.Checkout(context.Background())
			if err != nil {
				if domain.IsInsufficientFundsError(err) || domain.IsEmptyCartError(err) {
					fmt.Fprintln(os.Stderr, err)
					return nil
				}
				return err
			}
			slog.Info("checkout",
				"order_id", receipt.OrderID,
				"total", receipt.Total,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			printJSON(receipt)
			return nil
		},
	}
	rootCmd.AddCommand(checkoutCmd)

	// auth
	var loginEmail, loginPassword string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in (any non-empty email/password pair is accepted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := shopService.Login(context.Background(), loginEmail, loginPassword)
			if err != nil {
				return err
			}
			slog.Info("login", "email", u.Email)
			fmt.Printf("welcome, %s\n", u.Name)
			return nil
		},
	}
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password")
	rootCmd.AddCommand(loginCmd)

	var regName, regEmail, regPassword string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := shopService.Register(context.Background(), regName, regEmail, regPassword)
			if err != nil {
				return err
			}
			slog.Info("register", "email", u.Email)
			fmt.Printf("welcome, %s\n", u.Name)
			return nil
		},
	}
	registerCmd.Flags().StringVar(&regName, "name", "", "name")
	registerCmd.Flags().StringVar(&regEmail, "email", "", "email")
	registerCmd.Flags().StringVar(&regPassword, "password", "", "password")
	rootCmd.AddCommand(registerCmd)

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Log out and erase the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !shopService.Session.IsAuthenticated() {
				return errors.New("not logged in")
			}
			if err := shopService.Logout(context.Background()); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
	rootCmd.AddCommand(logoutCmd)

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, ok := shopService.Session.Current()
			if !ok {
				fmt.Println("not logged in")
				return nil
			}
			printJSON(u)
			return nil
		},
	}
	rootCmd.AddCommand(whoamiCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
