// Command skfarms is the SK Organic Farms storefront CLI. It plays the role
// of the app's screens: every cart and account mutation goes through the
// session store, which talks to the commerce API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/pkannaiyan/sk-organic-farms/internal/commerce"
	"github.com/pkannaiyan/sk-organic-farms/internal/config"
	"github.com/pkannaiyan/sk-organic-farms/internal/payment"
	"github.com/pkannaiyan/sk-organic-farms/internal/persist"
	"github.com/pkannaiyan/sk-organic-farms/internal/store"
)

const passwordMinimum = 8

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	client := commerce.New(cfg.APIBaseURL, cfg.ProjectKey, cfg.HTTPTimeout, logger)
	persister := persist.NewFile(cfg.StatePath, logger)
	sessions := store.New(client, client, persister, cfg.Currency, logger)

	app := &app{cfg: cfg, client: client, store: sessions, logger: logger}

	ctx := context.Background()
	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	cfg    config.Config
	client *commerce.Client
	store  *store.Store
	logger *zap.Logger
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "collections":
		return a.collections(ctx)
	case "products":
		return a.products(ctx, args)
	case "product":
		return a.product(ctx, args)
	case "cart":
		a.printCart()
		return nil
	case "add":
		return a.add(ctx, args)
	case "update":
		return a.update(ctx, args)
	case "remove":
		return a.remove(ctx, args)
	case "clear":
		a.store.ClearCart()
		fmt.Println("cart cleared")
		return nil
	case "login":
		return a.login(ctx, args)
	case "logout":
		a.store.Logout()
		fmt.Println("logged out")
		return nil
	case "register":
		return a.register(ctx, args)
	case "whoami":
		a.whoami()
		return nil
	case "checkout":
		return a.checkout(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) collections(ctx context.Context) error {
	collections, err := a.client.Collections(ctx)
	if err != nil {
		return err
	}
	for _, c := range collections {
		fmt.Printf("%-24s %s\n", c.Key, c.Name)
	}
	return nil
}

func (a *app) products(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	collection := fs.String("collection", "", "filter by collection key")
	_ = fs.Parse(args)

	products, err := a.client.Products(ctx, *collection)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Printf("%s — %s\n", p.Key, p.Name)
		for _, v := range p.Variants {
			fmt.Printf("  %-28s %-10s %s\n", v.ID, v.Title, formatCents(v.PriceCents, v.Currency))
		}
	}
	return nil
}

func (a *app) product(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: skfarms product <key>")
	}
	p, err := a.client.ProductByKey(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", p.Name)
	if p.Description != "" {
		fmt.Printf("%s\n", p.Description)
	}
	for _, v := range p.Variants {
		fmt.Printf("  %-28s %-10s %s\n", v.ID, v.Title, formatCents(v.PriceCents, v.Currency))
	}
	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	variant := fs.String("variant", "", "variant id")
	qty := fs.Int("qty", 1, "quantity")
	title := fs.String("title", "", "product title (display only)")
	_ = fs.Parse(args)
	if *variant == "" {
		return fmt.Errorf("-variant is required")
	}
	if *qty < 1 {
		return fmt.Errorf("-qty must be at least 1")
	}
	a.store.AddToCart(ctx, *variant, *qty, store.ProductInfo{Title: *title})
	a.printCart()
	return nil
}

func (a *app) update(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	line := fs.String("line", "", "line id")
	qty := fs.Int("qty", 0, "new quantity")
	_ = fs.Parse(args)
	if *line == "" {
		return fmt.Errorf("-line is required")
	}
	a.store.UpdateQuantity(ctx, *line, *qty)
	a.printCart()
	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	line := fs.String("line", "", "line id")
	_ = fs.Parse(args)
	if *line == "" {
		return fmt.Errorf("-line is required")
	}
	a.store.RemoveFromCart(ctx, *line)
	a.printCart()
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)
	if strings.TrimSpace(*email) == "" || *password == "" {
		return fmt.Errorf("-email and -password are required")
	}
	if err := a.store.Login(ctx, *email, *password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	a.whoami()
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	_ = fs.Parse(args)
	if strings.TrimSpace(*email) == "" || *password == "" || *first == "" || *last == "" {
		return fmt.Errorf("-email, -password, -first and -last are required")
	}
	if len(*password) < passwordMinimum {
		return fmt.Errorf("password must be at least %d characters", passwordMinimum)
	}
	if err := a.store.Register(ctx, *email, *password, *first, *last); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	a.whoami()
	return nil
}

func (a *app) whoami() {
	state := a.store.Snapshot()
	if !state.Authenticated() {
		fmt.Println("not logged in")
		return
	}
	fmt.Printf("logged in as %s %s <%s>\n", state.User.FirstName, state.User.LastName, state.User.Email)
}

func (a *app) checkout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	number := fs.String("number", "", "card number")
	expMonth := fs.Int("exp-month", 0, "card expiry month")
	expYear := fs.Int("exp-year", 0, "card expiry year")
	cvv := fs.String("cvv", "", "card verification value")
	_ = fs.Parse(args)

	state := a.store.Snapshot()
	if state.Cart.CartID == "" || len(state.Cart.Lines) == 0 {
		return fmt.Errorf("cart is empty")
	}
	if *number == "" || *expMonth == 0 || *expYear == 0 || *cvv == "" {
		return fmt.Errorf("-number, -exp-month, -exp-year and -cvv are required")
	}

	gateway := payment.NewHTTPGateway(a.cfg.PaymentURL, a.cfg.HTTPTimeout, a.logger)
	result, err := gateway.Checkout(ctx, payment.CheckoutRequest{
		CartID:      state.Cart.CartID,
		AmountCents: state.Cart.TotalCents,
		Currency:    a.cfg.Currency,
		Card: payment.Card{
			Number:   *number,
			ExpMonth: *expMonth,
			ExpYear:  *expYear,
			CVV:      *cvv,
		},
	})
	if err != nil {
		return err
	}
	fmt.Printf("payment %s %s for %s\n", result.PaymentID, result.Status, formatCents(state.Cart.TotalCents, a.cfg.Currency))
	a.store.ClearCart()
	return nil
}

func (a *app) printCart() {
	state := a.store.Snapshot()
	if state.Cart.CartID == "" {
		fmt.Println("cart is empty")
		return
	}
	for _, line := range state.Cart.Lines {
		name := line.Title
		if line.VariantTitle != "" {
			name += " (" + line.VariantTitle + ")"
		}
		fmt.Printf("%-10s %2d × %-36s %s\n",
			line.ID, line.Quantity, name, formatCents(line.UnitPriceCents, a.cfg.Currency))
	}
	fmt.Printf("%d items, total %s\n", state.Cart.Count, formatCents(state.Cart.TotalCents, a.cfg.Currency))
}

func formatCents(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s %s%d.%02d", currency, sign, cents/100, cents%100)
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: skfarms <command> [flags]

catalog:
  collections                    list product collections
  products [-collection key]     list products
  product <key>                  show one product

cart:
  cart                           show the cart
  add -variant id [-qty n]       add a variant to the cart
  update -line id -qty n         change a line's quantity
  remove -line id                remove a line
  clear                          empty the local cart
  checkout -number .. -cvv ..    pay for the cart

account:
  login -email .. -password ..
  register -email .. -password .. -first .. -last ..
  logout
  whoami`)
}
