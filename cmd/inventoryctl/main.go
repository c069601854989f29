package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/teran1416/InventarioApp/internal/client"
	"github.com/teran1416/InventarioApp/internal/store"
)

const usage = `usage: inventoryctl [--api URL] [--session FILE] <command> [flags]

commands:
  register   --name --email --password
  login      --email --password
  logout
  whoami
  list
  low-stock
  create     --name [--description] [--quantity] [--price] [--threshold]
  update     --id [--name] [--description] [--quantity] [--price] [--threshold]
  delete     --id
  stock      --id --quantity [--remove]
  summary
`

var errUsage = errors.New("invalid usage")

type app struct {
	out      io.Writer
	api      *client.Client
	auth     *store.AuthStore
	products *store.ProductStore
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	global := pflag.NewFlagSet("inventoryctl", pflag.ContinueOnError)
	global.SetInterspersed(false)
	apiURL := global.String("api", envOr("INVENTARIO_API_URL", "http://localhost:8080"), "base URL of the inventory API")
	sessionFile := global.String("session", defaultSessionFile(), "file that keeps the signed-in session")
	if err := global.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if global.NArg() == 0 {
		return errUsage
	}

	api := client.New(*apiURL, nil)
	auth, err := store.NewAuthStore(api, store.NewFileStorage(*sessionFile))
	if err != nil {
		return err
	}
	a := &app{out: out, api: api, auth: auth, products: store.NewProductStore(api, auth)}

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "register":
		return a.register(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.auth.Logout()
	case "whoami":
		return a.whoami()
	case "list":
		return a.list(ctx)
	case "low-stock":
		return a.lowStock(ctx)
	case "create":
		return a.create(ctx, rest)
	case "update":
		return a.update(ctx, rest)
	case "delete":
		return a.delete(ctx, rest)
	case "stock":
		return a.stock(ctx, rest)
	case "summary":
		return a.summary(ctx)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("register", pflag.ContinueOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return a.result(a.auth.Register(ctx, *name, *email, *password), "registered")
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return a.result(a.auth.Login(ctx, *email, *password), "signed in")
}

func (a *app) whoami() error {
	u, ok := a.auth.User()
	if !ok {
		return errors.New("not signed in")
	}
	fmt.Fprintf(a.out, "%s <%s>\n", u.FullName, u.Email)
	return nil
}

func (a *app) list(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if res := a.products.FetchProducts(ctx); !res.Success {
		return errors.New(res.Message)
	}
	if err := a.printJSON(a.products.Products()); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d products, inventory value %s\n",
		a.products.TotalProducts(), a.products.TotalInventoryValue().StringFixed(2))
	return nil
}

func (a *app) lowStock(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if res := a.products.FetchLowStockProducts(ctx); !res.Success {
		return errors.New(res.Message)
	}
	return a.printJSON(a.products.LowStockProducts())
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("create", pflag.ContinueOnError)
	name := fs.String("name", "", "product name")
	description := fs.String("description", "", "description")
	quantity := fs.Int("quantity", 0, "units in stock")
	price := fs.Float64("price", 0, "unit price")
	threshold := fs.Int("threshold", 0, "minimum stock threshold (default 5)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	in := client.ProductInput{Name: *name, Description: *description, Quantity: *quantity, Price: *price}
	if fs.Changed("threshold") {
		in.MinStockThreshold = threshold
	}
	res := a.products.CreateProduct(ctx, in)
	if !res.Success {
		return errors.New(res.Message)
	}
	return a.printJSON(res.Product)
}

func (a *app) update(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("update", pflag.ContinueOnError)
	id := fs.String("id", "", "product id")
	name := fs.String("name", "", "product name")
	description := fs.String("description", "", "description")
	quantity := fs.Int("quantity", 0, "units in stock")
	price := fs.Float64("price", 0, "unit price")
	threshold := fs.Int("threshold", 0, "minimum stock threshold")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *id == "" {
		return fmt.Errorf("%w: --id is required", errUsage)
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	var patch client.ProductPatch
	if fs.Changed("name") {
		patch.Name = name
	}
	if fs.Changed("description") {
		patch.Description = description
	}
	if fs.Changed("quantity") {
		patch.Quantity = quantity
	}
	if fs.Changed("price") {
		patch.Price = price
	}
	if fs.Changed("threshold") {
		patch.MinStockThreshold = threshold
	}

	res := a.products.UpdateProduct(ctx, *id, patch)
	if !res.Success {
		return errors.New(res.Message)
	}
	return a.printJSON(res.Product)
}

func (a *app) delete(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("delete", pflag.ContinueOnError)
	id := fs.String("id", "", "product id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *id == "" {
		return fmt.Errorf("%w: --id is required", errUsage)
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	return a.result(a.products.DeleteProduct(ctx, *id), "product removed")
}

func (a *app) stock(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("stock", pflag.ContinueOnError)
	id := fs.String("id", "", "product id")
	quantity := fs.Int("quantity", 0, "units to add or remove")
	remove := fs.Bool("remove", false, "remove units instead of adding them")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *id == "" {
		return fmt.Errorf("%w: --id is required", errUsage)
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	res := a.products.UpdateStock(ctx, *id, *quantity, !*remove)
	if !res.Success {
		return errors.New(res.Message)
	}
	fmt.Fprintf(a.out, "%s: %d in stock\n", res.Product.Name, res.Product.Quantity)
	if res.IsLowStock {
		fmt.Fprintln(a.out, res.Message)
	}
	return nil
}

func (a *app) summary(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	sum, err := a.api.Summary(ctx, a.auth.Token())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "products: %d\nlow stock: %d\ninventory value: %.2f\n",
		sum.TotalProducts, sum.LowStockCount, sum.TotalInventoryValue)
	return nil
}

func (a *app) requireSession() error {
	if !a.auth.IsAuthenticated() {
		return errors.New("not signed in, run inventoryctl login first")
	}
	return nil
}

func (a *app) result(res store.Result, done string) error {
	if !res.Success {
		return errors.New(res.Message)
	}
	fmt.Fprintln(a.out, done)
	return nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".inventario-session.json"
	}
	return filepath.Join(dir, "inventario", "session.json")
}
