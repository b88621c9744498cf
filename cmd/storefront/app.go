package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"

	contracts "github.com/murkotick/storefront-sequencer/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/storefront"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/usecases/create_product"
	"github.com/murkotick/storefront-sequencer/internal/config"
	"github.com/murkotick/storefront-sequencer/internal/pkg/clock"
	"github.com/murkotick/storefront-sequencer/internal/pkg/ordernum"
	"github.com/murkotick/storefront-sequencer/internal/pkg/sequencer"
)

const defaultAdminPassword = "admin"

var errUsage = errors.New("usage: storefront <seed|list-products|show-product|list-orders|create-product|update-price|checkout> [flags]")

// demoCatalog is what seed creates; keys let commands address products without knowing ids.
var demoCatalog = []create_product.Request{
	{Key: "desk-lamp", Name: "Desk Lamp", SKU: "LAMP-01", Price: "42.00"},
	{Key: "kettle", Name: "Electric Kettle", SKU: "KTL-02", Price: "29.99"},
	{Key: "wool-scarf", Name: "Wool Scarf", SKU: "SCF-03", Price: "18.50"},
}

type app struct {
	session *storefront.Session
	orphans *sequencer.MemoryOrphanRecorder
	out     io.Writer
	logger  *slog.Logger
	admin   string
}

func newApp(cfg *config.Config, backend storefront.Backend, logger *slog.Logger, out io.Writer) *app {
	return newAppWithRegistry(cfg, backend, logger, out, prometheus.NewRegistry())
}

func newAppWithRegistry(cfg *config.Config, backend storefront.Backend, logger *slog.Logger, out io.Writer, reg prometheus.Registerer) *app {
	orphans := &sequencer.MemoryOrphanRecorder{}
	seq := sequencer.New(backend, sequencer.Options{
		Logger:      logger,
		Metrics:     sequencer.NewMetrics(reg),
		Orphans:     sequencer.Tee{sequencer.NewLogOrphanRecorder(logger), orphans},
		CallTimeout: cfg.CallTimeout(),
	})
	svc := storefront.NewServices(backend, seq, newNumberer(cfg), storefront.Settings{
		Currency:             cfg.CartCurrency,
		Country:              cfg.CartCountry,
		AdminEmail:           cfg.AdminEmail,
		RefreshBeforePublish: cfg.RefreshBeforePublish,
	}, logger)
	return &app{session: storefront.NewSession(svc), orphans: orphans, out: out, logger: logger, admin: cfg.AdminEmail}
}

func newNumberer(cfg *config.Config) contracts.OrderNumberer {
	if cfg.OrderNumberStrategy == config.OrderNumbersCounter {
		return ordernum.NewCounterNumberer(cfg.OrderNumberPrefix, clock.RealClock{})
	}
	return ordernum.NewUUIDNumberer(cfg.OrderNumberPrefix)
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "seed":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		password := fs.String("password", defaultAdminPassword, "admin password")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return a.seed(ctx, *password)
	case "list-products":
		return a.listProducts(ctx, rest)
	case "show-product":
		return a.showProduct(ctx, rest)
	case "list-orders":
		return a.listOrders(ctx, rest)
	case "create-product":
		return a.createProduct(ctx, rest)
	case "update-price":
		return a.updatePrice(ctx, rest)
	case "checkout":
		return a.checkout(ctx, rest)
	}
	return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
}

// seed signs up the admin account (or logs in if it exists) and creates the demo catalog.
func (a *app) seed(ctx context.Context, password string) error {
	if _, err := a.session.SignUp(ctx, domain.CustomerDraft{Email: a.admin, Password: password, FirstName: "Admin"}); err != nil {
		if domain.KindOf(err) != domain.KindValidationFailure {
			return err
		}
		if _, err := a.session.Login(ctx, a.admin, password); err != nil {
			return err
		}
	}
	defer a.session.Logout()

	existing, err := a.productKeys(ctx)
	if err != nil {
		return err
	}
	for _, req := range demoCatalog {
		if _, ok := existing[req.Key]; ok {
			continue
		}
		ref, err := a.session.CreateProduct(ctx, req)
		if err != nil {
			return fmt.Errorf("seed %s: %w", req.Key, err)
		}
		a.logger.Debug("seeded product", "key", req.Key, "product_id", ref.ID, "version", ref.Version)
	}
	return nil
}

func (a *app) listProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list-products", flag.ContinueOnError)
	limit := fs.Int("limit", 50, "page size")
	offset := fs.Int("offset", 0, "rows to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}
	products, err := a.session.Products(ctx, *limit, *offset)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tID\tNAME\tPRICE\tVERSION")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", p.Key, p.ProductID, p.Name, p.Price, p.Version)
	}
	return tw.Flush()
}

func (a *app) showProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("show-product <product key or id>: %w", errUsage)
	}
	id, err := a.resolveProduct(ctx, args[0])
	if err != nil {
		return err
	}
	p, err := a.session.Product(ctx, id)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "id\t%s\nversion\t%d\nkey\t%s\nname\t%s\nsku\t%s\nprice\t%s\n", p.ProductID, p.Version, p.Key, p.Name, p.SKU, p.Price)
	if p.HasStagedChanges {
		fmt.Fprintf(tw, "staged price\t%s\n", p.StagedPrice)
	}
	return tw.Flush()
}

func (a *app) listOrders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list-orders", flag.ContinueOnError)
	creds := credentialFlags(fs, a.admin)
	limit := fs.Int("limit", 50, "page size")
	offset := fs.Int("offset", 0, "rows to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.login(ctx, creds); err != nil {
		return err
	}
	orders, err := a.session.Orders(ctx, *limit, *offset)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tID\tLINES\tTOTAL\tCREATED")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", o.OrderNumber, o.OrderID, o.LineCount, o.Total, o.CreatedAt)
	}
	return tw.Flush()
}

func (a *app) createProduct(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-product", flag.ContinueOnError)
	creds := credentialFlags(fs, a.admin)
	var req create_product.Request
	fs.StringVar(&req.Name, "name", "", "product name")
	fs.StringVar(&req.Key, "key", "", "unique product key")
	fs.StringVar(&req.SKU, "sku", "", "master variant sku")
	fs.StringVar(&req.Price, "price", "", "price as a decimal, e.g. 19.99")
	fs.StringVar(&req.ImageURL, "image", "", "image url")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.login(ctx, creds); err != nil {
		return err
	}
	seen := len(a.orphans.Orphans())
	ref, err := a.session.CreateProduct(ctx, req)
	if err != nil {
		a.reportOrphans(seen)
		return err
	}
	fmt.Fprintf(a.out, "created product %s\n", ref)
	return nil
}

func (a *app) updatePrice(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-price", flag.ContinueOnError)
	creds := credentialFlags(fs, a.admin)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("update-price <product key or id> <price>: %w", errUsage)
	}
	if err := a.login(ctx, creds); err != nil {
		return err
	}
	id, err := a.resolveProduct(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	ref, err := a.session.UpdatePrice(ctx, id, fs.Arg(1))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "price updated, product %s\n", ref)
	return nil
}

// checkout adds each "product[:quantity]" argument to the cart and places the order.
func (a *app) checkout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	email := fs.String("email", "", "customer email (optional)")
	password := fs.String("password", "", "customer password")
	var addr domain.Address
	fs.StringVar(&addr.Country, "country", "", "shipping country")
	fs.StringVar(&addr.City, "city", "", "shipping city")
	fs.StringVar(&addr.StreetName, "street", "", "shipping street")
	fs.StringVar(&addr.PostalCode, "postal-code", "", "shipping postal code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("checkout <product[:qty]>...: %w", errUsage)
	}
	if *email != "" {
		if _, err := a.session.Login(ctx, *email, *password); err != nil {
			return err
		}
	}

	for _, arg := range fs.Args() {
		ref, qty, err := parseLine(arg)
		if err != nil {
			return err
		}
		id, err := a.resolveProduct(ctx, ref)
		if err != nil {
			return err
		}
		for i := 0; i < qty; i++ {
			if err := a.session.AddToCart(ctx, id); err != nil {
				return err
			}
		}
	}

	seen := len(a.orphans.Orphans())
	resp, err := a.session.PlaceOrder(ctx, addr)
	if err != nil {
		a.reportOrphans(seen)
		return err
	}
	fmt.Fprintf(a.out, "order %s placed (%s), total %s\n", resp.OrderNumber, resp.Order, domain.NewMoneyFromCents(resp.TotalCents).Format())
	return nil
}

// reportOrphans prints the resources a failed command left behind, skipping the first seen.
func (a *app) reportOrphans(seen int) {
	orphans := a.orphans.Orphans()
	if seen > len(orphans) {
		return
	}
	for _, o := range orphans[seen:] {
		fmt.Fprintf(a.out, "left behind %s %s (%s stopped at stage %d %s)\n", o.Kind, o.Ref, o.Sequence, o.FailedAt, o.FailedStep)
	}
}

type credentials struct {
	email, password *string
}

func credentialFlags(fs *flag.FlagSet, admin string) credentials {
	return credentials{
		email:    fs.String("email", admin, "admin email"),
		password: fs.String("password", defaultAdminPassword, "admin password"),
	}
}

func (a *app) login(ctx context.Context, c credentials) error {
	_, err := a.session.Login(ctx, *c.email, *c.password)
	return err
}

// resolveProduct accepts a product key or id.
func (a *app) resolveProduct(ctx context.Context, ref string) (string, error) {
	keys, err := a.productKeys(ctx)
	if err != nil {
		return "", err
	}
	if id, ok := keys[ref]; ok {
		return id, nil
	}
	return ref, nil
}

func (a *app) productKeys(ctx context.Context) (map[string]string, error) {
	products, err := a.session.Products(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(products))
	for _, p := range products {
		if p.Key != "" {
			out[p.Key] = p.ProductID
		}
	}
	return out, nil
}

func parseLine(arg string) (string, int, error) {
	ref, rawQty, found := strings.Cut(arg, ":")
	if ref == "" {
		return "", 0, fmt.Errorf("empty product in %q", arg)
	}
	if !found {
		return ref, 1, nil
	}
	qty, err := strconv.Atoi(rawQty)
	if err != nil || qty <= 0 {
		return "", 0, fmt.Errorf("%q: %w", arg, domain.ErrInvalidQuantity)
	}
	return ref, qty, nil
}
