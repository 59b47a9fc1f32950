package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/rushikulya/marketkit/config"
	"github.com/rushikulya/marketkit/internal/app"
	"github.com/rushikulya/marketkit/internal/apperrs"
	"github.com/rushikulya/marketkit/internal/contact"
	"github.com/rushikulya/marketkit/internal/export"
	"github.com/rushikulya/marketkit/internal/listquery"
	"github.com/rushikulya/marketkit/internal/session"
)

const usage = `usage: marketctl [-config FILE] COMMAND

commands:
  login-admin    -u USER -p PASS
  login-seller   -email EMAIL -p PASS
  register       -first F -last L -email E -phone P -password PW -confirm PW
  logout
  whoami
  products       [-q TERM] [-name FILTER] [-page N] [-all]
  services       [-q TERM] [-name FILTER] [-page N] [-all]
  sellers        [-q TERM] [-page N]
  export         -kind products|services|sellers [-o FILE]
  upload         -f IMAGE_FILE
  contact        -kind service|product -id ID -n NAME -phone PHONE -loc LOCATION
  refresh
`

func main() {
	cfgPath := flag.String("config", os.Getenv("MARKETKIT_CONFIG"), "config file path")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	a := app.NewApplication(cfg)
	if err := a.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(1)
	}
	defer a.Release()

	if err := run(a, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, apperrs.Message(err))
		os.Exit(1)
	}
}

func run(a *app.Application, command string, args []string) error {
	ctx := context.Background()

	switch command {
	case "login-admin":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		user := fs.String("u", "", "admin username")
		pass := fs.String("p", "", "admin password")
		_ = fs.Parse(args)
		if _, err := a.Session().LoginAdmin(ctx, *user, *pass); err != nil {
			return err
		}
		fmt.Println("Login successful!")
		return nil

	case "login-seller":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		email := fs.String("email", "", "seller email")
		pass := fs.String("p", "", "seller password")
		_ = fs.Parse(args)
		s, err := a.Session().LoginSeller(ctx, *email, *pass)
		if err != nil {
			return err
		}
		fmt.Printf("Login successful! Welcome %s\n", s.Seller.FullName())
		return nil

	case "register":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		in := session.RegisterInput{}
		fs.StringVar(&in.FirstName, "first", "", "first name")
		fs.StringVar(&in.LastName, "last", "", "last name")
		fs.StringVar(&in.Email, "email", "", "email")
		fs.StringVar(&in.Phone, "phone", "", "10 digit phone")
		fs.StringVar(&in.Password, "password", "", "password")
		fs.StringVar(&in.ConfirmPassword, "confirm", "", "confirm password")
		_ = fs.Parse(args)
		s, err := a.Session().RegisterSeller(ctx, in)
		if err != nil {
			return err
		}
		fmt.Printf("Registration successful! Welcome %s\n", s.Seller.FullName())
		return nil

	case "logout":
		return a.Session().Logout()

	case "whoami":
		s := a.Session().Current()
		switch s.Kind {
		case session.KindAdmin:
			fmt.Println("admin")
			if info, ok := session.PeekToken(s.Token); ok && info.Expired() {
				fmt.Println("warning: token is past its expiry")
			}
		case session.KindSeller:
			fmt.Printf("seller: %s <%s>\n", s.Seller.FullName(), s.Seller.Email)
		default:
			fmt.Println("not logged in")
		}
		return nil

	case "products":
		return listProducts(ctx, a, args)

	case "services":
		return listServices(ctx, a, args)

	case "sellers":
		return listSellers(ctx, a, args)

	case "export":
		return exportCatalog(ctx, a, args)

	case "upload":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		file := fs.String("f", "", "image file")
		_ = fs.Parse(args)
		data, err := os.ReadFile(*file)
		if err != nil {
			return err
		}
		url, err := a.Images().Upload(ctx, data)
		if err != nil {
			return err
		}
		fmt.Println(url)
		return nil

	case "contact":
		return contactListing(ctx, a, args)

	case "refresh":
		if err := a.RefreshAll(ctx); err != nil {
			return err
		}
		fmt.Printf("products=%d services=%d sellers=%d\n",
			a.Products().Len(), a.Services().Len(), a.Sellers().Len())
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func queryFlags(fs *flag.FlagSet) (*string, *string, *int, *bool) {
	q := fs.String("q", "", "search term")
	name := fs.String("name", "", "exact name filter")
	page := fs.Int("page", 1, "page number")
	all := fs.Bool("all", false, "disable pagination")
	return q, name, page, all
}

func pageSize(a *app.Application, all bool) int {
	if all {
		return listquery.All
	}
	if n := a.Config().Catalog.PageSize; n > 0 {
		return n
	}
	return listquery.DefaultPageSize
}

func listProducts(ctx context.Context, a *app.Application, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	q, name, page, all := queryFlags(fs)
	_ = fs.Parse(args)

	items, err := a.Products().Load(ctx)
	if err != nil {
		return err
	}
	size := pageSize(a, *all)
	st := listquery.NewState()
	st.SetTerm(*q)
	st.SetFilter(*name)
	st.SetPage(*page, listquery.TotalPages(len(listquery.Filter(items, *q, *name)), size))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tAVAILABLE\tSELLER\tCODE")
	for _, p := range listquery.Visible(items, st, size) {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%v\t%s\t%s\n", p.ID, p.Name, p.Price, p.Available, p.SellerName, p.Code)
	}
	return w.Flush()
}

func listServices(ctx context.Context, a *app.Application, args []string) error {
	fs := flag.NewFlagSet("services", flag.ExitOnError)
	q, name, page, all := queryFlags(fs)
	_ = fs.Parse(args)

	items, err := a.Services().Load(ctx)
	if err != nil {
		return err
	}
	size := pageSize(a, *all)
	st := listquery.NewState()
	st.SetTerm(*q)
	st.SetFilter(*name)
	st.SetPage(*page, listquery.TotalPages(len(listquery.Filter(items, *q, *name)), size))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSERVICE\tTIME\tLOCATION\tPROVIDER\tCODE")
	for _, s := range listquery.Visible(items, st, size) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.ServiceName, s.AvailableTime, s.Location, s.SellerName, s.Code)
	}
	return w.Flush()
}

func listSellers(ctx context.Context, a *app.Application, args []string) error {
	fs := flag.NewFlagSet("sellers", flag.ExitOnError)
	q, name, page, all := queryFlags(fs)
	_ = fs.Parse(args)

	items, err := a.Sellers().Load(ctx)
	if err != nil {
		return err
	}
	size := pageSize(a, *all)
	st := listquery.NewState()
	st.SetTerm(*q)
	st.SetFilter(*name)
	st.SetPage(*page, listquery.TotalPages(len(listquery.Filter(items, *q, *name)), size))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
	for _, s := range listquery.Visible(items, st, size) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.FullName(), s.Email, s.Phone)
	}
	return w.Flush()
}

func exportCatalog(ctx context.Context, a *app.Application, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	kind := fs.String("kind", "products", "products|services|sellers")
	out := fs.String("o", "", "output file (default stdout)")
	_ = fs.Parse(args)

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch *kind {
	case "products":
		items, err := a.Products().Load(ctx)
		if err != nil {
			return err
		}
		return export.Products(w, items)
	case "services":
		items, err := a.Services().Load(ctx)
		if err != nil {
			return err
		}
		return export.Services(w, items)
	case "sellers":
		items, err := a.Sellers().Load(ctx)
		if err != nil {
			return err
		}
		return export.Sellers(w, items)
	default:
		return fmt.Errorf("unknown export kind %q", *kind)
	}
}

func contactListing(ctx context.Context, a *app.Application, args []string) error {
	fs := flag.NewFlagSet("contact", flag.ExitOnError)
	kind := fs.String("kind", "service", "service|product")
	id := fs.String("id", "", "listing id")
	name := fs.String("n", "", "your name")
	phone := fs.String("phone", "", "10 digit phone")
	loc := fs.String("loc", "", "your location")
	_ = fs.Parse(args)

	form := contact.Form{Name: *name, Phone: *phone, Location: *loc}
	switch contact.Kind(*kind) {
	case contact.KindService:
		if _, err := a.Services().Load(ctx); err != nil {
			return err
		}
		s, ok := a.Services().Find(*id)
		if !ok {
			return apperrs.NotFound("Service not found")
		}
		a.Contact().OpenService(s)
	case contact.KindProduct:
		if _, err := a.Products().Load(ctx); err != nil {
			return err
		}
		p, ok := a.Products().Find(*id)
		if !ok {
			return apperrs.NotFound("Product not found")
		}
		a.Contact().OpenProduct(p)
	default:
		return fmt.Errorf("unknown contact kind %q", *kind)
	}

	if err := a.Contact().Submit(form); err != nil {
		return err
	}
	zap.S().Info("contact request handed to the mail client")
	fmt.Println("Your message draft is ready in the mail client.")
	return nil
}
