package serve

import (
	"net/http"
	"strings"

	"github.com/ldisk/gatehouse/auth"
	authapi "github.com/ldisk/gatehouse/auth/api"
	"github.com/ldisk/gatehouse/content"
	contentapi "github.com/ldisk/gatehouse/content/api"
	"github.com/ldisk/gatehouse/internal/cmdflags"
	"github.com/ldisk/gatehouse/internal/httpserver"
	"github.com/ldisk/gatehouse/internal/logutil"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	bindAddr := "localhost:3000"
	rootDir := "./public"
	accountsFile := "./import.csv"
	accountsDB := ""
	protected := "/private"
	insecureCookie := false
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the gatehouse server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "bind",
				Usage:       "Address to bind for incoming requests",
				Destination: &bindAddr,
				Value:       bindAddr,
			},
			&cli.StringFlag{
				Name:        "root",
				Aliases:     []string{"r"},
				Usage:       "Directory with the content to serve",
				Destination: &rootDir,
				Value:       rootDir,
			},
			cmdflags.AccountsFile(&accountsFile),
			cmdflags.AccountsDB(&accountsDB),
			&cli.StringFlag{
				Name:        "protected",
				Usage:       "Path prefix that requires a login",
				Destination: &protected,
				Value:       protected,
			},
			&cli.BoolFlag{
				Name:        "insecure-cookie",
				Usage:       "Allow the session cookie over plain HTTP (only for local testing)",
				Destination: &insecureCookie,
				Value:       insecureCookie,
			},
		},
		Action: func(ctx *cli.Context) error {
			log := logutil.GetOrDefault(ctx.Context)
			lib, err := content.OpenLibrary(rootDir)
			if err != nil {
				return err
			}
			var store auth.Store
			if accountsDB != "" {
				sqlStore, err := auth.OpenSQLStore(ctx.Context, accountsDB)
				if err != nil {
					return err
				}
				defer sqlStore.Close()
				store = sqlStore
			} else {
				store = auth.LoadCSVFile(ctx.Context, accountsFile)
			}
			loginPage, _, _, err := lib.Asset(ctx.Context, "/login.html")
			if err != nil {
				log.Warn().Err(err).Msg("No login.html in the content root, using the built-in page")
				loginPage = authapi.DefaultLoginPage
			}
			realm := authapi.NewRealm(store, auth.InMemorySessions(), loginPage, insecureCookie)
			public := contentapi.AsHandler(ctx.Context, lib)
			handler := composeHandler(public, realm.Protect(public), protected)
			return httpserver.Serve(ctx.Context, bindAddr, handler)
		},
	}
}

// composeHandler splits the path space: anything at or below the protected
// prefix goes through the gate regardless of method, the rest is public.
func composeHandler(public, guarded http.Handler, protected string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == protected || strings.HasPrefix(r.URL.Path, protected+"/") {
			guarded.ServeHTTP(w, r)
			return
		}
		public.ServeHTTP(w, r)
	})
}
