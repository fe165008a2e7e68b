package account

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ldisk/gatehouse/auth"
	"github.com/ldisk/gatehouse/internal/cmdflags"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "Manage the accounts allowed through the gate",
		Subcommands: []*cli.Command{
			createCmd(),
		},
	}
}

func createCmd() *cli.Command {
	var username string
	var accountsDB string
	return &cli.Command{
		Name:  "create",
		Usage: "Create a new account (password is read from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "username",
				Aliases:     []string{"u", "user"},
				Usage:       "Name of the account to create",
				Destination: &username,
				Required:    true,
			},
			cmdflags.AccountsDB(&accountsDB),
		},
		Action: func(ctx *cli.Context) error {
			sc := bufio.NewScanner(os.Stdin)
			if !sc.Scan() {
				return sc.Err()
			}
			password := strings.TrimSpace(sc.Text())
			if len(password) == 0 {
				return errors.New("missing password from stdin")
			}
			acct, err := auth.NewAccount(username, password)
			if err != nil {
				return err
			}
			if accountsDB != "" {
				store, err := auth.OpenSQLStore(ctx.Context, accountsDB)
				if err != nil {
					return err
				}
				defer store.Close()
				return store.CreateAccount(ctx.Context, acct)
			}
			// without a database the record goes to stdout, ready to be
			// appended to the bootstrap CSV file
			fmt.Println(acct.String())
			return nil
		},
	}
}
