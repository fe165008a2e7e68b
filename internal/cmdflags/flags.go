package cmdflags

import (
	"github.com/urfave/cli/v2"
)

func AccountsFile(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "accounts",
		Aliases:     []string{"a"},
		Usage:       "Path to the CSV file with the bootstrap accounts",
		Destination: out,
		Value:       *out,
	}
}

func AccountsDB(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "accounts-db",
		Usage:       "Path to a sqlite account database (takes precedence over the CSV file)",
		Destination: out,
		Value:       *out,
	}
}
