package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"crm-admin.backend/internal/config"
	"crm-admin.backend/pkg/crypto"
)

var (
	loadCfg  = config.Load
	fatalfFn = log.Fatalf
)

// run hashes the given password with the configured bcrypt cost, or issues a
// fresh policy-compliant password with -generate.
func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("hash-gen", flag.ContinueOnError)
	generate := fs.Bool("generate", false, "generate a password instead of reading one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := loadCfg()
	credentials, err := crypto.NewCredentialService(cfg.Security.BcryptCost, cfg.Security.ReferralSalt)
	if err != nil {
		return err
	}

	var password string
	switch {
	case *generate:
		if password, err = credentials.GeneratePassword(); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Password: %s\n", password)
	case fs.NArg() == 1:
		password = fs.Arg(0)
		if err := crypto.ValidatePassword(password); err != nil {
			return err
		}
	default:
		return fmt.Errorf("usage: hash-gen [-generate] [password]")
	}

	hash, err := credentials.HashPassword(password)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Bcrypt Hash: %s\n", hash)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fatalfFn("hash-gen: %v", err)
	}
}
