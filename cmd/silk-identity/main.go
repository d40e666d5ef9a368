package main

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	_ "modernc.org/sqlite" // Pure Go SQLite driver.

	"github.com/silkmsg/silk"
	"github.com/silkmsg/silk/backend/identity"
	identitydal "github.com/silkmsg/silk/backend/identity/dal"
	"github.com/silkmsg/silk/internal/log"
	"github.com/silkmsg/silk/internal/model"
)

var cli struct {
	Version        kong.VersionFlag `help:"Show version."`
	LogConfig      log.Config       `embed:"" prefix:"log-"`
	IdentityConfig identity.Config  `embed:""`
	DB             string           `help:"Path to the identity database." default:"silk-identity.db" env:"SILK_IDENTITY_DB"`

	Dump        dumpCmd        `cmd:"" help:"Dump all stored identity records."`
	Save        saveCmd        `cmd:"" help:"Record an observed identity key for an account."`
	Verify      verifyCmd      `cmd:"" help:"Mark an account's identity key as verified."`
	Acknowledge acknowledgeCmd `cmd:"" help:"Acknowledge an account's identity key without verifying it."`
	Check       checkCmd       `cmd:"" help:"Check whether an account's identity key is currently trusted."`
	Delete      deleteCmd      `cmd:"" help:"Delete an account's identity record."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Description(`Silk - identity trust ledger`),
		kong.UsageOnError(),
		kong.Vars{"version": silk.FormattedVersion},
	)

	ctx := log.ContextWithLogger(context.Background(), log.Configure(os.Stderr, cli.LogConfig))

	db, err := sql.Open("sqlite", cli.DB)
	kctx.FatalIfErrorf(err, "failed to open database")
	defer db.Close()

	err = identitydal.Migrate(ctx, db)
	kctx.FatalIfErrorf(err, "failed to migrate database")

	svc, err := identity.New(ctx, cli.IdentityConfig, db)
	kctx.FatalIfErrorf(err, "failed to initialize identity service")
	defer svc.Close()

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.Bind(svc)

	err = kctx.Run(ctx)
	kctx.FatalIfErrorf(err)
}

type dumpCmd struct{}

func (d *dumpCmd) Run(ctx context.Context, svc *identity.Service) error {
	records, err := svc.AllIdentities(ctx)
	if err != nil {
		return err
	}
	for _, record := range records {
		fmt.Printf("%s key=%s created=%s first=%t state=%s wasVerified=%t\n",
			record.AccountID, record.IdentityKey, record.CreatedAt.Format(time.RFC3339),
			record.IsFirstKnownKey, record.VerificationState, record.WasIdentityVerified)
	}
	return nil
}

type saveCmd struct {
	Account string `arg:"" help:"Account id (UUID)."`
	Key     string `arg:"" help:"Hex-encoded identity key."`
}

func (s *saveCmd) Run(ctx context.Context, svc *identity.Service) error {
	accountID, err := model.ParseAccountID(s.Account)
	if err != nil {
		return err
	}
	raw, err := hex.DecodeString(s.Key)
	if err != nil {
		return fmt.Errorf("invalid identity key hex: %w", err)
	}
	key, err := model.NewIdentityKey(raw)
	if err != nil {
		return err
	}
	record, event, err := svc.SaveIdentity(ctx, accountID, key)
	if err != nil {
		return err
	}
	if changed, ok := event.Get(); ok {
		fmt.Printf("key rotated: %s -> %s, state %s\n",
			changed.Old.IdentityKey, changed.New.IdentityKey, record.VerificationState)
		return nil
	}
	fmt.Printf("saved, state %s\n", record.VerificationState)
	return nil
}

type verifyCmd struct {
	Account string `arg:"" help:"Account id (UUID)."`
}

func (v *verifyCmd) Run(ctx context.Context, svc *identity.Service) error {
	return setState(ctx, svc, v.Account, model.VerificationStateVerified)
}

type acknowledgeCmd struct {
	Account string `arg:"" help:"Account id (UUID)."`
}

func (a *acknowledgeCmd) Run(ctx context.Context, svc *identity.Service) error {
	return setState(ctx, svc, a.Account, model.VerificationStateDefaultAcknowledged)
}

func setState(ctx context.Context, svc *identity.Service, account string, state model.VerificationState) error {
	accountID, err := model.ParseAccountID(account)
	if err != nil {
		return err
	}
	record, err := svc.SetVerificationState(ctx, accountID, state)
	if err != nil {
		return err
	}
	fmt.Printf("state for %s is now %s\n", accountID, record.VerificationState)
	return nil
}

type checkCmd struct {
	Account string `arg:"" help:"Account id (UUID)."`
	Key     string `arg:"" optional:"" help:"Hex-encoded identity key to check; defaults to the stored key."`
}

func (c *checkCmd) Run(ctx context.Context, svc *identity.Service) error {
	accountID, err := model.ParseAccountID(c.Account)
	if err != nil {
		return err
	}
	var key model.IdentityKey
	if c.Key != "" {
		raw, err := hex.DecodeString(c.Key)
		if err != nil {
			return fmt.Errorf("invalid identity key hex: %w", err)
		}
		if key, err = model.NewIdentityKey(raw); err != nil {
			return err
		}
	} else {
		record, ok := svc.Identity(accountID).Get()
		if !ok {
			return fmt.Errorf("no identity record for %s", accountID)
		}
		key = record.IdentityKey
	}
	if svc.IsTrustedIdentity(accountID, key) {
		fmt.Println("trusted")
		return nil
	}
	fmt.Println("untrusted")
	return nil
}

type deleteCmd struct {
	Account string `arg:"" help:"Account id (UUID)."`
}

func (d *deleteCmd) Run(ctx context.Context, svc *identity.Service) error {
	accountID, err := model.ParseAccountID(d.Account)
	if err != nil {
		return err
	}
	if err := svc.DeleteIdentity(ctx, accountID); err != nil {
		return err
	}
	fmt.Printf("deleted identity record for %s\n", accountID)
	return nil
}
