package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"crm-admin.backend/internal/config"
	"crm-admin.backend/internal/domain/entities"
	"crm-admin.backend/internal/infrastructure/datasources/postgres"
	"crm-admin.backend/internal/infrastructure/mail"
	"crm-admin.backend/internal/infrastructure/repositories"
	"crm-admin.backend/internal/usecases"
	"crm-admin.backend/pkg/crypto"
	"crm-admin.backend/pkg/logger"
)

// passwordEnv is read when -password is not given, keeping it out of shell history
const passwordEnv = "SUPER_ADMIN_PASSWORD"

var (
	openSQL  = postgres.NewConnection
	openGorm = postgres.NewGorm
	migrate  = postgres.Migrate
)

type superAdminRegistrar interface {
	RegisterSuperAdmin(ctx context.Context, input *entities.RegisterUserInput, password string) (*entities.User, error)
}

type createSuperAdminDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (superAdminRegistrar, io.Closer, error)
	getenv  func(string) string
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultCreateSuperAdminDeps() createSuperAdminDeps {
	return createSuperAdminDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: prepareRegistrar,
		getenv:  os.Getenv,
		out:     os.Stdout,
	}
}

func prepareRegistrar(cfg *config.Config) (superAdminRegistrar, io.Closer, error) {
	sqlDB, err := openSQL(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect db: %w", err)
	}
	db, err := openGorm(sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to init gorm: %w", err)
	}
	registrar, err := newRegistrar(cfg, db)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return registrar, sqlDB, nil
}

func newRegistrar(cfg *config.Config, db *gorm.DB) (*usecases.RegistrationUsecase, error) {
	if err := migrate(db); err != nil {
		return nil, err
	}
	credentials, err := crypto.NewCredentialService(cfg.Security.BcryptCost, cfg.Security.ReferralSalt)
	if err != nil {
		return nil, err
	}

	userRepo := repositories.NewUserRepository(db)
	return usecases.NewRegistrationUsecase(
		repositories.NewUnitOfWork(db),
		userRepo,
		repositories.NewAdminProfileRepository(db),
		usecases.NewRoleRegistry(repositories.NewRoleRepository(db)),
		credentials,
		usecases.NewNotifier(mail.NewMailer(cfg.Mail), cfg.Mail.SupportEmail),
	), nil
}

func runCreateSuperAdmin(args []string, deps createSuperAdminDeps) error {
	def := defaultCreateSuperAdminDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.getenv == nil {
		deps.getenv = def.getenv
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("create-super-admin", flag.ContinueOnError)
	nameFlag := fs.String("name", "", "full name (required)")
	emailFlag := fs.String("email", "", "login email (required)")
	phoneFlag := fs.String("phone", "", "phone number (required)")
	countryFlag := fs.String("country-code", "", "dialing code such as +91, when the phone has none")
	passwordFlag := fs.String("password", "", "password; defaults to $"+passwordEnv)
	if err := fs.Parse(args); err != nil {
		return err
	}

	password := *passwordFlag
	if password == "" {
		password = deps.getenv(passwordEnv)
	}
	required := []struct{ flag, value string }{
		{"-name", *nameFlag},
		{"-email", *emailFlag},
		{"-phone", *phoneFlag},
		{"-password", password},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.flag)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required values: %s", strings.Join(missing, ", "))
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := deps.loadCfg()
	logger.Init(cfg.Server.Env, cfg.Server.LogLevel)

	registrar, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	user, err := registrar.RegisterSuperAdmin(context.Background(), &entities.RegisterUserInput{
		FullName:    *nameFlag,
		Email:       *emailFlag,
		PhoneNumber: *phoneFlag,
		CountryCode: *countryFlag,
	}, password)
	if err != nil {
		return fmt.Errorf("failed creating super admin: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Created super admin")
	_, _ = fmt.Fprintf(deps.out, "user_id=%d\n", user.ID)
	_, _ = fmt.Fprintf(deps.out, "email=%s\n", user.Email)
	_, _ = fmt.Fprintf(deps.out, "referral_code=%s\n", user.ReferralCode)
	return nil
}

func main() {
	if err := runCreateSuperAdmin(os.Args[1:], defaultCreateSuperAdminDeps()); err != nil {
		log.Fatal(err)
	}
}
