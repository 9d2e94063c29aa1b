package main

import (
	"github.com/gin-gonic/gin"

	"crm-admin.backend/internal/config"
	"crm-admin.backend/internal/infrastructure/repositories"
	"crm-admin.backend/internal/interfaces/http/handlers"
	"crm-admin.backend/internal/interfaces/http/middleware"
	"crm-admin.backend/internal/usecases"
	"crm-admin.backend/pkg/crypto"
	"crm-admin.backend/pkg/jwt"
	"crm-admin.backend/pkg/redis"
)

const lockKeyPrefix = "crm:"

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	adminHandler        *handlers.AdminHandler
	salesPersonHandler  *handlers.SalesPersonHandler
	timeTrackingHandler *handlers.TimeTrackingHandler
	profileImageHandler *handlers.ProfileImageHandler
	guard               middleware.Authorizer
	idempotency         gin.HandlerFunc
}

// buildRouter wires repositories, usecases and handlers onto a new engine
func buildRouter(cfg *config.Config, in infra) (*gin.Engine, error) {
	credentials, err := crypto.NewCredentialService(cfg.Security.BcryptCost, cfg.Security.ReferralSalt)
	if err != nil {
		return nil, err
	}
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
		jwt.WithAlgorithm(cfg.JWT.Algorithm),
	)

	userRepo := repositories.NewUserRepository(in.db)
	roleRepo := repositories.NewRoleRepository(in.db)
	adminRepo := repositories.NewAdminProfileRepository(in.db)
	salesPersonRepo := repositories.NewSalesPersonProfileRepository(in.db)
	timeTrackingRepo := repositories.NewTimeTrackingRepository(in.db)
	uow := repositories.NewUnitOfWork(in.db)

	roles := usecases.NewRoleRegistry(roleRepo)
	notifier := usecases.NewNotifier(in.mailer, cfg.Mail.SupportEmail)
	guard := usecases.NewAccessGuard(jwtService, userRepo, roles)

	authUsecase := usecases.NewAuthUsecase(userRepo, adminRepo, roles, credentials, jwtService)
	registrationUsecase := usecases.NewRegistrationUsecase(uow, userRepo, adminRepo, roles, credentials, notifier)
	blockUsecase := usecases.NewBlockUsecase(userRepo, roles, salesPersonRepo, adminRepo)
	adminUsecase := usecases.NewAdminUsecase(uow, userRepo, adminRepo)
	salesPersonUsecase := usecases.NewSalesPersonUsecase(uow, userRepo, salesPersonRepo, roles, credentials, notifier)
	profileImageUsecase := usecases.NewProfileImageUsecase(in.blobs, salesPersonRepo, adminRepo, cfg.Upload.MaxImageBytes)
	timeTrackingUsecase := usecases.NewTimeTrackingUsecase(
		timeTrackingRepo,
		redis.NewKeyedLocker(nil, lockKeyPrefix, cfg.TimeTracking.LockTTL),
		durationPolicy(cfg.TimeTracking),
	)

	r := gin.New()
	r.MaxMultipartMemory = int64(profileImageUsecase.MaxBytes()) + 1<<20
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r, in.checks)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:         handlers.NewAuthHandler(authUsecase),
		adminHandler:        handlers.NewAdminHandler(adminUsecase, registrationUsecase, blockUsecase),
		salesPersonHandler:  handlers.NewSalesPersonHandler(salesPersonUsecase, registrationUsecase, blockUsecase),
		timeTrackingHandler: handlers.NewTimeTrackingHandler(timeTrackingUsecase),
		profileImageHandler: handlers.NewProfileImageHandler(profileImageUsecase, int64(profileImageUsecase.MaxBytes())),
		guard:               guard,
		idempotency:         middleware.IdempotencyMiddleware(),
	})
	return r, nil
}

func durationPolicy(cfg config.TimeTrackingConfig) usecases.DurationPolicy {
	return usecases.DurationPolicy{
		CutoffHour:      cfg.CutoffHour,
		LogoutShift:     cfg.LogoutShift,
		DurationPenalty: cfg.DurationPenalty,
		LoginOffset:     cfg.LoginOffset,
		Location:        cfg.Location(),
	}
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Public
		v1.POST("/user_email_login", d.authHandler.Login)
		v1.POST("/auth/refresh", d.authHandler.RefreshToken)

		// Any authenticated role
		authenticated := v1.Group("")
		authenticated.Use(middleware.RequireRoles(d.guard, usecases.AnyAuthenticated...))
		{
			authenticated.POST("/user/logout", d.authHandler.Logout)
			authenticated.GET("/profile-image/:category/:file_id", d.profileImageHandler.Download)
		}

		superAdmin := v1.Group("/super-admin")
		superAdmin.Use(middleware.RequireRoles(d.guard, usecases.SuperAdminOnly...))
		{
			superAdmin.POST("/admins", d.idempotency, d.adminHandler.RegisterAdmin)
			superAdmin.GET("/admins", d.adminHandler.ListAdmins)
			superAdmin.GET("/admins/blocked", d.adminHandler.ListBlockedAdmins)
			superAdmin.GET("/admins/:admin_id", d.adminHandler.GetAdmin)
			superAdmin.PUT("/admins/:admin_id", d.adminHandler.UpdateAdmin)
			superAdmin.PUT("/admins/:admin_id/block", d.adminHandler.BlockAdmin)
			superAdmin.PUT("/admins/:admin_id/unblock", d.adminHandler.UnblockAdmin)
			superAdmin.POST("/admins/:admin_id/image", d.profileImageHandler.UploadAdminImage)
			superAdmin.DELETE("/admins/:admin_id/image", d.profileImageHandler.DeleteAdminImage)
		}

		// Admin self profile is not open to super admins
		v1.GET("/admin/profile", middleware.RequireRoles(d.guard, usecases.AdminOnly...), d.adminHandler.SelfProfile)

		admin := v1.Group("/admin")
		admin.Use(middleware.RequireRoles(d.guard, usecases.AdminOrAbove...))
		{
			admin.POST("/register", d.idempotency, d.salesPersonHandler.Register)
			admin.POST("/sales-persons", d.idempotency, d.salesPersonHandler.CreateProfile)
			admin.GET("/sales-persons", d.salesPersonHandler.List)
			admin.GET("/sales-persons/blocked", d.salesPersonHandler.ListBlocked)
			admin.GET("/sales-persons/:id", d.salesPersonHandler.Get)
			admin.PUT("/sales-persons/:id", d.salesPersonHandler.Update)
			admin.POST("/sales-persons/:id/reset-password", d.salesPersonHandler.ResetPassword)
			admin.PUT("/sales-persons/:id/block", d.salesPersonHandler.Block)
			admin.PUT("/sales-persons/:id/unblock", d.salesPersonHandler.Unblock)
			admin.POST("/sales-persons/:id/image", d.profileImageHandler.UploadSalesPersonImage)
			admin.DELETE("/sales-persons/:id/image", d.profileImageHandler.DeleteSalesPersonImage)
			admin.GET("/time-logs", d.timeTrackingHandler.ListAll)
		}

		salesPerson := v1.Group("/sales-person")
		salesPerson.Use(middleware.RequireRoles(d.guard, usecases.SalesPersonOnly...))
		{
			salesPerson.GET("/profile", d.salesPersonHandler.SelfProfile)
			salesPerson.GET("/team-members", d.salesPersonHandler.TeamMembers)
			salesPerson.POST("/time-logs/start", d.timeTrackingHandler.Start)
			salesPerson.POST("/time-logs/end", d.timeTrackingHandler.End)
			salesPerson.GET("/time-logs", d.timeTrackingHandler.ListOwn)
		}
	}
}
