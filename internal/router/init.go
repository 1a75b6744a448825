package router

import (
	"github.com/learnsphere/learnsphere-api/internal/application"
	"github.com/learnsphere/learnsphere-api/internal/container"
	pginfra "github.com/learnsphere/learnsphere-api/internal/infrastructure/postgres"
	handlers "github.com/learnsphere/learnsphere-api/internal/interface/http"
	"github.com/learnsphere/learnsphere-api/internal/router/modules"
)

// InitModules builds repositories, services and handlers from the container
// singletons and registers every feature module with the registry.
// Called once during application startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	users := pginfra.NewUserRepository(pool)
	courses := pginfra.NewCourseRepository(pool)
	enrollments := pginfra.NewEnrollmentRepository(pool)
	wishlist := pginfra.NewWishlistRepository(pool)

	// Keep a typed nil out of the EmailPublisher interface when RabbitMQ
	// is not configured.
	var pub application.EmailPublisher
	if rp := container.GetRabbitPub(); rp != nil {
		pub = rp
	}

	authSvc := application.NewAuthService(users, jwt, pub, logger, cfg.BcryptCost, cfg.MailSendEnabled)
	userSvc := application.NewUserService(users, container.GetGCS(), cfg.GCSBucket, logger, cfg.BcryptCost)
	courseSvc := application.NewCourseService(courses, container.GetGCS(), cfg.GCSBucket, container.GetES(), cfg.ESCoursesIndex, logger)
	enrollSvc := application.NewEnrollmentService(enrollments, courses)
	wishSvc := application.NewWishlistService(wishlist, courses)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), jwt))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt))
	r.Add(modules.NewCourseModule(handlers.NewCourseHandler(courseSvc, logger), jwt))
	r.Add(modules.NewEnrollmentModule(handlers.NewEnrollmentHandler(enrollSvc, logger), jwt))
	r.Add(modules.NewWishlistModule(handlers.NewWishlistHandler(wishSvc, logger), jwt))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
