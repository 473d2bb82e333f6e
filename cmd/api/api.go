package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitspot/docs"
	"fitspot/internal/auth"
	"fitspot/internal/geo"
	"fitspot/internal/mailer"
	"fitspot/internal/notifications"
	"fitspot/internal/ratelimiter"
	"fitspot/internal/region"
	"fitspot/internal/store"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/patrickmn/go-cache"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// locationSearcher is what the locations handlers need from the resolver.
type locationSearcher interface {
	Search(ctx context.Context, query string) []geo.Location
}

type application struct {
	config          config
	store           store.Storage
	logger          *zap.SugaredLogger
	cld             *cloudinary.Cloudinary
	mailer          mailer.Client
	authenticator   auth.Authenticator
	rateLimiter     ratelimiter.Limiter
	resolver        locationSearcher
	regions         *region.Catalog
	recentLocations *cache.Cache
	push            notifications.PushSender
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	frontendURL string
	mail        mailConfig
	auth        authConfig
	rateLimiter ratelimiter.Config
	geocoder    geocoderConfig
	refSalt     string
}

type geocoderConfig struct {
	baseURL   string
	userAgent string
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret          string
	refreshSecret   string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	iss             string
}

type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	exp       time.Duration
	fromEmail string
	mailtrap  mailTrapConfig
}

type mailTrapConfig struct {
	apiKey string
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Cut off requests that outlive their usefulness.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Route("/locations", func(r chi.Router) {
			r.Get("/search", app.searchLocationsHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Get("/recent", app.recentLocationsHandler)
				r.Post("/recent", app.saveRecentLocationHandler)
			})
		})

		r.Route("/regions", func(r chi.Router) {
			r.Get("/", app.listRegionsHandler)
			r.Get("/lookup", app.lookupRegionHandler)
		})

		r.Route("/classes", func(r chi.Router) {
			r.Get("/", app.listClassesHandler)
			r.Get("/{classID}", app.getClassHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Post("/", app.createClassHandler)
				r.Post("/{classID}/bookings", app.createBookingHandler)

				r.Group(func(r chi.Router) {
					r.Use(app.RequireClassInstructor)
					r.Post("/{classID}/photo", app.uploadClassPhotoHandler)
					r.Get("/{classID}/bookings", app.listClassBookingsHandler)
					r.Patch("/{classID}/bookings/{bookingID}", app.updateBookingStatusHandler)
				})
			})
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/", app.myBookingsHandler)
			r.Delete("/{bookingID}", app.cancelBookingHandler)
		})

		// Route that does NOT require authentication
		r.Put("/users/activate/{token}", app.activateUserHandler)

		r.Route("/users", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Put("/", app.updateUserHandler)
			r.Post("/profile-picture", app.uploadProfilePictureHandler)
			r.Post("/push-token", app.registerPushTokenHandler)
			r.Post("/logout", app.logoutHandler)
		})

		// Public routes
		r.Route("/authentication", func(r chi.Router) {
			r.Post("/user", app.registerUserHandler)
			r.Post("/token", app.createTokenHandler)
			r.Post("/refresh", app.refreshTokenHandler)
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
