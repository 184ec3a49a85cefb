package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hcas/hcas/internal/config"
	"github.com/hcas/hcas/internal/domain/appointment"
	"github.com/hcas/hcas/internal/domain/clinic"
	"github.com/hcas/hcas/internal/domain/doctor"
	"github.com/hcas/hcas/internal/domain/patient"
	"github.com/hcas/hcas/internal/platform/auth"
	"github.com/hcas/hcas/internal/platform/db"
	"github.com/hcas/hcas/internal/platform/lock"
	"github.com/hcas/hcas/internal/platform/middleware"
	"github.com/hcas/hcas/internal/scheduling"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hcas-server",
		Short: "Healthcare appointment scheduling API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduling API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	// migrate up
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	// migrate status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	// migrate down - keep as warning
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Rollback last migration (not supported)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("WARNING: migrate down is destructive and not supported by the built-in runner.")
			fmt.Println("Restore from a backup or write a forward migration instead.")
			return nil
		},
	})

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Redis booking lock. In development a missing Redis degrades to a
	// process-local no-op lock; in production it is required.
	var locker lock.BookingLocker
	redisClient, err := lock.NewClient(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		if !cfg.IsDev() {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		logger.Warn().Err(err).Msg("redis unavailable, booking lock disabled")
		locker = lock.NoopLocker{}
	} else {
		defer redisClient.Close()
		locker = lock.NewRedisBookingLocker(redisClient, time.Duration(cfg.BookingLockTTLSeconds)*time.Second)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("connected to redis")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
	}))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevMiddleware())
	} else {
		e.Use(auth.Middleware(auth.Config{
			Secret: []byte(cfg.JWTSecret),
			Issuer: "hcas",
		}))
	}

	// API group with rate limiting
	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Repositories
	doctorRepo := doctor.NewRepo(pool)
	patientRepo := patient.NewRepo(pool)
	clinicRepo := clinic.NewRepo(pool)
	apptRepo := appointment.NewRepo(pool)

	// Services. The scheduling services consult each other (a booking checks
	// the doctor's clinic contract, a clinic schedule walks the doctor
	// roster), so cross-domain lookups are wired in a second pass once every
	// service exists.
	doctorSvc := doctor.NewService(doctorRepo)
	patientSvc := patient.NewService(patientRepo)
	clinicSvc := clinic.NewService(clinicRepo)
	apptSvc := appointment.NewService(apptRepo, locker, func(ctx context.Context, fn func(ctx context.Context) error) error {
		return db.WithTx(ctx, pool, fn)
	})

	doctorSvc.SetDirectories(clinicSvc, apptSvc)
	clinicSvc.SetSources(doctorSvc, apptSvc)
	apptSvc.SetDirectories(doctorSvc, patientSvc, clinicSvc)

	// Handlers
	doctor.NewHandler(doctorSvc).RegisterRoutes(apiV1)
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)
	clinic.NewHandler(clinicSvc).RegisterRoutes(apiV1)
	appointment.NewHandler(apptSvc).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with fake demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			doctors, _ := cmd.Flags().GetInt("doctors")
			patients, _ := cmd.Flags().GetInt("patients")
			clinics, _ := cmd.Flags().GetInt("clinics")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			gofakeit.Seed(time.Now().UnixNano())

			clinicIDs, err := seedClinics(ctx, pool, clinics)
			if err != nil {
				return fmt.Errorf("seed clinics: %w", err)
			}
			if err := seedDoctors(ctx, pool, doctors, clinicIDs); err != nil {
				return fmt.Errorf("seed doctors: %w", err)
			}
			if err := seedPatients(ctx, pool, patients); err != nil {
				return fmt.Errorf("seed patients: %w", err)
			}

			fmt.Printf("Seeded %d clinic(s), %d doctor(s), %d patient(s).\n", clinics, doctors, patients)
			return nil
		},
	}
	cmd.Flags().Int("doctors", 20, "Number of doctors to create")
	cmd.Flags().Int("patients", 200, "Number of patients to create")
	cmd.Flags().Int("clinics", 4, "Number of clinics to create")
	return cmd
}

func seedClinics(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		name := gofakeit.Company() + " Clinic"
		email := gofakeit.Email()
		phone := gofakeit.Phone()

		// 08:00 to 18:00
		_, err := tx.Exec(ctx, `
			INSERT INTO clinic (id, name, email, phone, address, opens_at, closes_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, id, name, email, phone, gofakeit.Address().Address, 8*60, 18*60)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

func seedDoctors(ctx context.Context, pool *pgxpool.Pool, count int, clinicIDs []uuid.UUID) error {
	specialties := []doctor.Specialty{
		doctor.SpecialtyGeneralPractitioner,
		doctor.SpecialtyCardiologist,
		doctor.SpecialtyDermatologist,
		doctor.SpecialtyNeurologist,
		doctor.SpecialtyOrthopedist,
		doctor.SpecialtyPediatrician,
		doctor.SpecialtyPsychiatrist,
		doctor.SpecialtyRadiologist,
		doctor.SpecialtyOphthalmologist,
	}
	slotChoices := []int{15, 30, 60}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	today := time.Now().Truncate(24 * time.Hour)

	for i := 0; i < count; i++ {
		id := uuid.New()
		specialty := specialties[gofakeit.Number(0, len(specialties)-1)]
		slot := slotChoices[gofakeit.Number(0, len(slotChoices)-1)]

		// Half the roster works mornings, half evenings.
		shift := scheduling.ShiftMorning
		start, end := 9*60, 12*60
		if i%2 == 1 {
			shift = scheduling.ShiftEvening
			start, end = 13*60, 17*60
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO doctor (
				id, first_name, last_name, email, phone, license_number, specialty,
				available_start, available_end, slot_minutes
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`, id, gofakeit.FirstName(), gofakeit.LastName(), gofakeit.Email(), gofakeit.Phone(),
			fmt.Sprintf("LIC-%06d", gofakeit.Number(100000, 999999)), specialty, start, end, slot)
		if err != nil {
			return err
		}

		if len(clinicIDs) > 0 {
			clinicID := clinicIDs[gofakeit.Number(0, len(clinicIDs)-1)]
			_, err := tx.Exec(ctx, `
				INSERT INTO doctor_clinic (id, doctor_id, clinic_id, start_date, end_date, shift)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, uuid.New(), id, clinicID, today.AddDate(0, -1, 0), today.AddDate(0, 6, 0), shift)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) error {
	const batchSize = 500

	now := time.Now()

	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}

		for i := offset; i < end; i++ {
			dob := gofakeit.DateRange(now.AddDate(-90, 0, 0), now.AddDate(-1, 0, 0))
			gender := []string{"male", "female", "other"}[gofakeit.Number(0, 2)]

			_, err := tx.Exec(ctx, `
				INSERT INTO patient (
					id, first_name, last_name, email, phone, gender, address,
					date_of_birth, emergency_contact
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			`, uuid.New(), gofakeit.FirstName(), gofakeit.LastName(), gofakeit.Email(),
				gofakeit.Phone(), gender, gofakeit.Address().Address, dob, gofakeit.Phone())
			if err != nil {
				_ = tx.Rollback(ctx)
				return err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}
	}

	return nil
}
