package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-backend/api"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if config.GetBool(config.New(), "LOG_PRETTY", false) {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	c, err := loadConfig()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Error loading configuration")
	}

	connStr, err := connectionString(c)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Unsupported database configuration")
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:    false,
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("Error connecting to database")
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		zlog.Fatal().Err(err).Msg("Error testing database connection")
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		fmt.Println("Generating models and query helpers...")
		if err := models.GenerateModels(db); err != nil {
			zlog.Fatal().Err(err).Msg("Model generation failed")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		fmt.Println("Generating column mismatch report...")
		if err := models.WriteColumnReport(os.Stdout, db); err != nil {
			zlog.Fatal().Err(err).Msg("Column report failed")
		}
		return
	}

	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatal().Err(err).Msg("Error migrating database")
	}

	if replicas := config.GetList(c, "DB_REPLICA_DSN"); len(replicas) > 0 {
		dialectors := make([]gorm.Dialector, len(replicas))
		for i, dsn := range replicas {
			dialectors[i] = postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true})
		}
		if err := database.UseReplicas(db, dialectors...); err != nil {
			zlog.Fatal().Err(err).Msg("Error registering read replicas")
		}
		zlog.Info().Int("replicas", len(replicas)).Msg("Read replicas registered")
	}

	currentDB := database.New(db)
	seedAdmin(c, currentDB)

	opts := []api.Option{notifierOption(c)}
	if uploader := newUploader(c); uploader != nil {
		opts = append(opts, api.WithUploader(uploader))
	}

	errChannel := newErrChannel()

	server, err := api.NewServer(c, currentDB, opts...)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// loadConfig reads the environment and, when SSM_PARAMETER_PREFIX is set, lays
// Parameter Store values over it.
func loadConfig() (map[string]string, error) {
	c := config.New()
	prefix := config.GetString(c, "SSM_PARAMETER_PREFIX", "")
	if prefix == "" {
		return c, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := config.NewSSMClient(ctx, config.GetString(c, "AWS_REGION", ""))
	if err != nil {
		return nil, err
	}
	params, err := config.LoadSSMParameters(ctx, client, prefix)
	if err != nil {
		return nil, err
	}
	zlog.Info().Int("parameters", len(params)).Str("prefix", prefix).Msg("Loaded SSM parameters")
	return config.Merge(c, params), nil
}

// connectionString builds the DSN based on DB_TYPE
func connectionString(c map[string]string) (string, error) {
	dbType := config.GetString(c, "DB_TYPE", "")
	fmt.Printf("DB_TYPE: %s\n", dbType)

	switch strings.ToLower(dbType) {
	case "supa":
		fmt.Println("Connecting to Supabase database...")
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(c, "SUPABASE_DB_HOST", ""),
			config.GetString(c, "SUPABASE_DB_USER", ""),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", ""),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		), nil
	case "postgres":
		dsn := config.GetString(c, "DATABASE_URL", "")
		if dsn == "" {
			return "", fmt.Errorf("DATABASE_URL must be set when DB_TYPE=postgres")
		}
		fmt.Println("Connecting to PostgreSQL database...")
		return dsn, nil
	default:
		return "", fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}
}

// seedAdmin makes sure the configured owner account exists with the ADMIN role
func seedAdmin(c map[string]string, db database.Database) {
	email := config.GetString(c, "ADMIN_EMAIL", "")
	password := config.GetString(c, "ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Error hashing admin password")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := db.SeedAdmin(ctx, config.GetString(c, "ADMIN_NAME", "Admin"), email, hash)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Error seeding admin user")
	}
	zlog.Info().Bool("created", created).Str("email", email).Msg("Admin user ensured")
}

// notifierOption sets up every notification channel that has credentials configured
func notifierOption(c map[string]string) api.Option {
	var notifiers services.Notifiers

	if to := config.GetList(c, "CONTACT_NOTIFY_EMAIL"); len(to) > 0 {
		mailer, err := services.NewMailer(
			config.GetString(c, "RESEND_API_KEY", ""),
			config.GetString(c, "RESEND_FROM_EMAIL", ""),
		)
		if err != nil {
			zlog.Warn().Err(err).Msg("Email notifications disabled")
		} else {
			notifiers = append(notifiers, services.EmailNotifier{Mailer: mailer, Recipients: to})
		}
	}

	if to := config.GetString(c, "CONTACT_NOTIFY_PHONE", ""); to != "" {
		sender, err := services.NewSMSSender(
			config.GetString(c, "TWILIO_ACCOUNT_SID", ""),
			config.GetString(c, "TWILIO_AUTH_TOKEN", ""),
			config.GetString(c, "TWILIO_FROM_NUMBER", ""),
		)
		if err != nil {
			zlog.Warn().Err(err).Msg("SMS notifications disabled")
		} else {
			notifiers = append(notifiers, services.SMSNotifier{Sender: sender, To: to})
		}
	}

	zlog.Info().Int("channels", len(notifiers)).Msg("Contact notifications configured")
	if len(notifiers) == 0 {
		return api.WithNotifier(nil)
	}
	return api.WithNotifier(notifiers)
}

// newUploader returns nil when no bucket is configured
func newUploader(c map[string]string) *services.Uploader {
	bucket := config.GetString(c, "S3_BUCKET", "")
	if bucket == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	uploader, err := services.NewS3Uploader(ctx,
		config.GetString(c, "S3_REGION", config.GetString(c, "AWS_REGION", "")),
		bucket,
		config.GetString(c, "S3_PUBLIC_BASE_URL", ""),
	)
	if err != nil {
		zlog.Warn().Err(err).Msg("File uploads disabled")
		return nil
	}
	return uploader
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
// newErrChannel has a slot for the server and the signal listener, so the
// sender that loses the race never blocks and the channel is never closed.
func newErrChannel() chan error {
	return make(chan error, 2)
}

func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
