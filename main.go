package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	api "github.com/renecastillotv/clic-api-neon-sub000/api"
	"github.com/renecastillotv/clic-api-neon-sub000/config"
	"github.com/renecastillotv/clic-api-neon-sub000/database"
	"github.com/renecastillotv/clic-api-neon-sub000/models"
	"github.com/renecastillotv/clic-api-neon-sub000/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	gormConfig := &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	}

	dbType := config.GetString(c, "DB_TYPE", "postgres")
	fmt.Printf("DB_TYPE: %s\n", dbType)

	var dialector gorm.Dialector
	switch dbType {
	case "postgres", "supa":
		fmt.Println("Connecting to Postgres database...")
		dialector = postgres.New(postgres.Config{
			DSN:                  postgresDSN(c),
			PreferSimpleProtocol: true,
		})
	case "sqlite":
		path := config.GetString(c, "SQLITE_PATH", "tags.db")
		fmt.Printf("Opening SQLite database at %s...\n", path)
		dialector = sqlite.Open(path)
	default:
		fmt.Println("Unsupported DB_TYPE. Exiting...")
		os.Exit(1)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		fmt.Printf("Error testing database connection: %v\n", err)
		os.Exit(1)
	}

	if replicas := config.GetList(c, "DB_REPLICA_DSN", nil); len(replicas) > 0 && dbType != "sqlite" {
		dialectors := make([]gorm.Dialector, 0, len(replicas))
		for _, dsn := range replicas {
			dialectors = append(dialectors, postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}))
		}
		if err := database.RegisterReplicas(db, dialectors...); err != nil {
			fmt.Printf("Error registering read replicas: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registered %d read replica(s)\n", len(dialectors))
	}

	if strings.ToLower(config.GetString(c, "AUTO_MIGRATE", "false")) == "true" {
		fmt.Println("Migrating schema...")
		if err := models.Migrate(db); err != nil {
			fmt.Printf("Error migrating schema: %v\n", err)
			os.Exit(1)
		}
	}

	// If generating models, run generation and exit
	if strings.ToLower(config.GetString(c, "GENERATE_MODELS", "false")) == "true" {
		fmt.Println("Generating models and query helpers...")
		models.GenerateModels(db)
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetString(c, "GENERATE_COLUMN_REPORT", "false") == "true" {
		fmt.Println("Generating column mismatch report...")
		models.GenerateColumnMismatchReportStandalone(db)
		return
	}

	engine := services.NewEngineFromDatabase(database.New(db), config.NewTagging(c))

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(engine, c)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

func postgresDSN(c map[string]string) string {
	if dsn := config.GetString(c, "DATABASE_URL", ""); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(c, "DB_HOST", "localhost"),
		config.GetString(c, "DB_USER", ""),
		config.GetString(c, "DB_PASSWORD", ""),
		config.GetString(c, "DB_NAME", ""),
		config.GetString(c, "DB_PORT", "5432"),
		config.GetString(c, "DB_SSLMODE", "require"),
	)
}
