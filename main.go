package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"planetary/internal/config"
	"planetary/internal/handlers"
	"planetary/internal/mailer"
	"planetary/internal/middleware"
	"planetary/internal/models"
	"planetary/internal/repositories"
	"planetary/internal/services"
	"planetary/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Administrative subcommands mirror the schema lifecycle of the API:
	// create, drop and seed run against the configured database and exit.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "db:create":
			if err := migrate(db); err != nil {
				log.Fatalf("Failed to create schema: %v", err)
			}
			log.Println("Database created!")
		case "db:drop":
			if err := db.Migrator().DropTable(&models.User{}, &models.Planet{}); err != nil {
				log.Fatalf("Failed to drop schema: %v", err)
			}
			log.Println("Database dropped!")
		case "db:seed":
			if err := migrate(db); err != nil {
				log.Fatalf("Failed to create schema: %v", err)
			}
			seedDatabase(db)
			log.Println("Database seeded!")
		default:
			log.Fatalf("Unknown command %q (want db:create, db:drop or db:seed)", os.Args[1])
		}
		return
	}

	if err := migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize RabbitMQ Client (optional) ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Initialize Repositories ---
	planetRepo := repositories.NewGORMPlanetRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// --- Initialize Mailer ---
	smtpMailer := mailer.NewSMTPMailer(mailer.Config{
		Host:     cfg.MailHost,
		Port:     cfg.MailPort,
		Username: cfg.MailUsername,
		Password: cfg.MailPassword,
		Sender:   cfg.MailSender,
	})

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, smtpMailer, cfg.JWTSecret, cfg.TokenTTL)
	planetService := services.NewPlanetService(planetRepo, mqClient)

	// --- Initialize Handlers ---
	miscHandler := handlers.NewMiscHandler()
	authHandler := handlers.NewAuthHandler(authService)
	planetHandler := handlers.NewPlanetHandler(planetService)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New()) // Request logger

	// Public routes
	miscHandler.RegisterRoutes(app)
	authHandler.RegisterRoutes(app)
	planetHandler.RegisterPublicRoutes(app)

	// Mutating planet routes require a valid bearer token
	protected := app.Group("", middleware.AuthRequired(authService))
	planetHandler.RegisterProtectedRoutes(protected)

	// --- Start RabbitMQ Consumer in a Goroutine ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for planet events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received planet event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumePlanetEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase opens a GORM handle for the configured driver. TranslateError
// maps driver-specific duplicate-key failures onto gorm.ErrDuplicatedKey.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}
	if cfg.DBDriver == "postgres" {
		return gorm.Open(postgres.Open(cfg.DBDSN), gormCfg)
	}
	return gorm.Open(sqlite.Open(cfg.DBDSN), gormCfg)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Planet{})
}

// seedDatabase loads the three reference planets and a demo user.
func seedDatabase(db *gorm.DB) {
	planetRepo := repositories.NewGORMPlanetRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	planets := []models.Planet{
		{PlanetName: "Mercury", PlanetType: "Class D", HomeStar: "Sol", Mass: 2.258e23, Radius: 1516, Distance: 35.98e6},
		{PlanetName: "Venus", PlanetType: "Class K", HomeStar: "Sol", Mass: 4.867e24, Radius: 3760, Distance: 67.24e6},
		{PlanetName: "Earth", PlanetType: "Class M", HomeStar: "Sol", Mass: 5.972e24, Radius: 3959, Distance: 92.96e6},
	}
	for i := range planets {
		if err := planetRepo.Create(&planets[i]); err != nil {
			log.Printf("Error seeding planet %s: %v", planets[i].PlanetName, err)
		} else {
			log.Printf("Seeded planet: %s (ID: %d)", planets[i].PlanetName, planets[i].PlanetID)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("P@ssw0rd"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing demo user password: %v", err)
		return
	}
	demoUser := models.User{
		FirstName: "William",
		LastName:  "Herschel",
		Email:     "test@test.com",
		Password:  string(hashed),
	}
	if err := userRepo.Create(&demoUser); err != nil {
		log.Printf("Error seeding user %s: %v", demoUser.Email, err)
	} else {
		log.Printf("Seeded user: %s (ID: %d)", demoUser.Email, demoUser.ID)
	}
}
