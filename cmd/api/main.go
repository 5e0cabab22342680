package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bankass/awards-api/internal/config"
	"github.com/bankass/awards-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/bankass/awards-api/internal/infrastructure/jwt"
	s3infra "github.com/bankass/awards-api/internal/infrastructure/s3"
	"github.com/bankass/awards-api/internal/infrastructure/smtp"
	"github.com/bankass/awards-api/internal/infrastructure/sns"
	"github.com/bankass/awards-api/internal/pending"
	transporthttp "github.com/bankass/awards-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// In-memory registry for verification sessions awaiting confirmation.
	pendingSessions := pending.New()
	defer pendingSessions.Close()

	// JWT provider is optional. Without key files the public routes still work.
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// S3 store for candidate media.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender is optional. Broadcasts skip SMS when it is absent.
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	deps := &transporthttp.Deps{
		UserRepo:         dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		SessionRepo:      dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions),
		CategoryRepo:     dynamo.NewCategoryRepo(dynamoClient, cfg.DynamoTables.Categories),
		CandidateRepo:    dynamo.NewCandidateRepo(dynamoClient, cfg.DynamoTables.Candidates),
		VoteRepo:         dynamo.NewVoteRepo(dynamoClient, cfg.DynamoTables.Votes),
		NotificationRepo: dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications),
		AdminMessageRepo: dynamo.NewAdminMessageRepo(dynamoClient, cfg.DynamoTables.AdminMessages),
		VerificationRepo: dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.EmailVerifications),
		VotingConfigRepo: dynamo.NewVotingConfigRepo(dynamoClient, cfg.DynamoTables.VotingConfig),
		RegistrationRepo: dynamo.NewDeviceRegistrationRepo(dynamoClient, cfg.DynamoTables.DeviceRegistrations),
		PendingSessions:  pendingSessions,
		S3Store:          s3Store,
		Mailer:           mailer,
		SMSSender:        smsSender,
		JWTProvider:      jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
