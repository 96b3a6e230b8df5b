package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riggerbackend/config"
	"riggerbackend/cron"
	"riggerbackend/database"
	billingRepoPkg "riggerbackend/database/repository/billing"
	contributionRepoPkg "riggerbackend/database/repository/contribution"
	earningsRepoPkg "riggerbackend/database/repository/earnings"
	jobRepoPkg "riggerbackend/database/repository/job"
	transactionRepoPkg "riggerbackend/database/repository/transaction"
	userRepoPkg "riggerbackend/database/repository/user"
	"riggerbackend/handlers"
	"riggerbackend/routes"
	"riggerbackend/services/billing"
	"riggerbackend/services/contribution"
	"riggerbackend/services/earnings"
	"riggerbackend/services/job"
	"riggerbackend/services/notification"
	"riggerbackend/services/payment"
	"riggerbackend/services/stats"
	"riggerbackend/services/transparency"
	"riggerbackend/services/user"
	"riggerbackend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	jobRepo := jobRepoPkg.NewMongoJobRepo()
	txnRepo := transactionRepoPkg.NewMongoTransactionRepo()
	contributionRepo := contributionRepoPkg.NewMongoContributionRepo()
	earningsRepo := earningsRepoPkg.NewMongoEarningsRepo()
	billingRepo := billingRepoPkg.NewMongoBillingRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:   userRepo,
		Logger: logger,
	}
	jobService := &job.DefaultJobService{
		Repo:   jobRepo,
		Logger: logger,
	}
	ledgerService := &contribution.DefaultLedgerService{
		Repo:    contributionRepo,
		TxnRepo: txnRepo,
		Logger:  logger,
	}
	aggregator := &earnings.DefaultAggregator{
		Repo:   earningsRepo,
		Logger: logger,
	}
	statsRecorder := stats.NewLogRecorder(logger)
	billingService := &billing.DefaultBillingService{
		Transactions:      txnRepo,
		Jobs:              jobRepo,
		Billing:           billingRepo,
		Ledger:            ledgerService,
		Earnings:          aggregator,
		Processor:         payment.NewStripeProcessor(logger),
		NGO:               notification.NewLogNGONotifier(logger),
		Stats:             statsRecorder,
		Logger:            logger,
		Currency:          config.AppConfig.DefaultCurrency,
		ProcessorTimeout:  time.Duration(config.AppConfig.ProcessorTimeoutSeconds) * time.Second,
		TrackOnCompletion: config.AppConfig.ContributionTrackOnCompletion,
	}
	transparencyService := &transparency.DefaultService{
		Ledger: ledgerService,
		Logger: logger,
	}

	// handlers.
	userHandler := &handlers.UserHandler{UserService: userService}
	jobHandler := &handlers.JobHandler{JobService: jobService}
	billingHandler := &handlers.BillingHandler{BillingService: billingService}
	earningsHandler := &handlers.EarningsHandler{Aggregator: aggregator}
	transparencyHandler := &handlers.TransparencyHandler{Transparency: transparencyService}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		// User endpoints.
		RegisterUserHandler:        userHandler.RegisterUserHandler,
		AuthenticateUserHandler:    userHandler.AuthenticateUserHandler,
		GetUserByIDHandler:         userHandler.GetUserByIDHandler,
		UpdateUserHandler:          userHandler.UpdateUserHandler,
		DeleteUserHandler:          userHandler.DeleteUserHandler,
		RevokeUserAuthTokenHandler: userHandler.RevokeUserAuthTokenHandler,

		// Job endpoints.
		CreateJobHandler:   jobHandler.CreateJobHandler,
		GetJobHandler:      jobHandler.GetJobHandler,
		SearchJobsHandler:  jobHandler.SearchJobsHandler,
		UpdateJobHandler:   jobHandler.UpdateJobHandler,
		AssignJobHandler:   jobHandler.AssignJobHandler,
		CompleteJobHandler: jobHandler.CompleteJobHandler,
		CancelJobHandler:   jobHandler.CancelJobHandler,
		DeleteJobHandler:   jobHandler.DeleteJobHandler,

		// Billing endpoints.
		ProcessJobPaymentHandler:     billingHandler.ProcessJobPaymentHandler,
		ProcessRenewalHandler:        billingHandler.ProcessRenewalHandler,
		ProcessRecruitmentFeeHandler: billingHandler.ProcessRecruitmentFeeHandler,

		// Earnings endpoints.
		GetEarningsSummaryHandler: earningsHandler.GetEarningsSummaryHandler,
		GetEarningsReportHandler:  earningsHandler.GetEarningsReportHandler,

		// Transparency endpoints.
		GetTransparencyReportHandler: transparencyHandler.GetTransparencyReportHandler,
		GetPublicDashboardHandler:    transparencyHandler.GetPublicDashboardHandler,
		ReconcileLedgerHandler:       transparencyHandler.ReconcileLedgerHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the renewal worker.
	cron.InitRenewalWorker(billingRepo, billingService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	statsRecorder.Flush()
	logger.Sugar().Info("main: server stopped gracefully")
}
