package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/transgare/backoffice/internal/cashier"
	cashierApp "github.com/transgare/backoffice/internal/cashier/application"
	cashierDomain "github.com/transgare/backoffice/internal/cashier/domain"
	cashierInfra "github.com/transgare/backoffice/internal/cashier/infrastructure"
	"github.com/transgare/backoffice/internal/config"
	"github.com/transgare/backoffice/internal/pricing"
	pricingApp "github.com/transgare/backoffice/internal/pricing/application"
	pricingInfra "github.com/transgare/backoffice/internal/pricing/infrastructure"
	"github.com/transgare/backoffice/internal/ticket"
	ticketApp "github.com/transgare/backoffice/internal/ticket/application"
	ticketDomain "github.com/transgare/backoffice/internal/ticket/domain"
	ticketInfra "github.com/transgare/backoffice/internal/ticket/infrastructure"
	"github.com/transgare/backoffice/internal/trip"
	tripApp "github.com/transgare/backoffice/internal/trip/application"
	tripDomain "github.com/transgare/backoffice/internal/trip/domain"
	tripInfra "github.com/transgare/backoffice/internal/trip/infrastructure"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
	pkgInfra "github.com/transgare/backoffice/pkg/infrastructure"
	zapAdapter "github.com/transgare/backoffice/pkg/infrastructure/zaplogger/adapter"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = godotenv.Load()

	appLogger, err := zapAdapter.NewZapAppLogger()
	if err != nil {
		panic(err)
	}

	fail := func(msg string, err error) {
		appLogger.Error(ctx, msg, map[string]interface{}{"error": err})
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		fail("failed to load configuration", err)
	}

	idGenerator := pkgDomain.IDGenerator[string](pkgInfra.GenerateUUID)

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost user=gare password=gare dbname=gare port=5432 sslmode=disable TimeZone=UTC"
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		fail("failed to connect to database", err)
	}

	ruleRepo, err := pricingInfra.NewGormRuleRepository(db, appLogger)
	if err != nil {
		fail("failed to initialize pricing repository", err)
	}
	routeRepo, err := tripInfra.NewGormRouteRepository(db, appLogger)
	if err != nil {
		fail("failed to initialize route repository", err)
	}
	stationRepo, err := tripInfra.NewGormStationRepository(db, appLogger)
	if err != nil {
		fail("failed to initialize station repository", err)
	}
	templateRepo, err := tripInfra.NewGormTemplateRepository(db, appLogger)
	if err != nil {
		fail("failed to initialize template repository", err)
	}
	tripRepo, err := tripInfra.NewGormTripRepository(db, appLogger)
	if err != nil {
		fail("failed to initialize trip repository", err)
	}
	ticketRepo, err := ticketInfra.NewGormTicketRepository(db, appLogger)
	if err != nil {
		fail("failed to initialize ticket repository", err)
	}
	transactionRepo, err := cashierInfra.NewGormTransactionRepository(db, appLogger)
	if err != nil {
		fail("failed to initialize transaction repository", err)
	}

	generator := tripApp.NewGenerator(templateRepo, routeRepo, tripRepo, ruleRepo, cfg.BoardingWindow(), nil, appLogger)
	seatLedger := ticketDomain.NewSeatLedger(tripRepo, ticketRepo)
	cashLedger := cashierApp.NewLedger(transactionRepo, idGenerator, nil, appLogger)
	lifecycle := ticketApp.NewLifecycle(ticketRepo, tripRepo, seatLedger, cashLedger, idGenerator,
		cfg.BoardingWindow(), cfg.RefundBuffer(), nil, appLogger)

	eventBus := pkgInfra.NewSimpleEventBus[pkgDomain.Event[string], string](appLogger)

	pricingSlice := pricing.NewPricingSlice(
		pkgInfra.NewSimpleCommandBus[pkgDomain.Command[pricingApp.CreateRuleData], pricingApp.CreateRuleData](appLogger),
		pkgInfra.NewSimpleQueryBus[pkgDomain.Query[pricingApp.ResolveFareData], pricingApp.ResolveFareData, int64](appLogger),
		idGenerator,
		appLogger,
		ruleRepo,
	)

	tripSlice := trip.NewTripSlice(
		pkgInfra.NewSimpleCommandBus[pkgDomain.Command[tripApp.GenerateTripsData], tripApp.GenerateTripsData](appLogger),
		pkgInfra.NewSimpleCommandBus[pkgDomain.Command[tripApp.DeleteTemplateData], tripApp.DeleteTemplateData](appLogger),
		pkgInfra.NewSimpleQueryBus[pkgDomain.Query[tripApp.ListTripsData], tripApp.ListTripsData, []tripDomain.Trip](appLogger),
		pkgInfra.NewSimpleQueryBus[pkgDomain.Query[tripApp.ListStationsData], tripApp.ListStationsData, []tripDomain.Station](appLogger),
		eventBus,
		generator,
		tripRepo,
		templateRepo,
		stationRepo,
		cfg.BoardingWindow(),
		appLogger,
	)

	ticketSlice := ticket.NewTicketSlice(
		pkgInfra.NewSimpleCommandBus[pkgDomain.Command[ticketApp.SellTicketData], ticketApp.SellTicketData](appLogger),
		pkgInfra.NewSimpleCommandBus[pkgDomain.Command[ticketApp.CancelTicketData], ticketApp.CancelTicketData](appLogger),
		pkgInfra.NewSimpleCommandBus[pkgDomain.Command[ticketApp.RefundTicketData], ticketApp.RefundTicketData](appLogger),
		pkgInfra.NewSimpleCommandBus[pkgDomain.Command[ticketApp.CancelTripData], ticketApp.CancelTripData](appLogger),
		pkgInfra.NewSimpleQueryBus[pkgDomain.Query[ticketApp.ListTicketsData], ticketApp.ListTicketsData, []ticketDomain.Ticket](appLogger),
		eventBus,
		lifecycle,
		ticketRepo,
		idGenerator,
		appLogger,
	)

	cashierSlice := cashier.NewCashierSlice(
		pkgInfra.NewSimpleCommandBus[pkgDomain.Command[cashierApp.DepositData], cashierApp.DepositData](appLogger),
		pkgInfra.NewSimpleCommandBus[pkgDomain.Command[cashierApp.WithdrawData], cashierApp.WithdrawData](appLogger),
		pkgInfra.NewSimpleQueryBus[pkgDomain.Query[cashierApp.BalanceData], cashierApp.BalanceData, int64](appLogger),
		pkgInfra.NewSimpleQueryBus[pkgDomain.Query[cashierApp.ListTransactionsData], cashierApp.ListTransactionsData, []cashierDomain.Transaction](appLogger),
		cashLedger,
		transactionRepo,
		appLogger,
	)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	pricingSlice.RegisterRoutes(router)
	tripSlice.RegisterRoutes(router)
	ticketSlice.RegisterRoutes(router)
	cashierSlice.RegisterRoutes(router)

	scheduler := tripInfra.NewScheduler(generator, cfg.Generator.HorizonDays, cfg.Generator.Interval, appLogger)
	go scheduler.Run(ctx)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		appLogger.Info(ctx, "signal received", map[string]interface{}{"signal": sig.String()})
		cancel()
	}()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.Info(ctx, "server starting", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error(ctx, "server failed", map[string]interface{}{"error": err})
		}
	}()

	<-ctx.Done()
	appLogger.Info(ctx, "shutting down", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(context.Background(), "shutdown failed", map[string]interface{}{"error": err})
	}
	appLogger.Info(context.Background(), "server stopped", nil)
}
