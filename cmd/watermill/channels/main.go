package main

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	pricingDomain "github.com/transgare/backoffice/internal/pricing/domain"
	pricingInfra "github.com/transgare/backoffice/internal/pricing/infrastructure"
	ticketApp "github.com/transgare/backoffice/internal/ticket/application"
	ticketDomain "github.com/transgare/backoffice/internal/ticket/domain"
	ticketInfra "github.com/transgare/backoffice/internal/ticket/infrastructure"
	tripApp "github.com/transgare/backoffice/internal/trip/application"
	tripDomain "github.com/transgare/backoffice/internal/trip/domain"
	tripInfra "github.com/transgare/backoffice/internal/trip/infrastructure"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
	pkgInfra "github.com/transgare/backoffice/pkg/infrastructure"
	"github.com/transgare/backoffice/pkg/infrastructure/channels/adapter"
	watermillLogAdapter "github.com/transgare/backoffice/pkg/infrastructure/watermill/adapter"
	zapAdapter "github.com/transgare/backoffice/pkg/infrastructure/zaplogger/adapter"

	cashierApp "github.com/transgare/backoffice/internal/cashier/application"
	cashierInfra "github.com/transgare/backoffice/internal/cashier/infrastructure"
)

// Demo entrypoint over the in-memory watermill transport: seeds a small
// catalog, generates a week of trips and sells one counter ticket.
func main() {
	appLogger, err := zapAdapter.NewZapAppLogger()
	if err != nil {
		panic(err)
	}

	logger := watermillLogAdapter.NewWatermillLoggerAdapter(appLogger)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, logger)

	ruleRepo := pricingInfra.NewInMemoryRuleRepository(appLogger)
	routeRepo := tripInfra.NewInMemoryRouteRepository()
	stationRepo := tripInfra.NewInMemoryStationRepository()
	templateRepo := tripInfra.NewInMemoryTemplateRepository()
	tripRepo := tripInfra.NewInMemoryTripRepository(appLogger)
	ticketRepo := ticketInfra.NewInMemoryTicketRepository()
	transactionRepo := cashierInfra.NewInMemoryTransactionRepository()

	idGenerator := pkgDomain.IDGenerator[string](pkgInfra.GenerateUUID)
	boardingWindow := 30 * time.Minute

	generator := tripApp.NewGenerator(templateRepo, routeRepo, tripRepo, ruleRepo, boardingWindow, nil, appLogger)
	seatLedger := ticketDomain.NewSeatLedger(tripRepo, ticketRepo)
	cashLedger := cashierApp.NewLedger(transactionRepo, idGenerator, nil, appLogger)
	lifecycle := ticketApp.NewLifecycle(ticketRepo, tripRepo, seatLedger, cashLedger, idGenerator,
		boardingWindow, 2*time.Hour, nil, appLogger)

	generateBus := adapter.NewWatermillCommandBus[pkgDomain.Command[tripApp.GenerateTripsData], tripApp.GenerateTripsData](pubSub, pubSub, appLogger)
	sellBus := adapter.NewWatermillCommandBus[pkgDomain.Command[ticketApp.SellTicketData], ticketApp.SellTicketData](pubSub, pubSub, appLogger)
	tripQueryBus := adapter.NewWatermillQueryBus[pkgDomain.Query[tripApp.ListTripsData], tripApp.ListTripsData, []tripDomain.Trip](pubSub, pubSub, appLogger)
	eventBus := adapter.NewWatermillEventBus[pkgDomain.Event[string], string](pubSub, pubSub, appLogger)

	eventBus.RegisterHandler("TripsGenerated", tripApp.NewTripsGeneratedEventHandler(appLogger))
	eventBus.RegisterHandler("TicketSold", ticketApp.NewTicketEventHandler(appLogger))
	generateBus.RegisterHandler("GenerateTrips", tripApp.NewGenerateTripsHandler(generator, eventBus, appLogger))
	sellBus.RegisterHandler("SellTicket", ticketApp.NewSellTicketHandler(lifecycle, eventBus, appLogger))
	tripQueryBus.RegisterHandler("ListTrips", tripApp.NewListTripsHandler(tripRepo, boardingWindow, nil, appLogger))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seed(ctx, ruleRepo, routeRepo, stationRepo, templateRepo)

	if err := generateBus.Dispatch(ctx, tripApp.NewGenerateTripsCommand(tripApp.GenerateTripsData{
		FromDate: time.Now(),
		Days:     7,
	})); err != nil {
		appLogger.Error(ctx, "failed to dispatch generation command", map[string]interface{}{"error": err})
		return
	}
	time.Sleep(time.Second)

	trips, err := tripQueryBus.Dispatch(ctx, tripApp.NewListTripsQuery(tripApp.ListTripsData{
		From: time.Now(),
		To:   time.Now().AddDate(0, 0, 7),
	}))
	if err != nil || len(trips) == 0 {
		appLogger.Error(ctx, "no trips generated", map[string]interface{}{"error": err})
		return
	}
	appLogger.Info(ctx, "trips available", map[string]interface{}{"count": len(trips)})

	if err := sellBus.Dispatch(ctx, ticketApp.NewSellTicketCommand(ticketApp.SellTicketData{
		TicketID:          idGenerator(),
		TripID:            trips[len(trips)-1].ID,
		PassengerName:     "Amadou Diallo",
		PassengerDocument: "CNI-188202",
		SeatNumber:        "A1",
		PaymentMethod:     "cash",
		SalesChannel:      ticketDomain.ChannelCounter,
		CashierID:         "cashier-1",
	})); err != nil {
		appLogger.Error(ctx, "failed to dispatch sale command", map[string]interface{}{"error": err})
		return
	}
	time.Sleep(time.Second)

	balance, err := cashLedger.Balance(ctx, "cashier-1", time.Time{}, time.Time{})
	if err != nil {
		appLogger.Error(ctx, "failed to read drawer balance", map[string]interface{}{"error": err})
		return
	}
	appLogger.Info(ctx, "drawer balance after sale", map[string]interface{}{"cashier_id": "cashier-1", "balance": balance})
}

func seed(
	ctx context.Context,
	rules pricingDomain.RuleRepository,
	routes tripDomain.RouteRepository,
	stations tripDomain.StationRepository,
	templates tripDomain.TemplateRepository,
) {
	_ = routes.Save(ctx, tripDomain.Route{
		ID:              "route-dakar-thies",
		DepartureCity:   "Dakar",
		ArrivalCity:     "Thies",
		DistanceKM:      72,
		DurationMinutes: 90,
		BasePrice:       5000,
		Active:          true,
	})
	_ = stations.Save(ctx, tripDomain.Station{ID: "station-beaux-maraichers", Name: "Gare des Baux Maraichers", City: "Dakar"})
	_ = templates.Save(ctx, tripDomain.ScheduleTemplate{
		ID:            "template-morning",
		RouteID:       "route-dakar-thies",
		StationID:     "station-beaux-maraichers",
		DepartureTime: "08:00",
		DaysOfWeek: []time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
		ServiceClass: "standard",
		BusCode:      "BUS-12",
		TotalSeats:   40,
		Active:       true,
	})
	_ = rules.Save(ctx, pricingDomain.Rule{
		ID:           "rule-early-bird",
		RouteID:      "route-dakar-thies",
		DiscountType: pricingDomain.DiscountPercentage,
		Value:        10,
		StartDate:    time.Now().AddDate(0, -1, 0),
		Priority:     1,
		Active:       true,
	})
}
