package main

import (
	"context"
	"os"
	"strings"
	"time"

	pricingDomain "github.com/transgare/backoffice/internal/pricing/domain"
	pricingInfra "github.com/transgare/backoffice/internal/pricing/infrastructure"
	tripApp "github.com/transgare/backoffice/internal/trip/application"
	tripDomain "github.com/transgare/backoffice/internal/trip/domain"
	tripInfra "github.com/transgare/backoffice/internal/trip/infrastructure"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
	kafkaAdapter "github.com/transgare/backoffice/pkg/infrastructure/kafka/adapter"
	watermillLogAdapter "github.com/transgare/backoffice/pkg/infrastructure/watermill/adapter"
	zapAdapter "github.com/transgare/backoffice/pkg/infrastructure/zaplogger/adapter"
)

// Demo entrypoint over Kafka: trip generation commands and queries travel
// through broker topics instead of in-process channels.
func main() {
	appLogger, err := zapAdapter.NewZapAppLogger()
	if err != nil {
		panic(err)
	}
	logger := watermillLogAdapter.NewWatermillLoggerAdapter(appLogger)

	brokers := []string{"localhost:9092"}
	if env := os.Getenv("KAFKA_BROKERS"); env != "" {
		brokers = strings.Split(env, ",")
	}

	publisher, err := kafkaAdapter.NewPublisher(brokers, logger)
	if err != nil {
		appLogger.Error(context.Background(), "failed to create kafka publisher", map[string]interface{}{"error": err})
		return
	}
	subscriber, err := kafkaAdapter.NewSubscriber(brokers, "gare-backoffice", logger)
	if err != nil {
		appLogger.Error(context.Background(), "failed to create kafka subscriber", map[string]interface{}{"error": err})
		return
	}

	ruleRepo := pricingInfra.NewInMemoryRuleRepository(appLogger)
	routeRepo := tripInfra.NewInMemoryRouteRepository()
	templateRepo := tripInfra.NewInMemoryTemplateRepository()
	tripRepo := tripInfra.NewInMemoryTripRepository(appLogger)

	boardingWindow := 30 * time.Minute
	generator := tripApp.NewGenerator(templateRepo, routeRepo, tripRepo, ruleRepo, boardingWindow, nil, appLogger)

	generateBus := kafkaAdapter.NewKafkaCommandBus[pkgDomain.Command[tripApp.GenerateTripsData], tripApp.GenerateTripsData](publisher, subscriber, appLogger)
	tripQueryBus := kafkaAdapter.NewKafkaQueryBus[pkgDomain.Query[tripApp.ListTripsData], tripApp.ListTripsData, []tripDomain.Trip](publisher, subscriber, appLogger)
	eventBus := kafkaAdapter.NewKafkaEventBus[pkgDomain.Event[string], string](publisher, subscriber, appLogger)

	eventBus.RegisterHandler("TripsGenerated", tripApp.NewTripsGeneratedEventHandler(appLogger))
	generateBus.RegisterHandler("GenerateTrips", tripApp.NewGenerateTripsHandler(generator, eventBus, appLogger))
	tripQueryBus.RegisterHandler("ListTrips", tripApp.NewListTripsHandler(tripRepo, boardingWindow, nil, appLogger))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_ = routeRepo.Save(ctx, tripDomain.Route{
		ID:              "route-dakar-thies",
		DepartureCity:   "Dakar",
		ArrivalCity:     "Thies",
		DistanceKM:      72,
		DurationMinutes: 90,
		BasePrice:       5000,
		Active:          true,
	})
	_ = templateRepo.Save(ctx, tripDomain.ScheduleTemplate{
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
	_ = ruleRepo.Save(ctx, pricingDomain.Rule{
		ID:           "rule-early-bird",
		RouteID:      "route-dakar-thies",
		DiscountType: pricingDomain.DiscountPercentage,
		Value:        10,
		StartDate:    time.Now().AddDate(0, -1, 0),
		Priority:     1,
		Active:       true,
	})

	if err := generateBus.Dispatch(ctx, tripApp.NewGenerateTripsCommand(tripApp.GenerateTripsData{
		FromDate: time.Now(),
		Days:     7,
	})); err != nil {
		appLogger.Error(ctx, "failed to dispatch generation command", map[string]interface{}{"error": err})
		return
	}
	time.Sleep(2 * time.Second)

	trips, err := tripQueryBus.Dispatch(ctx, tripApp.NewListTripsQuery(tripApp.ListTripsData{
		From: time.Now(),
		To:   time.Now().AddDate(0, 0, 7),
	}))
	if err != nil {
		appLogger.Error(ctx, "failed to list trips", map[string]interface{}{"error": err})
		return
	}
	appLogger.Info(ctx, "trips available", map[string]interface{}{"count": len(trips)})
}
