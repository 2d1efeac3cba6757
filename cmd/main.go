package main

import (
	"context"
	"log"

	"salon-booking-service/config"
	bookinghandler "salon-booking-service/internal/module/booking/handler"
	bookingrepositories "salon-booking-service/internal/module/booking/repositories"
	bookingusecases "salon-booking-service/internal/module/booking/usecases"
	checkouthandler "salon-booking-service/internal/module/checkout/handler"
	"salon-booking-service/internal/module/checkout/loyalty"
	checkoutrepositories "salon-booking-service/internal/module/checkout/repositories"
	checkoutusecases "salon-booking-service/internal/module/checkout/usecases"
	"salon-booking-service/internal/module/group/allocator"
	grouphandler "salon-booking-service/internal/module/group/handler"
	grouprepositories "salon-booking-service/internal/module/group/repositories"
	groupusecases "salon-booking-service/internal/module/group/usecases"
	terminalhandler "salon-booking-service/internal/module/terminal/handler"
	terminalrepositories "salon-booking-service/internal/module/terminal/repositories"
	"salon-booking-service/internal/module/terminal/signature"
	terminalusecases "salon-booking-service/internal/module/terminal/usecases"
	"salon-booking-service/internal/pkg/database"
	"salon-booking-service/internal/pkg/http"
	"salon-booking-service/internal/pkg/httpclient"
	log_internal "salon-booking-service/internal/pkg/log"
	"salon-booking-service/internal/pkg/messagestream"
	"salon-booking-service/internal/pkg/middleware"
	"salon-booking-service/internal/pkg/money"
	"salon-booking-service/internal/pkg/principal"
	"salon-booking-service/internal/pkg/redis"
	"salon-booking-service/internal/pkg/scheduler"
	"salon-booking-service/internal/pkg/schema"
	"salon-booking-service/internal/pkg/timegrid"
	router "salon-booking-service/internal/route"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const monitoringAddr = ":8090"

func main() {
	cfg := config.InitConfig()

	app, messageRouters := initService(cfg)

	for _, router := range messageRouters {
		ctx := context.Background()
		go func(router *message.Router) {
			err := router.Run(ctx)
			if err != nil {
				log.Fatal(err)
			}
		}(router)
	}

	// start http server
	http.StartHttpServer(app, cfg.HttpServer.Port)
}

func initService(cfg *config.Config) (*fiber.App, []*message.Router) {
	ctx := context.Background()

	// init logger
	logger := log_internal.Setup()

	// init database
	db := database.GetConnection(&cfg.Database)
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, schema.Statements()); err != nil {
			log.Fatalf("error migrate database: %v", err)
		}
	}

	// init redis
	redisClient := redis.SetupClient(&cfg.Redis)
	locker := redis.NewLocker(redisClient, "terminal_checkout:", cfg.Webhook.LockExpiry)

	// init http clients, one breaker per upstream
	userBreaker := httpclient.InitCircuitBreaker(&cfg.HttpClient, cfg.HttpClient.Type)
	userHttpClient := httpclient.InitHttpClient(&cfg.HttpClient, userBreaker)
	loyaltyBreaker := httpclient.InitCircuitBreaker(&cfg.HttpClient, cfg.HttpClient.Type)
	loyaltyHttpClient := httpclient.InitHttpClient(&cfg.HttpClient, loyaltyBreaker)

	// init message stream
	amqp := messagestream.NewAmpq(&cfg.MessageStream)

	subscriber, err := amqp.NewSubscriber()
	if err != nil {
		logger.Ctx(ctx).Error("Failed to create subscriber", zap.Error(err))
	}

	publisher, err := amqp.NewPublisher()
	if err != nil {
		logger.Ctx(ctx).Error("Failed to create publisher", zap.Error(err))
	}

	// init scheduler
	sched := scheduler.Scheduler{Log: logger}
	taskClient := sched.InitClient(&cfg.Redis)

	grid, err := timegrid.New(timegrid.MustParseClock(cfg.Booking.OpenAt), timegrid.MustParseClock(cfg.Booking.CloseAt), cfg.Booking.SlotSize)
	if err != nil {
		log.Fatalf("error build time grid: %v", err)
	}

	validator := validator.New()
	money.RegisterValidation(validator)

	bookingRepo := bookingrepositories.New(db, logger, cfg.Database.QueryTimeout)
	bookingUsecase := bookingusecases.New(bookingRepo, logger, grid, cfg.Booking.ReadFailurePolicy)
	bookingHandler := bookinghandler.BookingHandler{
		Log:       logger,
		Validator: validator,
		Usecase:   bookingUsecase,
	}

	groupRepo := grouprepositories.New(db, logger, cfg.Database.QueryTimeout)
	groupUsecase := groupusecases.New(groupRepo, allocator.New(bookingUsecase, grid, cfg.Booking.StaggerStep), publisher, logger)
	groupHandler := grouphandler.GroupHandler{
		Log:       logger,
		Validator: validator,
		Usecase:   groupUsecase,
	}

	checkoutRepo := checkoutrepositories.New(db, logger, cfg.Database.QueryTimeout)
	loyaltyClient := loyalty.New(loyaltyHttpClient, &cfg.LoyaltyService, logger)
	checkoutUsecase := checkoutusecases.New(checkoutRepo, loyaltyClient, taskClient, publisher, logger, cfg.Checkout)
	checkoutHandler := checkouthandler.CheckoutHandler{
		Log:       logger,
		Validator: validator,
		Usecase:   checkoutUsecase,
	}

	terminalRepo := terminalrepositories.New(db, logger, cfg.Database.QueryTimeout)
	terminalUsecase := terminalusecases.New(terminalRepo, checkoutUsecase, locker, publisher, logger, cfg.Checkout.Currency)
	terminalHandler := terminalhandler.TerminalHandler{
		Log:       logger,
		Validator: validator,
		Verifier:  signature.New(&cfg.Webhook, logger),
		Usecase:   terminalUsecase,
	}

	middleware := middleware.Middleware{
		Log:       logger,
		Principal: principal.New(userHttpClient, &cfg.UserService, logger),
	}

	// background loyalty retries
	go sched.StartHandler(&cfg.Redis,
		[]string{scheduler.TypeAccrueLoyaltyPoints},
		[]func(ctx context.Context, t *asynq.Task) error{checkoutUsecase.ConsumeLoyaltyAccrual},
	)
	go sched.StartMonitoring(&cfg.Redis, monitoringAddr)

	var messageRouters []*message.Router

	terminalReplayRouter, err := messagestream.NewRouter(publisher, messagestream.TopicPoisonedQueue, "terminal_checkout_replay_handler", messagestream.TopicTerminalReplay, subscriber, terminalHandler.ConsumeReplay)
	if err != nil {
		logger.Ctx(ctx).Error("Failed to create terminal_checkout_replay router", zap.Error(err))
	} else {
		messageRouters = append(messageRouters, terminalReplayRouter)
	}

	serverHttp := http.SetupHttpEngine()

	r := router.Initialize(serverHttp, &bookingHandler, &groupHandler, &checkoutHandler, &terminalHandler, &middleware)

	return r, messageRouters
}
