package cmd

import (
	"fmt"

	"grambazaar/config"
	"grambazaar/database"
	bookingRepo "grambazaar/database/repository/booking"
	cartRepo "grambazaar/database/repository/cart"
	contentRepo "grambazaar/database/repository/content"
	"grambazaar/database/repository/memstore"
	productRepo "grambazaar/database/repository/product"
	userRepo "grambazaar/database/repository/user"
	"grambazaar/services/payment"
	"grambazaar/utils"

	"go.uber.org/zap"
)

// repositories bundles every store the services need.
type repositories struct {
	Users    userRepo.UserRepository
	Products productRepo.ProductRepository
	Carts    cartRepo.CartRepository
	Bookings bookingRepo.BookingRepository
	Services contentRepo.ServiceRepository
	News     contentRepo.NewsRepository
	Messages contentRepo.MessageRepository
	Settings contentRepo.SettingRepository
}

func memoryRepositories() *repositories {
	return &repositories{
		Users:    memstore.NewUserRepo(),
		Products: memstore.NewProductRepo(),
		Carts:    memstore.NewCartRepo(),
		Bookings: memstore.NewBookingRepo(),
		Services: memstore.NewServiceRepo(),
		News:     memstore.NewNewsRepo(),
		Messages: memstore.NewMessageRepo(),
		Settings: memstore.NewSettingRepo(),
	}
}

func mongoRepositories() (*repositories, error) {
	if err := database.InitDB(); err != nil {
		return nil, err
	}
	db := database.DB()
	return &repositories{
		Users:    userRepo.NewMongoUserRepo(db),
		Products: productRepo.NewMongoProductRepo(db),
		Carts:    cartRepo.NewMongoCartRepo(db),
		Bookings: bookingRepo.NewMongoBookingRepo(db),
		Services: contentRepo.NewMongoServiceRepo(db),
		News:     contentRepo.NewMongoNewsRepo(db),
		Messages: contentRepo.NewMongoMessageRepo(db),
		Settings: contentRepo.NewMongoSettingRepo(db),
	}, nil
}

func openRepositories(inMemory bool) (*repositories, error) {
	if inMemory {
		utils.GetLogger().Warn("Using in-memory storage; data is lost on restart")
		return memoryRepositories(), nil
	}
	repos, err := mongoRepositories()
	if err != nil {
		return nil, fmt.Errorf("failed to open MongoDB: %w", err)
	}
	return repos, nil
}

// newGateway returns the Stripe gateway, or an in-process fake when no key
// is configured outside production.
func newGateway() (payment.Gateway, error) {
	if config.AppConfig.StripeKey != "" {
		return payment.NewStripeGateway(config.AppConfig.StripeKey), nil
	}
	if config.IsProduction() {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required in production")
	}
	utils.GetLogger().Warn("STRIPE_SECRET_KEY not set; using fake payment gateway",
		zap.String("env", config.GetEnv()))
	return payment.NewFakeGateway(), nil
}

// checkSecrets refuses to start without the secrets production depends on.
func checkSecrets() error {
	if err := utils.CheckSigningKey(); err != nil {
		return err
	}
	if config.IsProduction() && config.AppConfig.StripeKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is required in production")
	}
	return nil
}
