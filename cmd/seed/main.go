package main

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"servicehub/internal/config"
	"servicehub/internal/database"
	"servicehub/internal/domain"
	"servicehub/internal/pkg/logger"
)

type seedProvider struct {
	email    string
	first    string
	last     string
	business string
	lat, lng float64
	rating   float64
}

var categories = []domain.Category{
	{Name: "Home Cleaning", Icon: "broom", Description: "Apartments, houses and offices", IsActive: true},
	{Name: "Plumbing", Icon: "wrench", Description: "Leaks, pipes and installations", IsActive: true},
	{Name: "Electrical", Icon: "bolt", Description: "Wiring, sockets and lighting", IsActive: true},
	{Name: "Beauty", Icon: "scissors", Description: "Hair, nails and makeup at home", IsActive: true},
}

var providers = []seedProvider{
	{"aidar@servicehub.kz", "Aidar", "Nurlanov", "Aidar Clean", 43.2389, 76.8897, 4.8},
	{"gulnaz@servicehub.kz", "Gulnaz", "Sadykova", "Gulnaz Beauty", 43.2567, 76.9286, 4.5},
	{"yerlan@servicehub.kz", "Yerlan", "Tokayev", "Yerlan Fix", 43.2220, 76.8512, 3.9},
	{"dana@servicehub.kz", "Dana", "Abenova", "Dana Electric", 51.1694, 71.4491, 4.2},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logger.Setup(cfg.AppEnv, cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("DB connection failed")
	}
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("AutoMigrate failed")
	}

	if err := db.Transaction(seed); err != nil {
		logrus.WithError(err).Fatal("seeding failed")
	}
	logrus.Info("seed completed")
}

func seed(tx *gorm.DB) error {
	logrus.Info("cleaning old data")
	for _, table := range []string{"messages", "bookings", "services", "categories", "providers", "users"} {
		if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}

	providerHash, err := bcrypt.GenerateFromPassword([]byte("provider123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	customerHash, err := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := tx.Create(&categories).Error; err != nil {
		return fmt.Errorf("categories: %w", err)
	}

	for i, sp := range providers {
		lat, lng := sp.lat, sp.lng
		user := domain.User{
			Email:        sp.email,
			PasswordHash: string(providerHash),
			FirstName:    sp.first,
			LastName:     sp.last,
			Role:         domain.RoleProvider,
			Latitude:     &lat,
			Longitude:    &lng,
		}
		if err := tx.Omit("Provider").Create(&user).Error; err != nil {
			return fmt.Errorf("provider user %s: %w", sp.email, err)
		}

		provider := domain.Provider{
			UserID:        user.ID,
			BusinessName:  sp.business,
			IsAvailable:   true,
			AverageRating: sp.rating,
			TotalReviews:  rand.Intn(120),
		}
		if err := tx.Omit("User").Create(&provider).Error; err != nil {
			return fmt.Errorf("provider %s: %w", sp.business, err)
		}

		for j := 0; j < 3; j++ {
			c := categories[(i+j)%len(categories)]
			svc := domain.Service{
				ProviderID:  provider.ID,
				CategoryID:  c.ID,
				Title:       fmt.Sprintf("%s by %s", c.Name, sp.first),
				Description: c.Description,
				BasePrice:   float64(20 + rand.Intn(80)),
				Duration:    []int{30, 60, 90, 120}[rand.Intn(4)],
				IsActive:    true,
			}
			if err := tx.Omit("Provider", "Category").Create(&svc).Error; err != nil {
				return fmt.Errorf("service %s: %w", svc.Title, err)
			}
		}
		logrus.WithField("email", sp.email).Info("provider created (password provider123)")
	}

	for i, email := range []string{"asel@mail.kz", "bekzat@gmail.com"} {
		customer := domain.User{
			Email:        email,
			PasswordHash: string(customerHash),
			FirstName:    fmt.Sprintf("Customer %d", i+1),
			Role:         domain.RoleCustomer,
			Phone:        fmt.Sprintf("+7 777 123 45%02d", i+67),
		}
		if err := tx.Omit("Provider").Create(&customer).Error; err != nil {
			return fmt.Errorf("customer %s: %w", email, err)
		}
		logrus.WithField("email", email).Info("customer created (password customer123)")
	}

	return nil
}
