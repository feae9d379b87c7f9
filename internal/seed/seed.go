package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/yberk/infirmary/internal/app/models"
	appRepos "github.com/yberk/infirmary/internal/app/repositories"
	"github.com/yberk/infirmary/internal/pkg/apperrors"
	"github.com/yberk/infirmary/internal/pkg/auth"
)

// CreateDefaultData creates the default admin account and a starter medicine
// inventory if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	medicineRepo := appRepos.NewMedicineRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default admin account --- //
	password := "admin"
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &appModels.User{Username: "admin", Password: hashed}
	err = userRepo.Create(ctx, admin)
	if err != nil && !errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating default admin account")
		finalErr = errors.Join(finalErr, err)
	} else if err == nil {
		lgr.Warn().Str("username", admin.Username).Msg("Default admin account created, change its password")
	}

	// --- Starter medicine inventory --- //
	existing, err := medicineRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking medicine inventory")
		return errors.Join(finalErr, err)
	}
	if len(existing) > 0 {
		return finalErr
	}

	brandOf := func(s string) *string { return &s }
	starters := []*appModels.Medicine{
		{Name: "Paracetamol 500mg", Brand: brandOf("Panadol"), Stock: 50},
		{Name: "Ibuprofen 200mg", Brand: brandOf("Advil"), Stock: 30},
		{Name: "Adhesive bandage", Stock: 200},
	}
	for _, medicine := range starters {
		if err := medicineRepo.Create(ctx, medicine); err != nil {
			lgr.Error().Err(err).Str("name", medicine.Name).Msg("Error creating starter medicine")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
