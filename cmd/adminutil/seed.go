package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/auth"
	"github.com/sudo-init-do/stringr/internal/profile"
	"github.com/sudo-init-do/stringr/internal/stringer"
)

type seedAccount struct {
	Email    string
	FullName string
	Role     string
	City     string
	Lat, Lng float64
	// Settings overrides the signup defaults for stringers.
	Settings *stringer.SettingsInput
}

func seedAccounts() []seedAccount {
	return []seedAccount{
		{Email: "player@stringr.dev", FullName: "Pat Player", Role: auth.RolePlayer,
			City: "Baltimore", Lat: 39.2904, Lng: -76.6122},
		{Email: "sam@stringr.dev", FullName: "Sam Stringer", Role: auth.RoleStringer,
			City: "Baltimore", Lat: 39.2998, Lng: -76.6105},
		{Email: "rio@stringr.dev", FullName: "Rio Restrings", Role: auth.RoleStringer,
			City: "Towson", Lat: 39.4015, Lng: -76.6019,
			Settings: &stringer.SettingsInput{
				BasePriceCents:  3000,
				TurnaroundHours: 48,
				MaxDailyJobs:    3,
				Services:        []stringer.ServiceItem{{Name: "Hybrid Restring", PriceCents: 4000}},
				Availability: []stringer.AvailabilityBlock{
					{DayOfWeek: 6, Start: "09:00", End: "13:00"},
				},
			}},
	}
}

func newSeedCmd(e *env) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create demo players and stringers. Existing emails are skipped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			s := seeder{
				accounts:  auth.NewPGStore(e.pool),
				profiles:  profile.NewPGStore(e.pool),
				stringers: stringer.NewPGStore(e.pool),
				log:       e.log,
			}
			for _, a := range seedAccounts() {
				if err := s.seed(cmd.Context(), a, string(hash)); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d accounts\n", len(seedAccounts()))
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "stringr-demo", "password for every seeded account")
	return cmd
}

type seeder struct {
	accounts  auth.Store
	profiles  profile.Store
	stringers stringer.Store
	log       *zap.Logger
}

func (s seeder) seed(ctx context.Context, a seedAccount, hash string) error {
	acct := &auth.Account{Email: a.Email, PasswordHash: hash, Role: a.Role, FullName: a.FullName}
	err := s.accounts.CreateAccount(ctx, acct)
	if apperr.Is(err, apperr.KindConflict) {
		s.log.Info("account exists, skipping", zap.String("email", a.Email))
		return nil
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", a.Email, err)
	}

	p, err := s.profiles.Get(ctx, acct.ID)
	if err != nil {
		return err
	}
	p.City, p.Lat, p.Lng = a.City, &a.Lat, &a.Lng
	if _, err := s.profiles.Update(ctx, p); err != nil {
		return err
	}

	if a.Settings != nil {
		if _, err := s.stringers.UpsertSettings(ctx, a.Settings.Settings(acct.ID)); err != nil {
			return err
		}
	}
	s.log.Info("seeded account", zap.String("email", a.Email), zap.String("role", a.Role))
	return nil
}
