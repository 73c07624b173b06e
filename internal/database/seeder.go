// server/internal/database/seeder.go
package database

import (
	"context"
	"log"

	"shipping-admin-api-server/internal/auth"
	"shipping-admin-api-server/internal/models"
	"shipping-admin-api-server/internal/store"
)

// SeedAdmin creates the bootstrap admin account if no user with the
// given phone exists yet. The password arrives from configuration, it
// is never hardcoded here.
func SeedAdmin(ctx context.Context, st store.Store, phone, password string) {
	if phone == "" || password == "" {
		log.Println("Admin seed skipped: no credentials configured")
		return
	}

	if _, err := st.GetUserByPhone(ctx, phone); err == nil {
		log.Println("Admin account already exists. Skipping seed.")
		return
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Could not hash admin password: %v", err)
	}

	admin := models.User{
		Phone:    phone,
		Password: hashed,
		Role:     models.RoleAdmin,
		UserType: models.UserTypeIndividual,
		Verified: true,
	}
	if _, err := st.CreateUser(ctx, admin); err != nil {
		log.Fatalf("Could not seed admin account: %v", err)
	}
	log.Println("Admin account seeded successfully!")
}
