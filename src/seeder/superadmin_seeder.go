package seeder

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"Coaching-Management-Backend/src/logger"
	"Coaching-Management-Backend/src/models"
	"Coaching-Management-Backend/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountStore is the slice of the student repository the seeder needs.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	Insert(ctx context.Context, student *models.Student) error
}

// SeedSuperAdmin creates the first super admin account when email is not taken.
// Empty credentials skip seeding. It reports whether an account was created.
func SeedSuperAdmin(ctx context.Context, store AccountStore, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}

	existing, err := store.FindByEmail(ctx, email)
	if err == nil {
		if existing.Role != models.RoleSuperAdmin {
			logger.Warn().Str("email", email).Str("role", string(existing.Role)).Msg("seed email belongs to a non super admin account")
		}
		return false, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return false, fmt.Errorf("failed to look up seed account: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}

	id := primitive.NewObjectID()
	studentID, phone := seedIdentity(id)
	admin := &models.Student{
		ID:                   id,
		StudentName:          "Super Admin",
		StudentID:            studentID,
		Gender:               "other",
		PhoneNumber:          phone,
		Address:              "-",
		DateOfBirth:          "1970-01-01",
		DateOfJoining:        time.Now().Format("2006-01-02"),
		Email:                email,
		Password:             hash,
		HighestQualification: models.QualificationBachelors,
		Role:                 models.RoleSuperAdmin,
		RecStatus:            models.RecStatusActive,
		CreatedBy:            "seeder",
		CreatedDate:          time.Now(),
		NotificationSettings: models.NotificationSettings{Email: false, Push: false},
	}
	if err := store.Insert(ctx, admin); err != nil {
		return false, fmt.Errorf("failed to insert seed account: %w", err)
	}

	logger.Info().Str("email", email).Msg("super admin seeded")
	return true, nil
}

// seedIdentity derives the unique student id and phone number of a seeded
// account from its ObjectID. Both use a 00 or SA prefix no real student has.
func seedIdentity(id primitive.ObjectID) (studentID, phone string) {
	studentID = "SA" + strings.ToUpper(id.Hex()[18:])
	phone = fmt.Sprintf("00%08d", binary.BigEndian.Uint64(id[4:12])%100000000)
	return studentID, phone
}
