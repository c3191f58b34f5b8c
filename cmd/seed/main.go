package main

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"teamgoals/internal/config"
	"teamgoals/internal/db"
	"teamgoals/internal/model"
	"teamgoals/internal/repository"
)

const demoPassword = "demo1234"

func main() {
	log := logrus.New()
	log.Info("starting seed script")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.WithError(err).Fatal("database connect")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Coach{},
		&model.Player{},
		&model.Goal{},
		&model.ProcessGoal{},
	); err != nil {
		log.WithError(err).Fatal("auto-migrate")
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)

	if count, err := userRepo.Count(ctx); err != nil {
		log.WithError(err).Fatal("count users")
	} else if count > 0 {
		log.WithField("users", count).Info("database already seeded, nothing to do")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("hash demo password")
	}

	if err := seed(ctx, gormDB, userRepo, string(hash)); err != nil {
		log.WithError(err).Fatal("seed")
	}
	log.WithField("password", demoPassword).Info("seed completed, demo accounts share one password")
}

func seed(ctx context.Context, gormDB *gorm.DB, userRepo repository.UserRepository, passwordHash string) error {
	admin := &model.User{
		Username:     "admin",
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		Email:        "admin@teamgoals.local",
		FirstName:    "Alicia",
		LastName:     "Rivas",
	}
	if err := userRepo.CreateWithProfile(ctx, admin, nil, nil); err != nil {
		return err
	}

	coaches := []struct {
		user  model.User
		coach model.Coach
	}{
		{
			user: model.User{
				Username: "coach.mendes", Role: model.RoleCoach,
				Email: "mendes@teamgoals.local", FirstName: "Paulo", LastName: "Mendes",
				PhoneNumber: "+31 6 1234 5678",
			},
			coach: model.Coach{
				Specialization: "Attacking play", ExperienceYears: 12,
				Bio:      "Former winger, focused on one-on-one situations.",
				HireDate: date(2019, 8, 1),
			},
		},
		{
			user: model.User{
				Username: "coach.novak", Role: model.RoleCoach,
				Email: "novak@teamgoals.local", FirstName: "Irena", LastName: "Novak",
			},
			coach: model.Coach{
				Specialization: "Goalkeeping", ExperienceYears: 7,
				HireDate: date(2022, 2, 14),
			},
		},
	}

	coachIDs := make([]uint, 0, len(coaches))
	for i := range coaches {
		coaches[i].user.PasswordHash = passwordHash
		if err := userRepo.CreateWithProfile(ctx, &coaches[i].user, &coaches[i].coach, nil); err != nil {
			return err
		}
		coachIDs = append(coachIDs, coaches[i].coach.ID)
	}

	players := []struct {
		user   model.User
		player model.Player
	}{
		{
			user: model.User{
				Username: "j.vermeer", Role: model.RolePlayer,
				Email: "vermeer@teamgoals.local", FirstName: "Jesse", LastName: "Vermeer",
				DateOfBirth: datePtr(2006, 3, 21),
			},
			player: model.Player{
				CoachID: &coachIDs[0], Position: "Forward",
				JerseyNumber: uintPtr(9),
				HeightCm:     decimalPtr("182.00"), WeightKg: decimalPtr("74.50"),
				JoinDate: date(2023, 7, 1), IsActive: true,
			},
		},
		{
			user: model.User{
				Username: "s.okafor", Role: model.RolePlayer,
				Email: "okafor@teamgoals.local", FirstName: "Sam", LastName: "Okafor",
				DateOfBirth: datePtr(2005, 11, 2),
			},
			player: model.Player{
				CoachID: &coachIDs[0], Position: "Midfielder",
				JerseyNumber: uintPtr(8),
				JoinDate:     date(2022, 7, 1), IsActive: true,
			},
		},
		{
			user: model.User{
				Username: "l.berg", Role: model.RolePlayer,
				Email: "berg@teamgoals.local", FirstName: "Lina", LastName: "Berg",
			},
			player: model.Player{
				CoachID: &coachIDs[1], Position: "Goalkeeper",
				JerseyNumber: uintPtr(1),
				JoinDate:     date(2024, 1, 15), IsActive: true,
			},
		},
		{
			user: model.User{
				Username: "t.haas", Role: model.RolePlayer,
				Email: "haas@teamgoals.local", FirstName: "Tom", LastName: "Haas",
			},
			player: model.Player{
				Position: "Defender",
				JoinDate: date(2021, 7, 1), IsActive: false,
			},
		},
	}

	playerIDs := make([]uint, 0, len(players))
	for i := range players {
		players[i].user.PasswordHash = passwordHash
		if err := userRepo.CreateWithProfile(ctx, &players[i].user, nil, &players[i].player); err != nil {
			return err
		}
		playerIDs = append(playerIDs, players[i].player.ID)
	}

	goals := []model.Goal{
		{
			Name: "Improve weak-foot finishing", PlayerID: playerIDs[0], CoachID: coachIDs[0],
			Area: model.AreaTechnical, Timeframe: model.TimeframeMediumTerm,
			Progress:    model.ProgressInProgress,
			Description: "Finish drills with the left foot twice a week.",
			TargetDate:  datePtr(2026, 12, 1),
		},
		{
			Name: "Build sprint endurance", PlayerID: playerIDs[0], CoachID: coachIDs[0],
			Area: model.AreaPhysical, Timeframe: model.TimeframeShortTerm,
			Progress:   model.ProgressNotStarted,
			TargetDate: datePtr(2026, 10, 15),
		},
		{
			Name: "Read the press earlier", PlayerID: playerIDs[1], CoachID: coachIDs[0],
			Area: model.AreaTactical, Timeframe: model.TimeframeLongTerm,
			Progress: model.ProgressGoodProgress,
			Notes:    "Video sessions every other Friday.",
		},
		{
			Name: "Command the box on crosses", PlayerID: playerIDs[2], CoachID: coachIDs[1],
			Area: model.AreaMental, Timeframe: model.TimeframeMediumTerm,
			Progress: model.ProgressNotStarted,
		},
	}
	if err := gormDB.WithContext(ctx).Create(&goals).Error; err != nil {
		return err
	}

	processGoals := []model.ProcessGoal{
		{
			Name: "50 left-foot finishes per session", MainGoalID: goals[0].ID,
			Progress: model.ProgressCompleted, Order: 1,
		},
		{
			Name: "Shooting under pressure circuit", MainGoalID: goals[0].ID,
			Progress: model.ProgressInProgress, Order: 2,
			Description: "Defender closing down from behind.",
		},
		{
			Name: "Weekly interval runs", MainGoalID: goals[1].ID,
			Progress: model.ProgressNotStarted, Order: 1,
			TargetDate: datePtr(2026, 9, 30),
		},
		{
			Name: "Scan before receiving", MainGoalID: goals[2].ID,
			Progress: model.ProgressExcellentProgress, Order: 1,
		},
	}
	return gormDB.WithContext(ctx).Create(&processGoals).Error
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func uintPtr(v uint) *uint {
	return &v
}

func decimalPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}
