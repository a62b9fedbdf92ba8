package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/hostelhub/server/internal/category"
	categorypg "github.com/hostelhub/server/internal/category/postgres"
	"github.com/hostelhub/server/internal/user"
	"github.com/hostelhub/server/pkg/logger"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			clearTables(db)
		}

		cost := cfg.Security.BCryptCost
		if cost <= 0 {
			cost = bcrypt.DefaultCost
		}
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), cost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		residents := []user.User{
			{
				Name:         "Warden",
				Email:        "warden@hostelhub.local",
				PasswordHash: string(hash),
				Role:         user.RoleAdmin,
				RoomNumber:   "A-101",
				JoinedAt:     time.Now(),
			},
			{
				Name:         "Ravi",
				Email:        "ravi@hostelhub.local",
				PasswordHash: string(hash),
				Role:         user.RoleUser,
				RoomNumber:   "B-203",
				JoinedAt:     time.Now(),
			},
			{
				Name:         "Meera",
				Email:        "meera@hostelhub.local",
				PasswordHash: string(hash),
				Role:         user.RoleUser,
				RoomNumber:   "B-207",
				IsNightOwl:   true,
				JoinedAt:     time.Now(),
			},
		}

		for i := range residents {
			u := &residents[i]
			var existing user.User
			err := db.Where("email = ?", u.Email).First(&existing).Error
			if err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Email)
				continue
			}
			if err != gorm.ErrRecordNotFound {
				log.Fatalf("failed to look up user %s: %v", u.Email, err)
			}
			if err := db.Create(u).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Printf("Seeded user: %s (%s)\n", u.Email, u.Role)
		}

		categoryService := category.NewService(categorypg.NewCategoryRepository(db), logger.LoggerWrapper())
		if err := categoryService.EnsureDefaults(); err != nil {
			log.Fatalf("failed to seed expense categories: %v", err)
		}
		fmt.Println("Expense categories seeded successfully")
	},
}

// clearTables wipes seedable data. Audit logs are kept on purpose.
func clearTables(db *gorm.DB) {
	tables := []string{
		"chat_messages",
		"chats",
		"wall_comments",
		"wall_posts",
		"laundry_bookings",
		"events",
		"mess_menus",
		"expense_entries",
		"expense_categories",
		"users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("failed to clear table %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing data")
}
