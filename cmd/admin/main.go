package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"quickchat/backend/internal/config"
	"quickchat/backend/internal/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})

	storageSvc := storage.NewStorageService(db, rdb)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "ban":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin ban <nickname> [duration_in_hours]")
			os.Exit(1)
		}
		nickname := os.Args[2]
		var duration time.Duration
		if len(os.Args) > 3 {
			hours, err := strconv.Atoi(os.Args[3])
			if err != nil {
				fmt.Println("Invalid duration. Please provide an integer.")
				os.Exit(1)
			}
			duration = time.Duration(hours) * time.Hour
		}
		if err := storageSvc.BanUser(nickname, duration); err != nil {
			log.Fatalf("Error banning user: %v", err)
		}
		fmt.Printf("Nickname %s has been banned.\n", nickname)

	case "unban":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin unban <nickname>")
			os.Exit(1)
		}
		nickname := os.Args[2]
		if err := storageSvc.UnbanUser(nickname); err != nil {
			log.Fatalf("Error unbanning user: %v", err)
		}
		fmt.Printf("Nickname %s has been unbanned.\n", nickname)

	case "list-users":
		users, err := storageSvc.ListUsers()
		if err != nil {
			log.Fatalf("Error listing users: %v", err)
		}
		for _, u := range users {
			fmt.Printf("%s\t%s\n", u.ID, u.Nickname)
		}

	case "purge-messages":
		purged, err := storageSvc.PurgeMessages()
		if err != nil {
			log.Fatalf("Error purging messages: %v", err)
		}
		fmt.Printf("Deleted %d messages.\n", purged)

	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: admin <command> [args]")
	fmt.Println("Commands: ban <nickname> [hours], unban <nickname>, list-users, purge-messages")
}
