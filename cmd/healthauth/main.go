package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/aadeshbhujbal/healthcare-auth/internal/app"
	"github.com/aadeshbhujbal/healthcare-auth/internal/config"
)

func main() {
	configPath := flag.String("config", "config/config.yml", "path to config file")
	email := flag.String("email", "", "run a login flow with this email")
	password := flag.String("password", "", "password for -email")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	container, err := app.NewContainer(cfg, app.Options{})
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer container.Close()

	ctx := context.Background()

	if *email != "" {
		if err := container.Orchestrator.Login(ctx, *email, *password, false); err != nil {
			os.Exit(1)
		}
	}

	sess, err := container.Orchestrator.GetSession(ctx)
	if err != nil {
		log.Fatalf("session: %v", err)
	}
	if sess == nil {
		log.Println("no active session")
		return
	}
	log.Printf("session: %s <%s> role=%s", sess.User.Name, sess.User.Email, sess.User.Role)
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), nil
	}
	return config.Load(path)
}
