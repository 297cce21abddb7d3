package main

import (
	"fmt"
	"log"
	"os"

	"erp/backend/foundation/web"
	"erp/backend/internal/auth"
	"erp/backend/internal/commands"
	"erp/backend/internal/pkg/config"
	"erp/backend/internal/pkg/repository/postgresql"
	"erp/backend/internal/router"
	"erp/backend/internal/service/workhours"

	"github.com/ardanlabs/conf"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalln("reading config:", err)
	}

	var policy workhours.Policy
	if err := conf.Parse(os.Args[1:], "WORK", &policy); err != nil {
		if err == conf.ErrHelpWanted {
			usage, err := conf.Usage("WORK", &policy)
			if err != nil {
				log.Fatalln("generating usage:", err)
			}
			fmt.Println(usage)
			return
		}
		log.Fatalln("parsing work policy:", err)
	}

	postgresDB := postgresql.NewDB(postgresql.Config{
		Username:   cfg.DBUsername,
		Password:   cfg.DBPassword,
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		Name:       cfg.DBName,
		DisableTLS: cfg.DisableTLS,
	})
	defer postgresDB.Close()

	commands.MigrateUP(postgresDB)

	redisDB := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisDB.Close()

	authenticator, err := auth.New(cfg.PrivateKeyPath)
	if err != nil {
		log.Fatalln("constructing authenticator:", err)
	}

	r := router.NewRouter(
		web.NewApp(),
		postgresDB,
		redisDB,
		cfg.ServerPort,
		authenticator,
		cfg.BaseUrl,
		cfg.PrivateKeyPath,
		policy,
	)

	if err := r.Init(); err != nil {
		log.Fatalln("running server:", err)
	}
}
