package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/proofdeck/proofdeck-api/api"
	"github.com/proofdeck/proofdeck-api/common/config"
	"github.com/proofdeck/proofdeck-api/common/gorm"
	"github.com/proofdeck/proofdeck-api/common/mongo"
	"github.com/proofdeck/proofdeck-api/common/util"
)

func main() {
	isMigrate := flag.Bool("Migrate", false, "Run database migration")
	isRunAfter := flag.Bool("Run", false, "Run after migration")
	flag.Parse()

	config.LoadConfig()
	gorm.InitGorm()

	if *isMigrate {
		gorm.Migrate()
		if !*isRunAfter {
			return
		}
	}

	mongo.InitMongo()
	util.InitDialer()
	if err := util.InitMinIO(); err != nil {
		slog.Error("Failed to initialize object storage", "error", err)
		os.Exit(1)
	}

	api.InitFiber()
}
