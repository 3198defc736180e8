package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/iwvelando/proforma/internal/config"
	"github.com/iwvelando/proforma/internal/deal"
	"github.com/iwvelando/proforma/internal/engine"
	"github.com/iwvelando/proforma/internal/export"
	"github.com/iwvelando/proforma/internal/logging"
	"github.com/iwvelando/proforma/internal/storage"
	"github.com/iwvelando/proforma/pkg/constants"
	"github.com/iwvelando/proforma/pkg/output"
	"github.com/iwvelando/proforma/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, xlsx")
	outputFileFlag := flag.String("output-file", "", "workbook path override for xlsx output")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	save := flag.Bool("save", false, "save every calculated deal to the configured storage")
	flag.Parse()

	// A missing .env is fine; DATABASE_URL and REDIS_ADDR may come from the shell.
	_ = godotenv.Load()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI overrides take precedence over config
	if *outputFormatFlag != "" {
		conf.Output.Format = *outputFormatFlag
	}
	if *outputFileFlag != "" {
		conf.Output.File = *outputFileFlag
	}
	if conf.Output.Format == constants.OutputFormatXLSX && conf.Output.File == "" {
		conf.Output.File = constants.DefaultWorkbookFile
	}

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	ds, err := conf.Dataset()
	if err != nil {
		logger.Fatal("failed to load defaults dataset",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	eng := engine.New(logger, ds)

	deals, err := conf.BuildDeals(eng)
	if err != nil {
		logger.Fatal("failed to calculate deals",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	for _, warning := range validation.ValidateDeals(deals) {
		logger.Warn("Deal warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if *save {
		saveDeals(logger, conf.Storage, deals)
	}

	switch conf.Output.Format {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, deals)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, deals)
	case constants.OutputFormatXLSX:
		if err := export.NewExporter(logger, eng).SaveAs(conf.Output.File, deals); err != nil {
			logger.Fatal("failed to write workbook",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		logger.Info("wrote workbook",
			zap.String("op", "main"),
			zap.String("file", conf.Output.File),
		)
	}
}

// saveDeals stores a snapshot of each deal. Failures are logged and skipped.
func saveDeals(logger *zap.Logger, cfg storage.Config, deals []*deal.Deal) {
	if cfg.URL == "" {
		cfg.URL = os.Getenv("DATABASE_URL")
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := storage.New(ctx, logger, cfg)
	if err != nil {
		logger.Warn("failed to open storage, deals not saved",
			zap.String("op", "main.saveDeals"),
			zap.Error(err),
		)
		return
	}
	if store == nil {
		logger.Warn("storage backend is none, deals not saved",
			zap.String("op", "main.saveDeals"),
		)
		return
	}
	defer func() {
		_ = store.Close()
	}()

	now := time.Now()
	for _, d := range deals {
		snap, err := storage.NewSnapshot(d, now)
		if err == nil {
			err = store.Save(ctx, snap)
		}
		if err != nil {
			logger.Warn("failed to save deal",
				zap.String("op", "main.saveDeals"),
				zap.String("deal", d.ProjectInfo.Name),
				zap.Error(err),
			)
			continue
		}
		logger.Info("saved deal",
			zap.String("op", "main.saveDeals"),
			zap.String("deal", snap.ProjectName),
			zap.String("id", snap.ID),
		)
	}
}
