package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/aguxez/fitplan/agent"
	"github.com/aguxez/fitplan/api"
	"github.com/aguxez/fitplan/config"
	"github.com/aguxez/fitplan/filewatch"
	"github.com/aguxez/fitplan/models"
	"github.com/aguxez/fitplan/planner"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	cfg.SetupLogging()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	// Setup LLM
	llm, err := openai.New(
		openai.WithBaseURL(cfg.LLM.BaseURL),
		openai.WithToken(cfg.LLM.Token),
		openai.WithModel(cfg.LLM.Model),
	)
	if err != nil {
		log.Fatal(err)
	}

	pantry := &models.Pantry{}

	planAgent := agent.NewPlanAgent(llm, pantry,
		agent.WithCurrency(cfg.Plans.Currency),
		agent.WithTemperature(*cfg.LLM.Temperature),
	)

	orchestrator := planner.New(planAgent,
		planner.WithLanguage(cfg.Plans.Language),
		planner.WithStatusListener(func(step planner.Step) {
			log.WithField("step", step).Debug("Generation status changed")
		}),
	)

	// Setup file watcher
	fw, err := filewatch.NewFileWatcher(filewatch.Dirs{
		Foods:   cfg.Watch.FoodsDir,
		Profile: cfg.Watch.ProfileDir,
	}, pantry, orchestrator)
	if err != nil {
		log.Fatalf("error creating file watcher: %v", err)
	}
	defer fw.Close()

	// On init, load into memory
	if err := fw.LoadExisting(); err != nil {
		log.WithError(err).Warn("Error loading existing files")
	}
	go fw.Watch()

	srv := api.NewHTTPServer(cfg.Addr(), orchestrator)

	go func() {
		log.Printf("Server starting on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down server")
	}
	log.Println("Server has stopped.")
}
