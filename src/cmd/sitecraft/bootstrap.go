package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/chzyer/readline"

	"sitecraft/local-app/src/pkg/adapter"
	"sitecraft/local-app/src/pkg/cli"
	"sitecraft/local-app/src/pkg/config"
	"sitecraft/local-app/src/pkg/data"
	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/session"
	"sitecraft/local-app/src/pkg/storage"
)

// bootstrap loads configuration, builds the component chain (logger, storage, data manager,
// session manager, adapter, CLI), runs any script files given as arguments, then the
// interactive loop, and shuts everything down in reverse order.
func bootstrap(scripts []string) error {
	ctx := context.Background()

	if err := config.ConfigLoad(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := config.ConfigGet()

	logger, err := log.NewLogger(cfg, log.ParseLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close logger: %v\n", err)
		}
	}()
	logger.Info(ctx, "Application started", log.Fields{"database": cfg.DatabaseFile, "exportDir": cfg.ExportDir})

	store, err := storage.NewStorage(cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize storage", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error(ctx, "Failed to close storage", log.Fields{"error": err})
		}
	}()

	dataManager, err := data.NewDataManager(store.ProjectStore, store.PageStore, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize data manager", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize data manager: %w", err)
	}
	defer dataManager.EventManager.Wait()

	sessionManager, err := session.NewSessionManager(dataManager, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize session manager: %w", err)
	}
	defer sessionManager.Close()

	adapterManager, err := adapter.NewAdapterManager(sessionManager, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize adapter manager: %w", err)
	}
	defer adapterManager.Shutdown()

	instance, sessionID, err := adapterManager.AdapterAdd(adapter.CLIAdapterType)
	if err != nil {
		logger.Error(ctx, "Failed to start CLI adapter", log.Fields{"error": err})
		return fmt.Errorf("failed to start CLI adapter: %w", err)
	}
	logger.Info(ctx, "CLI session started", log.Fields{"sessionID": sessionID})

	if dir := filepath.Dir(cfg.HistoryFile); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          instance.PromptGet(),
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	cliInstance, err := cli.NewCLI(instance, rl, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize CLI: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			logger.Info(ctx, "Received termination signal. Shutting down...", nil)
			cliInstance.Stop()
		}
	}()

	for _, script := range scripts {
		if err := cliInstance.ExecuteScript(script); err != nil {
			logger.Error(ctx, "Script failed", log.Fields{"file": script, "error": err})
			fmt.Fprintf(os.Stderr, "Error executing script %s: %v\n", script, err)
		}
	}

	if err := cliInstance.Run(); err != nil {
		logger.Error(ctx, "CLI error", log.Fields{"error": err})
		return fmt.Errorf("CLI error: %w", err)
	}

	logger.Info(ctx, "Application shutting down", nil)
	fmt.Println("Goodbye!")
	return nil
}
