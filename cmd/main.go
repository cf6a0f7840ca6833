package main

import (
	"context"
	"fmt"
	"log"
	"os"

	cachecmd "github.com/Czaki/napari-release-tools/internal/cli/command/cache"
	"github.com/Czaki/napari-release-tools/internal/cli/command/notes"
	"github.com/Czaki/napari-release-tools/internal/cli/registry"
	cfg "github.com/Czaki/napari-release-tools/internal/config"
	"github.com/Czaki/napari-release-tools/internal/i18n"
	"github.com/Czaki/napari-release-tools/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error initializing the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func initializeApp() (*cli.Command, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not get the user home directory: %w", err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		log.Fatalf("Error loading translations: %v", err)
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("generate", notes.NewGenerateCommand()); err != nil {
		log.Fatalf("Error registering the 'generate' command: %v", err)
	}

	if err := registerCommand.Register("cache", cachecmd.NewCacheCommand()); err != nil {
		log.Fatalf("Error registering the 'cache' command: %v", err)
	}

	commands := registerCommand.CreateCommands()

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	return &cli.Command{
		Name:        "napari-release-tools",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.Version,
		Description: translations.GetMessage("app_description", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: translations.GetMessage("flag.verbose", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("flag.debug", 0, nil),
			},
		},
		Commands:              commands,
		EnableShellCompletion: true,
	}, nil
}
