package notes

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cfg "github.com/Czaki/napari-release-tools/internal/config"
	"github.com/Czaki/napari-release-tools/internal/corrections"
	domainerrors "github.com/Czaki/napari-release-tools/internal/domain/errors"
	"github.com/Czaki/napari-release-tools/internal/i18n"
	"github.com/Czaki/napari-release-tools/internal/infrastructure/cache"
	ghvcs "github.com/Czaki/napari-release-tools/internal/infrastructure/vcs/github"
	"github.com/Czaki/napari-release-tools/internal/logger"
	"github.com/Czaki/napari-release-tools/internal/services"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

type GenerateCommand struct{}

func NewGenerateCommand() *GenerateCommand {
	return &GenerateCommand{}
}

func (c *GenerateCommand) CreateCommand(t *i18n.Translations, config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Aliases:   []string{"g"},
		Usage:     t.GetMessage("generate.usage", 0, nil),
		ArgsUsage: "<milestone>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "target-directory",
				Aliases: []string{"d"},
				Usage:   t.GetMessage("generate.target_directory_flag", 0, nil),
			},
			&cli.StringFlag{
				Name:    "correction-file",
				Aliases: []string{"c"},
				Usage:   t.GetMessage("generate.correction_file_flag", 0, nil),
				Value:   defaultCorrectionPath(config),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return c.run(ctx, cmd, t, config)
		},
	}
}

// defaultCorrectionPath puts name_corrections.yaml next to the config file.
func defaultCorrectionPath(config *cfg.Config) string {
	return filepath.Join(filepath.Dir(config.PathFile), "name_corrections.yaml")
}

func (c *GenerateCommand) run(ctx context.Context, cmd *cli.Command, t *i18n.Translations, config *cfg.Config) error {
	logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))

	milestone := cmd.Args().First()
	if milestone == "" {
		return errors.New(t.GetMessage("generate.missing_milestone", 0, nil))
	}

	token := os.Getenv("GH_TOKEN")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("%s: %w", t.GetMessage("error.missing_token", 0, nil),
			domainerrors.NewMissingTokenError("GH_TOKEN", "GITHUB_TOKEN"))
	}

	correctionPath := cmd.String("correction-file")
	var table map[string]string
	var err error
	if cmd.IsSet("correction-file") {
		table, err = corrections.Load(correctionPath)
	} else {
		table, err = corrections.LoadOptional(correctionPath)
	}
	if err != nil {
		return fmt.Errorf(t.GetMessage("error.load_corrections", 0, nil)+": %w", err)
	}

	responseCache, err := cache.NewCache(time.Duration(config.CacheTTLHours) * time.Hour)
	if err != nil {
		return fmt.Errorf(t.GetMessage("error.cache_init", 0, nil)+": %w", err)
	}

	client := ghvcs.NewClient(config.Organization, config.MainRepo, token, responseCache, t)
	directory := services.NewUserDirectory(client, table)
	collector := services.NewCollector(client, client, directory, config)

	// Progress goes to the log on stderr so stream output stays clean.
	logger.Info(ctx, t.GetMessage("generate.fetching", 0, map[string]interface{}{
		"Milestone": milestone,
	}))

	report, err := collector.Collect(ctx, milestone)
	if err != nil {
		return fmt.Errorf(t.GetMessage("error.collect", 0, nil)+": %w", err)
	}

	targetDir := cmd.String("target-directory")
	if targetDir == "" {
		return services.RenderReleaseNotes(os.Stdout, config, report, services.RenderOptions{})
	}

	fileName := services.ReleaseFileName(milestone)
	oldContributors, priorReports, err := services.ScanPriorContributors(targetDir, fileName)
	if err != nil {
		return fmt.Errorf(t.GetMessage("error.scan_prior_reports", 0, nil)+": %w", err)
	}

	outputPath := filepath.Join(targetDir, fileName)
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf(t.GetMessage("error.write_output", 0, nil)+": %w", err)
	}

	renderErr := services.RenderReleaseNotes(file, config, report, services.RenderOptions{
		OldContributors: oldContributors,
		PriorReports:    priorReports,
	})
	if closeErr := file.Close(); renderErr == nil {
		renderErr = closeErr
	}
	if renderErr != nil {
		return fmt.Errorf(t.GetMessage("error.write_output", 0, nil)+": %w", renderErr)
	}

	green := color.New(color.FgGreen, color.Bold)
	_, _ = green.Printf("✓ %s\n", t.GetMessage("generate.written", 0, map[string]interface{}{
		"File": outputPath,
	}))
	return nil
}
