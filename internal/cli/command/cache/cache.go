package cache

import (
	"context"
	"fmt"
	"time"

	cfg "github.com/Czaki/napari-release-tools/internal/config"
	"github.com/Czaki/napari-release-tools/internal/i18n"
	"github.com/Czaki/napari-release-tools/internal/infrastructure/cache"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

type CacheCommand struct{}

func NewCacheCommand() *CacheCommand {
	return &CacheCommand{}
}

func (c *CacheCommand) CreateCommand(t *i18n.Translations, config *cfg.Config) *cli.Command {
	ttl := time.Duration(config.CacheTTLHours) * time.Hour

	return &cli.Command{
		Name:  "cache",
		Usage: t.GetMessage("cache.usage", 0, nil),
		Commands: []*cli.Command{
			{
				Name:  "clean",
				Usage: t.GetMessage("cache.clean_usage", 0, nil),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cacheService, err := cache.NewCache(ttl)
					if err != nil {
						return fmt.Errorf(t.GetMessage("cache.error_init", 0, nil)+": %w", err)
					}

					if err := cacheService.Clean(); err != nil {
						return fmt.Errorf(t.GetMessage("cache.error_clean", 0, nil)+": %w", err)
					}

					green := color.New(color.FgGreen, color.Bold)
					_, _ = green.Printf("✓ %s\n", t.GetMessage("cache.cleaned", 0, nil))
					return nil
				},
			},
			{
				Name:  "stats",
				Usage: t.GetMessage("cache.stats_usage", 0, nil),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cacheService, err := cache.NewCache(ttl)
					if err != nil {
						return fmt.Errorf(t.GetMessage("cache.error_init", 0, nil)+": %w", err)
					}

					entries, size, err := cacheService.Stats()
					if err != nil {
						return fmt.Errorf(t.GetMessage("cache.error_stats", 0, nil)+": %w", err)
					}

					fmt.Println(t.GetMessage("cache.stats", 0, map[string]interface{}{
						"Entries": entries,
						"Bytes":   size,
					}))
					return nil
				},
			},
		},
	}
}
