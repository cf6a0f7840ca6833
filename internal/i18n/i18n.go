package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

// NewTranslations builds the message bundle with the embedded English
// defaults plus any active.*.toml files found under localesPath.
func NewTranslations(defaultLang string, localesPath string) (*Translations, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	if localesPath == "" {
		localesPath = "locales"
	}

	files, err := filepath.Glob(filepath.Join(localesPath, "active.*.toml"))
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFile(file); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[app_usage]
	other = "Generate napari release notes from GitHub milestones"

	[app_description]
	other = "Aggregates merged pull requests for a milestone, classifies them by label, credits authors and reviewers, and renders a markdown changelog"

	[help_command_usage]
	other = "Show help"

	[flag.verbose]
	other = "Log progress information"

	[flag.debug]
	other = "Log debug information with source locations"

	[generate.usage]
	other = "Generate the release notes for a milestone"

	[generate.milestone_arg]
	other = "The milestone to list, e.g. 0.15.0"

	[generate.target_directory_flag]
	other = "Directory to write release_<milestone>.md into; stdout when omitted"

	[generate.correction_file_flag]
	other = "YAML file with login to name corrections"

	[generate.missing_milestone]
	other = "A milestone argument is required, e.g. 'generate 0.15.0'"

	[generate.fetching]
	other = "Collecting merged pull requests for milestone {{.Milestone}}..."

	[generate.written]
	other = "Release notes written to {{.File}}"

	[error.missing_token]
	other = "No GitHub token found. Export GH_TOKEN (or GITHUB_TOKEN) with a valid API token"

	[error.load_corrections]
	other = "Could not load the correction file"

	[error.cache_init]
	other = "Could not initialize the response cache"

	[error.collect]
	other = "Could not collect the milestone pull requests"

	[error.scan_prior_reports]
	other = "Could not scan prior release notes"

	[error.write_output]
	other = "Could not write the release notes"

	[error.search_prs]
	other = "Error searching merged pull requests in {{.Repo}} for milestone {{.Milestone}}"

	[error.get_pr]
	other = "Error fetching pull request {{.PRNumber}}"

	[error.get_reviews]
	other = "Error fetching reviews of pull request {{.PRNumber}}"

	[error.get_commit]
	other = "Error fetching commit {{.SHA}}"

	[error.get_user]
	other = "Error fetching user {{.Login}}"

	[cache.usage]
	other = "Manage the persisted GitHub response cache"

	[cache.clean_usage]
	other = "Remove every cached response"

	[cache.stats_usage]
	other = "Show cache entry count and size"

	[cache.cleaned]
	other = "Cache cleaned"

	[cache.stats]
	other = "{{.Entries}} cached responses, {{.Bytes}} bytes"

	[cache.error_init]
	other = "Could not open the cache"

	[cache.error_clean]
	other = "Could not clean the cache"

	[cache.error_stats]
	other = "Could not read the cache"

	[factory_already_registered]
	other = "Command factory '{{.FactoryName}}' is already registered"
	`
