package main

import (
	"context"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"enduro/internal/config"
	"enduro/internal/importer"
	"enduro/internal/profile"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Fetch new activities from the activity provider and import them",
	RunE:  runImport,
}

var importFlags struct {
	since string
}

func init() {
	importCmd.Flags().StringVar(&importFlags.since, "since", "", "only fetch activities after this date, YYYY-MM-DD (default: 30 days ago)")
}

func runImport(cmd *cobra.Command, args []string) error {
	repo, _, err := openRepo(cmd)
	if err != nil {
		return err
	}

	secrets, err := config.LoadSecrets(repo)
	if err != nil {
		return err
	}

	oauthCfg := importer.NewOAuthConfig(importer.OAuthConfig{
		ClientID:     secrets.ProviderClientID,
		ClientSecret: secrets.ProviderClientSecret,
	})
	tokenSource := importer.NewSecretsTokenSource(repo, oauthCfg, secrets)
	client := importer.NewClient(tokenSource)

	since := time.Now().AddDate(0, 0, -30)
	if importFlags.since != "" {
		since, err = time.Parse("2006-01-02", importFlags.since)
		if err != nil {
			return err
		}
	}

	p, err := profile.Load(repo)
	if err != nil {
		return err
	}
	maxHR := 0
	if p.MaxHR != nil {
		maxHR = *p.MaxHR
	}

	records, err := client.FetchActivities(context.Background(), since, func(fetched int) {
		log.Printf("fetched %d activities so far", fetched)
	})
	if err != nil {
		return err
	}

	imported := 0
	for _, rec := range records {
		if _, err := importer.Import(repo, rec, maxHR); err != nil {
			return err
		}
		imported++
	}

	exitStatus = emitOK(map[string]interface{}{
		"fetched":     len(records),
		"imported":    imported,
		"since":       since.Format("2006-01-02"),
		"since_human": humanize.Time(since),
	})
	return nil
}
