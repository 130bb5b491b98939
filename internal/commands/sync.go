package commands

import (
	"encoding/json"
	"fmt"

	"github.com/expensebud/backend/internal/config"
	"github.com/expensebud/backend/internal/notify"
	"github.com/expensebud/backend/internal/upstream"
	"github.com/expensebud/backend/internal/upstream/plaid"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newSyncCommand(cfg *config.Config) *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Import new transactions of a linked account",
		Long:  "Fetches the transactions added since the last sync of a linked account and imports them as expenses. The import result is printed as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(account)
			if err != nil {
				return fmt.Errorf("--account must be the ID of a linked account: %w", err)
			}

			publisher, closePublisher, err := newPublisher(*cfg)
			if err != nil {
				return err
			}
			defer closePublisher()

			return runSync(cmd, *cfg, plaid.New(cfg.Plaid), publisher, id)
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "ID of the linked account (required)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func runSync(cmd *cobra.Command, cfg config.Config, provider upstream.Provider, publisher notify.Publisher, id uuid.UUID) error {
	db, err := openDatabase(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	result, err := newSyncer(cfg, db, provider, publisher).SyncByID(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("syncing linked account %s: %w", id, err)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
