package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitfield/gradewatch/internal/config"
	"github.com/mwhitfield/gradewatch/internal/kvstore"
	lf "github.com/mwhitfield/gradewatch/internal/logfield"
)

func makeStoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Direct access to the grade document store",
	}
	cmd.AddCommand(makeStoreGetCommand())
	cmd.AddCommand(makeStoreSetCommand())
	cmd.AddCommand(makeStoreDeleteCommand())

	return cmd
}

func storeClient() (*kvstore.Client, error) {
	conf, err := config.ParseConfig()
	if err != nil {
		return nil, err
	}
	if conf.Storage.AccountID == "" || conf.Storage.APIToken == "" || conf.Storage.NamespaceID == "" {
		return nil, fmt.Errorf("storage credentials are not set")
	}
	return kvstore.NewClient(conf.Storage.AccountID, conf.Storage.APIToken, conf.Storage.NamespaceID, log.With(lf.Module("store")))
}

func makeStoreGetCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Read a document, or a nested field of it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storeClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			var value interface{}
			var found bool
			if path == "" {
				value, found, err = store.Get(ctx, args[0])
			} else {
				value, found, err = store.GetPath(ctx, args[0], path)
			}
			if err != nil {
				return err
			}
			if !found {
				fmt.Println("(not found)")
				return nil
			}

			body, err := json.MarshalIndent(value, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(body))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Nested path (dot or slash delimited)")

	return cmd
}

func makeStoreSetCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Write a document, or a nested field of it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storeClient()
			if err != nil {
				return err
			}

			// Values are JSON; bare words are stored as strings.
			var value interface{}
			if err := json.Unmarshal([]byte(args[1]), &value); err != nil {
				value = args[1]
			}

			ctx := context.Background()
			if path == "" {
				return store.Set(ctx, args[0], value)
			}
			return store.SetPath(ctx, args[0], path, value)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Nested path (dot or slash delimited)")

	return cmd
}

func makeStoreDeleteCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete a document, or only a nested field of it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storeClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			if path == "" {
				return store.Delete(ctx, args[0])
			}
			return store.DeletePath(ctx, args[0], path)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Nested path (dot or slash delimited)")

	return cmd
}
