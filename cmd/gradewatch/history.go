package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mwhitfield/gradewatch/internal/config"
	"github.com/mwhitfield/gradewatch/internal/grades"
	"github.com/mwhitfield/gradewatch/internal/kvstore"
	lf "github.com/mwhitfield/gradewatch/internal/logfield"
	"github.com/mwhitfield/gradewatch/internal/render"
)

func makeHistoryCommand() *cobra.Command {
	var student string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previously stored grade snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(student, limit)
		},
	}
	cmd.Flags().StringVar(&student, "student", "", "Student display name (defaults to the authenticated student)")
	cmd.Flags().IntVar(&limit, "limit", 5, "Number of most recent snapshots to show")

	return cmd
}

func runHistory(student string, limit int) error {
	conf, err := config.ParseConfig()
	if err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return err
	}

	scale, err := conf.LoadScale()
	if err != nil {
		return err
	}

	logger := log.With(lf.Module("history"))

	store, err := kvstore.NewClient(conf.Storage.AccountID, conf.Storage.APIToken, conf.Storage.NamespaceID, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if student == "" {
		lms, err := canvasClient(conf, logger)
		if err != nil {
			return err
		}
		profile, err := lms.Self(ctx)
		if err != nil {
			return err
		}
		student = profile.Name
	}

	value, found, err := store.Get(ctx, student)
	if err != nil {
		return err
	}
	if !found {
		fmt.Printf("No snapshots stored for %s.\n", student)
		return nil
	}

	// Round-trip through JSON to decode the loosely typed document.
	body, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "Failed to encode stored document")
	}
	var snapshots []grades.Snapshot
	if err := json.Unmarshal(body, &snapshots); err != nil {
		return errors.Errorf("Stored document for %s is not a snapshot list", student)
	}

	if limit > 0 && len(snapshots) > limit {
		snapshots = snapshots[len(snapshots)-limit:]
	}

	for _, snapshot := range snapshots {
		fmt.Printf("=== %s ===\n", snapshot.Timestamp)
		render.Table(os.Stdout, snapshot.Grades, scale, render.Options{
			NameAllResults: conf.Display.NameAllResults,
			Term:           conf.Grading.Term,
		})
		fmt.Println()
	}

	return nil
}
