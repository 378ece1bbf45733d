package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mwhitfield/gradewatch/internal/canvas"
	"github.com/mwhitfield/gradewatch/internal/config"
	"github.com/mwhitfield/gradewatch/internal/grades"
	"github.com/mwhitfield/gradewatch/internal/kvstore"
	lf "github.com/mwhitfield/gradewatch/internal/logfield"
	"github.com/mwhitfield/gradewatch/internal/render"
)

func canvasClient(conf *config.Config, logger *zap.Logger) (*canvas.Client, error) {
	return canvas.NewClient(conf.Canvas.Domain, conf.Canvas.Token, logger)
}

func makeGradesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "grades",
		Short: "Fetch current grades, store a snapshot and print them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrades()
		},
	}
}

func runGrades() error {
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

	logger := log.With(lf.Module("grades"), lf.RunID(uuid.NewString()))

	lms, err := canvasClient(conf, logger)
	if err != nil {
		return err
	}
	store, err := kvstore.NewClient(conf.Storage.AccountID, conf.Storage.APIToken, conf.Storage.NamespaceID, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()

	profile, err := lms.Self(ctx)
	if err != nil {
		return err
	}
	logger = logger.With(lf.UserID(profile.ID), lf.StudentName(profile.Name))

	courses, err := lms.ActiveCourses(ctx)
	if err != nil {
		return err
	}
	logger.Info("Getting data", zap.Int("num_courses", len(courses)))

	aggregator := grades.NewAggregator(conf.Grading.Term, conf.FallbackPolicy(), scale, lms, logger)
	records, err := aggregator.Aggregate(ctx, profile, courses)
	if err != nil {
		return err
	}

	snapshot := grades.Snapshot{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Grades:    records,
	}
	if err := store.Append(ctx, profile.Name, snapshot); err != nil {
		return errors.Wrap(err, "Failed to store snapshot")
	}
	logger.Info("Stored snapshot", zap.Int("num_records", len(records)))

	render.Table(os.Stdout, records, scale, render.Options{
		NameAllResults: conf.Display.NameAllResults,
		Term:           conf.Grading.Term,
	})

	return nil
}
