package grades

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mwhitfield/gradewatch/internal/canvas"
	lf "github.com/mwhitfield/gradewatch/internal/logfield"
	"github.com/mwhitfield/gradewatch/internal/terms"
)

type periodsProvider = func(ctx context.Context, courseID int) ([]canvas.GradingPeriod, error)
type enrollmentsProvider = func(ctx context.Context, courseID, userID, gradingPeriodID int) ([]canvas.Enrollment, error)

// Aggregator walks a student's courses and produces one Record per course
// that has both a resolvable grading period and an enrollment in it.
type Aggregator struct {
	Term        string
	Fallback    terms.FallbackPolicy
	Scale       Scale
	Periods     periodsProvider
	Enrollments enrollmentsProvider
	Now         func() time.Time
	Logger      *zap.Logger
}

func NewAggregator(term string, fallback terms.FallbackPolicy, scale Scale, client *canvas.Client, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		Term:        term,
		Fallback:    fallback,
		Scale:       scale,
		Periods:     client.GradingPeriods,
		Enrollments: client.Enrollments,
		Now:         time.Now,
		Logger:      logger,
	}
}

func toPeriods(raw []canvas.GradingPeriod) []terms.Period {
	periods := make([]terms.Period, 0, len(raw))
	for _, p := range raw {
		periods = append(periods, terms.Period{
			ID:    p.ID,
			Title: p.Title,
			Window: terms.Window{
				Start: terms.ParseDate(p.StartDate),
				End:   terms.ParseDate(p.EndDate),
			},
		})
	}
	return periods
}

// Aggregate processes courses strictly in input order. The first course
// whose periods contain a date-active entry latches an override term label
// for the rest of the run; until one does, detection is retried on every
// course. Courses with no resolvable period or no enrollment are skipped
// silently. Any fetch failure aborts the whole run.
func (a *Aggregator) Aggregate(ctx context.Context, profile *canvas.Profile, courses []canvas.Course) ([]Record, error) {
	now := a.Now()
	records := make([]Record, 0, len(courses))
	override := ""

	for _, course := range courses {
		log := a.Logger.With(lf.CourseID(course.ID), lf.CourseName(course.Name))

		raw, err := a.Periods(ctx, course.ID)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to list grading periods")
		}
		periods := toPeriods(raw)

		if override == "" && len(periods) > 0 {
			if title, ok := terms.DetectOverride(periods, now); ok {
				override = title
				log.Info("Date-based term override detected",
					lf.Term(override), zap.String("configured_term", a.Term))
			}
		}

		term := a.Term
		if override != "" {
			term = override
		}

		period := terms.Resolve(periods, term, now, a.Fallback)
		if period == nil {
			log.Debug("No grading period found", lf.Term(term))
			continue
		}
		log = log.With(lf.GradingPeriodID(period.ID))

		enrollments, err := a.Enrollments(ctx, course.ID, profile.ID, period.ID)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to list enrollments")
		}
		if len(enrollments) == 0 {
			log.Debug("No enrollment found")
			continue
		}

		enrollment := enrollments[0]
		records = append(records, Record{
			StudentName:  profile.Name,
			StudentID:    profile.ID,
			CourseName:   course.Name,
			CourseID:     course.ID,
			CurrentScore: FormatScore(enrollment.Grades.CurrentScore),
			CurrentGrade: a.Scale.Letter(enrollment.Grades.CurrentScore),
			LastActivity: enrollment.LastActivityAt,
		})
	}

	return records, nil
}
