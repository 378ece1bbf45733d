package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	lf "github.com/mwhitfield/gradewatch/internal/logfield"
)

// ErrInvalidToken is returned when the API rejects the bearer token.
// It is always fatal: nothing useful can be fetched without credentials.
var ErrInvalidToken = errors.New("The Canvas API token is invalid")

const invalidTokenMessage = "Invalid access token."

type Client struct {
	client *resty.Client
	logger *zap.Logger
}

func NewClient(domain, token string, logger *zap.Logger) (*Client, error) {
	if domain == "" {
		return nil, errors.New("Canvas domain is not set")
	}
	if token == "" {
		return nil, errors.New("Canvas API token is not set")
	}

	client := resty.New().
		SetBaseURL(fmt.Sprintf("https://%s/api/v1", domain)).
		SetAuthToken(token).
		SetTimeout(time.Second * 10)

	return &Client{client, logger}, nil
}

// withBaseURL overrides the API endpoint, for tests.
func (c *Client) withBaseURL(base string) *Client {
	c.client.SetBaseURL(base)
	return c
}

// Self fetches the authenticated student's profile.
func (c *Client) Self(ctx context.Context) (*Profile, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/users/self")
	if err != nil {
		return nil, errors.Wrap(err, "Failed to fetch user profile")
	}

	if err := checkInvalidToken(resp.Body()); err != nil {
		return nil, err
	}

	profile := &Profile{}
	if err := json.Unmarshal(resp.Body(), profile); err != nil {
		return nil, errors.Wrap(err, "Failed to decode user profile")
	}
	if !resp.IsSuccess() || profile.ID == 0 {
		c.logger.Error("Unexpected profile response", zap.Int("status", resp.StatusCode()))
		return nil, errors.New("Could not fetch user profile from Canvas")
	}

	c.logger.Debug("Fetched user profile", lf.UserID(profile.ID), lf.StudentName(profile.Name))
	return profile, nil
}

// ActiveCourses lists the student's active enrollments. Anything other than
// a list body is fatal: there is no safe way to proceed without courses.
func (c *Client) ActiveCourses(ctx context.Context) ([]Course, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("enrollment_state", "active").
		Get("/courses")
	if err != nil {
		return nil, errors.Wrap(err, "Failed to fetch courses")
	}

	if err := checkInvalidToken(resp.Body()); err != nil {
		return nil, err
	}

	var courses []Course
	if err := json.Unmarshal(resp.Body(), &courses); err != nil {
		c.logger.Error("Invalid response when fetching courses", zap.Int("status", resp.StatusCode()))
		return nil, errors.New("Did not receive a valid list of courses")
	}

	c.logger.Debug("Fetched active courses", zap.Int("num_courses", len(courses)))
	return courses, nil
}

// GradingPeriods lists all grading periods for a course. Courses without
// grading periods yield an empty list, not an error.
func (c *Client) GradingPeriods(ctx context.Context, courseID int) ([]GradingPeriod, error) {
	res := &struct {
		GradingPeriods []GradingPeriod `json:"grading_periods"`
	}{}

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(res).
		SetPathParam("course", fmt.Sprint(courseID)).
		Get("/courses/{course}/grading_periods")
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to fetch grading periods for course %d", courseID)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("Failed to fetch grading periods for course %d: %s", courseID, resp.Status())
	}

	return res.GradingPeriods, nil
}

// Enrollments lists the student's enrollments in a course, scoped to a
// single grading period.
func (c *Client) Enrollments(ctx context.Context, courseID, userID, gradingPeriodID int) ([]Enrollment, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("course", fmt.Sprint(courseID)).
		SetQueryParam("user_id", fmt.Sprint(userID)).
		SetQueryParam("grading_period_id", fmt.Sprint(gradingPeriodID)).
		Get("/courses/{course}/enrollments")
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to fetch enrollments for course %d", courseID)
	}

	var enrollments []Enrollment
	if err := json.Unmarshal(resp.Body(), &enrollments); err != nil {
		c.logger.Error("Invalid response when fetching enrollments",
			lf.CourseID(courseID), zap.Int("status", resp.StatusCode()))
		return nil, errors.Errorf("Did not receive a valid list of enrollments for course %d", courseID)
	}

	return enrollments, nil
}

func checkInvalidToken(body []byte) error {
	res := &errorResponse{}
	if err := json.Unmarshal(body, res); err != nil {
		return nil
	}
	if len(res.Errors) > 0 && res.Errors[0].Message == invalidTokenMessage {
		return ErrInvalidToken
	}
	return nil
}
