package canvas

// Profile is the authenticated student, as reported by /users/self.
type Profile struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Course struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GradingPeriod is the wire form of a grading period. Dates are raw strings;
// the API omits or mangles them often enough that parsing is deferred to the
// resolution layer.
type GradingPeriod struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type Grades struct {
	CurrentScore *float64 `json:"current_score"`
}

type Enrollment struct {
	Grades         Grades `json:"grades"`
	LastActivityAt string `json:"last_activity_at"`
}

type apiError struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Errors []apiError `json:"errors"`
}
