package grades

import "strconv"

// Record is one course's grade line for a single student.
type Record struct {
	StudentName  string `json:"studentName"`
	StudentID    int    `json:"studentId"`
	CourseName   string `json:"courseName"`
	CourseID     int    `json:"courseId"`
	CurrentScore string `json:"currentScore"`
	CurrentGrade string `json:"currentGrade"`
	LastActivity string `json:"lastActivity"`
}

// Snapshot is the persisted form of one run: every record produced,
// stamped with the wall-clock time of the run.
type Snapshot struct {
	Timestamp string   `json:"timestamp"`
	Grades    []Record `json:"grades"`
}

// FormatScore renders the raw percentage with a literal % suffix. An
// absent score renders as "null%", matching what consumers of historical
// snapshots already expect.
func FormatScore(score *float64) string {
	if score == nil {
		return "null%"
	}
	return strconv.FormatFloat(*score, 'f', -1, 64) + "%"
}
