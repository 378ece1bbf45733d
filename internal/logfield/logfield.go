package lf

import "go.uber.org/zap"

const (
	FieldModule          = "module"
	FieldRunID           = "run_id"
	FieldUserID          = "user_id"
	FieldStudentName     = "student_name"
	FieldCourseID        = "course_id"
	FieldCourseName      = "course_name"
	FieldTerm            = "term"
	FieldGradingPeriodID = "grading_period_id"
)

func Module(module string) zap.Field {
	return zap.String(FieldModule, module)
}

func RunID(id string) zap.Field {
	return zap.String(FieldRunID, id)
}

func UserID(id int) zap.Field {
	return zap.Int(FieldUserID, id)
}

func StudentName(name string) zap.Field {
	return zap.String(FieldStudentName, name)
}

func CourseID(id int) zap.Field {
	return zap.Int(FieldCourseID, id)
}

func CourseName(name string) zap.Field {
	return zap.String(FieldCourseName, name)
}

func Term(term string) zap.Field {
	return zap.String(FieldTerm, term)
}

func GradingPeriodID(id int) zap.Field {
	return zap.Int(FieldGradingPeriodID, id)
}
