package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/mwhitfield/gradewatch/internal/grades"
)

type Options struct {
	// NameAllResults shows the student name on every row. When false a
	// single banner line replaces the Student column.
	NameAllResults bool
	// Term is only used in the empty-result notice.
	Term string
}

const (
	headerStudent = "Student"
	headerCourse  = "Course (Uses Nicknames)"
	headerGrade   = "Grade"
	headerScore   = "Score"
)

var colourAttrs = map[string][]color.Attribute{
	"gray":    {color.FgHiBlack},
	"green":   {color.FgGreen},
	"red":     {color.FgRed},
	"white":   {color.FgWhite},
	"cyan":    {color.FgCyan},
	"yellow":  {color.FgYellow},
	"magenta": {color.FgMagenta},
	"blue":    {color.FgBlue},
	"bright":  {color.Bold},
}

func paint(text, colour string) string {
	attrs, ok := colourAttrs[colour]
	if !ok {
		attrs = colourAttrs["white"]
	}
	return color.New(attrs...).Sprint(text)
}

// colourForLetter maps a letter grade to a colour name, preferring the
// scale tier whose letter matches.
func colourForLetter(letter string, scale grades.Scale) string {
	if letter == "" {
		return "white"
	}
	normalized := strings.ToUpper(letter)
	for _, tier := range scale {
		if tier.LetterGrade == "" || tier.Colour == "" {
			continue
		}
		if strings.HasPrefix(strings.ToUpper(tier.LetterGrade), normalized) {
			return tier.Colour
		}
	}
	switch {
	case strings.HasPrefix(normalized, "A"):
		return "green"
	case strings.HasPrefix(normalized, "B"):
		return "cyan"
	case strings.HasPrefix(normalized, "C"):
		return "yellow"
	case strings.HasPrefix(normalized, "D"):
		return "magenta"
	case strings.HasPrefix(normalized, "F"):
		return "red"
	}
	return "white"
}

// colourForScore colours a formatted score ("NN%") by the tier its numeric
// part lands in. Non-numeric scores stay white.
func colourForScore(score string, scale grades.Scale) string {
	value, err := strconv.ParseFloat(strings.TrimSuffix(score, "%"), 64)
	if err != nil {
		return "white"
	}
	if tier, ok := scale.TierFor(value); ok {
		if tier.Colour != "" {
			return tier.Colour
		}
		if tier.LetterGrade != "" {
			return colourForLetter(tier.LetterGrade, scale)
		}
	}
	return "white"
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func maxWidth(header string, values []string) int {
	width := len(header)
	for _, v := range values {
		if len(v) > width {
			width = len(v)
		}
	}
	return width
}

// Table writes the grade records as a pipe-delimited table, colorizing
// letters and scores by scale tier.
func Table(w io.Writer, records []grades.Record, scale grades.Scale, opts Options) {
	if len(records) == 0 {
		term := opts.Term
		if term == "" {
			term = "the current term"
		}
		fmt.Fprintf(w, "No grades to display for %s.\n", term)
		return
	}

	students := make([]string, len(records))
	courses := make([]string, len(records))
	letters := make([]string, len(records))
	scores := make([]string, len(records))
	for i, r := range records {
		students[i] = r.StudentName
		courses[i] = r.CourseName
		letters[i] = orNA(r.CurrentGrade)
		scores[i] = orNA(r.CurrentScore)
	}

	studentWidth := maxWidth(headerStudent, students)
	courseWidth := maxWidth(headerCourse, courses)
	gradeWidth := maxWidth(headerGrade, letters)
	scoreWidth := maxWidth(headerScore, scores)

	if !opts.NameAllResults {
		fmt.Fprintln(w, paint(fmt.Sprintf("Student: %s", records[0].StudentName), "cyan"))
		fmt.Fprintln(w)
	}

	header := make([]string, 0, 4)
	separator := make([]string, 0, 4)
	if opts.NameAllResults {
		header = append(header, pad(headerStudent, studentWidth))
		separator = append(separator, strings.Repeat("-", studentWidth))
	}
	header = append(header, pad(headerCourse, courseWidth), pad(headerGrade, gradeWidth), pad(headerScore, scoreWidth))
	separator = append(separator, strings.Repeat("-", courseWidth), strings.Repeat("-", gradeWidth), strings.Repeat("-", scoreWidth))

	fmt.Fprintln(w, row(header))
	fmt.Fprintln(w, rowDashes(separator))

	for i, r := range records {
		cells := make([]string, 0, 4)
		if opts.NameAllResults {
			cells = append(cells, pad(students[i], studentWidth))
		}
		cells = append(cells,
			pad(courses[i], courseWidth),
			paint(pad(letters[i], gradeWidth), colourForLetter(r.CurrentGrade, scale)),
			paint(pad(scores[i], scoreWidth), colourForScore(r.CurrentScore, scale)),
		)
		fmt.Fprintln(w, row(cells))
	}
}

func orNA(s string) string {
	if s == "" {
		return grades.NoGrade
	}
	return s
}

func row(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

func rowDashes(cells []string) string {
	return "|-" + strings.Join(cells, "-|-") + "-|"
}
