package ledger

import (
	"fmt"

	"github.com/chabatake/backend/internal/domain/shared"
)

// TeaCategory identifies the kind of tea a batch was produced as.
type TeaCategory string

// Supported tea categories
const (
	CategorySencha  TeaCategory = "sencha"
	CategoryGyokuro TeaCategory = "gyokuro"
	CategoryMatcha  TeaCategory = "matcha"
	CategoryHojicha TeaCategory = "hojicha"
)

// AllCategories returns the supported tea categories in a stable order.
func AllCategories() []TeaCategory {
	return []TeaCategory{CategorySencha, CategoryGyokuro, CategoryMatcha, CategoryHojicha}
}

// IsValid reports whether the category is one of the supported values.
func (c TeaCategory) IsValid() bool {
	switch c {
	case CategorySencha, CategoryGyokuro, CategoryMatcha, CategoryHojicha:
		return true
	}
	return false
}

// String returns the category as a string
func (c TeaCategory) String() string {
	return string(c)
}

// ParseTeaCategory converts a raw string into a TeaCategory
func ParseTeaCategory(s string) (TeaCategory, error) {
	c := TeaCategory(s)
	if !c.IsValid() {
		return "", shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("unknown tea category: %q", s))
	}
	return c, nil
}

// QualityGrade is the categorical quality rating assigned to a batch.
type QualityGrade string

// Supported quality grades
const (
	GradeA QualityGrade = "A"
	GradeB QualityGrade = "B"
	GradeC QualityGrade = "C"
)

// IsValid reports whether the grade is one of the supported values.
func (g QualityGrade) IsValid() bool {
	switch g {
	case GradeA, GradeB, GradeC:
		return true
	}
	return false
}

// String returns the grade as a string
func (g QualityGrade) String() string {
	return string(g)
}

// ParseQualityGrade converts a raw string into a QualityGrade
func ParseQualityGrade(s string) (QualityGrade, error) {
	g := QualityGrade(s)
	if !g.IsValid() {
		return "", shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("unknown quality grade: %q", s))
	}
	return g, nil
}
