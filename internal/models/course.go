package models

// Course (seeded reference data)
type Course struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Badge       string `json:"badge"`

	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:CourseID"`
}

// Lesson is ordered inside its course by (ModuleNum, LessonNum).
type Lesson struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	CourseID  uint   `gorm:"index" json:"course_id"`
	ModuleNum int    `json:"module_num"`
	LessonNum int    `json:"lesson_num"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}
