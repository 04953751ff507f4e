package database

import (
	"github.com/s/bitmentor/internal/models"
	"gorm.io/gorm"
)

var seedCourses = []models.Course{
	{ID: 1, Name: "Python for Beginners", Description: "A comprehensive introduction to Python.", Badge: "Pythonista"},
	{ID: 2, Name: "Java Fundamentals", Description: "Learn the basics of object-oriented programming.", Badge: "Java Apprentice"},
	{ID: 3, Name: "C++ Essentials", Description: "Master the power and performance of C++.", Badge: "C++ Pro"},
}

var seedLessons = []models.Lesson{
	{ID: 1, CourseID: 1, ModuleNum: 1, LessonNum: 1, Title: "What is Python?", Content: "Python is a high-level, interpreted programming language known for its readability and simple syntax."},
	{ID: 2, CourseID: 1, ModuleNum: 1, LessonNum: 2, Title: "Setting Up Your Environment", Content: "To start, you will need to install the Python interpreter from python.org and a code editor like VS Code."},
	{ID: 3, CourseID: 1, ModuleNum: 2, LessonNum: 1, Title: "Understanding Variables", Content: "Variables are containers for storing data values. In Python, a variable is created the moment you first assign a value to it."},
	{ID: 4, CourseID: 2, ModuleNum: 1, LessonNum: 1, Title: "What is Java?", Content: "Java is a class-based, object-oriented programming language that is designed to have as few implementation dependencies as possible."},
	{ID: 5, CourseID: 2, ModuleNum: 1, LessonNum: 2, Title: "The JDK and JRE", Content: "The Java Development Kit (JDK) is a software development environment used for developing Java applications."},
	{ID: 6, CourseID: 2, ModuleNum: 2, LessonNum: 1, Title: "Variables and Data Types", Content: "In Java, every variable has a data type, such as int or String."},
	{ID: 7, CourseID: 3, ModuleNum: 1, LessonNum: 1, Title: "Introduction to C++", Content: "C++ is a powerful, high-performance programming language developed by Bjarne Stroustrup."},
	{ID: 8, CourseID: 3, ModuleNum: 1, LessonNum: 2, Title: "Setting up a Compiler", Content: "To write and run C++ code, you need a C++ compiler like G++ or Clang."},
	{ID: 9, CourseID: 3, ModuleNum: 2, LessonNum: 1, Title: "Basic Syntax and Structure", Content: "A C++ program consists of various elements including variables, functions, and control structures."},
}

var seedQuestions = []models.Question{
	{ID: 1, CourseID: 1, Text: "What does the 'print()' function do in Python?", Answers: []models.Answer{
		{ID: 1, Text: "Prints output to the console", IsCorrect: true},
		{ID: 2, Text: "Asks for user input"},
		{ID: 3, Text: "Creates a new variable"},
	}},
	{ID: 2, CourseID: 1, Text: "Which data type is used for text?", Answers: []models.Answer{
		{ID: 4, Text: "Integer"},
		{ID: 5, Text: "String", IsCorrect: true},
		{ID: 6, Text: "Boolean"},
	}},
	{ID: 3, CourseID: 2, Text: "Which keyword creates a new object in Java?", Answers: []models.Answer{
		{ID: 7, Text: "new", IsCorrect: true},
		{ID: 8, Text: "make"},
		{ID: 9, Text: "create"},
	}},
	{ID: 4, CourseID: 2, Text: "What does the JVM execute?", Answers: []models.Answer{
		{ID: 10, Text: "Python scripts"},
		{ID: 11, Text: "Bytecode", IsCorrect: true},
		{ID: 12, Text: "Machine code only"},
	}},
	{ID: 5, CourseID: 3, Text: "Which operator allocates memory on the heap in C++?", Answers: []models.Answer{
		{ID: 13, Text: "malloc only"},
		{ID: 14, Text: "new", IsCorrect: true},
		{ID: 15, Text: "alloc"},
	}},
}

// Seed inserts the static catalog. Rows are matched by primary key, so running
// it again leaves existing data untouched.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, c := range seedCourses {
			if err := tx.FirstOrCreate(&models.Course{}, c).Error; err != nil {
				return err
			}
		}
		for _, l := range seedLessons {
			if err := tx.FirstOrCreate(&models.Lesson{}, l).Error; err != nil {
				return err
			}
		}
		for _, q := range seedQuestions {
			answers := q.Answers
			q.Answers = nil
			if err := tx.FirstOrCreate(&models.Question{}, q).Error; err != nil {
				return err
			}
			for _, a := range answers {
				a.QuestionID = q.ID
				if err := tx.FirstOrCreate(&models.Answer{}, a).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
