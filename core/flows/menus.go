package flows

import (
	"fmt"

	"prepbot/core/session"
)

// Menu copy is versioned alongside the transition table in core/menu: the
// numbered lines here must match the table rows one to one.
var menuCopy = map[session.Menu]string{
	session.MenuWelcome: "What would you like to do?\n" +
		"1. Open the main menu\n" +
		"2. Get a confidence boost\n" +
		"3. Take a stress-relief break",
	session.MenuMain: "Main menu:\n" +
		"1. Choose a subject\n" +
		"2. Start a practice run\n" +
		"3. Homework help\n" +
		"4. Exam preparation\n" +
		"5. My progress report\n" +
		"6. Friends\n" +
		"7. Help",
	session.MenuSubject: "Pick a subject:\n" +
		"1. Math\n" +
		"2. English\n" +
		"3. Back to main menu",
	session.MenuMathTopics: "Math topics:\n" +
		"1. Algebra\n" +
		"2. Geometry\n" +
		"3. Fractions\n" +
		"4. Word problems\n" +
		"5. Back to subjects",
	session.MenuEnglishTopics: "English topics:\n" +
		"1. Grammar\n" +
		"2. Vocabulary\n" +
		"3. Reading\n" +
		"4. Writing\n" +
		"5. Back to subjects",
	session.MenuPostAnswer: "What next?\n" +
		"1. Next question\n" +
		"2. Explain this one\n" +
		"3. Change topic\n" +
		"4. Practice this topic\n" +
		"5. Main menu",
	session.MenuPracticeActive: "Practice:\n" +
		"1. Keep going\n" +
		"2. Switch topic\n" +
		"3. Stop and see my score",
	session.MenuRegistrationGrade: "What grade are you in?\n" +
		"1. Grade 7\n" +
		"2. Grade 8\n" +
		"3. Grade 9\n" +
		"4. Grade 10\n" +
		"5. Grade 11\n" +
		"6. Grade 12",
	session.MenuExamPrepSubject: "Which exam are you preparing for?\n" +
		"1. Math\n" +
		"2. English\n" +
		"3. Never mind, back to main menu",
	session.MenuHomework: "Homework help:\n" +
		"1. Show my assignments\n" +
		"2. Help me with the current one\n" +
		"3. Back to main menu",
	session.MenuFriends: "Friends:\n" +
		"1. Add a friend\n" +
		"2. Show my friends\n" +
		"3. Back to main menu",
	// Free-text states get a prompt rather than numbered options.
	session.MenuRegistrationName: "Hi! I'm your study buddy. What's your name?",
	session.MenuExamPrepDate:     "When is your exam? Send a date like 2026-09-15.",
}

// renderMenu returns the copy for a menu, or the welcome copy for tags
// that carry none.
func renderMenu(m session.Menu) string {
	if text, ok := menuCopy[m]; ok {
		return text
	}
	return menuCopy[session.MenuWelcome]
}

func welcomeGreeting(name string) string {
	if name == "" {
		return "Welcome back!\n\n" + menuCopy[session.MenuWelcome]
	}
	return fmt.Sprintf("Welcome back, %s!\n\n%s", name, menuCopy[session.MenuWelcome])
}
