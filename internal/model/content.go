package model

// Chapter is one of the five exam domains.
type Chapter struct {
	ID            int    `yaml:"id" json:"id"`
	Title         string `yaml:"title" json:"title"`
	TitleDE       string `yaml:"title_de" json:"title_de"`
	Description   string `yaml:"description" json:"description"`
	DescriptionDE string `yaml:"description_de" json:"description_de"`
	Questions     int    `yaml:"-" json:"questions"`
	Weight        string `yaml:"weight" json:"weight"`
}

type Question struct {
	ID            string   `yaml:"id" json:"id"`
	Chapter       int      `yaml:"chapter" json:"chapter"`
	Question      string   `yaml:"question" json:"question"`
	Options       []string `yaml:"options" json:"options"`
	CorrectAnswer int      `yaml:"correct_answer" json:"correct_answer"`
	Explanation   string   `yaml:"explanation" json:"explanation"`
}

type Flashcard struct {
	ID       string `yaml:"id" json:"id"`
	Chapter  int    `yaml:"chapter" json:"chapter"`
	Front    string `yaml:"front" json:"front"`
	Back     string `yaml:"back" json:"back"`
	Category string `yaml:"category" json:"category"`
}

type StudyPlanWeek struct {
	Week      int      `yaml:"week" json:"week"`
	Title     string   `yaml:"title" json:"title"`
	Topics    []string `yaml:"topics" json:"topics"`
	Completed bool     `yaml:"-" json:"completed"`
}
