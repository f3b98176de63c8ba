package model

const (
	LanguageEnglish = "en"
	LanguageGerman  = "de"
)

// swagger:model User
type User struct {
	UUIDBase `bson:",inline"`
	Name     string `gorm:"size:100;not null" json:"name" bson:"name"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email" bson:"email"`
	Password string `gorm:"size:100;not null" json:"-" bson:"password"`
	Language string `gorm:"size:10;default:'en'" json:"language" bson:"language"`
}

func (User) TableName() string {
	return "users"
}

func IsSupportedLanguage(lang string) bool {
	return lang == LanguageEnglish || lang == LanguageGerman
}
