package scanner

import (
	"database/sql"

	model "github.com/RaidenNguyen/HanziLaoshi/internal/models"
	"github.com/RaidenNguyen/HanziLaoshi/internal/utils"
)

// ScanProfile scanne une ligne SQL vers un Profile
// Utilise les types sql.Null* et les convertit automatiquement
func ScanProfile(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Profile, error) {
	var p model.Profile
	var avatar sql.NullString
	var level sql.NullInt64

	err := scanner.Scan(
		&p.ID, &p.FullName, &p.Email, &avatar, &level,
		&p.Role, &p.EmailVerified, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Conversions
	p.AvatarURL = utils.NullStringToString(avatar)
	p.CurrentHSKLevel = utils.NullInt64ToInt(level)
	if p.CurrentHSKLevel == 0 {
		p.CurrentHSKLevel = 1
	}

	return &p, nil
}

// ScanVocabularyItem scanne une ligne SQL vers un VocabularyItem
func ScanVocabularyItem(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.VocabularyItem, error) {
	var v model.VocabularyItem
	var audio, example, examplePinyin, exampleMeaning sql.NullString

	err := scanner.Scan(
		&v.ID, &v.HSKLevel, &v.Hanzi, &v.Pinyin, &v.Meaning,
		&audio, &example, &examplePinyin, &exampleMeaning, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.AudioURL = utils.NullStringToString(audio)
	v.Example = utils.NullStringToString(example)
	v.ExamplePinyin = utils.NullStringToString(examplePinyin)
	v.ExampleMeaning = utils.NullStringToString(exampleMeaning)

	return &v, nil
}

// ScanVocabularyWithProgress scanne un mot joint (LEFT JOIN) à la
// progression de l'appelant. Progress reste nil quand le mot est "new"
func ScanVocabularyWithProgress(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.VocabularyWithProgress, error) {
	var v model.VocabularyWithProgress
	var audio, example, examplePinyin, exampleMeaning sql.NullString
	var status sql.NullString
	var masteryScore sql.NullFloat64
	var lastReviewed sql.NullTime

	err := scanner.Scan(
		&v.ID, &v.HSKLevel, &v.Hanzi, &v.Pinyin, &v.Meaning,
		&audio, &example, &examplePinyin, &exampleMeaning, &v.CreatedAt,
		&status, &masteryScore, &lastReviewed,
	)
	if err != nil {
		return nil, err
	}

	v.AudioURL = utils.NullStringToString(audio)
	v.Example = utils.NullStringToString(example)
	v.ExamplePinyin = utils.NullStringToString(examplePinyin)
	v.ExampleMeaning = utils.NullStringToString(exampleMeaning)

	if status.Valid {
		v.Progress = &model.UserProgress{
			Status:       status.String,
			MasteryScore: utils.NullFloat64ToPointer(masteryScore),
			LastReviewed: utils.NullTimeToTime(lastReviewed),
		}
	}

	return &v, nil
}
