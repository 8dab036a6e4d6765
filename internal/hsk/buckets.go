package hsk

import (
	"fmt"
	"strconv"
)

// MinLevel et MaxLevel bornent les niveaux HSK valides
const (
	MinLevel = 1
	MaxLevel = 9
)

// CombinedBucketID est l'identifiant du bucket regroupant les niveaux 7 à 9.
// Partout dans l'application les niveaux 7, 8 et 9 sont présentés ensemble
const CombinedBucketID = "7-9"

// Bucket regroupe un ou plusieurs niveaux HSK sous un identifiant d'affichage
type Bucket struct {
	ID     string `json:"id"`
	Levels []int  `json:"levels"`
}

// Buckets retourne la liste ordonnée des 7 buckets: 1 à 6 individuels
// puis le bucket combiné 7-9. Toutes les agrégations consomment cette
// liste pour éviter toute divergence de regroupement
func Buckets() []Bucket {
	return []Bucket{
		{ID: "1", Levels: []int{1}},
		{ID: "2", Levels: []int{2}},
		{ID: "3", Levels: []int{3}},
		{ID: "4", Levels: []int{4}},
		{ID: "5", Levels: []int{5}},
		{ID: "6", Levels: []int{6}},
		{ID: CombinedBucketID, Levels: []int{7, 8, 9}},
	}
}

// ParseBucket résout un identifiant de bucket ("1".."6" ou "7-9") depuis
// un paramètre d'URL
func ParseBucket(id string) (Bucket, error) {
	for _, b := range Buckets() {
		if b.ID == id {
			return b, nil
		}
	}

	// Les niveaux 7, 8 et 9 pris isolément ne sont pas des buckets valides
	if n, err := strconv.Atoi(id); err == nil && n >= 7 && n <= MaxLevel {
		return Bucket{}, fmt.Errorf("level %d is only available as bucket %q", n, CombinedBucketID)
	}

	return Bucket{}, fmt.Errorf("invalid HSK level %q", id)
}

// BucketForLevel retourne le bucket auquel appartient un niveau HSK
func BucketForLevel(level int) (Bucket, error) {
	for _, b := range Buckets() {
		for _, l := range b.Levels {
			if l == level {
				return b, nil
			}
		}
	}
	return Bucket{}, fmt.Errorf("invalid HSK level %d", level)
}

// ValidLevel indique si un niveau individuel est dans la plage 1-9
func ValidLevel(level int) bool {
	return level >= MinLevel && level <= MaxLevel
}
