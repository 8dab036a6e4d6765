package paging

// Page décrit une demande de page 1-based
type Page struct {
	Number int
	Limit  int
}

// Normalize remet la page et la limite dans des bornes saines.
// Une page ou une limite invalide retombe sur les valeurs par défaut
func Normalize(number, limit, defaultLimit int) Page {
	if number < 1 {
		number = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return Page{Number: number, Limit: limit}
}

// Offset retourne l'index du premier élément de la page
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Bounds retourne les indices [from, to) de la page dans une liste de
// taille total. Une page au-delà des données retourne from == to
func (p Page) Bounds(total int) (from, to int) {
	from = p.Offset()
	to = from + p.Limit
	if from > total {
		from = total
	}
	if to > total {
		to = total
	}
	return from, to
}

// Slice découpe une page dans une liste déjà complète en mémoire.
// Utilisé pour le filtre "new" dont le total est la taille d'un ensemble
// différence, pas un count SQL
func Slice[T any](items []T, p Page) []T {
	from, to := p.Bounds(len(items))
	return items[from:to]
}

// TotalPages retourne le nombre de pages nécessaires pour total éléments
func TotalPages(total, limit int) int {
	if limit < 1 || total < 1 {
		return 0
	}
	return (total + limit - 1) / limit
}
