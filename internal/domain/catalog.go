package domain

// CatalogExercise is an exercise as returned by the external gym
// exercises API. Read-only; never persisted except as part of a
// FavoriteExercise bookmark.
type CatalogExercise struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BodyPart   string `json:"bodyPart,omitempty"`
	Equipment  string `json:"equipment,omitempty"`
	Target     string `json:"target,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	GifURL     string `json:"gifUrl,omitempty"`
}

// CatalogPage is one page of exercise catalog results.
type CatalogPage struct {
	Exercises  []CatalogExercise `json:"exercises"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
}

// CatalogMuscle is a muscle group from the external catalog, used to
// filter exercise listings.
type CatalogMuscle struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CatalogEquipment is an equipment entry from the external catalog.
type CatalogEquipment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
