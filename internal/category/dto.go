package category

type CategoryResponse struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
