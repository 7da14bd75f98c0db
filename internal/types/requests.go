package types

// LoginRequest is the body of POST /api/auth/login/
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the body of POST /api/auth/register/
type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=50"`
	Password        string `json:"password" binding:"required,min=6"`
	Email           string `json:"email" binding:"omitempty,email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Bio             string `json:"bio"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// RefreshRequest is the body of POST /api/auth/refresh/
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// InteractRequest is the body of POST /api/recipes/:id/interact/
type InteractRequest struct {
	Liked      bool `json:"liked"`
	SuperLiked bool `json:"superLiked"`
}

// CreateRecipeRequest is the body of POST /api/recipes/create/.
// The web form posts snake_case for the image and cook time, so both
// spellings are accepted.
type CreateRecipeRequest struct {
	Title         string `json:"title" binding:"required,max=255"`
	Description   string `json:"description" binding:"required"`
	ImageURL      string `json:"imageUrl"`
	ImageURLSnake string `json:"image_url"`
	CookTime      string `json:"cookTime"`
	CookTimeSnake string `json:"cook_time"`
	Servings      string `json:"servings"`
	Difficulty    string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Ingredients   string `json:"ingredients" binding:"required"`
	Instructions  string `json:"instructions" binding:"required"`
}

// Image returns whichever image field the caller filled in
func (r *CreateRecipeRequest) Image() string {
	if r.ImageURL != "" {
		return r.ImageURL
	}
	return r.ImageURLSnake
}

// CookTimeValue returns whichever cook time field the caller filled in
func (r *CreateRecipeRequest) CookTimeValue() string {
	if r.CookTime != "" {
		return r.CookTime
	}
	return r.CookTimeSnake
}
