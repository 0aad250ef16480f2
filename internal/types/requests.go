package types

// SignupRequest represents the request body for account creation
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries a partial profile update. Nil fields are left untouched.
type UpdateProfileRequest struct {
	Username *string  `json:"username"`
	Email    *string  `json:"email"`
	Bio      *string  `json:"bio"`
	Tags     []string `json:"tags"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title        string   `json:"title" validate:"required,max=60"`
	Description  string   `json:"description" validate:"required,max=300"`
	Servings     *int     `json:"servings" validate:"omitempty,min=1,max=100"`
	Ingredients  []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Instructions []string `json:"instructions" validate:"required,min=1,dive,required"`
	Category     string   `json:"category" validate:"required,oneof=Breakfast Lunch Dinner Snacks Dessert Beverage Healthy Vegetarian Vegan"`
	Image        string   `json:"image" validate:"omitempty,url,max=300"`
	CookingTime  string   `json:"cookingTime" validate:"required,numeric,max=10"`
}

// CreateReviewRequest represents the request body for reviewing a recipe.
// The reviewer is always taken from the bearer token.
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// FavoriteRequest is the body of favorite add/remove calls
type FavoriteRequest struct {
	RecipeID string `json:"recipeId"`
}

// AddItemRequest appends an entry to a shopping list
type AddItemRequest struct {
	Name string `json:"name"`
}

// ItemRequest addresses a shopping list entry by id, or by position for older clients.
type ItemRequest struct {
	ItemID    string `json:"itemId"`
	ItemIndex *int   `json:"itemIndex"`
	Done      *bool  `json:"done"`
}
