package domain

import "time"

type Category string

const (
	CategoryFashion     Category = "Fashion"
	CategoryElectronics Category = "Electronics"
	CategorySports      Category = "Sports"
	CategoryFurniture   Category = "Furniture"
	CategoryBooks       Category = "Books"
	CategoryToys        Category = "Toys"

	// CategoryAll is a filter sentinel only; it is never stored on a listing.
	CategoryAll Category = "All"
)

type Condition string

const (
	ConditionExcellent Condition = "Excellent"
	ConditionGood      Condition = "Good"
	ConditionFair      Condition = "Fair"
)

const (
	// SellerSelf is the seller value for every created listing; there is no
	// identity system behind it.
	SellerSelf = "You"

	// PostedJustNow is the static posted-date label written at creation time.
	// It is stored verbatim and never recomputed from CreatedAt.
	PostedJustNow = "Just now"
)

// Categories lists the storable categories, in the order the UI shows them.
func Categories() []Category {
	return []Category{
		CategoryFashion,
		CategoryElectronics,
		CategorySports,
		CategoryFurniture,
		CategoryBooks,
		CategoryToys,
	}
}

// Valid reports whether c is a storable category. CategoryAll is not.
func (c Category) Valid() bool {
	switch c {
	case CategoryFashion, CategoryElectronics, CategorySports,
		CategoryFurniture, CategoryBooks, CategoryToys:
		return true
	}
	return false
}

func (c Condition) Valid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair:
		return true
	}
	return false
}

// Listing is a single marketplace item. Listings are immutable once created;
// ID and CreatedAt are assigned by the listing store.
type Listing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Category    Category  `json:"category"`
	Condition   Condition `json:"condition"`
	Seller      string    `json:"seller"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image"`
	PostedDate  string    `json:"postedDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Draft is the in-progress listing a user is composing. Price stays a raw
// string until submission, when it is parsed to a float.
type Draft struct {
	Title       string    `json:"title"`
	Price       string    `json:"price"`
	Category    Category  `json:"category"`
	Condition   Condition `json:"condition"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	ImageName   string    `json:"imageName,omitempty"`
	ImageData   []byte    `json:"-"`
}

// NewDraft returns the empty form defaults.
func NewDraft() Draft {
	return Draft{
		Category:  CategoryFashion,
		Condition: ConditionGood,
	}
}
