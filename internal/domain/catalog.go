package domain

// ProductType distinguishes the catalog item kinds
type ProductType string

const (
	ProductTypeService ProductType = "service"
	ProductTypeCourse  ProductType = "course"
	ProductTypeTool    ProductType = "tool"
)

// Category represents a product category
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Product represents a product in the catalog. Price is stored in minor
// currency units (cents) and Rating in tenths of a star (48 = 4.8).
type Product struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       int64          `json:"price"`
	ImageURL    string         `json:"imageUrl"`
	Type        ProductType    `json:"type"`
	CategoryID  int64          `json:"categoryId"`
	Rating      int            `json:"rating"`
	Sales       int            `json:"sales"`
	Featured    bool           `json:"featured"`
	Popular     bool           `json:"popular"`
	Available   bool           `json:"available"`
	Details     map[string]any `json:"details,omitempty"`
}

// Course is the satellite record for products of type "course".
// Duration is in minutes.
type Course struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"productId"`
	Modules   int   `json:"modules"`
	Duration  int   `json:"duration"`
}

// ProductWithCourse joins a course-type product with its satellite record.
// Course is nil for non-course products.
type ProductWithCourse struct {
	Product
	Course *Course `json:"course,omitempty"`
}

// ProductWithCategory joins a product with its resolved category.
type ProductWithCategory struct {
	Product
	Category Category `json:"category"`
}

// SavedProduct is a wishlist join record, unique per (userId, productId).
type SavedProduct struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"userId"`
	ProductID int64 `json:"productId"`
}

// SavedProductWithProduct joins a saved record with its resolved product.
type SavedProductWithProduct struct {
	SavedProduct
	Product Product `json:"product"`
}
