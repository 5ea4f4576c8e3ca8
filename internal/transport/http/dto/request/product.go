package request

type CreateProductRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}
