package validation

// ReviewRequest is the product review payload.
type ReviewRequest struct {
	ProductID uint   `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func ValidateReviewCreate(req *ReviewRequest) []FieldError {
	return Run(
		PositiveIDValue("product_id", req.ProductID),
		IntBetween("rating", req.Rating, 1, 5),
		MaxLen("comment", req.Comment, 1000),
	)
}
