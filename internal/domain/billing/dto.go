// internal/domain/billing/dto.go
package billing

type SelectPlanRequest struct {
	PlanID     int    `json:"plan_id" binding:"required"`
	Months     int    `json:"months" binding:"required,min=1,max=12"`
	CouponCode string `json:"coupon_code"`
}

type SubmitPaymentRequest struct {
	PlanID               int    `json:"plan_id" binding:"required"`
	Months               int    `json:"months" binding:"required,min=1,max=12"`
	CouponCode           string `json:"coupon_code"`
	TransactionReference string `json:"transaction_reference" binding:"required"`
}

type ApprovePaymentRequest struct {
	// Admins may override the purchased duration at approval time.
	Months int `json:"months" binding:"required,min=1,max=12"`
}

type AddPlanRequest struct {
	Label     string  `json:"label" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	PondQuota int     `json:"pond_quota" binding:"required,gt=0"`
}

type UpdatePlanRequest struct {
	Label     *string  `json:"label"`
	Price     *float64 `json:"price"`
	PondQuota *int     `json:"pond_quota"`
}

type AddCouponRequest struct {
	Code            string  `json:"code" binding:"required"`
	DiscountPercent float64 `json:"discount_percent" binding:"required,gt=0,lte=100"`
}
