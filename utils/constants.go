package utils

// Application constants
const (
	// Application name
	AppName = "FoodNest"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// Flat shipping fee in VND
	DefaultShippingFee int64 = 15000

	// Orders at or above this subtotal ship free
	FreeShippingThreshold int64 = 300000

	// COD is not offered above this amount
	CODLimit int64 = 1000000

	// Points earned per VND spent on a completed order (1 point / 1,000 VND)
	PointsEarnDivisor int64 = 1000

	// Minutes a pending order stays cancellable by its owner
	UserCancelWindowMinutes = 30
)
