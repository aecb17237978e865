package m_product

// Field name constants for the products table.
const (
	TableName = "products"

	ProductID           = "product_id"
	Uom                 = "uom"
	Price               = "price"
	SupportedIncentives = "supported_incentives"
	UpdatedAt           = "updated_at"
)
