package models

// Product maps to the `products` table. Prices are toman.
type Product struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SiteName    string `gorm:"column:site_name;size:300" json:"site_name"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Price       int64  `gorm:"column:price" json:"price"`
	StockCount  int    `gorm:"column:stock_count;default:0" json:"stock_count"`
	IsActive    bool   `gorm:"column:is_active;default:true" json:"is_active"`
}

func (Product) TableName() string {
	return "products"
}

// Account is one sellable credential tied to a product.
// Once marked sold it is never reassigned.
type Account struct {
	ID             uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID      uint   `gorm:"column:product_id;index" json:"product_id"`
	Login          string `gorm:"column:login;size:500" json:"login"`
	Password       string `gorm:"column:password;size:500" json:"password"`
	AdditionalInfo string `gorm:"column:additional_info;type:text" json:"additional_info"`
	IsSold         bool   `gorm:"column:is_sold;default:false;index" json:"is_sold"`
}

func (Account) TableName() string {
	return "accounts"
}
