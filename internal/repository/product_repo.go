package repository

import (
	"gorm.io/gorm"

	"accountshop/internal/models"
)

// ProductRepository handles product and account-inventory operations.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindActive returns all active products.
func (r *ProductRepository) FindActive() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("is_active = ?", true).Order("id").Find(&products).Error
	return products, err
}

// FindAll returns every product, inactive ones included.
func (r *ProductRepository) FindAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("id").Find(&products).Error
	return products, err
}

// FindByID returns a product by ID.
func (r *ProductRepository) FindByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Create creates a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update updates product fields.
func (r *ProductRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error
}

// SetActive toggles the active flag.
func (r *ProductRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Update("is_active", active).Error
}

// CountActive counts active products.
func (r *ProductRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// AddAccount inserts one credential into the product's inventory and bumps
// the stock counter in the same transaction.
func (r *ProductRepository) AddAccount(account *models.Account) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).Where("id = ?", account.ProductID).
			Update("stock_count", gorm.Expr("stock_count + 1")).Error
	})
}

// CountAccounts returns (available, sold) inventory counts across all products.
func (r *ProductRepository) CountAccounts() (int64, int64, error) {
	var available, sold int64
	if err := r.db.Model(&models.Account{}).Where("is_sold = ?", false).Count(&available).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&models.Account{}).Where("is_sold = ?", true).Count(&sold).Error; err != nil {
		return 0, 0, err
	}
	return available, sold, nil
}
