package model

type Favorite struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"index:idx_fav_user_product,unique" json:"user_id"`
	ProductID string `gorm:"index:idx_fav_user_product,unique" json:"product_id"`
}
