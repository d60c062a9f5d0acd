package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ProductImage describes the uploaded product image as returned by the blob
// store. A zero value means no image was uploaded.
type ProductImage struct {
	FileName string `bson:"file_name" json:"fileName"`
	FilePath string `bson:"file_path" json:"filePath"`
	FileType string `bson:"file_type" json:"fileType"`
	FileSize string `bson:"file_size" json:"fileSize"`
	PublicID string `bson:"public_id" json:"publicId"`
}

// Product is an inventory item owned by exactly one user. Quantity and Price
// are carried as strings on the wire and stored as-is.
type Product struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      bson.ObjectID `bson:"user_id"       json:"userId"`
	Name        string        `bson:"name"          json:"name"`
	SKU         string        `bson:"sku"           json:"sku"`
	Category    string        `bson:"category"      json:"category"`
	Quantity    string        `bson:"quantity"      json:"quantity"`
	Price       string        `bson:"price"         json:"price"`
	Description string        `bson:"description"   json:"description"`
	Image       ProductImage  `bson:"image"         json:"image"`
	CreatedAt   time.Time     `bson:"created_at"    json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updated_at"    json:"updatedAt"`
}
