package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Defaults applied to new accounts when the client does not supply a value.
const (
	DefaultPhotoURL = "https://i.ibb.co/4pDNDk1/avatar.png"
	DefaultPhone    = "+92"
	DefaultBio      = "bio"
)

// Photo is an image hosted by the blob-store provider. PublicID is the
// provider-side asset identifier, empty for the placeholder avatar.
type Photo struct {
	URL      string `bson:"url"       json:"url"`
	PublicID string `bson:"public_id" json:"publicId"`
}

// User represents a registered account. PasswordHash is only ever a salted
// one-way hash and is never serialized to clients.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string        `bson:"name"          json:"name"`
	Email        string        `bson:"email"         json:"email"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	Photo        Photo         `bson:"photo"         json:"photo"`
	Phone        string        `bson:"phone"         json:"phone"`
	Bio          string        `bson:"bio"           json:"bio"`
	CreatedAt    time.Time     `bson:"created_at"    json:"-"`
	UpdatedAt    time.Time     `bson:"updated_at"    json:"-"`
}
