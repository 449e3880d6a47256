package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthorTitles is the set of honorifics accepted at registration.
var AuthorTitles = []string{"Mr", "Mrs", "Miss"}

// Author represents a registered author. The password field holds a bcrypt
// hash and is never serialized to JSON.
type Author struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Fname     string             `bson:"fname" json:"fname"`
	Lname     string             `bson:"lname" json:"lname"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsValidTitle reports whether t is one of the accepted honorifics.
func IsValidTitle(t string) bool {
	for _, v := range AuthorTitles {
		if t == v {
			return true
		}
	}
	return false
}
