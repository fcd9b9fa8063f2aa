package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	FirstName string             `bson:"first_name,omitempty" json:"firstName"`
	LastName  string             `bson:"last_name,omitempty" json:"lastName"`
	Avatar    string             `bson:"avatar,omitempty" json:"avatar"`
	Role      string             `bson:"role" json:"role"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
