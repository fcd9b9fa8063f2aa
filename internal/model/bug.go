package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bug 缺陷工单，status 取值 open / in-progress / resolved
type Bug struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
