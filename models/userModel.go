package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

type User struct {
	ID                 primitive.ObjectID `bson:"_id" json:"-"`
	User_id            string             `bson:"user_id" json:"user_id"`
	Name               *string            `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Password           *string            `bson:"password" json:"password,omitempty" validate:"required,min=6"`
	Email              *string            `bson:"email" json:"email" validate:"email,required"`
	Phone              *string            `bson:"phone" json:"phone" validate:"required"`
	Address            *string            `bson:"address,omitempty" json:"address,omitempty"`
	User_role          *string            `bson:"user_role" json:"user_role" validate:"required,eq=CUSTOMER|eq=ADMIN"`
	Notification_token *string            `bson:"notification_token,omitempty" json:"notification_token,omitempty"`
	Token              *string            `bson:"token,omitempty" json:"token,omitempty"`
	Refresh_Token      *string            `bson:"refresh_token,omitempty" json:"refresh_token,omitempty"`
	Created_at         time.Time          `bson:"created_at" json:"created_at"`
	Updated_at         time.Time          `bson:"updated_at" json:"updated_at"`
}
