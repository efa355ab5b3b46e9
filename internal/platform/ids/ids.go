// Package ids genera identificadores opacos de 24 caracteres (ObjectID hex),
// el mismo formato que usa la base documental.
package ids

import "go.mongodb.org/mongo-driver/bson/primitive"

const Length = 24

func New() string {
	return primitive.NewObjectID().Hex()
}
