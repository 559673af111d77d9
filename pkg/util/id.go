package util

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// IDLength is the length of the hex form of an identifier
// IDLength 标识的十六进制长度
const IDLength = 24

// IsValidID reports whether s is a 24 character hexadecimal ObjectID
// IsValidID 判断 s 是否为 24 位十六进制 ObjectID
func IsValidID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	_, err := bson.ObjectIDFromHex(s)
	return err == nil
}

// NewID generates a new identifier in ObjectID hex form
// NewID 生成新的 ObjectID 十六进制标识
func NewID() string {
	return bson.NewObjectID().Hex()
}
