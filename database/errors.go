package database

import (
	"errors"

	"innkeep/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// Translate maps a driver error onto the application error types. Duplicate keys
// become conflicts described by onDuplicate; everything else is a gateway failure.
func Translate(op string, err error, onDuplicate string) error {
	if err == nil {
		return nil
	}
	if errors.As(err, new(*utils.ConflictError)) || errors.As(err, new(*utils.NotFoundError)) {
		return err
	}
	if mongo.IsDuplicateKeyError(err) {
		return utils.NewConflictError(onDuplicate)
	}
	return utils.NewGatewayError(op, err)
}
