package database

import (
	"context"
	"errors"

	"innkeep/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// Error labels the server attaches to retryable transaction failures.
const (
	labelTransientTransaction = "TransientTransactionError"
	labelUnknownCommitResult  = "UnknownTransactionCommitResult"
)

// TxRunner runs fn so that every repository write made with the context it receives
// commits or rolls back together.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MongoTxRunner runs transactions on a MongoDB replica set. Transactions that fail with
// a transient label (a write conflict with a concurrent transaction, a lost primary)
// are run again up to Attempts times.
type MongoTxRunner struct {
	Client   *mongo.Client
	Attempts int
}

func NewMongoTxRunner(client *mongo.Client) *MongoTxRunner {
	return &MongoTxRunner{Client: client, Attempts: 3}
}

// WithTransaction joins the caller's session when ctx already carries one.
func (r *MongoTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	sess, err := r.Client.StartSession()
	if err != nil {
		return utils.NewGatewayError("start mongo session", err)
	}
	defer sess.EndSession(context.Background())

	return retryTransient(r.Attempts, func() error {
		return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
			return runTransaction(sc, fn)
		})
	})
}

func runTransaction(sc mongo.SessionContext, fn func(ctx context.Context) error) error {
	if err := sc.StartTransaction(); err != nil {
		return utils.NewGatewayError("start transaction", err)
	}
	if err := fn(sc); err != nil {
		_ = sc.AbortTransaction(context.Background())
		return err
	}
	var err error
	for i := 0; i < 3; i++ {
		if err = sc.CommitTransaction(sc); err == nil {
			return nil
		}
		if !hasLabel(err, labelUnknownCommitResult) || sc.Err() != nil {
			break
		}
	}
	return utils.NewGatewayError("commit transaction", err)
}

// retryTransient runs run until it succeeds, fails with a non-transient error, or
// attempts are exhausted. Exhaustion is reported as a stale conflict so callers see the
// same error a lost version check produces.
func retryTransient(attempts int, run func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = run(); err == nil || !IsTransient(err) {
			return err
		}
		utils.GetLogger().Debug("Retrying transient transaction failure")
	}
	return &utils.ConflictError{Message: "transaction kept conflicting with concurrent writes: " + err.Error(), Stale: true}
}

// IsTransient reports whether err, or any error it wraps, carries the server's
// TransientTransactionError label.
func IsTransient(err error) bool {
	return hasLabel(err, labelTransientTransaction)
}

func hasLabel(err error, label string) bool {
	var le mongo.LabeledError
	return errors.As(err, &le) && le.HasErrorLabel(label)
}
