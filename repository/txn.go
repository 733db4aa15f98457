package repository

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrTxnUnsupported signals that the deployment cannot run multi-document
// transactions (standalone mongod). Callers fall back to sequential writes.
var ErrTxnUnsupported = errors.New("transactions not supported by this deployment")

// MongoTxnRunner runs a function inside a MongoDB session transaction.
type MongoTxnRunner struct {
	client *mongo.Client
}

func NewMongoTxnRunner(client *mongo.Client) *MongoTxnRunner {
	return &MongoTxnRunner{client: client}
}

func (t *MongoTxnRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return ErrTxnUnsupported
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if isTxnUnsupported(err) {
		return ErrTxnUnsupported
	}
	return err
}

// isTxnUnsupported detects the server rejecting transactions outright. A
// standalone mongod hands out sessions, so StartSession succeeds and the
// failure only shows up as an IllegalOperation (code 20) command error on
// the first transactional write.
func isTxnUnsupported(err error) bool {
	if err == nil {
		return false
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 20 ||
			strings.Contains(cmdErr.Message, "Transaction numbers are only allowed")
	}
	return false
}
