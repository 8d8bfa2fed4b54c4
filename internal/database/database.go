package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect dials MongoDB and pings it. Retries are disabled so a failed write
// surfaces to the caller once; timeout bounds every operation on the client.
func Connect(ctx context.Context, mongoURI, dbName string, timeout time.Duration, log *logrus.Logger) (*mongo.Client, *mongo.Database, error) {
	clientOptions := options.Client().
		ApplyURI(mongoURI).
		SetServerSelectionTimeout(timeout).
		SetTimeout(timeout).
		SetRetryWrites(false).
		SetRetryReads(false)

	log.Info("Attempting to connect to MongoDB...")
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, timeout)
	defer pingCancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongodb: %w", err)
	}

	log.WithField("database", dbName).Info("✅ Connected to MongoDB")
	return client, client.Database(dbName), nil
}

func Disconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

// MaskURI hides the password in a connection string for logging.
func MaskURI(uri string) string {
	scheme, rest := "", uri
	if idx := strings.Index(rest, "://"); idx != -1 {
		scheme, rest = rest[:idx+3], rest[idx+3:]
	}
	host := rest
	if slash := strings.Index(host, "/"); slash != -1 {
		host = host[:slash]
	}
	at := strings.LastIndex(host, "@")
	if at == -1 {
		return uri
	}
	creds := rest[:at]
	if colon := strings.Index(creds, ":"); colon != -1 {
		creds = creds[:colon] + ":***"
	}
	return scheme + creds + rest[at:]
}
