// The resolver command is the AppSync direct-invocation Lambda. AppSync
// passes the field coordinates, arguments, and the Cognito identity of the
// caller; the dispatcher does the rest.
package main

import (
	"context"
	"encoding/json"
	"log"

	"betterreads-backend/application/resolver"
	"betterreads-backend/infrastructure/di"
	"betterreads-backend/pkg/auth"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

// resolverEvent is the payload shape produced by the AppSync request
// mapping template.
type resolverEvent struct {
	TypeName  string                         `json:"typeName"`
	FieldName string                         `json:"fieldName"`
	Arguments json.RawMessage                `json:"arguments"`
	Identity  *events.AppSyncCognitoIdentity `json:"identity"`
}

var container *di.Container

func init() {
	var err error
	container, err = di.InitializeContainer(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
}

func handler(ctx context.Context, event resolverEvent) (any, error) {
	if event.Identity != nil && event.Identity.Sub != "" {
		user := &auth.UserContext{Sub: event.Identity.Sub}
		if email, ok := event.Identity.Claims["email"].(string); ok {
			user.Email = email
		}
		ctx = auth.SetUserInContext(ctx, user)
	}

	dispatch := func(ctx context.Context) (any, error) {
		return container.Dispatcher.Dispatch(ctx, resolver.Request{
			TypeName:  event.TypeName,
			FieldName: event.FieldName,
			Arguments: event.Arguments,
		})
	}

	var result any
	var err error
	if container.Tracer != nil {
		err = container.Tracer.TraceFunction(ctx, event.FieldName, func(ctx context.Context) error {
			result, err = dispatch(ctx)
			return err
		})
	} else {
		result, err = dispatch(ctx)
	}
	if err != nil {
		container.Logger.Warn("resolver invocation failed",
			zap.String("typeName", event.TypeName),
			zap.String("fieldName", event.FieldName),
			zap.Error(err),
		)
		return nil, err
	}
	return result, nil
}

func main() {
	lambda.Start(handler)
}
