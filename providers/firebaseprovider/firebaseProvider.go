package firebaseprovider

import (
	"assetflow/providers"
	"context"
	"os"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

type firebaseService struct {
	client *firebaseauth.Client
}

func NewFirebaseProvider(serviceAccountJSON []byte) (providers.FirebaseProvider, error) {
	opt := option.WithCredentialsJSON(serviceAccountJSON)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		return nil, err
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		return nil, err
	}

	return &firebaseService{client: authClient}, nil
}

// NewFirebaseProviderFromFile returns nil, nil when path is empty so federated login stays disabled.
func NewFirebaseProviderFromFile(path string) (providers.FirebaseProvider, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read firebase credentials")
	}
	return NewFirebaseProvider(raw)
}

func (f *firebaseService) VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error) {
	return f.client.VerifyIDToken(ctx, idToken)
}
