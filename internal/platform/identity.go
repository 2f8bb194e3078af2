package platform

import (
	"context"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/appengine"
)

// AppIdentity reports the hosted application's identifier.
// The variant is chosen once at startup by NewAppIdentity.
type AppIdentity interface {
	AppID(ctx context.Context) (string, bool)
}

// Compile-time interface checks.
var (
	_ AppIdentity = (*appEngineIdentity)(nil)
	_ AppIdentity = unavailableIdentity{}
)

// appEngineIdentity is backed by the App Engine identity binding.
type appEngineIdentity struct {
	appID  func(ctx context.Context) string
	logger log.Logger
}

// AppID returns exactly what the binding reports. An empty answer is absent.
// The App Engine library panics when it cannot find the project (GAE_ENV set
// without GAE_APPLICATION or GOOGLE_CLOUD_PROJECT and no metadata server);
// that is reported as absent too.
func (a *appEngineIdentity) AppID(ctx context.Context) (id string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger := a.logger
			if logger == nil {
				logger = log.NewNopLogger()
			}
			level.Debug(logger).Log("msg", "App Engine lookup folded to absent", "panic", fmt.Sprint(r))
			id, ok = "", false
		}
	}()

	id = a.appID(ctx)
	if id == "" {
		return "", false
	}
	return id, true
}

// unavailableIdentity is used outside App Engine.
type unavailableIdentity struct{}

func (unavailableIdentity) AppID(context.Context) (string, bool) { return "", false }

// NewAppIdentity returns the App Engine backed identity when onAppEngine is
// true and the unavailable one otherwise. A nil logger discards output.
func NewAppIdentity(onAppEngine bool, logger log.Logger) AppIdentity {
	if !onAppEngine {
		return unavailableIdentity{}
	}
	return &appEngineIdentity{appID: appengine.AppID, logger: logger}
}

// NewAppIdentityFunc wraps a custom binding. A nil fn yields the unavailable identity.
func NewAppIdentityFunc(fn func(ctx context.Context) string) AppIdentity {
	if fn == nil {
		return unavailableIdentity{}
	}
	return &appEngineIdentity{appID: fn}
}

// AppEngineID returns the App Engine application ID if it can be inferred.
// A nil identity is treated as unavailable.
func AppEngineID(ctx context.Context, identity AppIdentity) (string, bool) {
	if identity == nil {
		return "", false
	}
	return identity.AppID(ctx)
}
