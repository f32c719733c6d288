package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"shoplist-api/pkg/featureflags"
)

// requireFeature rejects the request when flag is switched off
func requireFeature(ctx context.Context, flag featureflags.FeatureFlag) error {
	if !featureflags.IsEnabled(ctx, flag) {
		return huma.Error503ServiceUnavailable(msgFeatureDisabled)
	}
	return nil
}
