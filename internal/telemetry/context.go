package telemetry

import "context"

type interactionIDKey struct{}

// WithInteractionID attaches the platform interaction id to ctx so events
// recorded further down can be correlated with the interaction.
func WithInteractionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, interactionIDKey{}, id)
}

// InteractionIDFromContext returns the interaction id carried by ctx.
// An empty id counts as absent.
func InteractionIDFromContext(ctx context.Context) (string, bool) {
	id, _ := ctx.Value(interactionIDKey{}).(string)
	return id, id != ""
}
