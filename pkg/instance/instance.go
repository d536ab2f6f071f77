package instance

import "github.com/angelmondragon/museum-cart/pkg/env"

// ID identifies the running process in logs: the first non-empty of
// MUSEUMCART_INSTANCE_ID, DYNO and HOSTNAME, or "local".
func ID() string {
	for _, key := range []string{"MUSEUMCART_INSTANCE_ID", "DYNO", "HOSTNAME"} {
		if id := env.Get(key, ""); id != "" {
			return id
		}
	}
	return "local"
}
