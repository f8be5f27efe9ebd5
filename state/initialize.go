package state

import (
	"time"

	"mdimport/styles"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:            time.Now(),
		DefaultStyle:     styles.DefaultStylesheet(),
		DefaultStyleName: "default.css",
	}
}
