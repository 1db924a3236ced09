// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package pxweb

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/kosovotools/kasfetch/internal/info"
)

// defaultAPIBases lists the known ASKdata endpoints; the instance answers on
// both depending on how it is deployed.
var defaultAPIBases = []string{
	"https://askdata.rks-gov.net/PXWeb/api/v1",
	"https://askdata.rks-gov.net/api/v1",
}

// config holds all the configuration needed to connect to the PxWeb API.
type config struct {
	APIBases  []string      `env:"KAS_API_BASES" envSeparator:","`
	UserAgent string        `env:"KAS_USER_AGENT"`
	Timeout   time.Duration `env:"KAS_HTTP_TIMEOUT" envDefault:"60s"`
}

// loadConfigFromEnv reads the client configuration from the environment and
// fills in the defaults for unset values.
func loadConfigFromEnv() (*config, error) {
	config, err := env.ParseAs[config]()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfiguration, err.Error())
	}

	if len(config.APIBases) == 0 {
		config.APIBases = defaultAPIBases
	}
	if config.UserAgent == "" {
		config.UserAgent = info.AppName + "/" + info.Version
	}

	return &config, config.validate()
}

func (c config) validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: KAS_HTTP_TIMEOUT must be positive", ErrConfiguration)
	}

	return nil
}
