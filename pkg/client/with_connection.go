package client

import (
	"github.com/pkg/errors"
)

func WithSubmitClient(apiConnectionDetails *ApiConnectionDetails, action func(*RestSubmitClient) error) error {
	if apiConnectionDetails == nil || apiConnectionDetails.ArmadaUrl == "" {
		return errors.New("no Armada url configured")
	}
	return action(NewRestSubmitClient(apiConnectionDetails))
}
