package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
)

var ErrEmptyContractAddress = errors.New("contract address is empty")

// LoadContractAddress resolves the configured contract address.
func LoadContractAddress(conf Contract) (string, error) {
	if conf.Address.Source == "" {
		return DefaultContractAddress, nil
	}

	value, err := commoncfg.LoadValueFromSourceRef(conf.Address)
	if err != nil {
		return "", fmt.Errorf("loading contract address: %w", err)
	}

	address := strings.TrimSpace(string(value))
	if address == "" {
		return "", ErrEmptyContractAddress
	}
	return address, nil
}
