// Package collector scrapes monthly production records from state regulator
// websites and turns them into well records with their gap categories.
package collector

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// URL parameter tokens. Each entry of StateConfig.URLParams names where the
// corresponding template argument comes from: a component of the API number,
// or a collector-specific extra passed with the request.
const (
	ParamAPICounty   = "api_county"
	ParamAPISequence = "api_seq"
	extraParamPrefix = "extra:"
)

// ErrBadConfig indicates a state configuration that cannot be used.
var ErrBadConfig = errors.New("invalid state configuration")

// StateConfig describes how one state regulator publishes monthly production
// records: the URL scheme for a well's records and the table columns to read.
type StateConfig struct {
	// Name is the state's name, e.g. "Colorado".
	Name string `yaml:"name"`
	// StateCode is the two-digit API state code, e.g. "05".
	StateCode string `yaml:"state_code"`
	// ProdURLTemplate is a fmt template for the production records URL,
	// with one %s verb per entry in URLParams.
	ProdURLTemplate string `yaml:"prod_url_template"`
	// URLParams names the source of each template argument, in order.
	// Valid entries are "api_county", "api_seq", and "extra:<key>".
	URLParams []string `yaml:"url_params"`
	// DateCol is the header of the month column.
	DateCol string `yaml:"date_col"`
	// OilProdCol is the header of the monthly oil production column.
	OilProdCol string `yaml:"oil_prod_col"`
	// GasProdCol is the header of the monthly gas production column.
	GasProdCol string `yaml:"gas_prod_col"`
	// DaysProducedCol is the header of the days-produced column, or empty
	// when the state does not report it.
	DaysProducedCol string `yaml:"days_produced_col"`
	// StatusCol is the header of the well status column, or empty when the
	// state does not report one.
	StatusCol string `yaml:"status_col"`
	// ShutinCodes lists the status codes treated as shut-in.
	ShutinCodes []string `yaml:"shutin_codes"`
	// OilProdMin is the reported oil (BBLs) a month must exceed to count
	// as producing.
	OilProdMin float64 `yaml:"oil_prod_min"`
	// GasProdMin is the reported gas (MCF) a month must exceed to count
	// as producing.
	GasProdMin float64 `yaml:"gas_prod_min"`
	// RequiresAuth marks states whose records sit behind a login. Such
	// configs are excluded from the defaults until credentials are set.
	RequiresAuth bool `yaml:"requires_auth"`
}

// TracksShutin reports whether this state's records can distinguish shut-in
// months, which is what the shut-in-counts gap category requires.
func (c StateConfig) TracksShutin() bool {
	return c.StatusCol != "" && len(c.ShutinCodes) > 0
}

// Validate checks the config is complete enough to scrape with.
func (c StateConfig) Validate() error {
	if c.StateCode == "" {
		return fmt.Errorf("%w: missing state_code", ErrBadConfig)
	}
	if c.ProdURLTemplate == "" {
		return fmt.Errorf("%w: %s has no prod_url_template", ErrBadConfig, c.StateCode)
	}
	if c.DateCol == "" || c.OilProdCol == "" || c.GasProdCol == "" {
		return fmt.Errorf("%w: %s must name date, oil and gas columns", ErrBadConfig, c.StateCode)
	}
	for _, p := range c.URLParams {
		switch {
		case p == ParamAPICounty, p == ParamAPISequence:
		case strings.HasPrefix(p, extraParamPrefix) && len(p) > len(extraParamPrefix):
		default:
			return fmt.Errorf("%w: %s has unknown url param %q", ErrBadConfig, c.StateCode, p)
		}
	}
	return nil
}

// ColoradoConfig returns the configuration for the Colorado ECMC, which
// publishes production records to the public without authentication.
func ColoradoConfig() StateConfig {
	return StateConfig{
		Name:            "Colorado",
		StateCode:       "05",
		ProdURLTemplate: "https://ecmc.state.co.us/cogisdb/Facility/Production?api_county_code=%s&api_seq_num=%s",
		URLParams:       []string{ParamAPICounty, ParamAPISequence},
		DateCol:         "First of Month",
		OilProdCol:      "Oil Produced",
		GasProdCol:      "Gas Produced",
		DaysProducedCol: "Days Produced",
		StatusCol:       "Well Status",
		ShutinCodes:     []string{"SI"},
	}
}

// NorthDakotaConfig returns the configuration for the North Dakota DMR.
// The DMR identifies wells by its own NDIC file number, passed as the
// "ndic_num" extra, and requires a paid subscription.
func NorthDakotaConfig() StateConfig {
	return StateConfig{
		Name:            "North Dakota",
		StateCode:       "33",
		ProdURLTemplate: "https://www.dmr.nd.gov/oilgas/feeservices/getwellprod.asp?filenumber=%s",
		URLParams:       []string{extraParamPrefix + "ndic_num"},
		DateCol:         "Date",
		OilProdCol:      "BBLS Oil",
		GasProdCol:      "MCF Prod",
		DaysProducedCol: "Days",
		RequiresAuth:    true,
	}
}

// DefaultConfigs returns the built-in state configurations that work without
// credentials, keyed by API state code.
func DefaultConfigs() map[string]StateConfig {
	configs := map[string]StateConfig{}
	for _, c := range []StateConfig{ColoradoConfig(), NorthDakotaConfig()} {
		if c.RequiresAuth {
			continue
		}
		configs[c.StateCode] = c
	}
	return configs
}

type configFile struct {
	States []StateConfig `yaml:"states"`
}

// LoadConfigFile overlays state configurations from a YAML file onto the
// built-in defaults. File entries replace defaults with the same state code.
func LoadConfigFile(path string) (map[string]StateConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read state config file: %w", err)
	}

	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse state config file %s: %w", path, err)
	}

	configs := DefaultConfigs()
	for _, c := range file.States {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		configs[c.StateCode] = c
	}
	return configs, nil
}
