package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// weightsFile is the on-disk shape of a scoring override file. All fields
// are pointers so an absent key leaves the configured value alone.
type weightsFile struct {
	Scoring struct {
		ForumHighPoints       *int `yaml:"forum_high_points"`
		ForumMediumPoints     *int `yaml:"forum_medium_points"`
		ForumLowPoints        *int `yaml:"forum_low_points"`
		FundingPoints         *int `yaml:"funding_points"`
		NewsFundingPoints     *int `yaml:"news_funding_points"`
		OptimalSizePoints     *int `yaml:"optimal_size_points"`
		PrimaryMarketPoints   *int `yaml:"primary_market_points"`
		SecondaryMarketPoints *int `yaml:"secondary_market_points"`
		IndustryPoints        *int `yaml:"industry_points"`
		VerifiedContactPoints *int `yaml:"verified_contact_points"`
		ContactPoints         *int `yaml:"contact_points"`

		MinEmployees *int `yaml:"min_employees"`
		MaxEmployees *int `yaml:"max_employees"`

		ContactConfidenceThreshold *int `yaml:"contact_confidence_threshold"`

		PrimaryMarkets      []string `yaml:"primary_markets"`
		SecondaryMarkets    []string `yaml:"secondary_markets"`
		HighValueIndustries []string `yaml:"high_value_industries"`
	} `yaml:"scoring"`
}

// ApplyWeightsFile overlays the scoring weights from a YAML file onto cfg.
// Keys missing from the file keep their current values.
func ApplyWeightsFile(cfg *ScoringConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "config: read weights file %s", path)
	}

	var wf weightsFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return eris.Wrapf(err, "config: parse weights file %s", path)
	}

	s := wf.Scoring
	overlayInt(&cfg.ForumHighPoints, s.ForumHighPoints)
	overlayInt(&cfg.ForumMediumPoints, s.ForumMediumPoints)
	overlayInt(&cfg.ForumLowPoints, s.ForumLowPoints)
	overlayInt(&cfg.FundingPoints, s.FundingPoints)
	overlayInt(&cfg.NewsFundingPoints, s.NewsFundingPoints)
	overlayInt(&cfg.OptimalSizePoints, s.OptimalSizePoints)
	overlayInt(&cfg.PrimaryMarketPoints, s.PrimaryMarketPoints)
	overlayInt(&cfg.SecondaryMarketPoints, s.SecondaryMarketPoints)
	overlayInt(&cfg.IndustryPoints, s.IndustryPoints)
	overlayInt(&cfg.VerifiedContactPoints, s.VerifiedContactPoints)
	overlayInt(&cfg.ContactPoints, s.ContactPoints)
	overlayInt(&cfg.MinEmployees, s.MinEmployees)
	overlayInt(&cfg.MaxEmployees, s.MaxEmployees)
	overlayInt(&cfg.ContactConfidenceThreshold, s.ContactConfidenceThreshold)

	if len(s.PrimaryMarkets) > 0 {
		cfg.PrimaryMarkets = s.PrimaryMarkets
	}
	if len(s.SecondaryMarkets) > 0 {
		cfg.SecondaryMarkets = s.SecondaryMarkets
	}
	if len(s.HighValueIndustries) > 0 {
		cfg.HighValueIndustries = s.HighValueIndustries
	}

	return nil
}

func overlayInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
