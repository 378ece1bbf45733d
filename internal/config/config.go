package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/mwhitfield/gradewatch/internal/grades"
	"github.com/mwhitfield/gradewatch/internal/terms"
	"github.com/mwhitfield/gradewatch/pkg/conf"
)

type Config struct {
	Canvas struct {
		Domain string
		Token  string
	}

	Storage struct {
		AccountID   string
		APIToken    string
		NamespaceID string
	}

	Grading struct {
		Term      string
		NameSort  bool
		ScalePath string
	}

	Display struct {
		NameAllResults bool
	}

	Debug bool
}

func ParseConfig() (*Config, error) {
	config := &Config{}
	err := conf.ParseConfig(config,
		conf.EnvPrefix("GRADEWATCH"),
		conf.Default("Grading.Term", "Term 2"),
		conf.Default("Display.NameAllResults", true),
	)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to parse config")
	}
	return config, nil
}

// Validate checks that every credential needed for a run is present.
// It runs before any network call.
func (c *Config) Validate() error {
	if c.Canvas.Domain == "" {
		return errors.New("GRADEWATCH_CANVAS_DOMAIN is not set")
	}
	if c.Canvas.Token == "" {
		return errors.New("GRADEWATCH_CANVAS_TOKEN is not set")
	}
	if c.Storage.AccountID == "" || c.Storage.APIToken == "" || c.Storage.NamespaceID == "" {
		return errors.New("Storage credentials are not set")
	}
	return nil
}

func (c *Config) FallbackPolicy() terms.FallbackPolicy {
	if c.Grading.NameSort {
		return terms.FallbackNameSort
	}
	return terms.FallbackEndDate
}

// LoadScale reads the grade scale from the configured YAML file, or falls
// back to the built-in scale when no file is configured.
func (c *Config) LoadScale() (grades.Scale, error) {
	if c.Grading.ScalePath == "" {
		return grades.DefaultScale(), nil
	}

	body, err := ioutil.ReadFile(c.Grading.ScalePath)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read scale file")
	}

	scale := grades.Scale{}
	if err := yaml.Unmarshal(body, &scale); err != nil {
		return nil, errors.Wrap(err, "Failed to unmarshal scale")
	}
	if len(scale) == 0 {
		return nil, errors.Errorf("Scale file %s defines no tiers", c.Grading.ScalePath)
	}

	return scale, nil
}
