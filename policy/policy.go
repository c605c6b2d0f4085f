// Package policy loads throttle attachments from YAML files and resolves
// them against a limiter registry.
package policy

import (
	"fmt"
	"os"
)

import (
	"gopkg.in/yaml.v3"
)

import (
	throttle "github.com/nanjiek/pixiu-throttle"
)

// Policy is one throttle attachment declared in a policy file.
type Policy struct {
	Name       string `yaml:"name"`       // attachment name, for logs and lookups
	Limiter    string `yaml:"limiter"`    // registry name of the limiter, mandatory
	KeyBy      string `yaml:"keyBy"`      // built-in key strategy, default host
	Mode       string `yaml:"mode"`       // block | error, default block
	MaxRetries int    `yaml:"maxRetries"` // 0 selects the default, -1 disables
}

// File is the top-level policy file layout.
type File struct {
	Policies []Policy `yaml:"policies"`
}

// Load reads a policy file. Environment references in the file are expanded
// before parsing.
func Load(path string) ([]Policy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	expanded := os.ExpandEnv(string(b))
	var f File
	if err := yaml.Unmarshal([]byte(expanded), &f); err != nil {
		return nil, fmt.Errorf("policy: parse %s: %w", path, err)
	}
	return f.Policies, nil
}

// Config resolves the policy into a validated throttle.Config against reg.
// The limiter is referenced by handle, so it may be registered after this
// call as long as it exists before the first request.
func (p Policy) Config(reg *throttle.Registry) (throttle.Config, error) {
	if reg == nil {
		return throttle.Config{}, fmt.Errorf("policy %q: nil registry", p.Name)
	}
	if p.Limiter == "" {
		return throttle.Config{}, fmt.Errorf("policy %q: limiter name required", p.Name)
	}
	cfg := throttle.Config{
		Limiter:    reg.Named(p.Limiter),
		Mode:       throttle.Mode(p.Mode),
		MaxRetries: p.MaxRetries,
	}
	if p.KeyBy != "" {
		cfg.KeyBy = p.KeyBy
	}
	return cfg, nil
}

// Throttler builds the attachment in one step: resolve then validate.
func (p Policy) Throttler(reg *throttle.Registry) (*throttle.Throttler, error) {
	cfg, err := p.Config(reg)
	if err != nil {
		return nil, err
	}
	return throttle.New(cfg)
}
