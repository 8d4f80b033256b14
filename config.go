package fastping

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultInterval = time.Second
	DefaultPort     = 80
)

// FileConfig mirrors the YAML config file. Durations use Go syntax ("2s").
type FileConfig struct {
	Protocol   string        `yaml:"protocol"`
	Target     string        `yaml:"target"`
	Port       uint16        `yaml:"port"`
	Format     string        `yaml:"format"`
	Timeout    time.Duration `yaml:"timeout"`
	Interval   time.Duration `yaml:"interval"`
	Count      int           `yaml:"count"`
	StrictICMP bool          `yaml:"strict_icmp"`
}

func DefaultFileConfig() FileConfig {
	return FileConfig{
		Port:     DefaultPort,
		Format:   string(FormatText),
		Timeout:  DefaultTimeout,
		Interval: DefaultInterval,
	}
}

// LoadConfig reads path on top of DefaultFileConfig.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := DefaultFileConfig()
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config (%v)", path)
	}
	return &cfg, nil
}

// Request validates the protocol and builds the probe request. The target
// itself is validated by the engine.
func (c *FileConfig) Request() (ProbeRequest, error) {
	proto, err := ParseProtocol(c.Protocol)
	if err != nil {
		return ProbeRequest{}, err
	}
	if c.Target == "" {
		return ProbeRequest{}, errors.Wrap(ErrAddressParse, "target is required")
	}
	req := ProbeRequest{
		Protocol: proto,
		Target:   c.Target,
		Timeout:  c.Timeout,
	}
	if proto.UsesPort() {
		req.Port = c.Port
	}
	return req, nil
}

func (c *FileConfig) Watch() WatchConfig {
	return WatchConfig{
		Interval: c.Interval,
		Count:    c.Count,
	}
}
