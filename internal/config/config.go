package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

const (
	SourceLocal = "local"
	SourceS3    = "s3"

	CommunityFiles    = "files"
	CommunityMemgraph = "memgraph"
)

type ServerConfig struct {
	Port  string `toml:"port"`
	Debug bool   `toml:"debug"`
}

// DataConfig names the artifacts produced by the offline pipeline.
type DataConfig struct {
	Source          string `toml:"source"`
	Dir             string `toml:"dir"`
	AssetsDir       string `toml:"assets_dir"`
	CommunitySource string `toml:"community_source"`
	CommunityPrefix string `toml:"community_prefix"`
	MostActive      string `toml:"most_active"`
	MostMentioned   string `toml:"most_mentioned"`
	KeywordCounts   string `toml:"keyword_counts"`
	KeywordEdges    string `toml:"keyword_edges"`
}

type S3Config struct {
	Region    string `toml:"region"`
	Endpoint  string `toml:"endpoint"`
	Bucket    string `toml:"bucket"`
	Prefix    string `toml:"prefix"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ChartsConfig struct {
	PercentileLow     float64 `toml:"percentile_low"`
	PercentileHigh    float64 `toml:"percentile_high"`
	PercentileSamples int     `toml:"percentile_samples"`
	PercentileSkip    int     `toml:"percentile_skip"`
	LayoutSeed        uint64  `toml:"layout_seed"`
	LayoutUpdates     int     `toml:"layout_updates"`
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	S3       S3Config       `toml:"s3"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	Charts   ChartsConfig   `toml:"charts"`
}

// Default mirrors the file names and constants the analysis pipeline ships with.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Data: DataConfig{
			Source:          SourceLocal,
			Dir:             "data",
			AssetsDir:       "assets",
			CommunitySource: CommunityFiles,
			CommunityPrefix: "community_",
			MostActive:      "most_actimel.csv",
			MostMentioned:   "most_mentos.csv",
			KeywordCounts:   "barplottolo.csv",
			KeywordEdges:    "accademia_della_kruskal.json",
		},
		Memgraph: MemgraphConfig{URI: "bolt://localhost:7687"},
		Charts: ChartsConfig{
			PercentileLow:     80,
			PercentileHigh:    100,
			PercentileSamples: 500,
			PercentileSkip:    450,
			LayoutSeed:        42,
			LayoutUpdates:     50,
		},
	}
}

// Load reads a TOML file on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when the file does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// ApplyEnv overrides file settings with environment variables when present.
func (c *Config) ApplyEnv() {
	setString(&c.Server.Port, "PORT")
	if v, ok := os.LookupEnv("DEBUG"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Server.Debug = b
		}
	}

	setString(&c.Data.Source, "DATA_SOURCE")
	setString(&c.Data.Dir, "DATA_DIR")
	setString(&c.Data.AssetsDir, "ASSETS_DIR")
	setString(&c.Data.CommunitySource, "COMMUNITY_SOURCE")

	setString(&c.Memgraph.URI, "MEMGRAPH_URI")
	setString(&c.Memgraph.User, "MEMGRAPH_USER")
	setString(&c.Memgraph.Password, "MEMGRAPH_PASSWORD")

	setString(&c.S3.Region, "AWS_REGION")
	setString(&c.S3.Endpoint, "AWS_ENDPOINT")
	setString(&c.S3.Bucket, "AWS_BUCKET")
	setString(&c.S3.AccessKey, "AWS_ACCESS_KEY")
	setString(&c.S3.SecretKey, "AWS_SECRET_KEY")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) Validate() error {
	switch c.Data.Source {
	case SourceLocal:
		if c.Data.Dir == "" {
			return errors.New("data.dir is required for the local source")
		}
	case SourceS3:
		if c.S3.Bucket == "" {
			return errors.New("s3.bucket is required for the s3 source")
		}
	default:
		return fmt.Errorf("unsupported data source: %q", c.Data.Source)
	}

	switch c.Data.CommunitySource {
	case CommunityFiles:
	case CommunityMemgraph:
		if c.Memgraph.URI == "" {
			return errors.New("memgraph.uri is required for the memgraph community source")
		}
	default:
		return fmt.Errorf("unsupported community source: %q", c.Data.CommunitySource)
	}

	ch := c.Charts
	if ch.PercentileLow < 0 || ch.PercentileHigh > 100 || ch.PercentileLow >= ch.PercentileHigh {
		return fmt.Errorf("invalid percentile range [%g, %g]", ch.PercentileLow, ch.PercentileHigh)
	}
	if ch.PercentileSamples < 2 || ch.PercentileSkip < 0 || ch.PercentileSkip >= ch.PercentileSamples {
		return fmt.Errorf("invalid percentile sampling: %d samples, skip %d", ch.PercentileSamples, ch.PercentileSkip)
	}
	if ch.LayoutUpdates <= 0 {
		return fmt.Errorf("charts.layout_updates must be positive, got %d", ch.LayoutUpdates)
	}

	return nil
}
