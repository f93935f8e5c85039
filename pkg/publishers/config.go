package publishers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/samvad-hq/vernacular-news/internal/domain"
	"gopkg.in/yaml.v3"
)

// Supported publisher types.
const (
	TypeSQS    = "sqs"
	TypeSNS    = "sns"
	TypePubSub = "pubsub"
	TypeHTTP   = "http"
)

const defaultHTTPTimeoutSeconds = 5

// File is the layout of a publishers YAML or JSON file.
type File struct {
	Publishers []PublisherConfig `json:"publishers" yaml:"publishers"`
}

// PublisherConfig is one sink entry. Languages restricts the speak events the
// sink receives to those picker codes; an empty list accepts every language.
type PublisherConfig struct {
	ID        string                 `json:"id" yaml:"id"`
	Type      string                 `json:"type" yaml:"type"`
	Enabled   *bool                  `json:"enabled" yaml:"enabled"`
	Languages []string               `json:"languages" yaml:"languages"`
	SQS       *SQSPublisherConfig    `json:"sqs" yaml:"sqs"`
	SNS       *SNSPublisherConfig    `json:"sns" yaml:"sns"`
	PubSub    *PubSubPublisherConfig `json:"pubsub" yaml:"pubsub"`
	HTTP      *HTTPPublisherConfig   `json:"http" yaml:"http"`
}

// AWSCredentials optionally pins static keys; otherwise the default AWS chain applies.
type AWSCredentials struct {
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
	SessionToken    string `json:"session_token" yaml:"session_token"`
}

// SQSPublisherConfig targets an SQS queue.
type SQSPublisherConfig struct {
	QueueURL    string          `json:"uri" yaml:"uri"`
	Region      string          `json:"region" yaml:"region"`
	Endpoint    string          `json:"endpoint" yaml:"endpoint"`
	Credentials *AWSCredentials `json:"credentials" yaml:"credentials"`
}

// SNSPublisherConfig targets an SNS topic.
type SNSPublisherConfig struct {
	TopicARN    string          `json:"topic_arn" yaml:"topic_arn"`
	Region      string          `json:"region" yaml:"region"`
	Endpoint    string          `json:"endpoint" yaml:"endpoint"`
	Credentials *AWSCredentials `json:"credentials" yaml:"credentials"`
}

// PubSubPublisherConfig targets a Pub/Sub topic.
type PubSubPublisherConfig struct {
	ProjectID       string `json:"project_id" yaml:"project_id"`
	Topic           string `json:"topic" yaml:"topic"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
}

// HTTPPublisherConfig targets a speech service over HTTP.
type HTTPPublisherConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Method         string            `json:"method" yaml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// Catalog holds the validated entries of one publishers file in file order.
type Catalog struct {
	entries []PublisherConfig
}

// Load reads and validates a publishers file. Files ending in .json are
// decoded as JSON, anything else as YAML.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("publishers file path is empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read publishers file: %w", err)
	}
	return Parse(raw, filepath.Ext(path))
}

// Parse decodes publishers file content; ext selects the format.
func Parse(data []byte, ext string) (*Catalog, error) {
	var f File
	var err error
	if strings.EqualFold(ext, ".json") {
		err = json.Unmarshal(data, &f)
	} else {
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode publishers file: %w", err)
	}
	if len(f.Publishers) == 0 {
		return nil, errors.New("publishers file contains no publishers entries")
	}

	c := &Catalog{entries: make([]PublisherConfig, 0, len(f.Publishers))}
	seen := make(map[string]bool, len(f.Publishers))
	for i := range f.Publishers {
		cfg := f.Publishers[i]
		cfg.normalize()
		if err := cfg.validate(); err != nil {
			return nil, fmt.Errorf("publishers[%d]: %w", i, err)
		}
		if seen[cfg.ID] {
			return nil, fmt.Errorf("duplicate publisher id %q", cfg.ID)
		}
		seen[cfg.ID] = true
		c.entries = append(c.entries, cfg)
	}
	return c, nil
}

// Entries returns every entry, enabled or not.
func (c *Catalog) Entries() []PublisherConfig {
	if c == nil {
		return nil
	}
	out := make([]PublisherConfig, len(c.entries))
	copy(out, c.entries)
	return out
}

// Enabled returns the entries that are switched on.
func (c *Catalog) Enabled() []PublisherConfig {
	if c == nil {
		return nil
	}
	var out []PublisherConfig
	for _, cfg := range c.entries {
		if cfg.IsEnabled() {
			out = append(out, cfg)
		}
	}
	return out
}

// Lookup finds an entry by id.
func (c *Catalog) Lookup(id string) (PublisherConfig, bool) {
	if c == nil {
		return PublisherConfig{}, false
	}
	id = strings.TrimSpace(id)
	for _, cfg := range c.entries {
		if cfg.ID == id {
			return cfg, true
		}
	}
	return PublisherConfig{}, false
}

// IsEnabled defaults to true when the flag is absent.
func (cfg PublisherConfig) IsEnabled() bool {
	return cfg.Enabled == nil || *cfg.Enabled
}

func (cfg *PublisherConfig) normalize() {
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.Type = strings.ToLower(strings.TrimSpace(cfg.Type))

	langs := cfg.Languages[:0]
	for _, l := range cfg.Languages {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	cfg.Languages = langs

	cfg.SQS.normalize()
	cfg.SNS.normalize()
	cfg.PubSub.normalize()
	cfg.HTTP.normalize()
}

func (cfg *PublisherConfig) validate() error {
	if cfg.ID == "" {
		return errors.New("id is required")
	}

	var err error
	switch cfg.Type {
	case "":
		err = errors.New("type is required")
	case TypeSQS:
		err = cfg.SQS.validate()
	case TypeSNS:
		err = cfg.SNS.validate()
	case TypePubSub:
		err = cfg.PubSub.validate()
	case TypeHTTP:
		err = cfg.HTTP.validate()
	default:
		err = fmt.Errorf("unsupported type %q", cfg.Type)
	}
	if err == nil {
		err = cfg.canonicalLanguages()
	}
	if err != nil {
		return fmt.Errorf("publisher %q: %w", cfg.ID, err)
	}
	return nil
}

// canonicalLanguages rewrites each filter code to its catalogue spelling.
func (cfg *PublisherConfig) canonicalLanguages() error {
	for i, code := range cfg.Languages {
		lang, ok := domain.LookupLanguage(code)
		if !ok {
			return fmt.Errorf("unknown language %q in languages", code)
		}
		cfg.Languages[i] = lang.Code
	}
	return nil
}

func (c *SQSPublisherConfig) normalize() {
	if c == nil {
		return
	}
	c.QueueURL = strings.TrimSpace(c.QueueURL)
	c.Region = strings.TrimSpace(c.Region)
	c.Endpoint = strings.TrimSpace(c.Endpoint)
}

func (c *SQSPublisherConfig) validate() error {
	switch {
	case c == nil:
		return errors.New("sqs section is required")
	case c.QueueURL == "":
		return errors.New("sqs.uri is required")
	case c.Region == "":
		return errors.New("sqs.region is required")
	}
	return nil
}

func (c *SNSPublisherConfig) normalize() {
	if c == nil {
		return
	}
	c.TopicARN = strings.TrimSpace(c.TopicARN)
	c.Region = strings.TrimSpace(c.Region)
	c.Endpoint = strings.TrimSpace(c.Endpoint)
}

func (c *SNSPublisherConfig) validate() error {
	switch {
	case c == nil:
		return errors.New("sns section is required")
	case c.TopicARN == "":
		return errors.New("sns.topic_arn is required")
	case c.Region == "":
		return errors.New("sns.region is required")
	}
	return nil
}

func (c *PubSubPublisherConfig) normalize() {
	if c == nil {
		return
	}
	c.ProjectID = strings.TrimSpace(c.ProjectID)
	c.Topic = strings.TrimSpace(c.Topic)
	c.CredentialsFile = strings.TrimSpace(c.CredentialsFile)
}

func (c *PubSubPublisherConfig) validate() error {
	if c == nil {
		return errors.New("pubsub section is required")
	}
	if c.ProjectID == "" || c.Topic == "" {
		return errors.New("pubsub.project_id and pubsub.topic are required")
	}
	return nil
}

func (c *HTTPPublisherConfig) normalize() {
	if c == nil {
		return
	}
	c.URL = strings.TrimSpace(c.URL)
	c.Method = strings.ToUpper(strings.TrimSpace(c.Method))
	if c.Method == "" {
		c.Method = http.MethodPost
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaultHTTPTimeoutSeconds
	}
	if len(c.Headers) == 0 {
		return
	}
	headers := make(map[string]string, len(c.Headers))
	for k, v := range c.Headers {
		if k, v = strings.TrimSpace(k), strings.TrimSpace(v); k != "" && v != "" {
			headers[k] = v
		}
	}
	c.Headers = headers
}

func (c *HTTPPublisherConfig) validate() error {
	if c == nil {
		return errors.New("http section is required")
	}
	if c.URL == "" {
		return errors.New("http.url is required")
	}
	return nil
}
