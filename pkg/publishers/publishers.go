// Package publishers delivers harvest reports to configured downstream
// sinks: generic HTTP webhooks and cloud queues (AWS SQS/SNS, GCP
// Pub/Sub). Delivery is transient fan-out; nothing is stored.
package publishers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/newsbrief-hq/newsbrief/internal/domain"
	"github.com/newsbrief-hq/newsbrief/internal/logger"
)

const (
	// Supported publisher types.
	TypeQueue = "queue"
	TypeHTTP  = "http"

	// Supported queue providers.
	QueueProviderAWSSQS = "aws-sqs"
	QueueProviderAWSSNS = "aws-sns"
	QueueProviderGCP    = "gcp"
)

// Event is the payload delivered to sinks: one harvested source result
// stamped with its run time.
type Event struct {
	Source      string            `json:"source"`
	Headlines   []domain.Headline `json:"headlines"`
	Error       string            `json:"error,omitempty"`
	HarvestedAt time.Time         `json:"harvested_at"`
}

// EventsFromReport splits a harvest report into per-source events in
// report order.
func EventsFromReport(report domain.Report) []Event {
	events := make([]Event, 0, len(report.Results))
	for _, res := range report.Results {
		events = append(events, Event{
			Source:      res.Source,
			Headlines:   res.Headlines,
			Error:       res.Error,
			HarvestedAt: report.GeneratedAt,
		})
	}
	return events
}

// Publisher delivers events to one configured sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// configFile represents the structure of the publishers configuration
// file.
type configFile struct {
	Publishers []PublisherConfig `json:"publishers" yaml:"publishers"`
}

// PublisherConfig represents a single publisher entry declared in
// config files.
type PublisherConfig struct {
	ID      string                `json:"id" yaml:"id"`
	Type    string                `json:"type" yaml:"type"`
	Enabled *bool                 `json:"enabled" yaml:"enabled"`
	Queue   *QueuePublisherConfig `json:"queue" yaml:"queue"`
	HTTP    *HTTPPublisherConfig  `json:"http" yaml:"http"`
}

// EnabledValue returns the enabled flag defaulting to true.
func (cfg PublisherConfig) EnabledValue() bool {
	return cfg.Enabled == nil || *cfg.Enabled
}

// QueuePublisherConfig selects a cloud queue provider.
type QueuePublisherConfig struct {
	Provider string                 `json:"provider" yaml:"provider"`
	SQS      *AWSSQSPublisherConfig `json:"sqs" yaml:"sqs"`
	SNS      *AWSSNSPublisherConfig `json:"sns" yaml:"sns"`
	GCP      *GCPQueueConfig        `json:"gcp" yaml:"gcp"`
}

// AWSSQSPublisherConfig holds AWS SQS specific settings.
type AWSSQSPublisherConfig struct {
	QueueURL        string `json:"uri" yaml:"uri"`
	Region          string `json:"region" yaml:"region"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
}

// AWSSNSPublisherConfig holds AWS SNS specific settings.
type AWSSNSPublisherConfig struct {
	TopicARN        string `json:"topic_arn" yaml:"topic_arn"`
	Region          string `json:"region" yaml:"region"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
}

// GCPQueueConfig holds the minimal Pub/Sub topic settings.
type GCPQueueConfig struct {
	ProjectID       string `json:"project_id" yaml:"project_id"`
	Topic           string `json:"topic" yaml:"topic"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
}

// HTTPPublisherConfig holds generic HTTP sink settings.
type HTTPPublisherConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Method         string            `json:"method" yaml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// LoadConfigs loads publisher definitions from a YAML/JSON file.
// Environment references are expanded before decoding; disabled entries
// are filtered out.
func LoadConfigs(path string) ([]PublisherConfig, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("publishers file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open publishers file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read publishers file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(raw)))

	cfg, err := parsePublishersFile(expanded, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(cfg.Publishers) == 0 {
		return nil, errors.New("publishers file contains no publishers entries")
	}

	seen := make(map[string]struct{}, len(cfg.Publishers))
	out := make([]PublisherConfig, 0, len(cfg.Publishers))
	for i := range cfg.Publishers {
		entry := sanitizePublisherConfig(cfg.Publishers[i])
		if err := validatePublisherConfig(entry); err != nil {
			return nil, fmt.Errorf("publishers[%d]: %w", i, err)
		}
		if _, dup := seen[entry.ID]; dup {
			return nil, fmt.Errorf("duplicate publisher id %q", entry.ID)
		}
		seen[entry.ID] = struct{}{}
		if entry.EnabledValue() {
			out = append(out, entry)
		}
	}
	return out, nil
}

// parsePublishersFile attempts to decode the publishers file content.
func parsePublishersFile(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	var cfg configFile
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return configFile{}, fmt.Errorf("decode yaml publishers: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return configFile{}, fmt.Errorf("decode json publishers: %w", err)
		}
	default:
		return configFile{}, errors.New("publishers file format not recognized (expected .yaml, .yml or .json)")
	}
	return cfg, nil
}

// sanitizePublisherConfig trims and normalizes the config fields.
func sanitizePublisherConfig(cfg PublisherConfig) PublisherConfig {
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.Type = strings.ToLower(strings.TrimSpace(cfg.Type))

	if cfg.Queue != nil {
		q := *cfg.Queue
		q.Provider = strings.ToLower(strings.TrimSpace(q.Provider))
		cfg.Queue = &q
	}
	if cfg.HTTP != nil {
		h := *cfg.HTTP
		h.URL = strings.TrimSpace(h.URL)
		h.Method = strings.ToUpper(strings.TrimSpace(h.Method))
		cfg.HTTP = &h
	}
	return cfg
}

// validatePublisherConfig checks that required fields are present.
func validatePublisherConfig(cfg PublisherConfig) error {
	if cfg.ID == "" {
		return errors.New("id is required")
	}

	switch cfg.Type {
	case TypeQueue:
		if cfg.Queue == nil {
			return fmt.Errorf("queue config required for publisher %q", cfg.ID)
		}
		return validateQueueConfig(cfg.ID, cfg.Queue)
	case TypeHTTP:
		if cfg.HTTP == nil {
			return fmt.Errorf("http config required for publisher %q", cfg.ID)
		}
		if cfg.HTTP.URL == "" {
			return fmt.Errorf("http.url is required for publisher %q", cfg.ID)
		}
		return nil
	case "":
		return fmt.Errorf("type is required for publisher %q", cfg.ID)
	default:
		return fmt.Errorf("type %q not supported for publisher %q", cfg.Type, cfg.ID)
	}
}

func validateQueueConfig(id string, q *QueuePublisherConfig) error {
	switch q.Provider {
	case QueueProviderAWSSQS:
		if q.SQS == nil {
			return fmt.Errorf("sqs config required for publisher %q", id)
		}
		return requireFields(id,
			field{"sqs.uri", q.SQS.QueueURL},
			field{"sqs.region", q.SQS.Region},
			field{"sqs.access_key_id", q.SQS.AccessKeyID},
			field{"sqs.secret_access_key", q.SQS.SecretAccessKey},
		)
	case QueueProviderAWSSNS:
		if q.SNS == nil {
			return fmt.Errorf("sns config required for publisher %q", id)
		}
		return requireFields(id,
			field{"sns.topic_arn", q.SNS.TopicARN},
			field{"sns.region", q.SNS.Region},
			field{"sns.access_key_id", q.SNS.AccessKeyID},
			field{"sns.secret_access_key", q.SNS.SecretAccessKey},
		)
	case QueueProviderGCP:
		if q.GCP == nil {
			return fmt.Errorf("gcp config required for publisher %q", id)
		}
		return requireFields(id,
			field{"gcp.project_id", q.GCP.ProjectID},
			field{"gcp.topic", q.GCP.Topic},
		)
	case "":
		return fmt.Errorf("queue.provider is required for publisher %q", id)
	default:
		return fmt.Errorf("queue provider %q not supported for publisher %q", q.Provider, id)
	}
}

type field struct {
	name  string
	value string
}

func requireFields(id string, fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s is required for publisher %q", f.name, id)
		}
	}
	return nil
}

// ensureLogger substitutes a nop logger for nil.
func ensureLogger(log logger.Logger) logger.Logger { return logger.Ensure(log) }
